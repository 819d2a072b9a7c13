package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
)

// resolveSprint finds a sprint by exact ID, then case-insensitive name,
// then unique ID prefix.
func resolveSprint(ctx context.Context, app *App, input string) (*domain.Sprint, error) {
	s, err := app.Sprints.GetByID(ctx, input)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	sprints, err := app.Sprints.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sprints: %w", err)
	}

	var byName []*domain.Sprint
	for _, s := range sprints {
		if strings.EqualFold(s.Name, input) {
			byName = append(byName, s)
		}
	}
	switch len(byName) {
	case 1:
		return byName[0], nil
	case 0:
	default:
		return nil, fmt.Errorf("%d sprints are named %q; use the ID", len(byName), input)
	}

	var byPrefix []*domain.Sprint
	for _, s := range sprints {
		if strings.HasPrefix(s.ID, input) {
			byPrefix = append(byPrefix, s)
		}
	}
	switch len(byPrefix) {
	case 1:
		return byPrefix[0], nil
	case 0:
		return nil, fmt.Errorf("sprint %q: %w", input, repository.ErrNotFound)
	default:
		return nil, fmt.Errorf("ID prefix %q matches %d sprints", input, len(byPrefix))
	}
}
