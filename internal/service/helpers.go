package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/sprintdesk/internal/changes"
	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
)

const unknownUserName = "Unknown user"

// namesFor resolves the display names of the given users. Unknown or nil
// ids are left out.
func namesFor(ctx context.Context, users repository.UserRepo, ids ...*string) (changes.Names, error) {
	names := changes.Names{}
	for _, id := range ids {
		if id == nil || *id == "" {
			continue
		}
		if _, seen := names[*id]; seen {
			continue
		}
		u, err := users.GetByID(ctx, *id)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolving user name: %w", err)
		}
		names[*id] = u.DisplayName()
	}
	return names, nil
}

func nameOr(names changes.Names, id *string) string {
	if id != nil {
		if name, ok := names[*id]; ok {
			return name
		}
	}
	return unknownUserName
}

// actorRef returns a pointer to actorID when it names a stored user, so it
// can be kept in a user reference column.
func actorRef(ctx context.Context, users repository.UserRepo, actorID string) (*string, error) {
	if actorID == "" {
		return nil, nil
	}
	if _, err := users.GetByID(ctx, actorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading actor: %w", err)
	}
	return &actorID, nil
}

// requireRole loads the actor and checks allowed against their role.
// Unknown and inactive actors are forbidden.
func requireRole(ctx context.Context, users repository.UserRepo, actorID string, allowed func(domain.Role) bool) (*domain.User, error) {
	if actorID == "" {
		return nil, fmt.Errorf("%w: no acting user", ErrForbidden)
	}
	u, err := users.GetByID(ctx, actorID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown user %s", ErrForbidden, actorID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading actor: %w", err)
	}
	if !u.IsActive || !allowed(u.Role) {
		return nil, fmt.Errorf("%w: role %s may not do this", ErrForbidden, u.Role)
	}
	return u, nil
}

// canEditDemand enforces that cards of the Suggestions project are changed
// only by their creator or a supervisor or admin.
func canEditDemand(ctx context.Context, users repository.UserRepo, actorID string, card *domain.Card) error {
	if card.CreatorID != nil && *card.CreatorID == actorID && actorID != "" {
		return nil
	}
	_, err := requireRole(ctx, users, actorID, domain.Role.CanFinalizeSprints)
	return err
}
