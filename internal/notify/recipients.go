package notify

import (
	"context"
	"fmt"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
)

// Dedupe flattens the lists, keeping the first occurrence of each non-empty
// id.
func Dedupe(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range lists {
		for _, id := range list {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// AssigneeAndManager returns the card's assignee and its project's manager.
// Either may be nil.
func AssigneeAndManager(card *domain.Card, project *domain.Project) []string {
	var ids []string
	if card != nil && card.AssigneeID != nil {
		ids = append(ids, *card.AssigneeID)
	}
	if project != nil && project.ManagerID != nil {
		ids = append(ids, *project.ManagerID)
	}
	return Dedupe(ids)
}

// Recipients resolves the role-based audiences.
type Recipients struct {
	users repository.UserRepo
}

func NewRecipients(users repository.UserRepo) *Recipients {
	return &Recipients{users: users}
}

// Staff is every active supervisor, manager and admin plus the card's
// assignee and project manager.
func (r *Recipients) Staff(ctx context.Context, card *domain.Card, project *domain.Project) ([]string, error) {
	staff, err := r.byRoles(ctx, domain.RoleSupervisor, domain.RoleManager, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return Dedupe(staff, AssigneeAndManager(card, project)), nil
}

// SupervisorsAndAdmins is every active supervisor and admin.
func (r *Recipients) SupervisorsAndAdmins(ctx context.Context) ([]string, error) {
	return r.byRoles(ctx, domain.RoleSupervisor, domain.RoleAdmin)
}

// AllActive is every active user.
func (r *Recipients) AllActive(ctx context.Context) ([]string, error) {
	users, err := r.users.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active users: %w", err)
	}
	return ids(users), nil
}

func (r *Recipients) byRoles(ctx context.Context, roles ...domain.Role) ([]string, error) {
	users, err := r.users.ListActiveByRoles(ctx, roles...)
	if err != nil {
		return nil, fmt.Errorf("listing users by role: %w", err)
	}
	return ids(users), nil
}

func ids(users []*domain.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}
