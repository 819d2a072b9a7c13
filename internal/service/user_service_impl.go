package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/sprintdesk/internal/domain"
	"github.com/alexanderramin/sprintdesk/internal/repository"
)

type userService struct {
	users    repository.UserRepo
	fanout   *Fanout
	observer UseCaseObserver
}

func NewUserService(users repository.UserRepo, fanout *Fanout, observers ...UseCaseObserver) UserService {
	return &userService{users: users, fanout: fanout, observer: useCaseObserverOrNoop(observers)}
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) RequireSupervisor(ctx context.Context, userID string) (*domain.User, error) {
	return requireRole(ctx, s.users, userID, domain.Role.CanFinalizeSprints)
}

// ChangeRole sets the user's role and tells them when it actually changed.
func (s *userService) ChangeRole(ctx context.Context, userID string, role domain.Role) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID, "role": string(role)}
	defer observe(ctx, s.observer, "change-role", startedAt, fields, &err)

	if !role.Valid() {
		return invalidf("invalid role %q", role)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u.Role == role {
		return nil
	}
	if err = s.users.UpdateRole(ctx, userID, role); err != nil {
		return fmt.Errorf("changing role: %w", err)
	}

	old := u.Role
	u.Role = role
	s.fanout.roleChanged(ctx, u, old)
	return nil
}
