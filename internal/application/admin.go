package application

import (
	"errors"
	"fmt"

	"github.com/TraderJoe97/StackFlow/internal/domain/user"
	"github.com/TraderJoe97/StackFlow/internal/notify"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/TraderJoe97/StackFlow/pkg/types"
	"github.com/TraderJoe97/StackFlow/pkg/utils"
	"gorm.io/gorm"
)

type AdminService struct {
	Repos     *repository.Repos
	Publisher notify.Publisher
}

func NewAdminService(repos *repository.Repos, publisher notify.Publisher) *AdminService {
	if publisher == nil {
		publisher = notify.Discard
	}
	return &AdminService{Repos: repos, Publisher: publisher}
}

// DeleteUserResult counts what was handed over to the deleting admin.
type DeleteUserResult struct {
	AssignedTickets int64 `json:"reassigned_assigned_tickets"`
	CreatedTickets  int64 `json:"reassigned_created_tickets"`
	Projects        int64 `json:"reassigned_projects"`
	Comments        int64 `json:"reassigned_comments"`
}

func userResource(id uint) string {
	return fmt.Sprintf("u_id=%d", id)
}

func (s *AdminService) ListRoles() ([]user.Role, error) {
	return s.Repos.Role.ListRoles()
}

// UpdateUserRole changes another user's role. An admin cannot change their
// own role.
func (s *AdminService) UpdateUserRole(actor types.Actor, userID, roleID uint) (user.User, error) {
	target, err := s.Repos.User.GetUserByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, ErrUserNotFound
	}
	if err != nil {
		return user.User{}, err
	}

	role, err := s.Repos.Role.GetRoleByID(roleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user.User{}, ErrRoleNotFound
	}
	if err != nil {
		return user.User{}, err
	}

	if target.ID == actor.UserID {
		return user.User{}, ErrSelfRoleChange
	}

	if err := s.Repos.User.UpdateUserRole(target.ID, role.ID); err != nil {
		return user.User{}, err
	}

	before := user.ToDTO(target)
	target.RoleID = &role.ID
	target.Role = &role

	utils.LogAuditWithConsole(actor, "update_role", "user", userResource(target.ID), before, user.ToDTO(target), "", s.Repos.Audit)
	s.Publisher.Publish(notify.UserEvent(notify.ActionRoleUpdated, target.ID))
	return target, nil
}

// DeleteUser removes another user's account. Everything that references the
// user (assigned tickets, created tickets and projects, comments) is handed
// over to the deleting admin in the same transaction.
func (s *AdminService) DeleteUser(actor types.Actor, userID uint) (DeleteUserResult, error) {
	var (
		result  DeleteUserResult
		removed user.User
	)
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		target, err := tx.User.GetUserByID(userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
		if target.ID == actor.UserID {
			return ErrSelfDelete
		}
		if _, err := tx.User.GetUserByID(actor.UserID); err != nil {
			return fmt.Errorf("load acting admin: %w", err)
		}
		removed = target

		if result.AssignedTickets, err = tx.Ticket.ReassignAssignee(target.ID, actor.UserID); err != nil {
			return err
		}
		if result.CreatedTickets, err = tx.Ticket.ReassignCreator(target.ID, actor.UserID); err != nil {
			return err
		}
		if result.Projects, err = tx.Project.ReassignCreator(target.ID, actor.UserID); err != nil {
			return err
		}
		if result.Comments, err = tx.Comment.ReassignAuthor(target.ID, actor.UserID); err != nil {
			return err
		}
		return tx.User.DeleteUser(target.ID)
	})
	if err != nil {
		return DeleteUserResult{}, err
	}

	desc := fmt.Sprintf("reassigned %d assigned tickets to u_id=%d", result.AssignedTickets, actor.UserID)
	utils.LogAuditWithConsole(actor, "delete", "user", userResource(userID), user.ToDTO(removed), nil, desc, s.Repos.Audit)
	s.Publisher.Publish(notify.UserEvent(notify.ActionDeleted, userID))
	return result, nil
}
