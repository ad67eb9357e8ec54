package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Clinic-AppointmentService/internal/domain"
	userRepo "github.com/m04kA/Clinic-AppointmentService/internal/infra/storage/user"
	"github.com/m04kA/Clinic-AppointmentService/internal/service/users/models"
)

// Service сервис для администрирования пользователей клиники
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// List получает всех пользователей клиники
func (s *Service) List(ctx context.Context) (*models.UserListResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d users", len(users))
	return models.FromDomainUserList(users), nil
}

// ChangeRole меняет роль пользователя
// Клиника не может остаться без администратора: понижение последнего
// активного админа отклоняется
func (s *Service) ChangeRole(ctx context.Context, userID int64, req *models.ChangeRoleRequest) error {
	s.logger.Info("ChangeRole: user id=%d to role=%q", userID, req.Role)

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		s.logger.Warn("ChangeRole: unknown role %q for user id=%d", req.Role, userID)
		return fmt.Errorf("%w: %q", ErrUnknownRole, req.Role)
	}

	if role == domain.RoleDoctor && req.Specialty != nil && len(*req.Specialty) > domain.MaxSpecialtyLength {
		return fmt.Errorf("%w: specialty is too long", ErrInvalidInput)
	}

	target, err := s.getUser(ctx, "ChangeRole", userID)
	if err != nil {
		return err
	}

	if target.IsAdmin() && role != domain.RoleAdmin {
		if err := s.ensureNotLastAdmin(ctx, "ChangeRole"); err != nil {
			return err
		}
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role, req.Specialty); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("ChangeRole: repository error for user id=%d: %v", userID, err)
		return fmt.Errorf("%w: ChangeRole - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ChangeRole: user id=%d is now %q", userID, role)
	return nil
}

// SetActive деактивирует или восстанавливает пользователя
// Деактивированный врач выбывает из ротации, его текущие назначения
// на слотах сохраняются
func (s *Service) SetActive(ctx context.Context, userID int64, active bool) error {
	s.logger.Info("SetActive: user id=%d, active=%t", userID, active)

	target, err := s.getUser(ctx, "SetActive", userID)
	if err != nil {
		return err
	}

	if !active && target.IsAdmin() && target.Active {
		if err := s.ensureNotLastAdmin(ctx, "SetActive"); err != nil {
			return err
		}
	}

	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("SetActive: repository error for user id=%d: %v", userID, err)
		return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) getUser(ctx context.Context, method string, id int64) (*domain.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%d not found", method, id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return u, nil
}

func (s *Service) ensureNotLastAdmin(ctx context.Context, method string) error {
	count, err := s.userRepo.CountAdmins(ctx)
	if err != nil {
		s.logger.Error("%s: failed to count admins: %v", method, err)
		return fmt.Errorf("%w: %s - failed to count admins: %v", ErrInternal, method, err)
	}
	if count <= 1 {
		s.logger.Warn("%s: rejected, clinic would be left without administrators", method)
		return ErrLastAdmin
	}
	return nil
}
