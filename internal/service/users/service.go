package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	"github.com/m04kA/SMC-TherapyService/internal/integrations/authservice"
	userRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/user"
	"github.com/m04kA/SMC-TherapyService/internal/service/users/models"
)

// Service сервис синхронизации и администрирования пользователей
type Service struct {
	userRepo UserRepository
	identity IdentityClient
	logger   Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(userRepo UserRepository, identity IdentityClient, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		identity: identity,
		logger:   logger,
	}
}

// Sync проверяет токен во внешнем сервисе аутентификации и создает
// или обновляет локальную запись пользователя по subject.
// Флаг блокировки внешней системы переносится в локальную запись.
func (s *Service) Sync(ctx context.Context, token string) (*models.UserResponse, error) {
	identity, err := s.identity.VerifyIdentity(ctx, token)
	if err != nil {
		if errors.Is(err, authservice.ErrTokenInvalid) {
			s.logger.Warn("Sync: identity token rejected")
			return nil, ErrTokenInvalid
		}
		s.logger.Error("Sync: identity verification failed: %v", err)
		return nil, fmt.Errorf("%w: Sync - identity verification: %v", ErrInternal, err)
	}

	if !identity.Verified {
		s.logger.Warn("Sync: identity subject=%s has unverified email", identity.Subject)
		return nil, ErrIdentityNotVerified
	}

	user, err := s.userRepo.Upsert(ctx, &domain.User{
		Subject:   identity.Subject,
		Email:     identity.Email,
		IsBlocked: identity.Blocked,
	})
	if err != nil {
		s.logger.Error("Sync: failed to upsert user subject=%s: %v", identity.Subject, err)
		return nil, fmt.Errorf("%w: Sync - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Sync: successfully synced user id=%d, subject=%s", user.ID, user.Subject)
	return models.FromDomainUser(user), nil
}

// GetByID возвращает пользователя по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("GetByID: user id=%d not found", id)
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetByID: repository error for user id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUser(user), nil
}

// SetBlocked блокирует или разблокирует пользователя.
// Заблокированный пользователь не может создавать бронирования,
// существующие бронирования при этом не трогаются.
func (s *Service) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	s.logger.Info("SetBlocked: setting user id=%d blocked=%v", id, blocked)

	if err := s.userRepo.SetBlocked(ctx, id, blocked); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("SetBlocked: user id=%d not found", id)
			return ErrUserNotFound
		}
		s.logger.Error("SetBlocked: failed to update user id=%d: %v", id, err)
		return fmt.Errorf("%w: SetBlocked - repository error: %v", ErrInternal, err)
	}

	return nil
}

// UpdateAdminNotes обновляет заметки администратора о пользователе
func (s *Service) UpdateAdminNotes(ctx context.Context, id int64, notes *string) error {
	s.logger.Info("UpdateAdminNotes: updating notes for user id=%d", id)

	if err := s.userRepo.UpdateAdminNotes(ctx, id, notes); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("UpdateAdminNotes: user id=%d not found", id)
			return ErrUserNotFound
		}
		s.logger.Error("UpdateAdminNotes: failed to update user id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateAdminNotes - repository error: %v", ErrInternal, err)
	}

	return nil
}
