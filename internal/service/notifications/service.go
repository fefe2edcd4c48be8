package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

// dispatchTimeout лимит на доставку одного уведомления
const dispatchTimeout = 10 * time.Second

// Service сервис уведомлений с best-effort семантикой.
// Все методы возвращаются сразу: письмо уходит в фоне, ошибка доставки
// логируется и никогда не доходит до вызывающей стороны. Успешно
// созданное бронирование не должно откатываться из-за упавшей почты.
type Service struct {
	mail       MailClient
	adminEmail string
	logger     Logger

	wg sync.WaitGroup
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(mail MailClient, adminEmail string, logger Logger) *Service {
	return &Service{
		mail:       mail,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Wait блокируется до завершения всех фоновых отправок.
// Вызывается при graceful shutdown.
func (s *Service) Wait() {
	s.wg.Wait()
}

// dispatch отправляет письмо в фоне; ошибки только логируются
func (s *Service) dispatch(to, subject, body string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := s.mail.Send(ctx, to, subject, body); err != nil {
			s.logger.Error("notifications: failed to send %q to %s: %v", subject, to, err)
			return
		}
		s.logger.Info("notifications: sent %q to %s", subject, to)
	}()
}

// NotifyAdminNewBooking уведомляет администратора о новой заявке на сессию
func (s *Service) NotifyAdminNewBooking(user *domain.User, booking *domain.Booking, slot *domain.SessionSlot) {
	subject := "Новая заявка на сессию"
	body := fmt.Sprintf(
		"Пользователь %s (%s) запросил сессию на %s %s-%s, формат: %s.",
		user.Subject, user.Email,
		slot.Date.Format(domain.DateFormat), slot.StartTime, slot.EndTime,
		modeLabel(slot.Mode),
	)
	if booking.TherapyType != nil {
		body += fmt.Sprintf(" Тип терапии: %s.", *booking.TherapyType)
	}
	if booking.Reason != nil {
		body += fmt.Sprintf(" Комментарий: %s", *booking.Reason)
	}

	s.dispatch(s.adminEmail, subject, body)
}

// NotifyUserConfirmed уведомляет пользователя о подтверждении сессии.
// В письмо попадают дата, формат и ссылка на встречу, если она указана.
func (s *Service) NotifyUserConfirmed(user *domain.User, booking *domain.Booking, slot *domain.SessionSlot) {
	subject := "Сессия подтверждена"
	body := fmt.Sprintf(
		"Ваша сессия подтверждена: %s %s-%s, формат: %s.",
		slot.Date.Format(domain.DateFormat), slot.StartTime, slot.EndTime,
		modeLabel(slot.Mode),
	)
	if booking.MeetingLink != nil {
		body += fmt.Sprintf(" Ссылка на встречу: %s", *booking.MeetingLink)
	}

	s.dispatch(user.Email, subject, body)
}

// NotifyUserRejected уведомляет пользователя об отклонении заявки
func (s *Service) NotifyUserRejected(user *domain.User, slot *domain.SessionSlot) {
	subject := "Заявка на сессию отклонена"
	body := fmt.Sprintf(
		"К сожалению, ваша заявка на сессию %s %s-%s отклонена. Слот снова доступен для выбора другого времени.",
		slot.Date.Format(domain.DateFormat), slot.StartTime, slot.EndTime,
	)

	s.dispatch(user.Email, subject, body)
}

// NotifyAdminRefundRequired уведомляет администратора о необходимости возврата
// средств после отмены подтверждённой сессии
func (s *Service) NotifyAdminRefundRequired(user *domain.User, booking *domain.Booking, slot *domain.SessionSlot) {
	subject := "Требуется возврат средств"
	body := fmt.Sprintf(
		"Пользователь %s (%s) отменил подтверждённую сессию %s %s-%s (booking id=%d). Проверьте, требуется ли возврат оплаты.",
		user.Subject, user.Email,
		slot.Date.Format(domain.DateFormat), slot.StartTime, slot.EndTime,
		booking.ID,
	)

	s.dispatch(s.adminEmail, subject, body)
}

func modeLabel(mode domain.SlotMode) string {
	if mode == domain.ModeOnline {
		return "онлайн"
	}
	return "очно"
}
