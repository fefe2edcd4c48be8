package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/user"
)

// Fakes

type fakeUserRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*domain.User, error)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return f.getByIDFunc(ctx, id)
}

type fakeBookingRepo struct {
	createFunc                  func(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	getBySlotIDFunc             func(ctx context.Context, slotID int64) (*domain.Booking, error)
	getLatestByUserFunc         func(ctx context.Context, userID int64) (*domain.Booking, error)
	countActiveFutureByUserFunc func(ctx context.Context, userID int64, now time.Time) (int, error)
	countPriorByUserFunc        func(ctx context.Context, userID int64, therapyType *string) (int, error)
	deleteFunc                  func(ctx context.Context, id int64) error

	deletedIDs []int64
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, b)
	}
	b.ID = 1
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	return b, nil
}

func (f *fakeBookingRepo) GetBySlotID(ctx context.Context, slotID int64) (*domain.Booking, error) {
	if f.getBySlotIDFunc != nil {
		return f.getBySlotIDFunc(ctx, slotID)
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetLatestByUser(ctx context.Context, userID int64) (*domain.Booking, error) {
	if f.getLatestByUserFunc != nil {
		return f.getLatestByUserFunc(ctx, userID)
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) CountActiveFutureByUser(ctx context.Context, userID int64, now time.Time) (int, error) {
	if f.countActiveFutureByUserFunc != nil {
		return f.countActiveFutureByUserFunc(ctx, userID, now)
	}
	return 0, nil
}

func (f *fakeBookingRepo) CountPriorByUser(ctx context.Context, userID int64, therapyType *string) (int, error) {
	if f.countPriorByUserFunc != nil {
		return f.countPriorByUserFunc(ctx, userID, therapyType)
	}
	return 0, nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id int64) error {
	f.deletedIDs = append(f.deletedIDs, id)
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, id)
	}
	return nil
}

type fakeSlotRepo struct {
	getByIDFunc   func(ctx context.Context, id int64) (*domain.SessionSlot, error)
	setBookedFunc func(ctx context.Context, id int64, booked bool) error

	bookedCalls []bool
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.SessionSlot, error) {
	return f.getByIDFunc(ctx, id)
}

func (f *fakeSlotRepo) SetBooked(ctx context.Context, id int64, booked bool) error {
	f.bookedCalls = append(f.bookedCalls, booked)
	if f.setBookedFunc != nil {
		return f.setBookedFunc(ctx, id, booked)
	}
	return nil
}

type fakeNotifier struct {
	newBookingCalls int
}

func (f *fakeNotifier) NotifyAdminNewBooking(user *domain.User, booking *domain.Booking, slot *domain.SessionSlot) {
	f.newBookingCalls++
}

// fakeTxManager выполняет fn напрямую, без транзакции
type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Helpers

func activeUser(id int64) *domain.User {
	return &domain.User{ID: id, Subject: "sub", Email: "user@example.com"}
}

func freeSlot(id int64) *domain.SessionSlot {
	return &domain.SessionSlot{
		ID:        id,
		Date:      time.Now().AddDate(0, 0, 7),
		StartTime: "10:00",
		EndTime:   "11:00",
		Mode:      domain.ModeOnline,
	}
}

func newTestUseCase(users *fakeUserRepo, bookings *fakeBookingRepo, slots *fakeSlotRepo, notifier *fakeNotifier) *UseCase {
	return NewUseCase(users, bookings, slots, notifier, &fakeTxManager{}, DefaultLimits(), nopLogger{})
}

func firstBookingRequest() *Request {
	return &Request{
		UserID:      42,
		SlotID:      7,
		SessionType: domain.SessionTypeFirst,
	}
}

// Tests

func TestExecute_Success(t *testing.T) {
	users := &fakeUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return activeUser(id), nil
		},
	}
	bookings := &fakeBookingRepo{}
	slots := &fakeSlotRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.SessionSlot, error) {
			return freeSlot(id), nil
		},
	}
	notifier := &fakeNotifier{}

	uc := newTestUseCase(users, bookings, slots, notifier)

	resp, err := uc.Execute(context.Background(), firstBookingRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, int64(42), resp.UserID)
	assert.Equal(t, int64(7), resp.SlotID)
	assert.Equal(t, []bool{true}, slots.bookedCalls)
	assert.Equal(t, 1, notifier.newBookingCalls)
}

func TestExecute_UserNotFound(t *testing.T) {
	users := &fakeUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return nil, userRepo.ErrUserNotFound
		},
	}
	uc := newTestUseCase(users, &fakeBookingRepo{}, &fakeSlotRepo{}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), firstBookingRequest())

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_UserBlocked(t *testing.T) {
	users := &fakeUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			u := activeUser(id)
			u.IsBlocked = true
			return u, nil
		},
	}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(users, &fakeBookingRepo{}, &fakeSlotRepo{}, notifier)

	_, err := uc.Execute(context.Background(), firstBookingRequest())

	assert.ErrorIs(t, err, ErrUserBlocked)
	assert.Zero(t, notifier.newBookingCalls)
}

func TestExecute_TooManyActiveBookings(t *testing.T) {
	users := &fakeUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return activeUser(id), nil
		},
	}
	bookings := &fakeBookingRepo{
		countActiveFutureByUserFunc: func(ctx context.Context, userID int64, now time.Time) (int, error) {
			return domain.DefaultMaxActiveBookings, nil
		},
	}
	uc := newTestUseCase(users, bookings, &fakeSlotRepo{}, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), firstBookingRequest())

	assert.ErrorIs(t, err, ErrTooManyActiveBookings)
}

func TestExecute_CooldownActive(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	users := &fakeUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return activeUser(id), nil
		},
	}
	bookings := &fakeBookingRepo{
		getLatestByUserFunc: func(ctx context.Context, userID int64) (*domain.Booking, error) {
			// Минуту назад, cooldown по умолчанию две минуты
			return &domain.Booking{ID: 5, CreatedAt: now.Add(-time.Minute)}, nil
		},
	}
	uc := newTestUseCase(users, bookings, &fakeSlotRepo{}, &fakeNotifier{})
	uc.timeProvider = &stubClock{now: now}

	_, err := uc.Execute(context.Background(), firstBookingRequest())

	assert.ErrorIs(t, err, ErrBookingCooldown)
}

func TestExecute_CooldownExpired(t *testing.T) {
	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

	users := &fakeUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return activeUser(id), nil
		},
	}
	bookings := &fakeBookingRepo{
		getLatestByUserFunc: func(ctx context.Context, userID int64) (*domain.Booking, error) {
			// Последняя заявка была отклонена: cooldown всё равно считается
			// от неё, но интервал уже прошёл
			return &domain.Booking{
				ID:        5,
				Status:    domain.StatusRejected,
				CreatedAt: now.Add(-domain.DefaultBookingCooldown - time.Second),
			}, nil
		},
		countPriorByUserFunc: func(ctx context.Context, userID int64, therapyType *string) (int, error) {
			return 1, nil
		},
	}
	slots := &fakeSlotRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.SessionSlot, error) {
			return freeSlot(id), nil
		},
	}
	uc := newTestUseCase(users, bookings, slots, &fakeNotifier{})
	uc.timeProvider = &stubClock{now: now}

	req := firstBookingRequest()
	req.SessionType = domain.SessionTypeFollowUp

	_, err := uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_FirstBookingSkipsCooldown(t *testing.T) {
	users := &fakeUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return activeUser(id), nil
		},
	}
	// GetLatestByUser без стаба возвращает ErrBookingNotFound - у пользователя
	// нет истории, cooldown не применяется
	bookings := &fakeBookingRepo{}
	slots := &fakeSlotRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.SessionSlot, error) {
			return freeSlot(id), nil
		},
	}
	uc := newTestUseCase(users, bookings, slots, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), firstBookingRequest())

	assert.NoError(t, err)
}

func TestExecute_SessionTypeSequence(t *testing.T) {
	tests := []struct {
		name       string
		priorCount int
		requested  domain.SessionType
		wantErr    bool
	}{
		{"no history allows first", 0, domain.SessionTypeFirst, false},
		{"no history rejects follow_up", 0, domain.SessionTypeFollowUp, true},
		{"history rejects first", 3, domain.SessionTypeFirst, true},
		{"history allows follow_up", 3, domain.SessionTypeFollowUp, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUserRepo{
				getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
					return activeUser(id), nil
				},
			}
			bookings := &fakeBookingRepo{
				countPriorByUserFunc: func(ctx context.Context, userID int64, therapyType *string) (int, error) {
					return tt.priorCount, nil
				},
			}
			slots := &fakeSlotRepo{
				getByIDFunc: func(ctx context.Context, id int64) (*domain.SessionSlot, error) {
					return freeSlot(id), nil
				},
			}
			uc := newTestUseCase(users, bookings, slots, &fakeNotifier{})

			req := firstBookingRequest()
			req.SessionType = tt.requested

			_, err := uc.Execute(context.Background(), req)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSessionType)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_SlotNotFound(t *testing.T) {
	users := &fakeUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return activeUser(id), nil
		},
	}
	slots := &fakeSlotRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.SessionSlot, error) {
			return nil, slotRepo.ErrSlotNotFound
		},
	}
	uc := newTestUseCase(users, &fakeBookingRepo{}, slots, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), firstBookingRequest())

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotAlreadyBooked(t *testing.T) {
	users := &fakeUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return activeUser(id), nil
		},
	}
	slots := &fakeSlotRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.SessionSlot, error) {
			s := freeSlot(id)
			s.IsBooked = true
			return s, nil
		},
	}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(users, &fakeBookingRepo{}, slots, notifier)

	_, err := uc.Execute(context.Background(), firstBookingRequest())

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Zero(t, notifier.newBookingCalls)
}

func TestExecute_ReclaimsRejectedBooking(t *testing.T) {
	users := &fakeUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return activeUser(id), nil
		},
	}
	bookings := &fakeBookingRepo{
		getBySlotIDFunc: func(ctx context.Context, slotID int64) (*domain.Booking, error) {
			return &domain.Booking{ID: 99, SlotID: slotID, Status: domain.StatusRejected}, nil
		},
	}
	slots := &fakeSlotRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.SessionSlot, error) {
			return freeSlot(id), nil
		},
	}
	uc := newTestUseCase(users, bookings, slots, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), firstBookingRequest())

	require.NoError(t, err)
	// Отклонённая заявка удалена перед вставкой новой
	assert.Equal(t, []int64{99}, bookings.deletedIDs)
}

func TestExecute_ConcurrentBookingOnSlot(t *testing.T) {
	users := &fakeUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return activeUser(id), nil
		},
	}
	bookings := &fakeBookingRepo{
		getBySlotIDFunc: func(ctx context.Context, slotID int64) (*domain.Booking, error) {
			return &domain.Booking{ID: 100, SlotID: slotID, Status: domain.StatusPending}, nil
		},
	}
	slots := &fakeSlotRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.SessionSlot, error) {
			return freeSlot(id), nil
		},
	}
	uc := newTestUseCase(users, bookings, slots, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), firstBookingRequest())

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, bookings.deletedIDs)
}

func TestExecute_RetriesOnceAfterConflict(t *testing.T) {
	users := &fakeUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return activeUser(id), nil
		},
	}

	attempts := 0
	bookings := &fakeBookingRepo{
		createFunc: func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
			attempts++
			if attempts == 1 {
				// Конкурент успел вставить строку - уникальное ограничение сработало
				return nil, bookingRepo.ErrSlotTaken
			}
			b.ID = 2
			return b, nil
		},
	}
	slots := &fakeSlotRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.SessionSlot, error) {
			return freeSlot(id), nil
		},
	}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(users, bookings, slots, notifier)

	resp, err := uc.Execute(context.Background(), firstBookingRequest())

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, int64(2), resp.ID)
	assert.Equal(t, 1, notifier.newBookingCalls)
}

func TestExecute_SecondConflictGivesUp(t *testing.T) {
	users := &fakeUserRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.User, error) {
			return activeUser(id), nil
		},
	}

	attempts := 0
	bookings := &fakeBookingRepo{
		createFunc: func(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
			attempts++
			return nil, bookingRepo.ErrSlotTaken
		},
	}
	slots := &fakeSlotRepo{
		getByIDFunc: func(ctx context.Context, id int64) (*domain.SessionSlot, error) {
			return freeSlot(id), nil
		},
	}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(users, bookings, slots, notifier)

	_, err := uc.Execute(context.Background(), firstBookingRequest())

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, 2, attempts)
	assert.Zero(t, notifier.newBookingCalls)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeUserRepo{}, &fakeBookingRepo{}, &fakeSlotRepo{}, &fakeNotifier{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero user", &Request{UserID: 0, SlotID: 1, SessionType: domain.SessionTypeFirst}},
		{"zero slot", &Request{UserID: 1, SlotID: 0, SessionType: domain.SessionTypeFirst}},
		{"bad session type", &Request{UserID: 1, SlotID: 1, SessionType: "weekly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestIsRetryableConflict(t *testing.T) {
	assert.True(t, isRetryableConflict(bookingRepo.ErrSlotTaken))
	assert.False(t, isRetryableConflict(errors.New("boom")))
	assert.False(t, isRetryableConflict(ErrSlotNotFound))
}
