package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TherapyService/internal/service/bookings/models"
	"github.com/m04kA/SMC-TherapyService/pkg/ptr"
)

// Fakes

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking

	updateStatusErr error
	deletedIDs      []int64
	statusUpdates   []domain.BookingStatus
}

func newFakeBookingRepo(items ...*domain.Booking) *fakeBookingRepo {
	m := make(map[int64]*domain.Booking, len(items))
	for _, b := range items {
		m[b.ID] = b
	}
	return &fakeBookingRepo{bookings: m}
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, meetingLink *string) error {
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	if meetingLink != nil {
		b.MeetingLink = meetingLink
	}
	// Репозиторий проставляет updated_at = NOW()
	b.UpdatedAt = time.Now()
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.bookings, id)
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

type fakeSlotRepo struct {
	slot        *domain.SessionSlot
	freedSlots  []int64
	bookedSlots []int64
}

func (f *fakeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.SessionSlot, error) {
	return f.slot, nil
}

func (f *fakeSlotRepo) SetBooked(ctx context.Context, id int64, booked bool) error {
	if booked {
		f.bookedSlots = append(f.bookedSlots, id)
	} else {
		f.freedSlots = append(f.freedSlots, id)
	}
	return nil
}

type fakeUserRepo struct {
	user *domain.User
	err  error
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return f.user, f.err
}

type fakeNotifier struct {
	confirmed int
	rejected  int
	refunds   int
}

func (f *fakeNotifier) NotifyUserConfirmed(user *domain.User, booking *domain.Booking, slot *domain.SessionSlot) {
	f.confirmed++
}

func (f *fakeNotifier) NotifyUserRejected(user *domain.User, slot *domain.SessionSlot) {
	f.rejected++
}

func (f *fakeNotifier) NotifyAdminRefundRequired(user *domain.User, booking *domain.Booking, slot *domain.SessionSlot) {
	f.refunds++
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Helpers

func pendingBooking(id, userID, slotID int64) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		UserID:      userID,
		SlotID:      slotID,
		SessionType: domain.SessionTypeFirst,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func testSlot(id int64) *domain.SessionSlot {
	return &domain.SessionSlot{
		ID:        id,
		Date:      time.Now().AddDate(0, 0, 7),
		StartTime: "10:00",
		EndTime:   "11:00",
		Mode:      domain.ModeOnline,
		IsBooked:  true,
	}
}

func newTestService(bookings *fakeBookingRepo, slots *fakeSlotRepo, users *fakeUserRepo, notifier *fakeNotifier) *Service {
	return NewService(bookings, slots, users, notifier, &fakeTxManager{}, nopLogger{})
}

// Tests

func TestGetByID_OwnershipMasking(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking(1, 42, 7))
	svc := newTestService(bookings, &fakeSlotRepo{}, &fakeUserRepo{}, &fakeNotifier{})

	// Владелец видит бронирование
	resp, err := svc.GetByID(context.Background(), 1, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Чужое бронирование неотличимо от несуществующего
	_, err = svc.GetByID(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatus_Confirm(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking(1, 42, 7))
	slots := &fakeSlotRepo{slot: testSlot(7)}
	users := &fakeUserRepo{user: &domain.User{ID: 42, Email: "user@example.com"}}
	notifier := &fakeNotifier{}
	svc := newTestService(bookings, slots, users, notifier)

	link := ptr.Ptr("https://meet.example.com/abc")
	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Status:      "confirmed",
		MeetingLink: link,
	})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, link, resp.MeetingLink)
	// Слот остаётся занятым
	assert.Empty(t, slots.freedSlots)
	assert.Equal(t, 1, notifier.confirmed)
}

func TestUpdateStatus_ReturnsRefreshedTimestamp(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	booking := pendingBooking(1, 42, 7)
	booking.CreatedAt = created
	booking.UpdatedAt = created

	bookings := newFakeBookingRepo(booking)
	svc := newTestService(bookings, &fakeSlotRepo{slot: testSlot(7)}, &fakeUserRepo{user: &domain.User{ID: 42}}, &fakeNotifier{})

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})

	require.NoError(t, err)
	// Ответ несёт updated_at из репозитория, а не значение до перехода
	assert.True(t, resp.UpdatedAt.After(created))
	assert.Equal(t, created, resp.CreatedAt)
}

func TestUpdateStatus_RejectFreesSlot(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking(1, 42, 7))
	slots := &fakeSlotRepo{slot: testSlot(7)}
	users := &fakeUserRepo{user: &domain.User{ID: 42, Email: "user@example.com"}}
	notifier := &fakeNotifier{}
	svc := newTestService(bookings, slots, users, notifier)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "rejected"})

	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, []int64{7}, slots.freedSlots)
	assert.Equal(t, 1, notifier.rejected)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	confirmed := pendingBooking(1, 42, 7)
	confirmed.Status = domain.StatusConfirmed

	bookings := newFakeBookingRepo(confirmed)
	svc := newTestService(bookings, &fakeSlotRepo{}, &fakeUserRepo{}, &fakeNotifier{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "rejected"})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking(1, 42, 7))
	svc := newTestService(bookings, &fakeSlotRepo{}, &fakeUserRepo{}, &fakeNotifier{})

	// pending нельзя выставить руками
	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "pending"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCancel_PendingBooking(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking(1, 42, 7))
	slots := &fakeSlotRepo{slot: testSlot(7)}
	notifier := &fakeNotifier{}
	svc := newTestService(bookings, slots, &fakeUserRepo{}, notifier)

	err := svc.Cancel(context.Background(), 1, 42)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, slots.freedSlots)
	assert.Equal(t, []int64{1}, bookings.deletedIDs)
	// Заявка ещё не была подтверждена - возврат средств не нужен
	assert.Zero(t, notifier.refunds)
}

func TestCancel_ConfirmedBookingTriggersRefundAlert(t *testing.T) {
	confirmed := pendingBooking(1, 42, 7)
	confirmed.Status = domain.StatusConfirmed

	bookings := newFakeBookingRepo(confirmed)
	slots := &fakeSlotRepo{slot: testSlot(7)}
	users := &fakeUserRepo{user: &domain.User{ID: 42, Email: "user@example.com"}}
	notifier := &fakeNotifier{}
	svc := newTestService(bookings, slots, users, notifier)

	err := svc.Cancel(context.Background(), 1, 42)

	require.NoError(t, err)
	assert.Equal(t, 1, notifier.refunds)
}

func TestCancel_OwnershipMasking(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking(1, 42, 7))
	slots := &fakeSlotRepo{slot: testSlot(7)}
	svc := newTestService(bookings, slots, &fakeUserRepo{}, &fakeNotifier{})

	err := svc.Cancel(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Empty(t, slots.freedSlots)
	assert.Empty(t, bookings.deletedIDs)
}

func TestAdminDelete_ActiveBookingFreesSlot(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking(1, 42, 7))
	slots := &fakeSlotRepo{slot: testSlot(7)}
	svc := newTestService(bookings, slots, &fakeUserRepo{}, &fakeNotifier{})

	err := svc.AdminDelete(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, slots.freedSlots)
	assert.Equal(t, []int64{1}, bookings.deletedIDs)
}

func TestAdminDelete_RejectedBookingSkipsSlot(t *testing.T) {
	rejected := pendingBooking(1, 42, 7)
	rejected.Status = domain.StatusRejected

	bookings := newFakeBookingRepo(rejected)
	slots := &fakeSlotRepo{slot: testSlot(7)}
	svc := newTestService(bookings, slots, &fakeUserRepo{}, &fakeNotifier{})

	err := svc.AdminDelete(context.Background(), 1)

	require.NoError(t, err)
	// Слот отклонённой заявки уже свободен
	assert.Empty(t, slots.freedSlots)
	assert.Equal(t, []int64{1}, bookings.deletedIDs)
}

func TestConfirm_NotificationFailureDoesNotFailOperation(t *testing.T) {
	bookings := newFakeBookingRepo(pendingBooking(1, 42, 7))
	slots := &fakeSlotRepo{slot: testSlot(7)}
	// Пользователь не загрузился - уведомление пропускается, операция успешна
	users := &fakeUserRepo{err: bookingRepo.ErrBookingNotFound}
	notifier := &fakeNotifier{}
	svc := newTestService(bookings, slots, users, notifier)

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Zero(t, notifier.confirmed)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	confirmed := pendingBooking(2, 42, 8)
	confirmed.Status = domain.StatusConfirmed

	bookings := newFakeBookingRepo(pendingBooking(1, 42, 7), confirmed)
	svc := newTestService(bookings, &fakeSlotRepo{}, &fakeUserRepo{}, &fakeNotifier{})

	resp, err := svc.GetUserBookings(context.Background(), 42, ptr.Ptr("confirmed"))

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "confirmed", resp.Bookings[0].Status)

	_, err = svc.GetUserBookings(context.Background(), 42, ptr.Ptr("bogus"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
