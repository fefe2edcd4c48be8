package resolve_discount

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	"github.com/m04kA/SMC-TherapyService/pkg/ptr"
)

type fakeBookingRepo struct {
	confirmedCount int
	countCalls     int
}

func (f *fakeBookingRepo) CountConfirmedByUser(ctx context.Context, userID int64) (int, error) {
	f.countCalls++
	return f.confirmedCount, nil
}

type fakeRuleRepo struct {
	rules []*domain.DiscountRule
}

func (f *fakeRuleRepo) List(ctx context.Context, onlyActive bool) ([]*domain.DiscountRule, error) {
	return f.rules, nil
}

type fakeSettingsRepo struct {
	enabled bool
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*domain.ServiceSettings, error) {
	return &domain.ServiceSettings{DiscountsEnabled: f.enabled}, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func rule(id int64, from, to, percent int) *domain.DiscountRule {
	return &domain.DiscountRule{
		ID:           id,
		BookingsFrom: from,
		BookingsTo:   to,
		Percent:      percent,
		IsActive:     true,
	}
}

func TestExecute_DiscountsDisabled(t *testing.T) {
	bookings := &fakeBookingRepo{confirmedCount: 10}
	rules := &fakeRuleRepo{rules: []*domain.DiscountRule{rule(1, 0, 100, 10)}}

	uc := NewUseCase(bookings, rules, &fakeSettingsRepo{enabled: false}, nopLogger{})

	discount, err := uc.Execute(context.Background(), 42)

	require.NoError(t, err)
	assert.Nil(t, discount)
	// Тумблер выключен - до подсчёта дело не доходит
	assert.Zero(t, bookings.countCalls)
}

func TestExecute_InvalidUserID(t *testing.T) {
	bookings := &fakeBookingRepo{confirmedCount: 10}
	rules := &fakeRuleRepo{rules: []*domain.DiscountRule{rule(1, 0, 100, 10)}}

	uc := NewUseCase(bookings, rules, &fakeSettingsRepo{enabled: true}, nopLogger{})

	for _, userID := range []int64{0, -5} {
		discount, err := uc.Execute(context.Background(), userID)

		require.NoError(t, err)
		assert.Nil(t, discount)
	}

	// Некорректный userID отсекается до запроса - иначе подсчёт пошёл бы
	// по всей таблице бронирований
	assert.Zero(t, bookings.countCalls)
}

func TestExecute_PicksMostSpecificRule(t *testing.T) {
	wide := rule(1, 1, 100, 5)
	narrow := rule(2, 5, 5, 20)
	narrow.Label = ptr.Ptr("за пятую сессию")

	bookings := &fakeBookingRepo{confirmedCount: 5}
	rules := &fakeRuleRepo{rules: []*domain.DiscountRule{wide, narrow}}

	uc := NewUseCase(bookings, rules, &fakeSettingsRepo{enabled: true}, nopLogger{})

	discount, err := uc.Execute(context.Background(), 42)

	require.NoError(t, err)
	require.NotNil(t, discount)
	assert.Equal(t, 20, discount.Percent)
	assert.Equal(t, "за пятую сессию", *discount.Label)
}

func TestExecute_NoMatchingRule(t *testing.T) {
	bookings := &fakeBookingRepo{confirmedCount: 0}
	rules := &fakeRuleRepo{rules: []*domain.DiscountRule{rule(1, 5, 10, 15)}}

	uc := NewUseCase(bookings, rules, &fakeSettingsRepo{enabled: true}, nopLogger{})

	discount, err := uc.Execute(context.Background(), 42)

	require.NoError(t, err)
	assert.Nil(t, discount)
}
