package discounts

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-TherapyService/internal/infra/storage/discountrule"
	"github.com/m04kA/SMC-TherapyService/internal/service/discounts/models"
	"github.com/m04kA/SMC-TherapyService/pkg/ptr"
)

// Fakes

type fakeRuleRepo struct {
	rules      []*domain.DiscountRule
	deletedIDs []int64
	deleteErr  error
}

func (f *fakeRuleRepo) Create(ctx context.Context, rule *domain.DiscountRule) (*domain.DiscountRule, error) {
	rule.ID = int64(len(f.rules) + 1)
	rule.CreatedAt = time.Now()
	f.rules = append(f.rules, rule)
	return rule, nil
}

func (f *fakeRuleRepo) List(ctx context.Context, onlyActive bool) ([]*domain.DiscountRule, error) {
	return f.rules, nil
}

func (f *fakeRuleRepo) Delete(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

type fakeSettingsRepo struct {
	enabled bool
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (*domain.ServiceSettings, error) {
	return &domain.ServiceSettings{DiscountsEnabled: f.enabled, UpdatedAt: time.Now()}, nil
}

func (f *fakeSettingsRepo) SetDiscountsEnabled(ctx context.Context, enabled bool) error {
	f.enabled = enabled
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func validRuleRequest() *models.CreateRuleRequest {
	return &models.CreateRuleRequest{
		BookingsFrom: 5,
		BookingsTo:   10,
		Percent:      15,
	}
}

// Tests

func TestCreateRule_Success(t *testing.T) {
	rules := &fakeRuleRepo{}
	svc := NewService(rules, &fakeSettingsRepo{}, nopLogger{})

	resp, err := svc.CreateRule(context.Background(), validRuleRequest())

	require.NoError(t, err)
	assert.Equal(t, 5, resp.BookingsFrom)
	assert.Equal(t, 10, resp.BookingsTo)
	assert.Equal(t, 15, resp.Percent)
	// Правило активно по умолчанию
	assert.True(t, resp.IsActive)
}

func TestCreateRule_ExplicitInactive(t *testing.T) {
	svc := NewService(&fakeRuleRepo{}, &fakeSettingsRepo{}, nopLogger{})

	req := validRuleRequest()
	req.IsActive = ptr.Ptr(false)

	resp, err := svc.CreateRule(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, resp.IsActive)
}

func TestCreateRule_PointRangeIsValid(t *testing.T) {
	svc := NewService(&fakeRuleRepo{}, &fakeSettingsRepo{}, nopLogger{})

	req := validRuleRequest()
	req.BookingsFrom = 5
	req.BookingsTo = 5

	_, err := svc.CreateRule(context.Background(), req)

	assert.NoError(t, err)
}

func TestCreateRule_Validation(t *testing.T) {
	svc := NewService(&fakeRuleRepo{}, &fakeSettingsRepo{}, nopLogger{})

	tests := []struct {
		name   string
		mutate func(*models.CreateRuleRequest)
	}{
		{"negative from", func(r *models.CreateRuleRequest) { r.BookingsFrom = -1 }},
		{"to below from", func(r *models.CreateRuleRequest) { r.BookingsTo = r.BookingsFrom - 1 }},
		{"zero percent", func(r *models.CreateRuleRequest) { r.Percent = 0 }},
		{"percent above 100", func(r *models.CreateRuleRequest) { r.Percent = 101 }},
		{"label too long", func(r *models.CreateRuleRequest) {
			r.Label = ptr.Ptr(strings.Repeat("x", maxLabelLength+1))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRuleRequest()
			tt.mutate(req)

			_, err := svc.CreateRule(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDeleteRule_NotFound(t *testing.T) {
	rules := &fakeRuleRepo{deleteErr: ruleRepo.ErrRuleNotFound}
	svc := NewService(rules, &fakeSettingsRepo{}, nopLogger{})

	err := svc.DeleteRule(context.Background(), 99)

	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestUpdateSettings_Toggle(t *testing.T) {
	settings := &fakeSettingsRepo{enabled: false}
	svc := NewService(&fakeRuleRepo{}, settings, nopLogger{})

	resp, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{DiscountsEnabled: true})

	require.NoError(t, err)
	assert.True(t, resp.DiscountsEnabled)

	resp, err = svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{DiscountsEnabled: false})

	require.NoError(t, err)
	assert.False(t, resp.DiscountsEnabled)
}
