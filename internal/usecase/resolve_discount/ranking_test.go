package resolve_discount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

func TestPickBestRule_NarrowerRangeWins(t *testing.T) {
	rules := []*domain.DiscountRule{
		rule(1, 1, 100, 5),
		rule(2, 5, 5, 20),
	}

	best := pickBestRule(rules, 5)

	require.NotNil(t, best)
	assert.Equal(t, int64(2), best.ID)
}

func TestPickBestRule_EqualWidthHigherFromWins(t *testing.T) {
	rules := []*domain.DiscountRule{
		rule(1, 3, 7, 10),
		rule(2, 5, 9, 15),
	}

	best := pickBestRule(rules, 6)

	require.NotNil(t, best)
	assert.Equal(t, int64(2), best.ID)
}

func TestPickBestRule_SkipsInactive(t *testing.T) {
	inactive := rule(1, 5, 5, 50)
	inactive.IsActive = false

	rules := []*domain.DiscountRule{
		inactive,
		rule(2, 1, 100, 5),
	}

	best := pickBestRule(rules, 5)

	require.NotNil(t, best)
	assert.Equal(t, int64(2), best.ID)
}

func TestPickBestRule_InclusiveBounds(t *testing.T) {
	rules := []*domain.DiscountRule{rule(1, 3, 5, 10)}

	assert.Nil(t, pickBestRule(rules, 2))
	assert.NotNil(t, pickBestRule(rules, 3))
	assert.NotNil(t, pickBestRule(rules, 5))
	assert.Nil(t, pickBestRule(rules, 6))
}

func TestPickBestRule_NoRules(t *testing.T) {
	assert.Nil(t, pickBestRule(nil, 5))
	assert.Nil(t, pickBestRule([]*domain.DiscountRule{}, 5))
}
