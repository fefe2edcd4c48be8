package resolve_discount

import (
	"sort"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

// pickBestRule выбирает наиболее подходящее правило для count подтверждённых
// бронирований. Возвращает nil, если ни одно активное правило не покрывает count.
//
// Диапазоны правил могут пересекаться: админ может завести широкое правило
// "1-100: 5%" и узкое "5-5: 20% за пятую сессию". Побеждает более
// специфичное правило:
//  1. Меньшая ширина диапазона (bookings_to - bookings_from);
//  2. При равной ширине - большее значение bookings_from
//     (правило про более высокий рубеж лояльности).
//
// Функция чистая и не зависит от хранилища.
func pickBestRule(rules []*domain.DiscountRule, count int) *domain.DiscountRule {
	candidates := make([]*domain.DiscountRule, 0, len(rules))
	for _, rule := range rules {
		if rule.IsActive && rule.Matches(count) {
			candidates = append(candidates, rule)
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return lessSpecific(candidates[j], candidates[i])
	})

	return candidates[0]
}

// lessSpecific возвращает true, если правило a менее специфично, чем b
func lessSpecific(a, b *domain.DiscountRule) bool {
	if a.Width() != b.Width() {
		return a.Width() > b.Width()
	}
	return a.BookingsFrom < b.BookingsFrom
}
