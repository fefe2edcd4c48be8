package domain

import "time"

// DiscountRule represents an admin-authored loyalty discount rule.
// The rule applies to users whose confirmed-booking count falls into
// the inclusive range [BookingsFrom, BookingsTo]. Ranges may overlap;
// resolution picks the most specific rule (see usecase/resolve_discount).
type DiscountRule struct {
	ID           int64
	BookingsFrom int
	BookingsTo   int
	Percent      int
	Label        *string
	IsActive     bool

	CreatedAt time.Time
}

// Matches returns true if the rule range covers the given confirmed-booking count
func (r *DiscountRule) Matches(count int) bool {
	return r.BookingsFrom <= count && count <= r.BookingsTo
}

// Width returns the size of the rule range.
// Narrower ranges are considered more specific during resolution.
func (r *DiscountRule) Width() int {
	return r.BookingsTo - r.BookingsFrom
}

// Discount результат резолва скидки для пользователя
type Discount struct {
	Percent int
	Label   *string
}

// ServiceSettings represents the single-row process-wide settings
type ServiceSettings struct {
	DiscountsEnabled bool
	UpdatedAt        time.Time
}
