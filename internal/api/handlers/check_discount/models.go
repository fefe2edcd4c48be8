package check_discount

import "github.com/m04kA/SMC-TherapyService/internal/domain"

// DiscountResponse HTTP response model.
// Discount == nil означает, что скидка пользователю не положена.
type DiscountResponse struct {
	Discount *DiscountData `json:"discount"`
}

// DiscountData данные применимой скидки
type DiscountData struct {
	Percent int     `json:"percent"`
	Label   *string `json:"label,omitempty"`
}

// FromDomainDiscount конвертирует результат резолва в HTTP response
func FromDomainDiscount(d *domain.Discount) *DiscountResponse {
	if d == nil {
		return &DiscountResponse{Discount: nil}
	}

	return &DiscountResponse{
		Discount: &DiscountData{
			Percent: d.Percent,
			Label:   d.Label,
		},
	}
}
