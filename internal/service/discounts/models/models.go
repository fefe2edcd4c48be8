package models

import (
	"time"

	"github.com/m04kA/SMC-TherapyService/internal/domain"
)

// Request модели

// CreateRuleRequest запрос администратора на создание правила скидки
type CreateRuleRequest struct {
	BookingsFrom int     `json:"bookingsFrom"`
	BookingsTo   int     `json:"bookingsTo"`
	Percent      int     `json:"percent"`
	Label        *string `json:"label,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

// UpdateSettingsRequest запрос на переключение скидок
type UpdateSettingsRequest struct {
	DiscountsEnabled bool `json:"discountsEnabled"`
}

// Response модели

// RuleResponse ответ с данными правила скидки
type RuleResponse struct {
	ID           int64   `json:"id"`
	BookingsFrom int     `json:"bookingsFrom"`
	BookingsTo   int     `json:"bookingsTo"`
	Percent      int     `json:"percent"`
	Label        *string `json:"label,omitempty"`
	IsActive     bool    `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// SettingsResponse ответ с настройками сервиса
type SettingsResponse struct {
	DiscountsEnabled bool      `json:"discountsEnabled"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.DiscountRule) *RuleResponse {
	if r == nil {
		return nil
	}

	return &RuleResponse{
		ID:           r.ID,
		BookingsFrom: r.BookingsFrom,
		BookingsTo:   r.BookingsTo,
		Percent:      r.Percent,
		Label:        r.Label,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
	}
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(rules []*domain.DiscountRule) *RuleListResponse {
	resp := &RuleListResponse{
		Rules: make([]RuleResponse, 0, len(rules)),
	}

	for _, rule := range rules {
		if ruleResp := FromDomainRule(rule); ruleResp != nil {
			resp.Rules = append(resp.Rules, *ruleResp)
		}
	}

	return resp
}

// FromDomainSettings конвертирует настройки сервиса в DTO
func FromDomainSettings(s *domain.ServiceSettings) *SettingsResponse {
	if s == nil {
		return nil
	}

	return &SettingsResponse{
		DiscountsEnabled: s.DiscountsEnabled,
		UpdatedAt:        s.UpdatedAt,
	}
}
