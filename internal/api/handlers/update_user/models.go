package update_user

// UpdateUserRequest HTTP request model.
// Поля опциональны: применяются только переданные.
type UpdateUserRequest struct {
	IsBlocked  *bool   `json:"isBlocked,omitempty"`
	AdminNotes *string `json:"adminNotes,omitempty"`
}
