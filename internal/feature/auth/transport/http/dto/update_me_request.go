package dto

// UpdateMeReq represents the request body for PATCH /users/me.
// Password fields are intentionally absent; password changes have their
// own route so the credential freshness stamp is never skipped.
type UpdateMeReq struct {
	Name  string `json:"name" binding:"omitempty,min=3,max=100"`
	Email string `json:"email" binding:"omitempty,email"`

	// Password mirrors a common client mistake so the handler can reject
	// it with a pointed message instead of silently ignoring it.
	Password string `json:"password"`
}
