package handler

import "github.com/badgekit/backend/internal/interfaces/http/dto"

// The types below only describe response envelopes in the generated API
// docs. Handlers write dto.Response.

// APIResponse is the success envelope with a typed data field.
// @Description Success envelope
type APIResponse[T any] struct {
	Success bool      `json:"success" example:"true"`
	Data    T         `json:"data,omitempty"`
	Meta    *dto.Meta `json:"meta,omitempty"`
}

// ErrorResponse is the failure envelope.
// @Description Failure envelope
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}
