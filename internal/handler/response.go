package handler

import "github.com/shinyyama/chat-backend/internal/service"

// APIResponse is the envelope every chat endpoint answers with. Message holds
// either a human-readable string or a per-field validation error map.
type APIResponse struct {
	Code       int               `json:"code"`
	Message    interface{}       `json:"message,omitempty"`
	Data       interface{}       `json:"data,omitempty"`
	Pagination *service.PageInfo `json:"pagination,omitempty"`
	Error      string            `json:"error,omitempty"`
}
