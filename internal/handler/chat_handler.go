package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/chat-backend/internal/service"
)

type ChatHandler struct {
	svc service.ChatService
}

func NewChatHandler(svc service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type SendMessageRequest struct {
	SenderID   uint64  `json:"sender_id" form:"sender_id" validate:"required"`
	ReceiverID uint64  `json:"receiver_id" form:"receiver_id" validate:"required"`
	Message    *string `json:"message" form:"message"`
	ReplyTo    *uint64 `json:"reply_to" form:"reply_to"`
}

type MarkAsReadRequest struct {
	MessageID uint64 `json:"message_id" form:"message_id" validate:"required"`
}

type DeleteMessageRequest struct {
	MessageID uint64 `json:"message_id" form:"message_id" validate:"required"`
	SenderID  uint64 `json:"sender_id" form:"sender_id" validate:"required"`
}

type UserChatRequest struct {
	UserID uint64 `json:"user_id" form:"user_id" validate:"required"`
}

type InnerChatRequest struct {
	SenderID   uint64 `json:"sender_id" form:"sender_id" validate:"required"`
	ReceiverID uint64 `json:"receiver_id" form:"receiver_id" validate:"required"`
	Page       int    `json:"page" form:"page" validate:"omitempty,gte=1"`
	PerPage    int    `json:"per_page" form:"per_page" validate:"omitempty,gte=1"`
}

// SendMessage accepts JSON or multipart form; an attached file arrives as the
// multipart part named file_path.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, APIResponse{Code: http.StatusUnauthorized, Message: map[string][]string{"request": {"invalid request body"}}})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusUnauthorized, APIResponse{Code: http.StatusUnauthorized, Message: fieldErrors(err)})
	}

	in := service.SendMessageInput{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
		ReplyTo:    req.ReplyTo,
	}
	if fh, err := c.FormFile("file_path"); err == nil && fh != nil {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, APIResponse{Code: http.StatusInternalServerError, Message: "Error: " + err.Error()})
		}
		defer src.Close()
		in.File = &service.FileUpload{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Content:     src,
		}
	}

	if _, err := h.svc.SendMessage(c.Request().Context(), in); err != nil {
		var fe *service.FieldError
		if errors.As(err, &fe) {
			return c.JSON(http.StatusUnauthorized, APIResponse{Code: http.StatusUnauthorized, Message: map[string][]string{fe.Field: {fe.Message}}})
		}
		return c.JSON(http.StatusInternalServerError, APIResponse{Code: http.StatusInternalServerError, Message: "Error: " + err.Error()})
	}
	return c.JSON(http.StatusCreated, APIResponse{Code: http.StatusCreated, Message: "Message sent successfully!"})
}

func (h *ChatHandler) MarkAsRead(c echo.Context) error {
	var req MarkAsReadRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, APIResponse{Code: http.StatusUnauthorized, Message: map[string][]string{"request": {"invalid request body"}}})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusUnauthorized, APIResponse{Code: http.StatusUnauthorized, Message: fieldErrors(err)})
	}

	if err := h.svc.MarkAsRead(c.Request().Context(), req.MessageID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, APIResponse{Code: http.StatusBadRequest, Message: "Message Not Found!"})
		}
		return c.JSON(http.StatusInternalServerError, APIResponse{Code: http.StatusInternalServerError, Message: err.Error()})
	}
	return c.JSON(http.StatusOK, APIResponse{Code: http.StatusOK, Message: "Message read successfully!"})
}

func (h *ChatHandler) DeleteMessage(c echo.Context) error {
	var req DeleteMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, APIResponse{Code: http.StatusUnauthorized, Message: map[string][]string{"request": {"invalid request body"}}})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusUnauthorized, APIResponse{Code: http.StatusUnauthorized, Message: fieldErrors(err)})
	}

	if err := h.svc.DeleteMessage(c.Request().Context(), req.MessageID, req.SenderID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.JSON(http.StatusNotFound, APIResponse{Code: http.StatusNotFound, Error: "Message not found!"})
		}
		return c.JSON(http.StatusInternalServerError, APIResponse{Code: http.StatusInternalServerError, Message: err.Error()})
	}
	return c.JSON(http.StatusOK, APIResponse{Code: http.StatusOK, Message: "Message deleted successfully"})
}

func (h *ChatHandler) GetAllChatMessages(c echo.Context) error {
	var req UserChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, APIResponse{Code: http.StatusUnauthorized, Message: map[string][]string{"request": {"invalid request body"}}})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusUnauthorized, APIResponse{Code: http.StatusUnauthorized, Message: fieldErrors(err)})
	}

	rows, err := h.svc.ListConversations(c.Request().Context(), req.UserID)
	if err != nil {
		var fe *service.FieldError
		switch {
		case errors.As(err, &fe):
			return c.JSON(http.StatusUnauthorized, APIResponse{Code: http.StatusUnauthorized, Message: map[string][]string{fe.Field: {fe.Message}}})
		case errors.Is(err, service.ErrNoConversations):
			return c.JSON(http.StatusNotFound, APIResponse{Code: http.StatusNotFound, Message: "No chat found"})
		default:
			return c.JSON(http.StatusInternalServerError, APIResponse{Code: http.StatusInternalServerError, Message: "Something went wrong!", Error: err.Error()})
		}
	}
	return c.JSON(http.StatusOK, APIResponse{Code: http.StatusOK, Message: "Chat messages found successfully", Data: rows})
}

func (h *ChatHandler) GetInnerChat(c echo.Context) error {
	var req InnerChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, APIResponse{Code: http.StatusUnprocessableEntity, Message: map[string][]string{"request": {"invalid request body"}}})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, APIResponse{Code: http.StatusUnprocessableEntity, Message: fieldErrors(err)})
	}

	rows, page, err := h.svc.Thread(c.Request().Context(), service.ThreadInput{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Page:       req.Page,
		PerPage:    req.PerPage,
		BasePath:   c.Request().URL.Path,
	})
	if err != nil {
		var fe *service.FieldError
		if errors.As(err, &fe) {
			return c.JSON(http.StatusUnprocessableEntity, APIResponse{Code: http.StatusUnprocessableEntity, Message: map[string][]string{fe.Field: {fe.Message}}})
		}
		return c.JSON(http.StatusInternalServerError, APIResponse{Code: http.StatusInternalServerError, Message: "Something went wrong", Error: err.Error()})
	}
	return c.JSON(http.StatusOK, APIResponse{
		Code:       http.StatusOK,
		Message:    "Chat messages retrieved successfully",
		Data:       rows,
		Pagination: &page,
	})
}
