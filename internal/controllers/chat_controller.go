package controllers

import (
	"net/http"

	"register-server/internal/apperrors"
	"register-server/internal/logics"
	"register-server/internal/models"

	"github.com/labstack/echo/v4"
)

// ChatController handles HTTP requests for the register assistant.
type ChatController struct {
	chatService *logics.ChatService
}

// NewChatController returns a new instance of ChatController.
func NewChatController(chatService *logics.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// Chat handles POST /api/ai/chat
func (cc *ChatController) Chat(c echo.Context) error {
	var input struct {
		Messages []models.ChatMessage `json:"messages"`
	}
	if err := c.Bind(&input); err != nil {
		return fail(c, apperrors.New(apperrors.ErrInvalidInput, "invalid request body"))
	}

	answer, err := cc.chatService.Chat(c.Request().Context(), input.Messages)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, http.StatusOK, map[string]interface{}{"message": answer})
}
