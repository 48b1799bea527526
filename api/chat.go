package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Chatter interface {
	Chat(ctx context.Context, conversationID, message string) (string, error)
}

type ChatHandler struct {
	assistant Chatter
}

type chatResponse struct {
	ConversationID string `json:"conversationId"`
	Reply          string `json:"reply"`
}

func NewChatHandler(assistant Chatter) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

func (h *ChatHandler) Register(router *gin.RouterGroup) {
	router.GET("/chat", h.chat)
}

func (h *ChatHandler) chat(c *gin.Context) {
	message := c.DefaultQuery("message", "你好，请介绍一下图灵航空")
	conversationID := c.Query("conversationId")
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	reply, err := h.assistant.Chat(c.Request.Context(), conversationID, message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, chatResponse{ConversationID: conversationID, Reply: reply})
}
