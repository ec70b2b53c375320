package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kisan-advisory/internal/chatbot/dialogue"
	"kisan-advisory/internal/common/logger"
)

const maxSnapshotBytes = 1 << 20

type chatHandler struct {
	chat   Chat
	logger logger.Logger
}

type chatRequest struct {
	Message string                 `json:"message"`
	UserID  string                 `json:"user_id"`
	Context map[string]interface{} `json:"context"`
}

type chatResponse struct {
	dialogue.Payload
	Kind dialogue.ReplyKind `json:"kind"`
}

// Message always answers 200 with a reply once the request is valid; failed
// turns come back as the error reply.
func (h *chatHandler) Message(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		badRequest(c, "message is required")
		return
	}

	reply := h.chat.ProcessMessage(c.Request.Context(), req.Message, req.Context, req.UserID)
	if er, ok := reply.(dialogue.ErrorReply); ok {
		h.logger.Warn("chat turn answered with error reply", map[string]interface{}{
			"conversationId": er.ConversationID,
			"error":          er.Err.Error(),
		})
	}
	writeJSON(c, http.StatusOK, chatResponse{Payload: reply.Body(), Kind: reply.Kind()})
}

func (h *chatHandler) Suggestions(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"suggestions": h.chat.Suggestions()})
}

func (h *chatHandler) History(c *gin.Context) {
	userID := c.Param("userId")
	history, err := h.chat.History(c.Request.Context(), userID)
	if err != nil {
		writeChatError(c, userID, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"user_id": userID, "history": history})
}

func (h *chatHandler) Summary(c *gin.Context) {
	userID := c.Param("userId")
	summary, err := h.chat.Summary(c.Request.Context(), userID)
	if err != nil {
		writeChatError(c, userID, err)
		return
	}
	writeJSON(c, http.StatusOK, summary)
}

func (h *chatHandler) Clear(c *gin.Context) {
	userID := c.Param("userId")
	if err := h.chat.Clear(c.Request.Context(), userID); err != nil {
		writeChatError(c, userID, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *chatHandler) Export(c *gin.Context) {
	userID := c.Param("userId")
	snapshot, err := h.chat.Export(c.Request.Context(), userID)
	if err != nil {
		writeChatError(c, userID, err)
		return
	}
	c.Data(http.StatusOK, "application/json", snapshot)
}

func (h *chatHandler) Import(c *gin.Context) {
	userID := c.Param("userId")
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSnapshotBytes))
	if err != nil {
		badRequest(c, "unreadable body")
		return
	}
	if err := h.chat.Import(c.Request.Context(), userID, body); err != nil {
		writeChatError(c, userID, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *chatHandler) Stats(c *gin.Context) {
	stats, err := h.chat.Stats(c.Request.Context())
	if err != nil {
		writeChatError(c, "", err)
		return
	}
	writeJSON(c, http.StatusOK, stats)
}
