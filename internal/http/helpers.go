package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"kisan-advisory/internal/chatbot/dialogue"
	"kisan-advisory/internal/chatbot/memory"
	apperrors "kisan-advisory/internal/common/errors"
)

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, err *apperrors.StandardError) {
	writeJSON(c, apperrors.HTTPStatus(err.Code), gin.H{"error": err})
}

func badRequest(c *gin.Context, details string) {
	writeError(c, apperrors.NewInvalidRequestError(details))
}

// writeChatError maps conversation errors onto standard errors.
func writeChatError(c *gin.Context, userID string, err error) {
	switch {
	case errors.Is(err, dialogue.ErrConversationNotFound):
		writeError(c, apperrors.NewConversationNotFoundError(userID))
	case errors.Is(err, memory.ErrSnapshotInvalid):
		writeError(c, apperrors.NewSnapshotInvalidError(err.Error()))
	case errors.Is(err, memory.ErrEmptyUserID), errors.Is(err, dialogue.ErrInvalidRole):
		badRequest(c, err.Error())
	case errors.Is(err, memory.ErrBackendFailed):
		writeError(c, apperrors.NewMemoryBackendFailedError(c.Request.Method+" "+c.FullPath(), err))
	default:
		writeError(c, apperrors.AsStandardError(err))
	}
}
