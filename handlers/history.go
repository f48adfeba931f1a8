package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	historyRepo "railbot/database/repository/history"
	"railbot/models"
	"railbot/services/concierge"
	"railbot/utils"
)

// historyPageSize caps how many turns a history fetch returns.
const historyPageSize = 50

// GetChatHistoryHandler returns the persisted turns in chronological order,
// as a JSON array a reloading client can rehydrate from.
func GetChatHistoryHandler(history historyRepo.HistoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		turns, err := history.ListRecent(c.Request.Context(), historyPageSize)
		if err != nil {
			logger.Error("Failed to fetch chat history", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch chat history")
			return
		}
		if turns == nil {
			turns = []models.ChatTurn{}
		}
		c.JSON(http.StatusOK, turns)
	}
}

// ClearChatHandler deletes the conversation history and the session's cached
// offer context. Clearing an empty history succeeds the same way.
func ClearChatHandler(svc concierge.ConciergeService, history historyRepo.HistoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			sessionID = "default"
		}

		if err := history.Clear(c.Request.Context()); err != nil {
			logger.Error("Failed to clear chat history", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to clear chat history")
			return
		}
		if err := svc.ClearContext(c.Request.Context(), sessionID); err != nil {
			logger.Warn("Failed to clear offer context", zap.Error(err))
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
