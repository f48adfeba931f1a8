package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	historyRepo "railbot/database/repository/history"
	"railbot/models"
	"railbot/services/concierge"
	"railbot/utils"
)

// historyWindow is how many recent turns ride along as model context.
const historyWindow = 6

// ChatStreamRequest is the inbound payload of one conversation turn.
type ChatStreamRequest struct {
	Message string `json:"message" binding:"required"`
	TrainID string `json:"train_id"`
}

// sseSink writes turn facts to the response as server-sent event frames,
// flushing after each one so text renders incrementally.
type sseSink struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSESink(c *gin.Context) (*sseSink, error) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	return &sseSink{w: c.Writer, flusher: flusher}, nil
}

func (s *sseSink) frame(frameType string, content any) error {
	payload, err := json.Marshal(map[string]any{"type": frameType, "content": content})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

func (s *sseSink) Text(_ context.Context, delta string) error {
	return s.frame("text", delta)
}

func (s *sseSink) Offers(_ context.Context, offers []models.TrainOffer) error {
	return s.frame("offers", offers)
}

func (s *sseSink) Ticket(_ context.Context, ticket *models.Ticket) error {
	return s.frame("confirmation", ticket)
}

// ChatStreamHandler runs one conversation turn, streaming the reply as SSE
// frames and persisting the completed turn. The done frame is written only
// after every fact of the turn; a failed turn ends without one and the
// client treats the truncation as a transport failure.
func ChatStreamHandler(svc concierge.ConciergeService, history historyRepo.HistoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		var req ChatStreamRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		sessionID := c.GetHeader("X-Session-ID")
		if sessionID == "" {
			sessionID = "default"
		}

		recent, err := history.ListRecent(c.Request.Context(), historyWindow)
		if err != nil {
			logger.Error("Failed to load chat history", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load chat history")
			return
		}

		sink, err := newSSESink(c)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
			return
		}

		outcome, err := svc.StreamTurn(c.Request.Context(), concierge.TurnRequest{
			SessionID: sessionID,
			Message:   req.Message,
			TrainID:   req.TrainID,
			History:   recent,
		}, sink)
		if err != nil {
			// The stream is already open; ending it without a done frame
			// tells the client the turn failed.
			logger.Error("Turn failed mid-stream", zap.String("session", sessionID), zap.Error(err))
			return
		}

		if err := sink.frame("done", nil); err != nil {
			logger.Error("Failed to write done frame", zap.Error(err))
			return
		}

		turn := models.ChatTurn{
			User:   req.Message,
			Bot:    outcome.Text,
			Trains: outcome.Offers,
			Ticket: outcome.Ticket,
		}
		if _, err := history.Append(c.Request.Context(), turn); err != nil {
			logger.Error("Failed to persist chat turn", zap.Error(err))
		}
	}
}
