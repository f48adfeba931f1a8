package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"railbot/models"
)

func TestGetChatHistoryReturnsTurns(t *testing.T) {
	gin.SetMode(gin.TestMode)
	history := &stubHistory{turns: []models.ChatTurn{
		{User: "hi", Bot: "hello"},
		{User: "trains?", Bot: "where to?", Trains: []models.TrainOffer{{ID: "T1"}}},
	}}
	r := gin.New()
	r.GET("/api/chat/history", GetChatHistoryHandler(history))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat/history", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var turns []models.ChatTurn
	if err := json.Unmarshal(w.Body.Bytes(), &turns); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(turns) != 2 || turns[1].Trains[0].ID != "T1" {
		t.Fatalf("turns = %+v, want 2 with offers on the second", turns)
	}
}

func TestGetChatHistoryEmptyIsArray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/chat/history", GetChatHistoryHandler(&stubHistory{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat/history", nil))

	if body := w.Body.String(); body != "[]" {
		t.Fatalf("body = %q, want empty JSON array", body)
	}
}

func TestClearChatClearsHistoryAndContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &stubConcierge{}
	history := &stubHistory{turns: []models.ChatTurn{{User: "hi", Bot: "hello"}}}
	r := gin.New()
	r.POST("/api/chat/clear", ClearChatHandler(svc, history))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat/clear", nil)
	req.Header.Set("X-Session-ID", "session-9")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(history.turns) != 0 {
		t.Fatalf("history not cleared: %+v", history.turns)
	}
	if len(svc.cleared) != 1 || svc.cleared[0] != "session-9" {
		t.Fatalf("cleared sessions = %v, want [session-9]", svc.cleared)
	}

	// Clearing again is still a success.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chat/clear", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("second clear status = %d, want 200", w.Code)
	}
}
