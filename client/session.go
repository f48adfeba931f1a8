package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"railbot/models"

	"go.uber.org/zap"
)

// Config parameterizes a Session.
type Config struct {
	// BaseURL of the railbot server, without a trailing slash.
	BaseURL string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	Logger     *zap.Logger
	// AllowInstantConfirm accepts a ticket arriving with no pending selection.
	AllowInstantConfirm bool
	// StreamIdleTimeout bounds the wait between stream chunks; zero disables it.
	StreamIdleTimeout time.Duration
	// EffectBuffer sizes the effects channel; defaults to 64.
	EffectBuffer int
}

// turnRequest is the outbound payload of one conversation turn.
type turnRequest struct {
	Message string `json:"message"`
	TrainID string `json:"train_id,omitempty"`
}

// Session drives the conversation with the railbot server: it dispatches
// turns, decodes the streamed reply and keeps the booking state. One turn is
// in flight at a time; a second dispatch is rejected locally.
type Session struct {
	cfg     Config
	http    *http.Client
	logger  *zap.Logger
	state   *BookingState
	effects chan Effect

	inFlight atomic.Bool
}

// NewSession returns a session in the idle state with an empty history.
func NewSession(cfg Config) *Session {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.EffectBuffer <= 0 {
		cfg.EffectBuffer = 64
	}
	return &Session{
		cfg:     cfg,
		http:    cfg.HTTPClient,
		logger:  cfg.Logger,
		state:   NewBookingState(cfg.AllowInstantConfirm),
		effects: make(chan Effect, cfg.EffectBuffer),
	}
}

// Effects is the outbound channel the presentation layer subscribes to.
func (s *Session) Effects() <-chan Effect {
	return s.effects
}

// State returns a snapshot of the booking state. Only meaningful between
// turns.
func (s *Session) State() BookingState {
	return *s.state
}

// Bootstrap loads the persisted history and rehydrates the booking state
// from it, emitting the same effects live play would have produced.
func (s *Session) Bootstrap(ctx context.Context) ([]models.ChatTurn, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/api/chat/history", nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Err: fmt.Errorf("history returned status %d", resp.StatusCode)}
	}

	var turns []models.ChatTurn
	if err := json.NewDecoder(resp.Body).Decode(&turns); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	s.state = Rehydrate(turns, s.cfg.AllowInstantConfirm, s.emit)
	return turns, nil
}

// Send dispatches a plain conversation turn. While a selection outcome is
// still awaited its train ID rides along, per the outbound contract.
func (s *Session) Send(ctx context.Context, message string) (*TurnResult, error) {
	trainID := ""
	if s.state.AwaitingOutcome {
		trainID = s.state.PendingTrainID
	}
	return s.dispatch(ctx, message, trainID)
}

// Select commits the choice of a train and dispatches the selection turn.
// A second Select while one is pending is rejected locally, without a
// network call.
func (s *Session) Select(ctx context.Context, trainID, message string) (*TurnResult, error) {
	if s.inFlight.Load() {
		return nil, ErrTurnInFlight
	}
	effect, err := s.state.RequestSelection(trainID)
	if err != nil {
		s.emit(Effect{Kind: EffectNotice, Text: selectionNotice(err)})
		return nil, err
	}
	s.emit(effect)
	return s.dispatch(ctx, message, trainID)
}

// Reset clears the server-side history and reinitializes the session.
// Resetting an already-empty session succeeds the same way.
func (s *Session) Reset(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/api/chat/clear", nil)
	if err != nil {
		return err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &TransportError{Err: fmt.Errorf("clear returned status %d", resp.StatusCode)}
	}

	s.state = NewBookingState(s.cfg.AllowInstantConfirm)
	return nil
}

func (s *Session) dispatch(ctx context.Context, message, trainID string) (*TurnResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrTurnInFlight
	}
	defer s.inFlight.Store(false)

	body, err := json.Marshal(turnRequest{Message: message, TrainID: trainID})
	if err != nil {
		return nil, err
	}

	// A stalled stream is aborted by cancelling the turn context when no
	// chunk arrives within the idle timeout.
	turnCtx := ctx
	var idle *time.Timer
	if s.cfg.StreamIdleTimeout > 0 {
		var cancel context.CancelFunc
		turnCtx, cancel = context.WithCancel(ctx)
		defer cancel()
		idle = time.AfterFunc(s.cfg.StreamIdleTimeout, cancel)
		defer idle.Stop()
	}

	req, err := http.NewRequestWithContext(turnCtx, http.MethodPost, s.cfg.BaseURL+"/api/chat/stream", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, s.failTurn(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, s.failTurn(fmt.Errorf("stream returned status %d", resp.StatusCode))
	}

	parser := NewFrameParser(s.logger)
	reducer := NewTurnReducer(s.emit)
	buf := make([]byte, 4096)
	for !reducer.Done() {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if idle != nil {
				idle.Reset(s.cfg.StreamIdleTimeout)
			}
			for _, frame := range parser.Feed(buf[:n]) {
				if applyErr := reducer.Apply(frame); applyErr != nil {
					s.logger.Warn("protocol violation in turn", zap.Error(applyErr))
				}
				if reducer.Done() {
					break
				}
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return nil, s.failTurn(readErr)
		}
	}
	parser.Close()

	// A stream that ends before its end-of-turn frame was cut off; nothing
	// it carried can be trusted as complete.
	if !reducer.Done() {
		return nil, s.failTurn(io.ErrUnexpectedEOF)
	}

	result := reducer.Result()
	effects, resolveErr := s.state.ResolveTurn(result)
	if resolveErr != nil {
		result.Violations = append(result.Violations, resolveErr)
		s.logger.Warn("turn resolution rejected", zap.Error(resolveErr))
	}
	for _, effect := range effects {
		s.emit(effect)
	}
	return &result, nil
}

// failTurn discards the turn's buffered state, rolls the UI back to an
// interactive configuration and wraps the cause.
func (s *Session) failTurn(cause error) error {
	for _, effect := range s.state.FailTurn() {
		s.emit(effect)
	}
	s.emit(Effect{Kind: EffectNotice, Text: "Connection problem. Please try again."})
	return &TransportError{Err: cause}
}

func (s *Session) emit(effect Effect) {
	select {
	case s.effects <- effect:
	default:
		s.logger.Warn("dropping effect, subscriber not keeping up", zap.String("kind", string(effect.Kind)))
	}
}

func selectionNotice(err error) string {
	switch err {
	case ErrSelectionPending:
		return "A selection is already pending. Please wait for it to resolve."
	case ErrBookingConfirmed:
		return "This booking is already confirmed."
	default:
		return err.Error()
	}
}
