package client

import (
	"bytes"
	"encoding/json"
	"strings"

	"railbot/models"

	"go.uber.org/zap"
)

// FrameKind discriminates the decoded stream frames.
type FrameKind string

const (
	FrameText         FrameKind = "text"
	FrameOffers       FrameKind = "offers"
	FrameConfirmation FrameKind = "confirmation"
	FrameDone         FrameKind = "done"
)

// Frame is one decoded unit of a streamed turn. Exactly one of the payload
// fields is meaningful, per Kind.
type Frame struct {
	Kind   FrameKind
	Text   string
	Offers []models.TrainOffer
	Ticket *models.Ticket
}

// framePrefix marks protocol lines; anything else on the stream is
// keep-alive noise.
const framePrefix = "data: "

// wireFrame is the JSON payload carried after the prefix.
type wireFrame struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

// FrameParser turns an append-only byte stream into frames. It keeps at most
// one incomplete trailing line buffered between Feed calls, so the frame
// sequence is independent of how the stream is chunked.
type FrameParser struct {
	buf    []byte
	logger *zap.Logger
}

// NewFrameParser returns a parser logging malformed frames to logger.
func NewFrameParser(logger *zap.Logger) *FrameParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FrameParser{logger: logger}
}

// Feed appends a chunk and returns every frame completed by it, in arrival
// order. Segments without the protocol prefix are discarded silently;
// segments whose payload fails to decode are dropped and logged.
func (p *FrameParser) Feed(chunk []byte) []Frame {
	p.buf = append(p.buf, chunk...)

	var frames []Frame
	for {
		i := bytes.IndexByte(p.buf, '\n')
		if i < 0 {
			break
		}
		line := string(p.buf[:i])
		p.buf = p.buf[i+1:]

		if frame, ok := p.parseLine(line); ok {
			frames = append(frames, frame)
		}
	}
	return frames
}

// Close discards any unterminated trailing data. A line that never received
// its newline is never promoted to a frame.
func (p *FrameParser) Close() {
	p.buf = nil
}

func (p *FrameParser) parseLine(line string) (Frame, bool) {
	line = strings.TrimSuffix(line, "\r")
	if !strings.HasPrefix(line, framePrefix) {
		return Frame{}, false
	}

	var wire wireFrame
	if err := json.Unmarshal([]byte(line[len(framePrefix):]), &wire); err != nil {
		p.logger.Warn("dropping malformed frame", zap.Error(err))
		return Frame{}, false
	}

	switch FrameKind(wire.Type) {
	case FrameText:
		var text string
		if err := json.Unmarshal(wire.Content, &text); err != nil {
			p.logger.Warn("dropping malformed text frame", zap.Error(err))
			return Frame{}, false
		}
		return Frame{Kind: FrameText, Text: text}, true
	case FrameOffers:
		var offers []models.TrainOffer
		if err := json.Unmarshal(wire.Content, &offers); err != nil {
			p.logger.Warn("dropping malformed offers frame", zap.Error(err))
			return Frame{}, false
		}
		return Frame{Kind: FrameOffers, Offers: offers}, true
	case FrameConfirmation:
		var ticket models.Ticket
		if err := json.Unmarshal(wire.Content, &ticket); err != nil {
			p.logger.Warn("dropping malformed confirmation frame", zap.Error(err))
			return Frame{}, false
		}
		return Frame{Kind: FrameConfirmation, Ticket: &ticket}, true
	case FrameDone:
		return Frame{Kind: FrameDone}, true
	default:
		p.logger.Warn("dropping frame with unknown type", zap.String("type", wire.Type))
		return Frame{}, false
	}
}
