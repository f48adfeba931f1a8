package client

import (
	"testing"

	"railbot/models"
)

func feedAll(t *testing.T, p *FrameParser, chunks ...string) []Frame {
	t.Helper()
	var frames []Frame
	for _, chunk := range chunks {
		frames = append(frames, p.Feed([]byte(chunk))...)
	}
	return frames
}

func TestFrameParserDecodesTurn(t *testing.T) {
	p := NewFrameParser(nil)

	stream := "data: {\"type\":\"text\",\"content\":\"Found \"}\n" +
		"data: {\"type\":\"text\",\"content\":\"3 trains\"}\n" +
		"data: {\"type\":\"offers\",\"content\":[{\"id\":\"T1\"},{\"id\":\"T2\"},{\"id\":\"T3\"}]}\n" +
		"data: {\"type\":\"done\",\"content\":null}\n"

	frames := feedAll(t, p, stream)
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}
	if frames[0].Kind != FrameText || frames[0].Text != "Found " {
		t.Fatalf("frame 0 = %+v, want text %q", frames[0], "Found ")
	}
	if frames[1].Kind != FrameText || frames[1].Text != "3 trains" {
		t.Fatalf("frame 1 = %+v, want text %q", frames[1], "3 trains")
	}
	if frames[2].Kind != FrameOffers || len(frames[2].Offers) != 3 {
		t.Fatalf("frame 2 = %+v, want 3 offers", frames[2])
	}
	if frames[2].Offers[1].ID != "T2" {
		t.Fatalf("offer 1 ID = %q, want T2", frames[2].Offers[1].ID)
	}
	if frames[3].Kind != FrameDone {
		t.Fatalf("frame 3 = %+v, want done", frames[3])
	}
}

func TestFrameParserChunkBoundaryIndependence(t *testing.T) {
	stream := "data: {\"type\":\"text\",\"content\":\"hello\"}\n" +
		"data: {\"type\":\"offers\",\"content\":[{\"id\":\"T1\"}]}\n" +
		"data: {\"type\":\"done\",\"content\":null}\n"

	whole := feedAll(t, NewFrameParser(nil), stream)

	// Re-feed the same stream at every possible split point; the frame
	// sequence must not change.
	for cut := 0; cut <= len(stream); cut++ {
		p := NewFrameParser(nil)
		frames := feedAll(t, p, stream[:cut], stream[cut:])
		if len(frames) != len(whole) {
			t.Fatalf("cut %d: got %d frames, want %d", cut, len(frames), len(whole))
		}
		for i := range frames {
			if frames[i].Kind != whole[i].Kind {
				t.Fatalf("cut %d: frame %d kind = %q, want %q", cut, i, frames[i].Kind, whole[i].Kind)
			}
		}
	}

	// Byte-at-a-time delivery.
	p := NewFrameParser(nil)
	var frames []Frame
	for i := 0; i < len(stream); i++ {
		frames = append(frames, p.Feed([]byte{stream[i]})...)
	}
	if len(frames) != len(whole) {
		t.Fatalf("byte-at-a-time: got %d frames, want %d", len(frames), len(whole))
	}
}

func TestFrameParserDiscardsNoise(t *testing.T) {
	p := NewFrameParser(nil)

	frames := feedAll(t, p,
		": keep-alive\n",
		"\n",
		"event: ping\n",
		"data: {\"type\":\"text\",\"content\":\"ok\"}\n",
	)
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if frames[0].Text != "ok" {
		t.Fatalf("frame text = %q, want ok", frames[0].Text)
	}
}

func TestFrameParserDropsMalformedAndContinues(t *testing.T) {
	p := NewFrameParser(nil)

	frames := feedAll(t, p,
		"data: {\"type\":\"text\",\"content\":\"before\"}\n",
		"data: {not json}\n",
		"data: {\"type\":\"mystery\",\"content\":1}\n",
		"data: {\"type\":\"offers\",\"content\":\"not an array\"}\n",
		"data: {\"type\":\"text\",\"content\":\"after\"}\n",
	)
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].Text != "before" || frames[1].Text != "after" {
		t.Fatalf("frames = %+v, want before/after", frames)
	}
}

func TestFrameParserHandlesCRLF(t *testing.T) {
	p := NewFrameParser(nil)

	frames := feedAll(t, p, "data: {\"type\":\"text\",\"content\":\"crlf\"}\r\n")
	if len(frames) != 1 || frames[0].Text != "crlf" {
		t.Fatalf("frames = %+v, want one crlf text frame", frames)
	}
}

func TestFrameParserDiscardsUnterminatedTail(t *testing.T) {
	p := NewFrameParser(nil)

	frames := feedAll(t, p, "data: {\"type\":\"text\",\"content\":\"partial\"}")
	if len(frames) != 0 {
		t.Fatalf("got %d frames before newline, want 0", len(frames))
	}
	p.Close()

	// The discarded tail must not bleed into a subsequent feed.
	frames = feedAll(t, p, "data: {\"type\":\"text\",\"content\":\"next\"}\n")
	if len(frames) != 1 || frames[0].Text != "next" {
		t.Fatalf("frames after Close = %+v, want one next frame", frames)
	}
}

func TestFrameParserEmptyOffersStaysPresent(t *testing.T) {
	p := NewFrameParser(nil)

	frames := feedAll(t, p, "data: {\"type\":\"offers\",\"content\":[]}\n")
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	if frames[0].Kind != FrameOffers {
		t.Fatalf("frame kind = %q, want offers", frames[0].Kind)
	}
	if frames[0].Offers == nil {
		// Present-but-empty must survive decoding as an empty slice.
		t.Fatalf("empty offers decoded as nil")
	}
}

func TestFrameParserConfirmationPayload(t *testing.T) {
	p := NewFrameParser(nil)

	frames := feedAll(t, p, "data: {\"type\":\"confirmation\",\"content\":{\"pnr\":\"T1234\",\"passenger\":{\"name\":\"Asha\"},\"booking\":{\"seats\":2,\"seat_numbers\":[\"E10\",\"E9\"],\"total_price\":900}}}\n")
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	ticket := frames[0].Ticket
	if ticket == nil || ticket.PNR != "T1234" {
		t.Fatalf("ticket = %+v, want PNR T1234", ticket)
	}
	want := models.TicketBooking{Seats: 2, SeatNumbers: []string{"E10", "E9"}, TotalPrice: 900}
	if ticket.Booking.Seats != want.Seats || ticket.Booking.TotalPrice != want.TotalPrice {
		t.Fatalf("booking = %+v, want %+v", ticket.Booking, want)
	}
}
