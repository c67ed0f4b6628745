package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// EventKind identifies a live game event.
type EventKind string

// Event kinds sent by the game server
const (
	EventAttack     EventKind = "attack"
	EventSelfCast   EventKind = "self_cast"
	EventDeposit    EventKind = "deposit"
	EventWithdrawal EventKind = "withdrawal"
)

// Event is one message from the live stream. Target is empty for self-casts
// and balance changes.
type Event struct {
	Kind    EventKind `json:"kind"`
	Source  string    `json:"source"`
	Target  string    `json:"target,omitempty"`
	Success bool      `json:"success"`
}

// Validate checks that the event names the players its kind needs.
func (e Event) Validate() error {
	switch e.Kind {
	case EventAttack:
		if e.Source == "" || e.Target == "" {
			return fmt.Errorf("attack needs source and target")
		}
	case EventSelfCast, EventDeposit, EventWithdrawal:
		if e.Source == "" {
			return fmt.Errorf("%s needs a source", e.Kind)
		}
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
	return nil
}

// Backoff limits for reconnecting
const (
	InitialBackoff = time.Second
	MaxBackoff     = 60 * time.Second
)

// Stream receives game events over a websocket and reconnects on failure.
type Stream struct {
	URL    string
	Dialer *websocket.Dialer

	// OnConnect and OnDisconnect are called from the stream goroutine.
	OnConnect    func()
	OnDisconnect func()

	initialBackoff time.Duration
}

// NewStream creates a stream for url.
func NewStream(url string) *Stream {
	return &Stream{URL: url, Dialer: websocket.DefaultDialer, initialBackoff: InitialBackoff}
}

// Run delivers events to out until ctx is done. Malformed messages are
// skipped. Every reconnect waits out the backoff, which doubles up to
// MaxBackoff and only resets once a connection has delivered a message.
func (s *Stream) Run(ctx context.Context, out chan<- Event) {
	initial := s.initialBackoff
	if initial <= 0 {
		initial = InitialBackoff
	}
	backoff := initial
	for ctx.Err() == nil {
		log.Printf("Connecting to event stream: %s", s.URL)
		conn, _, err := s.Dialer.DialContext(ctx, s.URL, nil)
		if err != nil {
			log.Printf("Dial error: %v. Retrying in %v...", err, backoff)
		} else {
			if s.OnConnect != nil {
				s.OnConnect()
			}
			received := s.read(ctx, conn, out)
			conn.Close()
			if s.OnDisconnect != nil {
				s.OnDisconnect()
			}
			if received {
				backoff = initial
			}
			log.Printf("Event stream closed. Reconnecting in %v...", backoff)
		}
		if !sleep(ctx, backoff) {
			return
		}
		backoff = min(backoff*2, MaxBackoff)
	}
}

// read forwards events until the connection fails or ctx ends. It reports
// whether any message arrived.
func (s *Stream) read(ctx context.Context, conn *websocket.Conn, out chan<- Event) bool {
	// Unblock ReadMessage when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	received := false
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("Read error: %v", err)
			}
			return received
		}
		received = true
		var ev Event
		if err := json.Unmarshal(message, &ev); err != nil {
			continue
		}
		if err := ev.Validate(); err != nil {
			log.Printf("Dropping event: %v", err)
			continue
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return received
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
