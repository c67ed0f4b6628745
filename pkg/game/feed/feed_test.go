package feed

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"quickhacks/pkg/game/world"
)

func TestStatic_Fetch(t *testing.T) {
	s := Static{Players: []world.PlayerRecord{{Address: "0xa", Balance: 5}}}
	r := s.Fetch(context.Background())
	if !r.OK() || len(r.Players) != 1 {
		t.Fatalf("Fetch = %+v", r)
	}
	r.Players[0].Balance = 99
	if s.Players[0].Balance != 5 {
		t.Error("Fetch should return a copy")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if s.Fetch(ctx).OK() {
		t.Error("cancelled fetch should fail")
	}
}

func TestSubgraph_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		var req graphQLRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if !strings.Contains(req.Query, `currentBalance_gt: "100"`) || !strings.Contains(req.Query, "first: 500") {
			t.Errorf("unexpected query: %s", req.Query)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"data":{"players":[
			{"id":"0xAAA","currentBalance":"5000"},
			{"id":"0xbbb","currentBalance":"not-a-number"},
			{"id":"0xccc","currentBalance":"250"}]}}`)
	}))
	defer srv.Close()

	r := NewSubgraph(srv.URL).Fetch(context.Background())
	if !r.OK() {
		t.Fatalf("Fetch error: %v", r.Err)
	}
	want := []world.PlayerRecord{{Address: "0xAAA", Balance: 5000}, {Address: "0xccc", Balance: 250}}
	if len(r.Players) != len(want) {
		t.Fatalf("got %+v", r.Players)
	}
	for i := range want {
		if r.Players[i] != want[i] {
			t.Errorf("players[%d] = %+v, want %+v", i, r.Players[i], want[i])
		}
	}
}

func TestSubgraph_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"graphql errors", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"errors":[{"message":"bad query"}]}`)
		}},
		{"garbage", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{{{`)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			r := NewSubgraph(srv.URL).Fetch(context.Background())
			if r.OK() || len(r.Players) != 0 {
				t.Errorf("Fetch = %+v, want failure with no players", r)
			}
		})
	}
}

func TestEvent_Validate(t *testing.T) {
	tests := []struct {
		ev Event
		ok bool
	}{
		{Event{Kind: EventAttack, Source: "0xa", Target: "0xb"}, true},
		{Event{Kind: EventAttack, Source: "0xa"}, false},
		{Event{Kind: EventSelfCast, Source: "0xa"}, true},
		{Event{Kind: EventDeposit}, false},
		{Event{Kind: "dance", Source: "0xa"}, false},
	}
	for _, tt := range tests {
		if err := tt.ev.Validate(); (err == nil) != tt.ok {
			t.Errorf("Validate(%+v) = %v", tt.ev, err)
		}
	}
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestStream_Run(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer c.Close()
		c.WriteMessage(websocket.TextMessage, []byte(`not json`))
		c.WriteMessage(websocket.TextMessage, []byte(`{"kind":"attack","source":"0xa"}`))
		c.WriteJSON(Event{Kind: EventAttack, Source: "0xa", Target: "0xb", Success: true})
		c.WriteJSON(Event{Kind: EventSelfCast, Source: "0xc"})
		// Hold the connection open until the client goes away.
		c.ReadMessage()
	}))
	defer srv.Close()

	var connects atomic.Int32
	s := NewStream(wsURL(srv))
	s.OnConnect = func() { connects.Add(1) }

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	events := make(chan Event)
	done := make(chan struct{})
	go func() {
		s.Run(ctx, events)
		close(done)
	}()

	first := <-events
	if first.Kind != EventAttack || first.Target != "0xb" || !first.Success {
		t.Errorf("first event = %+v", first)
	}
	second := <-events
	if second.Kind != EventSelfCast || second.Source != "0xc" {
		t.Errorf("second event = %+v", second)
	}
	if connects.Load() != 1 {
		t.Errorf("connects = %d", connects.Load())
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestStream_StopsWhileBackingOff(t *testing.T) {
	s := NewStream("ws://127.0.0.1:1/none")
	s.initialBackoff = 10 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	done := make(chan struct{})
	go func() {
		s.Run(ctx, make(chan Event))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run kept retrying after the context ended")
	}
}

func TestStream_BacksOffWhenServerDropsConnection(t *testing.T) {
	upgrader := websocket.Upgrader{}
	var accepted atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		accepted.Add(1)
		c.Close()
	}))
	defer srv.Close()

	var connects, disconnects atomic.Int32
	s := NewStream(wsURL(srv))
	s.OnConnect = func() { connects.Add(1) }
	s.OnDisconnect = func() { disconnects.Add(1) }

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	s.Run(ctx, make(chan Event))

	// One dial, then the 1s backoff outlasts the context.
	if n := accepted.Load(); n != 1 {
		t.Errorf("connections in 500ms = %d, want 1", n)
	}
	if connects.Load() != 1 || disconnects.Load() != 1 {
		t.Errorf("connects = %d, disconnects = %d", connects.Load(), disconnects.Load())
	}
}

func TestStream_BackoffGrowsWithoutMessages(t *testing.T) {
	upgrader := websocket.Upgrader{}
	var accepted atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		accepted.Add(1)
		c.Close()
	}))
	defer srv.Close()

	s := NewStream(wsURL(srv))
	s.initialBackoff = 40 * time.Millisecond

	// Dials at 0, 40, 120, 280ms; the next would be at 600ms.
	ctx, cancel := context.WithTimeout(context.Background(), 450*time.Millisecond)
	defer cancel()
	s.Run(ctx, make(chan Event))

	if n := accepted.Load(); n < 2 || n > 5 {
		t.Errorf("connections = %d, want a handful with doubling waits", n)
	}
}
