// Package feed fetches player lists and live game events for the map.
package feed

import (
	"context"

	"quickhacks/pkg/game/world"
)

// Result is the outcome of one fetch. On failure Players is empty and Err
// says why; callers only need to know whether players arrived.
type Result struct {
	Players []world.PlayerRecord
	Err     error
}

// OK reports whether the fetch succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Source provides the current player list.
type Source interface {
	Fetch(ctx context.Context) Result
}

// Static is a fixed player list, for offline play and tests.
type Static struct {
	Players []world.PlayerRecord
}

// Fetch returns a copy of the list.
func (s Static) Fetch(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}
	players := make([]world.PlayerRecord, len(s.Players))
	copy(players, s.Players)
	return Result{Players: players}
}
