package devtools

import (
	"fmt"
	"math/rand"

	"quickhacks/pkg/game/world"
)

// DevPlayers builds a synthetic player list for offline testing: the boss
// and team nodes first, then n random players with balances spread over
// four orders of magnitude.
func DevPlayers(n int, rng *rand.Rand) []world.PlayerRecord {
	players := []world.PlayerRecord{
		{Address: world.BossAddress, Balance: 5_000_000},
		{Address: world.TeamAddress, Balance: 1_000_000},
	}
	for i := 0; i < n; i++ {
		players = append(players, world.PlayerRecord{
			Address: fmt.Sprintf("0x%040x", rng.Uint64()),
			Balance: 100 + uint64(rng.Int63n(1_000_000)),
		})
	}
	return players
}
