package layout

import (
	"fmt"
	"math/rand"
	"testing"

	"quickhacks/pkg/engine/geom"
	"quickhacks/pkg/game/world"
)

func makePlayers(n int) []world.PlayerRecord {
	players := make([]world.PlayerRecord, n)
	for i := range players {
		players[i] = world.PlayerRecord{
			Address: fmt.Sprintf("0x%040x", i+1),
			Balance: uint64(100 + i*37),
		}
	}
	return players
}

func zeroAttempts(int) int { return 0 }

func TestLayout_Empty(t *testing.T) {
	if nodes := Layout(nil, 800, 600, Options{}); len(nodes) != 0 {
		t.Errorf("Layout(nil) returned %d nodes, want 0", len(nodes))
	}
}

func TestLayout_CountBoundsUniqueness(t *testing.T) {
	for _, n := range []int{1, 3, 25, 120, 500} {
		players := makePlayers(n)
		nodes := Layout(players, 800, 600, Options{Rand: rand.New(rand.NewSource(int64(n)))})
		if len(nodes) != n {
			t.Fatalf("n=%d: got %d nodes", n, len(nodes))
		}
		seen := map[string]bool{}
		for _, node := range nodes {
			key := world.NormalizeAddress(node.Address)
			if seen[key] {
				t.Errorf("n=%d: duplicate address %s", n, node.Address)
			}
			seen[key] = true
			if !node.InBounds(800, 600) {
				t.Errorf("n=%d: node %s at (%f,%f) outside canvas", n, node.Address, node.X, node.Y)
			}
		}
	}
}

func TestLayout_ScatterRespectsExclusionAndSpacing(t *testing.T) {
	players := makePlayers(10)
	nodes := Layout(players, 1200, 900, Options{Rand: rand.New(rand.NewSource(3))})
	center := geom.Point{X: 600, Y: 450}
	spacing := MinSpacing(len(players))
	for i, a := range nodes {
		grid := GridPosition(i, len(players), 1200, 900)
		if a.X == grid.X && a.Y == grid.Y {
			continue // fell back to the grid
		}
		if d := geom.Dist(a.Center(), center); d < ExclusionRadius {
			t.Errorf("node %d is %f from center, want >= %f", i, d, ExclusionRadius)
		}
		for j := 0; j < i; j++ {
			if d := geom.Dist(a.Center(), nodes[j].Center()); d < spacing {
				t.Errorf("nodes %d and %d are %f apart, want >= %f", i, j, d, spacing)
			}
		}
	}
}

func TestLayout_GridFallbackDeterministic(t *testing.T) {
	players := makePlayers(7)
	a := Layout(players, 800, 600, Options{Rand: rand.New(rand.NewSource(1)), Attempts: zeroAttempts})
	b := Layout(players, 800, 600, Options{Rand: rand.New(rand.NewSource(99)), Attempts: zeroAttempts})
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y {
			t.Errorf("node %d: (%f,%f) vs (%f,%f)", i, a[i].X, a[i].Y, b[i].X, b[i].Y)
		}
		want := GridPosition(i, 7, 800, 600)
		if a[i].X != want.X || a[i].Y != want.Y {
			t.Errorf("node %d at (%f,%f), want grid slot %v", i, a[i].X, a[i].Y, want)
		}
	}
}

func TestGridPosition(t *testing.T) {
	// 5 players -> 3 columns on a 300x300 canvas -> 100px cells.
	cases := []struct {
		i    int
		want geom.Point
	}{
		{0, geom.Point{X: 50, Y: 50}},
		{2, geom.Point{X: 250, Y: 50}},
		{3, geom.Point{X: 50, Y: 150}},
		{4, geom.Point{X: 150, Y: 150}},
	}
	for _, c := range cases {
		if got := GridPosition(c.i, 5, 300, 300); got != c.want {
			t.Errorf("GridPosition(%d) = %v, want %v", c.i, got, c.want)
		}
	}
}

func TestLayout_SizesIncreaseWithBalance(t *testing.T) {
	players := []world.PlayerRecord{
		{Address: "0xa", Balance: 100},
		{Address: "0xb", Balance: 500},
		{Address: "0xc", Balance: 1000},
	}
	nodes := Layout(players, 800, 600, Options{Rand: rand.New(rand.NewSource(5))})
	if !(nodes[0].Size < nodes[1].Size && nodes[1].Size < nodes[2].Size) {
		t.Errorf("sizes not strictly increasing: %f %f %f", nodes[0].Size, nodes[1].Size, nodes[2].Size)
	}
	_, maxSize := SizeRange(3)
	if nodes[2].Size != maxSize {
		t.Errorf("largest balance size = %f, want %f", nodes[2].Size, maxSize)
	}
	contract := world.NewContract(800, 600, world.TotalBalance(players))
	if contract.X != 400 || contract.Y != 300 {
		t.Errorf("contract at (%f,%f), want (400,300)", contract.X, contract.Y)
	}
}

func TestLayout_ZeroBalances(t *testing.T) {
	players := []world.PlayerRecord{{Address: "0xa"}, {Address: "0xb"}}
	nodes := Layout(players, 800, 600, Options{})
	minSize, _ := SizeRange(2)
	for _, n := range nodes {
		if n.Size != minSize {
			t.Errorf("zero-balance size = %f, want %f", n.Size, minSize)
		}
	}
}

func TestLayout_DropsDuplicateAddresses(t *testing.T) {
	players := []world.PlayerRecord{
		{Address: "0xABC", Balance: 1},
		{Address: "0xabc", Balance: 2},
		{Address: "0xdef", Balance: 3},
	}
	nodes := Layout(players, 800, 600, Options{})
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[0].Balance != 1 {
		t.Errorf("first occurrence not kept: balance %d", nodes[0].Balance)
	}
}

func TestLayout_ColorPolicies(t *testing.T) {
	players := makePlayers(20)
	for _, n := range Layout(players, 800, 600, Options{}) {
		if n.Color != world.White {
			t.Errorf("default color = %v, want White", n.Color)
		}
	}
	seeded := Layout(players, 800, 600, Options{Colors: SeedColors})
	again := Layout(players, 800, 600, Options{Colors: SeedColors})
	for i := range seeded {
		if seeded[i].Color != again[i].Color {
			t.Errorf("seed color for %s not stable", seeded[i].Address)
		}
	}
}

func TestLayout_DenseFieldShrinks(t *testing.T) {
	if MinSpacing(500) != 5 || MaxAttempts(500) != 10 {
		t.Errorf("dense budget = %f/%d, want 5/10", MinSpacing(500), MaxAttempts(500))
	}
	if MinSpacing(3) != 35 || MaxAttempts(3) != 57 {
		t.Errorf("sparse budget = %f/%d, want 35/57", MinSpacing(3), MaxAttempts(3))
	}
	lo, hi := SizeRange(500)
	if lo != 4 || hi != 15 {
		t.Errorf("SizeRange(500) = %f,%f, want 4,15", lo, hi)
	}
}

func TestLayout_TinyCanvas(t *testing.T) {
	nodes := Layout(makePlayers(4), 60, 50, Options{Rand: rand.New(rand.NewSource(2))})
	for _, n := range nodes {
		if !n.InBounds(60, 50) {
			t.Errorf("node at (%f,%f) outside 60x50", n.X, n.Y)
		}
	}
}
