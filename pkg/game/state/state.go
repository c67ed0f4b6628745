package state

import (
	"math/rand"

	"quickhacks/pkg/game/animation"
	"quickhacks/pkg/game/layout"
	"quickhacks/pkg/game/world"
)

// MinCanvasHeight is applied when a resize reports less than minUsableHeight.
const (
	MinCanvasHeight = 300.0
	minUsableHeight = 200.0
)

// TargetState holds the currently highlighted address.
type TargetState struct {
	address string
}

// Set stores the normalized address; an empty string clears the target.
func (t *TargetState) Set(address string) {
	t.address = world.NormalizeAddress(address)
}

// Clear removes the target.
func (t *TargetState) Clear() {
	t.address = ""
}

// Address returns the normalized target, or "" when nothing is targeted.
func (t *TargetState) Address() string {
	return t.address
}

// Has reports whether any address is targeted.
func (t *TargetState) Has() bool {
	return t.address != ""
}

// Is reports whether address is the current target.
func (t *TargetState) Is(address string) bool {
	return t.address != "" && world.SameAddress(t.address, address)
}

// Map is the state of the network map owned by the frame loop
type Map struct {
	Width, Height float64

	Players  []world.PlayerRecord
	Nodes    []world.PlacedNode
	Contract *world.ContractNode

	Tracker *animation.Tracker
	Target  TargetState

	// LocalAddress is the connected player's own address, if any.
	LocalAddress string

	Colors layout.ColorPolicy
	Rand   *rand.Rand

	byAddress map[string]int
}

// NewMap creates an empty map for a width x height canvas
func NewMap(width, height float64) *Map {
	m := &Map{
		Tracker:   animation.NewTracker(),
		Rand:      rand.New(rand.NewSource(1)),
		byAddress: make(map[string]int),
	}
	m.Resize(width, height)
	return m
}

func (m *Map) setSize(width, height float64) {
	if height < minUsableHeight {
		height = MinCanvasHeight
	}
	m.Width, m.Height = width, height
}

// SetPlayers replaces the player list and rebuilds the layout. An empty list
// clears the map but keeps pulses in flight.
func (m *Map) SetPlayers(players []world.PlayerRecord) {
	m.Players = players
	m.Relayout()
}

// Resize changes the canvas, re-anchors the contract and lays out again.
func (m *Map) Resize(width, height float64) {
	m.setSize(width, height)
	m.Relayout()
}

// Relayout regenerates every placed node and the contract from Players.
func (m *Map) Relayout() {
	m.Nodes = layout.Layout(m.Players, m.Width, m.Height, layout.Options{
		Rand:   m.Rand,
		Colors: m.Colors,
	})
	m.byAddress = make(map[string]int, len(m.Nodes))
	for i, n := range m.Nodes {
		m.byAddress[world.NormalizeAddress(n.Address)] = i
	}
	c := world.NewContract(m.Width, m.Height, world.TotalBalance(m.Players))
	m.Contract = &c
}

// NodeByAddress finds a placed node, comparing addresses case-insensitively.
func (m *Map) NodeByAddress(address string) (world.PlacedNode, bool) {
	i, ok := m.byAddress[world.NormalizeAddress(address)]
	if !ok {
		return world.PlacedNode{}, false
	}
	return m.Nodes[i], true
}

// ContractNode returns the contract once the map has been sized.
func (m *Map) ContractNode() (world.ContractNode, bool) {
	if m.Contract == nil {
		return world.ContractNode{}, false
	}
	return *m.Contract, true
}

// IsLocal reports whether address is the connected player's.
func (m *Map) IsLocal(address string) bool {
	return m.LocalAddress != "" && world.SameAddress(m.LocalAddress, address)
}
