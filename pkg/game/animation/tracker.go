package animation

import (
	"log"
	"math"
	"time"

	"quickhacks/pkg/engine/geom"
	"quickhacks/pkg/game/world"
)

// DefaultMaxActive bounds the number of tracked pulses.
const DefaultMaxActive = 256

// MarkerLength is the length in pixels of the dash drawn for a pulse.
const MarkerLength = 12.0

// Positions resolves addresses to their current nodes.
type Positions interface {
	NodeByAddress(address string) (world.PlacedNode, bool)
	ContractNode() (world.ContractNode, bool)
}

// Marker is a short dash to draw for a pulse.
type Marker struct {
	X0, Y0, X1, Y1 float64
	Kind           Kind
}

// Tracker owns the live pulses. It is not safe for concurrent use; the frame
// loop is its only caller.
type Tracker struct {
	// MaxActive caps tracked pulses; new pulses past the cap are dropped.
	// Zero or less disables the cap.
	MaxActive int

	pulses []*Pulse

	// seq numbers pulses within a busy period for staggering. It restarts
	// at zero whenever the tracker empties, so it is not a lifetime count.
	seq int
}

// NewTracker creates a tracker with the default cap.
func NewTracker() *Tracker {
	return &Tracker{MaxActive: DefaultMaxActive}
}

// Len returns the number of tracked pulses.
func (t *Tracker) Len() int {
	return len(t.pulses)
}

// Pulses returns the tracked pulses in creation order.
func (t *Tracker) Pulses() []*Pulse {
	return t.pulses
}

// StartAttack launches a pulse from attacker through the contract to target.
// The second leg retraces the target's own connection backwards so it lies
// exactly on the drawn line. Unknown addresses or a missing contract drop the
// event and return nil.
func (t *Tracker) StartAttack(pos Positions, attacker, target string, now time.Time) *Pulse {
	contract, ok := pos.ContractNode()
	if !ok {
		return nil
	}
	from, ok := pos.NodeByAddress(attacker)
	if !ok {
		return nil
	}
	to, ok := pos.NodeByAddress(target)
	if !ok {
		return nil
	}
	path := geom.Concat(
		geom.CircuitPath(from.Center(), contract.Center()),
		geom.Reverse(geom.CircuitPath(to.Center(), contract.Center())),
	)
	return t.add(path, Attack, from.Address, to.Address, now)
}

// StartSelfCast launches a round trip from the player to the contract and back.
func (t *Tracker) StartSelfCast(pos Positions, player string, now time.Time) *Pulse {
	contract, ok := pos.ContractNode()
	if !ok {
		return nil
	}
	node, ok := pos.NodeByAddress(player)
	if !ok {
		return nil
	}
	there := geom.CircuitPath(node.Center(), contract.Center())
	return t.add(geom.Concat(there, geom.Reverse(there)), SelfCast, node.Address, node.Address, now)
}

func (t *Tracker) add(path geom.Path, kind Kind, source, target string, now time.Time) *Pulse {
	if t.MaxActive > 0 && len(t.pulses) >= t.MaxActive {
		log.Printf("Dropping %s pulse %s -> %s: %d pulses active", kind, source, target, len(t.pulses))
		return nil
	}
	p := &Pulse{
		Path:     path,
		Kind:     kind,
		Start:    now.Add(time.Duration(t.seq) * StaggerStep),
		Duration: kind.Duration(),
		Source:   source,
		Target:   target,
	}
	t.seq++
	t.pulses = append(t.pulses, p)
	return p
}

// Tick advances every pulse to now.
func (t *Tracker) Tick(now time.Time) {
	for _, p := range t.pulses {
		p.Update(now)
	}
}

// Markers returns the dashes to draw for every pulse not yet done, then
// drops finished pulses. A pulse still waiting out its stagger sits at the
// start of its path.
func (t *Tracker) Markers(now time.Time) []Marker {
	markers := make([]Marker, 0, len(t.pulses))
	for _, p := range t.pulses {
		if p.Done {
			continue
		}
		s, ok := p.Position()
		if !ok {
			continue
		}
		dx := math.Cos(s.Heading) * MarkerLength / 2
		dy := math.Sin(s.Heading) * MarkerLength / 2
		markers = append(markers, Marker{
			X0: s.X - dx, Y0: s.Y - dy,
			X1: s.X + dx, Y1: s.Y + dy,
			Kind: p.Kind,
		})
	}
	t.Sweep()
	return markers
}

// Sweep removes finished pulses. The survivors move to a fresh slice so no
// caller holding the old one observes a shifted index. The stagger sequence
// restarts once nothing is left in flight, so stagger counts per busy period.
func (t *Tracker) Sweep() {
	live := make([]*Pulse, 0, len(t.pulses))
	for _, p := range t.pulses {
		if !p.Done {
			live = append(live, p)
		}
	}
	t.pulses = live
	if len(t.pulses) == 0 {
		t.seq = 0
	}
}
