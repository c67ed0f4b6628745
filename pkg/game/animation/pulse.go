// Package animation drives the pulses that travel along circuit traces when
// a player attacks another player or casts on themselves.
package animation

import (
	"time"

	"quickhacks/pkg/engine/geom"
)

// Kind is the game event a pulse represents.
type Kind int

// Pulse kinds
const (
	Attack Kind = iota
	SelfCast
)

func (k Kind) String() string {
	switch k {
	case Attack:
		return "attack"
	case SelfCast:
		return "self_cast"
	default:
		return "unknown"
	}
}

// Duration is how long a pulse of this kind takes to travel its path.
func (k Kind) Duration() time.Duration {
	if k == SelfCast {
		return SelfCastDuration
	}
	return AttackDuration
}

// Phase is the lifecycle stage of a pulse.
type Phase int

// Pulse phases
const (
	Pending Phase = iota
	Active
	Done
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Active:
		return "active"
	case Done:
		return "done"
	}
	return "unknown"
}

// Timing constants
const (
	AttackDuration   = 3000 * time.Millisecond
	SelfCastDuration = 6000 * time.Millisecond

	// StaggerStep delays each pulse by its index within the current busy
	// period; see Tracker.Sweep.
	StaggerStep = 400 * time.Millisecond
)

// Pulse is one marker traveling along a path captured when it was created.
type Pulse struct {
	Path     geom.Path
	Progress float64
	Kind     Kind
	Start    time.Time
	Duration time.Duration
	Source   string
	Target   string
	Done     bool
}

// Update recomputes progress for now. A pulse whose start lies in the future
// stays at zero.
func (p *Pulse) Update(now time.Time) {
	if p.Duration <= 0 {
		p.Progress = 1
		p.Done = true
		return
	}
	elapsed := now.Sub(p.Start)
	progress := float64(elapsed) / float64(p.Duration)
	if progress < 0 {
		progress = 0
	}
	if progress >= 1 {
		progress = 1
		p.Done = true
	}
	p.Progress = progress
}

// Phase reports the lifecycle stage at now.
func (p *Pulse) Phase(now time.Time) Phase {
	switch {
	case p.Done:
		return Done
	case now.Before(p.Start):
		return Pending
	default:
		return Active
	}
}

// Position samples the pulse's current position and heading.
func (p *Pulse) Position() (geom.Sample, bool) {
	return geom.SampleAt(p.Path, p.Progress)
}
