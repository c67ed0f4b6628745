package gameplay

import (
	"context"
	"time"

	"github.com/leonelquinteros/gotext"

	"quickhacks/pkg/engine/audio"
	"quickhacks/pkg/game/feed"
	"quickhacks/pkg/game/world"
)

// Start runs the first fetch in the background and remembers ctx for
// later refreshes.
func (c *Controller) Start(ctx context.Context) {
	c.ctx = ctx
	c.playCue(audio.CuePageRefresh)
	go c.fetch(ctx)
}

// Refresh fetches players now and queues them for the next frame. A failed
// fetch queues an empty list.
func (c *Controller) Refresh(ctx context.Context) feed.Result {
	c.playCue(audio.CueRefresh)
	return c.fetch(ctx)
}

func (c *Controller) fetch(ctx context.Context) feed.Result {
	if c.source == nil {
		return feed.Result{}
	}
	r := c.source.Fetch(ctx)
	c.mu.Lock()
	c.pendingPlayers = r.Players
	c.hasPlayers = true
	c.mu.Unlock()
	return r
}

// refreshAsync is the non-blocking refresh used by key input.
func (c *Controller) refreshAsync() {
	ctx := c.ctx
	go c.Refresh(ctx)
}

// PostEvent queues a feed event for the next frame.
func (c *Controller) PostEvent(ev feed.Event) {
	c.mu.Lock()
	c.pendingEvents = append(c.pendingEvents, ev)
	c.mu.Unlock()
}

// Consume posts events from ch until it closes or ctx ends.
func (c *Controller) Consume(ctx context.Context, ch <-chan feed.Event) {
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			c.PostEvent(ev)
		case <-ctx.Done():
			return
		}
	}
}

// HandleEvent animates one game event. Events naming players that are not
// on the map are ignored.
func (c *Controller) HandleEvent(ev feed.Event, now time.Time) {
	switch ev.Kind {
	case feed.EventAttack:
		p := c.Map.Tracker.StartAttack(c.Map, ev.Source, ev.Target, now)
		if p == nil {
			return
		}
		c.playCue(audio.CueExecuteQuickhack)
		result := timedCue{
			at:      p.Start.Add(p.Duration),
			cue:     audio.CueQuickhackFail,
			address: ev.Target,
			label:   gotext.Get("BLOCKED"),
			color:   world.ColorWhite,
		}
		if ev.Success {
			result.cue = audio.CueQuickhackSuccess
			result.label = gotext.Get("HACKED")
			result.color = world.ColorRed
		}
		c.pendingCues = append(c.pendingCues, result)

	case feed.EventSelfCast:
		if c.Map.Tracker.StartSelfCast(c.Map, ev.Source, now) == nil {
			return
		}
		c.playCue(audio.CueSelfCast)
		c.addCallout(ev.Source, gotext.Get("SELF_CAST"), world.ColorPurple, now)

	case feed.EventDeposit, feed.EventWithdrawal:
		if ev.Kind == feed.EventDeposit {
			c.playCue(audio.CueDeposit)
			c.addCallout(ev.Source, gotext.Get("DEPOSIT"), world.ColorWhite, now)
		} else {
			c.playCue(audio.CueWithdrawal)
			c.addCallout(ev.Source, gotext.Get("WITHDRAWAL"), world.ColorWhite, now)
		}
		if c.Map.IsLocal(ev.Source) {
			c.refreshAsync()
		}
	}
}
