package gameplay

import (
	"image/color"
	"time"

	"quickhacks/pkg/game/renderer"
	"quickhacks/pkg/game/world"
)

// calloutLifetime is how long an event label floats over its node.
const calloutLifetime = 1500 * time.Millisecond

// callout is an event label bound to a node address. The screen position is
// resolved every frame so labels follow relayouts.
type callout struct {
	address   string
	text      string
	color     color.RGBA
	createdAt time.Time
	expiresAt time.Time
}

// addCallout shows text over address, replacing any label already there.
func (c *Controller) addCallout(address, text string, col color.RGBA, now time.Time) {
	kept := c.callouts[:0]
	for _, co := range c.callouts {
		if !world.SameAddress(co.address, address) {
			kept = append(kept, co)
		}
	}
	c.callouts = append(kept, callout{
		address:   address,
		text:      text,
		color:     col,
		createdAt: now,
		expiresAt: now.Add(calloutLifetime),
	})
}

// pruneCallouts drops expired labels.
func (c *Controller) pruneCallouts(now time.Time) {
	kept := c.callouts[:0]
	for _, co := range c.callouts {
		if now.Before(co.expiresAt) {
			kept = append(kept, co)
		}
	}
	c.callouts = kept
}

// visibleCallouts resolves live labels to canvas positions. Labels whose
// node left the map are skipped.
func (c *Controller) visibleCallouts(now time.Time) []renderer.Callout {
	var out []renderer.Callout
	for _, co := range c.callouts {
		if !now.Before(co.expiresAt) {
			continue
		}
		n, ok := c.Map.NodeByAddress(co.address)
		if !ok {
			continue
		}
		out = append(out, renderer.Callout{
			X:         n.X,
			Y:         n.Y,
			Radius:    n.Radius(),
			Text:      co.text,
			Color:     co.color,
			CreatedAt: co.createdAt,
			ExpiresAt: co.expiresAt,
		})
	}
	return out
}
