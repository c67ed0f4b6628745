package renderer

import (
	"fmt"
	"image/color"
	"regexp"
	"strings"
	"time"

	gookit "github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"quickhacks/pkg/engine/geom"
	"quickhacks/pkg/game/animation"
	"quickhacks/pkg/game/state"
	"quickhacks/pkg/game/world"
)

// Stroke widths
const (
	ConnectionWidth = 1.0
	OutlineWidth    = 1.0
	PulseWidth      = 2.0
)

// HitSlack is added to a node's radius when testing clicks.
const HitSlack = 5.0

// NodeStyle describes how one player node is drawn.
type NodeStyle struct {
	Fill    color.RGBA
	Outline bool
}

var ghostStyle = NodeStyle{Fill: world.ColorBackground, Outline: true}

// StyleFor chooses a node's appearance. Rules apply in priority order:
// reserved and targeted, reserved, local player, targeted, assigned color.
func StyleFor(n world.PlacedNode, target *state.TargetState, local string) NodeStyle {
	targeted := target != nil && target.Is(n.Address)
	reserved := world.IsReserved(n.Address)
	switch {
	case reserved && targeted:
		return NodeStyle{Fill: world.ColorRed}
	case reserved:
		return ghostStyle
	case local != "" && world.SameAddress(n.Address, local):
		return NodeStyle{Fill: world.ColorPurple}
	case targeted:
		return NodeStyle{Fill: world.ColorRed}
	default:
		return NodeStyle{Fill: n.Color.RGBA()}
	}
}

// PulseColor is the marker color for a pulse kind.
func PulseColor(k animation.Kind) color.RGBA {
	if k == animation.SelfCast {
		return world.ColorPurple
	}
	return world.ColorRed
}

// DrawFrame renders one frame of m onto s: background, connections, pulses,
// contract and nodes, in that order. Pulses are advanced to now first.
func DrawFrame(m *state.Map, s Surface, now time.Time) {
	s.Clear(world.ColorBackground)

	contract, hasContract := m.ContractNode()
	if hasContract {
		for _, n := range m.Nodes {
			drawPath(s, geom.CircuitPath(n.Center(), contract.Center()), ConnectionWidth, world.ColorWhite)
		}
	}

	if m.Tracker != nil {
		m.Tracker.Tick(now)
		for _, mk := range m.Tracker.Markers(now) {
			s.Line(mk.X0, mk.Y0, mk.X1, mk.Y1, PulseWidth, PulseColor(mk.Kind))
		}
	}

	if hasContract {
		half := contract.Size / 2
		s.FillRect(contract.X-half, contract.Y-half, contract.Size, contract.Size, world.ColorBackground)
		s.StrokeRect(contract.X-half, contract.Y-half, contract.Size, contract.Size, OutlineWidth, world.ColorWhite)
	}

	w, h := s.Size()
	for _, n := range m.Nodes {
		if !n.InBounds(w, h) {
			continue
		}
		style := StyleFor(n, &m.Target, m.LocalAddress)
		x, y := n.X-n.Radius(), n.Y-n.Radius()
		s.FillRect(x, y, n.Size, n.Size, style.Fill)
		if style.Outline {
			s.StrokeRect(x, y, n.Size, n.Size, OutlineWidth, world.ColorWhite)
		}
	}
}

func drawPath(s Surface, p geom.Path, width float64, c color.RGBA) {
	for _, seg := range p {
		s.Line(seg.Start.X, seg.Start.Y, seg.End.X, seg.End.Y, width, c)
	}
}

// HitTest returns the first node, in layout order, within its radius plus
// HitSlack of (x, y).
func HitTest(nodes []world.PlacedNode, x, y float64) (world.PlacedNode, bool) {
	p := geom.Point{X: x, Y: y}
	for _, n := range nodes {
		if geom.Dist(p, n.Center()) < n.Radius()+HitSlack {
			return n, true
		}
	}
	return world.PlacedNode{}, false
}

// Terminal text styles
var (
	ColorLabel   gookit.Style
	ColorValue   gookit.Style
	ColorSelf    gookit.Style
	ColorOther   gookit.Style
	ColorSubtle  gookit.Style
	ColorWarning gookit.Style

	regexpStringFunctions = regexp.MustCompile(`([A-Z_]+){([^}]+)}`)
)

// InitColors initializes the terminal color styles
func InitColors() {
	ColorLabel = gookit.Style{gookit.FgGray, gookit.OpBold}
	ColorValue = gookit.Style{gookit.FgWhite}
	ColorSelf = gookit.Style{gookit.FgMagenta, gookit.OpBold}
	ColorOther = gookit.Style{gookit.FgRed, gookit.OpBold}
	ColorSubtle = gookit.Style{gookit.FgGray}
	ColorWarning = gookit.Style{gookit.FgYellow, gookit.OpBold}
}

// FormatString expands markup in a formatted message:
// GT{key} translates, LABEL{key} translates and styles a label,
// SELF{x} and OTHER{x} style a targeted address, SUBTLE{x} dims text.
func FormatString(msg string, a ...any) string {
	ret := fmt.Sprintf(msg, a...)

	for _, match := range regexpStringFunctions.FindAllStringSubmatch(ret, -1) {
		function, operand := match[1], match[2]

		var val string
		switch function {
		case "GT":
			val = gotext.Get(operand)
		case "LABEL":
			val = ColorLabel.Sprint(gotext.Get(operand))
		case "SELF":
			val = ColorSelf.Sprint(operand)
		case "OTHER":
			val = ColorOther.Sprint(operand)
		case "SUBTLE":
			val = ColorSubtle.Sprint(operand)
		default:
			val = ColorWarning.Sprintf("?%s", operand)
		}
		ret = strings.Replace(ret, match[0], val, 1)
	}
	return ret
}

// HUDLines renders the overlay as markup-free lines in the active locale.
func HUDLines(h HUD) []string {
	target := gotext.Get("NO_TARGET")
	if h.Target != "" {
		target = h.Target
	}
	lines := []string{
		fmt.Sprintf("%s: %s", gotext.Get("TARGET"), target),
		fmt.Sprintf("%s: %d  %s: %d", gotext.Get("PLAYERS"), h.Players, gotext.Get("PULSES"), h.Pulses),
	}
	if h.Local != "" {
		lines = append(lines, fmt.Sprintf("%s: %s", gotext.Get("CONNECTED"), h.Local))
	}
	if h.NowPlaying != "" {
		status := gotext.Get("PAUSED")
		if h.Playing {
			status = gotext.Get("NOW_PLAYING")
		}
		lines = append(lines, fmt.Sprintf("%s: %s", status, h.NowPlaying))
	}
	volume := fmt.Sprintf("%s: %d%%", gotext.Get("VOLUME"), int(h.Volume*100+0.5))
	if h.Muted {
		volume = gotext.Get("MUTED")
	}
	lines = append(lines, volume)
	if h.Glyph != nil {
		lines = append(lines, fmt.Sprintf("%s: %s", gotext.Get("GLYPH"), h.Glyph.Seed))
	}
	if h.Message != "" {
		lines = append(lines, h.Message)
	}
	return lines
}
