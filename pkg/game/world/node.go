package world

import (
	"image/color"
	"math"

	"quickhacks/pkg/engine/geom"
)

// NodeColor is the fill color assigned to a player node.
type NodeColor int

// Node colors
const (
	White NodeColor = iota
	Purple
	Red
)

// Palette
var (
	ColorBackground = color.RGBA{0x1f, 0x1e, 0x28, 0xff}
	ColorWhite      = color.RGBA{0xce, 0xcc, 0xde, 0xff}
	ColorPurple     = color.RGBA{0x87, 0x5f, 0xff, 0xff}
	ColorRed        = color.RGBA{0xd4, 0x2d, 0x17, 0xff}
)

// String returns the single letter used in profile seeds.
func (c NodeColor) String() string {
	switch c {
	case Purple:
		return "P"
	case Red:
		return "R"
	default:
		return "W"
	}
}

// RGBA returns the palette color.
func (c NodeColor) RGBA() color.RGBA {
	switch c {
	case Purple:
		return ColorPurple
	case Red:
		return ColorRed
	default:
		return ColorWhite
	}
}

// ParseNodeColor maps a seed letter to a color, defaulting to White.
func ParseNodeColor(letter string) NodeColor {
	switch letter {
	case "P", "p":
		return Purple
	case "R", "r":
		return Red
	default:
		return White
	}
}

// PlacedNode is a player positioned on the canvas for one layout generation.
type PlacedNode struct {
	Address string
	Balance uint64
	X, Y    float64
	Size    float64
	Color   NodeColor
}

// Center returns the node position.
func (n PlacedNode) Center() geom.Point {
	return geom.Point{X: n.X, Y: n.Y}
}

// Radius is half the node's square size.
func (n PlacedNode) Radius() float64 {
	return n.Size / 2
}

// InBounds reports whether the node center lies on a w x h canvas.
func (n PlacedNode) InBounds(w, h float64) bool {
	return n.X >= 0 && n.X <= w && n.Y >= 0 && n.Y <= h
}

// ContractNode is the central node every player connects to.
type ContractNode struct {
	X, Y float64
	Size float64
}

// Center returns the contract position.
func (c ContractNode) Center() geom.Point {
	return geom.Point{X: c.X, Y: c.Y}
}

// Contract sizing: 10M balance units make one ETH, ten pixels per ETH.
const (
	balancePerETH   = 10_000_000
	contractPerETH  = 10
	ContractMinSize = 30
	ContractMaxSize = 60
)

// ContractSize scales the contract node with the aggregate balance.
func ContractSize(totalBalance uint64) float64 {
	eth := float64(totalBalance) / balancePerETH
	return math.Max(ContractMinSize, math.Min(ContractMaxSize, eth*contractPerETH))
}

// NewContract anchors a contract node at the center of a w x h canvas.
func NewContract(w, h float64, totalBalance uint64) ContractNode {
	return ContractNode{X: w / 2, Y: h / 2, Size: ContractSize(totalBalance)}
}
