// Package world provides the map entities for the QuickHacks network view:
// player records, placed player nodes and the central contract node.
package world

import (
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Reserved addresses that represent game roles rather than players.
const (
	BossAddress = "0x05351d48d04e16b05e388394e6abb25054d0ad5a"
	TeamAddress = "0xd63a12d5dd3bccc018735eaebb70a51ed351b56e"
)

var reserved = func() mapset.Set[string] {
	s := mapset.New[string]()
	s.Put(BossAddress)
	s.Put(TeamAddress)
	return s
}()

// NormalizeAddress returns the canonical comparison form of an address.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// SameAddress compares two addresses case-insensitively.
func SameAddress(a, b string) bool {
	return NormalizeAddress(a) == NormalizeAddress(b)
}

// IsReserved returns true for the boss and team addresses.
func IsReserved(addr string) bool {
	return reserved.Has(NormalizeAddress(addr))
}

// PlayerRecord is a player as reported by the data source.
type PlayerRecord struct {
	Address string
	Balance uint64
}

// TotalBalance sums the balances of all records.
func TotalBalance(players []PlayerRecord) uint64 {
	var total uint64
	for _, p := range players {
		total += p.Balance
	}
	return total
}
