package ui

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"
)

const addr = "0x05351d48d04e16b05e388394e6abb25054d0ad5a"

func TestTargetField_DecodeSettles(t *testing.T) {
	f := NewTargetField(rand.New(rand.NewSource(7)))
	start := time.Unix(1000, 0)
	f.Show(addr, start)

	d := f.Duration()
	if d < DecodeMin || d > DecodeMax {
		t.Fatalf("decode window %v outside [%v, %v]", d, DecodeMin, DecodeMax)
	}

	mid := start.Add(d / 2)
	text := f.Text(mid)
	if len(text) != len(addr) {
		t.Errorf("decoding text length %d, want %d", len(text), len(addr))
	}
	revealed := len(addr) / 2
	if !strings.HasPrefix(text, addr[:revealed-1]) {
		t.Errorf("left half not revealed: %q", text)
	}
	if !f.Decoding(mid) {
		t.Error("Decoding() false mid effect")
	}

	end := start.Add(d)
	if got := f.Text(end); got != addr {
		t.Errorf("settled text = %q", got)
	}
	if f.Decoding(end) {
		t.Error("Decoding() true after window")
	}
}

func TestTargetField_Clear(t *testing.T) {
	f := NewTargetField(rand.New(rand.NewSource(1)))
	f.Show(addr, time.Now())
	f.Clear()
	if f.Text(time.Now()) != "" || f.Address() != "" {
		t.Error("Clear() left text behind")
	}
}

func TestTargetStyle(t *testing.T) {
	cases := []struct {
		target, local string
		want          Style
	}{
		{"", "0xabc", StyleNone},
		{"0xabc", "", StyleOther},
		{"0xABC", "0xabc", StyleSelf},
		{"0xdef", "0xabc", StyleOther},
	}
	for _, c := range cases {
		if got := TargetStyle(c.target, c.local); got != c.want {
			t.Errorf("TargetStyle(%q, %q) = %s, want %s", c.target, c.local, got, c.want)
		}
	}
}

func TestClipboard_Copy(t *testing.T) {
	var got string
	c := &Clipboard{Enabled: true, write: func(s string) error { got = s; return nil }}
	if !c.Copy(addr) || got != addr {
		t.Errorf("Copy wrote %q", got)
	}

	c.write = func(string) error { return errors.New("no display") }
	if c.Copy(addr) {
		t.Error("Copy reported success on failure")
	}

	c.Enabled = false
	if c.Copy(addr) {
		t.Error("disabled clipboard copied")
	}

	var nilClip *Clipboard
	if nilClip.Copy(addr) {
		t.Error("nil clipboard copied")
	}
}
