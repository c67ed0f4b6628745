package audio

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Song is one track in the playlist.
type Song struct {
	Artist string
	Title  string
	File   string
}

// DisplayName is the file's base name without the .mp3 extension.
func (s Song) DisplayName() string {
	return strings.TrimSuffix(filepath.Base(s.File), ".mp3")
}

// ParseSongFile splits "Artist - Title.mp3" or "Artist_Title.mp3".
func ParseSongFile(path string) Song {
	name := strings.TrimSuffix(filepath.Base(path), ".mp3")
	song := Song{Title: strings.TrimSpace(name), File: path}
	if artist, title, ok := strings.Cut(name, " - "); ok {
		song.Artist, song.Title = strings.TrimSpace(artist), strings.TrimSpace(title)
	} else if artist, title, ok := strings.Cut(name, "_"); ok {
		song.Artist, song.Title = strings.TrimSpace(artist), strings.TrimSpace(title)
	}
	return song
}

// DiscoverSongs lists the .mp3 files in dir sorted by artist, then title.
func DiscoverSongs(dir string) ([]Song, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading song directory: %w", err)
	}
	var songs []Song
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".mp3") {
			continue
		}
		songs = append(songs, ParseSongFile(filepath.Join(dir, e.Name())))
	}
	sort.SliceStable(songs, func(i, j int) bool {
		if songs[i].Artist != songs[j].Artist {
			return songs[i].Artist < songs[j].Artist
		}
		return songs[i].Title < songs[j].Title
	})
	return songs, nil
}

// Playlist tracks the current song in ordered or shuffled order.
// It is not safe for concurrent use; MusicPlayer guards it.
type Playlist struct {
	songs    []Song
	current  int
	shuffled bool
	order    []int
	orderPos int
	rng      *rand.Rand
}

// NewPlaylist starts at a random song.
func NewPlaylist(songs []Song, rng *rand.Rand) *Playlist {
	p := &Playlist{songs: songs, rng: rng}
	if len(songs) > 0 {
		p.current = rng.Intn(len(songs))
	}
	p.reshuffle()
	return p
}

// Len returns the number of songs.
func (p *Playlist) Len() int {
	return len(p.songs)
}

// Current returns the selected song.
func (p *Playlist) Current() (Song, bool) {
	if len(p.songs) == 0 {
		return Song{}, false
	}
	return p.songs[p.current], true
}

// Shuffled reports whether shuffle is on.
func (p *Playlist) Shuffled() bool {
	return p.shuffled
}

// Next advances one song, wrapping at the end.
func (p *Playlist) Next() (Song, bool) {
	n := len(p.songs)
	if n == 0 {
		return Song{}, false
	}
	if p.shuffled {
		p.orderPos = (p.orderPos + 1) % len(p.order)
		p.current = p.order[p.orderPos]
	} else {
		p.current = (p.current + 1) % n
	}
	return p.Current()
}

// Previous goes back one song, wrapping at the start.
func (p *Playlist) Previous() (Song, bool) {
	n := len(p.songs)
	if n == 0 {
		return Song{}, false
	}
	if p.shuffled {
		p.orderPos = (p.orderPos - 1 + len(p.order)) % len(p.order)
		p.current = p.order[p.orderPos]
	} else {
		p.current = (p.current - 1 + n) % n
	}
	return p.Current()
}

// ToggleShuffle flips shuffle. Turning it on draws a fresh order positioned
// at the current song so playback continues from it.
func (p *Playlist) ToggleShuffle() bool {
	p.shuffled = !p.shuffled
	if p.shuffled {
		p.reshuffle()
		for i, idx := range p.order {
			if idx == p.current {
				p.orderPos = i
				break
			}
		}
	}
	return p.shuffled
}

// reshuffle draws a Fisher-Yates permutation of the song indices.
func (p *Playlist) reshuffle() {
	p.order = make([]int, len(p.songs))
	for i := range p.order {
		p.order[i] = i
	}
	for i := len(p.order) - 1; i > 0; i-- {
		j := p.rng.Intn(i + 1)
		p.order[i], p.order[j] = p.order[j], p.order[i]
	}
	p.orderPos = 0
}
