package audio

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
)

// MusicStatus is a snapshot of the music player.
type MusicStatus struct {
	Playing  bool
	Shuffled bool
	Volume   float64
	Song     Song
	HasSong  bool
	Songs    int
}

// MusicPlayer streams the playlist's current song and advances when it ends.
type MusicPlayer struct {
	mu       sync.Mutex
	playlist *Playlist
	out      Output
	volume   float64
	playing  bool

	// The stream currently in the mixer; gen invalidates callbacks from
	// streams that were replaced.
	ctrl   *beep.Ctrl
	gain   *effects.Volume
	closer beep.StreamSeekCloser
	gen    int

	// open decodes a song file; replaced in tests.
	open func(path string) (beep.StreamSeekCloser, beep.Format, error)
}

// NewMusicPlayer creates a paused player over playlist.
func NewMusicPlayer(playlist *Playlist, out Output) *MusicPlayer {
	return &MusicPlayer{
		playlist: playlist,
		out:      out,
		volume:   DefaultVolume,
		open:     openMP3,
	}
}

func openMP3(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	st, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return st, format, nil
}

// TogglePlay pauses when playing and plays otherwise
func (m *MusicPlayer) TogglePlay() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playing {
		m.pauseLocked()
	} else {
		m.playLocked()
	}
}

// Play starts or resumes the current song
func (m *MusicPlayer) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playLocked()
}

// Pause holds the current song in place
func (m *MusicPlayer) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseLocked()
}

// Next skips forward, keeping the play state
func (m *MusicPlayer) Next() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playlist.Next()
	m.switchLocked()
}

// Previous skips back, keeping the play state
func (m *MusicPlayer) Previous() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playlist.Previous()
	m.switchLocked()
}

// ToggleShuffle flips shuffle mode
func (m *MusicPlayer) ToggleShuffle() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	on := m.playlist.ToggleShuffle()
	log.Printf("Shuffle mode: %v", on)
	return on
}

// SetVolume sets the music volume, clamped to [0, 1]
func (m *MusicPlayer) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = ClampVolume(v)
	if m.gain != nil {
		setGain(m.gain, m.volume)
	}
}

// Status returns a snapshot of the player
func (m *MusicPlayer) Status() MusicStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	song, ok := m.playlist.Current()
	return MusicStatus{
		Playing:  m.playing,
		Shuffled: m.playlist.Shuffled(),
		Volume:   m.volume,
		Song:     song,
		HasSong:  ok,
		Songs:    m.playlist.Len(),
	}
}

// Close stops playback and releases the decoder
func (m *MusicPlayer) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
	m.playing = false
}

func (m *MusicPlayer) playLocked() {
	if m.ctrl != nil {
		m.ctrl.Paused = false
		m.playing = true
		return
	}
	m.playing = m.startLocked()
}

func (m *MusicPlayer) pauseLocked() {
	if m.ctrl != nil {
		m.ctrl.Paused = true
	}
	m.playing = false
}

// switchLocked drops the current stream and starts the newly selected song
// when the player was playing.
func (m *MusicPlayer) switchLocked() {
	m.stopLocked()
	if m.playing {
		m.playing = m.startLocked()
	}
}

func (m *MusicPlayer) stopLocked() {
	m.gen++
	if m.ctrl != nil {
		m.ctrl.Paused = true
		m.ctrl.Streamer = nil
		m.ctrl = nil
		m.gain = nil
	}
	if m.closer != nil {
		m.closer.Close()
		m.closer = nil
	}
}

// startLocked opens the current song, skipping songs that fail to decode.
// It gives up after one pass over the playlist.
func (m *MusicPlayer) startLocked() bool {
	for tries := 0; tries < m.playlist.Len(); tries++ {
		song, ok := m.playlist.Current()
		if !ok {
			return false
		}
		st, format, err := m.open(song.File)
		if err != nil {
			log.Printf("Music player error, skipping %s: %v", song.DisplayName(), err)
			m.playlist.Next()
			continue
		}
		m.closer = st
		gen := m.gen
		m.gain = withVolume(toOutputRate(st, format), m.volume)
		m.ctrl = &beep.Ctrl{Streamer: beep.Seq(m.gain, beep.Callback(func() {
			go m.songEnded(gen)
		}))}
		if m.out != nil {
			m.out.Play(m.ctrl)
		}
		log.Printf("Now playing: %s", song.DisplayName())
		return true
	}
	return false
}

// songEnded advances to the next song unless the stream was already replaced.
func (m *MusicPlayer) songEnded(gen int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return
	}
	m.playlist.Next()
	m.switchLocked()
}
