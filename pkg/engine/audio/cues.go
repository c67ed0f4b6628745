package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/zyedidia/generic/mapset"
)

// Cue names a sound effect.
type Cue string

// Sound cues fired by the map
const (
	CueClick            Cue = "click"
	CueAddressTarget    Cue = "address_target"
	CueConnect          Cue = "connect"
	CueDisconnect       Cue = "disconnect"
	CueDeposit          Cue = "deposit"
	CueWithdrawal       Cue = "withdrawal"
	CueExecuteQuickhack Cue = "execute_quickhack"
	CueQuickhackSuccess Cue = "quickhack_success"
	CueQuickhackFail    Cue = "quickhack_fail"
	CuePageRefresh      Cue = "page_refresh"
	CueRefresh          Cue = "refresh"
	CueSelfCast         Cue = "self_cast"
)

// AllCues lists every known cue.
var AllCues = []Cue{
	CueClick, CueAddressTarget, CueConnect, CueDisconnect, CueDeposit, CueWithdrawal,
	CueExecuteQuickhack, CueQuickhackSuccess, CueQuickhackFail, CuePageRefresh,
	CueRefresh, CueSelfCast,
}

// DefaultVolume is the initial cue volume.
const DefaultVolume = 0.3

// CueStatus is a snapshot of the cue bank.
type CueStatus struct {
	Enabled     bool
	Volume      float64
	Initialized bool
	Sounds      int
}

// CueBank holds decoded sound effects and plays them on demand.
type CueBank struct {
	mu      sync.Mutex
	dir     string
	out     Output
	known   mapset.Set[Cue]
	buffers map[Cue]*beep.Buffer
	enabled bool
	volume  float64
	loaded  bool
}

// NewCueBank creates a bank reading <dir>/<cue>.mp3 files.
func NewCueBank(dir string, out Output) *CueBank {
	known := mapset.New[Cue]()
	for _, c := range AllCues {
		known.Put(c)
	}
	return &CueBank{
		dir:     dir,
		out:     out,
		known:   known,
		buffers: make(map[Cue]*beep.Buffer),
		enabled: true,
		volume:  DefaultVolume,
	}
}

// Load decodes every cue file. Missing or broken files are logged and
// skipped; only an unreadable directory is an error.
func (b *CueBank) Load() error {
	if _, err := os.Stat(b.dir); err != nil {
		return fmt.Errorf("sound directory %s: %w", b.dir, err)
	}
	loaded := 0
	for _, c := range AllCues {
		buf, err := decodeFile(filepath.Join(b.dir, string(c)+".mp3"))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Printf("Sound %s not found, skipping", c)
			} else {
				log.Printf("Cannot load sound %s: %v", c, err)
			}
			continue
		}
		b.add(c, buf)
		loaded++
	}
	b.mu.Lock()
	b.loaded = true
	b.mu.Unlock()
	log.Printf("Loaded %d of %d sounds from %s", loaded, len(AllCues), b.dir)
	return nil
}

func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(toOutputRate(streamer, format))
	return buf, nil
}

// add registers a decoded buffer for c.
func (b *CueBank) add(c Cue, buf *beep.Buffer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buffers[c] = buf
}

// Play fires a cue. Unknown names are logged; disabled banks and cues with
// no loaded sound are silent.
func (b *CueBank) Play(name Cue) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.known.Has(name) {
		log.Printf("Unknown sound cue %q", name)
		return
	}
	if !b.enabled || b.out == nil {
		return
	}
	buf, ok := b.buffers[name]
	if !ok {
		return
	}
	b.out.Play(withVolume(buf.Streamer(0, buf.Len()), b.volume))
}

// SetEnabled turns cues on or off
func (b *CueBank) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
}

// Enabled reports whether cues play
func (b *CueBank) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// SetVolume sets the cue volume, clamped to [0, 1]
func (b *CueBank) SetVolume(v float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.volume = ClampVolume(v)
}

// Volume returns the cue volume
func (b *CueBank) Volume() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.volume
}

// Status returns a snapshot of the bank
func (b *CueBank) Status() CueStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return CueStatus{
		Enabled:     b.enabled,
		Volume:      b.volume,
		Initialized: b.loaded,
		Sounds:      len(b.buffers),
	}
}
