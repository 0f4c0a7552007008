// Package audio provides the game's sound effects. Effects are rendered to PCM
// once with beep and played through an ebiten audio context that only exists
// after the player's first gesture.
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
	ebaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate is the playback rate of every effect.
const SampleRate = beep.SampleRate(44100)

// SoundEffect is a fire-and-forget sound.
type SoundEffect interface {
	Play()
}

// Silent is a SoundEffect that does nothing.
type Silent struct{}

// Play does nothing.
func (Silent) Play() {}

// Context owns the ebiten audio context. Until Unlock is called no context
// exists and plays are dropped, matching browsers that refuse audio before a
// user gesture.
type Context struct {
	ctx     *ebaudio.Context
	playing []*ebaudio.Player
}

// NewContext returns a locked context.
func NewContext() *Context {
	return &Context{}
}

// Unlock creates the audio context. Later calls do nothing.
func (c *Context) Unlock() {
	if c.ctx != nil {
		return
	}
	if existing := ebaudio.CurrentContext(); existing != nil {
		c.ctx = existing
		return
	}
	c.ctx = ebaudio.NewContext(int(SampleRate))
}

// Unlocked reports whether Unlock has been called.
func (c *Context) Unlocked() bool {
	return c.ctx != nil
}

// Effect is a pre-rendered sound effect bound to a Context.
type Effect struct {
	Name string

	ctx *Context
	pcm []byte
}

// Play starts the effect from the beginning. It is dropped while the context
// is locked.
func (e *Effect) Play() {
	if e == nil || e.ctx == nil || e.ctx.ctx == nil || len(e.pcm) == 0 {
		return
	}
	p := e.ctx.ctx.NewPlayerFromBytes(e.pcm)
	p.Play()
	e.ctx.keep(p)
}

// keep holds a reference to p until it finishes and releases finished ones.
func (c *Context) keep(p *ebaudio.Player) {
	live := c.playing[:0]
	for _, q := range c.playing {
		if q.IsPlaying() {
			live = append(live, q)
		} else {
			_ = q.Close()
		}
	}
	c.playing = append(live, p)
}

// Duration returns the playing time of the effect.
func (e *Effect) Duration() time.Duration {
	return SampleRate.D(len(e.pcm) / 4)
}

// NewEffect renders s into an effect.
func NewEffect(ctx *Context, name string, s beep.Streamer) (*Effect, error) {
	pcm, err := Render(s)
	if err != nil {
		return nil, fmt.Errorf("audio: render %s: %w", name, err)
	}
	return &Effect{Name: name, ctx: ctx, pcm: pcm}, nil
}

// LoadWAV decodes a WAV file into an effect, resampling it if needed.
func LoadWAV(ctx *Context, name string, r io.Reader) (*Effect, error) {
	rc, ok := r.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(r)
	}
	s, format, err := wav.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", name, err)
	}
	defer s.Close()
	var streamer beep.Streamer = s
	if format.SampleRate != SampleRate {
		streamer = beep.Resample(4, format.SampleRate, SampleRate, s)
	}
	return NewEffect(ctx, name, streamer)
}

// Note is one tone of a synthesized cue.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Tones builds a streamer playing notes one after another at the given
// volume in [0, 1].
func Tones(volume float64, notes ...Note) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(SampleRate, n.Freq)
		if err != nil {
			return nil, fmt.Errorf("audio: tone %.0fHz: %w", n.Freq, err)
		}
		parts = append(parts, fade(beep.Take(SampleRate.N(n.Duration), tone), SampleRate.N(n.Duration)))
	}
	return withVolume(beep.Seq(parts...), volume), nil
}

// SuccessTones is the rising chime played when a street is finished.
func SuccessTones() (beep.Streamer, error) {
	return Tones(0.4,
		Note{Freq: 659.25, Duration: 90 * time.Millisecond},
		Note{Freq: 783.99, Duration: 90 * time.Millisecond},
		Note{Freq: 1046.5, Duration: 180 * time.Millisecond},
	)
}

// MissTones is the low blip played on a street's first miss.
func MissTones() (beep.Streamer, error) {
	return Tones(0.4, Note{Freq: 146.83, Duration: 150 * time.Millisecond})
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// fade ramps the last fifth of a total-sample streamer down to silence so
// tones end without a click.
func fade(s beep.Streamer, total int) beep.Streamer {
	release := total / 5
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			if left := total - pos; release > 0 && left < release {
				v := float64(left) / float64(release)
				samples[i][0] *= v
				samples[i][1] *= v
			}
			pos++
		}
		return n, ok
	})
}

// Render drains s into 16-bit little-endian stereo PCM.
func Render(s beep.Streamer) ([]byte, error) {
	var buf bytes.Buffer
	samples := make([][2]float64, 512)
	var frame [4]byte
	for {
		n, ok := s.Stream(samples)
		for _, smp := range samples[:n] {
			binary.LittleEndian.PutUint16(frame[0:], uint16(toInt16(smp[0])))
			binary.LittleEndian.PutUint16(frame[2:], uint16(toInt16(smp[1])))
			buf.Write(frame[:])
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toInt16(v float64) int16 {
	v = max(-1, min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}

// LoadOrSynthesize returns the WAV effect at open when it can be read, and
// the synthesized fallback otherwise. Failures are logged.
func LoadOrSynthesize(ctx *Context, name string, open func() (io.ReadCloser, error), fallback func() (beep.Streamer, error)) SoundEffect {
	if open != nil {
		if rc, err := open(); err == nil {
			defer rc.Close()
			e, err := LoadWAV(ctx, name, rc)
			if err == nil {
				return e
			}
			log.Printf("audio: %v", err)
		}
	}
	s, err := fallback()
	if err != nil {
		log.Printf("audio: %s: %v", name, err)
		return Silent{}
	}
	e, err := NewEffect(ctx, name, s)
	if err != nil {
		log.Printf("audio: %v", err)
		return Silent{}
	}
	return e
}
