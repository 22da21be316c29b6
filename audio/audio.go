// Package audio plays short synthesized chimes in response to game events.
package audio

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/mirrorworld/ecs"
)

const SampleRate = beep.SampleRate(44100)

// Player plays a finite streamer.
type Player interface {
	Play(s beep.Streamer)
}

// Speaker mixes streamers onto the default audio device.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	opened bool
}

// NewSpeaker returns a closed speaker. Play is a no-op until Open succeeds.
func NewSpeaker() *Speaker {
	return &Speaker{mixer: &beep.Mixer{}}
}

// Open initializes the audio device with a 100ms buffer.
func (s *Speaker) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opened {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.opened = true
	return nil
}

func (s *Speaker) Play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.opened = false
}

// Tone is a sine wave of freq Hz lasting d.
func Tone(freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(SampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("audio: tone %gHz: %w", freq, err)
	}
	return beep.Take(SampleRate.N(d), sine), nil
}

// Melody plays the notes one after another, each lasting d.
func Melody(d time.Duration, freqs ...float64) (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		tone, err := Tone(f, d)
		if err != nil {
			return nil, err
		}
		notes = append(notes, tone)
	}
	return beep.Seq(notes...), nil
}

// Scaled applies a linear volume in [0, 1].
func Scaled(s beep.Streamer, volume float64) beep.Streamer {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(max(volume, 1e-6)),
		Silent:   volume <= 0,
	}
}

const (
	noteC5 = 523.25
	noteE5 = 659.25
	noteG5 = 783.99
	noteC6 = 1046.50
	noteA2 = 110.0
)

// DefaultCollisionCooldown keeps a player pressing into a wall from
// retriggering the bump sound every step.
const DefaultCollisionCooldown = 150 * time.Millisecond

// Chimes turns events into sounds.
type Chimes struct {
	Player            Player
	Volume            float64
	CollisionCooldown time.Duration
	Now               func() time.Time

	bus           *ecs.EventBus
	subs          []ecs.Subscription
	lastCollision time.Time
}

// NewChimes returns chimes that play on player at volume once attached.
func NewChimes(player Player, volume float64) *Chimes {
	return &Chimes{
		Player:            player,
		Volume:            volume,
		CollisionCooldown: DefaultCollisionCooldown,
		Now:               time.Now,
	}
}

// Attach subscribes to level_completed, collision and game_over.
func (c *Chimes) Attach(bus *ecs.EventBus) {
	c.Detach()
	c.bus = bus
	c.subs = []ecs.Subscription{
		bus.Subscribe(ecs.EventLevelCompleted, c.onLevelCompleted),
		bus.Subscribe(ecs.EventCollision, c.onCollision),
		bus.Subscribe(ecs.EventGameOver, c.onGameOver),
	}
}

func (c *Chimes) Detach() {
	if c.bus == nil {
		return
	}
	for _, sub := range c.subs {
		c.bus.Unsubscribe(sub)
	}
	c.subs = nil
	c.bus = nil
}

func (c *Chimes) onLevelCompleted(ecs.Event) {
	c.play(Melody(90*time.Millisecond, noteC5, noteE5, noteG5))
}

func (c *Chimes) onCollision(ecs.Event) {
	now := c.Now()
	if !c.lastCollision.IsZero() && now.Sub(c.lastCollision) < c.CollisionCooldown {
		return
	}
	c.lastCollision = now
	c.play(Tone(noteA2, 40*time.Millisecond))
}

func (c *Chimes) onGameOver(ecs.Event) {
	c.play(Melody(120*time.Millisecond, noteC5, noteE5, noteG5, noteC6))
}

func (c *Chimes) play(s beep.Streamer, err error) {
	if err != nil {
		log.Printf("[Audio] %v", err)
		return
	}
	if c.Player == nil || c.Volume <= 0 {
		return
	}
	c.Player.Play(Scaled(s, c.Volume))
}
