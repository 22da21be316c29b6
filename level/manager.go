package level

import (
	"log"
	"time"

	"github.com/plus3/mirrorworld/ecs"
)

// DefaultTransitionDelay is the pause between completing a level and
// loading the next.
const DefaultTransitionDelay = time.Second

// State is the phase of the level manager.
type State int

const (
	// StateIdle is normal play on the current level.
	StateIdle State = iota
	// StateTransitioning waits out the delay before the next level.
	StateTransitioning
	// StateComplete waits out the delay after the last level before the
	// run restarts.
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTransitioning:
		return "transitioning"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Manager sequences play through a pack. It listens for level_completed,
// waits TransitionDelay of simulated time and loads the next level. After
// the last level it publishes game_over and starts over from the first.
//
// Time only passes through Update, so a paused or stepped loop pauses
// transitions with it.
type Manager struct {
	Pack     *Pack
	Loader   *Loader
	Events   *ecs.EventBus
	Progress ProgressStore

	TransitionDelay time.Duration

	state   State
	current int
	elapsed float64
	runs    int
	best    int

	sub ecs.Subscription
}

// NewManager subscribes to level_completed on bus. Call Close to
// unsubscribe.
func NewManager(pack *Pack, loader *Loader, bus *ecs.EventBus) *Manager {
	m := &Manager{
		Pack:            pack,
		Loader:          loader,
		Events:          bus,
		TransitionDelay: DefaultTransitionDelay,
	}
	if bus != nil {
		m.sub = bus.Subscribe(ecs.EventLevelCompleted, m.OnLevelCompleted)
	}
	return m
}

// Close unsubscribes the manager from the event bus.
func (m *Manager) Close() {
	if m.Events != nil {
		m.Events.Unsubscribe(m.sub)
	}
}

// State returns the current phase.
func (m *Manager) State() State {
	return m.state
}

// Current returns the index of the level being played.
func (m *Manager) Current() int {
	return m.current
}

// CurrentLevel returns the level being played.
func (m *Manager) CurrentLevel() *Level {
	l, _ := m.Pack.At(m.current)
	return l
}

// Runs returns how many times the whole pack was completed.
func (m *Manager) Runs() int {
	return m.runs
}

// Start loads the first level, or the stored one when resume is set and a
// progress store is configured.
func (m *Manager) Start(resume bool) error {
	index := 0
	if m.Progress != nil {
		p, err := m.Progress.Load()
		if err != nil {
			log.Printf("[LevelManager] Warning: failed to load progress: %v", err)
		} else {
			m.runs = p.Runs
			m.best = p.Best
			if resume && p.Level < m.Pack.Len() {
				index = p.Level
			}
		}
	}
	return m.LoadLevel(index)
}

// LoadLevel clears the world and builds level i. Any pending transition is
// cancelled.
func (m *Manager) LoadLevel(i int) error {
	l, err := m.Pack.At(i)
	if err != nil {
		return err
	}

	if err := l.Validate(); err != nil {
		return err
	}

	m.Loader.World.Clear()
	if err := m.Loader.Load(l); err != nil {
		return err
	}

	m.current = i
	m.state = StateIdle
	m.elapsed = 0
	log.Printf("[LevelManager] Loaded %s (%d/%d)", l.Title(), i+1, m.Pack.Len())

	m.best = max(m.best, i)
	m.save()
	return nil
}

// Reset rebuilds the current level. It is ignored during a transition.
func (m *Manager) Reset() error {
	if m.state != StateIdle {
		return nil
	}
	return m.LoadLevel(m.current)
}

// OnLevelCompleted starts the transition to the next level. Completions
// reported while a transition is already running, or for a world that has
// since been cleared, are ignored.
func (m *Manager) OnLevelCompleted(ev ecs.Event) {
	if m.state != StateIdle {
		return
	}
	if lc, ok := ev.(ecs.LevelCompleted); ok && lc.Generation != m.Loader.World.Generation() {
		return
	}

	m.elapsed = 0
	if m.current+1 < m.Pack.Len() {
		m.state = StateTransitioning
		log.Printf("[LevelManager] Level %d completed, loading next", m.current+1)
	} else {
		m.state = StateComplete
		log.Printf("[LevelManager] All levels completed")
	}
}

// Update advances a running transition by dt seconds of simulated time.
func (m *Manager) Update(dt float64) error {
	if m.state == StateIdle {
		return nil
	}

	m.elapsed += dt
	if m.elapsed < m.TransitionDelay.Seconds() {
		return nil
	}

	if m.state == StateTransitioning {
		if err := m.LoadLevel(m.current + 1); err != nil {
			m.state = StateIdle
			return err
		}
		return nil
	}

	m.runs++
	log.Printf("[LevelManager] You win! Runs completed: %d", m.runs)
	if m.Events != nil {
		m.Events.Publish(ecs.GameOver{Runs: m.runs})
	}
	if err := m.LoadLevel(0); err != nil {
		m.state = StateIdle
		return err
	}
	return nil
}

func (m *Manager) save() {
	if m.Progress == nil {
		return
	}
	p := Progress{Level: m.current, Best: m.best, Runs: m.runs}
	if err := m.Progress.Save(p); err != nil {
		log.Printf("[LevelManager] Warning: failed to save progress: %v", err)
	}
}
