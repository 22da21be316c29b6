package ecs

import (
	"context"
	"time"
)

const (
	// DefaultStep is the fixed simulation timestep in seconds.
	DefaultStep = 1.0 / 60.0
	// DefaultMaxFrame caps a single frame delta to avoid a spiral of death
	// after the process was suspended.
	DefaultMaxFrame = 0.25
)

// Simulation is what a Loop advances.
type Simulation interface {
	Update(dt float64)
	Render(alpha float64)
}

// Loop decouples the simulation rate from the display rate: frame deltas are
// accumulated and the simulation is advanced in whole fixed steps.
type Loop struct {
	sim      Simulation
	step     float64
	maxFrame float64

	running     bool
	lastTime    time.Time
	accumulator float64
	alpha       float64

	steps     int64
	simulated float64
	onStep    []func(dt float64)
}

// NewLoop creates a stopped loop over sim. Non-positive step or maxFrame
// select the defaults.
func NewLoop(sim Simulation, step, maxFrame float64) *Loop {
	if step <= 0 {
		step = DefaultStep
	}
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrame
	}
	return &Loop{
		sim:      sim,
		step:     step,
		maxFrame: maxFrame,
	}
}

// Step returns the fixed timestep in seconds.
func (l *Loop) Step() float64 { return l.step }

// Running reports whether the loop is started.
func (l *Loop) Running() bool { return l.running }

// Accumulator returns the unsimulated time carried to the next frame.
func (l *Loop) Accumulator() float64 { return l.accumulator }

// Alpha returns the interpolation fraction passed to the last Render.
func (l *Loop) Alpha() float64 { return l.alpha }

// Steps returns the number of fixed steps simulated so far.
func (l *Loop) Steps() int64 { return l.steps }

// SimulatedTime returns the total simulated time in seconds.
func (l *Loop) SimulatedTime() float64 { return l.simulated }

// OnStep registers fn to run after every fixed step.
func (l *Loop) OnStep(fn func(dt float64)) {
	l.onStep = append(l.onStep, fn)
}

// Start moves the loop to the running state, measuring frames from now.
func (l *Loop) Start(now time.Time) {
	l.running = true
	l.lastTime = now
}

// Stop moves the loop to the stopped state. The accumulator is kept.
func (l *Loop) Stop() {
	l.running = false
}

// Frame advances the loop by the wall-clock time elapsed since the previous
// frame. It does nothing while the loop is stopped.
func (l *Loop) Frame(now time.Time) (steps int, alpha float64) {
	if !l.running {
		return 0, l.alpha
	}
	delta := now.Sub(l.lastTime).Seconds()
	l.lastTime = now
	return l.Advance(delta)
}

// Advance feeds one frame delta (seconds) into the accumulator, runs as many
// fixed steps as fit and renders with the leftover fraction.
func (l *Loop) Advance(delta float64) (steps int, alpha float64) {
	if delta > l.maxFrame {
		delta = l.maxFrame
	}
	if delta < 0 {
		delta = 0
	}
	l.accumulator += delta

	for l.accumulator >= l.step {
		l.sim.Update(l.step)
		l.accumulator -= l.step
		l.steps++
		l.simulated += l.step
		steps++
		for _, fn := range l.onStep {
			fn(l.step)
		}
	}

	l.alpha = l.accumulator / l.step
	if l.alpha >= 1 {
		l.alpha = 0
	}
	l.sim.Render(l.alpha)
	return steps, l.alpha
}

// Run drives the loop on every tick of interval until ctx is cancelled, Stop
// is called or frame returns false. frame is responsible for advancing the
// loop; a nil frame calls Frame. The loop is started if it is not running
// and is stopped when Run returns.
func (l *Loop) Run(ctx context.Context, interval time.Duration, frame func(now time.Time) bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if frame == nil {
		frame = func(now time.Time) bool {
			l.Frame(now)
			return true
		}
	}
	if !l.running {
		l.Start(time.Now())
	}
	defer l.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !l.running || !frame(now) {
				return
			}
		}
	}
}
