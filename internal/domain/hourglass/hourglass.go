// Package hourglass implements the real-time sand resource that pays for cards.
//
// Sand is stored in fixed-point sub-grains so that fractional regeneration
// accumulates exactly across thousands of frames. Whole grains are what
// CanAfford and Spend see.
package hourglass

import (
	"math"
	"time"

	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
)

const (
	// grainScale is the number of sub-grains in one grain
	grainScale int64 = 1_000_000_000

	DefaultMax          = 6
	DefaultCap          = 8
	DefaultRegenRate    = 1.0
	DefaultMaxTickDelta = 50 * time.Millisecond
)

// Config describes a new hourglass
type Config struct {
	Start        int
	Max          int
	Cap          int
	RegenRate    float64
	MaxTickDelta time.Duration
}

// HourGlass is owned by exactly one combatant. It is not safe for concurrent
// use; a combat runs on a single goroutine.
type HourGlass struct {
	current   int64
	max       int
	cap       int
	rate      float64
	timeScale float64
	maxDelta  time.Duration
	last      time.Time
	paused    bool

	// multiplier is set per frame by a regeneration policy
	multiplier float64
}

// New creates an hourglass anchored at now. Zero config fields take defaults;
// use Pause to stop regeneration.
func New(cfg Config, now time.Time) *HourGlass {
	if cfg.Max <= 0 {
		cfg.Max = DefaultMax
	}
	if cfg.Cap < cfg.Max {
		cfg.Cap = max(DefaultCap, cfg.Max)
	}
	if cfg.RegenRate <= 0 {
		cfg.RegenRate = DefaultRegenRate
	}
	if cfg.MaxTickDelta <= 0 {
		cfg.MaxTickDelta = DefaultMaxTickDelta
	}

	h := &HourGlass{
		max:       cfg.Max,
		cap:       cfg.Cap,
		rate:      cfg.RegenRate,
		timeScale:  1,
		multiplier: 1,
		maxDelta:   cfg.MaxTickDelta,
		last:       now,
	}
	h.current = clampUnits(int64(cfg.Start)*grainScale, h.maxUnits())
	return h
}

// Tick advances regeneration to now and returns the number of whole grains
// that became available. Elapsed time beyond the per-call clamp is dropped.
// Repeated or earlier timestamps are no-ops.
func (h *HourGlass) Tick(now time.Time) int {
	if !now.After(h.last) {
		return 0
	}

	elapsed := now.Sub(h.last)
	h.last = now
	if elapsed > h.maxDelta {
		elapsed = h.maxDelta
	}
	if h.paused {
		return 0
	}

	before := h.Current()
	gain := int64(math.Round(float64(elapsed.Nanoseconds()) * h.speed() * float64(grainScale) / float64(time.Second)))
	h.current = clampUnits(h.current+gain, h.maxUnits())
	return h.Current() - before
}

// Current returns whole grains available
func (h *HourGlass) Current() int {
	return int(h.current / grainScale)
}

// Exact returns sand including the fractional part
func (h *HourGlass) Exact() float64 {
	return float64(h.current) / float64(grainScale)
}

// Max returns the current capacity
func (h *HourGlass) Max() int {
	return h.max
}

// CanAfford reports whether floor(current) covers cost
func (h *HourGlass) CanAfford(cost int) bool {
	return cost <= h.Current()
}

// Spend removes cost whole grains, keeping any fractional remainder.
// On failure nothing changes.
func (h *HourGlass) Spend(cost int) error {
	if cost < 0 {
		return duaterr.InvalidArgumentf("negative sand cost %d", cost)
	}
	if !h.CanAfford(cost) {
		return duaterr.InsufficientResourcef("need %d sand, have %d", cost, h.Current()).
			WithMeta("cost", cost).
			WithMeta("available", h.Current())
	}

	h.current -= int64(cost) * grainScale
	return nil
}

// Grant adds sand immediately, clamped to capacity. It returns the whole
// grains actually gained.
func (h *HourGlass) Grant(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := h.Current()
	h.current = clampUnits(h.current+int64(amount)*grainScale, h.maxUnits())
	return h.Current() - before
}

// IncreaseMax raises capacity permanently without granting sand. Capacity
// never exceeds the absolute cap; the applied increase is returned.
func (h *HourGlass) IncreaseMax(amount int) int {
	if amount <= 0 {
		return 0
	}
	applied := min(amount, h.cap-h.max)
	h.max += applied
	return applied
}

// SetSand overrides current sand, clamped to [0, max]. Meant for setup.
func (h *HourGlass) SetSand(amount int) {
	h.current = clampUnits(int64(amount)*grainScale, h.maxUnits())
}

// Pause stops regeneration. Ticks while paused still advance the timestamp
// so resuming never pays out the paused interval.
func (h *HourGlass) Pause() {
	h.paused = true
}

func (h *HourGlass) Resume() {
	h.paused = false
}

func (h *HourGlass) Paused() bool {
	return h.paused
}

// SetTimeScale multiplies regeneration speed. Debug only.
func (h *HourGlass) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	h.timeScale = scale
}

// SetRegenMultiplier scales regeneration from the next Tick on. Negative
// values stop it.
func (h *HourGlass) SetRegenMultiplier(m float64) {
	h.multiplier = max(m, 0)
}

func (h *HourGlass) RegenMultiplier() float64 {
	return h.multiplier
}

func (h *HourGlass) speed() float64 {
	return h.rate * h.timeScale * h.multiplier
}

// TimeToNextGrain reports how long until the next whole grain at the current
// rate. Zero when full; a negative duration when regeneration is stopped.
func (h *HourGlass) TimeToNextGrain() time.Duration {
	if h.current >= h.maxUnits() {
		return 0
	}
	speed := h.speed()
	if h.paused || speed <= 0 {
		return -1
	}
	missing := grainScale - h.current%grainScale
	secs := float64(missing) / float64(grainScale) / speed
	return time.Duration(math.Ceil(secs * float64(time.Second)))
}

// Snapshot is a read-only view for the event stream and the host
type Snapshot struct {
	Current int     `json:"current"`
	Exact   float64 `json:"exact"`
	Max     int     `json:"max"`
	Paused  bool    `json:"paused"`
}

func (h *HourGlass) Snapshot() Snapshot {
	return Snapshot{
		Current: h.Current(),
		Exact:   h.Exact(),
		Max:     h.max,
		Paused:  h.paused,
	}
}

func (h *HourGlass) maxUnits() int64 {
	return int64(h.max) * grainScale
}

func clampUnits(v, hi int64) int64 {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
