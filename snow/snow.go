// Package snow simulates the falling snow field drawn behind the trees.
package snow

import (
	"math/rand/v2"
)

// Particle is one flake at a grid position
type Particle struct {
	Row int
	Col int
}

// Config tunes density, spawning and the particle cap
type Config struct {
	// Initial particle count is max(area/SeedDivisor, SeedMin)
	SeedDivisor int
	SeedMin     int

	// Each tick makes SpawnAttempts independent draws at SpawnChance
	SpawnAttempts int
	SpawnChance   float64

	// Particle cap is max(area/CapDivisor, CapMin), oldest flakes go first
	CapDivisor int
	CapMin     int

	// TopRowOnly spawns on row 0 instead of the sky above the tree band
	TopRowOnly bool
}

// DefaultConfig is the full-terminal forest density
func DefaultConfig() Config {
	return Config{
		SeedDivisor:   150,
		SeedMin:       40,
		SpawnAttempts: 3,
		SpawnChance:   0.3,
		CapDivisor:    50,
		CapMin:        100,
	}
}

// SkyConfig is the sparse strip of sky above a single tree
func SkyConfig() Config {
	return Config{
		SeedMin:       15,
		SpawnAttempts: 1,
		SpawnChance:   0.2,
		CapMin:        60,
		TopRowOnly:    true,
	}
}

// NoSnow disables the field
func NoSnow() Config {
	return Config{}
}

// Enabled reports whether the config ever produces a flake
func (c Config) Enabled() bool {
	return c.SeedMin > 0 || c.SeedDivisor > 0 || (c.SpawnAttempts > 0 && c.SpawnChance > 0)
}

// Field holds particles oldest first, duplicates are allowed
type Field struct {
	width   int
	height  int
	bandTop int
	cfg     Config
	rng     *rand.Rand

	particles []Particle

	// Lifetime counters
	spawned int
	evicted int
}

// New creates an empty field, call Seed to populate it
// Width and height must be at least 1
func New(width, height, bandTop int, cfg Config, rng *rand.Rand) *Field {
	return &Field{
		width:   width,
		height:  height,
		bandTop: bandTop,
		cfg:     cfg,
		rng:     rng,
	}
}

// scaled returns max(area/divisor, floor), a zero divisor leaves the floor
func (f *Field) scaled(divisor, floor int) int {
	if divisor <= 0 {
		return floor
	}
	return max(f.width*f.height/divisor, floor)
}

// Cap returns the particle limit for the current grid
func (f *Field) Cap() int {
	return f.scaled(f.cfg.CapDivisor, f.cfg.CapMin)
}

// Seed replaces the field with uniformly placed particles
func (f *Field) Seed() {
	n := f.scaled(f.cfg.SeedDivisor, f.cfg.SeedMin)
	f.particles = make([]Particle, 0, max(n, f.Cap()))
	for range n {
		f.particles = append(f.particles, Particle{
			Row: f.rng.IntN(f.height),
			Col: f.rng.IntN(f.width),
		})
	}
	f.spawned += n
}

// Tick advances every flake one row, spawns new ones and enforces the cap
func (f *Field) Tick() {
	// Pure vertical fall, wrapping to the top
	for i := range f.particles {
		p := &f.particles[i]
		p.Row++
		if p.Row >= f.height {
			p.Row = 0
		}
	}

	// Spawn above the tree band
	spawnRows := max(f.bandTop, 1)
	if f.cfg.TopRowOnly {
		spawnRows = 1
	}
	for range f.cfg.SpawnAttempts {
		if f.rng.Float64() >= f.cfg.SpawnChance {
			continue
		}
		f.particles = append(f.particles, Particle{
			Row: f.rng.IntN(min(spawnRows, f.height)),
			Col: f.rng.IntN(f.width),
		})
		f.spawned++
	}

	f.enforceCap()
}

// enforceCap drops the oldest particles beyond the cap
func (f *Field) enforceCap() {
	limit := f.Cap()
	if excess := len(f.particles) - limit; excess > 0 {
		n := copy(f.particles, f.particles[excess:])
		f.particles = f.particles[:n]
		f.evicted += excess
	}
}

// Resize folds existing flakes into the new grid and re-applies the cap
func (f *Field) Resize(width, height, bandTop int) {
	f.width = width
	f.height = height
	f.bandTop = bandTop

	for i := range f.particles {
		p := &f.particles[i]
		p.Row %= height
		p.Col %= width
	}
	f.enforceCap()
}

// Len returns the current particle count
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns the live particle slice, oldest first
// The slice is only valid until the next Tick or Resize
func (f *Field) Particles() []Particle {
	return f.particles
}

// Stats returns lifetime spawn and eviction counts
func (f *Field) Stats() (spawned, evicted int) {
	return f.spawned, f.evicted
}

// Occupancy marks flake cells in dst, a row-major width*height grid
// dst is cleared first; a short dst is left untouched
func (f *Field) Occupancy(dst []bool) {
	if len(dst) < f.width*f.height {
		return
	}
	clear(dst)
	for _, p := range f.particles {
		dst[p.Row*f.width+p.Col] = true
	}
}
