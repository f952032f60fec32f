// Package game wires the physics engine to the ECS world and drives it on a
// fixed tick.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/tickphys/components"
	"github.com/pthm-cable/tickphys/config"
	"github.com/pthm-cable/tickphys/physics"
	"github.com/pthm-cable/tickphys/systems"
	"github.com/pthm-cable/tickphys/telemetry"
)

// Options configures game initialization.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // empty = no CSV output
	SnapshotDir    string  // empty = no snapshots on bookmarks
	StepsPerUpdate int     // ticks per UpdateHeadless call, and per clock tick in Update

	// Restore starts from a saved snapshot instead of the configured scenario.
	Restore *telemetry.Snapshot

	// StatsCallback, when set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	world  *ecs.World
	engine *physics.Engine

	// Entity mappers
	solidMapper *ecs.Map6[
		components.PhysicsBody,
		components.Transform,
		components.Shape,
		components.Wander,
		components.Health,
		components.ContactDamage,
	]
	floatingMapper *ecs.Map5[
		components.PhysicsBody,
		components.Transform,
		components.Shape,
		components.Wander,
		components.ContactDamage,
	]
	bodyFilter *ecs.Filter2[components.PhysicsBody, components.Shape]

	// Individual component mappers for lookups
	pbMap     *ecs.Map[components.PhysicsBody]
	trMap     *ecs.Map[components.Transform]
	shapeMap  *ecs.Map[components.Shape]
	healthMap *ecs.Map[components.Health]
	wanderMap *ecs.Map[components.Wander]

	// Body handle to entity
	entities map[physics.BodyID]ecs.Entity

	// Systems
	wander  *systems.WanderSystem
	sync    *systems.TransformSyncSystem
	contact *systems.ContactDamageSystem

	// Selection
	grid         *systems.SpatialGrid
	selected     ecs.Entity
	hasSelection bool

	// Scheduling
	clock          *Clock
	paused         bool
	stepRequested  bool
	stepsPerUpdate int
	baseTick       uint64 // tick the run was restored at

	// Last tick, for the renderer
	lastCollisions []physics.Collision
	lastResult     TickStats

	// Arena used when bounds are toggled on
	arena         physics.MapBounds
	boundsEnabled bool

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	logStats         bool
	snapshotDir      string
	statsCallback    func(telemetry.WindowStats)
	trajectoryRows   []telemetry.TrajectoryRow
}

// TickStats summarizes the most recent tick.
type TickStats struct {
	Tick        uint64
	Collisions  int
	Overlapping int
	Corrections int
	Moved       int
	Synced      int
	ContactHits int
	Despawned   int
}

// NewGame creates a new game. The initial population comes from the scenario
// config, or from opts.Restore when set.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	settings := cfg.Derived.Settings
	seed := opts.Seed
	if opts.Restore != nil {
		settings = opts.Restore.Settings()
		seed = opts.Restore.RNGSeed
	}

	engine, err := physics.NewEngine(physics.NewStore(), settings)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(seed))

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	g := &Game{
		cfg:    cfg,
		rng:    rng,
		seed:   seed,
		world:  world,
		engine: engine,
		solidMapper: ecs.NewMap6[
			components.PhysicsBody,
			components.Transform,
			components.Shape,
			components.Wander,
			components.Health,
			components.ContactDamage,
		](world),
		floatingMapper: ecs.NewMap5[
			components.PhysicsBody,
			components.Transform,
			components.Shape,
			components.Wander,
			components.ContactDamage,
		](world),
		bodyFilter: ecs.NewFilter2[components.PhysicsBody, components.Shape](world),
		pbMap:      ecs.NewMap[components.PhysicsBody](world),
		trMap:      ecs.NewMap[components.Transform](world),
		shapeMap:   ecs.NewMap[components.Shape](world),
		healthMap:  ecs.NewMap[components.Health](world),
		wanderMap:  ecs.NewMap[components.Wander](world),
		entities:   make(map[physics.BodyID]ecs.Entity),

		wander:  systems.NewWanderSystem(world, rng),
		sync:    systems.NewTransformSyncSystem(world),
		contact: systems.NewContactDamageSystem(world),

		clock:          NewClock(settings.DT, cfg.Physics.MaxTicksPerFrame),
		stepsPerUpdate: stepsPerUpdate,
		logStats:       opts.LogStats,
		snapshotDir:    opts.SnapshotDir,
		statsCallback:  opts.StatsCallback,
	}

	g.arena = arenaFromConfig(cfg)
	g.grid = systems.NewSpatialGrid(
		float32(g.arena.XMin), float32(g.arena.YMin),
		float32(g.arena.XMax), float32(g.arena.YMax),
		float32(2*cfg.Scenario.RadiusMax+1),
	)

	// Telemetry
	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(statsWindow, settings.DT)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(10)
	engine.SetPhaseHook(g.perfCollector.Hook())

	om, err := telemetry.NewOutputManager(opts.OutputDir, cfg.Telemetry.Trajectory)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	if opts.Restore != nil {
		if err := g.restore(opts.Restore); err != nil {
			om.Close()
			return nil, fmt.Errorf("restoring snapshot: %w", err)
		}
	} else {
		if cfg.Derived.Bounds != nil {
			if err := g.SetBoundsEnabled(true); err != nil {
				om.Close()
				return nil, err
			}
		}
		if err := g.spawnScenario(); err != nil {
			om.Close()
			return nil, fmt.Errorf("spawning scenario: %w", err)
		}
	}

	return g, nil
}

// arenaFromConfig returns the configured bounds rectangle, falling back to
// the spawn square when the configured one is unusable.
func arenaFromConfig(cfg *config.Config) physics.MapBounds {
	b := physics.MapBounds{
		XMin: cfg.Bounds.XMin,
		XMax: cfg.Bounds.XMax,
		YMin: cfg.Bounds.YMin,
		YMax: cfg.Bounds.YMax,
	}
	if b.Validate() != nil || b.Width() == 0 || b.Height() == 0 {
		e := cfg.Scenario.SpawnExtent + cfg.Scenario.RadiusMax
		b = physics.MapBounds{XMin: -e, XMax: e, YMin: -e, YMax: e}
	}
	return b
}

// Unload releases resources and closes output files.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// World returns the ECS world.
func (g *Game) World() *ecs.World { return g.world }

// Engine returns the physics engine.
func (g *Game) Engine() *physics.Engine { return g.engine }

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }

// Seed returns the RNG seed.
func (g *Game) Seed() int64 { return g.seed }

// Tick returns the number of completed ticks, including any restored offset.
func (g *Game) Tick() uint64 { return g.baseTick + g.engine.Tick() }

// BodyCount returns the number of live bodies.
func (g *Game) BodyCount() int { return g.engine.Store().Len() }

// LastTick returns the summary of the most recent tick.
func (g *Game) LastTick() TickStats { return g.lastResult }

// LastCollisions returns the collision list of the most recent tick. The
// slice is reused by the next tick.
func (g *Game) LastCollisions() []physics.Collision { return g.lastCollisions }

// PerfStats returns timing statistics over the rolling window.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perfCollector.Stats() }

// RecordFrame records a rendered frame for FPS reporting.
func (g *Game) RecordFrame() { g.perfCollector.RecordFrame() }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(p bool) { g.paused = p }

// RequestStep runs exactly one tick on the next Update while paused.
func (g *Game) RequestStep() { g.stepRequested = true }

// StepsPerUpdate returns the simulation speed multiplier.
func (g *Game) StepsPerUpdate() int { return g.stepsPerUpdate }

// SetStepsPerUpdate sets the simulation speed multiplier, clamped to [1, 10].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, min(n, 10))
}

// Substeps returns the current substep count.
func (g *Game) Substeps() int { return g.engine.Settings().Substeps }

// SetSubsteps changes the substep count for subsequent ticks.
func (g *Game) SetSubsteps(n int) error { return g.engine.SetSubsteps(n) }

// BoundsEnabled reports whether confinement is active.
func (g *Game) BoundsEnabled() bool { return g.boundsEnabled }

// Arena returns the rectangle used when bounds are enabled.
func (g *Game) Arena() physics.MapBounds { return g.arena }

// SetBoundsEnabled toggles confinement to the arena rectangle.
func (g *Game) SetBoundsEnabled(on bool) error {
	var b *physics.MapBounds
	if on {
		b = &g.arena
	}
	if err := g.engine.SetBounds(b); err != nil {
		return fmt.Errorf("setting bounds: %w", err)
	}
	g.boundsEnabled = on
	return nil
}

// EntityFor resolves a body handle to its entity.
func (g *Game) EntityFor(id physics.BodyID) (ecs.Entity, bool) {
	e, ok := g.entities[id]
	return e, ok
}
