// Package engine owns the authoritative game state and advances it one tick at a time.
package engine

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/younwookim/acestriker/internal/application/state"
	"github.com/younwookim/acestriker/internal/application/system"
	"github.com/younwookim/acestriker/internal/domain/entity"
	"github.com/younwookim/acestriker/internal/infrastructure/clock"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

var _ system.InputSink = (*Engine)(nil)

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the wall clock used for spawn, fire and effect timers
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithSeed seeds the spawn RNG
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// TickResult reports one completed tick
type TickResult struct {
	Tick   uint64
	Now    time.Time
	Status state.GameState
	Events []Event
}

// inputLatch buffers input between ticks
type inputLatch struct {
	intents system.IntentSet
	target  system.PointerTarget
	fire    bool
}

// tickContext is the working state of one tick
type tickContext struct {
	tick   uint64
	now    time.Time
	world  *entity.World
	status state.GameState
	input  inputLatch
	events []Event
}

type step struct {
	name string
	run  func(tc *tickContext)
}

// Engine is the single owner of mutable game state
type Engine struct {
	mu sync.Mutex

	config *config.GameConfig
	clock  clock.Clock
	logger *log.Logger
	seed   int64

	movement *system.MovementSystem
	spawner  *system.SpawnSystem
	combat   *system.CombatSystem
	fire     *system.FireControl
	steps    []step

	world   *entity.World
	status  state.GameState
	tick    uint64
	input   inputLatch
	running bool
	stopped bool
	halted  error

	snapshot atomic.Pointer[Snapshot]
}

// New creates an engine with a fresh session. Call Start before Tick.
func New(cfg *config.GameConfig, opts ...Option) *Engine {
	e := &Engine{
		config: cfg,
		clock:  clock.System{},
		logger: log.Default(),
		seed:   time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.movement = system.NewMovementSystem(cfg)
	e.spawner = system.NewSpawnSystem(cfg, rand.New(rand.NewSource(e.seed)))
	e.combat = system.NewCombatSystem(cfg)
	e.fire = system.NewFireControl(cfg)
	e.steps = []step{
		{"fire", e.stepFire},
		{"movement", e.stepMovement},
		{"collision", e.stepCollision},
		{"spawn", e.stepSpawn},
	}

	e.world = e.newWorld()
	e.status = state.StatePlaying
	e.publish(e.clock.Now())
	return e
}

// Seed returns the spawn RNG seed
func (e *Engine) Seed() int64 {
	return e.seed
}

// Config returns the engine configuration
func (e *Engine) Config() *config.GameConfig {
	return e.config
}

// Snapshot returns the last committed state. It never blocks on a tick.
func (e *Engine) Snapshot() *Snapshot {
	return e.snapshot.Load()
}

// Start begins the session. Calling it on a running engine is a no-op.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return ErrStopped
	}
	if e.running {
		return nil
	}
	e.running = true
	e.logger.Printf("session started (seed=%d, lives=%d)", e.seed, e.world.Lives)
	return nil
}

// Stop tears the engine down. Effects are canceled and pending input dropped. Idempotent.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return
	}
	e.stopped = true
	e.running = false
	e.world.TripleShot.Cancel()
	e.input = inputLatch{}
	e.logger.Printf("engine stopped at tick %d (score=%d)", e.tick, e.world.Score)
}

// Reset starts a new session immediately, from any status
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return ErrStopped
	}
	if e.halted != nil {
		return fmt.Errorf("%w: %v", ErrHalted, e.halted)
	}

	e.world = e.newWorld()
	e.status = state.StatePlaying
	e.input = inputLatch{}
	e.publish(e.clock.Now())
	e.logger.Printf("session reset")
	return nil
}

func (e *Engine) newWorld() *entity.World {
	pc := e.config.Player
	field := e.config.Field
	player := entity.NewPlayer(field.Width/2-pc.Size/2, field.Height-pc.SpawnOffsetY, pc.Size)
	player.MoveTo(player.X, player.Y, field.Width, field.Height)
	return entity.NewWorld(player, pc.InitialLives)
}

// KeyDown records a held key. A movement key hands control back from the pointer.
func (e *Engine) KeyDown(code string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i, ok := system.KeyIntent(code); ok {
		e.input.intents.Add(i)
		e.input.target.Active = false
	}
	if system.IsFireKey(code) {
		e.input.fire = true
	}
}

// KeyUp releases a held key
func (e *Engine) KeyUp(code string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i, ok := system.KeyIntent(code); ok {
		e.input.intents.Remove(i)
	}
}

// SetAbsolutePlayerTarget centers the player on x, y from the next tick on.
// Non-numeric coordinates are ignored.
func (e *Engine) SetAbsolutePlayerTarget(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.input.target = system.PointerTarget{X: x, Y: y, Active: true}
}

// ClearAbsolutePlayerTarget returns movement to the held intents
func (e *Engine) ClearAbsolutePlayerTarget() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.input.target.Active = false
}

// Fire requests a shot on the next tick. Rate limiting happens there.
func (e *Engine) Fire() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.input.fire = true
}

// Tick advances the simulation by one step.
// A failing pipeline step skips the tick and leaves state untouched.
// A failing commit halts the engine.
func (e *Engine) Tick() (TickResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case e.stopped:
		return TickResult{}, ErrStopped
	case e.halted != nil:
		return TickResult{}, fmt.Errorf("%w: %v", ErrHalted, e.halted)
	case !e.running:
		return TickResult{}, ErrNotStarted
	}

	now := e.clock.Now()
	in := e.input
	e.input.fire = false
	e.tick++

	res := TickResult{Tick: e.tick, Now: now, Status: e.status}
	if !e.status.Running() {
		// World stays frozen; timers in the snapshot follow the clock
		e.publish(now)
		return res, nil
	}

	tc := &tickContext{
		tick:   e.tick,
		now:    now,
		world:  e.world.Clone(),
		status: e.status,
		input:  in,
	}

	if err := e.run(tc); err != nil {
		e.logger.Printf("tick %d skipped: %v", tc.tick, err)
		return res, err
	}

	if err := e.commit(tc); err != nil {
		e.halted = err
		e.running = false
		e.logger.Printf("engine halted: %v", err)
		return res, err
	}

	res.Status = e.status
	res.Events = tc.events
	return res, nil
}

func (e *Engine) run(tc *tickContext) (err error) {
	current := ""
	defer func() {
		if r := recover(); r != nil {
			err = &TickError{
				Tick: tc.tick,
				Step: current,
				Err:  fmt.Errorf("%w: %v", ErrTickSkipped, r),
			}
		}
	}()

	for _, s := range e.steps {
		if !tc.status.Running() {
			break
		}
		current = s.name
		s.run(tc)
	}
	return nil
}

func (e *Engine) commit(tc *tickContext) error {
	if err := e.validate(tc.world); err != nil {
		return &TickError{
			Tick:  tc.tick,
			Step:  "commit",
			Fatal: true,
			Err:   fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err),
		}
	}

	e.world = tc.world
	if e.status != tc.status && tc.status == state.StateGameOver {
		e.logger.Printf("game over: score=%d level=%d tick=%d",
			e.world.Score, Level(e.world.Score, e.config.Scoring.LevelDivisor), tc.tick)
	}
	e.status = tc.status
	e.publish(tc.now)
	return nil
}

// validate rejects a working state that breaks a model invariant
func (e *Engine) validate(w *entity.World) error {
	field := e.config.Field
	p := w.Player
	if !finite(p.X, p.Y) || p.X < 0 || p.Y < 0 || p.X > field.Width-p.Size || p.Y > field.Height-p.Size {
		return fmt.Errorf("player out of bounds at (%v, %v)", p.X, p.Y)
	}
	if w.Score < 0 {
		return fmt.Errorf("negative score %d", w.Score)
	}
	if w.Lives < 0 {
		return fmt.Errorf("negative lives %d", w.Lives)
	}
	for _, b := range w.Bullets {
		if !finite(b.X, b.Y) {
			return fmt.Errorf("bullet %d has non-finite position", b.ID)
		}
	}
	for _, en := range w.Enemies {
		if !finite(en.X, en.Y) {
			return fmt.Errorf("enemy %d has non-finite position", en.ID)
		}
		if en.Health <= 0 || en.Health > en.MaxHealth {
			return fmt.Errorf("enemy %d health %d outside (0, %d]", en.ID, en.Health, en.MaxHealth)
		}
	}
	for _, pu := range w.PowerUps {
		if !finite(pu.X, pu.Y) {
			return fmt.Errorf("power-up %d has non-finite position", pu.ID)
		}
	}
	return nil
}

func (e *Engine) publish(now time.Time) {
	e.snapshot.Store(newSnapshot(e.tick, now, e.world, e.status, e.config))
}

func (e *Engine) stepFire(tc *tickContext) {
	if !tc.input.fire {
		return
	}
	if n := e.fire.Fire(tc.world, tc.now); n > 0 {
		p := tc.world.Player
		tc.events = append(tc.events, Event{Kind: EventShot, X: p.X, Y: p.Y, Count: n})
	}
}

func (e *Engine) stepMovement(tc *tickContext) {
	e.movement.Update(tc.world, tc.input.intents, tc.input.target)
}

func (e *Engine) stepCollision(tc *tickContext) {
	res := e.combat.Resolve(tc.world, tc.now)

	for _, en := range res.Hits {
		tc.events = append(tc.events, Event{Kind: EventEnemyHit, ID: en.ID, X: en.X, Y: en.Y, Count: en.Health})
	}
	for _, en := range res.Kills {
		tc.events = append(tc.events, Event{Kind: EventEnemyDestroyed, ID: en.ID, X: en.X, Y: en.Y, Count: e.combat.KillScore(en.Type)})
	}
	for _, pu := range res.PowerUps {
		tc.events = append(tc.events, Event{Kind: EventPowerUp, ID: pu.ID, X: pu.X, Y: pu.Y})
	}
	if res.PlayerHit {
		p := tc.world.Player
		tc.events = append(tc.events, Event{Kind: EventPlayerHit, X: p.X, Y: p.Y, Count: tc.world.Lives})
	}
	if res.GameOver {
		tc.status = state.StateGameOver
		tc.events = append(tc.events, Event{Kind: EventGameOver, Count: tc.world.Score})
	}
}

func (e *Engine) stepSpawn(tc *tickContext) {
	e.spawner.Update(tc.world, tc.now)
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
