package engine

import (
	"io"
	"log"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/acestriker/internal/application/state"
	"github.com/younwookim/acestriker/internal/domain/entity"
	"github.com/younwookim/acestriker/internal/infrastructure/clock"
	"github.com/younwookim/acestriker/internal/infrastructure/config"
)

const frame = 16 * time.Millisecond

var testStart = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func createTestEngine(t *testing.T) (*Engine, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock(testStart)
	e := New(config.Default(),
		WithClock(clk),
		WithSeed(42),
		WithLogger(log.New(io.Discard, "", 0)),
	)
	require.NoError(t, e.Start())
	return e, clk
}

func tick(t *testing.T, e *Engine, clk *clock.Mock) TickResult {
	t.Helper()
	clk.Advance(frame)
	res, err := e.Tick()
	require.NoError(t, err)
	return res
}

func countEvents(res TickResult, kind EventKind) int {
	n := 0
	for _, ev := range res.Events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestNew_InitialSnapshot(t *testing.T) {
	e, _ := createTestEngine(t)

	snap := e.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, PlayerView{X: 180, Y: 540, Size: 40}, snap.Player)
	assert.Equal(t, 3, snap.Lives)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 1, snap.Level)
	assert.Equal(t, state.StatePlaying, snap.Status)
	assert.Empty(t, snap.Bullets)
	assert.Empty(t, snap.Enemies)
	assert.False(t, snap.TripleShot)
	assert.Equal(t, int64(42), e.Seed())
}

func TestEngine_TickBeforeStart(t *testing.T) {
	e := New(config.Default(), WithLogger(log.New(io.Discard, "", 0)))

	_, err := e.Tick()
	require.ErrorIs(t, err, ErrNotStarted)
	assert.True(t, IsFatal(err))
}

func TestEngine_FirstTickSpawns(t *testing.T) {
	e, clk := createTestEngine(t)

	tick(t, e, clk)

	snap := e.Snapshot()
	require.Len(t, snap.Enemies, 1)
	assert.Equal(t, -30.0, snap.Enemies[0].Y)
	assert.Equal(t, uint64(1), snap.Tick)
	assert.Equal(t, testStart.Add(frame), snap.Now)
}

func TestEngine_KeyboardMovement(t *testing.T) {
	e, clk := createTestEngine(t)

	e.KeyDown("ArrowLeft")
	tick(t, e, clk)
	assert.Equal(t, 175.0, e.Snapshot().Player.X)

	// Held keys keep moving
	tick(t, e, clk)
	assert.Equal(t, 170.0, e.Snapshot().Player.X)

	e.KeyUp("ArrowLeft")
	e.KeyDown("KeyW")
	tick(t, e, clk)
	assert.Equal(t, 170.0, e.Snapshot().Player.X)
	assert.Equal(t, 535.0, e.Snapshot().Player.Y)

	e.KeyUp("KeyW")
	e.KeyDown("KeyQ")
	tick(t, e, clk)
	assert.Equal(t, 535.0, e.Snapshot().Player.Y, "unknown keys are ignored")
}

func TestEngine_PointerMovement(t *testing.T) {
	e, clk := createTestEngine(t)

	e.SetAbsolutePlayerTarget(100, 300)
	tick(t, e, clk)
	assert.Equal(t, PlayerView{X: 80, Y: 280, Size: 40}, e.Snapshot().Player)

	// Malformed coordinates never reach state
	e.SetAbsolutePlayerTarget(math.NaN(), 10)
	tick(t, e, clk)
	assert.Equal(t, 80.0, e.Snapshot().Player.X)

	e.SetAbsolutePlayerTarget(-1e9, 1e9)
	tick(t, e, clk)
	assert.Equal(t, 0.0, e.Snapshot().Player.X)
	assert.Equal(t, 560.0, e.Snapshot().Player.Y)

	// A movement key hands control back to the intents
	e.KeyDown("KeyD")
	tick(t, e, clk)
	assert.Equal(t, 5.0, e.Snapshot().Player.X)

	e.KeyUp("KeyD")
	e.SetAbsolutePlayerTarget(200, 200)
	e.ClearAbsolutePlayerTarget()
	tick(t, e, clk)
	assert.Equal(t, 5.0, e.Snapshot().Player.X)
}

func TestEngine_FireIsLatchedAndRateLimited(t *testing.T) {
	e, clk := createTestEngine(t)

	for i := 0; i < 10; i++ {
		e.Fire()
	}
	res := tick(t, e, clk)
	require.Equal(t, 1, countEvents(res, EventShot))
	require.Len(t, e.Snapshot().Bullets, 1)
	assert.Equal(t, 195.0, e.Snapshot().Bullets[0].X)
	assert.Equal(t, 533.0, e.Snapshot().Bullets[0].Y)

	// Latch is consumed by the tick
	res = tick(t, e, clk)
	assert.Zero(t, countEvents(res, EventShot))

	// One shot per fire window regardless of call frequency
	shots := 0
	clk.Advance(time.Second)
	for i := 0; i < 63; i++ {
		e.KeyDown("Space")
		e.KeyUp("Space")
		shots += countEvents(tick(t, e, clk), EventShot)
	}
	assert.Equal(t, 5, shots)
}

func TestEngine_KillScoresAndLevels(t *testing.T) {
	e, clk := createTestEngine(t)

	e.mu.Lock()
	e.world.Enemies = append(e.world.Enemies,
		entity.NewEnemy(e.world.IDs.Next(), 185, 505, entity.EnemyRegular, 30, 1, 1))
	e.world.Score = 490
	e.mu.Unlock()

	e.Fire()
	res := tick(t, e, clk)

	require.Equal(t, 1, countEvents(res, EventEnemyDestroyed))
	snap := e.Snapshot()
	assert.Equal(t, 500, snap.Score)
	assert.Equal(t, 2, snap.Level)
	assert.Empty(t, snap.Bullets)
}

func TestEngine_GameOverAndReset(t *testing.T) {
	e, clk := createTestEngine(t)

	e.mu.Lock()
	e.world.Lives = 1
	p := e.world.Player
	e.world.Enemies = append(e.world.Enemies,
		entity.NewEnemy(e.world.IDs.Next(), p.X, p.Y-3, entity.EnemyRegular, 30, 1, 1),
		entity.NewEnemy(e.world.IDs.Next(), p.X+10, p.Y-3, entity.EnemyRegular, 30, 1, 1))
	e.world.TripleShot.Arm(clk.Now(), 10*time.Second)
	e.mu.Unlock()

	res := tick(t, e, clk)
	assert.Equal(t, state.StateGameOver, res.Status)
	assert.Equal(t, 1, countEvents(res, EventPlayerHit))
	assert.Equal(t, 1, countEvents(res, EventGameOver))

	frozen := e.Snapshot()
	assert.Equal(t, state.StateGameOver, frozen.Status)
	assert.Equal(t, 0, frozen.Lives)
	assert.Empty(t, frozen.Enemies, "no spawn after the game ends")
	assert.True(t, frozen.TripleShot)

	// Nothing advances until reset
	e.KeyDown("ArrowLeft")
	e.Fire()
	for i := 0; i < 120; i++ {
		res = tick(t, e, clk)
		assert.Empty(t, res.Events)
	}
	snap := e.Snapshot()
	assert.Equal(t, frozen.Player, snap.Player)
	assert.Equal(t, frozen.Score, snap.Score)
	assert.Equal(t, frozen.Lives, snap.Lives)
	assert.Empty(t, snap.Bullets)
	assert.Empty(t, snap.Enemies)
	assert.Equal(t, res.Tick, snap.Tick)

	// The triple-shot deadline still expires on the game-over screen
	clk.Advance(10 * time.Second)
	tick(t, e, clk)
	snap = e.Snapshot()
	assert.False(t, snap.TripleShot)
	assert.Zero(t, snap.TripleShotRemaining)
	assert.Equal(t, state.StateGameOver, snap.Status)

	require.NoError(t, e.Reset())
	snap = e.Snapshot()
	assert.Equal(t, state.StatePlaying, snap.Status)
	assert.Equal(t, 3, snap.Lives)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, PlayerView{X: 180, Y: 540, Size: 40}, snap.Player)
	assert.False(t, snap.TripleShot)
	assert.Empty(t, snap.Enemies)

	// Fresh session spawns at once and input from before the reset is gone
	res = tick(t, e, clk)
	assert.Zero(t, countEvents(res, EventShot))
	assert.Len(t, e.Snapshot().Enemies, 1)
	assert.Equal(t, 180.0, e.Snapshot().Player.X)
}

func TestEngine_ResetWhilePlaying(t *testing.T) {
	e, clk := createTestEngine(t)

	e.KeyDown("ArrowRight")
	for i := 0; i < 10; i++ {
		e.Fire()
		tick(t, e, clk)
	}
	require.NotEmpty(t, e.Snapshot().Bullets)

	require.NoError(t, e.Reset())
	snap := e.Snapshot()
	assert.Empty(t, snap.Bullets)
	assert.Empty(t, snap.Enemies)
	assert.Equal(t, 180.0, snap.Player.X)
}

func TestEngine_TripleShotDuration(t *testing.T) {
	e, clk := createTestEngine(t)

	e.mu.Lock()
	p := e.world.Player
	e.world.PowerUps = append(e.world.PowerUps,
		entity.NewPowerUp(e.world.IDs.Next(), p.X, p.Y-2, entity.PowerUpTripleShot, 25))
	e.mu.Unlock()

	res := tick(t, e, clk)
	require.Equal(t, 1, countEvents(res, EventPowerUp))
	snap := e.Snapshot()
	assert.True(t, snap.TripleShot)
	assert.Equal(t, 10*time.Second, snap.TripleShotRemaining)

	e.Fire()
	res = tick(t, e, clk)
	require.Equal(t, 1, countEvents(res, EventShot))
	assert.Equal(t, 3, res.Events[0].Count)

	// Wall-clock based: expires 10s after pickup however few frames ran
	clk.Advance(10 * time.Second)
	tick(t, e, clk)
	assert.False(t, e.Snapshot().TripleShot)
}

func TestEngine_StepPanicSkipsTick(t *testing.T) {
	e, clk := createTestEngine(t)
	tick(t, e, clk)
	before := e.Snapshot()

	panicked := false
	e.steps = append(e.steps, step{"boom", func(tc *tickContext) {
		tc.world.Score = 9999
		if !panicked {
			panicked = true
			panic("boom")
		}
	}})

	clk.Advance(frame)
	_, err := e.Tick()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTickSkipped)
	assert.False(t, IsFatal(err))

	var te *TickError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "boom", te.Step)

	assert.Same(t, before, e.Snapshot(), "failed tick must not publish")
	e.mu.Lock()
	assert.Equal(t, 0, e.world.Score, "working copy is discarded")
	e.mu.Unlock()

	// Next tick runs normally
	tick(t, e, clk)
	assert.Equal(t, 9999, e.Snapshot().Score)
}

func TestEngine_CorruptCommitHalts(t *testing.T) {
	e, clk := createTestEngine(t)
	tick(t, e, clk)
	before := e.Snapshot()

	e.steps = append(e.steps, step{"corrupt", func(tc *tickContext) {
		tc.world.Player.X = math.NaN()
	}})

	clk.Advance(frame)
	_, err := e.Tick()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSnapshotCorrupt)
	assert.True(t, IsFatal(err))
	assert.Same(t, before, e.Snapshot())

	_, err = e.Tick()
	assert.ErrorIs(t, err, ErrHalted)
	assert.True(t, IsFatal(err))

	assert.ErrorIs(t, e.Reset(), ErrHalted)
}

func TestEngine_Stop(t *testing.T) {
	e, clk := createTestEngine(t)
	e.mu.Lock()
	e.world.TripleShot.Arm(clk.Now(), time.Minute)
	e.mu.Unlock()

	e.Stop()
	e.Stop()

	_, err := e.Tick()
	assert.ErrorIs(t, err, ErrStopped)
	assert.ErrorIs(t, e.Start(), ErrStopped)
	assert.ErrorIs(t, e.Reset(), ErrStopped)

	e.mu.Lock()
	defer e.mu.Unlock()
	assert.False(t, e.world.TripleShot.Active(clk.Now()))
}

func TestEngine_Deterministic(t *testing.T) {
	run := func() *Snapshot {
		e, clk := createTestEngine(t)
		for i := 0; i < 600; i++ {
			switch i % 90 {
			case 0:
				e.KeyDown("ArrowLeft")
			case 45:
				e.KeyUp("ArrowLeft")
				e.SetAbsolutePlayerTarget(float64(i%400), 500)
			}
			e.Fire()
			clk.Advance(frame)
			_, err := e.Tick()
			require.NoError(t, err)
		}
		return e.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestEngine_ConcurrentInputAndSnapshots(t *testing.T) {
	e, clk := createTestEngine(t)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			e.KeyDown("ArrowRight")
			e.Fire()
			e.KeyUp("ArrowRight")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			snap := e.Snapshot()
			assert.LessOrEqual(t, snap.Player.X, 360.0)
		}
	}()

	for i := 0; i < 200; i++ {
		clk.Advance(frame)
		_, err := e.Tick()
		require.NoError(t, err)
	}
	wg.Wait()
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "Shot", EventShot.String())
	assert.Equal(t, "GameOver", EventGameOver.String())
	assert.Equal(t, "Unknown", EventKind(42).String())
}

func BenchmarkEngine_Tick(b *testing.B) {
	clk := clock.NewMock(testStart)
	e := New(config.Default(), WithClock(clk), WithSeed(1), WithLogger(log.New(io.Discard, "", 0)))
	if err := e.Start(); err != nil {
		b.Fatal(err)
	}
	e.KeyDown("ArrowLeft")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Fire()
		clk.Advance(frame)
		if _, err := e.Tick(); err != nil {
			if IsFatal(err) {
				b.Fatal(err)
			}
		}
		if e.Snapshot().Status == state.StateGameOver {
			_ = e.Reset()
		}
	}
}
