package flappy

import (
	"math/rand/v2"

	"github.com/vovakirdan/tama/internal/config"
	"github.com/vovakirdan/tama/internal/core"
)

// Pipe is a vertical obstacle with a gap the bird must fly through.
type Pipe struct {
	X         int  // Left edge
	CenterY   int  // Vertical centre of the gap
	GapHeight int  // Height of the passable gap
	Passed    bool // Whether the bird has passed this pipe (for scoring)
}

// GapTop returns the first row of the gap.
func (p Pipe) GapTop() int {
	return p.CenterY - p.GapHeight/2
}

// GapBottom returns the row one past the gap.
func (p Pipe) GapBottom() int {
	return p.CenterY + p.GapHeight/2
}

// TopRect returns the collision rectangle for the top portion of the pipe.
func (p Pipe) TopRect(pipeWidth int) core.Rect {
	return core.NewRect(p.X, 0, pipeWidth, p.GapTop())
}

// BottomRect returns the collision rectangle for the bottom portion of the pipe.
func (p Pipe) BottomRect(pipeWidth, screenH int) core.Rect {
	return core.NewRect(p.X, p.GapBottom(), pipeWidth, screenH-p.GapBottom())
}

// PipeManager handles spawning, movement, and removal of pipes.
type PipeManager struct {
	pipes      []Pipe
	rng        *rand.Rand
	screenW    int
	screenH    int
	scroll     float64 // Sub-pixel scroll carried to the next tick
	cfg        config.FlappyObstacles
	baseSpeed  float64
	difficulty *config.DifficultyManager
}

// NewPipeManager creates a pipe manager drawing gaps from rng.
func NewPipeManager(rng *rand.Rand, screenW, screenH int, cfg config.FlappyConfig, diff *config.DifficultyManager) *PipeManager {
	return &PipeManager{
		pipes:      make([]Pipe, 0, cfg.Obstacles.MaxPipes),
		rng:        rng,
		screenW:    screenW,
		screenH:    screenH,
		cfg:        cfg.Obstacles,
		baseSpeed:  cfg.Physics.ScrollSpeed,
		difficulty: diff,
	}
}

// Reset clears all pipes. The random source keeps its position, so a
// restarted round gets new pipes while staying reproducible.
func (pm *PipeManager) Reset() {
	pm.pipes = pm.pipes[:0]
	pm.scroll = 0
}

// Update spawns, moves and removes pipes.
// Returns the number of pipes whose right edge went past playerX this tick.
func (pm *PipeManager) Update(playerX, score, ticks int) int {
	// Spawn a new pipe once the last one is far enough in
	spacing := pm.difficulty.Spacing(pm.cfg.PipeSpacing, score, ticks)
	if len(pm.pipes) == 0 || pm.pipes[len(pm.pipes)-1].X < pm.screenW-spacing {
		if len(pm.pipes) < pm.cfg.MaxPipes {
			pm.spawnPipe(score, ticks)
		}
	}

	// Move pipes left by the whole pixels accumulated this tick
	pm.scroll += pm.difficulty.Speed(pm.baseSpeed, score, ticks)
	step := int(pm.scroll)
	pm.scroll -= float64(step)
	for i := range pm.pipes {
		pm.pipes[i].X -= step
	}

	passed := 0
	for i := range pm.pipes {
		if !pm.pipes[i].Passed && pm.pipes[i].X+pm.cfg.PipeWidth < playerX {
			pm.pipes[i].Passed = true
			passed++
		}
	}

	// Remove pipes that have moved off the left side
	validPipes := pm.pipes[:0]
	for _, p := range pm.pipes {
		if p.X+pm.cfg.PipeWidth > 0 {
			validPipes = append(validPipes, p)
		}
	}
	pm.pipes = validPipes

	return passed
}

// spawnPipe creates a new pipe at the right edge of the screen.
func (pm *PipeManager) spawnPipe(score, ticks int) {
	// Upper bound of the gap shrinks with difficulty, never below the minimum
	minGap := pm.cfg.MinGapSize
	maxGap := max(pm.difficulty.GapSize(pm.cfg.MaxGapSize, score, ticks), minGap)
	gapHeight := minGap + pm.rng.IntN(maxGap-minGap+1)

	center := pm.screenH / 2
	if r := pm.cfg.GapCenterRange; r > 0 {
		center += pm.rng.IntN(2*r+1) - r
	}
	center = core.Clamp(center, gapHeight/2, pm.screenH-gapHeight/2)

	pm.pipes = append(pm.pipes, Pipe{
		X:         pm.screenW,
		CenterY:   center,
		GapHeight: gapHeight,
	})
}

// Pipes returns the current list of pipes.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// CheckCollision tests if the given rectangle collides with any pipe.
func (pm *PipeManager) CheckCollision(playerRect core.Rect) bool {
	for _, p := range pm.pipes {
		if playerRect.Intersects(p.TopRect(pm.cfg.PipeWidth)) ||
			playerRect.Intersects(p.BottomRect(pm.cfg.PipeWidth, pm.screenH)) {
			return true
		}
	}
	return false
}
