// Package scene defines the scene contract and the stack-based manager that
// decides which scene is active. The manager is single-threaded: it is owned
// by one loop and never blocks.
package scene

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tama/internal/core"
	"github.com/vovakirdan/tama/internal/input"
)

// Scene is one screen or game mode.
//
// Update advances the scene by one tick and reports the stack change it
// wants. It must depend only on the scene's state, the snapshot and dt;
// randomness comes from a seeded source owned by the scene.
// Render draws the current state and must not change it.
type Scene interface {
	Update(in input.Snapshot, dt time.Duration) Transition
	Render(dst core.Surface)
	Name() string
}

// Optional lifecycle hooks. The manager calls them when a scene implements
// them.
type (
	// Enterer is called after the scene becomes the top of the stack through
	// construction, Push or Replace.
	Enterer interface{ Enter() }
	// Exiter is called before the scene is removed by Pop, Replace or Close.
	Exiter interface{ Exit() }
	// Suspender is called when another scene is pushed on top.
	Suspender interface{ Suspend() }
	// Resumer is called when the scene above was popped. from is the popped
	// scene so a parent can read a child's result.
	Resumer interface{ Resume(from Scene) }
)

// Kind is the type of a stack transition.
type Kind uint8

const (
	None Kind = iota
	Replace
	Push
	Pop
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Replace:
		return "replace"
	case Push:
		return "push"
	case Pop:
		return "pop"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Transition is the stack change requested by Update.
type Transition struct {
	Kind Kind
	Next Scene // Set for Replace and Push
}

// Stay keeps the stack as it is.
func Stay() Transition {
	return Transition{Kind: None}
}

// ReplaceWith swaps the top scene for next. Depth is unchanged.
func ReplaceWith(next Scene) Transition {
	return Transition{Kind: Replace, Next: next}
}

// PushScene suspends the top scene and activates next above it.
func PushScene(next Scene) Transition {
	return Transition{Kind: Push, Next: next}
}

// PopScene removes the top scene and resumes the one below.
func PopScene() Transition {
	return Transition{Kind: Pop}
}

// String formats the transition for logs.
func (t Transition) String() string {
	if t.Next != nil {
		return t.Kind.String() + "(" + t.Next.Name() + ")"
	}
	return t.Kind.String()
}
