// Package registry maps scene ids to factories. Scenes register themselves in
// init() functions, so the platform and the menu can discover and build them
// without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tama/internal/host"
	"github.com/vovakirdan/tama/internal/scene"
)

// Kind groups registered scenes.
type Kind uint8

const (
	// KindGame scenes are listed in the menu.
	KindGame Kind = iota
	// KindSystem scenes (self test, menu, overlays) are reachable by id only.
	KindSystem
)

func (k Kind) String() string {
	if k == KindGame {
		return "game"
	}
	return "system"
}

// Info contains metadata about a registered scene.
type Info struct {
	ID    string
	Title string
	Kind  Kind

	// Overlay scenes only make sense on top of another scene and always pop
	// themselves, so they cannot start a session.
	Overlay bool
}

// Factory creates a fresh scene. The Env carries everything the scene may
// depend on.
type Factory func(env *host.Env) scene.Scene

// Registry is a set of scene factories. Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	infos     map[string]Info
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		infos:     make(map[string]Info),
	}
}

// Register adds a factory.
// Panics if the id is empty, the factory is nil or the id is taken.
func (r *Registry) Register(id string, info Info, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == "" || f == nil {
		panic("registry: Register needs an id and a factory")
	}
	if _, exists := r.factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	info.ID = id
	if info.Title == "" {
		info.Title = id
	}
	r.factories[id] = f
	r.infos[id] = info
}

// List returns information about all registered scenes, sorted by ID.
func (r *Registry) List() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Info, 0, len(r.infos))
	for _, info := range r.infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Games returns the KindGame entries, sorted by ID.
func (r *Registry) Games() []Info {
	var games []Info
	for _, info := range r.List() {
		if info.Kind == KindGame {
			games = append(games, info)
		}
	}
	return games
}

// Create builds a new scene by its ID.
// Returns an error if the ID is not registered.
func (r *Registry) Create(id string, env *host.Env) (scene.Scene, error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}
	s := f(env)
	if s == nil {
		return nil, fmt.Errorf("registry: factory for %q returned nil", id)
	}
	return s, nil
}

// Lookup returns the metadata of a registered scene.
func (r *Registry) Lookup(id string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.infos[id]
	return info, ok
}

// Exists checks if a scene with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	_, ok := r.Lookup(id)
	return ok
}

var defaultRegistry = New()

// Default returns the process-wide registry filled by init() functions.
func Default() *Registry { return defaultRegistry }

// Register adds a factory to the default registry.
func Register(id string, info Info, f Factory) { defaultRegistry.Register(id, info, f) }

// List returns all scenes of the default registry.
func List() []Info { return defaultRegistry.List() }

// Games returns the game scenes of the default registry.
func Games() []Info { return defaultRegistry.Games() }

// Create builds a scene from the default registry.
func Create(id string, env *host.Env) (scene.Scene, error) {
	return defaultRegistry.Create(id, env)
}

// Lookup returns metadata from the default registry.
func Lookup(id string) (Info, bool) { return defaultRegistry.Lookup(id) }

// Exists checks the default registry.
func Exists(id string) bool { return defaultRegistry.Exists(id) }
