// Package registry provides a global registry for level packs.
// Packs register themselves in init() functions, allowing the platform
// to discover and load levels without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/levels"
)

// Pack is an ordered collection of levels.
type Pack interface {
	// ID returns a unique identifier for this pack (e.g., "classic").
	// Used for CLI flags and record storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Levels loads the pack's levels in play order.
	// Levels that loaded are returned even when some files failed.
	Levels() ([]levels.Level, error)
}

// PackInfo contains metadata about a registered pack.
type PackInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a pack.
type Factory func() Pack

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a pack factory to the registry.
// Typically called from a pack's init() function.
// Panics if a pack with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered packs, sorted by ID.
func List() []PackInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PackInfo, 0, len(factories))
	for id := range factories {
		result = append(result, PackInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a pack by its ID.
// Returns an error if the pack ID is not registered.
func Create(id string) (Pack, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}

	return f(), nil
}

// Exists checks if a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// LoaderPack serves a pack from a level loader.
type LoaderPack struct {
	id     string
	title  string
	loader *levels.Loader
}

// NewLoaderPack wraps loader as a pack.
func NewLoaderPack(id, title string, loader *levels.Loader) *LoaderPack {
	return &LoaderPack{id: id, title: title, loader: loader}
}

func (p *LoaderPack) ID() string    { return p.id }
func (p *LoaderPack) Title() string { return p.title }

func (p *LoaderPack) Levels() ([]levels.Level, error) {
	return p.loader.LoadAll()
}
