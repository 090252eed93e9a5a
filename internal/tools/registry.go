// ABOUTME: Registry of tool packs with global tool-name collision detection.
// ABOUTME: Built once at startup; read-only afterwards.

package tools

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// ErrToolCollision indicates a tool name is already registered by another pack.
var ErrToolCollision = errors.New("tool name collision")

// ErrPackAlreadyRegistered indicates a pack with the same ID was registered twice.
var ErrPackAlreadyRegistered = errors.New("pack already registered")

// entry tracks a registered tool together with its owning pack ID.
type entry struct {
	Tool   Tool
	PackID string
}

// Registry maps tool names to their handlers across all registered packs.
// Tool names are globally unique: registering a duplicate name fails.
type Registry struct {
	mu     sync.RWMutex
	packs  map[string]*Pack
	tools  map[string]*entry
	logger *slog.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		packs:  make(map[string]*Pack),
		tools:  make(map[string]*entry),
		logger: logger,
	}
}

// RegisterPack validates and stores a pack and its tools.
// Returns ErrPackAlreadyRegistered for duplicate pack IDs and
// ErrToolCollision naming both packs when a tool name is taken.
func (r *Registry) RegisterPack(pack *Pack) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.packs[pack.ID]; exists {
		return fmt.Errorf("%w: %s", ErrPackAlreadyRegistered, pack.ID)
	}

	// Check every name before mutating anything so a failed registration
	// leaves the registry untouched.
	for _, tool := range pack.Tools {
		if existing, exists := r.tools[tool.Definition.Name]; exists {
			return fmt.Errorf("%w: tool '%s' from pack '%s' already registered by pack '%s'",
				ErrToolCollision, tool.Definition.Name, pack.ID, existing.PackID)
		}
	}

	for _, tool := range pack.Tools {
		r.tools[tool.Definition.Name] = &entry{Tool: tool, PackID: pack.ID}
	}
	r.packs[pack.ID] = pack

	r.logger.Info("pack registered",
		"pack_id", pack.ID,
		"tool_count", len(pack.Tools),
		"total_tools", len(r.tools),
	)

	return nil
}

// Get returns the tool registered under name, or false if unknown.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.tools[name]
	if !ok {
		return Tool{}, false
	}
	return e.Tool, true
}

// All returns every registered definition sorted by tool name,
// suitable for a tools/list response.
func (r *Registry) All() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]Definition, 0, len(r.tools))
	for _, e := range r.tools {
		defs = append(defs, e.Tool.Definition)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
