package component

import (
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/version"
)

// Factory describes one registered component variant.
type Factory struct {
	// Type is the comp_type tag, e.g. "chain_01".
	Type string
	// Version is the variant's own semver.
	Version string
	// CoreConstraint is an optional semver constraint on the core
	// version, e.g. ">=0.1.0". Empty means no constraint.
	CoreConstraint string
	// New creates a fresh, unpopulated guide instance.
	New func() Guide
}

// Registry resolves comp_type tags to variant factories. Registration
// happens at process start (builtin init functions plus host-discovered
// plugins); resolution happens on every discovery pass.
type Registry struct {
	mu          sync.RWMutex
	factories   map[string]Factory
	coreVersion string
}

// NewRegistry creates a registry validating factories against the given
// core version.
func NewRegistry(coreVersion string) *Registry {
	return &Registry{
		factories:   make(map[string]Factory),
		coreVersion: coreVersion,
	}
}

// Register adds a variant factory. Duplicate types and incompatible core
// constraints are rejected.
func (r *Registry) Register(f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f.New == nil {
		return errors.Newf("component factory %s has no constructor", f.Type)
	}
	if _, exists := r.factories[f.Type]; exists {
		return errors.Newf("component type already registered: %s", f.Type)
	}
	if err := r.validateConstraint(f); err != nil {
		return errors.Wrapf(err, "version incompatible for %s", f.Type)
	}

	r.factories[f.Type] = f
	return nil
}

// Resolve instantiates a fresh guide for the given comp_type.
func (r *Registry) Resolve(compType string) (Guide, error) {
	r.mu.RLock()
	f, ok := r.factories[compType]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NewUnknownComponentType(compType)
	}
	return f.New(), nil
}

// List returns the registered comp_type tags in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Factories returns the registered factories keyed by type.
func (r *Registry) Factories() map[string]Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Factory, len(r.factories))
	for t, f := range r.factories {
		out[t] = f
	}
	return out
}

// Subset returns a registry holding only the named factories, for hosts
// that whitelist the variants a session may use. A name with no factory
// behind it is rejected.
func (r *Registry) Subset(types []string) (*Registry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := &Registry{
		factories:   make(map[string]Factory, len(types)),
		coreVersion: r.coreVersion,
	}
	for _, t := range types {
		f, ok := r.factories[t]
		if !ok {
			return nil, errors.NewUnknownComponentType(t)
		}
		out.factories[t] = f
	}
	return out, nil
}

func (r *Registry) validateConstraint(f Factory) error {
	if f.CoreConstraint == "" {
		return nil
	}
	core, err := semver.NewVersion(r.coreVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid core version %s", r.coreVersion)
	}
	constraint, err := semver.NewConstraint(f.CoreConstraint)
	if err != nil {
		return errors.Wrapf(err, "invalid constraint %s", f.CoreConstraint)
	}
	if !constraint.Check(core) {
		return errors.Newf("variant requires core %s, but running %s", f.CoreConstraint, r.coreVersion)
	}
	return nil
}

// Global registry, populated by builtin variants' init functions.
var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(version.Version)
	})
	return defaultRegistry
}

// Register adds a factory to the default registry.
func Register(f Factory) error {
	return Default().Register(f)
}

// MustRegister is Register for init functions, where a conflict is
// programmer error.
func MustRegister(f Factory) {
	if err := Register(f); err != nil {
		panic(err)
	}
}

// Resolve instantiates a guide from the default registry.
func Resolve(compType string) (Guide, error) {
	return Default().Resolve(compType)
}

// List returns the default registry's comp_type tags.
func List() []string {
	return Default().List()
}
