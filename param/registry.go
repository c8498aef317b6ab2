package param

import (
	"github.com/rigforge/rigforge/errors"
	"github.com/rigforge/rigforge/logger"
	"github.com/rigforge/rigforge/scene"
)

// Registry owns an ordered set of parameter definitions and their current
// values.
//
// Invariants: the name list and the definition map always hold the same
// key set, and the value map mirrors each definition's Value after any
// set. The valid flag is a one-way latch for the lifetime of a
// reconciliation pass: once a lookup against a live hierarchy fails it
// stays false until ResetValidity starts a new pass.
type Registry struct {
	names  []string
	defs   map[string]*Def
	values map[string]any

	valid bool
	diags []Diagnostic

	// owner labels diagnostics with the component fullName; empty for the
	// rig-level option registry.
	owner string
}

// NewRegistry creates an empty, valid registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:   make(map[string]*Def),
		values: make(map[string]any),
		valid:  true,
	}
}

// SetOwner labels future diagnostics with the owning component's fullName.
func (r *Registry) SetOwner(fullName string) { r.owner = fullName }

// Add registers a parameter definition. Re-registering a name is a logic
// error and is rejected.
func (r *Registry) Add(name string, kind Kind, value any, opts ...Option) (*Def, error) {
	if _, exists := r.defs[name]; exists {
		return nil, errors.Wrap(errors.ErrDuplicateParam, name)
	}
	def := &Def{
		ScriptName: name,
		Kind:       kind,
		Value:      value,
		Flags:      DefaultFlags(),
	}
	for _, opt := range opts {
		opt(def)
	}
	r.defs[name] = def
	r.values[name] = def.Value
	r.names = append(r.names, name)
	return def, nil
}

// MustAdd is Add for declaration blocks where a duplicate is programmer
// error.
func (r *Registry) MustAdd(name string, kind Kind, value any, opts ...Option) *Def {
	def, err := r.Add(name, kind, value, opts...)
	if err != nil {
		panic(err)
	}
	return def
}

// AddEnum registers an enum parameter with ordered labels and a default
// index.
func (r *Registry) AddEnum(name string, labels []string, index int, opts ...Option) (*Def, error) {
	def, err := r.Add(name, KindEnum, index, opts...)
	if err != nil {
		return nil, err
	}
	def.Enum = labels
	return def, nil
}

// AddColor registers an RGB color parameter.
func (r *Registry) AddColor(name string, rgb [3]float64, opts ...Option) (*Def, error) {
	return r.Add(name, KindColor, rgb, opts...)
}

// AddCurve registers a curve-valued parameter with default keys. Its live
// value is reconstructed by sampling, never read as a scalar.
func (r *Registry) AddCurve(name string, keys []float64, interpolation int) (*Def, error) {
	def, err := r.Add(name, KindCurve, nil)
	if err != nil {
		return nil, err
	}
	def.Keys = keys
	def.Interp = interpolation
	return def, nil
}

// Set updates the value of a registered parameter. Unknown names are a
// recoverable, caller-checked condition: guides feel out attribute sets.
func (r *Registry) Set(name string, value any) error {
	def, ok := r.defs[name]
	if !ok {
		logger.Logger.Warnw("Can't find parameter definition",
			logger.FieldParam, name, logger.FieldComponent, r.owner)
		return errors.Wrap(errors.ErrUnknownParam, name)
	}
	def.Value = value
	r.values[name] = value
	return nil
}

// Get returns the current value of a parameter.
func (r *Registry) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Def returns the definition for name.
func (r *Registry) Def(name string) (*Def, bool) {
	d, ok := r.defs[name]
	return d, ok
}

// Names returns the parameter names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Snapshot returns a copy of the current values.
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, len(r.values))
	for _, name := range r.names {
		out[name] = r.values[name]
	}
	return out
}

// StringValue returns the parameter as a string, or "" when unset or of a
// different type.
func (r *Registry) StringValue(name string) string {
	s, _ := r.values[name].(string)
	return s
}

// BoolValue returns the parameter as a bool.
func (r *Registry) BoolValue(name string) bool {
	b, _ := r.values[name].(bool)
	return b
}

// IntValue returns the parameter as an int. JSON decoding yields float64,
// so both storages are accepted.
func (r *Registry) IntValue(name string) int {
	switch v := r.values[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// FloatValue returns the parameter as a float64.
func (r *Registry) FloatValue(name string) float64 {
	switch v := r.values[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// LoadFromNode reads every registered parameter off the node's attributes.
//
// Missing attributes are partial failures: a diagnostic is recorded, the
// valid latch drops, and the remaining parameters are still processed.
// Curve-valued parameters are reconstructed by sampling their driving
// curve at the given division count. Parameters whose attribute is driven
// by an inbound connection store the source node's name instead of a
// scalar, modelling "this option is driven externally".
//
// Callers whose division count is itself a parameter (a chain's division)
// must run LoadScalarsFromNode first and sample curves separately, so the
// hint reflects the live value rather than the compile-time default.
func (r *Registry) LoadFromNode(node scene.Node, sampler scene.CurveSampler, divisions int) {
	r.LoadScalarsFromNode(node)
	r.LoadCurvesFromNode(node, sampler, divisions)
}

// LoadScalarsFromNode reads every non-curve parameter off the node.
func (r *Registry) LoadScalarsFromNode(node scene.Node) {
	for _, name := range r.names {
		def := r.defs[name]
		if def.Kind == KindCurve {
			continue
		}

		if !node.HasAttr(name) {
			r.Invalidate(Diagnostic{
				Component: r.owner,
				Kind:      DiagStaleGuide,
				Message:   "missing attribute " + name + " on " + node.Name(),
			})
			continue
		}

		if src, ok := node.Connection(name); ok {
			def.Value = nil
			r.values[name] = src.Name()
			continue
		}

		v, _ := node.Attr(name)
		def.Value = v
		r.values[name] = v
	}
}

// LoadCurvesFromNode resamples every curve parameter at the given division
// count.
func (r *Registry) LoadCurvesFromNode(node scene.Node, sampler scene.CurveSampler, divisions int) {
	for _, name := range r.names {
		def := r.defs[name]
		if def.Kind != KindCurve {
			continue
		}

		if !node.HasAttr(name) {
			r.Invalidate(Diagnostic{
				Component: r.owner,
				Kind:      DiagStaleGuide,
				Message:   "missing attribute " + name + " on " + node.Name(),
			})
			continue
		}

		src, ok := node.Connection(name)
		if !ok {
			r.Invalidate(Diagnostic{
				Component: r.owner,
				Kind:      DiagStaleGuide,
				Message:   "curve parameter " + name + " has no driving curve on " + node.Name(),
			})
			continue
		}
		values, err := sampler.Sample(src, divisions)
		if err != nil {
			r.Invalidate(Diagnostic{
				Component: r.owner,
				Kind:      DiagStaleGuide,
				Message:   "sampling " + name + ": " + err.Error(),
			})
			continue
		}
		def.Value = values
		r.values[name] = values
	}
}

// LoadFromMap bulk-sets values from trusted template data. Unknown keys
// are ignored; registered names absent from the map keep their defaults.
func (r *Registry) LoadFromMap(values map[string]any) {
	for _, name := range r.names {
		v, ok := values[name]
		if !ok {
			continue
		}
		r.defs[name].Value = v
		r.values[name] = v
	}
}

// Apply materializes every registered parameter as an attribute on the
// node, in declaration order. Curve parameters get a child curve node
// connected to the attribute so a later LoadFromNode can resample them.
func (r *Registry) Apply(sc scene.Scene, node scene.Node) {
	for _, name := range r.names {
		def := r.defs[name]
		if def.Kind == KindCurve {
			node.SetAttr(name, nil)
			crv := sc.CreateNode(node.Name()+"_"+name+"_crv", node)
			crv.SetAttr(scene.CurveKeysAttr, def.Keys)
			node.Connect(name, crv)
			continue
		}
		node.SetAttr(name, def.Value)
	}
}

// Valid reports the latch state.
func (r *Registry) Valid() bool { return r.valid }

// Invalidate records a diagnostic and drops the valid latch.
func (r *Registry) Invalidate(d Diagnostic) {
	logger.Logger.Warnw(d.Message,
		logger.FieldComponent, d.Component, "kind", string(d.Kind))
	r.valid = false
	r.diags = append(r.diags, d)
}

// ResetValidity starts a fresh reconciliation pass.
func (r *Registry) ResetValidity() {
	r.valid = true
	r.diags = nil
}

// Diagnostics returns the findings accumulated since the last reset.
func (r *Registry) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}
