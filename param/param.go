// Package param implements typed parameter definitions and the registry
// that owns them.
//
// Every configurable piece of a guide — the rig options on the model root
// and the per-component settings — is declared as a parameter. Declaration
// order matters: it drives deterministic attribute layout on scene nodes
// and property-sheet ordering, so the registry preserves it.
package param

// Kind is the value type of a parameter.
type Kind string

const (
	KindString Kind = "string"
	KindBool   Kind = "bool"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindEnum   Kind = "enum"
	KindCurve  Kind = "curve"
	KindColor  Kind = "color"
)

// Flags control how the materialized attribute behaves in the host.
type Flags struct {
	Keyable  bool
	Readable bool
	Storable bool
	Writable bool
}

// DefaultFlags returns the flag set applied when no option overrides them.
func DefaultFlags() Flags {
	return Flags{Readable: true, Storable: true, Writable: true}
}

// Def is one parameter definition. Created once through Registry.Add and
// mutated only via Registry.Set; it lives exactly as long as its registry.
type Def struct {
	ScriptName string
	Kind       Kind
	Value      any
	NiceName   string
	ShortName  string
	Min        *float64
	Max        *float64
	Enum       []string  // enum kind: ordered labels
	Keys       []float64 // curve kind: default key values
	Interp     int       // curve kind: interpolation mode
	Flags      Flags
}

// Option customizes a Def at registration time.
type Option func(*Def)

// WithRange sets the minimum and maximum accepted value.
func WithRange(min, max float64) Option {
	return func(d *Def) {
		d.Min = &min
		d.Max = &max
	}
}

// WithNiceName sets the human-facing label.
func WithNiceName(name string) Option {
	return func(d *Def) { d.NiceName = name }
}

// WithShortName sets the abbreviated attribute name.
func WithShortName(name string) Option {
	return func(d *Def) { d.ShortName = name }
}

// WithKeyable marks the materialized attribute keyable.
func WithKeyable() Option {
	return func(d *Def) { d.Flags.Keyable = true }
}

// WithFlags replaces the whole flag set.
func WithFlags(f Flags) Option {
	return func(d *Def) { d.Flags = f }
}
