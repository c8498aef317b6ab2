package logger

// Standard field names for consistent structured logging across rigforge.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Guide structure
	FieldGuide     = "guide"
	FieldComponent = "component"
	FieldCompType  = "comp_type"
	FieldParent    = "parent"
	FieldLocalName = "local_name"
	FieldNode      = "node"
	FieldModel     = "model"

	// Parameters
	FieldParam = "param"
	FieldValue = "value"

	// Operations
	FieldOperation = "operation"
	FieldStep      = "step"
	FieldTemplate  = "template"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts
	FieldCount = "count"

	// Files and paths
	FieldFile = "file"
	FieldPath = "path"
)
