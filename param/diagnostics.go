package param

// DiagnosticKind categorizes reconciliation diagnostics.
type DiagnosticKind string

const (
	// DiagStaleGuide: a registered parameter or expected child structure is
	// missing from the live scene. Non-fatal; the guide needs an update.
	DiagStaleGuide DiagnosticKind = "stale_guide"

	// DiagUnresolvedParent: the fallback parent search found no match and
	// the component was attached to the model root instead.
	DiagUnresolvedParent DiagnosticKind = "unresolved_parent"

	// DiagUnknownComponentType: a tagged node's type is not registered;
	// its subtree was skipped.
	DiagUnknownComponentType DiagnosticKind = "unknown_component_type"

	// DiagStepFailure: a custom build step failed.
	DiagStepFailure DiagnosticKind = "step_failure"
)

// Diagnostic is one structured reconciliation finding. The valid latch
// answers "is anything wrong"; diagnostics answer "what, exactly".
type Diagnostic struct {
	Component string // component fullName, empty for rig-level findings
	Kind      DiagnosticKind
	Message   string
}
