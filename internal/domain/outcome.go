package domain

// ActionOutcome is the per-target result of one administrative operation.
// Outcomes are ephemeral: produced per invocation, consumed by the log
// stream, never persisted.
type ActionOutcome struct {
	TargetID  string
	Succeeded bool
	Message   string
}
