package types

// DiagnosticKind classifies a recoverable load problem.
type DiagnosticKind string

const (
	// DiagCorruptRow records a single row that failed decoding and was
	// skipped.
	DiagCorruptRow DiagnosticKind = "corrupt-row"

	// DiagInvalidTimestamp records an asset whose date degraded to
	// DefaultTimestamp.
	DiagInvalidTimestamp DiagnosticKind = "invalid-timestamp"

	// DiagAmbiguousJoinPath records a share whose membership strategies all
	// returned empty while share rows exist.
	DiagAmbiguousJoinPath DiagnosticKind = "ambiguous-join-path"

	// DiagReferentialInconsistency records a cross-reference to an entity
	// that was never loaded. The referencing entity is kept and the relation
	// marked unresolved.
	DiagReferentialInconsistency DiagnosticKind = "referential-inconsistency"

	// DiagFolderCycle records an album whose parent chain contained a cycle.
	DiagFolderCycle DiagnosticKind = "folder-cycle"
)

// Diagnostic is one recoverable problem recorded during the load pass.
// Diagnostics never abort construction; fatal conditions are surfaced as
// errors from Open instead.
type Diagnostic struct {
	Kind   DiagnosticKind
	Entity string // UUID or pk of the affected record
	Detail string
}
