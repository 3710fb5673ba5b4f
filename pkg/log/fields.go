package log

const (
	FieldKeyTask    = "task"
	FieldKeyBase    = "base"
	FieldKeyPath    = "path"
	FieldKeyEntries = "entries"
	FieldKeyMode    = "mode"
)

// Fields type, used to pass to `WithFields`.
type Fields map[string]any
