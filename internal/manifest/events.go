package manifest

// Position is a 1-based source location.
type Position struct {
	Line int
	Col  int
}

// IsZero reports whether the position carries no location information.
func (p Position) IsZero() bool {
	return p.Line == 0
}

// EventKind identifies the kind of event produced by an EventSource.
type EventKind int

const (
	// EventSection is a [section] header. Name holds the raw section name.
	EventSection EventKind = iota

	// EventKeyValue is a key = value pair. Key and Value hold the parts.
	EventKeyValue

	// EventError is a malformed line reported by the event source. Msg holds
	// the diagnostic.
	EventError
)

// Event is a single item in the manifest token stream.
type Event struct {
	Kind  EventKind
	Name  string
	Key   string
	Value string
	Msg   string
	Pos   Position
}

// EventSource yields manifest events one at a time. Next returns false once
// the stream is exhausted. The parser consumes any EventSource, so callers
// may substitute their own tokenizer for the built-in Scanner.
type EventSource interface {
	Next() (Event, bool)
}
