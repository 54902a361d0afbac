package broker

type EventType string

const (
	// Standardized event types in format: <resource>.<action>
	BoardCreated EventType = "board.created"

	NoteCreated EventType = "note.created"
	NoteUpdated EventType = "note.updated"
	NoteDeleted EventType = "note.deleted"
)
