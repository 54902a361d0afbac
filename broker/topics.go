package broker

import "strings"

const (
	// StreamName is the JetStream stream that captures every subject below.
	StreamName = "STICKYBOARD_EVENTS"

	SubjectPrefix = "stickyboard"
	BoardSubject  = SubjectPrefix + ".board.>"
	NoteSubject   = SubjectPrefix + ".note.>"
)

// SubjectFor maps an event type such as "note.created" to its NATS subject.
func SubjectFor(eventType string) string {
	return SubjectPrefix + "." + strings.TrimPrefix(eventType, SubjectPrefix+".")
}
