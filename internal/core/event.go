package core

type EventKind string

const (
	EventCheck    EventKind = "check"
	EventCaptured EventKind = "captured"
)

// Event is a side-effect notification raised by the board while applying a
// move. For EventCheck, Side and Piece describe the checking piece; for
// EventCaptured they describe the piece that was taken.
type Event struct {
	Kind   EventKind
	Side   Side
	Piece  Kind
	Square Square
}

// Message renders the toast text shown to players
func (e Event) Message() string {
	switch e.Kind {
	case EventCheck:
		return "Check!"
	case EventCaptured:
		return e.Side.String() + " " + e.Piece.String() + " Died"
	default:
		return string(e.Kind)
	}
}
