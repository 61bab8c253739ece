package core

// unexported constants.
const (
	stateFresh resultState = iota
	stateOpen
	stateClosed
)

// resultState tracks whether a result may still consume tokens.
//
// A result starts Fresh, opens when its identifier is matched, and closes
// once it can take no more tokens or a later token ends its run. Specifying
// an option again re-arms its result to Open.
type resultState int

func (s resultState) String() string {
	switch s {
	case stateFresh:
		return "fresh"
	case stateOpen:
		return "open"
	case stateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

func (s resultState) accepting() bool {
	return s == stateOpen
}

func (s *resultState) close() {
	*s = stateClosed
}

func (s *resultState) open() {
	*s = stateOpen
}
