package actor

import "github.com/likhithkanigolla/CAPS-IIITH/devs"

// State holds the fields every role carries.
type State struct {
	// PendingOutput is the payload staged for the next output function, nil when empty.
	PendingOutput any
	// LastEventTime never decreases.
	LastEventTime devs.Time
}

func (s *State) advanceTo(now devs.Time) {
	if now > s.LastEventTime {
		s.LastEventTime = now
	}
}
