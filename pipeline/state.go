package pipeline

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// State is the lifecycle position of one sink run
type State uint8

const (
	StateIdle State = iota
	StateOpened
	StateProcessing
	StateFinalizing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateOpened:
		return "opened"
	case StateProcessing:
		return "processing"
	case StateFinalizing:
		return "finalizing"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

var validTransitions = map[State][]State{
	StateIdle:       {StateOpened},
	StateOpened:     {StateProcessing, StateFinalizing, StateClosed},
	StateProcessing: {StateProcessing, StateFinalizing, StateClosed},
	StateFinalizing: {StateClosed},
}

// CanTransition reports whether from -> to is a legal lifecycle step
func CanTransition(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// lifecycle tracks a run's state; illegal steps are logged and ignored
type lifecycle struct {
	sink  string
	state State
}

func (l *lifecycle) to(next State) {
	if !CanTransition(l.state, next) {
		logrus.WithFields(logrus.Fields{
			"sink": l.sink,
			"from": l.state,
			"to":   next,
		}).Debug("Ignored invalid state transition")
		return
	}
	if next != l.state {
		logrus.WithFields(logrus.Fields{"sink": l.sink, "state": next}).Debug("Sink state")
	}
	l.state = next
}
