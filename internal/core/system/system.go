package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput  Phase = iota // 0: translate and launch input events
	PhaseUpdate              // 1: scene tick, renderers draw here
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// System is one step of the frame pipeline.
type System interface {
	Phase() Phase
	Update(dt time.Duration) error
}
