package input

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/se2de/engine/internal/core/event"
	"github.com/se2de/engine/internal/core/system"
	"github.com/se2de/engine/internal/engine"
)

// Source yields the occurrences collected since the previous poll.
type Source interface {
	Poll() []Occurrence
}

// System launches one game event per polled occurrence, in order. A quit
// occurrence also stops the runtime.
type System struct {
	rt  *engine.Runtime
	src Source
	log *zap.Logger
}

func NewSystem(rt *engine.Runtime, src Source, log *zap.Logger) *System {
	return &System{rt: rt, src: src, log: log}
}

func (s *System) Phase() system.Phase { return system.PhaseInput }

func (s *System) Update(_ time.Duration) error {
	for _, o := range s.src.Poll() {
		t, data, ok := Translate(o)
		if !ok {
			s.log.Debug("unknown input occurrence", zap.Int("kind", int(o.Kind)))
			continue
		}
		if t == event.EventQuit {
			s.log.Info("quit requested")
			s.rt.Stop()
		}
		if err := s.rt.Bus().Launch(t, data); err != nil {
			return fmt.Errorf("input event %s: %w", t.Key(), err)
		}
	}
	return nil
}
