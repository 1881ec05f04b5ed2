package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/midikbd/sdk/contracts"
	"go.uber.org/multierr"
)

// ErrSessionStopped is returned by Run on a session that was already torn down.
var ErrSessionStopped = errors.New("session already stopped")

// Config is the immutable note mapping of a session.
type Config struct {
	Mapper   Mapper
	Combo    ExitCombo
	Velocity uint8
	Channel  uint8
	Logger   contracts.Logger
}

// Session translates the events of one grabbed device into notes on one port.
// The held-key state is owned by the goroutine running Run.
type Session struct {
	device contracts.GrabbedDevice
	port   contracts.MIDIPort
	mapper Mapper
	combo  ExitCombo
	vel    uint8
	ch     uint8
	logger contracts.Logger

	held  *HeldKeys
	state atomic.Int32

	portMu     sync.Mutex
	portClosed bool

	closeOnce sync.Once
	closeErr  error
}

type pumped struct {
	event contracts.RawKeyEvent
	err   error
}

// NewSession binds an already grabbed device and an already open port.
func NewSession(device contracts.GrabbedDevice, port contracts.MIDIPort, cfg Config) *Session {
	s := &Session{
		device: device,
		port:   port,
		mapper: cfg.Mapper,
		combo:  cfg.Combo,
		vel:    cfg.Velocity,
		ch:     cfg.Channel,
		logger: cfg.Logger,
		held:   NewHeldKeys(),
	}
	s.state.Store(int32(contracts.Running))
	return s
}

// State returns the lifecycle state.
func (s *Session) State() contracts.SessionState {
	return contracts.SessionState(s.state.Load())
}

// DeviceName returns the name of the grabbed device.
func (s *Session) DeviceName() string { return s.device.Name() }

// PortName returns the advertised name of the MIDI port.
func (s *Session) PortName() string { return s.port.Name() }

// Run pulls events until the exit combo, ctx cancellation or an I/O error,
// then tears the session down. Exit combo and cancellation return nil.
func (s *Session) Run(ctx context.Context) error {
	if s.State() != contracts.Running {
		return ErrSessionStopped
	}

	events := make(chan pumped)
	done := make(chan struct{})
	go s.pump(events, done)

	runErr := s.loop(ctx, events)
	if !errors.Is(runErr, contracts.ErrSinkSend) {
		runErr = multierr.Append(runErr, s.silenceHeld())
	}
	s.held.Clear()

	err := multierr.Append(runErr, s.Close())
	close(done)
	return err
}

// pump is the only caller of NextEvent. It stops after delivering an error
// or once done is closed.
func (s *Session) pump(out chan<- pumped, done <-chan struct{}) {
	for {
		ev, err := s.device.NextEvent()
		select {
		case out <- pumped{event: ev, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

func (s *Session) loop(ctx context.Context, events <-chan pumped) error {
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Termination requested", s.logger.Field().String("reason", context.Cause(ctx).Error()))
			s.toTerminating()
			return nil
		case p := <-events:
			if p.err != nil {
				if s.State() != contracts.Running {
					// Close was called from outside while we were waiting.
					return nil
				}
				s.toTerminating()
				s.logger.Error("Input capture failed", s.logger.Field().Error("error", p.err))
				return fmt.Errorf("%w: %w", contracts.ErrCaptureLost, p.err)
			}
			stop, err := s.handle(p.event)
			if err != nil {
				s.toTerminating()
				s.logger.Error("MIDI send failed", s.logger.Field().Error("error", err))
				return err
			}
			if stop {
				s.logger.Info("Exit combo pressed")
				s.toTerminating()
				return nil
			}
		}
	}
}

// handle applies one event. It returns true when the exit combo fired.
func (s *Session) handle(ev contracts.RawKeyEvent) (bool, error) {
	if ev.Kind != contracts.KeyPress && ev.Kind != contracts.KeyRelease {
		return false, nil
	}
	if s.combo.ShouldTerminate(ev.Keycode, s.held) {
		return true, nil
	}

	note, res := s.mapper.Note(ev.Keycode)
	if res == OutOfRange {
		s.logger.Warn("Dropping note outside MIDI range",
			s.logger.Field().Int("keycode", ev.Keycode),
			s.logger.Field().Int("note", note))
		return false, nil
	}
	if res == Unmapped && !s.combo.IsModifier(ev.Keycode) {
		return false, nil
	}

	switch ev.Kind {
	case contracts.KeyPress:
		if s.held.IsHeld(ev.Keycode) {
			return false, nil
		}
		s.held.Set(ev.Keycode, true)
		if res == Mapped {
			return false, s.emit(contracts.NoteOn, ev.Keycode, note)
		}
	case contracts.KeyRelease:
		s.held.Set(ev.Keycode, false)
		if res == Mapped {
			return false, s.emit(contracts.NoteOff, ev.Keycode, note)
		}
	}
	return false, nil
}

func (s *Session) emit(kind contracts.NoteKind, keycode, note int) error {
	ev := contracts.NewNoteEvent(kind, s.ch, uint8(note), s.vel)
	s.logger.Debug("Note",
		s.logger.Field().String("kind", kind.String()),
		s.logger.Field().Int("keycode", keycode),
		s.logger.Field().String("pitch", NoteName(note)))
	s.portMu.Lock()
	defer s.portMu.Unlock()
	if s.portClosed {
		return fmt.Errorf("%w: %s: port closed", contracts.ErrSinkSend, ev)
	}
	if err := s.port.Send(ev); err != nil {
		return fmt.Errorf("%w: %s: %w", contracts.ErrSinkSend, ev, err)
	}
	return nil
}

// silenceHeld sends a note-off for every key still down so that no note is
// left sounding once the port is closed.
func (s *Session) silenceHeld() error {
	s.portMu.Lock()
	closed := s.portClosed
	s.portMu.Unlock()
	if closed {
		return nil
	}
	for _, k := range s.held.Held() {
		note, res := s.mapper.Note(k)
		if res != Mapped {
			continue
		}
		if err := s.emit(contracts.NoteOff, k, note); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) toTerminating() {
	s.state.CompareAndSwap(int32(contracts.Running), int32(contracts.Terminating))
}

// Close releases the device grab, then closes the port. Both steps are
// attempted exactly once, whatever the other one returns.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.toTerminating()

		if err := s.device.Release(); err != nil {
			s.logger.Error("Failed to release input device", s.logger.Field().Error("error", err))
			s.closeErr = multierr.Append(s.closeErr, fmt.Errorf("release device: %w", err))
		} else {
			s.logger.Info("Input device released", s.logger.Field().String("device", s.device.Name()))
		}

		s.portMu.Lock()
		s.portClosed = true
		err := s.port.Close()
		s.portMu.Unlock()
		if err != nil {
			s.logger.Error("Failed to close MIDI port", s.logger.Field().Error("error", err))
			s.closeErr = multierr.Append(s.closeErr, fmt.Errorf("close port: %w", err))
		} else {
			s.logger.Info("MIDI port closed", s.logger.Field().String("port", s.port.Name()))
		}

		s.state.Store(int32(contracts.Terminated))
	})
	return s.closeErr
}
