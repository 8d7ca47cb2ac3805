// Package speech wraps external text-to-speech and speech-to-text programs.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Engine speaks a single piece of text and returns when it is done or ctx ends.
type Engine interface {
	Say(ctx context.Context, text string) error
}

// CommandEngine speaks through an external program such as espeak-ng or say.
type CommandEngine struct {
	cmd *command
}

// NewCommandEngine resolves argv[0] on PATH. Arguments may use {locale}, {rate}
// and {text} placeholders.
func NewCommandEngine(argv []string, locale string, rate float64) (*CommandEngine, error) {
	cmd, err := newCommand(argv, locale, rate)
	if err != nil {
		return nil, err
	}
	return &CommandEngine{cmd: cmd}, nil
}

func (e *CommandEngine) Say(ctx context.Context, text string) error {
	if err := e.cmd.build(ctx, text).Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("speak: %w", err)
	}
	return nil
}

// Speaker plays at most one utterance at a time. Starting a new utterance
// cancels the one in flight.
type Speaker struct {
	engine Engine
	logger *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSpeaker creates a speaker. A nil engine yields a speaker that is not Available.
func NewSpeaker(engine Engine, logger *zap.Logger) *Speaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Speaker{engine: engine, logger: logger}
}

func (s *Speaker) Available() bool {
	return s != nil && s.engine != nil
}

// Speak cancels any in-flight utterance and speaks the texts in order in the
// background. The returned channel is closed when speaking ends.
func (s *Speaker) Speak(ctx context.Context, texts ...string) (<-chan struct{}, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}

	s.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	uttCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		defer cancel()
		for _, text := range texts {
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			if err := s.engine.Say(uttCtx, text); err != nil {
				if !errors.Is(err, context.Canceled) {
					s.logger.Warn("speech synthesis failed", zap.Error(err))
				}
				return
			}
		}
	}()

	return done, nil
}

// Speaking reports whether an utterance is in flight.
func (s *Speaker) Speaking() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Cancel stops the in-flight utterance and waits for it to end.
func (s *Speaker) Cancel() {
	if s == nil {
		return
	}
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}
