package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ErrCapture wraps recognition failures. They are recoverable: the caller may retry.
var ErrCapture = errors.New("speech capture failed")

// Capturer records one utterance and returns its transcript.
type Capturer interface {
	Capture(ctx context.Context) (string, error)
}

// CommandCapturer runs an external recognizer that prints the transcript on stdout.
type CommandCapturer struct {
	cmd *command
}

// NewCommandCapturer resolves argv[0] on PATH. Arguments may use the {locale} placeholder.
func NewCommandCapturer(argv []string, locale string) (*CommandCapturer, error) {
	cmd, err := newCommand(argv, locale, 0)
	if err != nil {
		return nil, err
	}
	return &CommandCapturer{cmd: cmd}, nil
}

func (c *CommandCapturer) Capture(ctx context.Context) (string, error) {
	var stdout, stderr bytes.Buffer
	run := c.cmd.build(ctx, "")
	run.Stdout = &stdout
	run.Stderr = &stderr

	if err := run.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Recognizer captures single utterances (non-continuous, one locale). Only one
// capture runs at a time.
type Recognizer struct {
	capturer Capturer
	logger   *zap.Logger

	mu        sync.Mutex
	listening bool
}

// NewRecognizer creates a recognizer. A nil capturer yields one that is not Available.
func NewRecognizer(capturer Capturer, logger *zap.Logger) *Recognizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recognizer{capturer: capturer, logger: logger}
}

func (r *Recognizer) Available() bool {
	return r != nil && r.capturer != nil
}

// Listen captures one transcript. Failures are logged, the listening flag is
// reset and an ErrCapture is returned so the caller can offer a retry.
func (r *Recognizer) Listen(ctx context.Context) (string, error) {
	if !r.Available() {
		return "", ErrUnavailable
	}

	r.mu.Lock()
	if r.listening {
		r.mu.Unlock()
		return "", fmt.Errorf("%w: already listening", ErrCapture)
	}
	r.listening = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.listening = false
		r.mu.Unlock()
	}()

	transcript, err := r.capturer.Capture(ctx)
	if err != nil {
		r.logger.Warn("speech recognition error", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrCapture, err)
	}

	return transcript, nil
}

// AppendTranscript joins a new transcript to the text typed so far.
func AppendTranscript(current, transcript string) string {
	current = strings.TrimSpace(current)
	transcript = strings.TrimSpace(transcript)
	switch {
	case current == "":
		return transcript
	case transcript == "":
		return current
	default:
		return current + " " + transcript
	}
}
