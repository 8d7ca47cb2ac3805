// Package share hands the interview summary to the system clipboard, falling
// back to printing it.
package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobcoach/internal/evaluator"
	"github.com/spigell/jobcoach/internal/flow"
)

// ErrUnavailable is returned by Native when no share command is installed.
var ErrUnavailable = errors.New("share capability unavailable")

// DefaultCommands are probed in order when no command is configured.
var DefaultCommands = [][]string{
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"pbcopy"},
	{"clip.exe"},
}

// Summary renders the shareable text of an interview result.
func Summary(res flow.Results) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I scored %d%% on my mock interview!", res.Percentage)
	if len(res.Answers) > 0 {
		b.WriteString("\n")
	}
	for i, a := range res.Answers {
		fmt.Fprintf(&b, "\nQ%d: %s/%s", i+1, strconv.FormatFloat(a.Score, 'f', 1, 64), evaluator.FormatScore(evaluator.MaxScore))
	}
	return b.String()
}

type runner func(ctx context.Context, path string, args []string, stdin string) error

// Sharer pipes text into the first available share command.
type Sharer struct {
	path   string
	args   []string
	run    runner
	logger *zap.Logger
}

// New resolves the first command of candidates found on PATH. When none is found
// the Sharer still works but always falls back to printing.
func New(candidates [][]string, logger *zap.Logger) *Sharer {
	return newSharer(candidates, exec.LookPath, runCommand, logger)
}

func newSharer(candidates [][]string, lookPath func(string) (string, error), run runner, logger *zap.Logger) *Sharer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(candidates) == 0 {
		candidates = DefaultCommands
	}

	s := &Sharer{run: run, logger: logger}
	for _, argv := range candidates {
		if len(argv) == 0 {
			continue
		}
		path, err := lookPath(argv[0])
		if err != nil {
			continue
		}
		s.path = path
		s.args = argv[1:]
		logger.Debug("share command resolved", zap.String("path", path))
		break
	}

	return s
}

// Available reports whether a native share command was found.
func (s *Sharer) Available() bool {
	return s != nil && s.path != ""
}

// Native hands the text to the share command.
func (s *Sharer) Native(ctx context.Context, text string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	if err := s.run(ctx, s.path, s.args, text); err != nil {
		return fmt.Errorf("run share command: %w", err)
	}
	return nil
}

// Share tries the native command first and prints the text to out when sharing is
// unavailable or fails. It reports whether the native command was used.
func (s *Sharer) Share(ctx context.Context, text string, out io.Writer) (bool, error) {
	err := s.Native(ctx, text)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, ErrUnavailable) {
		s.logger.Warn("native share failed, printing summary instead", zap.Error(err))
	}

	if _, werr := fmt.Fprintln(out, text); werr != nil {
		return false, fmt.Errorf("print summary: %w", werr)
	}
	return false, nil
}

func runCommand(ctx context.Context, path string, args []string, stdin string) error {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Run()
}
