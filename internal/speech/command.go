package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrUnavailable is returned when no speech engine is configured or installed.
var ErrUnavailable = errors.New("speech capability unavailable")

const (
	placeholderLocale = "{locale}"
	placeholderRate   = "{rate}"
	placeholderText   = "{text}"
)

// command is an external program invocation with placeholder expansion.
type command struct {
	path string
	args []string
}

func newCommand(argv []string, locale string, rate float64) (*command, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, ErrUnavailable
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, argv[0], err)
	}

	r := strings.NewReplacer(
		placeholderLocale, locale,
		placeholderRate, strconv.FormatFloat(rate, 'f', -1, 64),
	)

	args := make([]string, 0, len(argv)-1)
	for _, arg := range argv[1:] {
		args = append(args, r.Replace(arg))
	}

	return &command{path: path, args: args}, nil
}

// build substitutes {text}; when the arguments have no such placeholder the text
// is appended as the last argument.
func (c *command) build(ctx context.Context, text string) *exec.Cmd {
	args := make([]string, 0, len(c.args)+1)
	substituted := false
	for _, arg := range c.args {
		if strings.Contains(arg, placeholderText) {
			arg = strings.ReplaceAll(arg, placeholderText, text)
			substituted = true
		}
		args = append(args, arg)
	}
	if !substituted && text != "" {
		args = append(args, text)
	}

	return exec.CommandContext(ctx, c.path, args...)
}
