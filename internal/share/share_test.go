package share

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/jobcoach/internal/flow"
)

func results() flow.Results {
	return flow.Results{
		Answers: []flow.Answer{
			{Response: "a", Score: 12},
			{Response: "b", Score: 7.5},
		},
		TotalScore: 19.5,
		MaxScore:   45,
		Percentage: 43,
	}
}

func TestSummary(t *testing.T) {
	t.Parallel()

	want := "I scored 43% on my mock interview!\n\nQ1: 12.0/15\nQ2: 7.5/15"
	assert.Equal(t, want, Summary(results()))
}

func TestSummaryWithoutAnswers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "I scored 0% on my mock interview!", Summary(flow.Results{}))
}

func TestShareFallsBackToPrinting(t *testing.T) {
	t.Parallel()

	missing := func(string) (string, error) { return "", errors.New("not found") }
	called := false
	run := func(context.Context, string, []string, string) error {
		called = true
		return nil
	}

	s := newSharer(nil, missing, run, zap.NewNop())
	assert.False(t, s.Available())

	var out bytes.Buffer
	native, err := s.Share(context.Background(), Summary(results()), &out)
	require.NoError(t, err)
	assert.False(t, native)
	assert.False(t, called)
	assert.Equal(t, Summary(results())+"\n", out.String())
}

func TestShareUsesNativeCommand(t *testing.T) {
	t.Parallel()

	lookPath := func(name string) (string, error) {
		if name == "xclip" {
			return "/usr/bin/xclip", nil
		}
		return "", errors.New("not found")
	}

	var gotPath, gotStdin string
	var gotArgs []string
	run := func(_ context.Context, path string, args []string, stdin string) error {
		gotPath, gotArgs, gotStdin = path, args, stdin
		return nil
	}

	s := newSharer(DefaultCommands, lookPath, run, zap.NewNop())
	require.True(t, s.Available())

	var out bytes.Buffer
	native, err := s.Share(context.Background(), "summary", &out)
	require.NoError(t, err)
	assert.True(t, native)
	assert.Empty(t, out.String())
	assert.Equal(t, "/usr/bin/xclip", gotPath)
	assert.Equal(t, []string{"-selection", "clipboard"}, gotArgs)
	assert.Equal(t, "summary", gotStdin)
}

func TestShareCommandFailurePrints(t *testing.T) {
	t.Parallel()

	lookPath := func(name string) (string, error) { return "/usr/bin/" + name, nil }
	run := func(context.Context, string, []string, string) error { return errors.New("no display") }

	s := newSharer([][]string{{"wl-copy"}}, lookPath, run, zap.NewNop())

	err := s.Native(context.Background(), "summary")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)

	var out bytes.Buffer
	native, err := s.Share(context.Background(), "summary", &out)
	require.NoError(t, err)
	assert.False(t, native)
	assert.Equal(t, "summary\n", out.String())
}
