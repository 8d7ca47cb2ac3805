package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/jobcoach/internal/flow"
)

// Stage names of the export pipeline, in execution order.
const (
	StageBuildCV        = "build_cv"
	StageDecodePhoto    = "decode_photo"
	StageRenderDocument = "render_document"
	StageWriteDocument  = "write_document"
)

// Stage is a single step of the export pipeline.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(job *Job) error
	Apply(ctx context.Context, job *Job) ([]zap.Field, error)
}

// Job carries the export inputs and the values produced by each stage.
type Job struct {
	Answers   []flow.Answer
	PhotoPath string

	CV     CV
	Photo  *Photo
	Canvas Canvas
	Output io.Writer

	// Completed lists the stages that ran, in order.
	Completed []string
}

// Status represents runtime information about a stage.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

// Stages returns the export pipeline: the photo is decoded before the document is drawn.
func (e *Exporter) Stages() []Stage {
	return []Stage{
		&buildStage{},
		&decodePhotoStage{},
		&renderStage{exporter: e},
		&writeStage{},
	}
}

// DisableByName marks a stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
		}
	}
}

// Run validates every enabled stage, then executes them sequentially. Each stage
// completes before the next one starts.
func Run(ctx context.Context, logger *zap.Logger, stages []Stage, job *Job) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, stage := range stages {
		if !stage.IsEnabled() {
			continue
		}
		if err := stage.Validate(job); err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}
	}

	for _, stage := range stages {
		if !stage.IsEnabled() {
			logger.Debug("export stage disabled", zap.String("name", stage.Name()))
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}

		started := time.Now()
		fields, err := stage.Apply(ctx, job)
		if err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}

		job.Completed = append(job.Completed, stage.Name())
		logger.Debug("export stage",
			append([]zap.Field{
				zap.String("name", stage.Name()),
				zap.Duration("took", time.Since(started)),
			}, fields...)...,
		)
	}

	return nil
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, stage := range stages {
		status := Status{Name: stage.Name(), Enabled: stage.IsEnabled()}
		if r, ok := stage.(interface{ reason() string }); ok {
			status.Reason = r.reason()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// toggle implements the enable/disable part of Stage.
type toggle struct {
	disabled bool
	why      string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.why = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) reason() string { return t.why }

type buildStage struct{ toggle }

func (s *buildStage) Name() string { return StageBuildCV }

func (s *buildStage) Validate(*Job) error { return nil }

func (s *buildStage) Apply(_ context.Context, job *Job) ([]zap.Field, error) {
	job.CV = BuildCV(job.Answers)
	return []zap.Field{
		zap.Int("answers", len(job.Answers)),
		zap.Int("sections", len(job.CV.Sections())),
	}, nil
}

type decodePhotoStage struct{ toggle }

func (s *decodePhotoStage) Name() string { return StageDecodePhoto }

func (s *decodePhotoStage) Validate(job *Job) error {
	if job.PhotoPath == "" {
		return errors.New("photo path is empty")
	}
	return nil
}

func (s *decodePhotoStage) Apply(_ context.Context, job *Job) ([]zap.Field, error) {
	photo, err := LoadPhoto(job.PhotoPath)
	if err != nil {
		return nil, err
	}
	job.Photo = photo
	return []zap.Field{
		zap.String("format", photo.Format),
		zap.Int("width", photo.Width),
		zap.Int("height", photo.Height),
	}, nil
}

type renderStage struct {
	toggle
	exporter *Exporter
}

func (s *renderStage) Name() string { return StageRenderDocument }

func (s *renderStage) Validate(job *Job) error {
	if job.Canvas == nil {
		return errors.New("canvas is not initialized")
	}
	return nil
}

func (s *renderStage) Apply(_ context.Context, job *Job) ([]zap.Field, error) {
	if err := s.exporter.Render(job.Canvas, job.CV, job.Photo); err != nil {
		return nil, err
	}
	return []zap.Field{
		zap.Int("pages", job.Canvas.PageCount()),
		zap.Bool("photo", job.Photo != nil),
	}, nil
}

type writeStage struct{ toggle }

func (s *writeStage) Name() string { return StageWriteDocument }

func (s *writeStage) Validate(job *Job) error {
	if job.Output == nil {
		return errors.New("output is not initialized")
	}
	return nil
}

func (s *writeStage) Apply(_ context.Context, job *Job) ([]zap.Field, error) {
	counter := &countingWriter{w: job.Output}
	if err := job.Canvas.Output(counter); err != nil {
		return nil, err
	}
	return []zap.Field{zap.Int64("bytes", counter.n)}, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
