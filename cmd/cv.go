package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobcoach/internal/flow"
	"github.com/spigell/jobcoach/internal/questions"
	"github.com/spigell/jobcoach/internal/render"
)

const (
	PromptCVAnswer  = "Answer"
	PromptCVSkip    = "Skip this question"
	PromptCVRestart = "Start over"
)

var cvCmd = &cobra.Command{
	Use:   "cv",
	Short: "Build a CV step by step and export it to cv.pdf",
	Run: func(cmd *cobra.Command, _ []string) {
		cvWizard(cmd)
	},
}

func init() {
	rootCmd.AddCommand(cvCmd)

	cvCmd.Flags().String("photo", "", "profile photo (PNG, JPEG or GIF) drawn in the CV header")
	cvCmd.Flags().StringP("output-dir", "o", ".", "directory where "+render.FileName+" is written")
	cvCmd.Flags().Bool("no-preview", false, "do not print the CV preview before exporting")

	viper.BindPFlag("cv.photo", cvCmd.Flags().Lookup("photo"))
	viper.BindPFlag("cv.output-dir", cvCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("cv.no-preview", cvCmd.Flags().Lookup("no-preview"))
}

type cvSession struct {
	wizard  *flow.Wizard
	logger  *zap.Logger
	out     io.Writer
	palette *palette
}

func cvWizard(cmd *cobra.Command) {
	ctx := cmd.Context()

	config, logger := setup("cv")

	if config.CV.Photo != "" {
		if _, err := os.Stat(config.CV.Photo); err != nil {
			logger.Fatal("photo is not readable", zap.String("photo", config.CV.Photo), zap.Error(err))
		}
	}

	bank, err := questions.DefaultCV()
	if err != nil {
		logger.Fatal("loading cv questions", zap.Error(err))
	}

	wizard, err := flow.NewWizard(bank, flow.DefaultWizardConfig())
	if err != nil {
		logger.Fatal("starting cv wizard", zap.Error(err))
	}

	s := &cvSession{
		wizard:  wizard,
		logger:  logger,
		out:     os.Stdout,
		palette: newPalette(styled()),
	}

	if err := s.run(); err != nil {
		if errors.Is(err, errExit) || errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			logger.Info("cv wizard cancelled")
			return
		}
		logger.Fatal("cv wizard failed", zap.Error(err))
	}

	if err := s.finish(ctx, config.CV); err != nil {
		logger.Fatal("exporting cv", zap.Error(err))
	}
}

func (s *cvSession) run() error {
	for s.wizard.State() != flow.Completed {
		p, _ := s.wizard.Current()
		s.show(p)

		items := []string{PromptCVAnswer}
		if s.wizard.CanSkip() {
			items = append(items, PromptCVSkip)
		}
		items = append(items, PromptCVRestart, PromptQuit)

		actionPrompt := promptui.Select{Label: "What next?", Items: items}
		_, action, err := actionPrompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptCVAnswer:
			if err := s.answer(p); err != nil {
				return err
			}
		case PromptCVSkip:
			if err := s.wizard.Skip(); err != nil {
				return err
			}
		case PromptCVRestart:
			s.wizard.Restart()
			s.logger.Info("cv wizard restarted")
		case PromptQuit:
			return errExit
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
	return nil
}

func (s *cvSession) show(p flow.Prompt) {
	switch p.Kind {
	case flow.ExtraPrompt:
		fmt.Fprintf(s.out, "\n%s\n", s.palette.heading.Sprintf("%s: %s", flow.AdditionalInfoCategory, p.Category))
	case flow.ConfirmPrompt:
		fmt.Fprintf(s.out, "\n%s\n", s.palette.heading.Sprint(flow.AdditionalInfoCategory))
	default:
		fmt.Fprintf(s.out, "\n%s  %s\n",
			s.palette.heading.Sprintf("Step %d/%d", s.wizard.Step()+1, s.wizard.Total()),
			s.palette.muted.Sprint(p.Question.Category),
		)
	}

	fmt.Fprintln(s.out, p.Question.Prompt)
	if p.Question.Tips != "" {
		fmt.Fprintln(s.out, s.palette.muted.Sprint("Tip: "+p.Question.Tips))
	}
	if p.Kind == flow.StaticPrompt && s.wizard.IsPicker(p.Question) {
		fmt.Fprintln(s.out, s.palette.muted.Sprint("Sections: "+strings.Join(s.wizard.Categories(), ", ")))
	}
}

func (s *cvSession) answer(p flow.Prompt) error {
	hint := validationHint(s.wizard, p)

	answerPrompt := promptui.Prompt{
		Label: "Your answer",
		Validate: func(input string) error {
			if !s.wizard.CanSubmit(input) {
				return hint
			}
			return nil
		},
	}

	response, err := answerPrompt.Run()
	if err != nil {
		return err
	}

	answer, err := s.wizard.Submit(response)
	if errors.Is(err, flow.ErrInputRejected) {
		fmt.Fprintln(s.out, hint)
		return nil
	}
	if err != nil {
		return err
	}

	if answer != nil {
		s.logger.Debug("cv question answered", zap.String("question_id", answer.Question.ID))
	}
	return nil
}

// validationHint explains what the wizard accepts for the prompt.
func validationHint(w *flow.Wizard, p flow.Prompt) error {
	switch {
	case p.Kind == flow.ConfirmPrompt:
		return errors.New("please answer yes or no")
	case p.Kind == flow.StaticPrompt && w.IsPicker(p.Question):
		return fmt.Errorf("mention one of: %s", strings.Join(w.Categories(), ", "))
	default:
		return errEmptyAnswer
	}
}

func (s *cvSession) finish(ctx context.Context, cfg *CVConfig) error {
	answers := s.wizard.Answers()
	cv := render.BuildCV(answers)

	if !cfg.NoPreview {
		fmt.Fprintln(s.out)
		if err := render.NewPreview(styled()).Write(s.out, cv, cfg.Photo != ""); err != nil {
			return err
		}
	}

	exporter := render.NewExporter(render.DefaultLayout(), s.logger)
	path, err := exporter.ExportFile(ctx, cfg.OutputDir, answers, cfg.Photo)
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nYour CV was saved to %s\n", path)
	return nil
}
