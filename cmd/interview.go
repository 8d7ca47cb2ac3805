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

	"github.com/spigell/jobcoach/internal/ai"
	"github.com/spigell/jobcoach/internal/flow"
	"github.com/spigell/jobcoach/internal/questions"
	"github.com/spigell/jobcoach/internal/share"
	"github.com/spigell/jobcoach/internal/speech"
)

const (
	PromptAnswer  = "Type an answer"
	PromptVoice   = "Answer by voice"
	PromptListen  = "Read the question aloud"
	PromptSilence = "Stop reading"
	PromptSkip    = "Skip this question"
	PromptFilter  = "Change level or technology"
	PromptRestart = "Restart the interview"
	PromptShare   = "Share my score"
	PromptReview  = "Get a coach review (Gemini)"
	PromptQuit    = "Quit"
)

var (
	errExit        = errors.New("exit requested")
	errEmptyAnswer = errors.New("an answer is required")
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run a mock technical interview",
	Run: func(cmd *cobra.Command, _ []string) {
		interview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)

	interviewCmd.Flags().StringP("level", "l", string(questions.LevelBeginner), "question level: beginner, intermediate or advanced")
	interviewCmd.Flags().StringP("technology", "t", string(questions.TechnologyAll), "technology: HTML, CSS, JavaScript, React, General or all")
	interviewCmd.Flags().Bool("auto-speak", false, "read every question aloud")
	interviewCmd.Flags().Bool("review", false, "ask Gemini for a coach review once the interview is completed")

	viper.BindPFlag("interview.level", interviewCmd.Flags().Lookup("level"))
	viper.BindPFlag("interview.technology", interviewCmd.Flags().Lookup("technology"))
	viper.BindPFlag("interview.auto-speak", interviewCmd.Flags().Lookup("auto-speak"))
	viper.BindPFlag("interview.review", interviewCmd.Flags().Lookup("review"))
}

type interviewSession struct {
	bank       *questions.Bank
	iv         *flow.Interview
	speaker    *speech.Speaker
	recognizer *speech.Recognizer
	reviewer   ai.Reviewer
	sharer     *share.Sharer
	logger     *zap.Logger
	out        io.Writer
	palette    *palette

	autoSpeak  bool
	autoReview bool
	reviewed   bool

	// draft collects dictated text until the answer is submitted.
	draft string
}

func interview(cmd *cobra.Command) {
	ctx := cmd.Context()

	config, logger := setup("interview")

	bank, err := loadBank(config)
	if err != nil {
		logger.Fatal("loading question bank", zap.Error(err))
	}

	level, _ := questions.ParseLevel(config.Interview.Level)
	filter := questions.Filter{Level: level, Technology: questions.Technology(config.Interview.Technology)}

	iv, err := flow.NewInterview(bank, filter)
	if err != nil {
		logger.Fatal("starting interview", zap.Error(err))
	}
	defer iv.Close()

	reviewer, err := newReviewer(ctx, config, logger)
	if err != nil {
		logger.Warn("ai review is disabled", zap.Error(err))
	}

	var shareCommands [][]string
	if config.Share != nil && len(config.Share.Command) > 0 {
		shareCommands = [][]string{config.Share.Command}
	}

	s := &interviewSession{
		bank:       bank,
		iv:         iv,
		speaker:    newSpeaker(config.Speech, logger),
		recognizer: newRecognizer(config.Speech, logger),
		reviewer:   reviewer,
		sharer:     share.New(shareCommands, logger),
		logger:     logger,
		out:        os.Stdout,
		palette:    newPalette(styled()),
		autoSpeak:  config.Interview.AutoSpeak,
		autoReview: config.Interview.Review && reviewer != nil,
	}
	defer s.speaker.Cancel()

	logger.Info("interview started",
		zap.String("level", string(filter.Level)),
		zap.String("technology", string(filter.Technology)),
		zap.Int("questions", iv.Total()),
	)

	if err := s.run(ctx); err != nil && !errors.Is(err, errExit) {
		logger.Fatal("interview failed", zap.Error(err))
	}
}

func (s *interviewSession) run(ctx context.Context) error {
	for {
		var err error
		if s.iv.State() == flow.Completed {
			err = s.completed(ctx)
		} else {
			err = s.ask(ctx)
		}

		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return errExit
		}
		if err != nil {
			return err
		}
	}
}

func (s *interviewSession) ask(ctx context.Context) error {
	q, _ := s.iv.Current()

	fmt.Fprintf(s.out, "\n%s  %s\n",
		s.palette.heading.Sprintf("Question %d/%d", s.iv.Step()+1, s.iv.Total()),
		s.palette.muted.Sprintf("[%s, %s, %s]", q.Technology, q.Level, flow.FormatElapsed(s.iv.Elapsed())),
	)
	fmt.Fprintln(s.out, q.Prompt)
	if q.Tips != "" {
		fmt.Fprintln(s.out, s.palette.muted.Sprint("Tip: "+q.Tips))
	}

	if s.autoSpeak {
		s.speak(ctx, q)
	}

	for {
		items := questionActions(s.recognizer.Available(), s.speaker.Available(), s.speaker.Speaking())
		actionPrompt := promptui.Select{Label: "What next?", Items: items}
		_, action, err := actionPrompt.Run()
		if err != nil {
			return err
		}

		switch action {
		case PromptAnswer:
			s.speaker.Cancel()
			return s.answer(s.draft)
		case PromptVoice:
			s.speaker.Cancel()
			fmt.Fprintln(s.out, s.palette.muted.Sprint("Listening..."))
			transcript, err := s.recognizer.Listen(ctx)
			if err != nil {
				fmt.Fprintln(s.out, "Could not capture your answer, please try again or type it.")
				continue
			}
			s.dictate(transcript)
		case PromptListen:
			s.speak(ctx, q)
		case PromptSilence:
			s.speaker.Cancel()
		case PromptSkip:
			s.speaker.Cancel()
			s.draft = ""
			s.logger.Debug("question skipped", zap.String("question_id", q.ID))
			return s.iv.Skip()
		case PromptFilter:
			s.speaker.Cancel()
			s.draft = ""
			return s.changeFilter()
		case PromptQuit:
			return errExit
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}

// questionActions lists the menu entries for a question. Voice entries appear
// only when the matching engine is installed.
func questionActions(canListen, canSpeak, speaking bool) []string {
	items := []string{PromptAnswer}
	if canListen {
		items = append(items, PromptVoice)
	}
	if canSpeak {
		if speaking {
			items = append(items, PromptSilence)
		} else {
			items = append(items, PromptListen)
		}
	}
	return append(items, PromptSkip, PromptFilter, PromptQuit)
}

// dictate appends a transcript to the draft answer; "Type an answer" opens it for editing.
func (s *interviewSession) dictate(transcript string) {
	s.draft = speech.AppendTranscript(s.draft, transcript)
	s.logger.Debug("transcript captured", zap.Int("draft_words", len(strings.Fields(s.draft))))
	fmt.Fprintln(s.out, s.palette.muted.Sprint("Draft: ")+s.draft)
}

func (s *interviewSession) speak(ctx context.Context, q questions.Question) {
	if _, err := s.speaker.Speak(ctx, utterance(q)...); err != nil {
		s.logger.Debug("speaking question failed", zap.Error(err))
	}
}

func (s *interviewSession) answer(initial string) error {
	answerPrompt := promptui.Prompt{
		Label:     "Your answer",
		Default:   initial,
		AllowEdit: true,
		Validate: func(input string) error {
			if !s.iv.CanSubmit(input) {
				return errEmptyAnswer
			}
			return nil
		},
	}

	response, err := answerPrompt.Run()
	if err != nil {
		return err
	}

	answer, err := s.iv.Submit(response)
	if errors.Is(err, flow.ErrInputRejected) {
		fmt.Fprintln(s.out, errEmptyAnswer)
		return nil
	}
	if err != nil {
		return err
	}
	s.draft = ""

	s.logger.Debug("question answered",
		zap.String("question_id", answer.Question.ID),
		zap.Float64("score", answer.Score),
	)
	printFeedback(s.out, s.palette, answer)
	return nil
}

func (s *interviewSession) changeFilter() error {
	levels := make([]string, 0, len(questions.Levels))
	for _, level := range questions.Levels {
		levels = append(levels, string(level))
	}

	levelPrompt := promptui.Select{Label: "Level", Items: levels}
	_, selected, err := levelPrompt.Run()
	if err != nil {
		return err
	}
	level, _ := questions.ParseLevel(selected)

	technologies := []string{string(questions.TechnologyAll)}
	for _, tech := range s.bank.Technologies(level) {
		technologies = append(technologies, string(tech))
	}

	techPrompt := promptui.Select{Label: "Technology", Items: technologies}
	_, tech, err := techPrompt.Run()
	if err != nil {
		return err
	}

	s.iv.SetFilter(questions.Filter{Level: level, Technology: questions.Technology(tech)})
	s.logger.Info("filter changed",
		zap.String("level", string(level)),
		zap.String("technology", tech),
		zap.Int("questions", s.iv.Total()),
	)
	return nil
}

func (s *interviewSession) completed(ctx context.Context) error {
	s.speaker.Cancel()
	res := s.iv.Results()
	printResults(s.out, s.palette, res)

	if s.autoReview && !s.reviewed {
		s.review(ctx, res)
	}

	items := []string{PromptRestart, PromptShare}
	if s.reviewer != nil && len(res.Answers) > 0 {
		items = append(items, PromptReview)
	}
	items = append(items, PromptQuit)

	resultsPrompt := promptui.Select{Label: "What next?", Items: items}
	_, action, err := resultsPrompt.Run()
	if err != nil {
		return err
	}

	switch action {
	case PromptRestart:
		s.iv.Restart()
		s.reviewed = false
		s.draft = ""
		s.logger.Info("interview restarted")
		return nil
	case PromptShare:
		native, err := s.sharer.Share(ctx, share.Summary(res), s.out)
		if err != nil {
			return err
		}
		if native {
			fmt.Fprintln(s.out, "Your score summary was copied to the clipboard.")
		}
		return nil
	case PromptReview:
		s.review(ctx, res)
		return nil
	case PromptQuit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (s *interviewSession) review(ctx context.Context, res flow.Results) {
	s.reviewed = true
	if s.reviewer == nil || len(res.Answers) == 0 {
		return
	}

	fmt.Fprintln(s.out, s.palette.muted.Sprint("Asking the coach..."))
	review, err := s.reviewer.Review(ctx, res)
	if err != nil {
		s.logger.Warn("ai review failed", zap.Error(err))
		fmt.Fprintln(s.out, "The coach review is not available right now.")
		return
	}
	printReview(s.out, s.palette, review)
}
