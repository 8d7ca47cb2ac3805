package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/jobcoach/internal/ai"
	"github.com/spigell/jobcoach/internal/ai/gemini"
	"github.com/spigell/jobcoach/internal/logger"
	"github.com/spigell/jobcoach/internal/questions"
	"github.com/spigell/jobcoach/internal/secrets"
	"github.com/spigell/jobcoach/internal/speech"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

func newSpeaker(cfg *SpeechConfig, log *zap.Logger) *speech.Speaker {
	engine, err := speech.NewCommandEngine(cfg.Synthesizer, cfg.Locale, cfg.Rate)
	if err != nil {
		log.Debug("speech synthesis is not available", zap.Error(err))
		return speech.NewSpeaker(nil, log)
	}
	return speech.NewSpeaker(engine, log)
}

func newRecognizer(cfg *SpeechConfig, log *zap.Logger) *speech.Recognizer {
	capturer, err := speech.NewCommandCapturer(cfg.Recognizer, cfg.Locale)
	if err != nil {
		log.Debug("speech recognition is not available", zap.Error(err))
		return speech.NewRecognizer(nil, log)
	}
	return speech.NewRecognizer(capturer, log)
}

// utterance is the text read aloud for a question: the prompt, then its tip.
func utterance(q questions.Question) []string {
	texts := []string{q.Prompt}
	if tips := strings.TrimSpace(q.Tips); tips != "" {
		texts = append(texts, "Tip: "+tips)
	}
	return texts
}

// newReviewer builds the AI reviewer. It returns nil when AI review is disabled.
func newReviewer(ctx context.Context, config *Config, log *zap.Logger) (ai.Reviewer, error) {
	cfg := config.AI
	if cfg == nil || (!cfg.Enabled && !config.Interview.Review) {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai review is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   geminiAPIKeyEnv,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or %s)", err, geminiAPIKeyEnv)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, log)
	if err != nil {
		return nil, err
	}

	reviewerLogger := logger.WithFields(log, logger.AIFields("gemini", generator.Model())...)
	return gemini.NewReviewer(generator, reviewerLogger, cfg.Gemini.MaxLogLength), nil
}
