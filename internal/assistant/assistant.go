package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	DefaultModel = "gemini-2.5-flash"

	SystemInstruction = `You are the help desk assistant of the Board of Intermediate & Secondary Education.
Answer questions from students, parents and schools about registration, admissions,
examination schedules, results, fees and certificate verification.
Be brief and polite. If you do not know an answer, point the user to the board helpline
or the notices section of the website. Never invent dates, fees or roll numbers.`

	MsgEmpty         = "Please type your question about admissions, examinations or results."
	MsgNotConfigured = "The assistant is not available at the moment. Please call the board helpline for help."
	MsgFailure       = "Sorry, I could not get an answer right now. Please try again in a little while."

	defaultMaxRetries     = 3
	defaultInitialBackoff = 2 * time.Second
)

// Recorder receives one outcome per answered message
type Recorder interface {
	ObserveAssistant(outcome string)
}

// Config configures the assistant
type Config struct {
	Model          string
	FallbackModels []string
	MaxRetries     int
	InitialBackoff time.Duration
}

// Assistant answers visitor questions. It never returns an error; failures
// become a message the visitor can read.
type Assistant struct {
	gen            Generator
	models         []string
	maxRetries     int
	initialBackoff time.Duration
	recorder       Recorder
	errLogger      *log.Logger
}

// New creates an Assistant. A nil generator yields an assistant that
// only reports that it is not configured.
func New(gen Generator, cfg Config, rec Recorder) *Assistant {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	models := []string{model}
	for _, m := range cfg.FallbackModels {
		if m != "" && m != model {
			models = append(models, m)
		}
	}

	a := &Assistant{
		gen:            gen,
		models:         models,
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		recorder:       rec,
		errLogger:      log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
	if a.maxRetries <= 0 {
		a.maxRetries = defaultMaxRetries
	}
	if a.initialBackoff <= 0 {
		a.initialBackoff = defaultInitialBackoff
	}
	return a
}

// GetResponse answers a single message
func (a *Assistant) GetResponse(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		a.observe("empty")
		return MsgEmpty
	}
	if a.gen == nil {
		a.observe("unconfigured")
		return MsgNotConfigured
	}

	reply, err := a.generateWithFallback(ctx, message)
	if err != nil {
		a.errLogger.Printf("Assistant request failed: %v", err)
		a.observe("failed")
		return MsgFailure
	}

	a.observe("answered")
	return reply
}

func (a *Assistant) observe(outcome string) {
	if a.recorder != nil {
		a.recorder.ObserveAssistant(outcome)
	}
}

// generateWithFallback tries each model in turn. Rate limits and server errors
// are retried with exponential backoff; a missing model moves on to the next one.
func (a *Assistant) generateWithFallback(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for _, model := range a.models {
		backoff := a.initialBackoff

		for attempt := 0; attempt < a.maxRetries; attempt++ {
			if attempt > 0 {
				select {
				case <-ctx.Done():
					return "", ctx.Err()
				case <-time.After(backoff):
					backoff *= 2
				}
			}

			reply, err := a.gen.Generate(ctx, model, prompt)
			if err == nil {
				return strings.TrimSpace(reply), nil
			}
			lastErr = fmt.Errorf("%s: %w", model, err)

			if ctx.Err() != nil {
				return "", lastErr
			}
			if isRetryable(err) {
				continue
			}
			if isModelUnavailable(err) {
				break
			}
			return "", lastErr
		}
	}

	return "", fmt.Errorf("all models failed: %w", lastErr)
}

func isRetryable(err error) bool {
	if errors.Is(err, errEmptyCompletion) {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, marker := range []string{"429", "rate limit", "exhausted", "500", "503", "unavailable", "overloaded"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func isModelUnavailable(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "404") || strings.Contains(s, "not found")
}
