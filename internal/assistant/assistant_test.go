package assistant

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type call struct {
	model  string
	prompt string
}

type fakeGenerator struct {
	mu      sync.Mutex
	calls   []call
	replies []func(model string) (string, error)
}

func (f *fakeGenerator) Generate(_ context.Context, model, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{model, prompt})
	if len(f.replies) == 0 {
		return "", errors.New("no reply scripted")
	}
	next := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return next(model)
}

func reply(text string) func(string) (string, error) {
	return func(string) (string, error) { return text, nil }
}

func fail(msg string) func(string) (string, error) {
	return func(string) (string, error) { return "", errors.New(msg) }
}

type outcomes []string

func (o *outcomes) ObserveAssistant(outcome string) { *o = append(*o, outcome) }

func newTestAssistant(gen Generator, cfg Config, rec Recorder) *Assistant {
	cfg.InitialBackoff = time.Millisecond
	a := New(gen, cfg, rec)
	a.errLogger = log.New(io.Discard, "", 0)
	return a
}

func TestGetResponse(t *testing.T) {
	gen := &fakeGenerator{replies: []func(string) (string, error){reply("  Results are announced in August.\n")}}
	var rec outcomes
	a := newTestAssistant(gen, Config{}, &rec)

	got := a.GetResponse(context.Background(), "When are results announced?")

	assert.Equal(t, "Results are announced in August.", got)
	assert.Equal(t, []call{{DefaultModel, "When are results announced?"}}, gen.calls)
	assert.Equal(t, outcomes{"answered"}, rec)
}

func TestEmptyMessageSkipsTheAPI(t *testing.T) {
	gen := &fakeGenerator{}
	a := newTestAssistant(gen, Config{}, nil)

	assert.Equal(t, MsgEmpty, a.GetResponse(context.Background(), "   "))
	assert.Empty(t, gen.calls)
}

func TestWithoutGeneratorReportsNotConfigured(t *testing.T) {
	var rec outcomes
	a := newTestAssistant(nil, Config{}, &rec)

	assert.Equal(t, MsgNotConfigured, a.GetResponse(context.Background(), "hello"))
	assert.Equal(t, outcomes{"unconfigured"}, rec)
}

func TestRateLimitIsRetried(t *testing.T) {
	gen := &fakeGenerator{replies: []func(string) (string, error){
		fail("Error 429, Message: Resource has been exhausted"),
		reply("ok"),
	}}
	a := newTestAssistant(gen, Config{}, nil)

	assert.Equal(t, "ok", a.GetResponse(context.Background(), "hi"))
	assert.Len(t, gen.calls, 2)
}

func TestMissingModelFallsBack(t *testing.T) {
	gen := &fakeGenerator{replies: []func(string) (string, error){
		func(model string) (string, error) {
			if model == "gemini-retired" {
				return "", errors.New("Error 404, Message: model not found")
			}
			return "from " + model, nil
		},
	}}
	a := newTestAssistant(gen, Config{Model: "gemini-retired", FallbackModels: []string{"gemini-2.5-flash-lite"}}, nil)

	assert.Equal(t, "from gemini-2.5-flash-lite", a.GetResponse(context.Background(), "hi"))
	assert.Len(t, gen.calls, 2)
}

func TestPermanentFailureBecomesMessage(t *testing.T) {
	gen := &fakeGenerator{replies: []func(string) (string, error){fail("Error 400, Message: API key not valid")}}
	var rec outcomes
	a := newTestAssistant(gen, Config{FallbackModels: []string{"gemini-2.5-flash-lite"}}, &rec)

	assert.Equal(t, MsgFailure, a.GetResponse(context.Background(), "hi"))
	assert.Len(t, gen.calls, 1)
	assert.Equal(t, outcomes{"failed"}, rec)
}

func TestRetriesAreBounded(t *testing.T) {
	gen := &fakeGenerator{replies: []func(string) (string, error){fail("503 service unavailable")}}
	a := newTestAssistant(gen, Config{MaxRetries: 2}, nil)

	assert.Equal(t, MsgFailure, a.GetResponse(context.Background(), "hi"))
	assert.Len(t, gen.calls, 2)
}

func TestNewGeminiGeneratorRequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "", SystemInstruction)
	assert.Error(t, err)
}
