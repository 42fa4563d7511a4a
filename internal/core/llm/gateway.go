// Package llm wraps the transcription and chat-completion provider behind
// a retrying gateway with category-based failure classification
package llm

import (
	"context"
	"strings"

	perr "taskpulse/internal/platform/errors"
	"taskpulse/internal/platform/logger"

	"taskpulse/internal/core/parse"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/tidwall/gjson"
)

// Config configures the provider connection
type Config struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	AudioModel string
}

// ExtractionContext bounds what the model sees about the directory
type ExtractionContext struct {
	People []PersonRef
}

// PersonRef is the directory projection given to the model
type PersonRef struct {
	ID   string
	Name string
	Role string
}

// PredictionContext is the rendered person/history view for prediction
type PredictionContext struct {
	PersonSummary string
	HistoryText   string
}

// Insight is one category of productivity analysis
type Insight struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
}

// Gateway is the retrying client over the model provider.
// The chat and transcribe function fields are seams for tests
type Gateway struct {
	log        logger.Logger
	chatModel  string
	audioModel string

	chatFn       func(ctx context.Context, system, user string, temperature float64) (string, error)
	transcribeFn func(ctx context.Context, path string) (text, rawJSON string, err error)
}

// New builds a Gateway talking to the real provider.
// SDK-internal retries are disabled: the gateway owns the retry budget
func New(cfg Config, log logger.Logger) *Gateway {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	api := openai.NewClient(opts...)

	g := &Gateway{
		log:        log,
		chatModel:  cfg.ChatModel,
		audioModel: cfg.AudioModel,
	}
	if g.chatModel == "" {
		g.chatModel = string(openai.ChatModelGPT4o)
	}
	if g.audioModel == "" {
		g.audioModel = string(openai.AudioModelWhisper1)
	}

	g.chatFn = func(ctx context.Context, system, user string, temperature float64) (string, error) {
		resp, err := api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(g.chatModel),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			},
			Temperature: openai.Float(temperature),
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", perr.MalformedResponsef("provider returned no choices")
		}
		return resp.Choices[0].Message.Content, nil
	}
	g.transcribeFn = func(ctx context.Context, path string) (string, string, error) {
		return g.callWhisper(ctx, api, path)
	}
	return g
}

// chat runs one chat completion under the retry policy
func (g *Gateway) chat(ctx context.Context, op, system, user string, temperature float64) (string, error) {
	var content string
	err := g.withRetry(ctx, op, func(ctx context.Context) error {
		var err error
		content, err = g.chatFn(ctx, system, user, temperature)
		return err
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// ExtractTasks asks the model for action items in text and structures the
// reply. An empty candidate list is a valid outcome
func (g *Gateway) ExtractTasks(ctx context.Context, text string, ec ExtractionContext) ([]parse.Candidate, parse.Tier, error) {
	content, err := g.chat(ctx, "extract_tasks", extractSystemPrompt, extractUserMessage(text, ec), 0.3)
	if err != nil {
		return nil, parse.TierNone, err
	}
	cands, tier := parse.Tasks(content)
	return cands, tier, nil
}

// PredictTasks asks the model for likely upcoming tasks.
// Some models wrap the array in {"tasks": [...]}; unwrap before parsing
func (g *Gateway) PredictTasks(ctx context.Context, pc PredictionContext) ([]parse.Candidate, parse.Tier, error) {
	content, err := g.chat(ctx, "predict_tasks", predictSystemPrompt, predictUserMessage(pc), 0.5)
	if err != nil {
		return nil, parse.TierNone, err
	}
	if inner := gjson.Get(content, "tasks"); inner.IsArray() {
		content = inner.Raw
	}
	cands, tier := parse.Tasks(content)
	return cands, tier, nil
}

// AnalyzeTasks returns productivity insights keyed by category
func (g *Gateway) AnalyzeTasks(ctx context.Context, tasksText string) (map[string]Insight, error) {
	content, err := g.chat(ctx, "analyze_tasks", analyzeSystemPrompt, analyzeUserMessage(tasksText), 0.3)
	if err != nil {
		return nil, err
	}

	obj := gjson.Parse(content)
	if !obj.IsObject() {
		if span := objectSpan(content); span != "" {
			obj = gjson.Parse(span)
		}
	}
	if !obj.IsObject() {
		return nil, perr.MalformedResponsef("analysis response is not a JSON object")
	}

	out := make(map[string]Insight)
	obj.ForEach(func(key, val gjson.Result) bool {
		if !val.IsObject() {
			return true
		}
		out[key.String()] = Insight{
			Description: val.Get("description").String(),
			Confidence:  val.Get("confidence").Float(),
		}
		return true
	})
	return out, nil
}

// CorrectTranscript asks the model to repair a low-confidence transcript.
// The caller decides whether to fall back to the original on failure
func (g *Gateway) CorrectTranscript(ctx context.Context, transcript string, confidence float64) (string, error) {
	system := "You clean up inaccurate meeting transcriptions."
	return g.chat(ctx, "correct_transcript", system, correctionPrompt(transcript, confidence), 0.3)
}

// objectSpan returns the outermost {...} slice of s when valid
func objectSpan(s string) string {
	i := strings.IndexByte(s, '{')
	j := strings.LastIndexByte(s, '}')
	if i < 0 || j <= i {
		return ""
	}
	span := s[i : j+1]
	if !gjson.Valid(span) {
		return ""
	}
	return span
}
