package llm

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestTranscribeParsesVerbosePayloadAndCleansUp(t *testing.T) {
	var seenPath string
	g := &Gateway{
		log: zerolog.Nop(),
		transcribeFn: func(_ context.Context, path string) (string, string, error) {
			seenPath = path
			if _, err := os.Stat(path); err != nil {
				t.Fatalf("temp file missing during call: %v", err)
			}
			raw := `{"text":"hello team","language":"en","duration":3.5,` +
				`"segments":[{"start":0,"end":1.5,"text":"hello","confidence":0.9},` +
				`{"start":1.5,"end":3.5,"text":"team","confidence":0.7}]}`
			return "hello team", raw, nil
		},
	}

	res, err := g.Transcribe(context.Background(), []byte("fake-audio"), "standup.mp3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "hello team" || res.Language != "en" || res.Duration != 3.5 {
		t.Fatalf("result = %+v", res)
	}
	if len(res.Segments) != 2 {
		t.Fatalf("segments = %+v", res.Segments)
	}
	if math.Abs(res.Confidence-0.8) > 1e-9 {
		t.Fatalf("confidence = %v", res.Confidence)
	}
	if _, err := os.Stat(seenPath); !os.IsNotExist(err) {
		t.Fatalf("temp file not removed: %v", err)
	}
}

func TestTranscribeRemovesTempFileOnFailure(t *testing.T) {
	var seenPath string
	g := &Gateway{
		log: zerolog.Nop(),
		transcribeFn: func(_ context.Context, path string) (string, string, error) {
			seenPath = path
			return "", "", os.ErrPermission
		},
	}

	if _, err := g.Transcribe(context.Background(), []byte("x"), "a.wav"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(seenPath); !os.IsNotExist(err) {
		t.Fatalf("temp file not removed after failure: %v", err)
	}
}

func TestFromVerboseJSONDefaults(t *testing.T) {
	res := fromVerboseJSON("just text", "")
	if res.Confidence != defaultConfidence {
		t.Fatalf("confidence = %v", res.Confidence)
	}
	res = fromVerboseJSON("t", `{"text":"t","segments":[]}`)
	if res.Confidence != defaultConfidence {
		t.Fatalf("confidence with empty segments = %v", res.Confidence)
	}
}

func TestSegmentConfidenceFromLogprob(t *testing.T) {
	res := fromVerboseJSON("t", `{"segments":[{"text":"t","avg_logprob":-0.2}]}`)
	want := math.Exp(-0.2)
	if math.Abs(res.Segments[0].Confidence-want) > 1e-9 {
		t.Fatalf("confidence = %v want %v", res.Segments[0].Confidence, want)
	}
}
