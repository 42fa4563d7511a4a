package llm

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/tidwall/gjson"
	"github.com/youpy/go-wav"
)

// Segment is one timed slice of a transcription
type Segment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// TranscriptionResult is the immutable output of one audio submission
type TranscriptionResult struct {
	Text       string    `json:"text"`
	Segments   []Segment `json:"segments,omitempty"`
	Language   string    `json:"language,omitempty"`
	Confidence float64   `json:"confidence"`
	Duration   float64   `json:"duration"`
}

// defaultConfidence is assumed when the provider reports no segments
const defaultConfidence = 0.8

// Transcribe runs the audio through the transcription endpoint.
// The payload is spooled to a transient local file that is removed on
// every exit path
func (g *Gateway) Transcribe(ctx context.Context, audio []byte, filename string) (TranscriptionResult, error) {
	var res TranscriptionResult

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".mp3"
	}
	tmp, err := os.CreateTemp("", "taskpulse-audio-*"+ext)
	if err != nil {
		return res, err
	}
	path := tmp.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := tmp.Write(audio); err != nil {
		_ = tmp.Close()
		return res, err
	}
	if err := tmp.Close(); err != nil {
		return res, err
	}

	// container-derived duration, used when the provider omits it
	localDur := wavDuration(audio)

	var text, raw string
	err = g.withRetry(ctx, "transcribe", func(ctx context.Context) error {
		var err error
		text, raw, err = g.transcribeFn(ctx, path)
		return err
	})
	if err != nil {
		return res, err
	}

	res = fromVerboseJSON(text, raw)
	if res.Duration == 0 && localDur > 0 {
		res.Duration = localDur
	}
	return res, nil
}

// callWhisper is the real provider call behind the transcribe seam
func (g *Gateway) callWhisper(ctx context.Context, api openai.Client, path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = f.Close() }()

	tr, err := api.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model:          openai.AudioModel(g.audioModel),
		File:           f,
		ResponseFormat: openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return "", "", err
	}
	return tr.Text, tr.RawJSON(), nil
}

// fromVerboseJSON lifts the verbose provider payload into a result.
// Overall confidence is the mean of segment confidences, defaulting when
// the provider reports none
func fromVerboseJSON(text, raw string) TranscriptionResult {
	res := TranscriptionResult{Text: strings.TrimSpace(text)}
	if raw == "" {
		res.Confidence = defaultConfidence
		return res
	}

	v := gjson.Parse(raw)
	res.Language = v.Get("language").String()
	res.Duration = v.Get("duration").Float()

	var sum float64
	v.Get("segments").ForEach(func(_, seg gjson.Result) bool {
		s := Segment{
			Start: seg.Get("start").Float(),
			End:   seg.Get("end").Float(),
			Text:  strings.TrimSpace(seg.Get("text").String()),
		}
		s.Confidence = segmentConfidence(seg)
		sum += s.Confidence
		res.Segments = append(res.Segments, s)
		return true
	})

	if len(res.Segments) > 0 {
		res.Confidence = sum / float64(len(res.Segments))
	} else {
		res.Confidence = defaultConfidence
	}
	return res
}

// segmentConfidence prefers an explicit confidence field and otherwise
// derives one from the average token log-probability
func segmentConfidence(seg gjson.Result) float64 {
	if c := seg.Get("confidence"); c.Exists() {
		return clamp01(c.Float())
	}
	if lp := seg.Get("avg_logprob"); lp.Exists() {
		return clamp01(math.Exp(lp.Float()))
	}
	return defaultConfidence
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// wavDuration estimates duration for RIFF/WAVE payloads, 0 otherwise
func wavDuration(audio []byte) float64 {
	if len(audio) < 44 || !bytes.HasPrefix(audio, []byte("RIFF")) {
		return 0
	}
	format, err := wav.NewReader(bytes.NewReader(audio)).Format()
	if err != nil || format.ByteRate == 0 {
		return 0
	}
	return float64(len(audio)-44) / float64(format.ByteRate)
}
