// Package parse structures task lists out of language-model output.
//
// Model responses are rarely clean JSON: they arrive wrapped in prose,
// fenced in markdown, or degrade into numbered bullet lists. The parser
// works through progressively looser strategies and reports which one
// succeeded so callers can log drift in provider behavior
package parse

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Tier identifies the parsing strategy that produced a result
type Tier string

const (
	// TierStrict means the whole payload was a valid JSON array
	TierStrict Tier = "strict"
	// TierSpan means a JSON array was extracted out of surrounding prose
	TierSpan Tier = "span"
	// TierObject means a single JSON object was extracted
	TierObject Tier = "object"
	// TierHeuristic means tasks were recovered from list-like plain text
	TierHeuristic Tier = "heuristic"
	// TierNone means nothing could be recovered
	TierNone Tier = "none"
)

// Candidate is one task as the model described it, before any
// directory resolution or persistence
type Candidate struct {
	Title        string
	Description  string
	AssigneeName string
	DuePhrase    string
	Priority     string
	Reasoning    string
	Confidence   float64
	HasConf      bool
}

// markerRe matches "1." / "2)" / "- " / "* " / "Task:" style list leads
var markerRe = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*]|[Tt]ask\b[:.]?)\s*`)

// Tasks extracts task candidates from a raw model response.
// An empty slice with TierNone is a valid outcome, not an error:
// the model may legitimately have found no tasks
func Tasks(raw string) ([]Candidate, Tier) {
	raw = stripFences(raw)
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, TierNone
	}

	// tier 1: the whole payload is the array
	if v := gjson.Parse(trimmed); v.IsArray() && gjson.Valid(trimmed) {
		if out := fromArray(v); len(out) > 0 {
			return out, TierStrict
		}
	}

	// tier 2: array buried in prose
	if span := spanOf(trimmed, '[', ']'); span != "" && gjson.Valid(span) {
		if v := gjson.Parse(span); v.IsArray() {
			if out := fromArray(v); len(out) > 0 {
				return out, TierSpan
			}
		}
	}

	// tier 2b: a lone object buried in prose
	if span := spanOf(trimmed, '{', '}'); span != "" && gjson.Valid(span) {
		if v := gjson.Parse(span); v.IsObject() {
			if c, ok := fromObject(v); ok {
				return []Candidate{c}, TierObject
			}
		}
	}

	// tier 3: numbered or bulleted plain text
	if out := fromLines(trimmed); len(out) > 0 {
		return out, TierHeuristic
	}

	return nil, TierNone
}

// fromArray maps each object element into a Candidate
func fromArray(v gjson.Result) []Candidate {
	var out []Candidate
	v.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		if c, ok := fromObject(item); ok {
			out = append(out, c)
		}
		return true
	})
	return out
}

// fromLines recovers tasks from list-shaped text. A line starting with a
// list marker opens a new task; indented followup lines accrete into its
// description
func fromLines(s string) []Candidate {
	var out []Candidate
	var cur *Candidate

	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := markerRe.FindString(line); m != "" {
			title := strings.TrimSpace(line[len(m):])
			if title == "" {
				continue
			}
			out = append(out, Candidate{Title: title})
			cur = &out[len(out)-1]
			continue
		}
		if cur != nil {
			extra := strings.TrimSpace(line)
			if cur.Description == "" {
				cur.Description = extra
			} else {
				cur.Description += " " + extra
			}
		}
	}
	return out
}

// spanOf returns the outermost open..close slice of s, or ""
func spanOf(s string, open, close byte) string {
	i := strings.IndexByte(s, open)
	if i < 0 {
		return ""
	}
	j := strings.LastIndexByte(s, close)
	if j <= i {
		return ""
	}
	return s[i : j+1]
}

// stripFences removes markdown code fences around a payload
func stripFences(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return s
	}
	t = strings.TrimPrefix(t, "```")
	// drop a language hint like "json"
	if nl := strings.IndexByte(t, '\n'); nl >= 0 {
		first := strings.TrimSpace(t[:nl])
		if len(first) <= 10 && !strings.ContainsAny(first, "{}[]") {
			t = t[nl+1:]
		}
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}
