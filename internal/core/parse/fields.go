package parse

import (
	"strings"

	"github.com/tidwall/gjson"
)

// alias groups the key spellings different prompts and models produce
// for the same field. gjson paths are case-sensitive, so capitalized
// variants the prompts have historically elicited are listed explicitly
var (
	titleKeys     = []string{"title", "task", "name"}
	descKeys      = []string{"description", "details", "desc"}
	assigneeKeys  = []string{"assignee", "assigned_to", "assigned_person", "Assigned_person", "owner"}
	dueKeys       = []string{"due_date", "due", "deadline", "estimated_due_date", "dueDate"}
	reasoningKeys = []string{"reasoning", "reason", "rationale"}
)

// fromObject maps one JSON object into a Candidate.
// ok is false when no usable title was present
func fromObject(v gjson.Result) (Candidate, bool) {
	var c Candidate

	c.Title = strings.TrimSpace(firstString(v, titleKeys))
	if c.Title == "" {
		return c, false
	}
	c.Description = strings.TrimSpace(firstString(v, descKeys))
	c.AssigneeName = strings.TrimSpace(firstString(v, assigneeKeys))
	c.DuePhrase = strings.TrimSpace(firstString(v, dueKeys))
	c.Reasoning = strings.TrimSpace(firstString(v, reasoningKeys))
	c.Priority = strings.TrimSpace(strings.ToLower(v.Get("priority").String()))

	// only a numeric confidence counts as present; a prose value like
	// "very likely" falls through to the caller's default
	if conf := v.Get("confidence"); conf.Type == gjson.Number {
		c.Confidence = conf.Float()
		c.HasConf = true
	}
	return c, true
}

// firstString probes keys in order and returns the first non-empty string value
func firstString(v gjson.Result, keys []string) string {
	for _, k := range keys {
		if r := v.Get(k); r.Exists() {
			if s := r.String(); s != "" && s != "null" {
				return s
			}
		}
	}
	return ""
}
