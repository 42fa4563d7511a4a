package service

import (
	"context"
	"time"

	"taskpulse/internal/core/datephrase"
	"taskpulse/internal/core/parse"
	pstrings "taskpulse/internal/platform/strings"

	adom "taskpulse/internal/services/assist/domain"
	ddom "taskpulse/internal/services/directory/domain"
	tdom "taskpulse/internal/services/tasks/domain"
	tsvc "taskpulse/internal/services/tasks/service"
)

// resolveCandidates turns parser candidates into reviewable proposals.
// Assignee mentions resolve by case-insensitive substring match within the
// requester's organization; unmatched or empty mentions default to the
// requester. Due phrases that do not resolve are preserved verbatim
func (s *Svc) resolveCandidates(
	ctx context.Context, cands []parse.Candidate, requester ddom.Person,
) []adom.ProposedTask {
	out := make([]adom.ProposedTask, 0, len(cands))
	now := s.clock.Now()

	for _, c := range cands {
		p := adom.ProposedTask{
			Title:        pstrings.TruncateRunes(pstrings.CollapseSpace(c.Title), tsvc.TitleMax),
			Description:  c.Description,
			AssigneeID:   requester.ID,
			AssigneeName: requester.Name,
			Priority:     tdom.ParsePriority(c.Priority),
			DuePhrase:    c.DuePhrase,
			Confidence:   saveConfidence,
		}
		if c.HasConf {
			p.Confidence = clamp01(c.Confidence)
		}

		if c.AssigneeName != "" && requester.OrgID != "" {
			match, ok, err := s.directory.FindByName(ctx, requester.OrgID, c.AssigneeName)
			if err != nil {
				s.log.Warn().Err(err).Str("mention", c.AssigneeName).Msg("assignee lookup failed")
			} else if ok {
				p.AssigneeID = match.ID
				p.AssigneeName = match.Name
			}
		}

		if c.DuePhrase != "" {
			if due, ok := datephrase.Resolve(c.DuePhrase, now); ok {
				p.DueDate = &due
			}
		}

		out = append(out, p)
	}
	return out
}

// resolveDue handles the save path, where phrases and absolute dates both appear
func (s *Svc) resolveDue(phrase string) (time.Time, bool) {
	return datephrase.Resolve(phrase, s.clock.Now())
}
