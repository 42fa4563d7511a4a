package service

import (
	"context"
	"fmt"
	"strings"

	"taskpulse/internal/core/llm"
	perr "taskpulse/internal/platform/errors"
	ddom "taskpulse/internal/services/directory/domain"
	tdom "taskpulse/internal/services/tasks/domain"
)

// extractionContext gathers the requester and up to colleagueLimit org
// colleagues as assignee candidates. A missing requester yields an empty
// context and extraction still proceeds
func (s *Svc) extractionContext(ctx context.Context, requesterID string) (ddom.Person, llm.ExtractionContext) {
	var ec llm.ExtractionContext

	requester, err := s.directory.GetPerson(ctx, requesterID)
	if err != nil {
		if !perr.IsCode(err, perr.ErrorCodeNotFound) {
			s.log.Warn().Err(err).Str("person_id", requesterID).Msg("requester lookup failed")
		}
		return ddom.Person{}, ec
	}

	ec.People = append(ec.People, llm.PersonRef{ID: requester.ID, Name: requester.Name, Role: requester.Role})

	colleagues, err := s.directory.ListOrgPeople(ctx, requester.OrgID, requester.ID, colleagueLimit)
	if err != nil {
		s.log.Warn().Err(err).Msg("colleague lookup failed, extracting with requester only")
		return requester, ec
	}
	for _, p := range colleagues {
		ec.People = append(ec.People, llm.PersonRef{ID: p.ID, Name: p.Name, Role: p.Role})
	}
	return requester, ec
}

// predictionContext renders a person summary and their recent history
func (s *Svc) predictionContext(ctx context.Context, person ddom.Person) (llm.PredictionContext, error) {
	teams, err := s.directory.TeamsFor(ctx, person.ID)
	if err != nil {
		return llm.PredictionContext{}, err
	}

	history, err := s.tasks.ListByAssignee(ctx, person.ID, historyLimit)
	if err != nil {
		return llm.PredictionContext{}, err
	}

	return llm.PredictionContext{
		PersonSummary: personSummary(person, teams),
		HistoryText:   historyText(history),
	}, nil
}

func personSummary(p ddom.Person, teams []ddom.Team) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", p.Name)
	if p.Role != "" {
		fmt.Fprintf(&sb, "Role: %s\n", p.Role)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}
	if len(teams) > 0 {
		names := make([]string, 0, len(teams))
		for _, t := range teams {
			names = append(names, t.Name)
		}
		fmt.Fprintf(&sb, "Teams: %s\n", strings.Join(names, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// historyText renders tasks one per line, newest first as stored
func historyText(tasks []tdom.Task) string {
	var sb strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&sb, "- %s (status: %s, priority: %s", t.Title, t.Status, t.Priority)
		if t.DueDate != nil {
			fmt.Fprintf(&sb, ", due: %s", t.DueDate.Format("2006-01-02"))
		}
		if t.CompletedAt != nil {
			fmt.Fprintf(&sb, ", completed: %s", t.CompletedAt.Format("2006-01-02"))
		}
		sb.WriteString(")\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
