package llm

import (
	"fmt"
	"strings"
)

const extractSystemPrompt = `You are an AI assistant that extracts actionable tasks from meeting transcripts or notes.
For each task you identify, extract the following information:
- Task title (clear and concise)
- Assigned person (if mentioned)
- Due date (if mentioned)
- Priority (if mentioned)
- Description with any relevant details

Format each task as a JSON object. Return only a valid JSON array of these task objects.
DO NOT include any explanation, comments, or markdown. Example format:
[
  {
    "title": "Prepare slides",
    "assignee": "David",
    "description": "Create a slide deck for the weekly meeting",
    "due_date": "2025-04-30",
    "priority": "high"
  }
]`

const predictSystemPrompt = `You are an AI assistant that predicts upcoming tasks for people based on their role,
responsibilities, and task history. Analyze patterns in their previous tasks to predict
new tasks they might need to complete, including recurring tasks, follow-ups, and
logical next steps based on their work patterns.

For each predicted task, include:
- Task title
- Brief description
- Estimated due date
- Priority level
- Reasoning explaining why this task is predicted
- Confidence score (0.0-1.0) with one decimal place to indicate your confidence in this prediction

Format each task as a JSON object. Return only a valid JSON array of these task predictions.
DO NOT include any explanation, comments, or markdown. Example format:
[
  {
    "title": "Prepare slides",
    "description": "Create a slide deck for the weekly meeting",
    "due_date": "2025-04-30",
    "priority": "high",
    "reasoning": "A slide deck preceded each of the last three weekly meetings",
    "confidence": 0.8
  }
]`

const analyzeSystemPrompt = `You are an AI assistant that analyzes task data to identify patterns, bottlenecks,
efficiency improvements, and other insights. Analyze the tasks provided to discover:

1. Time management patterns (when tasks are created vs completed)
2. Bottlenecks and delays in task completion
3. Task distribution and workload balance
4. Priority patterns and their impact on completion
5. Efficiency recommendations

Format your response as a JSON object with keys for each category of insight.
Each insight must include a description and a confidence level (0.0-1.0).
Return only valid JSON. DO NOT include any explanation, comments, or markdown. Example format:
{
  "time_management_patterns": {
    "description": "Most tasks are created early in the week but completed close to deadlines.",
    "confidence": 0.85
  },
  "efficiency_recommendations": {
    "description": "Consider balancing workload across team members.",
    "confidence": 0.88
  }
}`

// extractUserMessage prepends directory context to the transcript so the
// model can resolve names to known people
func extractUserMessage(text string, ec ExtractionContext) string {
	if len(ec.People) == 0 {
		return text
	}
	var b strings.Builder
	b.WriteString("Here is some context about the people mentioned:\nPeople:\n")
	for _, p := range ec.People {
		role := p.Role
		if role == "" {
			role = "Unknown"
		}
		fmt.Fprintf(&b, "- %s (Role: %s)\n", p.Name, role)
	}
	b.WriteString("\n\nTranscript/Notes:\n")
	b.WriteString(text)
	return b.String()
}

// predictUserMessage renders the person and their rendered history block
func predictUserMessage(pc PredictionContext) string {
	var b strings.Builder
	b.WriteString("## Person Information\n")
	b.WriteString(pc.PersonSummary)
	b.WriteString("\n\n## Recent Task History\n")
	b.WriteString(pc.HistoryText)
	b.WriteString("\n\nBased on this information, predict what tasks this person is likely to need to complete " +
		"in the coming days and weeks. Consider recurring patterns, follow-ups to completed tasks, " +
		"and tasks that logically follow from their current work and role.")
	return b.String()
}

// analyzeUserMessage wraps the rendered task list
func analyzeUserMessage(tasksText string) string {
	return "Please analyze the following tasks to identify patterns and provide insights:\n\n" +
		tasksText +
		"\n\nFocus on practical, actionable insights that can help improve productivity and task management."
}

// correctionPrompt asks the model to repair a low-confidence transcript
func correctionPrompt(transcript string, confidence float64) string {
	return fmt.Sprintf(`The following is a potentially inaccurate transcription of a meeting.
Please fix any obvious errors, fill in [inaudible] parts if you can guess them contextually,
and make the text more coherent while preserving the meaning.
Reply with the corrected transcription only.

Original transcription (confidence: %.2f):
%s`, confidence, transcript)
}
