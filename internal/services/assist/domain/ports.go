package domain

import "context"

// ServicePort is the interface implemented by the assist service
type ServicePort interface {
	ProcessAudio(ctx context.Context, in AudioInput) (Proposal, error)
	Predict(ctx context.Context, personID string) ([]PredictedTask, error)
	Insights(ctx context.Context, personID, timeframe string) (InsightReport, error)
	SaveTasks(ctx context.Context, personID string, items []SaveTaskItem) (SaveResult, error)
	SavePrediction(ctx context.Context, personID string, p PredictedTask) (SavedPrediction, error)
	ActivePredictions(ctx context.Context, personID string) ([]SavedPrediction, error)
}
