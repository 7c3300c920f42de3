package app

import "context"

type AnalyzeUseCase interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)
}
