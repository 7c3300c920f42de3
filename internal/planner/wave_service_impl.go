package planner

import (
	"context"
	"fmt"

	"github.com/evanmoray/cadence/internal/domain"
	"github.com/evanmoray/cadence/internal/repository"
	"github.com/google/uuid"
)

type waveService struct {
	waves repository.WaveRepo
}

func NewWaveService(waves repository.WaveRepo) WaveService {
	return &waveService{waves: waves}
}

func (s *waveService) Create(ctx context.Context, w *domain.Wave) error {
	if w.Name == "" {
		return fmt.Errorf("wave name must not be empty")
	}
	if w.StartHour < 0 || w.EndHour > 24 || w.StartHour >= w.EndHour {
		return fmt.Errorf("invalid wave hours %d-%d", w.StartHour, w.EndHour)
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return s.waves.Create(ctx, w)
}

func (s *waveService) List(ctx context.Context) ([]*domain.Wave, error) {
	return s.waves.List(ctx)
}
