package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"intellidoc/internal/models"
	"intellidoc/internal/repositories"
)

// RunService keeps the history of scans so the chat interface can pick up
// the latest findings without a rescan.
type RunService interface {
	Record(run *models.Run) (*models.Run, error)
	Latest() (*models.Run, error)
	ListRecent(limit int) ([]models.Run, error)
}

type runService struct {
	repo repositories.RunRepository
}

func NewRunService(repo repositories.RunRepository) RunService {
	return &runService{repo: repo}
}

func (s *runService) Record(run *models.Run) (*models.Run, error) {
	if run == nil {
		return nil, fmt.Errorf("run is required")
	}
	run.Target = strings.TrimSpace(run.Target)
	if run.Target == "" {
		return nil, fmt.Errorf("run target is required")
	}
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	}
	if err := s.repo.Create(run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *runService) Latest() (*models.Run, error) {
	return s.repo.Latest()
}

func (s *runService) ListRecent(limit int) ([]models.Run, error) {
	return s.repo.ListRecent(limit)
}
