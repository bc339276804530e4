package repositories

import (
	"errors"

	"gorm.io/gorm"

	"intellidoc/internal/models"
)

type RunRepository interface {
	Create(run *models.Run) error
	Latest() (*models.Run, error)
	ListRecent(limit int) ([]models.Run, error)
}

type runRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) RunRepository {
	return &runRepository{db: db}
}

func (r *runRepository) Create(run *models.Run) error {
	return r.db.Create(run).Error
}

func (r *runRepository) Latest() (*models.Run, error) {
	var run models.Run
	res := r.db.Order("created_at desc").Take(&run)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, res.Error
	}
	return &run, nil
}

func (r *runRepository) ListRecent(limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []models.Run
	res := r.db.Order("created_at desc").Limit(limit).Find(&runs)
	if res.Error != nil {
		return nil, res.Error
	}
	return runs, nil
}
