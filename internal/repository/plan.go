package repository

import (
	"context"
	"errors"

	"postpilot/internal/models"

	"gorm.io/gorm"
)

// PlanRepository defines persistence operations for content plans. Every
// read and delete is scoped to the owning user; a plan belonging to someone
// else is reported as not found rather than forbidden.
type PlanRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Plan, error)
	GetByIDForUser(ctx context.Context, id, userID uint) (*models.Plan, error)
	GetByIDForUserWithPosts(ctx context.Context, id, userID uint) (*models.Plan, error)
	Create(ctx context.Context, plan *models.Plan) error
	DeleteForUser(ctx context.Context, id, userID uint) error
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository returns a new PlanRepository implementation.
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) ListByUser(ctx context.Context, userID uint) ([]models.Plan, error) {
	var plans []models.Plan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&plans).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return plans, nil
}

func (r *planRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Plan")
		}
		return nil, models.NewInternalError(err)
	}
	return &plan, nil
}

func (r *planRepository) GetByIDForUserWithPosts(ctx context.Context, id, userID uint) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("day ASC")
		}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Plan")
		}
		return nil, models.NewInternalError(err)
	}
	return &plan, nil
}

func (r *planRepository) Create(ctx context.Context, plan *models.Plan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteForUser removes the plan and its posts in one transaction.
func (r *planRepository) DeleteForUser(ctx context.Context, id, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Plan{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Plan")
		}
		if err := tx.Where("plan_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}
