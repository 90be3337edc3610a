package repository

import (
	"context"
	"errors"
	"time"

	"postpilot/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for calendar posts.
type PostRepository interface {
	GetByIDForUser(ctx context.Context, id, userID uint) (*models.Post, error)
	ListByPlan(ctx context.Context, planID uint) ([]models.Post, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	ReplaceForPlan(ctx context.Context, planID uint, posts []models.Post) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// GetByIDForUser loads a post only if its plan belongs to the given user.
func (r *postRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Joins("JOIN plans ON plans.id = posts.plan_id").
		Where("posts.id = ? AND plans.user_id = ?", id, userID).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListByPlan(ctx context.Context, planID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("day ASC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// UpdateFields applies a partial update. Only the provided columns change;
// updated_at is always touched.
func (r *postRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post")
	}
	return nil
}

// ReplaceForPlan swaps the plan's posts for a fresh set atomically, so a
// failed regeneration never leaves the plan half-empty.
func (r *postRepository) ReplaceForPlan(ctx context.Context, planID uint, posts []models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", planID).Delete(&models.Post{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if len(posts) == 0 {
			return nil
		}
		for i := range posts {
			posts[i].PlanID = planID
		}
		if err := tx.Create(&posts).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
}
