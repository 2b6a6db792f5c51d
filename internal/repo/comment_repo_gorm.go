package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SharkyKing/EduSpace/internal/domain"
)

type CommentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) ListByThread(ctx context.Context, threadID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("thread_id = ?", threadID).
		Order("created_at").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepo) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.WithContext(ctx).Preload("User").First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CommentRepo) FindInThread(ctx context.Context, id, threadID uint) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.WithContext(ctx).First(&c, "id = ? AND thread_id = ?", id, threadID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommentRepo) UpdateText(ctx context.Context, id uint, text string) (*domain.Comment, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(c).Update("comment_text", text).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommentRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
