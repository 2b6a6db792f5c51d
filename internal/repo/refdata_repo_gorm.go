package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SharkyKing/EduSpace/internal/domain"
)

// Category 与 Grade 形状相同，分开实现保持接口清晰。

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	err := r.db.WithContext(ctx).Order("id").Find(&cats).Error
	return cats, err
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	var cat domain.Category
	err := r.db.WithContext(ctx).First(&cat, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cat, err
}

func (r *CategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CategoryRepo) Rename(ctx context.Context, id uint, name string) (*domain.Category, error) {
	cat, err := r.FindByID(ctx, id)
	if err != nil || cat == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(cat).Update("category_name", name).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type GradeRepo struct{ db *gorm.DB }

func NewGradeRepo(db *gorm.DB) *GradeRepo { return &GradeRepo{db: db} }

func (r *GradeRepo) List(ctx context.Context) ([]domain.Grade, error) {
	var grades []domain.Grade
	err := r.db.WithContext(ctx).Order("id").Find(&grades).Error
	return grades, err
}

func (r *GradeRepo) FindByID(ctx context.Context, id uint) (*domain.Grade, error) {
	var g domain.Grade
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &g, err
}

func (r *GradeRepo) Create(ctx context.Context, g *domain.Grade) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GradeRepo) Rename(ctx context.Context, id uint, name string) (*domain.Grade, error) {
	g, err := r.FindByID(ctx, id)
	if err != nil || g == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(g).Update("grade_name", name).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func (r *GradeRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Grade{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
