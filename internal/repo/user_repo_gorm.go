package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SharkyKing/EduSpace/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepo) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &u, err
}

func (r *UserRepo) ListExcept(ctx context.Context, callerID uint) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select("users.*, roles.role_name AS role_name").
		Joins("LEFT JOIN roles ON roles.id = users.role_id").
		Where("users.id <> ?", callerID).
		Scan(&users).Error
	return users, err
}

func (r *UserRepo) Update(ctx context.Context, id uint, upd domain.UserUpdate) (*domain.User, error) {
	fields := map[string]any{}
	if upd.FirstName != "" {
		fields["first_name"] = upd.FirstName
	}
	if upd.LastName != "" {
		fields["last_name"] = upd.LastName
	}
	if upd.Email != "" {
		fields["email"] = upd.Email
	}
	if upd.Username != "" {
		fields["username"] = upd.Username
	}
	existing, err := r.FindByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *UserRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
