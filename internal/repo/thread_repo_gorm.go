package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SharkyKing/EduSpace/internal/domain"
)

type ThreadRepo struct{ db *gorm.DB }

func NewThreadRepo(db *gorm.DB) *ThreadRepo { return &ThreadRepo{db: db} }

func (r *ThreadRepo) List(ctx context.Context, f domain.ThreadFilter) ([]domain.Thread, error) {
	q := r.db.WithContext(ctx).Model(&domain.Thread{}).
		Preload("Category").
		Preload("Grade").
		Preload("User").
		Preload("Comments").
		Preload("Comments.User")
	if f.CategoryID > 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.GradeID > 0 {
		q = q.Where("grade_id = ?", f.GradeID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("thread_name LIKE ? OR thread_text LIKE ?", like, like)
	}
	var threads []domain.Thread
	err := q.Order("created_at DESC").Find(&threads).Error
	return threads, err
}

func (r *ThreadRepo) FindByID(ctx context.Context, id uint) (*domain.Thread, error) {
	var t domain.Thread
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Grade").
		Preload("User").
		First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &t, err
}

func (r *ThreadRepo) Create(ctx context.Context, t *domain.Thread) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ThreadRepo) UpdateOwned(ctx context.Context, id, userID uint, upd domain.ThreadUpdate) (*domain.Thread, error) {
	var t domain.Thread
	err := r.db.WithContext(ctx).First(&t, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.ThreadName = upd.ThreadName
	t.ThreadText = upd.ThreadText
	t.CategoryID = upd.CategoryID
	t.GradeID = upd.GradeID
	if err := r.db.WithContext(ctx).Save(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ThreadRepo) DeleteOwned(ctx context.Context, id, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Thread{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CastVote 在一个事务里完成投票状态机与计数更新：
//   - 无历史投票 → 插入一行，relevancy += vote
//   - 同号重投   → 不变（幂等）
//   - 反号改投   → 改写该行，relevancy += 2*vote
//
// 计数用 relevancy_count = relevancy_count + ? 原子表达式更新，两个并发投票
// 不会互相覆盖；(thread_id, user_id) 唯一索引兜底同一用户的并发首投。
func (r *ThreadRepo) CastVote(ctx context.Context, threadID, userID uint, vote int) (*domain.Thread, *domain.ThreadVote, error) {
	var tv domain.ThreadVote
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&domain.Thread{}).Where("id = ?", threadID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return domain.ErrThreadNotFound
		}

		delta := 0
		err := tx.Where("thread_id = ? AND user_id = ?", threadID, userID).First(&tv).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			tv = domain.ThreadVote{ThreadID: threadID, UserID: userID, Vote: vote}
			if err := tx.Create(&tv).Error; err != nil {
				return err
			}
			delta = vote
		case err != nil:
			return err
		case tv.Vote == vote:
			// 同号重投，无操作
			return nil
		default:
			if err := tx.Model(&tv).Update("vote", vote).Error; err != nil {
				return err
			}
			tv.Vote = vote
			delta = 2 * vote
		}

		return tx.Model(&domain.Thread{}).Where("id = ?", threadID).
			UpdateColumn("relevancy_count", gorm.Expr("relevancy_count + ?", delta)).Error
	})
	if err != nil {
		return nil, nil, err
	}
	thread, err := r.FindByID(ctx, threadID)
	if err != nil {
		return nil, nil, err
	}
	return thread, &tv, nil
}
