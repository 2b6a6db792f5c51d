package domain

import (
	"context"
	"time"
)

// User 对应原 EduSpace 的账号模型；字段名保持客户端已依赖的 JSON 键。
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"size:64;not null" json:"FirstName"`
	LastName     string    `gorm:"size:64;not null" json:"LastName"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"Email"`
	Username     string    `gorm:"uniqueIndex;size:64;not null" json:"Username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	RoleID       uint      `gorm:"not null;index" json:"RoleID"`
	// 只读：联表查询填充，不落表、不参与写入
	RoleName     string    `gorm:"->;-:migration" json:"RoleName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoleName  string    `gorm:"uniqueIndex;size:100;not null" json:"RoleName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Role) TableName() string { return "roles" }

// UserUpdate carries the optional profile fields a PATCH may set.
type UserUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
}

func (u UserUpdate) Empty() bool {
	return u.FirstName == "" && u.LastName == "" && u.Email == "" && u.Username == ""
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	// ListExcept 返回除 caller 外的全部用户（带 RoleName）
	ListExcept(ctx context.Context, callerID uint) ([]User, error)
	Update(ctx context.Context, id uint, upd UserUpdate) (*User, error)
	Delete(ctx context.Context, id uint) error
}

type RoleRepository interface {
	List(ctx context.Context) ([]Role, error)
	FindByID(ctx context.Context, id uint) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	Create(ctx context.Context, r *Role) error
	Rename(ctx context.Context, id uint, name string) (*Role, error)
	Delete(ctx context.Context, id uint) error
	// CountUsers 统计仍引用该角色的用户数，删除前校验用
	CountUsers(ctx context.Context, roleID uint) (int64, error)
}
