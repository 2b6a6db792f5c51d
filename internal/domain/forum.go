package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrThreadNotFound = errors.New("thread not found")
	ErrInvalidVote    = errors.New("vote must be 1 or -1")
)

type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CategoryName string    `gorm:"uniqueIndex;size:100;not null" json:"CategoryName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }

type Grade struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GradeName string    `gorm:"uniqueIndex;size:100;not null" json:"GradeName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Grade) TableName() string { return "grades" }

type Thread struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ThreadName     string    `gorm:"size:191;not null" json:"ThreadName"`
	ThreadText     string    `gorm:"type:text;not null" json:"ThreadText"`
	CategoryID     uint      `gorm:"not null;index" json:"CategoryID"`
	GradeID        uint      `gorm:"not null;index" json:"GradeID"`
	UserID         uint      `gorm:"not null;index" json:"UserID"`
	RelevancyCount int       `gorm:"not null;default:0" json:"RelevancyCount"`
	Category       *Category `gorm:"foreignKey:CategoryID" json:"Category,omitempty"`
	Grade          *Grade    `gorm:"foreignKey:GradeID" json:"Grade,omitempty"`
	User           *User     `gorm:"foreignKey:UserID" json:"User,omitempty"`
	Comments       []Comment `gorm:"foreignKey:ThreadID" json:"Comments,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Thread) TableName() string { return "threads" }

// ThreadVote 每个 (thread, user) 至多一行，这是投票子系统的核心约束。
type ThreadVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ThreadID  uint      `gorm:"not null;uniqueIndex:idx_thread_user" json:"ThreadID"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_thread_user" json:"UserID"`
	Vote      int       `gorm:"not null" json:"Vote"` // +1 或 -1
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ThreadVote) TableName() string { return "thread_votes" }

type Comment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CommentText    string    `gorm:"size:500;not null" json:"CommentText"`
	ThreadID       uint      `gorm:"not null;index" json:"ThreadID"`
	UserID         uint      `gorm:"not null;index" json:"UserID"`
	RelevancyCount int       `gorm:"not null;default:0" json:"RelevancyCount"`
	User           *User     `gorm:"foreignKey:UserID" json:"User,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (Comment) TableName() string { return "comments" }

// ThreadFilter narrows the thread list; zero values mean "no filter".
type ThreadFilter struct {
	CategoryID uint
	GradeID    uint
	Search     string // LIKE over name and text
}

type ThreadUpdate struct {
	ThreadName string
	ThreadText string
	CategoryID uint
	GradeID    uint
}

type ThreadRepository interface {
	List(ctx context.Context, f ThreadFilter) ([]Thread, error)
	FindByID(ctx context.Context, id uint) (*Thread, error)
	Create(ctx context.Context, t *Thread) error
	// UpdateOwned/DeleteOwned 只改/删作者本人的贴，行不存在与非作者同样返回 (nil/false)
	UpdateOwned(ctx context.Context, id, userID uint, upd ThreadUpdate) (*Thread, error)
	DeleteOwned(ctx context.Context, id, userID uint) (bool, error)
	// CastVote runs the vote state machine in one transaction: no prior vote
	// applies ±1, same sign is a no-op, a flip swings the counter by ±2.
	CastVote(ctx context.Context, threadID, userID uint, vote int) (*Thread, *ThreadVote, error)
}

type CommentRepository interface {
	ListByThread(ctx context.Context, threadID uint) ([]Comment, error)
	FindByID(ctx context.Context, id uint) (*Comment, error)
	FindInThread(ctx context.Context, id, threadID uint) (*Comment, error)
	Create(ctx context.Context, c *Comment) error
	UpdateText(ctx context.Context, id uint, text string) (*Comment, error)
	Delete(ctx context.Context, id uint) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id uint) (*Category, error)
	Create(ctx context.Context, c *Category) error
	Rename(ctx context.Context, id uint, name string) (*Category, error)
	Delete(ctx context.Context, id uint) error
}

type GradeRepository interface {
	List(ctx context.Context) ([]Grade, error)
	FindByID(ctx context.Context, id uint) (*Grade, error)
	Create(ctx context.Context, g *Grade) error
	Rename(ctx context.Context, id uint, name string) (*Grade, error)
	Delete(ctx context.Context, id uint) error
}
