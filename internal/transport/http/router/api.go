package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SharkyKing/EduSpace/internal/core/auth"
	"github.com/SharkyKing/EduSpace/internal/core/cache"
	"github.com/SharkyKing/EduSpace/internal/core/config"
	"github.com/SharkyKing/EduSpace/internal/domain"
	"github.com/SharkyKing/EduSpace/internal/repo"
	"github.com/SharkyKing/EduSpace/internal/service"
	"github.com/SharkyKing/EduSpace/internal/transport/http/handler"
	mdw "github.com/SharkyKing/EduSpace/internal/transport/http/middleware"
)

// NewAPIEngine 用户端引擎：公开的注册/登录/浏览 + 鉴权的发帖/评论/投票，
// 参考数据写操作只留给管理员角色。
func NewAPIEngine(cfg *config.Config, l *zap.Logger, db *gorm.DB, rdb *cache.Cache, codec *auth.Codec) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)
	if cfg.App.CORSOrigin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.App.CORSOrigin},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true, // refresh cookie
			MaxAge:           12 * time.Hour,
		}))
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	users := repo.NewUserRepo(db)
	roles := repo.NewRoleRepo(db)
	threads := repo.NewThreadRepo(db)
	comments := repo.NewCommentRepo(db)
	categories := repo.NewCategoryRepo(db)
	grades := repo.NewGradeRepo(db)

	accountSvc := service.NewAccountService(users, roles, codec)
	voteSvc := service.NewVoteService(threads)

	refreshTTL := time.Duration(cfg.JWT.RefreshTokenTTLDay) * 24 * time.Hour
	secureCookie := cfg.App.Env == "prod"

	accountH := handler.NewAccountHandler(accountSvc, refreshTTL, secureCookie)
	authH := handler.NewAuthHandler(codec)
	userH := handler.NewUserHandler(users, accountSvc)
	threadH := handler.NewThreadHandler(threads, categories, grades, voteSvc)
	commentH := handler.NewCommentHandler(comments, threads)
	categoryH := handler.NewCategoryHandler(categories, rdb)
	gradeH := handler.NewGradeHandler(grades, rdb)
	roleH := handler.NewRoleHandler(roles)

	bearer := mdw.AuthJWT(codec, 0)
	admin := mdw.AuthJWT(codec, domain.RoleAdminID)

	api := r.Group("/api")

	account := api.Group("/account")
	{
		account.POST("/login", accountH.Login)
		account.POST("/logout", bearer, accountH.Logout)
		account.GET("/role", bearer, accountH.Role)
	}

	api.GET("/auth", bearer, authH.Check)
	api.POST("/auth/refresh-token", mdw.RefreshJWT(codec), authH.Refresh(users))

	user := api.Group("/user")
	{
		user.POST("", userH.Register)
		user.GET("", bearer, userH.List)
		user.GET("/:id", bearer, mdw.ValidateNumber("id"), userH.Get)
		user.PATCH("/:id", bearer, mdw.ValidateNumber("id"), userH.Patch)
		user.DELETE("/:id", bearer, mdw.ValidateNumber("id"), userH.Delete)
	}

	th := api.Group("/threads")
	{
		th.GET("", threadH.List)
		th.POST("", bearer, threadH.Create)
		// 静态段 comment 优先于 :threadId
		th.GET("/comment/:commentId", mdw.ValidateNumber("commentId"), commentH.Get)
		th.GET("/:threadId", mdw.ValidateNumber("threadId"), threadH.Get)
		th.PATCH("/:threadId", bearer, mdw.ValidateNumber("threadId"), threadH.Patch)
		th.DELETE("/:threadId", bearer, mdw.ValidateNumber("threadId"), threadH.Delete)
		th.POST("/:threadId/vote", bearer, mdw.ValidateNumber("threadId"), threadH.Vote)
		th.GET("/:threadId/comment", mdw.ValidateNumber("threadId"), commentH.ListByThread)
		th.POST("/:threadId/comment", bearer, mdw.ValidateNumber("threadId"), commentH.Create)
		th.PATCH("/:threadId/comment/:commentId", bearer, mdw.ValidateNumber("threadId", "commentId"), commentH.Patch)
		th.DELETE("/:threadId/comment/:commentId", bearer, mdw.ValidateNumber("threadId", "commentId"), commentH.Delete)
	}

	mountRefData(api, bearer, admin, categoryH, gradeH, roleH)

	return r
}

// mountRefData 读挂 bearer，写挂 admin 角色；管理端引擎复用同一批 handler。
func mountRefData(g *gin.RouterGroup, bearer, admin gin.HandlerFunc, categoryH *handler.CategoryHandler, gradeH *handler.GradeHandler, roleH *handler.RoleHandler) {
	cat := g.Group("/categories")
	{
		cat.GET("", bearer, categoryH.List)
		cat.POST("", admin, categoryH.Create)
		cat.PATCH("/:id", admin, mdw.ValidateNumber("id"), categoryH.Patch)
		cat.DELETE("/:id", admin, mdw.ValidateNumber("id"), categoryH.Delete)
	}

	gr := g.Group("/grades")
	{
		gr.GET("", bearer, gradeH.List)
		gr.POST("", admin, gradeH.Create)
		gr.PATCH("/:id", admin, mdw.ValidateNumber("id"), gradeH.Patch)
		gr.DELETE("/:id", admin, mdw.ValidateNumber("id"), gradeH.Delete)
	}

	rl := g.Group("/roles")
	{
		rl.GET("", bearer, roleH.List)
		rl.GET("/:id", bearer, mdw.ValidateNumber("id"), roleH.Get)
		rl.POST("", admin, roleH.Create)
		rl.PATCH("/:id", admin, mdw.ValidateNumber("id"), roleH.Patch)
		rl.DELETE("/:id", admin, mdw.ValidateNumber("id"), roleH.Delete)
	}
}
