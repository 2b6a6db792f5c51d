package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SharkyKing/EduSpace/internal/core/auth"
	"github.com/SharkyKing/EduSpace/internal/core/cache"
	"github.com/SharkyKing/EduSpace/internal/domain"
	"github.com/SharkyKing/EduSpace/internal/repo"
	"github.com/SharkyKing/EduSpace/internal/service"
	"github.com/SharkyKing/EduSpace/internal/transport/http/handler"
	mdw "github.com/SharkyKing/EduSpace/internal/transport/http/middleware"
)

// NewAdminEngine 运维端引擎：/metrics + 用户管理 + 参考数据维护，
// 整个 /admin 分组统一要求管理员角色。
func NewAdminEngine(l *zap.Logger, db *gorm.DB, rdb *cache.Cache, codec *auth.Codec) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(100, 200),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := repo.NewUserRepo(db)
	roles := repo.NewRoleRepo(db)
	categories := repo.NewCategoryRepo(db)
	grades := repo.NewGradeRepo(db)

	accountSvc := service.NewAccountService(users, roles, codec)

	userH := handler.NewUserHandler(users, accountSvc)
	categoryH := handler.NewCategoryHandler(categories, rdb)
	gradeH := handler.NewGradeHandler(grades, rdb)
	roleH := handler.NewRoleHandler(roles)

	admin := r.Group("/admin")
	admin.Use(mdw.AuthJWT(codec, domain.RoleAdminID))

	user := admin.Group("/user")
	{
		user.GET("", userH.List)
		user.GET("/:id", mdw.ValidateNumber("id"), userH.Get)
		user.DELETE("/:id", mdw.ValidateNumber("id"), userH.Delete)
	}

	// 角色已在分组中间件校验过，这里挂空的占位守卫即可
	passthrough := func(c *gin.Context) { c.Next() }
	mountRefData(admin, passthrough, passthrough, categoryH, gradeH, roleH)

	return r
}
