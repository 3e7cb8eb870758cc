package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coursehub/config"
	"coursehub/internal/api/handler"
	"coursehub/internal/api/middleware"
	"coursehub/pkg/redis"
)

// 匯入与同步都触碰外部资源，窗口限流比全局更紧
const (
	importRateLimit  = 10
	importRateWindow = time.Minute
	syncRateLimit    = 6
	syncRateWindow   = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(16 << 20)) // CSV 上传留足余量

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 课程模块
		courses := v1.Group("/courses")
		{
			courses.POST("/import", middleware.RateLimit(rdb, importRateLimit, importRateWindow), h.Course.ImportCourses)
			courses.GET("", h.Course.ListCourses)
			courses.GET("/:id", h.Course.GetCourse)
			courses.GET("/:id/sessions", h.Course.ListCourseSessions)
			courses.GET("/:id/export", h.Export.ExportCourseSessions)
			courses.DELETE("/:id", h.Course.DeleteCourse)
		}

		// 学期模块
		semesters := v1.Group("/semesters")
		{
			semesters.GET("", h.Semester.ListSemesters)
			semesters.GET("/:year/:term", h.Semester.GetSemester)
			semesters.PUT("", h.Semester.UpsertSemester)
			semesters.POST("/sync", middleware.RateLimit(rdb, syncRateLimit, syncRateWindow), h.Semester.SyncSemesters)
		}
	}

	return r
}
