package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nickelcy/GradeManagement/config"
	"github.com/nickelcy/GradeManagement/internal/api/handler"
	"github.com/nickelcy/GradeManagement/internal/api/middleware"
	"github.com/nickelcy/GradeManagement/internal/model"
	"github.com/nickelcy/GradeManagement/pkg/jwt"
	"github.com/nickelcy/GradeManagement/pkg/redis"
)

// 请求体上限 1 MiB，成绩批量提交远小于该值
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口单独限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 学年模块
			years := authorized.Group("/years")
			{
				years.GET("", h.Year.ListYears)
				years.GET("/:id", h.Year.GetYear)
				years.GET("/:id/terms", h.Year.ListTerms)
				years.GET("/:id/calendar.ics", h.Year.ExportCalendar)
				years.POST("", middleware.RoleAuth(model.RoleAdmin), h.Year.CreateYear)
				years.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Year.UpdateYear)
			}

			// 学生模块（含成绩提交与学生×学年视图）
			students := authorized.Group("/students")
			{
				students.GET("", h.Student.ListStudents)
				students.GET("/:id", h.Student.GetStudent)
				students.POST("", middleware.RoleAuth(model.RoleAdmin), h.Student.CreateStudent)
				students.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Student.UpdateStudent)
				students.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Student.DeactivateStudent)

				students.GET("/:id/scores/:year", h.Score.GetStudentYearScores)
				students.POST("/:id/scores/:year/terms/:term", h.Score.UpsertScores)
				students.PUT("/:id/scores/:year/terms/:term", h.Score.UpsertScores)
			}

			// 班级模块（含班级×学期视图与导出）
			classrooms := authorized.Group("/classrooms")
			{
				classrooms.GET("/year-grade", h.Classroom.ListClassroomsByYearGrade)
				classrooms.GET("/teacher/:id", h.Classroom.GetClassroomByTeacher)
				classrooms.GET("/:id", h.Classroom.GetClassroom)
				classrooms.GET("/:id/students", h.Classroom.ListClassroomStudents)
				classrooms.POST("", middleware.RoleAuth(model.RoleAdmin), h.Classroom.CreateClassroom)
				classrooms.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Classroom.UpdateClassroom)

				classrooms.GET("/:id/scores", h.Score.GetClassTermScores)
				classrooms.GET("/:id/scores/export", h.Export.ExportClassScores)
			}

			// 教职工模块（仅管理员）
			staff := authorized.Group("/staff", middleware.RoleAuth(model.RoleAdmin))
			{
				staff.GET("", h.Staff.ListStaff)
				staff.GET("/:id", h.Staff.GetStaff)
				staff.POST("", h.Staff.CreateStaff)
				staff.PUT("/:id", h.Staff.UpdateStaff)
				staff.DELETE("/:id", h.Staff.DeactivateStaff)
			}

			// 科目模块
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.ListSubjectsByGrade)
				subjects.GET("/:id", h.Subject.GetSubject)
			}

			// 报表模块
			reports := authorized.Group("/reports")
			{
				reports.GET("/student", h.Report.GetStudentReport)
				reports.GET("/subject", h.Report.GetSubjectReport)
			}
		}
	}

	return r
}
