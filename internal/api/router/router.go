package router

import (
	"regexp"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/social-feed/config"
	"github.com/d60-Lab/social-feed/internal/api/handler"
	"github.com/d60-Lab/social-feed/internal/middleware"
)

var handleRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// Setup 组装中间件链与全部路由
func Setup(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	// username 格式校验，绑定标签里用 `handle`
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
			return handleRe.MatchString(fl.Field().String())
		})
	}

	r := gin.New()
	r.Use(
		middleware.AccessLog(),
		middleware.Recovery(),
		gzip.Gzip(gzip.DefaultCompression),
		otelgin.Middleware("social-feed"),
	)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api", middleware.JWTAuth(cfg))

	posts := api.Group("/posts")
	{
		posts.POST("/create", h.CreatePost)
		posts.DELETE("/:id", h.DeletePost)
		posts.POST("/comment/:id", h.CommentOnPost)
		posts.POST("/like/:id", h.LikeUnlikePost)
		posts.GET("/all", h.AllPosts)
		posts.GET("/following", h.FollowingPosts)
		posts.GET("/likes/:id", h.LikedPosts)
		posts.GET("/user/:username", h.UserPosts)
	}

	users := api.Group("/users")
	{
		users.GET("/profile/:username", h.UserProfile)
		users.POST("/follow/:id", h.FollowUnfollow)
		users.GET("/suggested", h.SuggestedUsers)
		users.POST("/update", h.UpdateProfile)
		users.DELETE("/me", h.DeleteMe)
	}

	api.GET("/notifications", h.ListNotifications)
	api.DELETE("/notifications", h.ClearNotifications)

	return r
}
