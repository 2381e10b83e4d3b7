package routes

import (
	"net/http"
	"time"

	"submitserver/handlers"
	"submitserver/middlewares"
	"submitserver/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter はAPIの全ルートを登録したエンジンを返します。
func SetupRouter(env *handlers.Env, tokens middlewares.TokenParser, allowOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(env.Logger))

	//CORS（Cross-Origin Resource Sharing）ポリシーを設定
	if len(allowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     allowOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	authn := middlewares.NewAuthenticator(tokens, env.Sessions, env.Store, env.Logger)
	with := func(h func(*gin.Context, *handlers.Env)) gin.HandlerFunc {
		return func(c *gin.Context) { h(c, env) }
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authRoutes := router.Group("/auth")
	{
		authRoutes.GET("/login", with(handlers.Login))
		authRoutes.GET("/callback", with(handlers.Callback))
		authRoutes.POST("/logout", authn.RequireSession(), with(handlers.Logout))
	}

	eventRoutes := router.Group("/events")
	{
		eventRoutes.GET("", authn.OptionalSession(), with(handlers.ListEvents))
		eventRoutes.GET("/:id", authn.OptionalSession(), with(handlers.GetEvent))
		eventRoutes.GET("/:id/mine", authn.RequireSession(), with(handlers.MyEventPage))
		eventRoutes.POST("/:id/availability", authn.RequireSession(), with(handlers.SetAvailability))

		// 管理者用
		eventRoutes.POST("", authn.RequireSession(), middlewares.RequireAdmin(), with(handlers.UpsertEvent))
		eventRoutes.DELETE("/:id", authn.RequireSession(), middlewares.RequireAdmin(), with(handlers.DeleteEvent))
		eventRoutes.GET("/:id/download", authn.RequireSession(), middlewares.RequireAdmin(), with(handlers.DownloadSubmissions))
	}

	submissionRoutes := router.Group("/submissions")
	submissionRoutes.Use(authn.RequireSession())
	{
		submissionRoutes.POST("/:eventId", with(handlers.UpsertSubmission))
		submissionRoutes.DELETE("/:id", with(handlers.DeleteSubmission))
	}

	userRoutes := router.Group("/user")
	userRoutes.Use(authn.RequireSession())
	{
		userRoutes.GET("", with(handlers.GetCurrentUser))
		userRoutes.POST("/update", with(handlers.UpdateProfile))
	}

	return router
}
