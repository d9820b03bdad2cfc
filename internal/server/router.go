package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/schedule-api/internal/auth"
	"github.com/yukikurage/schedule-api/internal/handlers"
	"github.com/yukikurage/schedule-api/internal/middleware"
	"github.com/yukikurage/schedule-api/internal/services"
	v "github.com/yukikurage/schedule-api/internal/validation"
	"go.uber.org/zap"
)

// Options carries everything the router needs
type Options struct {
	Logger     *zap.Logger
	Production bool
	Verifier   auth.TokenVerifier
	Accounts   *services.AccountService
	Events     *services.EventService
	Tasks      *services.TaskService
}

// NewRouter builds the HTTP router with every route and its guards
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(opts.Logger),
		middleware.ErrorHandler(opts.Logger, opts.Production),
		middleware.Recovery(),
	)

	accountHandler := handlers.NewAccountHandler(opts.Accounts)
	eventHandler := handlers.NewEventHandler(opts.Events)
	taskHandler := handlers.NewTaskHandler(opts.Tasks)
	requireAuth := middleware.RequireAuth(opts.Verifier)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Schedule API is running",
		})
	})

	api := r.Group("/api")
	{
		// Account routes; register and login are public
		accounts := api.Group("/accounts")
		{
			accounts.POST("/register",
				v.Sanitize(),
				v.RequiredFields("name", "email", "password"),
				v.NotEmptyStrings(),
				v.EmailFormat("email"),
				v.PasswordStrength("password"),
				accountHandler.Register)
			accounts.POST("/login",
				v.Sanitize(),
				v.RequiredFields("email", "password"),
				v.NotEmptyStrings(),
				v.EmailFormat("email"),
				accountHandler.Login)

			accounts.GET("", requireAuth, v.Pagination(), v.AllowedQueryParams("page", "limit"), accountHandler.ListAccounts)
			accounts.GET("/:id", requireAuth, v.IdentifierFormat("id"), accountHandler.GetAccount)
			accounts.PUT("/:id",
				requireAuth,
				v.Sanitize(),
				v.IdentifierFormat("id"),
				v.RequiredFields("name", "email"),
				v.NotEmptyStrings(),
				v.EmailFormat("email"),
				accountHandler.UpdateAccount)
			accounts.DELETE("/:id", requireAuth, v.IdentifierFormat("id"), accountHandler.DeleteAccount)
		}

		// Event routes (protected)
		events := api.Group("/events")
		events.Use(requireAuth)
		{
			eventBody := []gin.HandlerFunc{
				v.Sanitize(),
				v.RequiredFields("title", "description", "date", "location", "responsible"),
				v.NotEmptyStrings(),
				v.DateFormat("date"),
			}

			events.GET("", v.Pagination(), v.AllowedQueryParams("start_date", "end_date", "page", "limit"), eventHandler.ListEvents)
			events.POST("", chain(eventBody, eventHandler.CreateEvent)...)
			events.GET("/upcoming", eventHandler.UpcomingEvents)
			events.GET("/:id", v.IdentifierFormat("id"), eventHandler.GetEvent)
			events.PUT("/:id", chain(append([]gin.HandlerFunc{v.IdentifierFormat("id")}, eventBody...), eventHandler.UpdateEvent)...)
			events.DELETE("/:id", v.IdentifierFormat("id"), eventHandler.DeleteEvent)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			taskBody := []gin.HandlerFunc{
				v.Sanitize(),
				v.RequiredFields("title", "description", "date"),
				v.NotEmptyStrings("assigned_account_id", "associated_event_id"),
				v.StatusEnum("status"),
				v.DateFormat("date"),
			}

			tasks.GET("", v.Pagination(), v.AllowedQueryParams("status", "account_id", "page", "limit"), taskHandler.ListTasks)
			tasks.POST("", chain(taskBody, taskHandler.CreateTask)...)
			tasks.GET("/select-data", taskHandler.SelectData)
			tasks.GET("/event/:eventId", v.NumericParam("eventId"), taskHandler.ListTasksByEvent)
			tasks.GET("/account/:accountId", v.NumericParam("accountId"), taskHandler.ListTasksByAccount)
			tasks.GET("/:id", v.IdentifierFormat("id"), taskHandler.GetTask)
			tasks.PUT("/:id", chain(append([]gin.HandlerFunc{v.IdentifierFormat("id")}, taskBody...), taskHandler.UpdateTask)...)
			tasks.DELETE("/:id", v.IdentifierFormat("id"), taskHandler.DeleteTask)
		}
	}

	return r
}

func chain(guards []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	out = append(out, guards...)
	return append(out, handler)
}
