package api

import (
	"net/http" // HTTP status codes
	"time"     // Token and cache lifetimes

	"hobbymatch/internal/matching"   // Ranking engine
	"hobbymatch/internal/middleware" // Auth and logging middleware
	"hobbymatch/internal/store"      // Relationship store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Deps are the collaborators the HTTP layer is built from. Redis may be nil.
type Deps struct {
	Store     *store.Store
	Engine    *matching.Engine
	Redis     *redis.Client
	JWTSecret string
	JWTTTL    time.Duration
	CacheTTL  time.Duration
	Logger    *logrus.Logger
}

// NewRouter registers every route on a fresh gin engine
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	if d.Engine == nil {
		d.Engine = matching.NewEngine(d.Store)
	}
	r := gin.New()
	r.Use(middleware.LogMiddleware(d.Logger), gin.Recovery())
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Invalid request method."})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
	})

	r.GET("/healthz", HealthHandler(d.Store, d.Redis))

	// Auth routes
	r.POST("/register", RegisterHandler(d.Store, d.Redis))
	r.POST("/login", LoginHandler(d.Store, d.JWTSecret, d.JWTTTL))

	// User routes (protected by JWT)
	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.JWTAuthMiddleware(d.JWTSecret))
	apiGroup.GET("/authenticated", AuthenticatedHandler)
	apiGroup.GET("/hobbies", ListHobbiesHandler(d.Store))
	apiGroup.POST("/hobbies", CreateHobbyHandler(d.Store))
	apiGroup.GET("/profile", ProfileHandler(d.Store))
	apiGroup.POST("/profile/update", UpdateProfileHandler(d.Store, d.Redis))
	apiGroup.POST("/password/update", UpdatePasswordHandler(d.Store))
	apiGroup.POST("/send_friend_request", SendFriendRequestHandler(d.Store, d.Redis))
	apiGroup.GET("/friend_requests", ReceivedFriendRequestsHandler(d.Store))
	apiGroup.PUT("/friend_requests/handle", HandleFriendRequestHandler(d.Store, d.Redis))
	apiGroup.DELETE("/friend_requests/handle", HandleFriendRequestHandler(d.Store, d.Redis))
	apiGroup.GET("/friends_list", FriendsListHandler(d.Store))
	apiGroup.DELETE("/friends", RemoveFriendHandler(d.Store))
	apiGroup.GET("/similar-users", SimilarUsersHandler(d.Engine, d.Redis, d.CacheTTL))
	apiGroup.GET("/users", UsersWithFlagsHandler(d.Engine))
	apiGroup.DELETE("/delete_user", DeleteUserHandler(d.Store, d.Redis))

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.AdminOnlyMiddleware(d.Store))
	adminGroup.GET("/users", ListUsersHandler(d.Store, d.Redis, d.CacheTTL))
	adminGroup.GET("/friend_requests", ListFriendRequestsHandler(d.Store, d.Redis, d.CacheTTL))

	return r
}

// HealthHandler reports whether the database (and Redis, when configured) answer
func HealthHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sqlDB, err := st.DB().DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err == nil && rdb != nil {
			err = rdb.Ping(ctx).Err()
		}
		if err != nil {
			logEntry(c).WithField("error", err.Error()).Error("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
