package api

import (
	"math"     // Page cap
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Cache TTL and timestamps

	"hobbymatch/internal/store" // Relationship store
	"hobbymatch/internal/utils" // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

const (
	defaultAdminPageSize = 20
	maxAdminPageSize     = 100
	maxAdminPage         = math.MaxInt32 / maxAdminPageSize // keeps the offset within int32
)

// UserAdminResponse represents the user data returned to admin
type UserAdminResponse struct {
	ID          uint      `json:"id"`            // User ID
	Username    string    `json:"username"`      // Username
	Email       string    `json:"email"`         // Email address
	Role        string    `json:"role"`          // User role
	DateOfBirth *string   `json:"date_of_birth"` // YYYY-MM-DD or null
	Hobbies     []string  `json:"hobbies"`       // Hobby names
	CreatedAt   time.Time `json:"created_at"`    // Sign-up time
}

// FriendRequestAdminResponse is a pending request as seen by admin
type FriendRequestAdminResponse struct {
	ID        uint      `json:"id"`         // Request ID
	Sender    string    `json:"sender"`     // Sender username
	Receiver  string    `json:"receiver"`   // Receiver username
	CreatedAt time.Time `json:"created_at"` // When it was sent
}

// adminPage is the envelope of every admin listing
type adminPage[T any] struct {
	Items      []T   `json:"items"`       // Page content
	Page       int   `json:"page"`        // Current page
	PageSize   int   `json:"page_size"`   // Page size
	Total      int64 `json:"total"`       // Total number of rows
	TotalPages int   `json:"total_pages"` // Total pages
	Cached     bool  `json:"cached"`      // Served from cache
}

// adminPaging reads page and page_size, falling back to defaults on bad input
func adminPaging(c *gin.Context) (page, pageSize int) {
	page, pageSize = 1, defaultAdminPageSize
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = min(v, maxAdminPage)
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 && v <= maxAdminPageSize {
		pageSize = v
	}
	return page, pageSize
}

func totalPages(total int64, pageSize int) int {
	return (int(total) + pageSize - 1) / pageSize
}

// ListUsersHandler returns all users, paginated and cached per page
func ListUsersHandler(st *store.Store, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page, pageSize := adminPaging(c)
		cacheKey := utils.AdminUsersPrefix + "page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)

		var cached adminPage[UserAdminResponse]
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached.Cached = true
			c.JSON(http.StatusOK, cached)
			return
		}
		users, total, err := st.ListUsers(ctx, (page-1)*pageSize, pageSize)
		if err != nil {
			respondError(c, err, "admin list users")
			return
		}
		resp := adminPage[UserAdminResponse]{
			Items:      make([]UserAdminResponse, len(users)),
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		}
		for i, u := range users {
			resp.Items[i] = UserAdminResponse{
				ID:          u.ID,
				Username:    u.Username,
				Email:       u.Email,
				Role:        u.Role,
				DateOfBirth: formatDate(u.DateOfBirth),
				Hobbies:     u.HobbyNames(),
				CreatedAt:   u.CreatedAt,
			}
		}
		cacheSet(c, rdb, cacheKey, resp, ttl)
		c.JSON(http.StatusOK, resp)
	}
}

// ListFriendRequestsHandler returns every pending friend request, paginated and cached per page
func ListFriendRequestsHandler(st *store.Store, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		page, pageSize := adminPaging(c)
		cacheKey := utils.AdminFriendRequestsPrefix + "page=" + strconv.Itoa(page) + ":size=" + strconv.Itoa(pageSize)

		var cached adminPage[FriendRequestAdminResponse]
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached.Cached = true
			c.JSON(http.StatusOK, cached)
			return
		}
		reqs, total, err := st.ListFriendRequests(ctx, (page-1)*pageSize, pageSize)
		if err != nil {
			respondError(c, err, "admin list friend requests")
			return
		}
		resp := adminPage[FriendRequestAdminResponse]{
			Items:      make([]FriendRequestAdminResponse, len(reqs)),
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages(total, pageSize),
		}
		for i, r := range reqs {
			resp.Items[i] = FriendRequestAdminResponse{
				ID:        r.ID,
				Sender:    r.Sender.Username,
				Receiver:  r.Receiver.Username,
				CreatedAt: r.CreatedAt,
			}
		}
		cacheSet(c, rdb, cacheKey, resp, ttl)
		c.JSON(http.StatusOK, resp)
	}
}
