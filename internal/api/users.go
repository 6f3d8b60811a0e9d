package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"hobbymatch/internal/matching" // Ranking engine
	"hobbymatch/internal/store"    // Relationship store
	"hobbymatch/internal/utils"    // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
)

// SimilarUserResponse is one ranked candidate
type SimilarUserResponse struct {
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	Age           *int     `json:"age"`
	SharedHobbies int      `json:"shared_hobbies"`
	Hobbies       []string `json:"hobbies"`
}

// SimilarUsersResponse is one page of ranked candidates
type SimilarUsersResponse struct {
	Users []SimilarUserResponse `json:"users"`
	matching.PageInfo
	Cached bool `json:"cached"`
}

// FlaggedUserResponse is one entry of the all-users listing
type FlaggedUserResponse struct {
	Username          string   `json:"username"`
	Email             string   `json:"email"`
	Age               *int     `json:"age"`
	Hobbies           []string `json:"hobbies"`
	FriendRequestSent bool     `json:"friend_request_sent"`
	IsFriend          bool     `json:"is_friend"`
}

// cacheSet stores value under key, logging instead of failing the request
func cacheSet(c *gin.Context, rdb *redis.Client, key string, value any, ttl time.Duration) {
	if err := utils.SetCache(c.Request.Context(), rdb, key, value, ttl); err != nil {
		logEntry(c).WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Failed to write cache")
	}
}

// invalidate drops every cached key under the given prefixes
func invalidate(c *gin.Context, rdb *redis.Client, prefixes ...string) {
	for _, p := range prefixes {
		if err := utils.DeleteCachePrefix(c.Request.Context(), rdb, p); err != nil {
			logEntry(c).WithFields(logrus.Fields{"prefix": p, "error": err.Error()}).Warn("Failed to invalidate cache")
		}
	}
}

// SimilarUsersHandler returns a page of users ranked by shared hobbies,
// optionally filtered by age_min and age_max
func SimilarUsersHandler(engine *matching.Engine, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentUserID(c)
		if !ok {
			return
		}
		ages, err := parseAgeRange(c.Query("age_min"), c.Query("age_max"))
		if err != nil {
			respondError(c, err, "similar users")
			return
		}
		page := parsePage(c.Query("page"))
		ctx := c.Request.Context()

		minKey, maxKey := "", ""
		if ages != nil {
			minKey, maxKey = c.Query("age_min"), c.Query("age_max")
		}
		cacheKey := utils.SimilarUsersKey(uid, minKey, maxKey, page)
		var cached SimilarUsersResponse
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached.Cached = true
			c.JSON(http.StatusOK, cached)
			return
		}

		result, err := engine.Rank(ctx, matching.Query{UserID: uid, Age: ages, Page: page})
		if err != nil {
			respondError(c, err, "similar users")
			return
		}
		resp := SimilarUsersResponse{
			Users:    make([]SimilarUserResponse, len(result.Candidates)),
			PageInfo: result.PageInfo,
		}
		for i, cand := range result.Candidates {
			resp.Users[i] = SimilarUserResponse{
				Username:      cand.User.Username,
				Email:         cand.User.Email,
				Age:           cand.Age,
				SharedHobbies: cand.SharedHobbies,
				Hobbies:       cand.User.HobbyNames(),
			}
		}
		cacheSet(c, rdb, cacheKey, resp, ttl)
		c.JSON(http.StatusOK, resp)
	}
}

// UsersWithFlagsHandler lists every other user with friendship flags
func UsersWithFlagsHandler(engine *matching.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentUserID(c)
		if !ok {
			return
		}
		users, err := engine.UsersWithFlags(c.Request.Context(), uid)
		if err != nil {
			respondError(c, err, "list users")
			return
		}
		resp := make([]FlaggedUserResponse, len(users))
		for i, u := range users {
			resp[i] = FlaggedUserResponse{
				Username:          u.User.Username,
				Email:             u.User.Email,
				Age:               u.Age,
				Hobbies:           u.User.HobbyNames(),
				FriendRequestSent: u.FriendRequestSent,
				IsFriend:          u.IsFriend,
			}
		}
		c.JSON(http.StatusOK, gin.H{"users": resp})
	}
}

// DeleteUserHandler deletes the caller's account with its requests and friendships
func DeleteUserHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentUserID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		if err := st.DeleteUser(ctx, uid); err != nil {
			respondError(c, err, "delete user")
			return
		}
		// The account may appear on anyone's cached pages
		invalidate(c, rdb, utils.SimilarUsersRoot, utils.AdminUsersPrefix, utils.AdminFriendRequestsPrefix)
		logEntry(c).Info("User deleted")
		c.JSON(http.StatusOK, gin.H{"success": "Successfully deleted the user."})
	}
}
