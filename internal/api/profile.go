package api

import (
	"net/http" // HTTP status codes
	"time"     // Date formatting

	"hobbymatch/internal/domain" // Importing domain models
	"hobbymatch/internal/store"  // Relationship store
	"hobbymatch/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// ProfileRequest is the full set of editable profile fields
type ProfileRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD, empty clears it
	Hobbies     []uint `json:"hobbies"`       // Replaces the hobby set
}

// ProfileResponse is the caller's own profile
type ProfileResponse struct {
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	DateOfBirth *string        `json:"date_of_birth"`
	Hobbies     []domain.Hobby `json:"hobbies"`
}

// formatDate renders an optional date as YYYY-MM-DD
func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

// ProfileHandler returns the caller's profile
func ProfileHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentUserID(c)
		if !ok {
			return
		}
		user, err := st.UserByID(c.Request.Context(), uid)
		if err != nil {
			respondError(c, err, "load profile")
			return
		}
		hobbies := user.Hobbies
		if hobbies == nil {
			hobbies = []domain.Hobby{}
		}
		c.JSON(http.StatusOK, ProfileResponse{
			Username:    user.Username,
			Email:       user.Email,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			DateOfBirth: formatDate(user.DateOfBirth),
			Hobbies:     hobbies,
		})
	}
}

// UpdateProfileHandler replaces the caller's profile and drops their cached rankings
func UpdateProfileHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentUserID(c)
		if !ok {
			return
		}
		var req ProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		dob, err := validateProfile(&req, time.Now())
		if err != nil {
			respondFormError(c, err, "update profile")
			return
		}
		ctx := c.Request.Context()
		err = st.UpdateProfile(ctx, uid, store.ProfileUpdate{
			Username:    req.Username,
			Email:       req.Email,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			DateOfBirth: dob,
			HobbyIDs:    req.Hobbies,
		})
		if err != nil {
			respondFormError(c, err, "update profile")
			return
		}
		// New hobbies or age move this user on other users' rankings too
		invalidate(c, rdb, utils.SimilarUsersRoot, utils.AdminUsersPrefix)
		logEntry(c).Info("Profile updated")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully."})
	}
}
