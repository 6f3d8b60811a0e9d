package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"time"     // Token lifetime and validation clock

	"hobbymatch/internal/domain" // Importing domain models
	"hobbymatch/internal/store"  // Relationship store
	"hobbymatch/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
	"golang.org/x/crypto/bcrypt"   // Password hashing
)

// RegisterRequest is the sign-up payload
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Password    string `json:"password"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
	Hobbies     []uint `json:"hobbies"`       // Hobby ids
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// PasswordChangeRequest is the payload of the password update form
type PasswordChangeRequest struct {
	OldPassword  string `json:"old_password"`
	NewPassword1 string `json:"new_password1"`
	NewPassword2 string `json:"new_password2"`
}

// RegisterHandler creates an account with its initial hobbies
func RegisterHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		dob, err := validateRegister(&req, time.Now())
		if err != nil {
			respondError(c, err, "register")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, err, "hash password")
			return
		}
		user := domain.User{
			Username:    req.Username,
			Email:       req.Email,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Password:    string(hash),
			DateOfBirth: dob,
		}
		if err := st.CreateUser(c.Request.Context(), &user, req.Hobbies); err != nil {
			if errors.Is(err, domain.ErrHobbyNotFound) {
				v := domain.NewValidationError()
				v.Add("hobbies", err.Error())
				err = v
			}
			respondError(c, err, "register")
			return
		}
		invalidate(c, rdb, utils.AdminUsersPrefix)
		logEntry(c).WithFields(logrus.Fields{
			"new_user_id": user.ID,
			"username":    user.Username,
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "id": user.ID})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(st *store.Store, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		user, err := st.UserByUsername(c.Request.Context(), req.Username)
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(c, domain.ErrInvalidCredentials, "login")
			return
		}
		if err != nil {
			respondError(c, err, "login")
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			respondError(c, domain.ErrInvalidCredentials, "login")
			return
		}
		token, err := utils.GenerateJWT(user.ID, jwtSecret, ttl)
		if err != nil {
			respondError(c, err, "generate token")
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// AuthenticatedHandler confirms the bearer token is valid
func AuthenticatedHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": true})
}

// UpdatePasswordHandler replaces the caller's password after checking the old one
func UpdatePasswordHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentUserID(c)
		if !ok {
			return
		}
		var req PasswordChangeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		if err := validatePasswordChange(&req); err != nil {
			respondFormError(c, err, "update password")
			return
		}
		ctx := c.Request.Context()
		user, err := st.UserByID(ctx, uid)
		if err != nil {
			respondError(c, err, "update password")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
			v := domain.NewValidationError()
			v.Add("old_password", "Your old password was entered incorrectly. Please enter it again.")
			respondFormError(c, v, "update password")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword1), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, err, "hash password")
			return
		}
		if err := st.UpdatePassword(ctx, uid, string(hash)); err != nil {
			respondError(c, err, "update password")
			return
		}
		logEntry(c).Info("Password updated")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully."})
	}
}
