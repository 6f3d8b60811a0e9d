package api

import (
	"net/http" // HTTP status codes

	"hobbymatch/internal/domain" // Importing domain models
	"hobbymatch/internal/store"  // Relationship store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// HobbyRequest is the payload for a new hobby
type HobbyRequest struct {
	Name string `json:"name"`
}

// ListHobbiesHandler returns the whole hobby catalogue
func ListHobbiesHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		hobbies, err := st.ListHobbies(c.Request.Context())
		if err != nil {
			respondError(c, err, "list hobbies")
			return
		}
		if hobbies == nil {
			hobbies = []domain.Hobby{}
		}
		c.JSON(http.StatusOK, hobbies)
	}
}

// CreateHobbyHandler adds a hobby to the catalogue
func CreateHobbyHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req HobbyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		name, err := validateHobbyName(req.Name)
		if err != nil {
			respondError(c, err, "create hobby")
			return
		}
		hobby, err := st.CreateHobby(c.Request.Context(), name)
		if err != nil {
			respondError(c, err, "create hobby")
			return
		}
		logEntry(c).WithFields(logrus.Fields{"hobby_id": hobby.ID, "name": hobby.Name}).Info("Hobby created")
		c.JSON(http.StatusCreated, hobby)
	}
}
