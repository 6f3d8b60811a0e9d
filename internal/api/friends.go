package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"hobbymatch/internal/domain" // Importing domain models
	"hobbymatch/internal/store"  // Relationship store
	"hobbymatch/internal/utils"  // Notifications

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Structured logging
)

// UsernameRequest names another user
type UsernameRequest struct {
	Username string `json:"username"`
}

// HandleRequest identifies a received friend request
type HandleRequest struct {
	ID uint `json:"id"`
}

// FriendRequestResponse is a received request with its sender's details
type FriendRequestResponse struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Hobbies  []string `json:"hobbies"`
}

// FriendResponse is one entry of the friends list
type FriendResponse struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Hobbies  []string `json:"hobbies"`
}

// notify publishes n, logging instead of failing the request
func notify(c *gin.Context, rdb *redis.Client, n utils.Notification) {
	if err := utils.Publish(c.Request.Context(), rdb, n); err != nil {
		logEntry(c).WithFields(logrus.Fields{
			"operation": n.Operation,
			"error":     err.Error(),
		}).Warn("Failed to publish notification")
	}
}

// SendFriendRequestHandler sends a friend request to the named user
func SendFriendRequestHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentUserID(c)
		if !ok {
			return
		}
		var req UsernameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		if req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required."})
			return
		}
		ctx := c.Request.Context()
		receiver, err := st.UserByUsername(ctx, req.Username)
		if err != nil {
			respondError(c, err, "send friend request")
			return
		}
		sender, err := st.UserByID(ctx, uid)
		if err != nil {
			respondError(c, err, "send friend request")
			return
		}
		requestID, err := st.CreateFriendRequest(ctx, uid, receiver.ID)
		if err != nil {
			respondError(c, err, "send friend request")
			return
		}
		logEntry(c).WithFields(logrus.Fields{
			"friend_request_id": requestID,
			"receiver_id":       receiver.ID,
		}).Info("Friend request sent")
		invalidate(c, rdb, utils.AdminFriendRequestsPrefix)
		notify(c, rdb, utils.Notification{
			Operation: utils.OpRequest,
			UserID:    receiver.ID,
			Payload:   gin.H{"id": requestID, "username": sender.Username, "email": sender.Email},
		})
		c.JSON(http.StatusOK, gin.H{"message": "Friend request sent successfully."})
	}
}

// ReceivedFriendRequestsHandler lists the requests addressed to the caller
func ReceivedFriendRequestsHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentUserID(c)
		if !ok {
			return
		}
		reqs, err := st.ReceivedFriendRequests(c.Request.Context(), uid)
		if err != nil {
			respondError(c, err, "list friend requests")
			return
		}
		resp := make([]FriendRequestResponse, len(reqs))
		for i, r := range reqs {
			resp[i] = FriendRequestResponse{
				ID:       r.ID,
				Username: r.Sender.Username,
				Email:    r.Sender.Email,
				Hobbies:  r.Sender.HobbyNames(),
			}
		}
		c.JSON(http.StatusOK, gin.H{"friend_requests": resp})
	}
}

// HandleFriendRequestHandler accepts (PUT) or declines (DELETE) a received request
func HandleFriendRequestHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentUserID(c)
		if !ok {
			return
		}
		var req HandleRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Friend request ID is required."})
			return
		}
		ctx := c.Request.Context()
		if c.Request.Method == http.MethodDelete {
			fr, err := st.DeclineFriendRequest(ctx, req.ID, uid)
			if err != nil {
				respondError(c, err, "decline friend request")
				return
			}
			logEntry(c).WithField("sender_id", fr.SenderID).Info("Friend request declined")
			invalidate(c, rdb, utils.AdminFriendRequestsPrefix)
			c.JSON(http.StatusOK, gin.H{"message": "Friend request declined."})
			return
		}
		fr, err := st.AcceptFriendRequest(ctx, req.ID, uid)
		if err != nil {
			respondError(c, err, "accept friend request")
			return
		}
		logEntry(c).WithField("sender_id", fr.SenderID).Info("Friend request accepted")
		invalidate(c, rdb, utils.AdminFriendRequestsPrefix)
		payload := gin.H{"id": fr.ID}
		if me, err := st.UserByID(ctx, uid); err == nil {
			payload["username"] = me.Username
			payload["email"] = me.Email
		}
		notify(c, rdb, utils.Notification{Operation: utils.OpAccepted, UserID: fr.SenderID, Payload: payload})
		c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted."})
	}
}

// FriendsListHandler lists the caller's friends
func FriendsListHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentUserID(c)
		if !ok {
			return
		}
		friends, err := st.Friends(c.Request.Context(), uid)
		if err != nil {
			respondError(c, err, "list friends")
			return
		}
		resp := make([]FriendResponse, len(friends))
		for i, f := range friends {
			resp[i] = FriendResponse{Username: f.Username, Email: f.Email, Hobbies: f.HobbyNames()}
		}
		c.JSON(http.StatusOK, gin.H{"friends": resp})
	}
}

// RemoveFriendHandler unfriends the named user in both directions
func RemoveFriendHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := currentUserID(c)
		if !ok {
			return
		}
		var req UsernameRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
			badRequest(c)
			return
		}
		ctx := c.Request.Context()
		friend, err := st.UserByUsername(ctx, req.Username)
		if errors.Is(err, domain.ErrUserNotFound) {
			err = domain.ErrFriendshipNotFound
		}
		if err == nil {
			err = st.RemoveFriend(ctx, uid, friend.ID)
		}
		if err != nil {
			respondError(c, err, "remove friend")
			return
		}
		logEntry(c).WithField("friend_id", friend.ID).Info("Friend removed")
		c.String(http.StatusOK, "Friend removed!")
	}
}
