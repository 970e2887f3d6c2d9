package gatewaystub

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"messenger-client/internal/common/errors"
	"messenger-client/internal/common/middleware"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{
		store: store,
	}
}

// RegisterRoutes регистрирует четыре функции шлюза
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/auth", h.authAction)
	r.PUT("/auth", h.updateProfile)

	r.GET("/users", h.usersQuery)
	r.POST("/users", h.createUser)
	r.PUT("/users", h.setBlocked)

	r.GET("/contacts", h.listContacts)
	r.POST("/contacts", h.addContact)

	r.GET("/messages", h.listMessages)
	r.POST("/messages", h.sendMessage)
}

type authRequest struct {
	Action       string `json:"action" binding:"required,oneof=login register complete_profile"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	UserID       int64  `json:"user_id"`
	Name         string `json:"name"`
	Bio          string `json:"bio"`
	PhoneContact string `json:"phone_contact"`
	Avatar       string `json:"avatar"`
}

func (h *Handler) authAction(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request"))
		return
	}

	switch req.Action {
	case "login":
		user, err := h.store.Login(req.Phone, req.Password)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)

	case "register":
		if strings.TrimSpace(req.Phone) == "" || req.Password == "" {
			middleware.AbortWithError(c, errors.New(errors.ErrCodeBadRequest, "Phone and password are required"))
			return
		}
		user, err := h.store.Register(req.Phone, req.Password)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":                   user.ID,
			"phone":                user.Phone,
			"is_profile_completed": user.IsProfileCompleted,
		})

	case "complete_profile":
		if req.UserID <= 0 {
			middleware.AbortWithError(c, errors.NewValidationError("user_id", "required"))
			return
		}
		user, err := h.store.CompleteProfile(req.UserID, req.Name, req.Bio, req.Avatar)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

type profileRequest struct {
	UserID int64  `json:"user_id" binding:"required,gt=0"`
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request"))
		return
	}
	user, err := h.store.UpdateProfile(req.UserID, req.Name, req.Bio, req.Avatar)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) usersQuery(c *gin.Context) {
	switch c.Query("action") {
	case "search":
		phone := c.Query("phone")
		if strings.TrimSpace(phone) == "" {
			middleware.AbortWithError(c, errors.NewValidationError("phone", "required"))
			return
		}
		user, err := h.store.Search(phone)
		if err != nil {
			middleware.AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":         user.ID,
			"phone":      user.Phone,
			"name":       user.Name,
			"bio":        user.Bio,
			"avatar":     user.Avatar,
			"is_blocked": user.IsBlocked,
		})
	case "all":
		c.JSON(http.StatusOK, h.store.AllUsers())
	default:
		middleware.AbortWithError(c, errors.New(errors.ErrCodeMethod, "Method not allowed"))
	}
}

type createUserRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request"))
		return
	}
	user, err := h.store.CreateUser(req.Phone, req.Password, req.Name)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":                   user.ID,
		"phone":                user.Phone,
		"name":                 user.Name,
		"is_profile_completed": user.IsProfileCompleted,
	})
}

type blockRequest struct {
	UserID    int64 `json:"user_id" binding:"required,gt=0"`
	IsBlocked *bool `json:"is_blocked" binding:"required"`
}

func (h *Handler) setBlocked(c *gin.Context) {
	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request"))
		return
	}
	user, err := h.store.SetBlocked(req.UserID, *req.IsBlocked)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"phone":      user.Phone,
		"name":       user.Name,
		"is_blocked": user.IsBlocked,
	})
}

func (h *Handler) listContacts(c *gin.Context) {
	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.store.Contacts(userID))
}

type contactRequest struct {
	UserID    int64 `json:"user_id" binding:"required,gt=0"`
	ContactID int64 `json:"contact_id" binding:"required,gt=0"`
}

func (h *Handler) addContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request"))
		return
	}
	if err := h.store.AddContact(req.UserID, req.ContactID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) listMessages(c *gin.Context) {
	userID, ok := queryID(c, "user_id")
	if !ok {
		return
	}
	contactID, ok := queryID(c, "contact_id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.store.Messages(userID, contactID))
}

type messageRequest struct {
	SenderID   int64  `json:"sender_id" binding:"required,gt=0"`
	ReceiverID int64  `json:"receiver_id" binding:"required,gt=0"`
	Content    string `json:"content" binding:"required"`
}

func (h *Handler) sendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "Invalid request"))
		return
	}
	msg, err := h.store.SendMessage(req.SenderID, req.ReceiverID, req.Content)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func queryID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.AbortWithError(c, errors.NewValidationError(name, "required"))
		return 0, false
	}
	return id, true
}
