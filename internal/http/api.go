package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blog-api/internal/auth"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
	"blog-api/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users  service.UserService
	posts  service.PostService
	tokens *auth.TokenService
	logger *logrus.Logger
}

func NewHandler(users service.UserService, posts service.PostService, tokens *auth.TokenService, logger *logrus.Logger) *Handler {
	return &Handler{
		users:  users,
		posts:  posts,
		tokens: tokens,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger))
	router.Use(corsMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, envelope(true, nil, "Welcome to Blog API"))
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	router.POST("/register", h.register)
	router.POST("/login", h.login)

	router.GET("/posts", h.listPosts)
	router.GET("/posts/:id", h.getPost)

	authed := router.Group("/", h.requireAuth())
	{
		authed.POST("/posts", h.createPost)
		authed.PUT("/posts/:id", h.updatePost)
		authed.DELETE("/posts/:id", h.deletePost)
	}
}

// Response is the envelope shared by every endpoint, success and failure
// alike.
type Response struct {
	Success bool                 `json:"success"`
	Data    any                  `json:"data"`
	Message string               `json:"message"`
	Errors  []service.FieldError `json:"errors,omitempty"`
}

func envelope(success bool, data any, message string) Response {
	return Response{Success: success, Data: data, Message: message}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type postRequest struct {
	Content string `json:"content"`
}

type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UserSummary is the trimmed user view embedded in the login payload.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type PostResponse struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	AuthorID  int64  `json:"author_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope(false, nil, "Invalid request body"))
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, envelope(true, userToResponse(user), "User created"))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope(false, nil, "Invalid request body"))
		return
	}

	token, user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}

	data := LoginResponse{
		Token: token,
		User:  UserSummary{ID: user.ID, Name: user.Name, Email: user.Email},
	}
	c.JSON(http.StatusOK, envelope(true, data, "Login successful"))
}

func (h *Handler) listPosts(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := make([]PostResponse, len(posts))
	for i := range posts {
		resp[i] = postToResponse(&posts[i])
	}
	c.JSON(http.StatusOK, envelope(true, resp, "Posts fetched successfully"))
}

func (h *Handler) getPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope(true, postToResponse(post), "Post fetched successfully"))
}

func (h *Handler) createPost(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, envelope(false, nil, "Unauthorized"))
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope(false, nil, "Invalid request body"))
		return
	}

	post, err := h.posts.Create(c.Request.Context(), identity, req.Content)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, envelope(true, postToResponse(post), "Post created successfully"))
}

func (h *Handler) updatePost(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, envelope(false, nil, "Unauthorized"))
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, envelope(false, nil, "Invalid request body"))
		return
	}

	post, err := h.posts.Update(c.Request.Context(), identity, id, req.Content)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope(true, postToResponse(post), "Post updated successfully"))
}

func (h *Handler) deletePost(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, envelope(false, nil, "Unauthorized"))
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), identity, id); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope(true, nil, "Post deleted successfully"))
}

// renderError maps domain failures onto the response envelope. Anything
// unrecognized is logged and reported generically.
func (h *Handler) renderError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "Invalid input",
			Errors:  verr.Fields,
		})
	case errors.Is(err, service.ErrEmailAlreadyExists):
		c.JSON(http.StatusBadRequest, envelope(false, nil, "Email already exists"))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, envelope(false, nil, "Invalid credentials"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, envelope(false, nil, "Forbidden"))
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, envelope(false, nil, "Post not found"))
	default:
		h.logger.WithError(err).Errorf("%s %s failed", c.Request.Method, c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, envelope(false, nil, "Internal server error"))
	}
}

func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, envelope(false, nil, "Invalid post id"))
		return 0, false
	}
	return id, true
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

func postToResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Content:   post.Content,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt.Format(time.RFC3339),
		UpdatedAt: post.UpdatedAt.Format(time.RFC3339),
	}
}
