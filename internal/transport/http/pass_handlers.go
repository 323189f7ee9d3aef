package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/service"
)

type PassHandler struct {
	svc *service.PassSvc
}

func NewPassHandler(svc *service.PassSvc) *PassHandler {
	return &PassHandler{svc: svc}
}

// POST /api/pass-booking/create
func (h *PassHandler) Create(c *gin.Context) {
	var in struct {
		BookingID   string `json:"bookingId" binding:"required"`
		ResalePrice int64  `json:"resalePrice" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := h.svc.CreatePost(c.Request.Context(), callerID(c), in.BookingID, in.ResalePrice, in.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// GET /api/pass-booking/list
func (h *PassHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/pass-booking/my-posts
func (h *PassHandler) MyPosts(c *gin.Context) {
	out, err := h.svc.MyPosts(c.Request.Context(), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/pass-booking/interest/:postId
func (h *PassHandler) ToggleInterest(c *gin.Context) {
	action, err := h.svc.ToggleInterest(c.Request.Context(), callerID(c), c.Param("postId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"action": action})
}

// GET /api/pass-booking/interest/count/:postId
func (h *PassHandler) InterestCount(c *gin.Context) {
	n, err := h.svc.InterestCount(c.Request.Context(), c.Param("postId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// GET /api/pass-booking/interest/users/:postId
func (h *PassHandler) InterestedUsers(c *gin.Context) {
	users, err := h.svc.InterestedUsers(c.Request.Context(), c.Param("postId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/pass-booking/interest/check/:postId
func (h *PassHandler) CheckInterest(c *gin.Context) {
	interested, err := h.svc.CheckInterest(c.Request.Context(), callerID(c), c.Param("postId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interested": interested})
}
