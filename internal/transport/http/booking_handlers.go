package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/service"
)

type BookingHandler struct {
	svc *service.BookingSvc
}

func NewBookingHandler(svc *service.BookingSvc) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type courtDetailIn struct {
	CourtID   string `json:"courtId" binding:"required"`
	Timeslots []int  `json:"timeslots" binding:"required"`
}

// POST /pending/pendingBookingToDB
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		CenterID            string          `json:"centerId" binding:"required"`
		UserName            string          `json:"userName"`
		CourtBookingDetails []courtDetailIn `json:"courtBookingDetails" binding:"required"`
		BookDate            string          `json:"bookDate" binding:"required"`
		BookingType         string          `json:"bookingType"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDate(in.BookDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookDate must be YYYY-MM-DD or RFC3339"})
		return
	}
	details := make(domain.CourtDetails, 0, len(in.CourtBookingDetails))
	for _, d := range in.CourtBookingDetails {
		details = append(details, domain.CourtDetail{CourtID: d.CourtID, Timeslots: d.Timeslots})
	}
	name := in.UserName
	if name == "" {
		name = callerName(c)
	}

	b, err := h.svc.Create(c.Request.Context(), service.CreateBookingInput{
		CenterID: in.CenterID,
		UserID:   callerID(c),
		UserName: name,
		BookDate: date,
		Details:  details,
		Type:     domain.BookingType(in.BookingType),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /pending/mapping?centerId=...&date=...
func (h *BookingHandler) Mapping(c *gin.Context) {
	centerID := c.Query("centerId")
	if centerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "centerId is required"})
		return
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD or RFC3339"})
		return
	}
	grid, err := h.svc.Mapping(c.Request.Context(), centerID, date)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"centerId": centerID, "date": date.Format("2006-01-02"), "mapping": grid})
}

// GET /
func (h *BookingHandler) List(c *gin.Context) {
	out, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /detail/:id
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /user/:userId
func (h *BookingHandler) ListByUser(c *gin.Context) {
	out, err := h.svc.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /:id — only the pending -> processing hop goes through here
func (h *BookingHandler) Patch(c *gin.Context) {
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.svc.MarkProcessing(c.Request.Context(), c.Param("id"), domain.BookingStatus(in.Status))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /:id
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
