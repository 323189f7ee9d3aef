package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	payos "github.com/payOSHQ/payos-lib-golang"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/payment"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/service"
)

type PaymentHandler struct {
	bridge   *payment.Bridge
	bookings *service.BookingSvc
}

func NewPaymentHandler(bridge *payment.Bridge, bookings *service.BookingSvc) *PaymentHandler {
	return &PaymentHandler{bridge: bridge, bookings: bookings}
}

// POST /api/payment/create-link
func (h *PaymentHandler) CreateLink(c *gin.Context) {
	var in struct {
		Amount      int            `json:"amount" binding:"required"`
		Description string         `json:"description" binding:"required"`
		ReturnURL   string         `json:"returnUrl" binding:"required"`
		CancelURL   string         `json:"cancelUrl" binding:"required"`
		Items       []payment.Item `json:"items"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.bridge.CreateLink(payment.CreateLinkInput{
		Amount:      in.Amount,
		Description: in.Description,
		ReturnURL:   in.ReturnURL,
		CancelURL:   in.CancelURL,
		Items:       in.Items,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/payment/webhook
//
// The provider controls retries, so everything past payload-shape validation
// acknowledges with 200 — a failed lookup must not trigger a retry storm.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var in payos.WebhookType
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := h.bridge.VerifyWebhook(in)
	if err != nil {
		log.Printf("[payment] webhook verification failed: %v", err)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	bookingID, ok := payment.ExtractBookingID(data.Description)
	if !ok {
		log.Printf("[payment] no booking id in description %q", data.Description)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	b, err := h.bookings.ConfirmPayment(c.Request.Context(), bookingID)
	if err != nil {
		log.Printf("[payment] confirm booking %s: %v", bookingID, err)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	log.Printf("[payment] booking %s confirmed, %d points earned", b.ID, b.PointsEarned)
	c.JSON(http.StatusOK, gin.H{"received": true})
}
