package http

import "github.com/gin-gonic/gin"

// NewRouter wires the booking-domain REST surface. The gateway has already
// authenticated every caller; webhook delivery from the payment provider is
// the one unauthenticated route.
func NewRouter(bh *BookingHandler, ph *PassHandler, pay *PaymentHandler) *gin.Engine {
	r := gin.Default()

	pending := r.Group("/pending", Identity())
	{
		pending.POST("/pendingBookingToDB", bh.Create)
		pending.GET("/mapping", bh.Mapping)
	}

	// GET /:id cannot share a tree level with the static /user segment, so
	// single-booking reads live under /detail.
	secured := r.Group("", Identity())
	{
		secured.GET("/", bh.List)
		secured.GET("/detail/:id", bh.Get)
		secured.GET("/user/:userId", bh.ListByUser)
		secured.PATCH("/:id", bh.Patch)
		secured.DELETE("/:id", bh.Delete)
	}

	payGroup := r.Group("/api/payment")
	{
		payGroup.POST("/create-link", Identity(), pay.CreateLink)
		payGroup.POST("/webhook", pay.Webhook)
	}

	pass := r.Group("/api/pass-booking", Identity())
	{
		pass.POST("/create", ph.Create)
		pass.GET("/list", ph.List)
		pass.GET("/my-posts", ph.MyPosts)
		pass.POST("/interest/:postId", ph.ToggleInterest)
		pass.GET("/interest/count/:postId", ph.InterestCount)
		pass.GET("/interest/users/:postId", ph.InterestedUsers)
		pass.GET("/interest/check/:postId", ph.CheckInterest)
	}

	return r
}
