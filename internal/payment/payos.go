package payment

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"

	payos "github.com/payOSHQ/payos-lib-golang"
)

// LinkTTL matches the booking payment window: links die with the booking.
const LinkTTL = 5 * time.Minute

// Bridge wraps the PayOS SDK. Signature checking on webhooks is delegated to
// the provider library entirely.
type Bridge struct{}

func New(clientID, apiKey, checksumKey string) (*Bridge, error) {
	if err := payos.Key(clientID, apiKey, checksumKey); err != nil {
		return nil, fmt.Errorf("payos keys: %w", err)
	}
	return &Bridge{}, nil
}

type Item struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Price    int    `json:"price" binding:"required"`
}

type CreateLinkInput struct {
	Amount      int
	Description string
	ReturnURL   string
	CancelURL   string
	Items       []Item
}

type CreateLinkResult struct {
	Data      *payos.CheckoutResponseDataType `json:"data"`
	OrderCode int64                           `json:"orderCode"`
	ExpiredAt int64                           `json:"expiredAt"` // unix seconds
	CreatedAt time.Time                       `json:"createdAt"` // for client countdown rendering
}

// newOrderCode derives a provider order code from the current timestamp plus
// a random suffix. Correlation only, not a security token.
func newOrderCode() int64 {
	return time.Now().Unix()*1000 + int64(rand.Intn(1000))
}

func (b *Bridge) CreateLink(in CreateLinkInput) (*CreateLinkResult, error) {
	items := make([]payos.Item, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, payos.Item{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	createdAt := time.Now()
	expiredAt := createdAt.Add(LinkTTL).Unix()
	expiredAtInt := int(expiredAt)
	orderCode := newOrderCode()

	data, err := payos.CreatePaymentLink(payos.CheckoutRequestType{
		OrderCode:   orderCode,
		Amount:      in.Amount,
		Description: in.Description,
		Items:       items,
		ReturnUrl:   in.ReturnURL,
		CancelUrl:   in.CancelURL,
		ExpiredAt:   &expiredAtInt,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment link: %w", err)
	}
	return &CreateLinkResult{
		Data:      data,
		OrderCode: orderCode,
		ExpiredAt: expiredAt,
		CreatedAt: createdAt,
	}, nil
}

// VerifyWebhook validates the payload signature through the provider's own
// routine and returns the verified transaction data.
func (b *Bridge) VerifyWebhook(w payos.WebhookType) (*payos.WebhookDataType, error) {
	return payos.VerifyPaymentWebhookData(w)
}

// The booking id rides inside the payment description as a bare 24-hex
// token. Word boundaries keep the regex from biting into longer hex runs.
var bookingIDRe = regexp.MustCompile(`\b[0-9a-fA-F]{24}\b`)

// ExtractBookingID pulls the correlated booking id out of a payment
// description, if one is embedded.
func ExtractBookingID(description string) (string, bool) {
	m := bookingIDRe.FindString(description)
	return m, m != ""
}
