package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/events"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/repository"
)

// PassCutoff: a listing must be created at least this long before play time.
const PassCutoff = time.Hour

type PassSvc struct {
	posts     PassStore
	bookings  BookingStore
	directory CenterDirectory
	bus       EventBus
	now       func() time.Time
}

func NewPassSvc(posts PassStore, bookings BookingStore, dir CenterDirectory, bus EventBus) *PassSvc {
	return &PassSvc{posts: posts, bookings: bookings, directory: dir, bus: bus, now: time.Now}
}

// CreatePost lists a confirmed booking for resale. Guards, in order: booking
// exists, caller owns it, it is confirmed, no live post references it yet,
// and play time is still more than the cutoff away.
func (s *PassSvc) CreatePost(ctx context.Context, userID, bookingID string, resalePrice int64, description string) (*domain.PassPost, error) {
	if !domain.ValidID(bookingID) {
		return nil, fmt.Errorf("%w: malformed booking id", ErrBadRequest)
	}
	if resalePrice <= 0 {
		return nil, fmt.Errorf("%w: resale price must be positive", ErrBadRequest)
	}

	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking %s", ErrNotFound, bookingID)
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, fmt.Errorf("%w: not the booking owner", ErrForbidden)
	}
	if b.Status != domain.StatusConfirmed {
		return nil, fmt.Errorf("%w: only confirmed bookings can be passed", ErrBadRequest)
	}

	if _, err := s.posts.LiveByBookingID(ctx, bookingID); err == nil {
		return nil, fmt.Errorf("%w: booking already listed", ErrBadRequest)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	playTime, ok := b.PlayTime()
	if !ok {
		return nil, fmt.Errorf("%w: booking has no timeslots", ErrBadRequest)
	}
	if s.now().After(playTime.Add(-PassCutoff)) {
		return nil, fmt.Errorf("%w: too late to pass this booking", ErrBadRequest)
	}

	p := &domain.PassPost{
		BookingID:     bookingID,
		SellerID:      userID,
		OriginalPrice: b.Price,
		ResalePrice:   resalePrice,
		Description:   description,
		Status:        domain.PassActive,
		ExpiresAt:     playTime,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// PassListing is a marketplace entry enriched for display.
type PassListing struct {
	ID              string    `json:"id"`
	BookingID       string    `json:"bookingId"`
	SellerID        string    `json:"sellerId"`
	SellerName      string    `json:"sellerName"`
	CenterID        string    `json:"centerId"`
	CenterName      string    `json:"centerName"`
	CourtNames      []string  `json:"courtNames"`
	BookDate        string    `json:"bookDate"` // YYYY-MM-DD
	TimeRange       string    `json:"timeRange"`
	OriginalPrice   int64     `json:"originalPrice"`
	ResalePrice     int64     `json:"resalePrice"`
	DiscountPercent int       `json:"discountPercent"`
	Description     string    `json:"description"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// List returns live marketplace listings, newest first. Enrichment runs in
// explicit stages: posts, then their bookings in one batch, then display
// names per center — a failed name lookup degrades to raw ids.
func (s *PassSvc) List(ctx context.Context) ([]PassListing, error) {
	posts, err := s.posts.ListActive(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, posts)
}

// MyPosts returns all of the seller's posts regardless of status.
func (s *PassSvc) MyPosts(ctx context.Context, sellerID string) ([]PassListing, error) {
	posts, err := s.posts.BySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, posts)
}

func (s *PassSvc) enrich(ctx context.Context, posts []domain.PassPost) ([]PassListing, error) {
	if len(posts) == 0 {
		return []PassListing{}, nil
	}

	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.BookingID)
	}
	bookings, err := s.bookings.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Booking, len(bookings))
	for i := range bookings {
		byID[bookings[i].ID] = &bookings[i]
	}

	type names struct {
		center string
		courts map[string]string
	}
	nameCache := map[string]names{}
	lookup := func(centerID string) names {
		if n, ok := nameCache[centerID]; ok {
			return n
		}
		centerName, courtNames, err := s.directory.DisplayNames(ctx, centerID)
		if err != nil {
			// enrichment only; fall back to raw ids
			log.Printf("[pass] display names for center %s: %v", centerID, err)
			centerName, courtNames = centerID, nil
		}
		n := names{center: centerName, courts: courtNames}
		nameCache[centerID] = n
		return n
	}

	out := make([]PassListing, 0, len(posts))
	for _, p := range posts {
		b, ok := byID[p.BookingID]
		if !ok {
			continue // booking soft-deleted under the post
		}
		n := lookup(b.CenterID)
		courts := make([]string, 0, len(b.CourtBookingDetails))
		for _, d := range b.CourtBookingDetails {
			if display, ok := n.courts[d.CourtID]; ok {
				courts = append(courts, display)
			} else {
				courts = append(courts, d.CourtID)
			}
		}
		out = append(out, PassListing{
			ID:              p.ID,
			BookingID:       p.BookingID,
			SellerID:        p.SellerID,
			SellerName:      b.UserName,
			CenterID:        b.CenterID,
			CenterName:      n.center,
			CourtNames:      courts,
			BookDate:        b.BookDate.Format("2006-01-02"),
			TimeRange:       timeRange(b),
			OriginalPrice:   p.OriginalPrice,
			ResalePrice:     p.ResalePrice,
			DiscountPercent: discountPercent(p.OriginalPrice, p.ResalePrice),
			Description:     p.Description,
			ExpiresAt:       p.ExpiresAt,
		})
	}
	return out, nil
}

func timeRange(b *domain.Booking) string {
	lo, ok := b.EarliestSlot()
	if !ok {
		return ""
	}
	hi, _ := b.LatestSlot()
	return fmt.Sprintf("%02d:00 - %02d:00", lo, hi+1)
}

func discountPercent(original, resale int64) int {
	if original <= 0 {
		return 0
	}
	return int(math.Round(float64(original-resale) / float64(original) * 100))
}

// ToggleInterest flips the (user, post) interest fact. Returns the action
// taken: "interested" or "uninterested". A duplicate insert racing in from
// the same user means "already interested", not an error.
func (s *PassSvc) ToggleInterest(ctx context.Context, userID, postID string) (string, error) {
	if !domain.ValidID(postID) {
		return "", fmt.Errorf("%w: malformed post id", ErrBadRequest)
	}
	post, err := s.posts.ByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: post %s", ErrNotFound, postID)
		}
		return "", err
	}

	removed, err := s.posts.RemoveInterest(ctx, userID, postID)
	if err != nil {
		return "", err
	}
	if removed {
		return "uninterested", nil
	}

	if err := s.posts.AddInterest(ctx, userID, postID); err != nil && !errors.Is(err, repository.ErrAlreadyInterested) {
		return "", err
	}
	if err := s.bus.Publish(ctx, events.RKPassInterest, events.PassInterest{
		PostID:   postID,
		SellerID: post.SellerID,
		BuyerID:  userID,
	}); err != nil {
		log.Printf("[pass] publish %s: %v", events.RKPassInterest, err)
	}
	return "interested", nil
}

func (s *PassSvc) InterestCount(ctx context.Context, postID string) (int64, error) {
	if !domain.ValidID(postID) {
		return 0, fmt.Errorf("%w: malformed post id", ErrBadRequest)
	}
	return s.posts.CountInterest(ctx, postID)
}

func (s *PassSvc) InterestedUsers(ctx context.Context, postID string) ([]domain.InterestedUser, error) {
	if !domain.ValidID(postID) {
		return nil, fmt.Errorf("%w: malformed post id", ErrBadRequest)
	}
	return s.posts.InterestedUsers(ctx, postID)
}

func (s *PassSvc) CheckInterest(ctx context.Context, userID, postID string) (bool, error) {
	if !domain.ValidID(postID) {
		return false, fmt.Errorf("%w: malformed post id", ErrBadRequest)
	}
	return s.posts.HasInterest(ctx, userID, postID)
}
