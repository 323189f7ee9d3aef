package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/domain"
	"github.com/chiendz11/Badminton-manager-microservices-sub001/internal/events"
)

const testPostID = "65a1b2c3d4e5f6a7b8c9d0f2"

func passFixtures() (*MockPassStore, *MockBookingStore, *MockDirectory, *MockBus, *PassSvc) {
	posts := new(MockPassStore)
	bookings := new(MockBookingStore)
	dir := new(MockDirectory)
	bus := new(MockBus)
	svc := NewPassSvc(posts, bookings, dir, bus)
	return posts, bookings, dir, bus, svc
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:       testBookingID,
		UserID:   "seller",
		UserName: "Minh",
		CenterID: "C1",
		BookDate: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		Status:   domain.StatusConfirmed,
		Price:    300000,
		CourtBookingDetails: domain.CourtDetails{
			{CourtID: "CT1", Timeslots: []int{17, 18}},
		},
	}
}

func TestCreatePost_HappyPath(t *testing.T) {
	posts, bookings, _, _, svc := passFixtures()
	b := confirmedBooking()
	bookings.On("ByID", mock.Anything, testBookingID).Return(b, nil)
	posts.On("LiveByBookingID", mock.Anything, testBookingID).Return(nil, gorm.ErrRecordNotFound)
	posts.On("Create", mock.Anything, mock.Anything).Return(nil)
	// well before play time
	svc.now = func() time.Time { return time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC) }

	post, err := svc.CreatePost(context.Background(), "seller", testBookingID, 250000, "busy that evening")

	require.NoError(t, err)
	assert.Equal(t, domain.PassActive, post.Status)
	assert.EqualValues(t, 300000, post.OriginalPrice)
	assert.Equal(t, time.Date(2026, 9, 2, 17, 0, 0, 0, time.UTC), post.ExpiresAt, "expires at play time")
}

func TestCreatePost_NotOwner(t *testing.T) {
	posts, bookings, _, _, svc := passFixtures()
	bookings.On("ByID", mock.Anything, testBookingID).Return(confirmedBooking(), nil)

	_, err := svc.CreatePost(context.Background(), "someone-else", testBookingID, 250000, "")
	assert.ErrorIs(t, err, ErrForbidden)
	posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePost_RequiresConfirmedBooking(t *testing.T) {
	_, bookings, _, _, svc := passFixtures()
	b := confirmedBooking()
	b.Status = domain.StatusPending
	bookings.On("ByID", mock.Anything, testBookingID).Return(b, nil)

	_, err := svc.CreatePost(context.Background(), "seller", testBookingID, 250000, "")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestCreatePost_DuplicateListingRejected(t *testing.T) {
	posts, bookings, _, _, svc := passFixtures()
	bookings.On("ByID", mock.Anything, testBookingID).Return(confirmedBooking(), nil)
	posts.On("LiveByBookingID", mock.Anything, testBookingID).
		Return(&domain.PassPost{ID: testPostID, Status: domain.PassActive}, nil)

	_, err := svc.CreatePost(context.Background(), "seller", testBookingID, 250000, "")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestCreatePost_TooLateToPass(t *testing.T) {
	posts, bookings, _, _, svc := passFixtures()
	bookings.On("ByID", mock.Anything, testBookingID).Return(confirmedBooking(), nil)
	posts.On("LiveByBookingID", mock.Anything, testBookingID).Return(nil, gorm.ErrRecordNotFound)
	// 16:30 — half an hour before the 17:00 play time
	svc.now = func() time.Time { return time.Date(2026, 9, 2, 16, 30, 0, 0, time.UTC) }

	_, err := svc.CreatePost(context.Background(), "seller", testBookingID, 250000, "")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestCreatePost_MissingBooking(t *testing.T) {
	_, bookings, _, _, svc := passFixtures()
	bookings.On("ByID", mock.Anything, testBookingID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreatePost(context.Background(), "seller", testBookingID, 250000, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePost_MalformedID(t *testing.T) {
	_, _, _, _, svc := passFixtures()
	_, err := svc.CreatePost(context.Background(), "seller", "nope", 250000, "")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestList_EnrichesAndComputesDiscount(t *testing.T) {
	posts, bookings, dir, _, svc := passFixtures()
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	posts.On("ListActive", mock.Anything, now).Return([]domain.PassPost{{
		ID:            testPostID,
		BookingID:     testBookingID,
		SellerID:      "seller",
		OriginalPrice: 300000,
		ResalePrice:   250000,
		Status:        domain.PassActive,
	}}, nil)
	bookings.On("ByIDs", mock.Anything, []string{testBookingID}).
		Return([]domain.Booking{*confirmedBooking()}, nil)
	dir.On("DisplayNames", mock.Anything, "C1").
		Return("Nha thi dau Cau Giay", map[string]string{"CT1": "Court 1"}, nil)

	out, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 1)
	l := out[0]
	assert.Equal(t, "Nha thi dau Cau Giay", l.CenterName)
	assert.Equal(t, []string{"Court 1"}, l.CourtNames)
	assert.Equal(t, "17:00 - 19:00", l.TimeRange)
	assert.Equal(t, 17, l.DiscountPercent, "round(50000/300000*100)")
	assert.Equal(t, "Minh", l.SellerName)
}

func TestList_DirectoryFailureFallsBackToRawIDs(t *testing.T) {
	posts, bookings, dir, _, svc := passFixtures()
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	posts.On("ListActive", mock.Anything, now).Return([]domain.PassPost{{
		ID:        testPostID,
		BookingID: testBookingID,
	}}, nil)
	bookings.On("ByIDs", mock.Anything, []string{testBookingID}).
		Return([]domain.Booking{*confirmedBooking()}, nil)
	dir.On("DisplayNames", mock.Anything, "C1").Return("", nil, assert.AnError)

	out, err := svc.List(context.Background())

	require.NoError(t, err, "a dead directory must not break the listing")
	require.Len(t, out, 1)
	assert.Equal(t, "C1", out[0].CenterName)
	assert.Equal(t, []string{"CT1"}, out[0].CourtNames)
}

func TestToggleInterest_AddsThenRemoves(t *testing.T) {
	posts, _, _, bus, svc := passFixtures()
	post := &domain.PassPost{ID: testPostID, SellerID: "seller"}
	posts.On("ByID", mock.Anything, testPostID).Return(post, nil)

	// first toggle: nothing to remove, insert, notify seller
	posts.On("RemoveInterest", mock.Anything, "buyer", testPostID).Return(false, nil).Once()
	posts.On("AddInterest", mock.Anything, "buyer", testPostID).Return(nil).Once()
	bus.On("Publish", mock.Anything, events.RKPassInterest, mock.MatchedBy(func(v any) bool {
		evt, ok := v.(events.PassInterest)
		return ok && evt.SellerID == "seller" && evt.BuyerID == "buyer"
	})).Return(nil).Once()

	action, err := svc.ToggleInterest(context.Background(), "buyer", testPostID)
	require.NoError(t, err)
	assert.Equal(t, "interested", action)

	// second toggle: the record is there, remove it, no event
	posts.On("RemoveInterest", mock.Anything, "buyer", testPostID).Return(true, nil).Once()

	action, err = svc.ToggleInterest(context.Background(), "buyer", testPostID)
	require.NoError(t, err)
	assert.Equal(t, "uninterested", action)
	bus.AssertNumberOfCalls(t, "Publish", 1)
}

func TestToggleInterest_MalformedPostID(t *testing.T) {
	_, _, _, _, svc := passFixtures()
	_, err := svc.ToggleInterest(context.Background(), "buyer", "bad id")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestInterestQueries_ValidateID(t *testing.T) {
	_, _, _, _, svc := passFixtures()

	_, err := svc.InterestCount(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.InterestedUsers(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.CheckInterest(context.Background(), "u", "zzz")
	assert.ErrorIs(t, err, ErrBadRequest)
}
