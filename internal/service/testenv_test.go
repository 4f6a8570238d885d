package service

import (
	"context"
	"testing"
	"time"

	"itemshare-api/internal/model"
	"itemshare-api/internal/repository"
	"itemshare-api/internal/repository/memory"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testNow is the frozen instant shared by the service tests.
var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store    *repository.Store
	users    *UserService
	items    *ItemService
	bookings *BookingService
	requests *RequestService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	clock := FixedClock(testNow)
	logger := zap.NewNop()
	return &testEnv{
		store:    store,
		users:    NewUserService(store, logger),
		items:    NewItemService(store, clock, logger),
		bookings: NewBookingService(store, clock, logger),
		requests: NewRequestService(store, clock, logger),
	}
}

func (e *testEnv) user(t *testing.T, name, email string) *model.User {
	t.Helper()
	u, err := e.users.Create(context.Background(), CreateUserInput{Name: name, Email: email})
	require.NoError(t, err)
	return u
}

func (e *testEnv) item(t *testing.T, ownerID int64, name string, available bool) *model.Item {
	t.Helper()
	it, err := e.items.Create(context.Background(), ownerID, CreateItemInput{
		Name:        name,
		Description: name + " description",
		Available:   boolPtr(available),
	})
	require.NoError(t, err)
	return it
}

// booking seeds a booking row directly so tests can place windows in
// the past, which Create rejects.
func (e *testEnv) booking(t *testing.T, itemID, bookerID int64, start, end time.Time, status model.BookingStatus) *model.Booking {
	t.Helper()
	b := &model.Booking{
		Start:    start,
		End:      end,
		ItemID:   itemID,
		BookerID: bookerID,
		Status:   status,
	}
	require.NoError(t, e.store.Bookings.Create(context.Background(), b))
	return b
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func hours(n int) time.Duration { return time.Duration(n) * time.Hour }
