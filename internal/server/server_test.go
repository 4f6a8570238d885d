package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"itemshare-api/internal/model"
	"itemshare-api/internal/repository/memory"
	"itemshare-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Options{
		Store:         memory.NewStore(),
		Clock:         service.FixedClock(testNow),
		Logger:        zap.NewNop(),
		EnableMetrics: true,
	})
}

// do runs a request through the router. callerID 0 omits the identity
// header.
func do(t *testing.T, s *Server, method, path string, callerID int64, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if callerID != 0 {
		req.Header.Set(IdentityHeader, fmt.Sprintf("%d", callerID))
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func createUser(t *testing.T, s *Server, name, email string) *model.User {
	t.Helper()
	w := do(t, s, "POST", "/users", 0, map[string]string{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	u := decode[*model.User](t, w)
	return u
}

func createItem(t *testing.T, s *Server, ownerID int64, name string) *model.Item {
	t.Helper()
	w := do(t, s, "POST", "/items", ownerID, map[string]any{
		"name":        name,
		"description": name + " description",
		"available":   true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[*model.Item](t, w)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, "GET", "/health", 0, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestDBPingWithoutPool(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, "GET", "/dbping", 0, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	do(t, s, "GET", "/health", 0, nil)
	w := do(t, s, "GET", "/metrics", 0, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestIdentityMiddleware(t *testing.T) {
	s := newTestServer(t)

	t.Run("missing header", func(t *testing.T) {
		w := do(t, s, "GET", "/items", 0, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode[map[string]string](t, w)
		assert.Contains(t, body["error"], IdentityHeader)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/items", nil)
		req.Header.Set(IdentityHeader, "not-a-number")
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("user routes need no header", func(t *testing.T) {
		w := do(t, s, "GET", "/users", 0, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUserEndpoints(t *testing.T) {
	s := newTestServer(t)
	alice := createUser(t, s, "alice", "alice@example.com")

	t.Run("get", func(t *testing.T) {
		w := do(t, s, "GET", fmt.Sprintf("/users/%d", alice.ID), 0, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[*model.User](t, w)
		assert.Equal(t, "alice", got.Name)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		w := do(t, s, "POST", "/users", 0, map[string]string{"name": "bob", "email": "alice@example.com"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("patch", func(t *testing.T) {
		w := do(t, s, "PATCH", fmt.Sprintf("/users/%d", alice.ID), 0, map[string]string{"name": "alicia"})
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[*model.User](t, w)
		assert.Equal(t, "alicia", got.Name)
		assert.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("missing user is 404 with error body", func(t *testing.T) {
		w := do(t, s, "GET", "/users/999", 0, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decode[map[string]string](t, w)
		assert.NotEmpty(t, body["error"])
	})

	t.Run("delete", func(t *testing.T) {
		w := do(t, s, "DELETE", fmt.Sprintf("/users/%d", alice.ID), 0, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		w = do(t, s, "GET", fmt.Sprintf("/users/%d", alice.ID), 0, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestItemEndpoints(t *testing.T) {
	s := newTestServer(t)
	owner := createUser(t, s, "owner", "owner@example.com")
	other := createUser(t, s, "other", "other@example.com")
	item := createItem(t, s, owner.ID, "drill")

	t.Run("owner id never serializes", func(t *testing.T) {
		w := do(t, s, "GET", fmt.Sprintf("/items/%d", item.ID), other.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "ownerId")
	})

	t.Run("get returns comments array even when empty", func(t *testing.T) {
		w := do(t, s, "GET", fmt.Sprintf("/items/%d", item.ID), other.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"comments":[]`)
	})

	t.Run("non-owner patch is 404", func(t *testing.T) {
		w := do(t, s, "PATCH", fmt.Sprintf("/items/%d", item.ID), other.ID, map[string]string{"name": "mine"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("search", func(t *testing.T) {
		w := do(t, s, "GET", "/items/search?text=DRI", other.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[[]*model.Item](t, w)
		require.Len(t, got, 1)
		assert.Equal(t, item.ID, got[0].ID)
	})

	t.Run("blank search is empty list not null", func(t *testing.T) {
		w := do(t, s, "GET", "/items/search?text=", other.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})

	t.Run("list own items", func(t *testing.T) {
		w := do(t, s, "GET", "/items", owner.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[[]*model.ItemDetails](t, w)
		require.Len(t, got, 1)
	})

	t.Run("comment without rental is 400", func(t *testing.T) {
		w := do(t, s, "POST", fmt.Sprintf("/items/%d/comment", item.ID), other.ID, map[string]string{"text": "nope"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/items", bytes.NewBufferString("{"))
		req.Header.Set(IdentityHeader, fmt.Sprintf("%d", owner.ID))
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBookingEndpoints(t *testing.T) {
	s := newTestServer(t)
	owner := createUser(t, s, "owner", "owner@example.com")
	booker := createUser(t, s, "booker", "booker@example.com")
	item := createItem(t, s, owner.ID, "drill")

	bookingBody := map[string]any{
		"itemId": item.ID,
		"start":  testNow.Add(time.Hour).Format(time.RFC3339),
		"end":    testNow.Add(2 * time.Hour).Format(time.RFC3339),
	}

	w := do(t, s, "POST", "/bookings", booker.ID, bookingBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decode[*model.Booking](t, w)
	assert.Equal(t, model.StatusWaiting, booking.Status)
	require.NotNil(t, booking.Item)
	assert.Equal(t, item.ID, booking.Item.ID)

	t.Run("approve", func(t *testing.T) {
		w := do(t, s, "PATCH", fmt.Sprintf("/bookings/%d?approved=true", booking.ID), owner.ID, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		got := decode[*model.Booking](t, w)
		assert.Equal(t, model.StatusApproved, got.Status)
	})

	t.Run("second decision is 400", func(t *testing.T) {
		w := do(t, s, "PATCH", fmt.Sprintf("/bookings/%d?approved=true", booking.ID), owner.ID, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("stranger gets 404", func(t *testing.T) {
		stranger := createUser(t, s, "stranger", "stranger@example.com")
		w := do(t, s, "GET", fmt.Sprintf("/bookings/%d", booking.ID), stranger.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("booker ledger", func(t *testing.T) {
		w := do(t, s, "GET", "/bookings?state=ALL", booker.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[[]*model.Booking](t, w)
		require.Len(t, got, 1)
	})

	t.Run("owner ledger defaults to ALL", func(t *testing.T) {
		w := do(t, s, "GET", "/bookings/owner", owner.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[[]*model.Booking](t, w)
		require.Len(t, got, 1)
	})

	t.Run("unknown state is 400", func(t *testing.T) {
		w := do(t, s, "GET", "/bookings?state=MAYBE", booker.ID, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-numeric paging is 400", func(t *testing.T) {
		w := do(t, s, "GET", "/bookings?from=abc", booker.ID, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("self-booking is 404", func(t *testing.T) {
		w := do(t, s, "POST", "/bookings", owner.ID, bookingBody)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRequestEndpoints(t *testing.T) {
	s := newTestServer(t)
	alice := createUser(t, s, "alice", "alice@example.com")
	bob := createUser(t, s, "bob", "bob@example.com")

	w := do(t, s, "POST", "/requests", alice.ID, map[string]string{"description": "need a ladder"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	request := decode[*model.ItemRequest](t, w)

	// Bob answers the request.
	w = do(t, s, "POST", "/items", bob.ID, map[string]any{
		"name":        "ladder",
		"description": "3m ladder",
		"available":   true,
		"requestId":   request.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("own requests include answers", func(t *testing.T) {
		w := do(t, s, "GET", "/requests", alice.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[[]*model.ItemRequest](t, w)
		require.Len(t, got, 1)
		require.Len(t, got[0].Items, 1)
		assert.Equal(t, "ladder", got[0].Items[0].Name)
	})

	t.Run("all excludes own", func(t *testing.T) {
		w := do(t, s, "GET", "/requests/all", alice.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[[]*model.ItemRequest](t, w)
		assert.Empty(t, got)

		w = do(t, s, "GET", "/requests/all", bob.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got = decode[[]*model.ItemRequest](t, w)
		require.Len(t, got, 1)
	})

	t.Run("get by id", func(t *testing.T) {
		w := do(t, s, "GET", fmt.Sprintf("/requests/%d", request.ID), bob.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[*model.ItemRequest](t, w)
		assert.Equal(t, "need a ladder", got.Description)
		require.Len(t, got.Items, 1)
	})
}
