package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/hotel_reservation/internal/adapter/handler"
	"github.com/srgjo27/hotel_reservation/internal/adapter/repository/memory"
	"github.com/srgjo27/hotel_reservation/internal/core/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	catalog := memory.NewRoomCatalog(memory.SeedRooms()...)
	store := memory.NewReservationStore()
	svc := services.NewBookingService(catalog, store, nil, zerolog.Nop())

	mux := http.NewServeMux()
	handler.NewBookingHandler(svc, zerolog.Nop()).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-Ref", "clerk-7")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestBookingFlow(t *testing.T) {
	server := newTestServer(t)

	// book room 101 for [2024-01-10, 2024-01-13)
	resp := postJSON(t, server.URL+"/reservations", `{
		"guest_name": "Ana",
		"room_id": 101,
		"check_in": "2024-01-10",
		"check_out": "2024-01-13"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created handler.ReservationResponse
	decode(t, resp, &created)
	assert.Equal(t, "CONFIRMED", created.Status)
	assert.Equal(t, 3, created.Nights)

	// overlapping attempt conflicts
	resp = postJSON(t, server.URL+"/reservations", `{
		"guest_name": "Luis",
		"room_id": 101,
		"check_in": "2024-01-12",
		"check_out": "2024-01-15"
	}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// adjacent stay is fine
	resp = postJSON(t, server.URL+"/reservations", `{
		"guest_name": "Luis",
		"room_id": 101,
		"check_in": "2024-01-13",
		"check_out": "2024-01-15"
	}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// cost of the first stay: 100 * 3 nights, standard
	resp, err := http.Get(server.URL + "/reservations/cost?id=" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cost map[string]string
	decode(t, resp, &cost)
	assert.Equal(t, "300", cost["total_cost"])

	// cancel and rebook the same range
	resp = postJSON(t, server.URL+"/reservations/cancel", `{"reservation_id": "`+created.ID+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, server.URL+"/reservations", `{
		"guest_name": "Mar",
		"room_id": 101,
		"check_in": "2024-01-10",
		"check_out": "2024-01-13"
	}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateReservation_BadRequests(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty stay", `{"guest_name":"Ana","room_id":101,"check_in":"2024-01-10","check_out":"2024-01-10"}`, http.StatusBadRequest},
		{"bad date format", `{"guest_name":"Ana","room_id":101,"check_in":"10/01/2024","check_out":"2024-01-13"}`, http.StatusBadRequest},
		{"missing guest", `{"room_id":101,"check_in":"2024-01-10","check_out":"2024-01-13"}`, http.StatusBadRequest},
		{"unknown room", `{"guest_name":"Ana","room_id":999,"check_in":"2024-01-10","check_out":"2024-01-13"}`, http.StatusNotFound},
		{"not json", `not json`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, server.URL+"/reservations", tt.body)
			assert.Equal(t, tt.want, resp.StatusCode)
			resp.Body.Close()
		})
	}
}

func TestCancelUnknownReservation(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/reservations/cancel",
		`{"reservation_id": "6ba7b810-9dad-41d1-80b4-00c04fd430c8"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestListAvailableRooms_Endpoint(t *testing.T) {
	server := newTestServer(t)

	// occupy suite 201
	resp := postJSON(t, server.URL+"/reservations", `{
		"guest_name": "Ana",
		"room_id": 201,
		"check_in": "2024-02-01",
		"check_out": "2024-02-05"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(server.URL + "/rooms/available?start=2024-02-02&end=2024-02-03&category=suite")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rooms []handler.RoomResponse
	decode(t, resp, &rooms)
	require.Len(t, rooms, 1)
	assert.Equal(t, int64(202), rooms[0].ID)

	// inverted range is rejected before hitting the engine
	resp, err = http.Get(server.URL + "/rooms/available?start=2024-02-05&end=2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// unknown category means no filter
	resp, err = http.Get(server.URL + "/rooms/available?start=2024-03-01&end=2024-03-02&category=penthouse")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &rooms)
	assert.Len(t, rooms, 6)
}
