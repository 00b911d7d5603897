package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/srgjo27/hotel_reservation/internal/core/domain"
	"github.com/srgjo27/hotel_reservation/internal/core/services"
)

const dateLayout = "2006-01-02"

// actorHeader carries the opaque actor reference supplied by the
// identity provider in front of this service.
const actorHeader = "X-Actor-Ref"

type BookingHandler struct {
	svc      *services.BookingService
	validate *validator.Validate
	log      zerolog.Logger
}

func NewBookingHandler(svc *services.BookingService, log zerolog.Logger) *BookingHandler {
	return &BookingHandler{
		svc:      svc,
		validate: validator.New(),
		log:      log,
	}
}

// Register wires the handler's routes onto the mux.
func (h *BookingHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/reservations", h.Reservations)
	mux.HandleFunc("/reservations/cancel", h.CancelReservation)
	mux.HandleFunc("/reservations/cost", h.ReservationCost)
	mux.HandleFunc("/rooms", h.ListRooms)
	mux.HandleFunc("/rooms/available", h.ListAvailableRooms)
	mux.HandleFunc("/healthz", h.Health)
}

type CreateReservationRequest struct {
	GuestName string `json:"guest_name" validate:"required"`
	RoomID    int64  `json:"room_id" validate:"required"`
	CheckIn   string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut  string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

type CancelReservationRequest struct {
	ReservationID string `json:"reservation_id" validate:"required,uuid4"`
}

type ReservationResponse struct {
	ID        string `json:"id"`
	GuestName string `json:"guest_name"`
	RoomID    int64  `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Status    string `json:"status"`
	Nights    int    `json:"nights"`
}

type RoomResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	BaseRate string `json:"base_rate"`
	Category string `json:"category"`
	Floor    int    `json:"floor"`
	Capacity int    `json:"capacity"`
}

func toReservationResponse(res *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        res.ID.String(),
		GuestName: res.GuestName,
		RoomID:    res.RoomID,
		CheckIn:   res.CheckIn.Format(dateLayout),
		CheckOut:  res.CheckOut.Format(dateLayout),
		Status:    string(res.Status),
		Nights:    res.Nights(),
	}
}

func toRoomResponse(room domain.Room) RoomResponse {
	return RoomResponse{
		ID:       room.ID,
		Name:     room.Name,
		BaseRate: room.BaseRate.String(),
		Category: string(room.Category),
		Floor:    room.Floor,
		Capacity: room.Capacity,
	}
}

func actorRef(r *http.Request) string {
	if actor := r.Header.Get(actorHeader); actor != "" {
		return actor
	}
	return "anonymous"
}

// Reservations serves POST (create) and GET (list) on /reservations.
func (h *BookingHandler) Reservations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createReservation(w, r)
	case http.MethodGet:
		h.listReservations(w, r)
	default:
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *BookingHandler) createReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	checkIn, _ := time.Parse(dateLayout, req.CheckIn)
	checkOut, _ := time.Parse(dateLayout, req.CheckOut)

	res, err := h.svc.CreateReservation(r.Context(), req.GuestName, req.RoomID, checkIn, checkOut, actorRef(r))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, toReservationResponse(res))
}

func (h *BookingHandler) listReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.svc.ListReservations(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	out := make([]ReservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, toReservationResponse(&reservations[i]))
	}

	h.writeJSON(w, http.StatusOK, out)
}

// CancelReservation serves POST /reservations/cancel.
func (h *BookingHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req CancelReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := uuid.Parse(req.ReservationID)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	cancelled, err := h.svc.CancelReservation(r.Context(), id, actorRef(r))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	if !cancelled {
		h.writeError(w, http.StatusNotFound, domain.ErrReservationNotFound.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]bool{"cancelled": true})
}

// ReservationCost serves GET /reservations/cost?id=<uuid>.
func (h *BookingHandler) ReservationCost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid reservation id")
		return
	}

	cost, err := h.svc.CalculateCost(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"reservation_id": id.String(),
		"total_cost":     cost.String(),
	})
}

// ListRooms serves GET /rooms.
func (h *BookingHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rooms, err := h.svc.ListRooms(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, roomResponses(rooms))
}

// ListAvailableRooms serves GET /rooms/available?start=&end=&category=.
func (h *BookingHandler) ListAvailableRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start, err := time.Parse(dateLayout, r.URL.Query().Get("start"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
		return
	}

	end, err := time.Parse(dateLayout, r.URL.Query().Get("end"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid end date, expected YYYY-MM-DD")
		return
	}

	category := domain.ParseRoomCategory(r.URL.Query().Get("category"))

	rooms, err := h.svc.ListAvailableRooms(r.Context(), start, end, category)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, roomResponses(rooms))
}

// Health serves GET /healthz.
func (h *BookingHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func roomResponses(rooms []domain.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, toRoomResponse(room))
	}
	return out
}

func (h *BookingHandler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidDateRange) || errors.Is(err, domain.ErrValidation):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrRoomNotFound) || errors.Is(err, domain.ErrReservationNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrRoomUnavailable):
		h.writeError(w, http.StatusConflict, err.Error())
	default:
		h.log.Error().Err(err).Msg("request failed")
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *BookingHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
