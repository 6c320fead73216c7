package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"roombook/internal/rooms/service"
	apperrors "roombook/pkg/errors"
	httputil "roombook/pkg/http"
	"roombook/pkg/logger"
	"roombook/pkg/middleware"
	"roombook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RoomHandler struct {
	service service.RoomService
	log     *logger.Logger
}

func NewRoomHandler(service service.RoomService, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log,
	}
}

// Room inventory is managed by administrators; everyone can read it.

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !middleware.ActorFrom(r.Context()).IsAdmin() {
		httputil.WriteError(w, apperrors.Forbidden("Only administrators can manage rooms"))
		return
	}

	var room model.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Create(r.Context(), &room); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteCreated(w, room)
}

func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, room)
}

func (h *RoomHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	query := r.URL.Query()
	filter := model.RoomFilter{
		Type:     query.Get("type"),
		Building: query.Get("building"),
		Location: query.Get("location"),
	}
	if capStr := query.Get("capacity"); capStr != "" {
		capacity, err := strconv.Atoi(capStr)
		if err != nil || capacity < 1 {
			httputil.WriteError(w, apperrors.InvalidInput("invalid capacity parameter: "+capStr))
			return
		}
		filter.Capacity = capacity
	}

	window := service.AvailabilityWindow{
		Date:      query.Get("date"),
		StartTime: query.Get("start_time"),
		EndTime:   query.Get("end_time"),
	}
	if !window.IsZero() && (window.Date == "" || window.StartTime == "" || window.EndTime == "") {
		httputil.WriteError(w, apperrors.InvalidInput("availability search requires 'date', 'start_time' and 'end_time' together"))
		return
	}

	rooms, total, err := h.service.Search(r.Context(), filter, window, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WritePaginated(w, rooms, total, limit, offset)
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !middleware.ActorFrom(r.Context()).IsAdmin() {
		httputil.WriteError(w, apperrors.Forbidden("Only administrators can manage rooms"))
		return
	}

	var updates model.RoomUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &updates); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !middleware.ActorFrom(r.Context()).IsAdmin() {
		httputil.WriteError(w, apperrors.Forbidden("Only administrators can manage rooms"))
		return
	}

	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RoomHandler) Timetable(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date == "" {
		httputil.WriteError(w, apperrors.InvalidInput("'date' query parameter is required"))
		return
	}

	slots, err := h.service.Timetable(r.Context(), ps.ByName("id"), date)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteSuccess(w, map[string]any{
		"room_id": ps.ByName("id"),
		"date":    date,
		"slots":   slots,
	})
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/rooms", h.Create)
	router.GET("/api/v1/rooms", h.Search)
	router.GET("/api/v1/rooms/id/:id", h.GetByID)
	router.PATCH("/api/v1/rooms/id/:id", h.Update)
	router.DELETE("/api/v1/rooms/id/:id", h.Delete)
	router.GET("/api/v1/rooms/id/:id/timetable", h.Timetable)
}
