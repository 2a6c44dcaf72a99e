package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ogurasousui/hrms-lite/internal/core/attendance"
)

type attendanceResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

type todayStatsResponse struct {
	Date        string `json:"date"`
	Present     int    `json:"present"`
	Absent      int    `json:"absent"`
	TotalMarked int    `json:"total_marked"`
}

type markAttendancePayload struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
}

type updateStatusPayload struct {
	Status string `json:"status"`
}

func toAttendanceResponse(rec *attendance.Record) attendanceResponse {
	return attendanceResponse{
		ID:         rec.ID,
		EmployeeID: rec.EmployeeID,
		Date:       rec.Date,
		Status:     string(rec.Status),
		Timestamp:  rec.Timestamp,
	}
}

func toAttendanceResponses(records []*attendance.Record) []attendanceResponse {
	out := make([]attendanceResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toAttendanceResponse(rec))
	}
	return out
}

type attendanceHandler struct {
	svc          attendance.UseCase
	defaultLimit int
}

func newAttendanceHandler(svc attendance.UseCase, defaultLimit int) *attendanceHandler {
	return &attendanceHandler{svc: svc, defaultLimit: defaultLimit}
}

func (h *attendanceHandler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Post("/", h.handleMark)
		r.Get("/all", h.handleListRecent)
		r.Get("/{employeeID}", h.handleListByEmployee)
		r.Patch("/{recordID}", h.handleUpdateStatus)
	})
	r.Get("/stats/attendance/today", h.handleTodayStats)
}

func (h *attendanceHandler) handleMark(w http.ResponseWriter, r *http.Request) {
	var payload markAttendancePayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, r, "invalid request payload")
		return
	}

	rec, err := h.svc.MarkAttendance(r.Context(), attendance.MarkAttendanceInput{
		EmployeeID: payload.EmployeeID,
		Date:       payload.Date,
		Status:     attendance.Status(payload.Status),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, r, toAttendanceResponse(rec))
}

func (h *attendanceHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload updateStatusPayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, r, "invalid request payload")
		return
	}

	rec, err := h.svc.UpdateStatus(r.Context(), attendance.UpdateStatusInput{
		ID:     chi.URLParam(r, "recordID"),
		Status: attendance.Status(payload.Status),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, r, toAttendanceResponse(rec))
}

func (h *attendanceHandler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListByEmployee(r.Context(), attendance.ListByEmployeeInput{EmployeeID: chi.URLParam(r, "employeeID")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, r, toAttendanceResponses(records))
}

func (h *attendanceHandler) handleListRecent(w http.ResponseWriter, r *http.Request) {
	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(w, r, "limit must be an integer")
			return
		}
		limit = parsed
	}

	records, err := h.svc.ListRecent(r.Context(), attendance.ListRecentInput{Limit: limit})
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, r, toAttendanceResponses(records))
}

func (h *attendanceHandler) handleTodayStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.TodayStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, r, todayStatsResponse{
		Date:        stats.Date,
		Present:     stats.Present,
		Absent:      stats.Absent,
		TotalMarked: stats.TotalMarked,
	})
}
