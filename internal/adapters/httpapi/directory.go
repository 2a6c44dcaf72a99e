package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ogurasousui/hrms-lite/internal/core/directory"
)

type employeeResponse struct {
	EmployeeID string    `json:"employee_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}

type addEmployeePayload struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

func toEmployeeResponse(e *directory.Employee) employeeResponse {
	return employeeResponse{
		EmployeeID: e.EmployeeID,
		FullName:   e.FullName,
		Email:      e.Email,
		Department: e.Department,
		CreatedAt:  e.CreatedAt,
	}
}

type directoryHandler struct {
	svc directory.UseCase
}

func newDirectoryHandler(svc directory.UseCase) *directoryHandler {
	return &directoryHandler{svc: svc}
}

func (h *directoryHandler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Post("/", h.handleAdd)
		r.Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
		r.Delete("/{employeeID}", h.handleRemove)
	})
}

func (h *directoryHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var payload addEmployeePayload
	if err := decodeJSON(r, &payload); err != nil {
		badRequest(w, r, "invalid request payload")
		return
	}

	emp, err := h.svc.AddEmployee(r.Context(), directory.AddEmployeeInput{
		EmployeeID: payload.EmployeeID,
		FullName:   payload.FullName,
		Email:      payload.Email,
		Department: payload.Department,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	created(w, r, toEmployeeResponse(emp))
}

func (h *directoryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	employees := make([]employeeResponse, 0)
	for emp, err := range h.svc.ListEmployees(r.Context()) {
		if err != nil {
			writeError(w, r, err)
			return
		}
		employees = append(employees, toEmployeeResponse(emp))
	}
	success(w, r, employees)
}

func (h *directoryHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.svc.GetEmployee(r.Context(), directory.GetEmployeeInput{EmployeeID: chi.URLParam(r, "employeeID")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	success(w, r, toEmployeeResponse(emp))
}

func (h *directoryHandler) handleRemove(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if err := h.svc.RemoveEmployee(r.Context(), directory.RemoveEmployeeInput{EmployeeID: employeeID}); err != nil {
		writeError(w, r, err)
		return
	}
	success(w, r, map[string]string{"message": "employee deleted", "employee_id": employeeID})
}
