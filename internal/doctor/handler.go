package doctor

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"healthmate/internal/records"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type QueryRequest struct {
	DoctorID string `json:"doctor_id"`
	Question string `json:"question"`
}

func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.DoctorID == "" {
		req.DoctorID = "Dr. Smith"
	}

	answer, err := h.svc.Answer(r.Context(), req.DoctorID, req.Question)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			http.Error(w, "Patient not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Query failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"answer": answer})
}

func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	doctorID := r.URL.Query().Get("doctor_id")
	date := r.URL.Query().Get("date")
	if doctorID == "" || date == "" {
		http.Error(w, "Missing doctor_id or date", http.StatusBadRequest)
		return
	}

	entries, err := h.svc.ScheduleForDate(r.Context(), doctorID, date)
	if err != nil {
		http.Error(w, "Failed to load schedule", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []records.ScheduleEntry{}
	}

	json.NewEncoder(w).Encode(entries)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/doctor/query", h.HandleQuery)
	r.Get("/doctor/schedule", h.HandleSchedule)
}
