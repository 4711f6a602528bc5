package intake

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"healthmate/internal/records"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type RegisterPatientRequest struct {
	Name string `json:"name"`
}

func (h *Handler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	patient, err := h.svc.RegisterPatient(r.Context(), req.Name)
	if err != nil {
		http.Error(w, "Failed to register patient", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(patient)
}

type IntakeRequest struct {
	PatientID  string `json:"patient_id"`
	Symptoms   string `json:"symptoms"`
	ReportPath string `json:"report_path,omitempty"`
}

func (h *Handler) HandleIntake(w http.ResponseWriter, r *http.Request) {
	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.PatientID == "" {
		http.Error(w, "Missing patient_id", http.StatusBadRequest)
		return
	}

	result, err := h.svc.ProcessPatientRequest(r.Context(), req.PatientID, req.Symptoms, req.ReportPath)
	if err != nil {
		http.Error(w, "Processing failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(result)
}

func (h *Handler) PatientHistory(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "id")

	history, err := h.svc.PatientHistory(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			http.Error(w, "Patient not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []records.Visit{}
	}

	json.NewEncoder(w).Encode(history)
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/patients", h.RegisterPatient)
	r.Post("/intake", h.HandleIntake)
	r.Get("/patients/{id}/history", h.PatientHistory)
}
