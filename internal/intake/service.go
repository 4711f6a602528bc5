package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"healthmate/internal/records"
	"healthmate/internal/report"
	"healthmate/internal/scheduling"
	"healthmate/internal/triage"
)

// Collaborator contracts, defined here to decouple the workflow from the
// concrete implementations.

// Classifier triages free-text symptoms. It never fails: the triage layer
// substitutes deterministic rules when the remote model is unavailable.
type Classifier interface {
	Analyze(ctx context.Context, symptoms string) triage.Result
}

// ReportAnalyzer extracts text from a report document. Failures are
// captured inside the Analysis, never raised.
type ReportAnalyzer interface {
	ProcessReport(ctx context.Context, path string) report.Analysis
}

// Scheduler books an appointment for a department on a date.
type Scheduler interface {
	Schedule(ctx context.Context, patientID, department, date string) scheduling.Booking
}

// ReminderCycle runs one scan-and-dispatch pass over pending reminders.
type ReminderCycle interface {
	RunCycle(ctx context.Context) error
}

// Result aggregates one workflow run. ReportAnalysis is absent when no
// report was supplied; Appointment is absent when scheduling failed.
type Result struct {
	PatientID      string               `json:"patient_id"`
	Triage         triage.Result        `json:"triage"`
	ReportAnalysis *report.Analysis     `json:"report_analysis,omitempty"`
	Appointment    *records.Appointment `json:"appointment,omitempty"`
}

type Service interface {
	ProcessPatientRequest(ctx context.Context, patientID, symptoms, reportPath string) (*Result, error)
	RegisterPatient(ctx context.Context, name string) (*records.Patient, error)
	PatientHistory(ctx context.Context, patientID string) ([]records.Visit, error)
}

type service struct {
	repo       records.Repository
	classifier Classifier
	analyzer   ReportAnalyzer
	scheduler  Scheduler
	reminders  ReminderCycle
}

func NewService(repo records.Repository, classifier Classifier, analyzer ReportAnalyzer,
	scheduler Scheduler, reminders ReminderCycle) Service {
	return &service{
		repo:       repo,
		classifier: classifier,
		analyzer:   analyzer,
		scheduler:  scheduler,
		reminders:  reminders,
	}
}

// ProcessPatientRequest runs the full intake pipeline: load patient
// context, triage and report analysis in parallel, persist the visit,
// schedule a follow-up in the triaged department, then one reminder pass.
func (s *service) ProcessPatientRequest(ctx context.Context, patientID, symptoms, reportPath string) (*Result, error) {
	log.Printf("starting workflow for patient %s", patientID)

	// 1. Load context. A patient without prior records is fine.
	if patient, err := s.repo.GetPatient(ctx, patientID); err == nil {
		history, err := s.repo.PatientHistory(ctx, patientID)
		if err != nil {
			return nil, err
		}
		log.Printf("loaded context for %s (%s): %d prior visits", patientID, patient.Name, len(history))
	} else if !errors.Is(err, records.ErrNotFound) {
		return nil, err
	}

	// 2. Triage and report parsing run concurrently; both must finish
	// before anything is persisted. The analyzer is not invoked at all
	// when no report was supplied.
	var (
		wg        sync.WaitGroup
		triageRes triage.Result
		reportRes *report.Analysis
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		triageRes = s.classifier.Analyze(ctx, symptoms)
	}()
	if reportPath != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			analysis := s.analyzer.ProcessReport(ctx, reportPath)
			reportRes = &analysis
		}()
	}
	wg.Wait()

	// 3. The visit is recorded whatever happens downstream.
	visit := &records.Visit{
		ID:            uuid.NewString(),
		PatientID:     patientID,
		Symptoms:      symptoms,
		TriageSummary: triageRes.Summary,
		Severity:      string(triageRes.Severity),
		Department:    string(triageRes.Department),
		Timestamp:     time.Now(),
	}
	if err := s.repo.AddVisit(ctx, visit); err != nil {
		return nil, err
	}

	if reportRes != nil && reportRes.Status == report.StatusSuccess {
		if err := s.saveReport(ctx, patientID, reportRes); err != nil {
			return nil, err
		}
	}

	result := &Result{
		PatientID:      patientID,
		Triage:         triageRes,
		ReportAnalysis: reportRes,
	}

	// 4. Schedule in the triaged department for today. A failed booking
	// leaves the appointment absent and writes nothing.
	if triageRes.Department != "" {
		today := time.Now().Format("2006-01-02")
		booking := s.scheduler.Schedule(ctx, patientID, string(triageRes.Department), today)

		if booking.Status == scheduling.StatusConfirmed {
			appointment := &records.Appointment{
				ID:        booking.AppointmentID,
				PatientID: patientID,
				DoctorID:  booking.DoctorID,
				Date:      booking.Date,
				Status:    records.AppointmentConfirmed,
			}
			if err := s.repo.AddAppointment(ctx, appointment); err != nil {
				return nil, err
			}
			if err := s.repo.AddReminder(ctx, &records.Reminder{
				ID:            uuid.NewString(),
				AppointmentID: appointment.ID,
				RemindDate:    today, // remind immediately, no lead time
			}); err != nil {
				return nil, err
			}
			result.Appointment = appointment
		}
	}

	// 5. One reminder pass, regardless of whether this run added one.
	if err := s.reminders.RunCycle(ctx); err != nil {
		return nil, err
	}

	log.Println("workflow completed")
	return result, nil
}

func (s *service) saveReport(ctx context.Context, patientID string, analysis *report.Analysis) error {
	payload, err := json.Marshal(analysis.Data)
	if err != nil {
		return err
	}
	return s.repo.AddMedicalReport(ctx, &records.MedicalReport{
		ID:            uuid.NewString(),
		PatientID:     patientID,
		ExtractedData: payload,
	})
}

// RegisterPatient finds a patient by name or creates one with defaulted
// demographics.
func (s *service) RegisterPatient(ctx context.Context, name string) (*records.Patient, error) {
	existing, err := s.repo.FindPatientByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, records.ErrNotFound) {
		return nil, err
	}

	patient := &records.Patient{
		ID:     "p_" + uuid.NewString()[:6],
		Name:   name,
		Age:    30,
		Gender: "Unknown",
		Phone:  "555-0000",
		Email:  fmt.Sprintf("%s@example.com", strings.ToLower(strings.ReplaceAll(name, " ", "."))),
	}
	if err := s.repo.SavePatient(ctx, patient); err != nil {
		return nil, err
	}
	log.Printf("created profile %s for %s", patient.ID, name)
	return patient, nil
}

func (s *service) PatientHistory(ctx context.Context, patientID string) ([]records.Visit, error) {
	return s.repo.PatientHistory(ctx, patientID)
}
