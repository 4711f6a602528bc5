package records

import (
	"encoding/json"
	"time"
)

// Patient holds identity and demographics. Created on first encounter.
type Patient struct {
	ID     string `json:"patient_id" db:"patient_id"`
	Name   string `json:"name" db:"name"`
	Age    int    `json:"age" db:"age"`
	Gender string `json:"gender" db:"gender"`
	Phone  string `json:"phone" db:"phone"`
	Email  string `json:"email" db:"email"`
}

// Visit is one classification event. Append-only; never mutated.
type Visit struct {
	ID            string    `json:"visit_id" db:"visit_id"`
	PatientID     string    `json:"patient_id" db:"patient_id"`
	Symptoms      string    `json:"symptoms" db:"symptoms"`
	TriageSummary string    `json:"triage_summary" db:"triage_summary"`
	Severity      string    `json:"severity" db:"severity"`
	Department    string    `json:"department" db:"department"`
	Timestamp     time.Time `json:"timestamp" db:"timestamp"`
}

// Appointment statuses. The status is terminal once set.
const (
	AppointmentConfirmed = "confirmed"
	AppointmentFailed    = "failed"
)

type Appointment struct {
	ID        string `json:"appointment_id" db:"appointment_id"`
	PatientID string `json:"patient_id" db:"patient_id"`
	DoctorID  string `json:"doctor_id" db:"doctor_id"`
	Date      string `json:"date" db:"date"` // "2006-01-02 15:04"
	Status    string `json:"status" db:"status"`
}

// MedicalReport stores extracted report data as an opaque JSON payload.
type MedicalReport struct {
	ID            string          `json:"report_id" db:"report_id"`
	PatientID     string          `json:"patient_id" db:"patient_id"`
	ExtractedData json.RawMessage `json:"extracted_data" db:"extracted_data"`
}

// Reminder is a follow-up notification tied to an appointment.
// Sent is monotonic: false -> true, exactly once.
type Reminder struct {
	ID            string `json:"reminder_id" db:"reminder_id"`
	AppointmentID string `json:"appointment_id" db:"appointment_id"`
	RemindDate    string `json:"reminder_date" db:"reminder_date"` // "2006-01-02"
	Sent          bool   `json:"sent" db:"sent_flag"`
}

// ScheduleEntry is one row of a doctor's day: an appointment joined with
// the patient's demographics.
type ScheduleEntry struct {
	AppointmentID string `json:"appointment_id"`
	Time          string `json:"time"`
	Status        string `json:"status"`
	PatientID     string `json:"patient_id"`
	PatientName   string `json:"patient_name"`
	PatientAge    int    `json:"patient_age"`
	PatientGender string `json:"patient_gender"`
}
