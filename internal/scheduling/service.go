package scheduling

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	StatusConfirmed = "confirmed"
	StatusFailed    = "failed"
)

// Booking is the outcome of one scheduling attempt. A failed booking is a
// normal negative result, not an error.
type Booking struct {
	Status        string `json:"status"`
	Reason        string `json:"reason,omitempty"`
	AppointmentID string `json:"appointment_id,omitempty"`
	DoctorID      string `json:"doctor_id,omitempty"`
	Date          string `json:"date,omitempty"` // "2006-01-02 15:04"
	PatientID     string `json:"patient_id,omitempty"`
}

// SlotSource lists bookable time slots for a department on a date. The
// returned slice is treated as priority-ordered: index 0 is the earliest.
type SlotSource func(department, date string) []string

// directory maps departments to their doctors, first doctor preferred.
// Orthopedics has no entry: scheduling for it fails with no doctor.
var directory = map[string][]string{
	"cardiology": {"Dr. Smith", "Dr. Jones"},
	"general":    {"Dr. Doe", "Dr. White"},
	"neurology":  {"Dr. Strange"},
}

var baseSlots = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}

// Service books appointments against a fixed doctor directory and a
// pluggable slot source. No double-booking protection: concurrent calls for
// the same slot are not serialized here.
type Service struct {
	slots SlotSource
}

// NewService builds a Service with the default slot source: the fixed slot
// grid, randomly thinned to simulate partial availability.
func NewService() *Service {
	return &Service{slots: randomSlots}
}

// NewServiceWithSlots builds a Service over a caller-supplied slot source.
func NewServiceWithSlots(slots SlotSource) *Service {
	return &Service{slots: slots}
}

func randomSlots(department, date string) []string {
	if _, ok := directory[strings.ToLower(department)]; !ok {
		return nil
	}
	return lo.Filter(baseSlots, func(string, int) bool {
		return rand.Intn(3) < 2
	})
}

// Schedule resolves a doctor for the department, picks the earliest open
// slot on the date and books it. Fails fast when the department has no
// doctor or the date has no slots; a next-day retry is intentionally not
// attempted.
func (s *Service) Schedule(_ context.Context, patientID, department, date string) Booking {
	log.Printf("scheduling appointment for %s in %s on %s", patientID, department, date)

	doctorID, ok := doctorFor(department)
	if !ok {
		return Booking{Status: StatusFailed, Reason: "No doctor available for department"}
	}

	slots := s.slots(department, date)
	if len(slots) == 0 {
		return Booking{Status: StatusFailed, Reason: "No slots available"}
	}

	best := slots[0]

	booking := Booking{
		Status:        StatusConfirmed,
		AppointmentID: "apt_" + uuid.NewString(),
		DoctorID:      doctorID,
		Date:          fmt.Sprintf("%s %s", date, best),
		PatientID:     patientID,
	}
	log.Printf("booked: %s with %s at %s", booking.AppointmentID, booking.DoctorID, booking.Date)
	return booking
}

func doctorFor(department string) (string, bool) {
	doctors, ok := directory[strings.ToLower(department)]
	if !ok || len(doctors) == 0 {
		return "", false
	}
	return doctors[0], true
}

// DoctorsFor exposes the directory entry for a department, first doctor
// preferred. Used by seeding and the doctor-facing surface.
func DoctorsFor(department string) []string {
	return directory[strings.ToLower(department)]
}
