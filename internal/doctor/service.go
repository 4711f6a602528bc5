package doctor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"healthmate/internal/records"
)

// Store is the read-only slice of the record store the assistant needs.
type Store interface {
	DoctorSchedule(ctx context.Context, doctorID, date string) ([]records.ScheduleEntry, error)
	GetPatient(ctx context.Context, patientID string) (*records.Patient, error)
	PatientHistory(ctx context.Context, patientID string) ([]records.Visit, error)
	MedicalReports(ctx context.Context, patientID string) ([]records.MedicalReport, error)
}

// Insight bundles everything the assistant knows about one patient.
type Insight struct {
	Patient *records.Patient        `json:"patient"`
	Visits  []records.Visit         `json:"visits"`
	Reports []records.MedicalReport `json:"reports"`
}

// Service answers doctor questions about schedules and patients. Questions
// are routed by keyword; free-text understanding is out of scope.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) ScheduleForDate(ctx context.Context, doctorID, date string) ([]records.ScheduleEntry, error) {
	return s.store.DoctorSchedule(ctx, doctorID, date)
}

func (s *Service) PatientInsight(ctx context.Context, patientID string) (*Insight, error) {
	patient, err := s.store.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	visits, err := s.store.PatientHistory(ctx, patientID)
	if err != nil {
		return nil, err
	}
	reports, err := s.store.MedicalReports(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return &Insight{Patient: patient, Visits: visits, Reports: reports}, nil
}

var (
	scheduleKeywords = []string{"schedule", "appointments", "calendar", "today", "patients"}
	insightKeywords  = []string{"patient", "history", "report", "details", "insight"}
)

// Answer routes a question to the schedule or insight lookup and formats a
// plain-text reply. Unrecognized questions default to the schedule, like
// the interactive assistant they replace.
func (s *Service) Answer(ctx context.Context, doctorID, question string) (string, error) {
	lower := strings.ToLower(question)

	if containsAny(lower, scheduleKeywords) || !containsAny(lower, insightKeywords) {
		date := s.now().Format("2006-01-02")
		entries, err := s.ScheduleForDate(ctx, doctorID, date)
		if err != nil {
			return "", err
		}
		return formatSchedule(doctorID, date, entries), nil
	}

	patientID, ok := patientIDFrom(question)
	if !ok {
		return "Please mention the patient id (e.g. p_a1b2c3) so I can look up the record.", nil
	}
	insight, err := s.PatientInsight(ctx, patientID)
	if err != nil {
		return "", err
	}
	return formatInsight(insight), nil
}

func containsAny(text string, keywords []string) bool {
	return lo.SomeBy(keywords, func(kw string) bool {
		return strings.Contains(text, kw)
	})
}

// patientIDFrom picks the first p_-prefixed token out of the question.
func patientIDFrom(question string) (string, bool) {
	for _, f := range strings.Fields(question) {
		f = strings.Trim(f, ".,?!")
		if strings.HasPrefix(f, "p_") && len(f) > 2 {
			return f, true
		}
	}
	return "", false
}

func formatSchedule(doctorID, date string, entries []records.ScheduleEntry) string {
	if len(entries) == 0 {
		return fmt.Sprintf("%s has no appointments on %s.", doctorID, date)
	}

	lines := lo.Map(entries, func(e records.ScheduleEntry, _ int) string {
		return fmt.Sprintf("%s - %s (%s, %d, %s) [%s]",
			e.Time, e.PatientName, e.PatientID, e.PatientAge, e.PatientGender, e.Status)
	})
	return fmt.Sprintf("Schedule for %s on %s:\n%s", doctorID, date, strings.Join(lines, "\n"))
}

func formatInsight(in *Insight) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Patient %s (%s): age %d, gender %s.\n",
		in.Patient.Name, in.Patient.ID, in.Patient.Age, in.Patient.Gender)

	if len(in.Visits) == 0 {
		b.WriteString("No recorded visits.")
	} else {
		fmt.Fprintf(&b, "Visits (%d, most recent first):\n", len(in.Visits))
		for _, v := range in.Visits {
			fmt.Fprintf(&b, "%s - %s -> %s/%s\n",
				v.Timestamp.Format("2006-01-02"), v.Symptoms, v.Severity, v.Department)
		}
	}
	if len(in.Reports) > 0 {
		fmt.Fprintf(&b, "Medical reports on file: %d.", len(in.Reports))
	}
	return strings.TrimSpace(b.String())
}
