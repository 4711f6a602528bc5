package doctor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthmate/internal/records"
)

type fakeStore struct {
	schedule []records.ScheduleEntry
	patient  *records.Patient
	visits   []records.Visit
	reports  []records.MedicalReport

	gotDoctorID string
	gotDate     string
}

func (f *fakeStore) DoctorSchedule(_ context.Context, doctorID, date string) ([]records.ScheduleEntry, error) {
	f.gotDoctorID = doctorID
	f.gotDate = date
	return f.schedule, nil
}

func (f *fakeStore) GetPatient(_ context.Context, id string) (*records.Patient, error) {
	if f.patient == nil || f.patient.ID != id {
		return nil, records.ErrNotFound
	}
	return f.patient, nil
}

func (f *fakeStore) PatientHistory(context.Context, string) ([]records.Visit, error) {
	return f.visits, nil
}

func (f *fakeStore) MedicalReports(context.Context, string) ([]records.MedicalReport, error) {
	return f.reports, nil
}

func newTestService(store *fakeStore) *Service {
	svc := NewService(store)
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("Schedule keywords route to the day schedule", func(t *testing.T) {
		store := &fakeStore{schedule: []records.ScheduleEntry{
			{Time: "09:00", PatientName: "John Doe", PatientID: "p_001", PatientAge: 45, PatientGender: "Male", Status: "confirmed"},
		}}
		svc := newTestService(store)

		answer, err := svc.Answer(ctx, "Dr. Smith", "what does my calendar look like?")

		require.NoError(t, err)
		assert.Equal(t, "Dr. Smith", store.gotDoctorID)
		assert.Equal(t, "2026-09-01", store.gotDate)
		assert.Contains(t, answer, "09:00 - John Doe")
	})

	t.Run("Empty schedule is reported politely", func(t *testing.T) {
		svc := newTestService(&fakeStore{})

		answer, err := svc.Answer(ctx, "Dr. Strange", "appointments today?")

		require.NoError(t, err)
		assert.Contains(t, answer, "no appointments")
	})

	t.Run("Insight keywords with a patient id route to the record", func(t *testing.T) {
		store := &fakeStore{
			patient: &records.Patient{ID: "p_001", Name: "John Doe", Age: 45, Gender: "Male"},
			visits: []records.Visit{{
				Symptoms: "Chest pain", Severity: "Critical", Department: "Cardiology",
				Timestamp: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
			}},
			reports: []records.MedicalReport{{ID: "r_001", PatientID: "p_001"}},
		}
		svc := newTestService(store)

		answer, err := svc.Answer(ctx, "Dr. Smith", "give me the history for p_001, please")

		require.NoError(t, err)
		assert.Contains(t, answer, "John Doe")
		assert.Contains(t, answer, "Chest pain")
		assert.Contains(t, answer, "Critical/Cardiology")
		assert.Contains(t, answer, "reports on file: 1")
	})

	t.Run("Insight question without a patient id asks for one", func(t *testing.T) {
		svc := newTestService(&fakeStore{})

		answer, err := svc.Answer(ctx, "Dr. Smith", "show me that report again")

		require.NoError(t, err)
		assert.Contains(t, answer, "patient id")
	})

	t.Run("Unrecognized questions default to the schedule", func(t *testing.T) {
		store := &fakeStore{}
		svc := newTestService(store)

		_, err := svc.Answer(ctx, "Dr. Smith", "hello there")

		require.NoError(t, err)
		assert.Equal(t, "Dr. Smith", store.gotDoctorID)
	})
}

func TestPatientIDFrom(t *testing.T) {
	cases := map[string]struct {
		question string
		want     string
		ok       bool
	}{
		"plain id":       {"history for p_001", "p_001", true},
		"trailing comma": {"details on p_a1b2c3, please", "p_a1b2c3", true},
		"question mark":  {"who is p_xyz?", "p_xyz", true},
		"no id":          {"show me the patient history", "", false},
		"bare prefix":    {"what does p_ mean", "", false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, ok := patientIDFrom(tc.question)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
