package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a lookup resolves to no record.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	SavePatient(ctx context.Context, p *Patient) error
	GetPatient(ctx context.Context, patientID string) (*Patient, error)
	FindPatientByName(ctx context.Context, name string) (*Patient, error)

	AddVisit(ctx context.Context, v *Visit) error
	PatientHistory(ctx context.Context, patientID string) ([]Visit, error)

	AddAppointment(ctx context.Context, a *Appointment) error
	DoctorSchedule(ctx context.Context, doctorID, date string) ([]ScheduleEntry, error)

	AddMedicalReport(ctx context.Context, r *MedicalReport) error
	MedicalReports(ctx context.Context, patientID string) ([]MedicalReport, error)

	AddReminder(ctx context.Context, r *Reminder) error
	PendingReminders(ctx context.Context) ([]Reminder, error)
	MarkReminderSent(ctx context.Context, reminderID string) error
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) SavePatient(ctx context.Context, p *Patient) error {
	query := `
		INSERT INTO patients (patient_id, name, age, gender, phone, email)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (patient_id) DO UPDATE SET
			name = $2, age = $3, gender = $4, phone = $5, email = $6
	`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Age, p.Gender, p.Phone, p.Email)
	return err
}

func (r *postgresRepo) GetPatient(ctx context.Context, patientID string) (*Patient, error) {
	query := `SELECT patient_id, name, age, gender, phone, email FROM patients WHERE patient_id = $1`
	return r.scanPatient(r.db.QueryRowContext(ctx, query, patientID))
}

func (r *postgresRepo) FindPatientByName(ctx context.Context, name string) (*Patient, error) {
	query := `SELECT patient_id, name, age, gender, phone, email FROM patients WHERE name = $1`
	return r.scanPatient(r.db.QueryRowContext(ctx, query, name))
}

func (r *postgresRepo) scanPatient(row *sql.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("patient: %w", ErrNotFound)
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) AddVisit(ctx context.Context, v *Visit) error {
	query := `
		INSERT INTO visits (visit_id, patient_id, symptoms, triage_summary, severity, department, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.PatientID, v.Symptoms, v.TriageSummary, v.Severity, v.Department, v.Timestamp)
	return err
}

func (r *postgresRepo) PatientHistory(ctx context.Context, patientID string) ([]Visit, error) {
	query := `
		SELECT visit_id, patient_id, symptoms, triage_summary, severity, department, timestamp
		FROM visits WHERE patient_id = $1 ORDER BY timestamp DESC
	`
	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.PatientID, &v.Symptoms, &v.TriageSummary,
			&v.Severity, &v.Department, &v.Timestamp); err != nil {
			return nil, err
		}
		history = append(history, v)
	}
	return history, rows.Err()
}

func (r *postgresRepo) AddAppointment(ctx context.Context, a *Appointment) error {
	query := `
		INSERT INTO appointments (appointment_id, patient_id, doctor_id, date, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.PatientID, a.DoctorID, a.Date, a.Status)
	return err
}

// DoctorSchedule lists a doctor's appointments for one calendar date,
// chronologically, joined with patient demographics. The appointments date
// column holds a combined "date time" string, so the date is matched by
// prefix.
func (r *postgresRepo) DoctorSchedule(ctx context.Context, doctorID, date string) ([]ScheduleEntry, error) {
	query := `
		SELECT a.appointment_id, a.date, a.status, p.patient_id, p.name, p.age, p.gender
		FROM appointments a
		JOIN patients p ON a.patient_id = p.patient_id
		WHERE a.doctor_id = $1 AND a.date LIKE $2
		ORDER BY a.date ASC
	`
	rows, err := r.db.QueryContext(ctx, query, doctorID, date+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ScheduleEntry
	for rows.Next() {
		var e ScheduleEntry
		var fullDate string
		if err := rows.Scan(&e.AppointmentID, &fullDate, &e.Status,
			&e.PatientID, &e.PatientName, &e.PatientAge, &e.PatientGender); err != nil {
			return nil, err
		}
		e.Time = appointmentTime(fullDate)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func appointmentTime(date string) string {
	if i := strings.IndexByte(date, ' '); i >= 0 {
		return date[i+1:]
	}
	return date
}

func (r *postgresRepo) AddMedicalReport(ctx context.Context, report *MedicalReport) error {
	query := `
		INSERT INTO medical_reports (report_id, patient_id, extracted_data)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, report.ID, report.PatientID, []byte(report.ExtractedData))
	return err
}

func (r *postgresRepo) MedicalReports(ctx context.Context, patientID string) ([]MedicalReport, error) {
	query := `SELECT report_id, patient_id, extracted_data FROM medical_reports WHERE patient_id = $1`
	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []MedicalReport
	for rows.Next() {
		var m MedicalReport
		var data []byte
		if err := rows.Scan(&m.ID, &m.PatientID, &data); err != nil {
			return nil, err
		}
		m.ExtractedData = data
		reports = append(reports, m)
	}
	return reports, rows.Err()
}

func (r *postgresRepo) AddReminder(ctx context.Context, rem *Reminder) error {
	query := `
		INSERT INTO reminders (reminder_id, appointment_id, reminder_date, sent_flag)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, rem.ID, rem.AppointmentID, rem.RemindDate, rem.Sent)
	return err
}

func (r *postgresRepo) PendingReminders(ctx context.Context) ([]Reminder, error) {
	query := `SELECT reminder_id, appointment_id, reminder_date, sent_flag FROM reminders WHERE sent_flag = FALSE`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []Reminder
	for rows.Next() {
		var rem Reminder
		if err := rows.Scan(&rem.ID, &rem.AppointmentID, &rem.RemindDate, &rem.Sent); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *postgresRepo) MarkReminderSent(ctx context.Context, reminderID string) error {
	query := `UPDATE reminders SET sent_flag = TRUE WHERE reminder_id = $1`
	_, err := r.db.ExecContext(ctx, query, reminderID)
	return err
}
