package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/signintech/gopdf"

	"healthmate/internal/config"
	"healthmate/internal/records"
)

// Seeds a demo patient with a visit, an appointment and a report, and
// writes a sample medical-report PDF for exercising the intake pipeline.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("could not open DB: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("could not reach DB: %v", err)
	}

	repo := records.NewRepository(db)

	patientID := "p_001"
	if err := repo.SavePatient(ctx, &records.Patient{
		ID:     patientID,
		Name:   "John Doe",
		Age:    45,
		Gender: "Male",
		Phone:  "555-1234",
		Email:  "john@example.com",
	}); err != nil {
		log.Fatalf("seed patient: %v", err)
	}
	fmt.Printf("Added patient %s\n", patientID)

	if err := repo.AddVisit(ctx, &records.Visit{
		ID:            "v_001",
		PatientID:     patientID,
		Symptoms:      "Chest pain",
		TriageSummary: "Patient reports chest pain. Critical.",
		Severity:      "Critical",
		Department:    "Cardiology",
		Timestamp:     time.Now(),
	}); err != nil {
		log.Fatalf("seed visit: %v", err)
	}
	fmt.Println("Added visit v_001")

	today := time.Now().Format("2006-01-02")
	if err := repo.AddAppointment(ctx, &records.Appointment{
		ID:        "appt_001",
		PatientID: patientID,
		DoctorID:  "Dr. Smith",
		Date:      today + " 09:00",
		Status:    records.AppointmentConfirmed,
	}); err != nil {
		log.Fatalf("seed appointment: %v", err)
	}
	fmt.Printf("Added appointment appt_001 for Dr. Smith on %s\n", today)

	extracted, _ := json.Marshal(map[string]string{"cholesterol": "high", "bp": "140/90"})
	if err := repo.AddMedicalReport(ctx, &records.MedicalReport{
		ID:            "r_001",
		PatientID:     patientID,
		ExtractedData: extracted,
	}); err != nil {
		log.Fatalf("seed report: %v", err)
	}
	fmt.Println("Added report r_001")

	if err := os.MkdirAll("samples", 0o755); err != nil {
		log.Fatalf("create samples dir: %v", err)
	}
	if err := writeSamplePDF("samples/sample_report.pdf"); err != nil {
		log.Printf("sample PDF skipped: %v", err)
	} else {
		fmt.Println("Created sample PDF at samples/sample_report.pdf")
	}

	fmt.Println("Seeding complete.")
}

var sampleLines = []string{
	"Medical Report",
	"Patient: John Doe",
	"Date: 2023-10-27",
	"",
	"Findings:",
	"Blood Pressure: 120/80 mmHg",
	"Heart Rate: 72 bpm",
	"Cholesterol: 180 mg/dL",
	"",
	"Notes: Patient is in good health. No significant abnormalities detected.",
}

func writeSamplePDF(path string) error {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	// Common DejaVu locations on Alpine and Debian.
	fontPaths := []string{
		"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	}

	var fontErr error
	fontLoaded := false
	for _, fp := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", fp); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return fmt.Errorf("no usable TTF font found, install ttf-dejavu: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return err
	}

	for _, line := range sampleLines {
		pdf.Cell(nil, line)
		pdf.Br(14)
	}

	return pdf.WritePdf(path)
}
