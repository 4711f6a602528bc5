package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"healthmate/internal/config"
	"healthmate/internal/intake"
	"healthmate/internal/platform/console"
	"healthmate/internal/records"
	"healthmate/internal/reminder"
	"healthmate/internal/report"
	"healthmate/internal/scheduling"
	"healthmate/internal/triage"
)

// Scenario is a batch test case: set up a patient, run the intake workflow
// and assert the triaged department.
type Scenario struct {
	Patient        *records.Patient `json:"patient"`
	Symptoms       string           `json:"symptoms"`
	ReportPath     string           `json:"report_path"`
	ExpectedOutput struct {
		Department string `json:"department"`
	} `json:"expected_output"`
}

func main() {
	file := flag.String("file", "", "path to scenario JSON file")
	flag.Parse()
	if *file == "" {
		log.Fatal("usage: scenario -file <scenario.json>")
	}

	cfg := config.Load()
	ctx := context.Background()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read scenario: %v", err)
	}
	var sc Scenario
	if err := json.Unmarshal(raw, &sc); err != nil {
		log.Fatalf("parse scenario: %v", err)
	}
	if sc.Symptoms == "" {
		sc.Symptoms = "Headache"
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("could not open DB: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("could not reach DB: %v", err)
	}

	repo := records.NewRepository(db)

	patient := sc.Patient
	if patient == nil {
		patient = &records.Patient{
			ID: "test_patient", Name: "Test", Age: 25, Gender: "F",
			Phone: "000", Email: "test@test.com",
		}
	}
	if err := repo.SavePatient(ctx, patient); err != nil {
		log.Fatalf("set up patient: %v", err)
	}

	var remote triage.Classifier
	if cfg.GeminiAPIKey != "" {
		remote = triage.NewGeminiClassifier(cfg.GeminiAPIKey)
	}

	svc := intake.NewService(
		repo,
		triage.New(remote),
		report.NewAnalyzer(),
		scheduling.NewService(),
		reminder.NewService(repo, console.NewNotifier(), "555-0123"),
	)

	result, err := svc.ProcessPatientRequest(ctx, patient.ID, sc.Symptoms, sc.ReportPath)
	if err != nil {
		log.Fatalf("workflow failed: %v", err)
	}

	if want := sc.ExpectedOutput.Department; want != "" {
		if got := string(result.Triage.Department); got != want {
			log.Fatalf("scenario failed: expected department %s, got %s", want, got)
		}
	}

	fmt.Println("Scenario passed successfully.")
}
