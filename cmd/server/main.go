package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"healthmate/internal/config"
	"healthmate/internal/doctor"
	"healthmate/internal/intake"
	"healthmate/internal/platform/console"
	"healthmate/internal/platform/telegram"
	"healthmate/internal/records"
	"healthmate/internal/reminder"
	"healthmate/internal/report"
	"healthmate/internal/scheduling"
	"healthmate/internal/triage"
)

func main() {
	cfg := config.Load()

	// 1. Infrastructure
	db, err := connectDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("could not connect to DB: %v", err)
	}
	log.Println("connected to database")

	runMigrations(cfg.MigrationsURL, cfg.DatabaseURL)

	// 2. Clients
	var remote triage.Classifier
	if cfg.GeminiAPIKey != "" {
		remote = triage.NewGeminiClassifier(cfg.GeminiAPIKey)
	} else {
		log.Println("warning: GEMINI_API_KEY not set, triage will use fallback rules only")
	}

	var notifier reminder.Notifier
	contact := "555-0123"
	if cfg.TelegramToken != "" && cfg.DoctorChatID != 0 {
		notifier = telegram.NewClient(cfg.TelegramToken)
		contact = strconv.FormatInt(cfg.DoctorChatID, 10)
	} else {
		log.Println("warning: TELEGRAM_BOT_TOKEN or DOCTOR_CHAT_ID not set, reminders go to the console")
		notifier = console.NewNotifier()
	}

	// 3. Services
	repo := records.NewRepository(db)
	classifier := triage.New(remote)
	analyzer := report.NewAnalyzer()
	scheduler := scheduling.NewService()
	reminders := reminder.NewService(repo, notifier, contact)

	intakeSvc := intake.NewService(repo, classifier, analyzer, scheduler, reminders)
	intakeHandler := intake.NewHandler(intakeSvc)

	doctorSvc := doctor.NewService(repo)
	doctorHandler := doctor.NewHandler(doctorSvc)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		intake.RegisterRoutes(r, intakeHandler)
		doctor.RegisterRoutes(r, doctorHandler)
	})

	fmt.Printf("Server starting on port %s...\n", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}

func connectDB(connStr string) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			return db, nil
		}
		fmt.Printf("Waiting for DB... (%d/10)\n", i+1)
		time.Sleep(2 * time.Second)
	}
	return nil, err
}

func runMigrations(migrationsURL, dbURL string) {
	m, err := migrate.New(migrationsURL, dbURL)
	if err != nil {
		log.Printf("migration init failed: %v", err)
		return
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Printf("migration up failed: %v", err)
		return
	}
	log.Println("migrations applied successfully")
}
