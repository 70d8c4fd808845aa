package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/avaldezm/preventa-core/internal/modules/auth"
	"github.com/avaldezm/preventa-core/internal/modules/handoff"
	"github.com/avaldezm/preventa-core/internal/modules/order"
	"github.com/avaldezm/preventa-core/internal/modules/planogram"
	"github.com/avaldezm/preventa-core/internal/modules/pod"
	"github.com/avaldezm/preventa-core/internal/modules/report"
	"github.com/avaldezm/preventa-core/internal/modules/store"
	"github.com/avaldezm/preventa-core/internal/platform/localstore"
	"github.com/avaldezm/preventa-core/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	dataDir := envOr("DATA_DIR", "./data")
	db, err := localstore.Open(dataDir)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	fmt.Printf("Local store open at %s\n", dataDir)

	reg := metrics.NewRegistry()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Session & remote authentication ─────────────────────
	sessions := auth.NewSessionStore(db)
	authClient := auth.NewClient(envOr("AUTH_API_URL", "http://192.168.0.113:5107"), sessions)
	authService := auth.NewService(authClient, sessions, reg)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Store catalog & planogram capture ───────────────────
	hoff := handoff.New()
	storeService := store.NewService()
	store.NewHandler(storeService).RegisterRoutes(router)

	planogramService := planogram.NewService()
	planogram.NewHandler(planogramService, storeService, hoff).RegisterRoutes(router)

	// ── Orders & delivery proof ─────────────────────────────
	orderRepo := order.NewLocalRepository(db)
	orderService := order.NewService(orderRepo, envOr("VENDOR_NUMBER", "2F318"), time.Now, reg)
	order.NewHandler(orderService, planogramService, hoff).RegisterRoutes(router)

	uploadDelay, err := time.ParseDuration(envOr("POD_UPLOAD_DELAY", "2s"))
	if err != nil {
		log.Fatal(err)
	}
	podService := pod.NewService(orderService, uploadDelay, reg)
	pod.NewHandler(podService).RegisterRoutes(router)

	// ── Sales reporting ─────────────────────────────────────
	reportService := report.NewService(orderService)
	report.NewHandler(reportService).RegisterRoutes(router)

	router.Handle("/metrics", reg.Handler())

	port := envOr("APP_PORT", "8080")
	fmt.Printf("Preventa core starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
