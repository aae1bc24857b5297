package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/auth"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/cases"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/chart"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/export"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/hydraulics"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/repo"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/report"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/sizing"
	"github.com/matheuscostamelo63-dotcom/dimensionamento/internal/version"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

// routes wires the API. With a database the /api/user tree sits behind
// JWT auth and finished cases are persisted; without one the service
// still sizes pumps, it just runs open and stateless.
func routes(r *mux.Router, db *sql.DB) {
	engine := sizing.NewEngine(hydraulics.DefaultConfig())

	sizingH := &sizing.Handler{Engine: engine}
	chartH := &chart.Handler{Engine: engine}
	reportH := &report.Handler{Engine: engine}
	exportH := &export.Handler{Engine: engine}
	casesH := &cases.Handler{}

	api := r.PathPrefix("/api").Subrouter()
	secure := api.PathPrefix("/user").Subrouter()

	if db != nil {
		store := repo.NewPostgresRepository(db)
		sizingH.Repo = store
		casesH.Repo = store

		tokenKey := os.Getenv("TOKEN_KEY")
		if tokenKey == "" {
			log.Fatal("TOKEN_KEY environment variable is not set")
		}
		authSvc := &auth.Service{JWTKey: []byte(tokenKey), Repo: store}
		limiter := auth.NewIPRateLimiter(1, 3)

		api.Handle("/login", limiter.Limit(http.HandlerFunc(authSvc.LoginHandler))).Methods("POST")
		api.Handle("/register", limiter.Limit(http.HandlerFunc(authSvc.RegisterHandler))).Methods("POST")
		secure.Use(authSvc.Middleware)
	} else {
		log.Println("DATABASE_URL not set: case persistence disabled, API runs open")
	}

	secure.HandleFunc("/sizing/calc", sizingH.Calc).Methods("POST")
	secure.HandleFunc("/sizing/curve", sizingH.CurveData).Methods("POST")
	secure.HandleFunc("/sizing/chart", chartH.Chart).Methods("POST")
	secure.HandleFunc("/sizing/report", reportH.Generate).Methods("POST")
	secure.HandleFunc("/sizing/import", exportH.Import).Methods("POST")
	secure.HandleFunc("/sizing/export", exportH.Export).Methods("POST")
	secure.HandleFunc("/cases", casesH.List).Methods("GET")
	secure.HandleFunc("/cases/{id}", casesH.Get).Methods("GET")

	r.PathPrefix("/").Handler(http.FileServer(http.Dir("./static")))
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using process environment")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := repo.InitDB()
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	if db != nil {
		defer db.Close()
	}

	r := mux.NewRouter()
	routes(r, db)

	addr := ":" + envOr("PORT", "8080")
	server := &http.Server{
		Addr:    addr,
		Handler: CORS(r),
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		cert, key := os.Getenv("TLS_CERT"), os.Getenv("TLS_KEY")
		log.Printf("Starting pump sizing service v%s on %s", version.Version, addr)

		var err error
		if cert != "" && key != "" {
			err = server.ListenAndServeTLS(cert, key)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	wg.Wait()
	log.Println("Server stopped")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
