package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ObraCalc/internal/auth"
	"ObraCalc/internal/calc/importer"
	"ObraCalc/internal/calc/report"
	"ObraCalc/internal/engine"
	"ObraCalc/internal/profile"
	"ObraCalc/internal/repo"
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

func HandleList(r *mux.Router, db *sql.DB, log *zap.Logger) {
	userRepo := repo.NewPostgres(db)

	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: userRepo, Log: log}
	profileH := &profile.ProfileHandler{Repo: userRepo, Log: log}
	calcH := &engine.Handler{Eng: engine.New(), Repo: userRepo, Log: log}
	reportH := &report.Handler{Repo: userRepo, Log: log}
	importH := &importer.Handler{Eng: calcH.Eng, Repo: userRepo, Log: log}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/profile", profileH.GetProfile).Methods("GET")
	secureApi.HandleFunc("/profile/upgrade", profileH.RequestUpgrade).Methods("POST")

	secureApi.HandleFunc("/calc/structural/import", importH.Beam).Methods("POST")
	secureApi.HandleFunc("/calc/{id:[0-9]+}/pdf", reportH.Generate).Methods("GET")
	secureApi.HandleFunc("/calc/{module}", calcH.Calc).Methods("POST")
	secureApi.HandleFunc("/history", calcH.History).Methods("GET")
}

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file, using environment")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := auth.InitDB(log)
	defer db.Close()

	r := mux.NewRouter()
	HandleList(r, db, log)
	handler := CORS(r)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	log.Info("starting server", zap.String("addr", addr))
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown", zap.Error(err))
	}
	log.Info("server stopped")

	wg.Wait()
}
