package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"housie/internal/broadcast"
	"housie/internal/config"
	"housie/internal/db"
	"housie/internal/housie"
	"housie/internal/rooms"
	"housie/internal/scheduler"
)

func Run() error {
	cfg := config.Load()

	srv := &Server{
		Rooms:    rooms.NewStore(time.Duration(cfg.RoomTTLHours) * time.Hour),
		Sched:    scheduler.New(time.Duration(cfg.CallInterval) * time.Second),
		Hub:      broadcast.NewHub(),
		Cfg:      cfg,
		Generate: housie.GenerateTicket,
		Validate: housie.IsWinningClaim,
	}

	// Optional database connection
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (running without history)", err)
		} else {
			if err := database.Migrate(); err != nil {
				log.Printf("[DB] Migration failed: %v", err)
			}
			srv.DB = database
			log.Println("[DB] Database connected and migrations applied")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, running without history")
	}

	addr := "0.0.0.0:" + cfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", cfg.Port)
	return http.ListenAndServe(addr, srv.Handler())
}

// Handler wires the request surface onto a mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /rooms", s.handleCreateRoom)
	mux.HandleFunc("GET /rooms/{code}", s.handleSnapshot)
	mux.HandleFunc("DELETE /rooms/{code}", s.handleDeleteRoom)
	mux.HandleFunc("POST /rooms/{code}/join", s.handleJoin)
	mux.HandleFunc("POST /rooms/{code}/start", s.handleStart)
	mux.HandleFunc("POST /rooms/{code}/call", s.handleCall)
	mux.HandleFunc("POST /rooms/{code}/claim", s.handleClaim)
	mux.HandleFunc("GET /rooms/{code}/ws", s.handleWS)
	mux.HandleFunc("GET /history/rounds", s.handleHistoryRounds)
	mux.HandleFunc("GET /history/winners", s.handleHistoryWinners)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}
