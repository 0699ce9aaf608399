package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabaseURL      string
	AppEnv           string
	CallInterval     int // seconds between number calls
	LobbySize        int
	TicketsPerPlayer int
	MinPlayers       int
	RoomTTLHours     int
	PrizeFormat      string
}

func Load() Config {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		AppEnv:           getEnv("APP_ENV", "development"),
		CallInterval:     getEnvInt("CALL_INTERVAL", 5),
		LobbySize:        getEnvInt("LOBBY_SIZE", 8),
		TicketsPerPlayer: getEnvInt("TICKETS_PER_PLAYER", 2),
		MinPlayers:       getEnvInt("MIN_PLAYERS", 2),
		RoomTTLHours:     getEnvInt("ROOM_TTL_HOURS", 24),
		PrizeFormat:      getEnv("PRIZE_FORMAT", "classic"),
	}
	return cfg
}

func (c Config) Production() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
