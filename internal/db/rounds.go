package db

import (
	"fmt"
	"time"
)

// Round endings recorded in history.
const (
	EndingFullHouse = "full_house"
	EndingExhausted = "exhausted"
)

type PrizeAward struct {
	Prize      string    `json:"prize"`
	PlayerID   string    `json:"playerId"`
	PlayerName string    `json:"playerName"`
	AwardedAt  time.Time `json:"awardedAt"`
}

type RoundRecord struct {
	ID            string       `json:"id"`
	RoomCode      string       `json:"roomCode"`
	StartedAt     time.Time    `json:"startedAt"`
	EndedAt       time.Time    `json:"endedAt"`
	NumbersCalled int          `json:"numbersCalled"`
	Ending        string       `json:"ending"`
	Awards        []PrizeAward `json:"awards,omitempty"`
}

// RecordRound inserts a finished round and its prize awards.
func (d *DB) RecordRound(rec RoundRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning round insert: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO rounds (id, room_code, started_at, ended_at, numbers_called, ending)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.RoomCode, rec.StartedAt, rec.EndedAt, rec.NumbersCalled, rec.Ending)
	if err != nil {
		return fmt.Errorf("inserting round: %w", err)
	}

	for _, a := range rec.Awards {
		_, err = tx.Exec(`
			INSERT INTO prize_awards (round_id, prize, player_id, player_name, awarded_at)
			VALUES ($1, $2, $3, $4, $5)
		`, rec.ID, a.Prize, a.PlayerID, a.PlayerName, a.AwardedAt)
		if err != nil {
			return fmt.Errorf("inserting prize award: %w", err)
		}
	}
	return tx.Commit()
}

// RecentRounds returns the most recently finished rounds, newest first.
func (d *DB) RecentRounds(limit int) ([]RoundRecord, error) {
	rows, err := d.conn.Query(`
		SELECT id, room_code, started_at, ended_at, numbers_called, ending
		FROM rounds
		ORDER BY ended_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent rounds: %w", err)
	}
	defer rows.Close()

	var out []RoundRecord
	for rows.Next() {
		var rec RoundRecord
		if err := rows.Scan(&rec.ID, &rec.RoomCode, &rec.StartedAt, &rec.EndedAt, &rec.NumbersCalled, &rec.Ending); err != nil {
			return nil, fmt.Errorf("scanning round: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type WinnerRow struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Prizes     int    `json:"prizes"`
	FullHouses int    `json:"fullHouses"`
}

// TopWinners aggregates prize awards per player, most decorated first.
func (d *DB) TopWinners(limit int) ([]WinnerRow, error) {
	rows, err := d.conn.Query(`
		SELECT player_id, max(player_name),
		       count(*),
		       count(*) FILTER (WHERE prize = 'full_house')
		FROM prize_awards
		GROUP BY player_id
		ORDER BY count(*) DESC, player_id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top winners: %w", err)
	}
	defer rows.Close()

	var out []WinnerRow
	for rows.Next() {
		var w WinnerRow
		if err := rows.Scan(&w.PlayerID, &w.PlayerName, &w.Prizes, &w.FullHouses); err != nil {
			return nil, fmt.Errorf("scanning winner: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
