package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketscienceinc/laprace-backend/internal/entity"
)

type MatchRepository interface {
	Save(ctx context.Context, match *entity.Match) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Match, error)
}

type matchRepository struct {
	conn *sql.DB
}

func NewMatchRepository(conn *sql.DB) MatchRepository {
	return &matchRepository{
		conn: conn,
	}
}

func (that *matchRepository) Save(ctx context.Context, match *entity.Match) error {
	query := `INSERT INTO matches (game_id, winner, rolls, finished_at) VALUES (?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, match.GameID, match.Winner, match.Rolls, match.FinishedAt)
	if err != nil {
		return fmt.Errorf("can't save match: %w", err)
	}

	return nil
}

func (that *matchRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Match, error) {
	query := `SELECT game_id, winner, rolls, finished_at FROM matches ORDER BY finished_at DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list matches: %w", err)
	}
	defer rows.Close()

	var matches []*entity.Match
	for rows.Next() {
		var match entity.Match
		if err = rows.Scan(&match.GameID, &match.Winner, &match.Rolls, &match.FinishedAt); err != nil {
			return nil, fmt.Errorf("can't scan match: %w", err)
		}

		matches = append(matches, &match)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read matches: %w", err)
	}

	return matches, nil
}
