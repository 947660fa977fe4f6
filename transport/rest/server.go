package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rocketscienceinc/laprace-backend/internal/entity"
)

type matchLister interface {
	RecentMatches(ctx context.Context, limit int) ([]*entity.Match, error)
}

func Start(port string, matches matchLister) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.HandleFunc("/matches", matchesHandler(matches))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
