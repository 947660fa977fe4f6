package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/laprace-backend/internal/apperror"
	"github.com/rocketscienceinc/laprace-backend/internal/entity"
	"github.com/rocketscienceinc/laprace-backend/internal/events"
	"github.com/rocketscienceinc/laprace-backend/internal/laprace"
	"github.com/rocketscienceinc/laprace-backend/internal/pkg"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type matchRepo interface {
	Save(ctx context.Context, match *entity.Match) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Match, error)
}

type eventPublisher interface {
	Publish(event string, game *entity.Game) error
}

// GameManager drives one pass-and-play session: it owns the only code paths
// that mutate a game (rolling and resetting) and keeps the stored record in
// step with the engine.
type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	gameRepo   gameRepo
	matchRepo  matchRepo
	publisher  eventPublisher

	dice  laprace.Roller
	track entity.Track
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, matchRepo matchRepo, publisher eventPublisher, dice laprace.Roller) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		matchRepo:  matchRepo,
		publisher:  publisher,

		dice:  dice,
		track: entity.DefaultTrack,
	}
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player := &entity.Player{
			ID: uuid.NewString(),
		}

		if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		game, err := that.createGame(ctx, player)
		if err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}

		return game, nil
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	// asking for a new game over a finished one starts fresh
	if game.IsFinished() {
		if err = that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
			return nil, fmt.Errorf("failed to delete game: %w", err)
		}

		game, err = that.createGame(ctx, player)
		if err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}
	}

	return game, nil
}

func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// RollDice draws a die value and resolves it for the game's current player.
// In pass-and-play the same session drives both seats, so there is no
// whose-roll-is-it check beyond the game's own turn record.
func (that *GameManager) RollDice(ctx context.Context, playerID string) (*entity.Game, laprace.Outcome, error) {
	game, err := that.GetGameByPlayerID(ctx, playerID)
	if err != nil {
		return nil, laprace.Outcome{}, err
	}

	die := that.dice.Roll()

	outcome, err := laprace.ResolveRoll(that.track, game, die)
	if err != nil {
		return nil, laprace.Outcome{}, fmt.Errorf("failed to resolve roll: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, laprace.Outcome{}, fmt.Errorf("failed to update game: %w", err)
	}

	if outcome.Code == laprace.OutcomeReachedHome {
		that.recordMatch(ctx, game)
		that.publish(events.EventGameFinished, game)

		return game, outcome, nil
	}

	that.publish(events.EventRollResolved, game)

	return game, outcome, nil
}

func (that *GameManager) ResetGame(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.GetGameByPlayerID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game.Reset()

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.publish(events.EventGameReset, game)

	return game, nil
}

func (that *GameManager) RecentMatches(ctx context.Context, limit int) ([]*entity.Match, error) {
	matches, err := that.matchRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	return matches, nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	gameID := pkg.GenerateGameID()
	player.GameID = gameID

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	newGame := entity.Game{}
	newGame.Create(gameID)

	newGame.Players = []*entity.Player{
		player,
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, &newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return &newGame, nil
}

func (that *GameManager) recordMatch(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "recordMatch")

	match := &entity.Match{
		GameID:     game.ID,
		Winner:     game.Winner,
		Rolls:      game.Rolls,
		FinishedAt: time.Now().UTC(),
	}

	if err := that.matchRepo.Save(ctx, match); err != nil {
		log.Error("failed to save match", "gameID", game.ID, "error", err)
		return
	}

	log.Info("match recorded", "gameID", game.ID, "winner", game.Winner)
}

func (that *GameManager) publish(event string, game *entity.Game) {
	if err := that.publisher.Publish(event, game); err != nil {
		that.logger.Warn("failed to publish event", "event", event, "gameID", game.ID, "error", err)
	}
}
