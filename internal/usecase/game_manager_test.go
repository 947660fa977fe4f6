package usecase

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/laprace-backend/internal/apperror"
	"github.com/rocketscienceinc/laprace-backend/internal/entity"
	"github.com/rocketscienceinc/laprace-backend/internal/events"
	"github.com/rocketscienceinc/laprace-backend/internal/laprace"
	"github.com/rocketscienceinc/laprace-backend/internal/repository"
)

type fakePlayerRepo struct {
	players map[string]*entity.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[string]*entity.Player)}
}

func (that *fakePlayerRepo) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.players[player.ID] = player
	return nil
}

func (that *fakePlayerRepo) GetByID(_ context.Context, id string) (*entity.Player, error) {
	player, ok := that.players[id]
	if !ok {
		return &entity.Player{}, repository.ErrPlayerNotFound
	}
	return player, nil
}

type fakeGameRepo struct {
	games map[string]*entity.Game
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[string]*entity.Game)}
}

func (that *fakeGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.games[game.ID] = game
	return nil
}

func (that *fakeGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	game, ok := that.games[id]
	if !ok {
		return &entity.Game{}, repository.ErrGameNotFound
	}
	return game, nil
}

func (that *fakeGameRepo) DeleteByID(_ context.Context, id string) error {
	delete(that.games, id)
	return nil
}

type fakeMatchRepo struct {
	saved []*entity.Match
}

func (that *fakeMatchRepo) Save(_ context.Context, match *entity.Match) error {
	that.saved = append(that.saved, match)
	return nil
}

func (that *fakeMatchRepo) ListRecent(_ context.Context, limit int) ([]*entity.Match, error) {
	if len(that.saved) < limit {
		limit = len(that.saved)
	}
	return that.saved[:limit], nil
}

type fakePublisher struct {
	published []string
}

func (that *fakePublisher) Publish(event string, _ *entity.Game) error {
	that.published = append(that.published, event)
	return nil
}

// scriptedRoller feeds predetermined die values so the orchestration is
// deterministic under test.
type scriptedRoller struct {
	rolls []int
	next  int
}

func (that *scriptedRoller) Roll() int {
	die := that.rolls[that.next]
	that.next++
	return die
}

type managerFixture struct {
	manager   *GameManager
	matchRepo *fakeMatchRepo
	publisher *fakePublisher
}

func newManagerFixture(rolls ...int) *managerFixture {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	matchRepo := &fakeMatchRepo{}
	publisher := &fakePublisher{}
	manager := NewGameManager(logger, newFakePlayerRepo(), newFakeGameRepo(), matchRepo, publisher, &scriptedRoller{rolls: rolls})

	return &managerFixture{
		manager:   manager,
		matchRepo: matchRepo,
		publisher: publisher,
	}
}

func TestGameManager_GetOrCreatePlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a new player when the id is empty", func(t *testing.T) {
		// Given: a manager with no players
		fx := newManagerFixture()

		// When: GetOrCreatePlayer is called without an id
		player, err := fx.manager.GetOrCreatePlayer(ctx, "")

		// Then: a new player with a generated id is stored
		require.NoError(t, err)
		assert.NotEmpty(t, player.ID)
		assert.Empty(t, player.GameID)
	})

	t.Run("Returns the existing player", func(t *testing.T) {
		// Given: a stored player
		fx := newManagerFixture()
		created, err := fx.manager.GetOrCreatePlayer(ctx, "")
		require.NoError(t, err)

		// When: GetOrCreatePlayer is called with the known id
		player, err := fx.manager.GetOrCreatePlayer(ctx, created.ID)

		// Then: the same player comes back
		require.NoError(t, err)
		assert.Equal(t, created, player)
	})
}

func TestGameManager_GetOrCreateGame(t *testing.T) {
	ctx := context.Background()

	// Given: a player without a game
	fx := newManagerFixture()
	player, err := fx.manager.GetOrCreatePlayer(ctx, "")
	require.NoError(t, err)

	// When: GetOrCreateGame is called
	game, err := fx.manager.GetOrCreateGame(ctx, player.ID)

	// Then: a fresh game is created and attached to the player
	require.NoError(t, err)
	assert.NotEmpty(t, game.ID)
	assert.Equal(t, game.ID, player.GameID)
	assert.True(t, game.IsOngoing())
	assert.Equal(t, entity.PlayerRed, game.Turn)

	// When: GetOrCreateGame is called again
	sameGame, err := fx.manager.GetOrCreateGame(ctx, player.ID)

	// Then: the existing game is returned
	require.NoError(t, err)
	assert.Equal(t, game.ID, sameGame.ID)
}

func TestGameManager_GetOrCreateGame_AfterFinish(t *testing.T) {
	ctx := context.Background()

	// Given: a finished game, won with a die scripted to 3
	fx := newManagerFixture(3)
	player, err := fx.manager.GetOrCreatePlayer(ctx, "")
	require.NoError(t, err)
	finished, err := fx.manager.GetOrCreateGame(ctx, player.ID)
	require.NoError(t, err)
	finished.Positions[entity.PlayerRed] = entity.OnTrack(25)

	_, _, err = fx.manager.RollDice(ctx, player.ID)
	require.NoError(t, err)

	// When: the player asks for a new game
	game, err := fx.manager.GetOrCreateGame(ctx, player.ID)

	// Then: a fresh game replaces the finished one
	require.NoError(t, err)
	assert.NotEqual(t, finished.ID, game.ID)
	assert.True(t, game.IsOngoing())
	assert.True(t, game.Positions[entity.PlayerRed].IsBase())
}

func TestGameManager_RollDice(t *testing.T) {
	ctx := context.Background()

	t.Run("Scripted six then three", func(t *testing.T) {
		// Given: a fresh game and a die scripted to 6 then 3
		fx := newManagerFixture(6, 3)
		player, err := fx.manager.GetOrCreatePlayer(ctx, "")
		require.NoError(t, err)
		_, err = fx.manager.GetOrCreateGame(ctx, player.ID)
		require.NoError(t, err)

		// When: the first roll resolves
		game, outcome, err := fx.manager.RollDice(ctx, player.ID)
		require.NoError(t, err)

		// Then: Red entered and keeps the turn
		assert.Equal(t, laprace.OutcomeRolledSix, outcome.Code)
		assert.Equal(t, entity.OnTrack(0), game.Positions[entity.PlayerRed])
		assert.Equal(t, entity.PlayerRed, game.Turn)

		// When: the second roll resolves
		game, outcome, err = fx.manager.RollDice(ctx, player.ID)
		require.NoError(t, err)

		// Then: Red stands on cell 3 and the turn passed to Blue
		assert.Equal(t, laprace.OutcomeMoved, outcome.Code)
		assert.Equal(t, entity.OnTrack(3), game.Positions[entity.PlayerRed])
		assert.Equal(t, entity.PlayerBlue, game.Turn)

		// Then: both rolls were published
		assert.Equal(t, []string{events.EventRollResolved, events.EventRollResolved}, fx.publisher.published)
	})

	t.Run("Winning roll records the match", func(t *testing.T) {
		// Given: Red three cells short of a full lap and a die scripted to 3
		fx := newManagerFixture(3)
		player, err := fx.manager.GetOrCreatePlayer(ctx, "")
		require.NoError(t, err)
		game, err := fx.manager.GetOrCreateGame(ctx, player.ID)
		require.NoError(t, err)
		game.Positions[entity.PlayerRed] = entity.OnTrack(25)

		// When: the roll resolves
		game, outcome, err := fx.manager.RollDice(ctx, player.ID)
		require.NoError(t, err)

		// Then: the game is finished and the match is in history
		assert.Equal(t, laprace.OutcomeReachedHome, outcome.Code)
		assert.True(t, game.IsFinished())
		require.Len(t, fx.matchRepo.saved, 1)
		assert.Equal(t, "Red", fx.matchRepo.saved[0].Winner)
		assert.Equal(t, []string{events.EventGameFinished}, fx.publisher.published)
	})

	t.Run("Rolling without a game fails", func(t *testing.T) {
		// Given: a player who never started a game
		fx := newManagerFixture(1)
		player, err := fx.manager.GetOrCreatePlayer(ctx, "")
		require.NoError(t, err)

		// When: RollDice is called
		_, _, err = fx.manager.RollDice(ctx, player.ID)

		// Then: an ErrNoActiveGames error should be returned
		require.ErrorIs(t, err, apperror.ErrNoActiveGames)
	})
}

func TestGameManager_ResetGame(t *testing.T) {
	ctx := context.Background()

	// Given: a game deep in progress
	fx := newManagerFixture(6, 3)
	player, err := fx.manager.GetOrCreatePlayer(ctx, "")
	require.NoError(t, err)
	_, err = fx.manager.GetOrCreateGame(ctx, player.ID)
	require.NoError(t, err)

	_, _, err = fx.manager.RollDice(ctx, player.ID)
	require.NoError(t, err)
	_, _, err = fx.manager.RollDice(ctx, player.ID)
	require.NoError(t, err)

	// When: the game is reset
	game, err := fx.manager.ResetGame(ctx, player.ID)
	require.NoError(t, err)

	// Then: both tokens are back in base and Red is to move
	assert.True(t, game.Positions[entity.PlayerRed].IsBase())
	assert.True(t, game.Positions[entity.PlayerBlue].IsBase())
	assert.Equal(t, entity.PlayerRed, game.Turn)
	assert.Zero(t, game.LastRoll)
	assert.Equal(t, events.EventGameReset, fx.publisher.published[len(fx.publisher.published)-1])
}
