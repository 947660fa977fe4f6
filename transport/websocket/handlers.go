package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/laprace-backend/internal/apperror"
	"github.com/rocketscienceinc/laprace-backend/internal/entity"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)

		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	payloadResp := Payload{
		Player: player,
	}

	// a returning session gets its game back right away
	if player.GameID != "" {
		game, err := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
		if err != nil {
			log.Error("failed to get game", "gameID", player.GameID, "error", err)
			return that.sendErrorResponse(conn, msg.Action, "failed to get the game")
		}

		payloadResp.Game = game
		payloadResp.CanRoll = canRollHint(game)
	}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := that.unmarshalPlayerPayload(msg, conn)
	if err != nil || payloadReq == nil {
		return err
	}

	game, err := that.gameUseCase.GetOrCreateGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to create or get game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new game")
	}

	payloadResp := Payload{
		Game:    game,
		CanRoll: canRollHint(game),
	}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("game ready", "gameID", game.ID)

	return nil
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameState")

	payloadReq, err := that.unmarshalPlayerPayload(msg, conn)
	if err != nil || payloadReq == nil {
		return err
	}

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, payloadReq.Player.ID)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		return that.sendErrorResponse(conn, msg.Action, "no active game")
	}

	if err != nil {
		log.Error("failed to get game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to get the game")
	}

	payloadResp := Payload{
		Game:    game,
		Outcome: game.Outcome,
		CanRoll: canRollHint(game),
	}

	return that.sendMessage(conn, msg.Action, payloadResp)
}

func (that *Server) handleGameRoll(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameRoll")

	payloadReq, err := that.unmarshalPlayerPayload(msg, conn)
	if err != nil || payloadReq == nil {
		return err
	}

	game, outcome, err := that.gameUseCase.RollDice(ctx, payloadReq.Player.ID)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		return that.sendErrorResponse(conn, msg.Action, "no active game")
	}

	if err != nil {
		log.Error("failed to roll dice", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to roll the die")
	}

	payloadResp := Payload{
		Game:    game,
		Outcome: outcome.Message,
		CanRoll: canRollHint(game),
	}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("roll resolved", "gameID", game.ID, "outcome", outcome.Code, "die", outcome.Die)

	return nil
}

func (that *Server) handleGameReset(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameReset")

	payloadReq, err := that.unmarshalPlayerPayload(msg, conn)
	if err != nil || payloadReq == nil {
		return err
	}

	game, err := that.gameUseCase.ResetGame(ctx, payloadReq.Player.ID)
	if errors.Is(err, apperror.ErrNoActiveGames) {
		return that.sendErrorResponse(conn, msg.Action, "no active game")
	}

	if err != nil {
		log.Error("failed to reset game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to reset the game")
	}

	payloadResp := Payload{
		Game:    game,
		CanRoll: canRollHint(game),
	}

	if err = that.sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("game reset", "gameID", game.ID)

	return nil
}

// unmarshalPlayerPayload parses a request payload that must name a player.
// It returns a nil payload after answering the client when the player is
// missing, so handlers can bail out without a second error response.
func (that *Server) unmarshalPlayerPayload(msg *Message, conn *websocket.Conn) (*Payload, error) {
	log := that.logger.With("method", "unmarshalPlayerPayload")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload", "action", msg.Action)
		return nil, that.sendErrorResponse(conn, msg.Action, "Player is required")
	}

	return &payloadReq, nil
}

// canRollHint tells the view whether the roll control should be enabled for
// the seat to move. Purely a display hint.
func canRollHint(game *entity.Game) *bool {
	canRoll := game.CanRoll(game.Turn)
	return &canRoll
}
