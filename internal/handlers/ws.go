package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/mroldan747/ai50/internal/minesweeper"
)

// ConnectWS serves live play over a websocket. Each text frame carries
// newline-separated commands and is answered with the session JSON:
//
//	r <row> <col>   reveal a cell
//	f <row> <col>   toggle a flag
//	h               let the agent play one move
//	g               fetch the session
//
// Malformed commands close the connection; commands past the end of the
// game are ignored.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, game, ok := g.fetchGame(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade connection", "error", err)
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(
				err, websocket.CloseNormalClosure, websocket.CloseGoingAway,
			) {
				g.logger.Warn("websocket read", "error", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		for _, command := range byPiece(text, "\n") {
			err := executeCommand(game, g.rnd, command)
			if errors.Is(err, minesweeper.ErrGameOver) {
				break
			}
			if err != nil {
				g.logger.Error("bad command", "command", command, "error", err)
				return
			}
			if game.Over() {
				break
			}
		}

		updated, err := g.repo.SaveGame(r.Context(), session, game)
		if err != nil {
			g.logger.Error("unable to update game session", "error", err)
			return
		}
		session = updated

		if err := c.WriteJSON(NewGameSessionDTO(session, game)); err != nil {
			g.logger.Error("websocket write", "error", err)
			break
		}
	}
}
