package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mroldan747/ai50/internal/minesweeper"
)

type GameSession struct {
	GameSessionId int64
	PlayerId      *int64
	Width         int
	Height        int
	MineCount     int
	Dead          bool
	Won           bool
	HintsUsed     int
	State         []byte
	StartedAt     pgtype.Timestamptz
	EndedAt       pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

// Ended reports the session end time, or nil while the game is still going.
func (s GameSession) Ended() *time.Time {
	if !s.EndedAt.Valid {
		return nil
	}
	t := s.EndedAt.Time
	return &t
}

type CreateGameSessionParams struct {
	PlayerId *int64
}

func (p CreateGameSessionParams) UpdateArgs(args *pgx.NamedArgs) *pgx.NamedArgs {
	if p.PlayerId != nil {
		(*args)["player_id"] = *p.PlayerId
	}
	return args
}

func (q Queries) CreateGameSession(
	ctx context.Context, game *minesweeper.Game, params CreateGameSessionParams,
) (*GameSession, error) {
	state, err := game.Bytes()
	if err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"width":      game.Board.Width,
		"height":     game.Board.Height,
		"mine_count": game.Board.MineCount,
		"dead":       game.Dead,
		"won":        game.Won,
		"hints_used": game.HintsUsed,
		"state":      state,
	}
	params.UpdateArgs(&args)

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, width, height, mine_count, dead, won, hints_used, state
		)
		VALUES (
			@player_id, @width, @height, @mine_count, @dead, @won, @hints_used, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(
		rows, pgx.RowToAddrOfStructByName[GameSession],
	)
}

func (q Queries) FetchGameSession(
	ctx context.Context, gameSessionId int64,
) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateGameSessionParams struct {
	Dead      *bool
	Won       *bool
	HintsUsed *int
	EndedAt   *time.Time
	State     *[]byte
}

func (p UpdateGameSessionParams) SetClause() (string, map[string]any) {
	parts := make([]string, 0)
	args := make(map[string]any)

	if p.Dead != nil {
		parts = append(parts, "dead = @dead")
		args["dead"] = *p.Dead
	}
	if p.Won != nil {
		parts = append(parts, "won = @won")
		args["won"] = *p.Won
	}
	if p.HintsUsed != nil {
		parts = append(parts, "hints_used = @hints_used")
		args["hints_used"] = *p.HintsUsed
	}
	if p.EndedAt != nil {
		parts = append(parts, "ended_at = @ended_at")
		args["ended_at"] = *p.EndedAt
	}
	if p.State != nil {
		parts = append(parts, "state = @state")
		args["state"] = *p.State
	}

	return strings.Join(parts, ", "), args
}

func (q Queries) UpdateGameSession(
	ctx context.Context, gameSessionId int64, params UpdateGameSessionParams,
) (*GameSession, error) {
	setClause, args := params.SetClause()
	args["game_session_id"] = gameSessionId
	rows, _ := q.db.Query(
		ctx,
		"UPDATE game_session SET "+setClause+" WHERE game_session_id = @game_session_id RETURNING *",
		pgx.NamedArgs(args),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

// SaveGame persists the full game state back to an existing session, stamping
// ended_at the first time the game reaches a terminal state.
func (q Queries) SaveGame(
	ctx context.Context, session *GameSession, game *minesweeper.Game,
) (*GameSession, error) {
	state, err := game.Bytes()
	if err != nil {
		return nil, err
	}
	params := UpdateGameSessionParams{
		Dead:      &game.Dead,
		Won:       &game.Won,
		HintsUsed: &game.HintsUsed,
		State:     &state,
	}
	if game.Over() && !session.EndedAt.Valid {
		now := time.Now().UTC()
		params.EndedAt = &now
	}
	return q.UpdateGameSession(ctx, session.GameSessionId, params)
}
