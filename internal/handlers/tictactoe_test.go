package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mroldan747/ai50/internal/tictactoe"
)

func newTestTicTacToe(t *testing.T) *TicTacToe {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler, err := NewTicTacToe(logger)
	require.NoError(t, err)
	return handler
}

func analyzeRequest(t *testing.T, handler *TicTacToe, body string) (*httptest.ResponseRecorder, AnalysisDTO) {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/tictactoe/analyze", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.Analyze(w, r)
	var dto AnalysisDTO
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	}
	return w, dto
}

func TestAnalyzeInitialPosition(t *testing.T) {
	t.Parallel()

	handler := newTestTicTacToe(t)
	w, dto := analyzeRequest(t, handler, `{"board":[[0,0,0],[0,0,0],[0,0,0]]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "X", dto.Player)
	assert.False(t, dto.Terminal)
	assert.Empty(t, dto.Winner)
	assert.Equal(t, 0, dto.Value, "perfect play draws")
	require.NotNil(t, dto.Move)
	assert.Equal(t, tictactoe.Move{Row: 0, Col: 0}, *dto.Move)
}

func TestAnalyzeWinInOne(t *testing.T) {
	t.Parallel()

	handler := newTestTicTacToe(t)
	w, dto := analyzeRequest(t, handler, `{"board":[[1,1,0],[2,2,0],[0,0,0]]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "X", dto.Player)
	assert.False(t, dto.Terminal)
	assert.Equal(t, 1, dto.Value)
	require.NotNil(t, dto.Move)
	assert.Equal(t, tictactoe.Move{Row: 0, Col: 2}, *dto.Move)
}

func TestAnalyzeTerminalPosition(t *testing.T) {
	t.Parallel()

	handler := newTestTicTacToe(t)
	w, dto := analyzeRequest(t, handler, `{"board":[[1,2,0],[2,1,0],[0,0,1]]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, dto.Terminal)
	assert.Equal(t, "X", dto.Winner)
	assert.Equal(t, 1, dto.Value)
	assert.Nil(t, dto.Move)
}

func TestAnalyzeCachesResults(t *testing.T) {
	t.Parallel()

	handler := newTestTicTacToe(t)
	body := `{"board":[[1,0,0],[0,2,0],[0,0,0]]}`

	w1, dto1 := analyzeRequest(t, handler, body)
	w2, dto2 := analyzeRequest(t, handler, body)

	require.Equal(t, http.StatusOK, w1.Code)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, dto1, dto2)
	assert.Equal(t, 1, handler.cache.Len())
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	t.Parallel()

	handler := newTestTicTacToe(t)

	for _, body := range []string{
		`not json`,
		`{"board":[[7,0,0],[0,0,0],[0,0,0]]}`,
		`{"board":[[-1,0,0],[0,0,0],[0,0,0]]}`,
	} {
		w, _ := analyzeRequest(t, handler, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}
