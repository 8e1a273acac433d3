package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chessplay/internal/core"
	"chessplay/internal/processor"
	"chessplay/internal/service"
	"chessplay/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
)

const testSecret = "test-secret-test-secret-test-secret"

func newTestApp(t *testing.T, store *storage.Store) (*fiber.App, *service.Service) {
	t.Helper()
	svc := service.New(store, []byte(testSecret), service.WithWaitTimeout(2*time.Second))
	t.Cleanup(func() { svc.Shutdown(time.Second) })
	return NewFiberApp(processor.New(svc), svc, true), svc
}

func do(t *testing.T, app *fiber.App, method, path, body, token string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func createGame(t *testing.T, app *fiber.App, body, token string) core.GameResponse {
	t.Helper()
	status, data := do(t, app, "POST", "/api/v1/games", body, token)
	if status != fiber.StatusCreated {
		t.Fatalf("create game status %d: %s", status, data)
	}
	return decode[core.GameResponse](t, data)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t, nil)
	status, data := do(t, app, "GET", "/health", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("status %d", status)
	}
	h := decode[core.HealthResponse](t, data)
	if h.Status != "healthy" || h.Storage != "disabled" || h.Games != 0 {
		t.Errorf("health = %+v", h)
	}
}

func TestGameFlow(t *testing.T) {
	app, _ := newTestApp(t, nil)
	g := createGame(t, app, `{}`, "")
	if g.Turn != "w" || g.MoveCount != 0 || len(g.Pieces) != 32 {
		t.Fatalf("new game = %+v", g)
	}
	base := "/api/v1/games/" + g.GameID

	if status, _ := do(t, app, "GET", base+"/moves?from=G1", "", ""); status != fiber.StatusConflict {
		t.Errorf("selecting a black piece on White's turn: status %d", status)
	}

	status, data := do(t, app, "GET", base+"/moves?from=E7", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("moves status %d: %s", status, data)
	}
	moves := decode[core.PossibleMovesResponse](t, data)
	if diff := cmp.Diff([]string{"E6", "E5"}, moves.Moves); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}

	var knightID string
	for _, pc := range g.Pieces {
		if pc.Square == "G8" {
			knightID = pc.ID
		}
	}
	status, data = do(t, app, "GET", base+"/pieces/"+knightID, "", "")
	if status != fiber.StatusOK {
		t.Fatalf("piece status %d: %s", status, data)
	}
	knight := decode[core.PieceResponse](t, data)
	if knight.Kind != "Knight" || knight.Captured {
		t.Errorf("piece = %+v", knight)
	}
	if diff := cmp.Diff([]string{"F6", "H6"}, knight.Moves); diff != "" {
		t.Errorf("piece moves mismatch (-want +got):\n%s", diff)
	}

	status, data = do(t, app, "POST", base+"/moves", `{"from":"d7","to":"d5"}`, "")
	if status != fiber.StatusOK {
		t.Fatalf("move status %d: %s", status, data)
	}
	after := decode[core.GameResponse](t, data)
	if after.MoveCount != 1 || after.Turn != "b" || after.LastMove == nil || after.LastMove.To != "D5" {
		t.Errorf("after move = %+v", after)
	}

	status, data = do(t, app, "GET", base+"/log", "", "")
	if status != fiber.StatusOK {
		t.Fatalf("log status %d", status)
	}
	wantLog := []core.LogEntry{{Piece: "Pawn", To: "D5"}}
	if diff := cmp.Diff(wantLog, decode[core.LogResponse](t, data).Log); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}

	status, data = do(t, app, "GET", base+"/board", "", "")
	if status != fiber.StatusOK || !strings.Contains(decode[core.BoardResponse](t, data).Board, "H G F E D C B A") {
		t.Errorf("board status %d: %s", status, data)
	}

	if status, _ := do(t, app, "DELETE", base, "", ""); status != fiber.StatusNoContent {
		t.Errorf("delete status %d", status)
	}
	if status, _ := do(t, app, "GET", base, "", ""); status != fiber.StatusNotFound {
		t.Errorf("get after delete status %d", status)
	}
}

func TestRequestErrors(t *testing.T) {
	app, _ := newTestApp(t, nil)
	g := createGame(t, app, `{}`, "")
	base := "/api/v1/games/" + g.GameID

	tests := []struct {
		name, method, path, body string
		wantStatus               int
		wantCode                 string
	}{
		{"bad uuid", "GET", "/api/v1/games/not-a-uuid", "", fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"unknown game", "GET", "/api/v1/games/00000000-0000-0000-0000-000000000000", "", fiber.StatusNotFound, core.ErrGameNotFound},
		{"bad square", "POST", base + "/moves", `{"from":"Z9","to":"E4"}`, fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"missing to", "POST", base + "/moves", `{"from":"E2"}`, fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"wrong turn", "POST", base + "/moves", `{"from":"E2","to":"E3"}`, fiber.StatusConflict, core.ErrNotYourTurn},
		{"illegal", "POST", base + "/moves", `{"from":"D7","to":"D4"}`, fiber.StatusBadRequest, core.ErrInvalidMove},
		{"bad fen", "POST", "/api/v1/games", `{"fen":"8/8/8 w - - 0 1"}`, fiber.StatusBadRequest, core.ErrInvalidFEN},
		{"bad seat", "POST", "/api/v1/games", `{"playAs":"x"}`, fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"moves without from", "GET", base + "/moves", "", fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"bad piece id", "GET", base + "/pieces/knight", "", fiber.StatusBadRequest, core.ErrInvalidRequest},
		{"unknown piece", "GET", base + "/pieces/00000000-0000-0000-0000-000000000000", "", fiber.StatusNotFound, core.ErrPieceNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, data := do(t, app, tt.method, tt.path, tt.body, "")
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", status, tt.wantStatus, data)
			}
			if got := decode[core.ErrorResponse](t, data).Code; got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	app, _ := newTestApp(t, nil)
	req := httptest.NewRequest("POST", "/api/v1/games", strings.NewReader("fen=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnsupportedMediaType {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestLongPoll(t *testing.T) {
	app, _ := newTestApp(t, nil)
	g := createGame(t, app, `{}`, "")
	base := "/api/v1/games/" + g.GameID

	// A stale move count answers at once
	status, data := do(t, app, "GET", base+"?wait=true&moveCount=5", "", "")
	if status != fiber.StatusOK || decode[core.GameResponse](t, data).MoveCount != 0 {
		t.Fatalf("stale wait: %d %s", status, data)
	}

	done := make(chan core.GameResponse, 1)
	go func() {
		req := httptest.NewRequest("GET", base+"?wait=true&moveCount=0", nil)
		resp, err := app.Test(req, -1)
		if err != nil {
			close(done)
			return
		}
		defer resp.Body.Close()
		var gr core.GameResponse
		json.NewDecoder(resp.Body).Decode(&gr)
		done <- gr
	}()

	time.Sleep(100 * time.Millisecond)
	if status, data := do(t, app, "POST", base+"/moves", `{"from":"D7","to":"D5"}`, ""); status != fiber.StatusOK {
		t.Fatalf("move status %d: %s", status, data)
	}

	select {
	case gr, ok := <-done:
		if !ok || gr.MoveCount != 1 {
			t.Errorf("woken response = %+v", gr)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("long poll did not return")
	}
}

func TestAuthAndSeats(t *testing.T) {
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "http.db"), false)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.InitDB(); err != nil {
		t.Fatal(err)
	}
	app, _ := newTestApp(t, store)

	status, data := do(t, app, "POST", "/api/v1/auth/register", `{"username":"Alice","password":"secret123"}`, "")
	if status != fiber.StatusCreated {
		t.Fatalf("register status %d: %s", status, data)
	}
	reg := decode[core.AuthResponse](t, data)
	if reg.Username != "alice" || reg.Token == "" {
		t.Errorf("register = %+v", reg)
	}

	if status, data := do(t, app, "POST", "/api/v1/auth/register", `{"username":"alice","password":"secret123"}`, ""); status != fiber.StatusConflict {
		t.Errorf("duplicate register status %d: %s", status, data)
	}
	if status, _ := do(t, app, "POST", "/api/v1/auth/register", `{"username":"bob","password":"lettersonly"}`, ""); status != fiber.StatusBadRequest {
		t.Errorf("weak password status %d", status)
	}
	if status, _ := do(t, app, "POST", "/api/v1/auth/login", `{"username":"alice","password":"wrong1234"}`, ""); status != fiber.StatusUnauthorized {
		t.Errorf("bad login status %d", status)
	}

	status, data = do(t, app, "POST", "/api/v1/auth/login", `{"username":"ALICE","password":"secret123"}`, "")
	if status != fiber.StatusOK {
		t.Fatalf("login status %d: %s", status, data)
	}
	token := decode[core.AuthResponse](t, data).Token

	status, data = do(t, app, "GET", "/api/v1/auth/me", "", token)
	if status != fiber.StatusOK || decode[core.UserResponse](t, data).UserID != reg.UserID {
		t.Errorf("me status %d: %s", status, data)
	}
	if status, _ := do(t, app, "GET", "/api/v1/auth/me", "", ""); status != fiber.StatusUnauthorized {
		t.Errorf("me without token status %d", status)
	}
	if status, _ := do(t, app, "GET", "/api/v1/auth/me", "", "garbage"); status != fiber.StatusUnauthorized {
		t.Errorf("me with bad token status %d", status)
	}

	// Alice takes White; anonymous callers cannot move her pieces
	g := createGame(t, app, `{"playAs":"w"}`, token)
	base := "/api/v1/games/" + g.GameID
	if !g.Players.White.Claimed || g.Players.Black.Claimed {
		t.Errorf("claimed flags = %+v %+v", g.Players.White, g.Players.Black)
	}
	status, data = do(t, app, "GET", base, "", "")
	if status != fiber.StatusOK {
		t.Fatalf("get game status %d: %s", status, data)
	}
	if strings.Contains(string(data), reg.UserID) || strings.Contains(string(data), "userId") {
		t.Errorf("game response leaks the seat owner: %s", data)
	}
	if status, data := do(t, app, "POST", base+"/moves", `{"from":"D7","to":"D5"}`, ""); status != fiber.StatusForbidden {
		t.Errorf("anonymous move status %d: %s", status, data)
	}
	if status, data := do(t, app, "POST", base+"/moves", `{"from":"D7","to":"D5"}`, token); status != fiber.StatusOK {
		t.Errorf("owner move status %d: %s", status, data)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc":   "abc",
		"bearer abc":   "abc",
		"Basic abc":    "",
		"Bearer":       "",
		"":             "",
		"Bearer  abc ": "abc",
	}
	for in, want := range tests {
		if got := extractBearerToken(in); got != want {
			t.Errorf("extractBearerToken(%q) = %q, want %q", in, got, want)
		}
	}
}
