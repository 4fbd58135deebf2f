package service

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/benbeisheim/fogchess-backend/internal/storage"
	"github.com/benbeisheim/fogchess-backend/internal/ws"
)

type recordingConn struct {
	mu       sync.Mutex
	messages []ws.Message
	fail     error
}

func (c *recordingConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail != nil {
		return c.fail
	}
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func (c *recordingConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func newTestService(t *testing.T) (*GameService, *storage.Storage) {
	t.Helper()
	archive, err := storage.Open("")
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() { archive.Close() })
	return NewGameService(NewGameManager(archive)), archive
}

func move(t *testing.T, gs *GameService, gameID, playerID, from, to string) model.GameView {
	t.Helper()
	if _, err := gs.HandleSelect(gameID, playerID, from); err != nil {
		t.Fatalf("select %s: %v", from, err)
	}
	view, err := gs.HandleSelect(gameID, playerID, to)
	if err != nil {
		t.Fatalf("select %s: %v", to, err)
	}
	return view
}

func TestGameServiceOwnership(t *testing.T) {
	gs, _ := newTestService(t)
	gameID, err := gs.CreateGame("alice")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	if _, err := gs.HandleSelect(gameID, "mallory", "e2"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("non-owner select = %v, want ErrNotOwner", err)
	}
	if _, err := gs.HandleSelect("missing", "alice", "e2"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("unknown game select = %v, want ErrGameNotFound", err)
	}
	if _, err := gs.HandleSelect(gameID, "alice", "z9"); !errors.Is(err, model.ErrInvalidSquare) {
		t.Fatalf("bad square select = %v, want ErrInvalidSquare", err)
	}

	view, err := gs.HandleSelect(gameID, "alice", "e2")
	if err != nil {
		t.Fatalf("owner select: %v", err)
	}
	if view.SelectedSquare == nil || len(view.LegalMoves) != 2 {
		t.Fatalf("selection view = %+v", view)
	}
}

func TestGameServicePassAndPlayView(t *testing.T) {
	gs, _ := newTestService(t)
	gameID, _ := gs.CreateGame("alice")

	view := move(t, gs, gameID, "alice", "e2", "e4")
	if view.Viewer != model.Black || view.ToMove != model.Black {
		t.Fatalf("after white's move the view should be black's, got %s/%s", view.Viewer, view.ToMove)
	}
	for _, p := range view.Pieces {
		if p.Color == model.White {
			t.Fatalf("black's view shows hidden %+v", p)
		}
	}

	state, err := gs.GetGameState(gameID)
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	if state.Viewer != model.Black {
		t.Fatalf("state viewer = %s", state.Viewer)
	}
}

func TestGameServiceArchivesFinishedGame(t *testing.T) {
	gs, archive := newTestService(t)
	gameID, _ := gs.CreateGame("alice")

	watcher := &recordingConn{}
	if err := gs.RegisterConnection(gameID, "bob", watcher); err != nil {
		t.Fatalf("RegisterConnection: %v", err)
	}
	if err := gs.RegisterConnection(gameID, "bob", &recordingConn{}); !errors.Is(err, ErrConnectionExists) {
		t.Fatalf("duplicate connection = %v", err)
	}
	broken := &recordingConn{fail: errors.New("closed")}
	if err := gs.RegisterConnection(gameID, "carol", broken); err != nil {
		t.Fatalf("RegisterConnection: %v", err)
	}

	move(t, gs, gameID, "alice", "e2", "e4")
	move(t, gs, gameID, "alice", "f7", "f6")
	move(t, gs, gameID, "alice", "d1", "h5")
	move(t, gs, gameID, "alice", "a7", "a6")
	view := move(t, gs, gameID, "alice", "h5", "e8")

	if view.Phase != model.WhiteWin {
		t.Fatalf("phase = %s, want whiteWin", view.Phase)
	}
	if _, err := gs.HandleSelect(gameID, "alice", "e1"); !errors.Is(err, model.ErrGameOver) {
		t.Fatalf("select after the win = %v", err)
	}

	rec, err := archive.LoadGame(gameID)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	want := []string{"e4", "f6", "Qh5", "a6", "Qxe8#"}
	if rec.Winner != model.White || len(rec.Moves) != len(want) {
		t.Fatalf("archived %+v", rec)
	}
	for i, w := range want {
		if rec.Moves[i] != w {
			t.Errorf("move %d = %q, want %q", i, rec.Moves[i], w)
		}
	}

	stats, err := gs.GetStats()
	if err != nil || stats.Games != 1 || stats.WhiteWins != 1 {
		t.Fatalf("stats = %+v, %v", stats, err)
	}

	// one push per registration plus one per click
	n := watcher.count()
	if n != 12 {
		t.Fatalf("watcher got %d messages, want 12", n)
	}
	if last := watcher.messages[n-1]; last.Type != ws.MessageTypeGameState {
		t.Fatalf("unexpected message type %s", last.Type)
	}
	session, _ := gs.GetGame(gameID)
	session.connections.mu.Lock()
	_, stillThere := session.connections.connections["carol"]
	session.connections.mu.Unlock()
	if stillThere {
		t.Fatalf("failing connection was not dropped")
	}
}

func TestGameServicePromotion(t *testing.T) {
	gs, _ := newTestService(t)
	gameID, _ := gs.CreateGame("alice")

	if _, err := gs.HandlePromote(gameID, "alice", model.Queen); !errors.Is(err, model.ErrNoPendingPromotion) {
		t.Fatalf("promote without a pending pawn = %v", err)
	}
	if _, err := gs.HandlePromote(gameID, "bob", model.Queen); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("promote by non-owner = %v", err)
	}
}

func TestGameServiceWithoutArchive(t *testing.T) {
	gs := NewGameService(NewGameManager(nil))
	if _, err := gs.GetArchivedGame("x"); !errors.Is(err, ErrArchiveDisabled) {
		t.Fatalf("GetArchivedGame = %v", err)
	}
	if _, err := gs.ListArchivedGames(10); !errors.Is(err, ErrArchiveDisabled) {
		t.Fatalf("ListArchivedGames = %v", err)
	}
}

func TestGameServiceSendErrorTargetsOneConnection(t *testing.T) {
	gs, _ := newTestService(t)
	gameID, _ := gs.CreateGame("alice")

	alice, bob := &recordingConn{}, &recordingConn{}
	if err := gs.RegisterConnection(gameID, "alice", alice); err != nil {
		t.Fatalf("RegisterConnection: %v", err)
	}
	if err := gs.RegisterConnection(gameID, "bob", bob); err != nil {
		t.Fatalf("RegisterConnection: %v", err)
	}
	before := bob.count()

	gs.SendError(gameID, "alice", errors.New("unknown message type: dance"))
	last := alice.messages[alice.count()-1]
	if last.Type != ws.MessageTypeError {
		t.Fatalf("alice's last message = %s", last.Type)
	}
	if bob.count() != before {
		t.Fatalf("bob received alice's error")
	}
}

// lockCheckingConn counts writes made while the session lock was free.
type lockCheckingConn struct {
	session  *Session
	writes   int
	unlocked int
}

func (c *lockCheckingConn) WriteJSON(v interface{}) error {
	c.writes++
	if c.session.mu.TryLock() {
		c.unlocked++
		c.session.mu.Unlock()
	}
	return nil
}

func TestGameServiceBroadcastsUnderSessionLock(t *testing.T) {
	gs, _ := newTestService(t)
	gameID, err := gs.CreateGame("alice")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	session, err := gs.GetGame(gameID)
	if err != nil {
		t.Fatalf("GetGame: %v", err)
	}

	conn := &lockCheckingConn{session: session}
	if err := gs.RegisterConnection(gameID, "alice", conn); err != nil {
		t.Fatalf("RegisterConnection: %v", err)
	}
	move(t, gs, gameID, "alice", "e2", "e4")

	if conn.writes != 3 {
		t.Fatalf("writes = %d, want 3", conn.writes)
	}
	if conn.unlocked != 0 {
		t.Fatalf("%d of %d states were sent without the session lock", conn.unlocked, conn.writes)
	}
}

func TestGameServiceConcurrentUpdatesArriveInOrder(t *testing.T) {
	gs, _ := newTestService(t)
	gameID, err := gs.CreateGame("alice")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	watcher := &recordingConn{}
	if err := gs.RegisterConnection(gameID, "bob", watcher); err != nil {
		t.Fatalf("RegisterConnection: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = gs.HandleSelect(gameID, "alice", "e2")
			_, _ = gs.HandleSelect(gameID, "alice", "e4")
		}()
	}
	wg.Wait()

	final, err := gs.GetGameState(gameID)
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	last := watcher.messages[len(watcher.messages)-1]
	var got model.GameView
	if err := json.Unmarshal(last.Payload, &got); err != nil {
		t.Fatalf("decode last state: %v", err)
	}
	if got.ToMove != final.ToMove || len(got.LegalMoves) != len(final.LegalMoves) {
		t.Fatalf("last pushed state %+v does not match current state %+v", got, final)
	}
}
