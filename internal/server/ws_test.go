package server

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Skeome/Arcana-Sim/internal/catalog"
	"github.com/Skeome/Arcana-Sim/internal/session"
)

const testLibrary = `
spirits:
  stone_golem:
    name: Stone Golem
    cost: 1
    power: 2
    defense: 3
    health: 8
    effects:
      prevent_defense_reduction: true

spells:
  healing_wave:
    name: Healing Wave
    cost: 2
    scaling: 4
    effects:
      heal_wizard: 4
`

func newTestServer(t *testing.T, source DeckSource) *Server {
	t.Helper()
	logger := zaptest.NewLogger(t)
	cat, err := catalog.Parse([]byte(testLibrary))
	require.NoError(t, err)
	decks := map[string]catalog.DeckList{
		"default": {
			Name: "default",
			Cards: []catalog.DeckEntry{
				{ID: "stone_golem", Count: 3},
				{ID: "healing_wave", Count: 3},
			},
		},
	}
	return New(session.NewManager(logger), cat, decks, source, "default", "medium", logger)
}

func TestDispatchCreateAndState(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.dispatch(context.Background(), Command{
		Command: "create", Session: "room-1", Player: "alice",
	})
	require.True(t, resp.OK, resp.Error)
	require.NotNil(t, resp.State)
	assert.Equal(t, [2]string{"alice", "opponent"}, resp.State.Sides)
	assert.Equal(t, "alice", resp.State.CurrentSide)
	assert.Len(t, resp.State.Players[0].Hand, 6, "whole deck drawn into hand")

	resp = s.dispatch(context.Background(), Command{Command: "state", Session: "room-1"})
	require.True(t, resp.OK)
	require.NotNil(t, resp.State)
}

func TestDispatchCreateRejections(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.dispatch(context.Background(), Command{Command: "create", Session: "room-1"})
	assert.False(t, resp.OK, "player name is required")

	resp = s.dispatch(context.Background(), Command{Command: "create", Session: "room-1", Player: "opponent"})
	assert.False(t, resp.OK, "the built-in side name is reserved")

	resp = s.dispatch(context.Background(), Command{Command: "create", Session: "room-1", Player: "alice"})
	require.True(t, resp.OK)
	resp = s.dispatch(context.Background(), Command{Command: "create", Session: "room-1", Player: "bob"})
	assert.False(t, resp.OK, "session key already taken")
}

func TestDispatchUnknownSession(t *testing.T) {
	s := newTestServer(t, nil)
	resp := s.dispatch(context.Background(), Command{Command: "state", Session: "nowhere"})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "no session")
}

func TestDispatchActAndAIResponse(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	resp := s.dispatch(ctx, Command{Command: "create", Session: "room-1", Player: "alice"})
	require.True(t, resp.OK)

	// Alice passes through her whole turn; the AI then plays its own turn
	// and hands control straight back.
	for i := 0; i < 4; i++ {
		resp = s.dispatch(ctx, Command{Command: "advance", Session: "room-1", Player: "alice"})
		require.True(t, resp.OK, resp.Error)
	}
	assert.Equal(t, "alice", resp.State.CurrentSide)
	assert.Equal(t, 2, resp.State.TurnCount)
}

func TestDispatchAdvanceGuards(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	resp := s.dispatch(ctx, Command{Command: "create", Session: "room-1", Player: "alice"})
	require.True(t, resp.OK)

	resp = s.dispatch(ctx, Command{Command: "advance", Session: "room-1", Player: "mallory"})
	assert.False(t, resp.OK)
	assert.NotNil(t, resp.State, "rejections still carry a snapshot")
}

func TestDispatchRejectedActionCarriesState(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	resp := s.dispatch(ctx, Command{Command: "create", Session: "room-1", Player: "alice"})
	require.True(t, resp.OK)

	// Summoning during Attunement is out of phase.
	resp = s.dispatch(ctx, Command{
		Command: "summon", Session: "room-1", Player: "alice",
		CardID: "stone_golem", Slot: 0,
	})
	assert.False(t, resp.OK)
	assert.NotEmpty(t, resp.Error)
	require.NotNil(t, resp.State)
	assert.Equal(t, "ATTUNEMENT", resp.State.CurrentPhase)
}

func TestDispatchUnknownCommand(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	resp := s.dispatch(ctx, Command{Command: "create", Session: "room-1", Player: "alice"})
	require.True(t, resp.OK)

	resp = s.dispatch(ctx, Command{Command: "conjure", Session: "room-1", Player: "alice"})
	assert.False(t, resp.OK)
	assert.Contains(t, resp.Error, "unknown command")
}

func TestDispatchDestroy(t *testing.T) {
	s := newTestServer(t, nil)
	ctx := context.Background()

	resp := s.dispatch(ctx, Command{Command: "create", Session: "room-1", Player: "alice"})
	require.True(t, resp.OK)

	resp = s.dispatch(ctx, Command{Command: "destroy", Session: "room-1"})
	require.True(t, resp.OK)

	resp = s.dispatch(ctx, Command{Command: "destroy", Session: "room-1"})
	assert.False(t, resp.OK)
}

type stubDeckSource struct {
	list catalog.DeckList
	err  error
}

func (s *stubDeckSource) LoadDeck(_ context.Context, _ string) (catalog.DeckList, error) {
	return s.list, s.err
}

func TestDeckForUsesSavedDeck(t *testing.T) {
	source := &stubDeckSource{list: catalog.DeckList{
		Name:  "saved",
		Cards: []catalog.DeckEntry{{ID: "healing_wave", Count: 2}},
	}}
	s := newTestServer(t, source)

	deck := s.deckFor(context.Background(), "alice")
	require.Len(t, deck, 2)
	assert.Equal(t, "healing_wave", deck[0].Def.ID)
}

func TestDeckForFallsBackToDefault(t *testing.T) {
	source := &stubDeckSource{err: errors.New("no rows")}
	s := newTestServer(t, source)

	deck := s.deckFor(context.Background(), "alice")
	assert.Len(t, deck, 6)
}
