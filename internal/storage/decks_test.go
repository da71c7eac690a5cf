package storage

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Skeome/Arcana-Sim/internal/catalog"
)

// newTestStore connects to the database named by ARCANA_TEST_DATABASE_URL,
// skipping the test when none is configured.
func newTestStore(t *testing.T) *DeckStore {
	t.Helper()
	url := os.Getenv("ARCANA_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("ARCANA_TEST_DATABASE_URL not set")
	}
	store, err := NewDeckStore(context.Background(), url, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestSaveAndLoadDeck(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	player := uuid.NewString()

	list := catalog.DeckList{
		Name: player,
		Cards: []catalog.DeckEntry{
			{ID: "stone_golem", Count: 3},
			{ID: "firestorm", Count: 2},
			{ID: "empty_entry", Count: 0}, // dropped on save
		},
	}
	require.NoError(t, store.SaveDeck(ctx, player, list))

	got, err := store.LoadDeck(ctx, player)
	require.NoError(t, err)
	assert.Equal(t, player, got.Name)
	assert.Equal(t, []catalog.DeckEntry{
		{ID: "firestorm", Count: 2},
		{ID: "stone_golem", Count: 3},
	}, got.Cards)
}

func TestSaveDeckReplacesPrevious(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	player := uuid.NewString()

	require.NoError(t, store.SaveDeck(ctx, player, catalog.DeckList{
		Cards: []catalog.DeckEntry{{ID: "stone_golem", Count: 3}},
	}))
	require.NoError(t, store.SaveDeck(ctx, player, catalog.DeckList{
		Cards: []catalog.DeckEntry{{ID: "healing_wave", Count: 1}},
	}))

	got, err := store.LoadDeck(ctx, player)
	require.NoError(t, err)
	assert.Equal(t, []catalog.DeckEntry{{ID: "healing_wave", Count: 1}}, got.Cards)
}

func TestLoadDeckUnknownPlayer(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadDeck(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNoDeck)
}
