package catalog

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Skeome/Arcana-Sim/internal/game"
)

// DeckFile is the top-level YAML structure of a deck list file.
type DeckFile struct {
	Decks []DeckList `yaml:"decks"`
}

// DeckList is a named multiset of card ids.
type DeckList struct {
	Name  string      `yaml:"name"`
	Cards []DeckEntry `yaml:"cards"`
}

// DeckEntry is one card id and how many copies the deck runs.
type DeckEntry struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// LoadDecks parses a YAML deck list file into a map of deck name → list.
func LoadDecks(path string) (map[string]DeckList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}

	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	decks := make(map[string]DeckList, len(df.Decks))
	for _, deck := range df.Decks {
		decks[deck.Name] = deck
	}
	return decks, nil
}

// Materialize expands a deck list into fresh card instances. Entries whose
// id does not resolve are skipped with a warning rather than failing the
// whole deck; a typo in a deck file should not take the match down with it.
// logger may be nil.
func (c *Catalog) Materialize(list DeckList, logger *zap.Logger) []*game.CardInstance {
	var deck []*game.CardInstance
	for _, entry := range list.Cards {
		def, err := c.Resolve(entry.ID)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping unknown card in deck list",
					zap.String("deck", list.Name),
					zap.String("card_id", entry.ID),
				)
			}
			continue
		}
		for i := 0; i < entry.Count; i++ {
			deck = append(deck, game.NewCardInstance(def))
		}
	}
	return deck
}
