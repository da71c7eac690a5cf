// Package catalog loads the card library and deck lists from YAML files
// and materializes deck lists into card instances. The game core never
// touches files; it consumes what this package resolves.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Skeome/Arcana-Sim/internal/game"
)

// ErrNotFound is returned when a card id does not resolve.
var ErrNotFound = errors.New("card not found in catalog")

// libraryFile is the top-level YAML structure of a card library. Effects
// are a keyword map whose value type depends on the keyword: flags take a
// bool, amounts an int, aoe_damage its target group name.
type libraryFile struct {
	Spirits map[string]spiritEntry `yaml:"spirits"`
	Spells  map[string]spellEntry  `yaml:"spells"`
}

type spiritEntry struct {
	Name    string         `yaml:"name"`
	Cost    int            `yaml:"cost"`
	Power   int            `yaml:"power"`
	Defense int            `yaml:"defense"`
	Health  int            `yaml:"health"`
	Text    string         `yaml:"text"`
	Effects map[string]any `yaml:"effects"`
}

type spellEntry struct {
	Name    string         `yaml:"name"`
	Cost    int            `yaml:"cost"`
	Scaling int            `yaml:"scaling"`
	Text    string         `yaml:"text"`
	Effects map[string]any `yaml:"effects"`
}

// Catalog resolves card ids to immutable definitions.
type Catalog struct {
	defs map[string]*game.CardDefinition
}

// Load reads and parses a card library file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card library: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from card library YAML. An effect keyword outside
// the known vocabulary is a parse error, not something to skip.
func Parse(data []byte) (*Catalog, error) {
	var lib libraryFile
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("parse card library YAML: %w", err)
	}

	c := &Catalog{defs: make(map[string]*game.CardDefinition)}

	for id, entry := range lib.Spirits {
		effects, err := parseEffects(entry.Effects)
		if err != nil {
			return nil, fmt.Errorf("spirit %q: %w", id, err)
		}
		c.defs[id] = &game.CardDefinition{
			ID:        id,
			Name:      entry.Name,
			Kind:      game.KindSpirit,
			Cost:      entry.Cost,
			Text:      entry.Text,
			Power:     entry.Power,
			Defense:   entry.Defense,
			MaxHealth: entry.Health,
			Effects:   effects,
		}
	}

	for id, entry := range lib.Spells {
		if _, dup := c.defs[id]; dup {
			return nil, fmt.Errorf("card id %q defined as both spirit and spell", id)
		}
		effects, err := parseEffects(entry.Effects)
		if err != nil {
			return nil, fmt.Errorf("spell %q: %w", id, err)
		}
		c.defs[id] = &game.CardDefinition{
			ID:      id,
			Name:    entry.Name,
			Kind:    game.KindSpell,
			Cost:    entry.Cost,
			Text:    entry.Text,
			Scaling: entry.Scaling,
			Effects: effects,
		}
	}

	return c, nil
}

// parseEffects maps the YAML keyword bag onto the closed effect vocabulary.
func parseEffects(raw map[string]any) (game.EffectSet, error) {
	if len(raw) == 0 {
		return game.EffectSet{}, nil
	}
	set := make(game.EffectSet, len(raw))
	for key, value := range raw {
		switch key {
		case "direct_attack":
			if asBool(value) {
				set[game.EffectDirectAttack] = game.Effect{Kind: game.EffectDirectAttack}
			}
		case "prevent_defense_reduction":
			if asBool(value) {
				set[game.EffectPreventDefenseReduction] = game.Effect{Kind: game.EffectPreventDefenseReduction}
			}
		case "reduce_defense":
			n, err := asInt(value)
			if err != nil {
				return nil, fmt.Errorf("reduce_defense: %w", err)
			}
			set[game.EffectReduceDefense] = game.Effect{Kind: game.EffectReduceDefense, Amount: n}
		case "heal_wizard":
			n, err := asInt(value)
			if err != nil {
				return nil, fmt.Errorf("heal_wizard: %w", err)
			}
			set[game.EffectHealWizard] = game.Effect{Kind: game.EffectHealWizard, Amount: n}
		case "heal_spirit":
			n, err := asInt(value)
			if err != nil {
				return nil, fmt.Errorf("heal_spirit: %w", err)
			}
			set[game.EffectHealSpirit] = game.Effect{Kind: game.EffectHealSpirit, Amount: n}
		case "aoe_damage":
			target, err := asTarget(value)
			if err != nil {
				return nil, fmt.Errorf("aoe_damage: %w", err)
			}
			set[game.EffectAoeDamage] = game.Effect{Kind: game.EffectAoeDamage, Target: target}
		default:
			return nil, fmt.Errorf("unknown effect keyword %q", key)
		}
	}
	return set, nil
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v any) (int, error) {
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("expected integer amount, got %T", v)
	}
	return n, nil
}

func asTarget(v any) (game.TargetGroup, error) {
	s, ok := v.(string)
	if !ok {
		return game.TargetNone, fmt.Errorf("expected target group name, got %T", v)
	}
	switch s {
	case "enemy_spirits":
		return game.TargetEnemySpirits, nil
	default:
		return game.TargetNone, fmt.Errorf("unknown target group %q", s)
	}
}

// Resolve returns the definition for the given card id.
func (c *Catalog) Resolve(id string) (*game.CardDefinition, error) {
	def, ok := c.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return def, nil
}

// ResolveKind returns the kind of the given card id.
func (c *Catalog) ResolveKind(id string) (game.CardKind, error) {
	def, err := c.Resolve(id)
	if err != nil {
		return 0, err
	}
	return def.Kind, nil
}

// IDs returns every card id in the catalog, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.defs))
	for id := range c.defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of definitions in the catalog.
func (c *Catalog) Len() int { return len(c.defs) }
