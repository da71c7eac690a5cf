package game

import "fmt"

// CardKind distinguishes the two card categories.
type CardKind int

const (
	KindSpirit CardKind = iota
	KindSpell
)

var kindNames = map[CardKind]string{
	KindSpirit: "SPIRIT",
	KindSpell:  "SPELL",
}

func (k CardKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("KIND_%d", int(k))
}

// EffectKind enumerates the closed vocabulary of card effect keywords.
// The resolver switches over these exhaustively; there is no free-form
// keyword path.
type EffectKind int

const (
	// EffectDirectAttack lets a spirit target the enemy wizard even while
	// the enemy has spirits in play (bypasses the Guard Rule).
	EffectDirectAttack EffectKind = iota
	// EffectReduceDefense permanently lowers a target spirit's defense by
	// Amount whenever this spirit deals it combat damage.
	EffectReduceDefense
	// EffectPreventDefenseReduction makes a spirit immune to ReduceDefense.
	EffectPreventDefenseReduction
	// EffectAoeDamage makes a spell deal scaling×copies damage to every
	// card in its target group.
	EffectAoeDamage
	// EffectHealWizard makes a spell heal the caster's wizard by Amount
	// per copy.
	EffectHealWizard
	// EffectHealSpirit is declared in the card schema but has no resolver
	// behavior; spirit-heal targeting was never implemented.
	EffectHealSpirit
)

var effectNames = map[EffectKind]string{
	EffectDirectAttack:            "DIRECT_ATTACK",
	EffectReduceDefense:           "REDUCE_DEFENSE",
	EffectPreventDefenseReduction: "PREVENT_DEFENSE_REDUCTION",
	EffectAoeDamage:               "AOE_DAMAGE",
	EffectHealWizard:              "HEAL_WIZARD",
	EffectHealSpirit:              "HEAL_SPIRIT",
}

func (e EffectKind) String() string {
	if name, ok := effectNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EFFECT_%d", int(e))
}

// TargetGroup names the group an area effect applies to.
type TargetGroup int

const (
	TargetNone TargetGroup = iota
	TargetEnemySpirits
)

// Effect is one keyword on a card, with its parameter where the keyword
// takes one (Amount for ReduceDefense/HealWizard/HealSpirit, Target for
// AoeDamage).
type Effect struct {
	Kind   EffectKind
	Amount int
	Target TargetGroup
}

// EffectSet is the effect bag of a card definition, keyed by keyword.
// A definition holds at most one entry per keyword.
type EffectSet map[EffectKind]Effect

// Has reports whether the set contains the given keyword.
func (s EffectSet) Has(kind EffectKind) bool {
	_, ok := s[kind]
	return ok
}

// Amount returns the parameter of the given keyword, or 0 if absent.
func (s EffectSet) Amount(kind EffectKind) int {
	return s[kind].Amount
}

// CardDefinition is an immutable card as resolved from the catalog.
// Spirit fields (Power, Defense, MaxHealth) are meaningful only when
// Kind == KindSpirit; Scaling only when Kind == KindSpell.
type CardDefinition struct {
	ID      string
	Name    string
	Kind    CardKind
	Cost    int // aether activation cost
	Text    string

	Power     int
	Defense   int
	MaxHealth int

	Scaling int

	Effects EffectSet
}

// CardInstance is one materialized copy of a definition. Spirits carry
// mutable combat state: CurrentHealth, and Defense (which ReduceDefense
// lowers permanently for the rest of the match).
type CardInstance struct {
	Def           *CardDefinition
	CurrentHealth int
	Defense       int
}

// NewCardInstance creates an instance of def with full health and the
// printed defense.
func NewCardInstance(def *CardDefinition) *CardInstance {
	return &CardInstance{
		Def:           def,
		CurrentHealth: def.MaxHealth,
		Defense:       def.Defense,
	}
}

// IsSpirit reports whether the instance is a spirit card.
func (c *CardInstance) IsSpirit() bool { return c.Def.Kind == KindSpirit }

// IsSpell reports whether the instance is a spell card.
func (c *CardInstance) IsSpell() bool { return c.Def.Kind == KindSpell }
