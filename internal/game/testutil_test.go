package game

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

// Test card pool mirroring the starter set.

func golemDef() *CardDefinition {
	return &CardDefinition{
		ID: "stone_golem", Name: "Stone Golem", Kind: KindSpirit,
		Cost: 1, Power: 2, Defense: 3, MaxHealth: 8,
		Effects: EffectSet{
			EffectPreventDefenseReduction: {Kind: EffectPreventDefenseReduction},
		},
	}
}

func wyrmDef() *CardDefinition {
	return &CardDefinition{
		ID: "frost_wyrm", Name: "Frost Wyrm", Kind: KindSpirit,
		Cost: 2, Power: 4, Defense: 1, MaxHealth: 12,
		Effects: EffectSet{
			EffectReduceDefense: {Kind: EffectReduceDefense, Amount: 1},
		},
	}
}

func dragonDef() *CardDefinition {
	return &CardDefinition{
		ID: "inferno_dragon", Name: "Inferno Dragon", Kind: KindSpirit,
		Cost: 3, Power: 6, Defense: 0, MaxHealth: 16,
		Effects: EffectSet{
			EffectDirectAttack: {Kind: EffectDirectAttack},
		},
	}
}

func firestormDef() *CardDefinition {
	return &CardDefinition{
		ID: "firestorm", Name: "Firestorm", Kind: KindSpell,
		Cost: 3, Scaling: 3,
		Effects: EffectSet{
			EffectAoeDamage: {Kind: EffectAoeDamage, Target: TargetEnemySpirits},
		},
	}
}

func healingDef() *CardDefinition {
	return &CardDefinition{
		ID: "healing_wave", Name: "Healing Wave", Kind: KindSpell,
		Cost: 2, Scaling: 4,
		Effects: EffectSet{
			EffectHealWizard: {Kind: EffectHealWizard, Amount: 4},
			EffectHealSpirit: {Kind: EffectHealSpirit, Amount: 4},
		},
	}
}

// blankSpellDef is a spell with no resolver-known effect keyword.
func blankSpellDef() *CardDefinition {
	return &CardDefinition{
		ID: "curious_rune", Name: "Curious Rune", Kind: KindSpell,
		Cost: 1, Scaling: 2,
		Effects: EffectSet{},
	}
}

// newTestMatch creates a match between "alice" and "bob" with empty decks
// and hands; tests place cards directly where they need them.
func newTestMatch(t *testing.T) *MatchState {
	t.Helper()
	return NewMatch("alice", "bob", nil, nil, zaptest.NewLogger(t))
}

// inMemorization puts the match in side's Memorization phase.
func inMemorization(m *MatchState, side string) {
	m.CurrentSide = side
	m.CurrentPhase = PhaseMemorization
}

// inInvocation puts the match in side's Invocation phase.
func inInvocation(m *MatchState, side string) {
	m.CurrentSide = side
	m.CurrentPhase = PhaseInvocation
}
