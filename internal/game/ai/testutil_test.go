package ai

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/Skeome/Arcana-Sim/internal/game"
)

func golemDef() *game.CardDefinition {
	return &game.CardDefinition{
		ID: "stone_golem", Name: "Stone Golem", Kind: game.KindSpirit,
		Cost: 1, Power: 2, Defense: 3, MaxHealth: 8,
		Effects: game.EffectSet{
			game.EffectPreventDefenseReduction: {Kind: game.EffectPreventDefenseReduction},
		},
	}
}

func wyrmDef() *game.CardDefinition {
	return &game.CardDefinition{
		ID: "frost_wyrm", Name: "Frost Wyrm", Kind: game.KindSpirit,
		Cost: 2, Power: 4, Defense: 1, MaxHealth: 12,
		Effects: game.EffectSet{
			game.EffectReduceDefense: {Kind: game.EffectReduceDefense, Amount: 1},
		},
	}
}

func dragonDef() *game.CardDefinition {
	return &game.CardDefinition{
		ID: "inferno_dragon", Name: "Inferno Dragon", Kind: game.KindSpirit,
		Cost: 3, Power: 6, Defense: 0, MaxHealth: 16,
		Effects: game.EffectSet{
			game.EffectDirectAttack: {Kind: game.EffectDirectAttack},
		},
	}
}

func firestormDef() *game.CardDefinition {
	return &game.CardDefinition{
		ID: "firestorm", Name: "Firestorm", Kind: game.KindSpell,
		Cost: 3, Scaling: 3,
		Effects: game.EffectSet{
			game.EffectAoeDamage: {Kind: game.EffectAoeDamage, Target: game.TargetEnemySpirits},
		},
	}
}

func healingDef() *game.CardDefinition {
	return &game.CardDefinition{
		ID: "healing_wave", Name: "Healing Wave", Kind: game.KindSpell,
		Cost: 2, Scaling: 4,
		Effects: game.EffectSet{
			game.EffectHealWizard: {Kind: game.EffectHealWizard, Amount: 4},
		},
	}
}

// newTestMatch returns a hero-vs-npc match with empty decks and hands.
func newTestMatch(t *testing.T) *game.MatchState {
	t.Helper()
	return game.NewMatch("hero", "npc", nil, nil, zaptest.NewLogger(t))
}

func npcMemorization(m *game.MatchState) *game.PlayerState {
	m.CurrentSide = "npc"
	m.CurrentPhase = game.PhaseMemorization
	return m.Player("npc")
}

func npcInvocation(m *game.MatchState) *game.PlayerState {
	m.CurrentSide = "npc"
	m.CurrentPhase = game.PhaseInvocation
	return m.Player("npc")
}
