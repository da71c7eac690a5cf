// Package ai implements the heuristic opponent: a stateless decision
// policy over match snapshots and a bounded driver that plays complete
// turns through the same action API a human caller uses.
package ai

import (
	"github.com/Skeome/Arcana-Sim/internal/game"
)

// Difficulty selects how aggressively the policy trades spirits. Only
// easy differs today: an easy opponent makes non-killing spirit attacks.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ActionType enumerates the moves a policy can propose.
type ActionType int

const (
	ActionAdvancePhase ActionType = iota
	ActionSummonSpirit
	ActionPrepareSpell
	ActionReplaceSpell
	ActionActivateSpell
	ActionAttack
)

// Action is one proposed move. Fields beyond Type are meaningful per type:
// CardID for placements, Slot for any slot-addressed move, Copies for
// activations, Target/TargetSlot for attacks.
type Action struct {
	Type       ActionType
	CardID     string
	Slot       int
	Copies     int
	Target     game.TargetType
	TargetSlot int
}

// Policy is the heuristic decision function. It holds no per-match state;
// every decision is a pure function of the match snapshot and side.
type Policy struct {
	Difficulty Difficulty
}

// NewPolicy creates a policy at the given difficulty.
func NewPolicy(difficulty Difficulty) *Policy {
	if difficulty == "" {
		difficulty = DifficultyMedium
	}
	return &Policy{Difficulty: difficulty}
}

// NextAction proposes the side's next move for the current phase. Outside
// Memorization and Invocation the only sensible move is to advance.
func (p *Policy) NextAction(m *game.MatchState, side string) Action {
	self := m.Player(side)
	opp := m.Player(m.Opponent(side))

	switch m.CurrentPhase {
	case game.PhaseMemorization:
		if self.PlacedCardThisTurn {
			return Action{Type: ActionAdvancePhase}
		}
		return p.memorizationMove(self, opp)
	case game.PhaseInvocation:
		return p.invocationMove(self, opp)
	default:
		return Action{Type: ActionAdvancePhase}
	}
}

func (p *Policy) memorizationMove(self, opp *game.PlayerState) Action {
	// Summon first: board presence beats everything else.
	if slot := firstEmptySpiritSlot(self); slot >= 0 {
		if spirit := bestSpirit(spiritsInHand(self)); spirit != nil {
			return Action{Type: ActionSummonSpirit, CardID: spirit.Def.ID, Slot: slot}
		}
	}

	spells := spellsInHand(self)
	if len(spells) > 0 {
		// Grow an existing stack when the hand can feed it.
		for slot, stack := range self.SpellSlots {
			if len(stack) == 0 || len(stack) >= game.MaxStackSize {
				continue
			}
			for _, spell := range spells {
				if spell.Def.ID == stack[0].Def.ID {
					return Action{Type: ActionPrepareSpell, CardID: spell.Def.ID, Slot: slot}
				}
			}
		}

		// Otherwise open a new stack in the first empty slot.
		if slot := firstEmptySpellSlot(self); slot >= 0 {
			spell := bestSpell(spells, opp.HasSpirits())
			return Action{Type: ActionPrepareSpell, CardID: spell.Def.ID, Slot: slot}
		}

		// All slots busy: swap out the weakest stack if the hand holds a
		// strictly better spell.
		if slot := weakestSpellSlot(self); slot >= 0 {
			if better := betterSpell(spells, self.SpellSlots[slot][0]); better != nil {
				return Action{Type: ActionReplaceSpell, CardID: better.Def.ID, Slot: slot}
			}
		}
	}

	return Action{Type: ActionAdvancePhase}
}

func (p *Policy) invocationMove(self, opp *game.PlayerState) Action {
	// Area damage when it has targets.
	if opp.HasSpirits() {
		if act, ok := affordableActivation(self, game.EffectAoeDamage); ok {
			return act
		}
	}

	// Heal below half health.
	if self.WizardHealth <= game.MaxWizardHealth/2 {
		if act, ok := affordableActivation(self, game.EffectHealWizard); ok {
			return act
		}
	}

	for slot, spirit := range self.SpiritSlots {
		if spirit == nil || self.Aether < spirit.Def.Cost {
			continue
		}

		canAttackWizard := !opp.HasSpirits() || spirit.Def.Effects.Has(game.EffectDirectAttack)
		if canAttackWizard {
			if spirit.Def.Power >= opp.WizardHealth || spirit.Def.Power >= 4 {
				return Action{Type: ActionAttack, Slot: slot, Target: game.TargetWizard}
			}
		}

		if opp.HasSpirits() {
			targetSlot, lethal := bestAttackTarget(spirit, opp)
			if targetSlot >= 0 && (lethal || p.Difficulty == DifficultyEasy) {
				return Action{Type: ActionAttack, Slot: slot, Target: game.TargetSpirit, TargetSlot: targetSlot}
			}
		}
	}

	return Action{Type: ActionAdvancePhase}
}

// affordableActivation finds the first stack carrying the wanted effect
// that the side can activate at all, then uses the maximum affordable
// copies at once.
func affordableActivation(self *game.PlayerState, effect game.EffectKind) (Action, bool) {
	for slot, stack := range self.SpellSlots {
		if len(stack) == 0 || !stack[0].Def.Effects.Has(effect) {
			continue
		}
		cost := stack[0].Def.Cost
		if cost > self.Aether {
			continue
		}
		copies := len(stack)
		if cost > 0 && self.Aether/cost < copies {
			copies = self.Aether / cost
		}
		if copies > 0 {
			return Action{Type: ActionActivateSpell, Slot: slot, Copies: copies}, true
		}
	}
	return Action{}, false
}

func spiritsInHand(p *game.PlayerState) []*game.CardInstance {
	var out []*game.CardInstance
	for _, c := range p.Hand {
		if c.IsSpirit() {
			out = append(out, c)
		}
	}
	return out
}

func spellsInHand(p *game.PlayerState) []*game.CardInstance {
	var out []*game.CardInstance
	for _, c := range p.Hand {
		if c.IsSpell() {
			out = append(out, c)
		}
	}
	return out
}

func firstEmptySpiritSlot(p *game.PlayerState) int {
	for i, s := range p.SpiritSlots {
		if s == nil {
			return i
		}
	}
	return -1
}

func firstEmptySpellSlot(p *game.PlayerState) int {
	for i, stack := range p.SpellSlots {
		if len(stack) == 0 {
			return i
		}
	}
	return -1
}

// spiritScore rates a spirit for summoning: raw stats plus a bonus for
// the keywords that win games.
func spiritScore(c *game.CardInstance) float64 {
	score := float64(c.Def.Power+c.Def.Defense) + float64(c.Def.MaxHealth)/4
	if c.Def.Effects.Has(game.EffectDirectAttack) {
		score += 2
	}
	if c.Def.Effects.Has(game.EffectReduceDefense) {
		score += 1
	}
	return score
}

func bestSpirit(spirits []*game.CardInstance) *game.CardInstance {
	var best *game.CardInstance
	bestScore := 0.0
	for _, s := range spirits {
		if score := spiritScore(s); best == nil || score > bestScore {
			best, bestScore = s, score
		}
	}
	return best
}

// spellScore rates a spell for preparation. Damage is worth double when
// the opponent actually has spirits to burn; cheap spells edge out
// expensive ones.
func spellScore(c *game.CardInstance, oppHasSpirits bool) int {
	score := 0
	if c.Def.Effects.Has(game.EffectAoeDamage) && oppHasSpirits {
		score += c.Def.Scaling * 2
	} else if c.Def.Effects.Has(game.EffectHealWizard) {
		score += c.Def.Effects.Amount(game.EffectHealWizard)
	}
	return score - c.Def.Cost
}

func bestSpell(spells []*game.CardInstance, oppHasSpirits bool) *game.CardInstance {
	best := spells[0]
	bestScore := spellScore(best, oppHasSpirits)
	for _, s := range spells[1:] {
		if score := spellScore(s, oppHasSpirits); score > bestScore {
			best, bestScore = s, score
		}
	}
	return best
}

// weakestSpellSlot picks the occupied stack worth replacing: lowest cost,
// with healing stacks rated slightly more keepable.
func weakestSpellSlot(p *game.PlayerState) int {
	weakest := -1
	weakestScore := 0
	for slot, stack := range p.SpellSlots {
		if len(stack) == 0 {
			continue
		}
		score := stack[0].Def.Cost
		if stack[0].Def.Effects.Has(game.EffectHealWizard) {
			score++
		}
		if weakest < 0 || score < weakestScore {
			weakest, weakestScore = slot, score
		}
	}
	return weakest
}

// betterSpell returns the first spell in hand strictly better than
// current: cheaper, or higher scaling.
func betterSpell(spells []*game.CardInstance, current *game.CardInstance) *game.CardInstance {
	for _, s := range spells {
		if s.Def.Cost < current.Def.Cost || s.Def.Scaling > current.Def.Scaling {
			return s
		}
	}
	return nil
}

// bestAttackTarget scores the opponent's spirits for the given attacker
// and returns the best slot plus whether the hit kills. Lethal hits score
// a flat bonus, then more damage and weaker counterattackers win ties.
func bestAttackTarget(attacker *game.CardInstance, opp *game.PlayerState) (slot int, lethal bool) {
	bestSlot := -1
	bestScore := 0
	bestLethal := false
	for i, defender := range opp.SpiritSlots {
		if defender == nil {
			continue
		}
		damage := attacker.Def.Power - defender.Defense
		if damage < 0 {
			damage = 0
		}
		kills := damage >= defender.CurrentHealth
		score := damage - defender.Def.Power
		if kills {
			score += 10
		}
		if bestSlot < 0 || score > bestScore {
			bestSlot, bestScore, bestLethal = i, score, kills
		}
	}
	return bestSlot, bestLethal
}
