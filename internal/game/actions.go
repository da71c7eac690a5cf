package game

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Rule violations returned by the action resolver. Every failure leaves the
// match state exactly as it was, including any provisionally deducted
// aether. None of these are fatal; the caller reports them and moves on.
var (
	ErrGameOver           = errors.New("the match is already over")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrWrongPhase         = errors.New("wrong phase for this action")
	ErrAlreadyPlaced      = errors.New("already placed a card this turn")
	ErrAbilityUsed        = errors.New("wizard ability already used this turn")
	ErrCardNotInHand      = errors.New("card not in hand")
	ErrInvalidSlot        = errors.New("invalid slot index")
	ErrSlotOccupied       = errors.New("spirit slot is occupied")
	ErrSlotEmpty          = errors.New("no card in that slot")
	ErrStackFull          = errors.New("spell slot is full")
	ErrStackMismatch      = errors.New("can only stack identical spells")
	ErrInsufficientAether = errors.New("not enough aether")
	ErrGuardRule          = errors.New("cannot attack wizard while guarded")
	ErrNoTarget           = errors.New("no spirit in target slot")
	ErrInvalidTarget      = errors.New("invalid target type")
	ErrUnrecognizedEffect = errors.New("spell has no activatable effect")
)

// TargetType selects what a spirit attack is aimed at.
type TargetType int

const (
	TargetWizard TargetType = iota
	TargetSpirit
)

// checkTurn rejects actions from the wrong side, in the wrong phase, or
// after the match has ended.
func (m *MatchState) checkTurn(side string, phase Phase) error {
	if m.GameOver {
		return ErrGameOver
	}
	if m.CurrentSide != side {
		return ErrNotYourTurn
	}
	if m.CurrentPhase != phase {
		return fmt.Errorf("%w: need %s, in %s", ErrWrongPhase, phase, m.CurrentPhase)
	}
	return nil
}

// SummonSpirit moves the named spirit from hand into an empty spirit slot.
// Memorization phase; counts as the side's one placement for the turn.
func (m *MatchState) SummonSpirit(side, cardID string, slot int) (string, error) {
	if err := m.checkTurn(side, PhaseMemorization); err != nil {
		return "", err
	}
	p := m.Players[side]
	if p.PlacedCardThisTurn {
		return "", ErrAlreadyPlaced
	}
	if slot < 0 || slot >= SpiritSlotCount {
		return "", ErrInvalidSlot
	}
	if p.SpiritSlots[slot] != nil {
		return "", ErrSlotOccupied
	}
	card := p.takeFromHand(cardID, KindSpirit)
	if card == nil {
		return "", fmt.Errorf("%w: %s", ErrCardNotInHand, cardID)
	}

	p.SpiritSlots[slot] = card
	p.PlacedCardThisTurn = true
	m.logAction(side, "summon", zap.String("card", card.Def.ID), zap.Int("slot", slot))
	return fmt.Sprintf("Summoned %s to slot %d", card.Def.Name, slot+1), nil
}

// PrepareSpell pushes the named spell from hand onto a spell slot's stack.
// The slot must be empty or hold an unfinished stack of the same spell.
// Memorization phase; counts as the side's one placement for the turn.
func (m *MatchState) PrepareSpell(side, cardID string, slot int) (string, error) {
	if err := m.checkTurn(side, PhaseMemorization); err != nil {
		return "", err
	}
	p := m.Players[side]
	if p.PlacedCardThisTurn {
		return "", ErrAlreadyPlaced
	}
	if slot < 0 || slot >= SpellSlotCount {
		return "", ErrInvalidSlot
	}
	stack := p.SpellSlots[slot]
	if len(stack) >= MaxStackSize {
		return "", ErrStackFull
	}
	if len(stack) > 0 && stack[0].Def.ID != cardID {
		return "", ErrStackMismatch
	}
	card := p.takeFromHand(cardID, KindSpell)
	if card == nil {
		return "", fmt.Errorf("%w: %s", ErrCardNotInHand, cardID)
	}

	p.SpellSlots[slot] = append(p.SpellSlots[slot], card)
	p.PlacedCardThisTurn = true
	m.logAction(side, "prepare", zap.String("card", card.Def.ID), zap.Int("slot", slot))
	return fmt.Sprintf("Prepared %s in slot %d", card.Def.Name, slot+1), nil
}

// ReplaceSpell discards whatever stack occupies the slot (possibly nothing)
// and starts a fresh one-card stack with the named spell from hand.
// Memorization phase; counts as the side's one placement for the turn.
func (m *MatchState) ReplaceSpell(side, cardID string, slot int) (string, error) {
	if err := m.checkTurn(side, PhaseMemorization); err != nil {
		return "", err
	}
	p := m.Players[side]
	if p.PlacedCardThisTurn {
		return "", ErrAlreadyPlaced
	}
	if slot < 0 || slot >= SpellSlotCount {
		return "", ErrInvalidSlot
	}
	card := p.takeFromHand(cardID, KindSpell)
	if card == nil {
		return "", fmt.Errorf("%w: %s", ErrCardNotInHand, cardID)
	}

	discarded := len(p.SpellSlots[slot])
	p.Discard = append(p.Discard, p.SpellSlots[slot]...)
	p.SpellSlots[slot] = []*CardInstance{card}
	p.PlacedCardThisTurn = true
	m.logAction(side, "replace", zap.String("card", card.Def.ID), zap.Int("slot", slot), zap.Int("discarded", discarded))
	return fmt.Sprintf("Replaced slot %d (discarded %d) with %s", slot+1, discarded, card.Def.Name), nil
}

// UseWizardAbility grants the side one aether. Once per turn, and it
// consumes the side's placement for the turn as well.
func (m *MatchState) UseWizardAbility(side string) (string, error) {
	if err := m.checkTurn(side, PhaseMemorization); err != nil {
		return "", err
	}
	p := m.Players[side]
	if p.PlacedCardThisTurn {
		return "", ErrAlreadyPlaced
	}
	if p.WizardAbilityUsed {
		return "", ErrAbilityUsed
	}

	p.gainAether(1)
	p.WizardAbilityUsed = true
	p.PlacedCardThisTurn = true
	m.logAction(side, "wizard_ability")
	return "Wizard ability used! (Gained 1 aether)", nil
}

// ActivateSpell resolves the stack at the given slot for up to copies
// copies at once. copies is clamped to the stack size; the cost is the
// spell's unit cost times the copies actually used. On success exactly that
// many copies leave the stack for the discard pile. A spell whose effect
// set the resolver does not recognize fails with a full aether refund.
// Invocation phase.
func (m *MatchState) ActivateSpell(side string, slot, copies int) (string, error) {
	if err := m.checkTurn(side, PhaseInvocation); err != nil {
		return "", err
	}
	p := m.Players[side]
	opp := m.Players[m.Opponent(side)]
	if slot < 0 || slot >= SpellSlotCount {
		return "", ErrInvalidSlot
	}
	stack := p.SpellSlots[slot]
	if len(stack) == 0 {
		return "", ErrSlotEmpty
	}
	if copies > len(stack) {
		copies = len(stack)
	}
	if copies < 1 {
		copies = 1
	}

	spell := stack[0].Def
	cost := spell.Cost * copies
	if p.Aether < cost {
		return "", fmt.Errorf("%w: have %d, need %d", ErrInsufficientAether, p.Aether, cost)
	}
	p.Aether -= cost

	var msg string
	switch {
	case spell.Effects.Has(EffectAoeDamage):
		msg = m.resolveAoeDamage(spell, copies, opp)
	case spell.Effects.Has(EffectHealWizard):
		healing := spell.Effects.Amount(EffectHealWizard) * copies
		p.WizardHealth += healing
		if p.WizardHealth > MaxWizardHealth {
			p.WizardHealth = MaxWizardHealth
		}
		msg = fmt.Sprintf("Healed %d HP to your wizard", healing)
	default:
		// Refund: the card carries no effect this resolver knows how to
		// apply. The copies stay on the stack.
		p.Aether += cost
		return "", fmt.Errorf("%w: %s", ErrUnrecognizedEffect, spell.Name)
	}

	// Move the used copies off the stack into the discard pile.
	used := p.SpellSlots[slot][:copies]
	p.Discard = append(p.Discard, used...)
	p.SpellSlots[slot] = p.SpellSlots[slot][copies:]

	m.logAction(side, "activate_spell", zap.String("card", spell.ID), zap.Int("slot", slot), zap.Int("copies", copies))
	return msg, nil
}

// resolveAoeDamage applies scaling×copies damage to every occupied enemy
// spirit slot, each hit reduced by that spirit's own current defense.
// Casting into an empty board still succeeds.
func (m *MatchState) resolveAoeDamage(spell *CardDefinition, copies int, opp *PlayerState) string {
	damage := spell.Scaling * copies
	var parts []string
	for i, spirit := range opp.SpiritSlots {
		if spirit == nil {
			continue
		}
		actual := damage - spirit.Defense
		if actual < 0 {
			actual = 0
		}
		spirit.CurrentHealth -= actual
		parts = append(parts, fmt.Sprintf("%s takes %d", spirit.Def.Name, actual))
		if spirit.CurrentHealth <= 0 {
			spirit.CurrentHealth = 0
			parts = append(parts, fmt.Sprintf("%s destroyed", spirit.Def.Name))
			opp.destroySpirit(i)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s cast, but no enemy spirits", spell.Name)
	}
	return fmt.Sprintf("Activated %s x%d: %s", spell.Name, copies, strings.Join(parts, ", "))
}

// AttackWithSpirit attacks with the spirit in the given slot, paying its
// activation cost. Wizard attacks obey the Guard Rule: while the opponent
// has any spirit in play only a DirectAttack spirit may target the wizard.
// Spirit attacks deal max(0, power−defense) and apply ReduceDefense when
// the attacker carries it and the target is not immune. Invocation phase.
func (m *MatchState) AttackWithSpirit(side string, slot int, target TargetType, targetSlot int) (string, error) {
	if err := m.checkTurn(side, PhaseInvocation); err != nil {
		return "", err
	}
	p := m.Players[side]
	opp := m.Players[m.Opponent(side)]
	if slot < 0 || slot >= SpiritSlotCount {
		return "", ErrInvalidSlot
	}
	spirit := p.SpiritSlots[slot]
	if spirit == nil {
		return "", ErrSlotEmpty
	}
	cost := spirit.Def.Cost
	if p.Aether < cost {
		return "", fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientAether, spirit.Def.Name, cost, p.Aether)
	}
	p.Aether -= cost

	switch target {
	case TargetWizard:
		if opp.HasSpirits() && !spirit.Def.Effects.Has(EffectDirectAttack) {
			p.Aether += cost
			return "", ErrGuardRule
		}
		damage := spirit.Def.Power
		if damage < 0 {
			damage = 0
		}
		opp.WizardHealth -= damage
		msg := fmt.Sprintf("%s attacked wizard for %d damage", spirit.Def.Name, damage)
		if opp.WizardHealth <= 0 {
			opp.WizardHealth = 0
			m.declareWinner(side)
			msg += ". Victory!"
		}
		m.logAction(side, "attack_wizard", zap.String("card", spirit.Def.ID), zap.Int("damage", damage))
		return msg, nil

	case TargetSpirit:
		if targetSlot < 0 || targetSlot >= SpiritSlotCount {
			p.Aether += cost
			return "", ErrInvalidSlot
		}
		defender := opp.SpiritSlots[targetSlot]
		if defender == nil {
			p.Aether += cost
			return "", ErrNoTarget
		}
		damage := spirit.Def.Power - defender.Defense
		if damage < 0 {
			damage = 0
		}
		defender.CurrentHealth -= damage
		msg := fmt.Sprintf("%s attacked %s for %d damage", spirit.Def.Name, defender.Def.Name, damage)

		if amount := spirit.Def.Effects.Amount(EffectReduceDefense); amount > 0 {
			if defender.Def.Effects.Has(EffectPreventDefenseReduction) {
				msg += " but its defense cannot be reduced"
			} else {
				defender.Defense -= amount
				if defender.Defense < 0 {
					defender.Defense = 0
				}
				msg += fmt.Sprintf(" and reduced its defense by %d", amount)
			}
		}

		if defender.CurrentHealth <= 0 {
			defender.CurrentHealth = 0
			opp.destroySpirit(targetSlot)
			msg += " and destroyed it"
		}
		m.logAction(side, "attack_spirit", zap.String("card", spirit.Def.ID), zap.Int("target_slot", targetSlot), zap.Int("damage", damage))
		return msg, nil

	default:
		p.Aether += cost
		return "", ErrInvalidTarget
	}
}

func (m *MatchState) logAction(side, action string, fields ...zap.Field) {
	if m.logger == nil {
		return
	}
	fields = append([]zap.Field{zap.String("side", side), zap.String("action", action)}, fields...)
	m.logger.Debug("action resolved", fields...)
}
