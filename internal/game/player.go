package game

import "math/rand"

// Board geometry and resource bounds. These are rule constants, not
// configuration.
const (
	SpiritSlotCount = 3
	SpellSlotCount  = 4
	MaxStackSize    = 3
	MaxAether       = 16
	MaxWizardHealth = 20
	StartingHand    = 7
	AetherPerTurn   = 2
)

// PlayerState holds everything owned by one side of a match. Cards move
// between Hand, Deck, Discard and the board slots; a CardInstance lives in
// exactly one of those containers at a time.
type PlayerState struct {
	Side         string
	WizardHealth int
	Aether       int

	Hand    []*CardInstance
	Deck    []*CardInstance // drawn from the tail
	Discard []*CardInstance

	SpiritSlots [SpiritSlotCount]*CardInstance
	SpellSlots  [SpellSlotCount][]*CardInstance // each slot is a homogeneous stack

	PlacedCardThisTurn bool
	WizardAbilityUsed  bool
}

// NewPlayerState creates a side with full wizard health, no aether, and the
// given deck (not yet shuffled or drawn from).
func NewPlayerState(side string, deck []*CardInstance) *PlayerState {
	return &PlayerState{
		Side:         side,
		WizardHealth: MaxWizardHealth,
		Deck:         deck,
	}
}

// takeFromHand removes and returns the first card in hand matching the
// definition id and kind, or nil if the hand holds none.
func (p *PlayerState) takeFromHand(cardID string, kind CardKind) *CardInstance {
	for i, card := range p.Hand {
		if card.Def.Kind == kind && card.Def.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return card
		}
	}
	return nil
}

// draw moves one card from the deck tail into the hand. If the deck is
// empty the discard pile is reshuffled into the deck first; if both are
// empty the draw is skipped silently. Reports whether a card was drawn.
func (p *PlayerState) draw(rng *rand.Rand) bool {
	if len(p.Deck) == 0 {
		if len(p.Discard) == 0 {
			return false
		}
		p.Deck = p.Discard
		p.Discard = nil
		rng.Shuffle(len(p.Deck), func(i, j int) {
			p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
		})
	}
	last := len(p.Deck) - 1
	p.Hand = append(p.Hand, p.Deck[last])
	p.Deck = p.Deck[:last]
	return true
}

// gainAether adds n aether, capped at MaxAether.
func (p *PlayerState) gainAether(n int) {
	p.Aether += n
	if p.Aether > MaxAether {
		p.Aether = MaxAether
	}
}

// HasSpirits reports whether any spirit slot is occupied. An occupied slot
// is what engages the Guard Rule against the opposing side.
func (p *PlayerState) HasSpirits() bool {
	for _, s := range p.SpiritSlots {
		if s != nil {
			return true
		}
	}
	return false
}

// destroySpirit moves the spirit in the given slot to the discard pile and
// clears the slot.
func (p *PlayerState) destroySpirit(slot int) {
	spirit := p.SpiritSlots[slot]
	if spirit == nil {
		return
	}
	p.Discard = append(p.Discard, spirit)
	p.SpiritSlots[slot] = nil
}
