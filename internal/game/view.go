package game

// MatchView is a read-only snapshot of a match for rendering or transport.
// Nothing in a view aliases live match state.
type MatchView struct {
	Sides        [2]string    `json:"sides"`
	CurrentSide  string       `json:"current_side"`
	CurrentPhase string       `json:"current_phase"`
	TurnCount    int          `json:"turn_count"`
	GameOver     bool         `json:"game_over"`
	Winner       string       `json:"winner,omitempty"`
	Players      []PlayerView `json:"players"`
}

// PlayerView is one side's visible state.
type PlayerView struct {
	Side         string       `json:"side"`
	WizardHealth int          `json:"wizard_health"`
	Aether       int          `json:"aether"`
	DeckCount    int          `json:"deck_count"`
	DiscardCount int          `json:"discard_count"`
	Hand         []CardView   `json:"hand"`
	SpiritSlots  []*CardView  `json:"spirit_slots"`
	SpellSlots   [][]CardView `json:"spell_slots"`

	PlacedCardThisTurn bool `json:"placed_card_this_turn"`
	WizardAbilityUsed  bool `json:"wizard_ability_used"`
}

// CardView is one card as seen on the board or in a hand.
type CardView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Kind          string `json:"kind"`
	Cost          int    `json:"cost"`
	Text          string `json:"text,omitempty"`
	Power         int    `json:"power,omitempty"`
	Defense       int    `json:"defense,omitempty"`
	CurrentHealth int    `json:"current_health,omitempty"`
	MaxHealth     int    `json:"max_health,omitempty"`
	Scaling       int    `json:"scaling,omitempty"`
}

// View builds a full snapshot of the match.
func (m *MatchState) View() MatchView {
	v := MatchView{
		Sides:        m.Sides,
		CurrentSide:  m.CurrentSide,
		CurrentPhase: m.CurrentPhase.String(),
		TurnCount:    m.TurnCount,
		GameOver:     m.GameOver,
		Winner:       m.Winner,
	}
	for _, side := range m.Sides {
		v.Players = append(v.Players, m.Players[side].view())
	}
	return v
}

func (p *PlayerState) view() PlayerView {
	v := PlayerView{
		Side:               p.Side,
		WizardHealth:       p.WizardHealth,
		Aether:             p.Aether,
		DeckCount:          len(p.Deck),
		DiscardCount:       len(p.Discard),
		Hand:               make([]CardView, 0, len(p.Hand)),
		SpiritSlots:        make([]*CardView, SpiritSlotCount),
		SpellSlots:         make([][]CardView, SpellSlotCount),
		PlacedCardThisTurn: p.PlacedCardThisTurn,
		WizardAbilityUsed:  p.WizardAbilityUsed,
	}
	for _, card := range p.Hand {
		v.Hand = append(v.Hand, cardView(card))
	}
	for i, spirit := range p.SpiritSlots {
		if spirit != nil {
			cv := cardView(spirit)
			v.SpiritSlots[i] = &cv
		}
	}
	for i, stack := range p.SpellSlots {
		v.SpellSlots[i] = make([]CardView, 0, len(stack))
		for _, card := range stack {
			v.SpellSlots[i] = append(v.SpellSlots[i], cardView(card))
		}
	}
	return v
}

func cardView(c *CardInstance) CardView {
	return CardView{
		ID:            c.Def.ID,
		Name:          c.Def.Name,
		Kind:          c.Def.Kind.String(),
		Cost:          c.Def.Cost,
		Text:          c.Def.Text,
		Power:         c.Def.Power,
		Defense:       c.Defense,
		CurrentHealth: c.CurrentHealth,
		MaxHealth:     c.Def.MaxHealth,
		Scaling:       c.Def.Scaling,
	}
}
