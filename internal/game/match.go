package game

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Phase represents the four phases of a side's turn, in cycle order.
type Phase int

const (
	PhaseAttunement Phase = iota
	PhaseMemorization
	PhaseInvocation
	PhaseRespite
)

var phaseNames = map[Phase]string{
	PhaseAttunement:   "ATTUNEMENT",
	PhaseMemorization: "MEMORIZATION",
	PhaseInvocation:   "INVOCATION",
	PhaseRespite:      "RESPITE",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// MatchState is the complete state of one match. A match is a synchronous,
// single-threaded state machine: the caller serializes all mutations and
// the state provides no internal locking.
type MatchState struct {
	Players map[string]*PlayerState
	Sides   [2]string // Sides[0] is the starting side and drives TurnCount

	CurrentSide  string
	CurrentPhase Phase
	TurnCount    int
	GameOver     bool
	Winner       string

	rng    *rand.Rand
	logger *zap.Logger
}

// NewMatch constructs a match between two sides, shuffles each deck and
// draws the opening hand (fewer than StartingHand if the deck is smaller).
// The starting side is sideA; it begins in Attunement but receives no
// upkeep for it (draw and aether start flowing from the first phase cycle,
// as in the tabletop rules). logger may be nil.
func NewMatch(sideA, sideB string, deckA, deckB []*CardInstance, logger *zap.Logger) *MatchState {
	m := &MatchState{
		Players: map[string]*PlayerState{
			sideA: NewPlayerState(sideA, deckA),
			sideB: NewPlayerState(sideB, deckB),
		},
		Sides:        [2]string{sideA, sideB},
		CurrentSide:  sideA,
		CurrentPhase: PhaseAttunement,
		TurnCount:    1,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:       logger,
	}

	for _, p := range m.Players {
		m.rng.Shuffle(len(p.Deck), func(i, j int) {
			p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
		})
		for i := 0; i < StartingHand && len(p.Deck) > 0; i++ {
			p.draw(m.rng)
		}
	}

	if logger != nil {
		logger.Info("match created",
			zap.String("side_a", sideA),
			zap.String("side_b", sideB),
			zap.Int("deck_a", len(deckA)),
			zap.Int("deck_b", len(deckB)),
		)
	}
	return m
}

// Opponent returns the side identifier opposing the given side.
func (m *MatchState) Opponent(side string) string {
	if side == m.Sides[0] {
		return m.Sides[1]
	}
	return m.Sides[0]
}

// Player returns the state for the given side, or nil for an unknown side.
func (m *MatchState) Player(side string) *PlayerState {
	return m.Players[side]
}

// AdvancePhase moves the match to the next phase in the cycle. Advancing
// out of Respite hands the turn to the opponent, increments the turn
// counter when play returns to the starting side, and runs the new current
// side's upkeep. No-op once the match is over.
func (m *MatchState) AdvancePhase() {
	if m.GameOver {
		return
	}

	if m.CurrentPhase == PhaseRespite {
		m.CurrentSide = m.Opponent(m.CurrentSide)
		m.CurrentPhase = PhaseAttunement
		if m.CurrentSide == m.Sides[0] {
			m.TurnCount++
		}
		m.runUpkeep()
		return
	}

	m.CurrentPhase++
}

// runUpkeep performs the start-of-turn bookkeeping for the current side:
// draw one card (reshuffling the discard pile into the deck if needed),
// gain aether, and reset the per-turn flags.
func (m *MatchState) runUpkeep() {
	p := m.Players[m.CurrentSide]

	hadDeck := len(p.Deck) > 0
	drew := p.draw(m.rng)
	if drew && !hadDeck && m.logger != nil {
		m.logger.Info("reshuffled discard into deck", zap.String("side", p.Side))
	}

	p.gainAether(AetherPerTurn)
	p.WizardAbilityUsed = false
	p.PlacedCardThisTurn = false

	if m.logger != nil {
		m.logger.Debug("upkeep complete",
			zap.String("side", p.Side),
			zap.Int("turn", m.TurnCount),
			zap.Bool("drew", drew),
			zap.Int("aether", p.Aether),
		)
	}
}

// declareWinner ends the match in favor of side.
func (m *MatchState) declareWinner(side string) {
	m.GameOver = true
	m.Winner = side
	if m.logger != nil {
		m.logger.Info("match over",
			zap.String("winner", side),
			zap.Int("turn", m.TurnCount),
		)
	}
}
