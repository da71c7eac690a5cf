package ai

import (
	"go.uber.org/zap"

	"github.com/Skeome/Arcana-Sim/internal/game"
)

// maxActionsPerTurn bounds a driver pass so a policy bug can never spin a
// turn forever.
const maxActionsPerTurn = 10

// stepResult tells the driver loop what one applied action means for the
// rest of the pass.
type stepResult int

const (
	stepContinue stepResult = iota // keep asking the policy
	stepEndTurn                    // the turn was handed over cleanly
	stepStop                       // the match ended
)

// Driver plays complete turns for one side by looping the decision policy
// through the action resolver. It consumes the exact same API a human
// interface does.
type Driver struct {
	policy *Policy
	logger *zap.Logger
}

// NewDriver creates a turn driver around the given policy. logger may be
// nil.
func NewDriver(policy *Policy, logger *zap.Logger) *Driver {
	return &Driver{policy: policy, logger: logger}
}

// PlayTurn runs the side's whole turn: it auto-advances through Attunement
// and Respite, asks the policy for moves in Memorization and Invocation,
// and stops once the turn has passed to the opponent, the match ends, or
// the action cap is hit. If the cap trips with the turn still open, the
// remaining phases are force-advanced so control always returns.
func (d *Driver) PlayTurn(m *game.MatchState, side string) {
	for actions := 0; actions < maxActionsPerTurn; {
		if m.GameOver || m.CurrentSide != side {
			return
		}

		// Nothing to decide in Attunement or Respite.
		if m.CurrentPhase == game.PhaseAttunement || m.CurrentPhase == game.PhaseRespite {
			m.AdvancePhase()
			continue
		}

		action := d.policy.NextAction(m, side)
		result := d.apply(m, side, action)
		actions++

		if result == stepEndTurn || result == stepStop {
			return
		}
	}

	// Action cap reached mid-turn: hand control back.
	for i := 0; i < 4 && !m.GameOver && m.CurrentSide == side; i++ {
		m.AdvancePhase()
	}
}

// apply executes one proposed action. Resolver failures are logged and the
// pass continues; a failed move is never retried but never aborts the turn
// either.
func (d *Driver) apply(m *game.MatchState, side string, action Action) stepResult {
	switch action.Type {
	case ActionAdvancePhase:
		m.AdvancePhase()
		// Advancing out of Invocation lands on Respite; there is nothing
		// left to do there, so end the turn outright.
		if m.CurrentPhase == game.PhaseRespite {
			m.AdvancePhase()
			return stepEndTurn
		}
		return stepContinue

	case ActionSummonSpirit:
		msg, err := m.SummonSpirit(side, action.CardID, action.Slot)
		d.resolve(side, msg, err)
		m.AdvancePhase() // placement done, proceed to Invocation
		return stepContinue

	case ActionPrepareSpell:
		msg, err := m.PrepareSpell(side, action.CardID, action.Slot)
		d.resolve(side, msg, err)
		m.AdvancePhase()
		return stepContinue

	case ActionReplaceSpell:
		msg, err := m.ReplaceSpell(side, action.CardID, action.Slot)
		d.resolve(side, msg, err)
		m.AdvancePhase()
		return stepContinue

	case ActionActivateSpell:
		msg, err := m.ActivateSpell(side, action.Slot, action.Copies)
		d.resolve(side, msg, err)

	case ActionAttack:
		msg, err := m.AttackWithSpirit(side, action.Slot, action.Target, action.TargetSlot)
		d.resolve(side, msg, err)
	}

	if m.GameOver {
		return stepStop
	}
	return stepContinue
}

func (d *Driver) resolve(side string, msg string, err error) {
	if d.logger == nil {
		return
	}
	if err != nil {
		d.logger.Debug("ai action rejected", zap.String("side", side), zap.Error(err))
		return
	}
	d.logger.Debug("ai action applied", zap.String("side", side), zap.String("outcome", msg))
}
