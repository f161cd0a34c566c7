package engine

import (
	"github.com/oninross/elementara/internal/constants"
	"github.com/oninross/elementara/internal/game"
	"github.com/oninross/elementara/internal/logging"
)

// EndTurn closes the current turn: it credits a survived turn to the
// acting creature, flips the turn owner, consumes a pending skip
// exactly once, and counts down the corrupted die. When the corruption
// counter reaches zero the corrupted side's active creature suffers
// the 10-point aftershock backlash; the returned flag tells the caller
// to re-run the win-condition check in that case.
func EndTurn(st *game.BattleState, criticalHitOccurred bool) ([]Event, bool) {
	if st.IsGameOver || st.Phase != game.PhaseInGame ||
		st.ReplacementPhaseFor != game.OwnerNone || st.IsTaggingOut {
		logging.Warn("end turn ignored", logging.Fields{
			constants.LogFieldPhase:  st.Phase,
			constants.LogFieldReason: "turn cannot end in current state",
		})
		return nil, false
	}

	events := make([]Event, 0, 4)
	actingSide := st.Turn

	if active := st.ActiveOf(actingSide); active != nil {
		active.TurnsSurvived++
	}

	next := actingSide.Other()
	skipFor := st.SkipNextTurnFor

	if criticalHitOccurred {
		skipFor = actingSide
		events = append(events, logf("%s will skip their next turn due to Critical Hit!", sideName(actingSide)))
	}

	// The skip is consumed exactly once; two alternating critical hits
	// must not cascade.
	if skipFor == next {
		events = append(events, eventf(EventTurnSkipped, "%s skips their turn!", sideName(next)))
		skipFor = game.OwnerNone
		next = next.Other()
	}

	st.Turn = next
	st.HasRolledThisTurn = false
	st.IsTaggingOut = false
	st.SkipNextTurnFor = skipFor

	events = append(events, eventf(EventTurnEnded, "Turn ended. It's now the %s's turn.", sideName(next)))

	aftershockFired := false
	if st.IsCorrupted {
		corruptionEnding := st.CorruptedTurnsRemaining == 1
		if st.CorruptedTurnsRemaining > 0 {
			st.CorruptedTurnsRemaining--
		}
		if corruptionEnding {
			corruptedSide := st.CorruptedOwner
			st.IsCorrupted = false
			st.CorruptedOwner = game.OwnerNone
			events = append(events, logf("The corrupted die's power fades away..."))

			if corruptedSide != game.OwnerNone {
				victim := st.ActiveOf(corruptedSide)
				if victim != nil && !victim.KnockedOut() {
					victim.CurrentHP -= damageAftershock
					if victim.CurrentHP < 0 {
						victim.CurrentHP = 0
					}
					events = append(events, Event{
						Kind:       EventAftershock,
						Message:    victim.Name + " suffers Aftershock Penalty! +10 damage from corruption backlash!",
						InstanceID: victim.InstanceID,
						Amount:     damageAftershock,
					})
					aftershockFired = true
				}
			}
		}
	}

	return events, aftershockFired
}
