package engine

import (
	"math/rand"

	"github.com/oninross/elementara/internal/constants"
	"github.com/oninross/elementara/internal/game"
	"github.com/oninross/elementara/internal/logging"
)

// RollResult reports how a die roll resolved.
type RollResult struct {
	Value        int
	CriticalMiss bool
	CriticalHit  bool
	Resolved     bool
}

// CanRoll reports whether the current turn owner may roll the die.
func CanRoll(st *game.BattleState) bool {
	return st.Phase == game.PhaseInGame &&
		!st.IsGameOver &&
		!st.HasRolledThisTurn &&
		st.ReplacementPhaseFor == game.OwnerNone &&
		!st.IsTaggingOut
}

// Roll draws a die face uniformly from 1..6 and resolves it for the
// current turn owner.
func Roll(st *game.BattleState, rng *rand.Rand) (RollResult, []Event) {
	return ResolveRoll(st, rng.Intn(6)+1)
}

// ResolveRoll resolves a specific die value for the current turn
// owner: corruption trigger check, hit resolution and damage
// application. The caller is responsible for the follow-up
// win-condition check and turn end.
func ResolveRoll(st *game.BattleState, value int) (RollResult, []Event) {
	if !CanRoll(st) {
		logging.Warn("roll ignored", logging.Fields{
			constants.LogFieldPhase:  st.Phase,
			constants.LogFieldTurn:   st.Turn,
			constants.LogFieldReason: "roll not allowed in current state",
		})
		return RollResult{}, nil
	}

	attacker := st.ActiveOf(st.Turn)
	defender := st.ActiveOf(st.Turn.Other())
	if attacker == nil || defender == nil {
		logging.Warn("roll ignored", logging.Fields{
			constants.LogFieldTurn:   st.Turn,
			constants.LogFieldReason: "active creatures not found for combat",
		})
		return RollResult{}, nil
	}

	st.HasRolledThisTurn = true
	st.IsTaggingOut = false

	events := make([]Event, 0, 8)
	events = append(events, logf("%s rolls the dice...", sideName(st.Turn)))

	// Corruption trigger: matching consecutive rolls by opposite sides
	// after both sides have evolved, while the die is clean.
	triggerCorruption := !st.IsCorrupted &&
		st.LastDieRoll == value &&
		st.LastDieRollOwner != game.OwnerNone &&
		st.LastDieRollOwner != st.Turn &&
		st.HasPlayerEvolved && st.HasOpponentEvolved

	st.DiceValue = value
	st.LastDieRoll = value
	st.LastDieRollOwner = st.Turn

	if triggerCorruption {
		st.IsCorrupted = true
		st.CorruptedTurnsRemaining = 3
		st.CorruptedOwner = st.Turn
		events = append(events, eventf(EventCorruption, "Consecutive %ds rolled! The die becomes CORRUPTED!", value))
	} else {
		events = append(events, eventf(EventDiceRolled, "Dice rolled: %d!", value))
	}

	result := RollResult{
		Value:        value,
		CriticalMiss: value == 1,
		CriticalHit:  value == 6,
		Resolved:     true,
	}

	switch {
	case result.CriticalMiss:
		events = append(events, logf("%s suffered a Critical Miss!", attacker.Name))
		_, dmgEvents := ApplyDamage(st, attacker, attacker, damageCriticalMiss, true)
		events = append(events, dmgEvents...)
	case value == 2 || value == 3:
		events = append(events, logf("%s landed a Normal Hit!", attacker.Name))
		_, dmgEvents := ApplyDamage(st, attacker, defender, damageNormalHit, false)
		events = append(events, dmgEvents...)
	case value == 4 || value == 5:
		events = append(events, logf("%s landed a Strong Hit!", attacker.Name))
		_, dmgEvents := ApplyDamage(st, attacker, defender, damageStrongHit, false)
		events = append(events, dmgEvents...)
	case result.CriticalHit:
		events = append(events, logf("%s landed a Critical Hit!", attacker.Name))
		_, dmgEvents := ApplyDamage(st, attacker, defender, damageCriticalHit, false)
		events = append(events, dmgEvents...)
		events = append(events, logf("%s deals massive damage but forfeits their next turn!", attacker.Name))
	}

	return result, events
}

func sideName(owner game.TurnOwner) string {
	if owner == game.OwnerPlayer {
		return "Player"
	}
	return "Opponent"
}
