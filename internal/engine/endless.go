package engine

import (
	"github.com/oninross/elementara/internal/game"
)

// ApplyNextBattle installs the healed player roster and a freshly
// generated opponent wave, then resets all per-battle flags. The
// player always opens the new battle, so no turn flip happens here.
func ApplyNextBattle(st *game.BattleState, player game.RosterSlot, opponent []*game.CreatureInstance, wins, difficulty int) []Event {
	st.Player = player
	st.Opponent = game.RosterSlot{Active: opponent[0], Bench: opponent[1:]}

	st.EndlessWins = wins
	st.AIDifficulty = difficulty

	st.Turn = game.OwnerPlayer
	st.HasRolledThisTurn = false
	st.DiceValue = 0
	st.LastDieRoll = 0
	st.LastDieRollOwner = game.OwnerNone
	st.IsCorrupted = false
	st.CorruptedTurnsRemaining = 0
	st.CorruptedOwner = game.OwnerNone
	st.HasPlayerEvolved = false
	st.HasOpponentEvolved = false
	st.SkipNextTurnFor = game.OwnerNone
	st.ReplacementPhaseFor = game.OwnerNone
	st.IsTaggingOut = false

	return []Event{
		eventf(EventBattleWon, "VICTORY! You won battle #%d!", wins),
		eventf(EventNextBattle, "A new wave of opponents approaches. Battle #%d begins!", wins+1),
	}
}

// ApplyRunEnd finishes an endless run after a defeat: the final score
// is recorded on the state for the game-over screen and the run
// counters reset for the next attempt.
func ApplyRunEnd(st *game.BattleState, finalScore int) []Event {
	st.FinalEndlessScore = finalScore
	st.EndlessWins = 0
	st.AIDifficulty = 1
	st.IsGameOver = true
	st.Winner = game.OwnerOpponent
	st.Phase = game.PhaseGameOver

	return []Event{
		eventf(EventBattleLost, "Your endless run ends after %d victories.", finalScore),
	}
}

// FinishStandard ends a standard (non-endless) battle with the given
// winner.
func FinishStandard(st *game.BattleState, winner game.TurnOwner) []Event {
	st.IsGameOver = true
	st.Winner = winner
	st.Phase = game.PhaseGameOver

	if winner == game.OwnerPlayer {
		return []Event{eventf(EventBattleWon, "VICTORY! You defeated all opposing creatures!")}
	}
	return []Event{eventf(EventBattleLost, "DEFEAT! All your creatures have been knocked out.")}
}
