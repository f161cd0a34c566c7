package engine

import (
	"math/rand"

	"github.com/oninross/elementara/internal/game"
)

// Outcome is the result of a win-condition check.
type Outcome int

const (
	// OutcomeNone: the battle continues normally.
	OutcomeNone Outcome = iota
	// OutcomePlayerMustReplace: the player's active creature is down
	// but a living bench creature exists; the player must pick a
	// forced replacement before play continues.
	OutcomePlayerMustReplace
	// OutcomeOpponentReplaced: the opponent's active creature went
	// down and a random living bench creature was promoted.
	OutcomeOpponentReplaced
	// OutcomeOpponentLost: the opponent's side is defeated.
	OutcomeOpponentLost
	// OutcomePlayerLost: the player's side is defeated.
	OutcomePlayerLost
)

// CheckWinCondition evaluates the loss rules for the selected mode.
// In Full Power Duel a side loses as soon as its sole creature drops
// to 0 HP. In Evolution Clash a knocked-out active creature with a
// living bench forces a replacement instead (manual for the player,
// uniformly random for the opponent); with no living bench the side
// loses. The caller decides what a loss means (game over vs the
// endless-mode battle transitions).
func CheckWinCondition(st *game.BattleState, rng *rand.Rand) (Outcome, []Event) {
	mode := st.Mode()
	if mode == nil {
		return OutcomeNone, nil
	}

	playerDown := st.Player.Active != nil && st.Player.Active.KnockedOut()
	opponentDown := st.Opponent.Active != nil && st.Opponent.Active.KnockedOut()

	if mode.ID == game.ModeFullPowerDuel {
		if opponentDown {
			return OutcomeOpponentLost, nil
		}
		if playerDown {
			return OutcomePlayerLost, nil
		}
		return OutcomeNone, nil
	}

	// Evolution Clash: bench replacements before losses.
	if playerDown {
		if !st.Player.HasLivingBench() {
			return OutcomePlayerLost, nil
		}
		st.ReplacementPhaseFor = game.OwnerPlayer
		return OutcomePlayerMustReplace, []Event{logf("Player must choose a replacement.")}
	}

	if opponentDown {
		if !st.Opponent.HasLivingBench() {
			return OutcomeOpponentLost, nil
		}
		viable := st.Opponent.LivingBench()
		replacement := viable[rng.Intn(len(viable))]
		events := promoteReplacement(st, game.OwnerOpponent, replacement)
		events = append(events, eventf(EventReplaced, "Opponent replaced with %s.", replacement.Name))
		return OutcomeOpponentReplaced, events
	}

	return OutcomeNone, nil
}

// promoteReplacement moves the chosen bench creature into the active
// slot. The outgoing active creature returns to the bench only if it
// is still standing; a knocked-out creature stays out of play for the
// rest of the battle.
func promoteReplacement(st *game.BattleState, side game.TurnOwner, chosen *game.CreatureInstance) []Event {
	roster := st.Roster(side)

	newBench := make([]*game.CreatureInstance, 0, len(roster.Bench))
	for _, c := range roster.Bench {
		if c.InstanceID != chosen.InstanceID {
			newBench = append(newBench, c)
		}
	}
	if roster.Active != nil && !roster.Active.KnockedOut() {
		roster.Active.IsFaceUp = true
		roster.Active.TurnsSurvived = 0
		newBench = append(newBench, roster.Active)
	}

	chosen.IsFaceUp = true
	roster.Active = chosen
	roster.Bench = newBench
	st.ReplacementPhaseFor = game.OwnerNone
	return nil
}
