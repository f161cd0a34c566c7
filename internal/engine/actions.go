package engine

import (
	"github.com/oninross/elementara/internal/catalog"
	"github.com/oninross/elementara/internal/constants"
	"github.com/oninross/elementara/internal/game"
	"github.com/oninross/elementara/internal/logging"
)

// CanEvolve reports whether the given side's active creature may
// evolve right now: evolution mode, a next stage exists and enough
// full turns survived in the active slot.
func CanEvolve(st *game.BattleState, cat *catalog.Catalog, side game.TurnOwner) bool {
	mode := st.Mode()
	active := st.ActiveOf(side)
	if mode == nil || !mode.AllowEvolution || active == nil {
		return false
	}
	if cat.NextEvolution(active) == nil {
		return false
	}
	return active.TurnsSurvived >= mode.EvolutionTurnsRequired
}

// Evolve replaces the side's active creature with a full-HP instance
// of its next stage. Evolving consumes the turn (the side is marked as
// already rolled) and flips the side's evolution flag, a corruption
// precondition. The new instance uses the next stage's template HP,
// not the mode's starting-HP override.
func Evolve(st *game.BattleState, cat *catalog.Catalog, side game.TurnOwner) ([]Event, bool) {
	mode := st.Mode()
	active := st.ActiveOf(side)
	if mode == nil || !mode.AllowEvolution || active == nil {
		logging.Warn("evolution ignored", logging.Fields{
			constants.LogFieldReason: "mode disallows evolution or no active creature",
		})
		return nil, false
	}

	next := cat.NextEvolution(active)
	if next == nil || active.TurnsSurvived < mode.EvolutionTurnsRequired {
		logging.Warn("evolution ignored", logging.Fields{
			constants.LogFieldCreature: active.ID,
			constants.LogFieldReason:   "evolution conditions not met",
		})
		return []Event{logf("Evolution conditions not met.")}, false
	}

	evolved := cat.NewInstance(next, next.BaseMaxHP)
	evolved.IsFaceUp = true

	events := []Event{eventf(EventEvolved, "%s evolved into %s!", active.Name, evolved.Name)}

	st.Roster(side).Active = evolved
	st.SetEvolved(side)
	st.HasRolledThisTurn = true
	return events, true
}

// TagOut swaps the side's active creature with the named bench
// creature. Both come out face up with their survived-turn counters
// reset. Only available in evolution mode, and only for a living bench
// creature.
func TagOut(st *game.BattleState, side game.TurnOwner, instanceID string) ([]Event, bool) {
	mode := st.Mode()
	if mode == nil || !mode.AllowEvolution {
		logging.Warn("tag out ignored", logging.Fields{
			constants.LogFieldReason: "mode disallows tagging out",
		})
		return nil, false
	}

	roster := st.Roster(side)
	if roster.Active == nil {
		st.IsTaggingOut = false
		return []Event{logf("No active creature to tag out.")}, false
	}

	benchIndex := -1
	for i, c := range roster.Bench {
		if c.InstanceID == instanceID {
			benchIndex = i
			break
		}
	}
	if benchIndex == -1 {
		st.IsTaggingOut = false
		return []Event{logf("Selected creature not found on bench.")}, false
	}
	if roster.Bench[benchIndex].KnockedOut() {
		st.IsTaggingOut = false
		return []Event{logf("A knocked out creature cannot tag in.")}, false
	}

	oldActive := roster.Active
	oldActive.IsFaceUp = true
	oldActive.TurnsSurvived = 0

	newActive := roster.Bench[benchIndex]
	newActive.IsFaceUp = true
	newActive.TurnsSurvived = 0

	roster.Bench[benchIndex] = oldActive
	roster.Active = newActive
	st.IsTaggingOut = false

	return []Event{eventf(EventTaggedOut, "%s tagged out %s for %s.", sideName(side), oldActive.Name, newActive.Name)}, true
}

// ReplaceActive resolves a forced replacement for the given side: the
// chosen living bench creature becomes active and the replacement
// phase clears. Only valid while that side's replacement phase is
// pending.
func ReplaceActive(st *game.BattleState, side game.TurnOwner, instanceID string) ([]Event, bool) {
	if st.ReplacementPhaseFor != side {
		logging.Warn("replacement ignored", logging.Fields{
			constants.LogFieldReason: "no replacement pending for side",
			constants.LogFieldTurn:   side,
		})
		return nil, false
	}

	roster := st.Roster(side)
	var chosen *game.CreatureInstance
	for _, c := range roster.Bench {
		if c.InstanceID == instanceID && !c.KnockedOut() {
			chosen = c
			break
		}
	}
	if chosen == nil {
		return []Event{logf("Replacement must be a living bench creature.")}, false
	}

	promoteReplacement(st, side, chosen)
	st.HasRolledThisTurn = false
	return []Event{eventf(EventReplaced, "%s replaced with %s.", sideName(side), chosen.Name)}, true
}
