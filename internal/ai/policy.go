// Package ai decides the opponent's move each turn. The policy is
// deliberately simple: evolve whenever possible, otherwise sometimes
// retreat from a bad elemental matchup, otherwise attack.
package ai

import (
	"math/rand"

	"github.com/oninross/elementara/internal/catalog"
	"github.com/oninross/elementara/internal/engine"
	"github.com/oninross/elementara/internal/game"
)

// ActionKind is the kind of move the opponent chose.
type ActionKind int

const (
	ActionRoll ActionKind = iota
	ActionEvolve
	ActionTagOut
)

// Action is the opponent's chosen move. TargetInstanceID is set only
// for tag-outs.
type Action struct {
	Kind             ActionKind
	TargetInstanceID string
}

// tagOutChance is the probability of retreating when the active
// creature is weak to the player's active element and a living bench
// creature exists.
const tagOutChance = 0.7

// Decide picks the opponent's move for the current turn. Evolution
// takes priority; a disadvantaged matchup triggers a probabilistic
// tag-out; everything else is a dice roll.
func Decide(st *game.BattleState, cat *catalog.Catalog, rng *rand.Rand) Action {
	if engine.CanEvolve(st, cat, game.OwnerOpponent) {
		return Action{Kind: ActionEvolve}
	}

	active := st.Opponent.Active
	playerActive := st.Player.Active
	if active != nil && playerActive != nil &&
		active.Weakness != "" && active.Weakness == playerActive.Element {
		living := st.Opponent.LivingBench()
		if len(living) > 0 && rng.Float64() < tagOutChance {
			return Action{Kind: ActionTagOut, TargetInstanceID: living[0].InstanceID}
		}
	}

	return Action{Kind: ActionRoll}
}
