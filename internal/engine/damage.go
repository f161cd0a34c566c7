package engine

import "github.com/oninross/elementara/internal/game"

// Base damage per die face. 1 is a critical miss (self damage), 6 a
// critical hit (skips the attacker's next turn).
const (
	damageCriticalMiss = 10
	damageNormalHit    = 20
	damageStrongHit    = 30
	damageCriticalHit  = 50
	damageAftershock   = 10
)

// ApplyDamage computes the final damage from attacker to defender and
// applies it to the defender's current HP. The computation order is
// fixed and not commutative:
//
//  1. base damage from the die face
//  2. attacker evolution buff (+10 at stage 2, +20 at stage 3)
//  3. AI difficulty bonus, only while the opponent is attacking
//  4. weakness (+10) else resistance (-10), skipped on a critical miss
//  5. defender evolution damage reduction (-10 / -20)
//  6. clamp at zero
//
// It returns the final damage together with the presentation events
// (the damage event targets the defender's instance id).
func ApplyDamage(st *game.BattleState, attacker, defender *game.CreatureInstance, baseDamage int, isCriticalMiss bool) (int, []Event) {
	events := make([]Event, 0, 4)
	finalDamage := baseDamage

	switch attacker.Stage {
	case game.StageMiddle:
		finalDamage += 10
	case game.StageFinal:
		finalDamage += 20
	}

	// The difficulty buff is asymmetric on purpose: the AI ramps up
	// with each endless win, the player does not.
	if st.Turn == game.OwnerOpponent {
		finalDamage += st.AIDifficulty - 1
		if st.AIDifficulty > 1 {
			events = append(events, logf("Opponent's AI difficulty adds %d extra damage!", st.AIDifficulty-1))
		}
	}

	if !isCriticalMiss {
		if defender.Weakness == attacker.Element {
			finalDamage += 10
			events = append(events, logf("%s is weak to %s! Extra 10 damage.", defender.Name, attacker.Element))
		} else if defender.Resistance == attacker.Element {
			finalDamage -= 10
			events = append(events, logf("%s resists %s! Reduced 10 damage.", defender.Name, attacker.Element))
		}
	}

	switch defender.Stage {
	case game.StageMiddle:
		finalDamage -= 10
	case game.StageFinal:
		finalDamage -= 20
	}

	if finalDamage < 0 {
		finalDamage = 0
	}

	defender.CurrentHP -= finalDamage
	if defender.CurrentHP < 0 {
		defender.CurrentHP = 0
	}

	events = append(events, Event{
		Kind:       EventDamage,
		Message:    sprintfDamage(defender, finalDamage),
		InstanceID: defender.InstanceID,
		Amount:     finalDamage,
	})
	return finalDamage, events
}

func sprintfDamage(defender *game.CreatureInstance, dmg int) string {
	return logf("%s took %d damage. HP: %d/%d", defender.Name, dmg, defender.CurrentHP, defender.MaxHP).Message
}
