package engine

import "fmt"

// EventKind classifies a presentation hint emitted by a transition.
// The original UI sequenced these with chained timers; here they are
// plain data so a client can pace its own animations without the
// engine depending on wall-clock delays.
type EventKind string

const (
	EventLog          EventKind = "log"
	EventDiceRolled   EventKind = "dice_rolled"
	EventDamage       EventKind = "damage"
	EventCorruption   EventKind = "corruption"
	EventAftershock   EventKind = "aftershock"
	EventCoinFlip     EventKind = "coin_flip"
	EventTurnEnded    EventKind = "turn_ended"
	EventTurnSkipped  EventKind = "turn_skipped"
	EventEvolved      EventKind = "evolved"
	EventTaggedOut    EventKind = "tagged_out"
	EventReplaced     EventKind = "replaced"
	EventBattleWon    EventKind = "battle_won"
	EventBattleLost   EventKind = "battle_lost"
	EventNextBattle   EventKind = "next_battle"
	EventTrophyRecord EventKind = "trophy_record"
)

// Event is one entry of a transition's result: a battle-log line plus
// optional animation targeting data (the defender's instance id and
// the damage amount for damage events).
type Event struct {
	Kind       EventKind `json:"kind"`
	Message    string    `json:"message"`
	InstanceID string    `json:"instance_id,omitempty"`
	Amount     int       `json:"amount,omitempty"`
}

func logf(format string, args ...interface{}) Event {
	return Event{Kind: EventLog, Message: fmt.Sprintf(format, args...)}
}

func eventf(kind EventKind, format string, args ...interface{}) Event {
	return Event{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
