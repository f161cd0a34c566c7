package engine

import (
	"testing"

	"github.com/oninross/elementara/internal/game"
)

func TestResolveRoll_CriticalMissSelfDamage(t *testing.T) {
	attacker := testInstance("fire1", game.Fire, game.StageBasic, 50, game.Water, "")
	defender := testInstance("earth1", game.Earth, game.StageBasic, 50, game.Air, "")
	st := testBattle(game.ModeEvolutionClash, attacker, defender)

	result, _ := ResolveRoll(st, 1)
	if !result.Resolved || !result.CriticalMiss || result.CriticalHit {
		t.Fatalf("unexpected result flags: %+v", result)
	}
	if attacker.CurrentHP != 40 {
		t.Fatalf("expected attacker HP 40 after self-damage, got %d", attacker.CurrentHP)
	}
	if defender.CurrentHP != 50 {
		t.Fatalf("defender must be untouched, got %d", defender.CurrentHP)
	}
	if !st.HasRolledThisTurn {
		t.Fatalf("roll must consume the turn's action")
	}
}

func TestResolveRoll_CriticalHit(t *testing.T) {
	attacker := testInstance("fire1", game.Fire, game.StageBasic, 50, game.Water, "")
	defender := testInstance("earth1", game.Earth, game.StageBasic, 60, game.Air, "")
	st := testBattle(game.ModeEvolutionClash, attacker, defender)

	result, _ := ResolveRoll(st, 6)
	if !result.CriticalHit {
		t.Fatalf("expected critical hit flag for a 6")
	}
	if defender.CurrentHP != 10 {
		t.Fatalf("expected defender HP 10 after 50 damage, got %d", defender.CurrentHP)
	}
}

func TestResolveRoll_NormalAndStrongHits(t *testing.T) {
	cases := []struct {
		value  int
		expect int
	}{
		{2, 20}, {3, 20}, {4, 30}, {5, 30},
	}
	for _, tc := range cases {
		attacker := testInstance("fire1", game.Fire, game.StageBasic, 50, game.Water, "")
		defender := testInstance("earth1", game.Earth, game.StageBasic, 100, game.Air, "")
		st := testBattle(game.ModeEvolutionClash, attacker, defender)

		ResolveRoll(st, tc.value)
		if got := 100 - defender.CurrentHP; got != tc.expect {
			t.Fatalf("face %d: expected %d damage, got %d", tc.value, tc.expect, got)
		}
	}
}

func TestResolveRoll_CorruptionTrigger(t *testing.T) {
	attacker := testInstance("fire1", game.Fire, game.StageBasic, 50, game.Water, "")
	defender := testInstance("earth1", game.Earth, game.StageBasic, 50, game.Air, "")
	st := testBattle(game.ModeEvolutionClash, attacker, defender)
	st.HasPlayerEvolved = true
	st.HasOpponentEvolved = true
	st.LastDieRoll = 4
	st.LastDieRollOwner = game.OwnerOpponent

	ResolveRoll(st, 4)
	if !st.IsCorrupted {
		t.Fatalf("matching consecutive rolls by opposite sides must corrupt the die")
	}
	if st.CorruptedTurnsRemaining != 3 {
		t.Fatalf("expected 3-turn corruption countdown, got %d", st.CorruptedTurnsRemaining)
	}
	if st.CorruptedOwner != game.OwnerPlayer {
		t.Fatalf("the triggering roller owns the corruption, got %q", st.CorruptedOwner)
	}
}

func TestResolveRoll_NoCorruptionBeforeBothEvolved(t *testing.T) {
	attacker := testInstance("fire1", game.Fire, game.StageBasic, 50, game.Water, "")
	defender := testInstance("earth1", game.Earth, game.StageBasic, 50, game.Air, "")
	st := testBattle(game.ModeEvolutionClash, attacker, defender)
	st.HasPlayerEvolved = true
	st.LastDieRoll = 4
	st.LastDieRollOwner = game.OwnerOpponent

	ResolveRoll(st, 4)
	if st.IsCorrupted {
		t.Fatalf("corruption requires both sides evolved")
	}
}

func TestResolveRoll_NoCorruptionFromSameSide(t *testing.T) {
	attacker := testInstance("fire1", game.Fire, game.StageBasic, 50, game.Water, "")
	defender := testInstance("earth1", game.Earth, game.StageBasic, 50, game.Air, "")
	st := testBattle(game.ModeEvolutionClash, attacker, defender)
	st.HasPlayerEvolved = true
	st.HasOpponentEvolved = true
	st.LastDieRoll = 4
	st.LastDieRollOwner = game.OwnerPlayer

	ResolveRoll(st, 4)
	if st.IsCorrupted {
		t.Fatalf("a side matching its own previous roll must not corrupt the die")
	}
}

func TestResolveRoll_RejectedAfterRolling(t *testing.T) {
	attacker := testInstance("fire1", game.Fire, game.StageBasic, 50, game.Water, "")
	defender := testInstance("earth1", game.Earth, game.StageBasic, 50, game.Air, "")
	st := testBattle(game.ModeEvolutionClash, attacker, defender)
	st.HasRolledThisTurn = true

	result, events := ResolveRoll(st, 4)
	if result.Resolved || len(events) != 0 {
		t.Fatalf("second roll in a turn must be a no-op, got %+v", result)
	}
	if defender.CurrentHP != 50 {
		t.Fatalf("no damage expected, got HP %d", defender.CurrentHP)
	}
}
