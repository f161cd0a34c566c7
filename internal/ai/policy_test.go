package ai

import (
	"math/rand"
	"testing"

	"github.com/oninross/elementara/internal/catalog"
	"github.com/oninross/elementara/internal/game"
)

func fixtureCatalog() *catalog.Catalog {
	line := []string{"fire1", "fire2", "fire3"}
	templates := []game.CreatureTemplate{}
	hps := []int{90, 120, 150}
	for i := range line {
		templates = append(templates, game.CreatureTemplate{
			ID:            line[i],
			Name:          line[i],
			Element:       game.Fire,
			BaseMaxHP:     hps[i],
			Weakness:      game.Water,
			Stage:         game.Stage(i + 1),
			EvolutionLine: line,
		})
	}
	return catalog.New(templates)
}

func battleState(active *game.CreatureInstance, playerElement game.Element) *game.BattleState {
	st := game.NewBattleState()
	st.Phase = game.PhaseInGame
	st.SelectedModeID = game.ModeEvolutionClash
	st.Turn = game.OwnerOpponent
	st.Player = game.RosterSlot{Active: &game.CreatureInstance{
		CreatureTemplate: game.CreatureTemplate{ID: "p", Name: "p", Element: playerElement, Stage: game.StageBasic},
		InstanceID:       "p#1",
		MaxHP:            50,
		CurrentHP:        50,
	}}
	st.Opponent = game.RosterSlot{Active: active}
	return st
}

func TestDecide_EvolvesWhenReady(t *testing.T) {
	cat := fixtureCatalog()
	tpl, _ := cat.ByID("fire1")
	active := cat.NewInstance(tpl, 50)
	active.TurnsSurvived = 2
	st := battleState(active, game.Water)

	action := Decide(st, cat, rand.New(rand.NewSource(1)))
	if action.Kind != ActionEvolve {
		t.Fatalf("evolution must take priority, got %v", action.Kind)
	}
}

func TestDecide_BadMatchupSometimesTagsOut(t *testing.T) {
	cat := fixtureCatalog()
	tpl, _ := cat.ByID("fire1")
	active := cat.NewInstance(tpl, 50)
	bench := cat.NewInstance(tpl, 50)
	st := battleState(active, game.Water) // weak to the player's element
	st.Opponent.Bench = []*game.CreatureInstance{bench}

	rng := rand.New(rand.NewSource(1))
	sawTagOut, sawRoll := false, false
	for i := 0; i < 200; i++ {
		switch Decide(st, cat, rng).Kind {
		case ActionTagOut:
			sawTagOut = true
		case ActionRoll:
			sawRoll = true
		case ActionEvolve:
			t.Fatalf("creature is not ready to evolve")
		}
	}
	if !sawTagOut || !sawRoll {
		t.Fatalf("expected a mix of tag-outs and rolls, tagOut=%v roll=%v", sawTagOut, sawRoll)
	}
}

func TestDecide_NoTagOutWithoutLivingBench(t *testing.T) {
	cat := fixtureCatalog()
	tpl, _ := cat.ByID("fire1")
	active := cat.NewInstance(tpl, 50)
	benchKO := cat.NewInstance(tpl, 50)
	benchKO.CurrentHP = 0
	st := battleState(active, game.Water)
	st.Opponent.Bench = []*game.CreatureInstance{benchKO}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		if Decide(st, cat, rng).Kind == ActionTagOut {
			t.Fatalf("no living bench creature to tag in")
		}
	}
}

func TestDecide_RollsOnNeutralMatchup(t *testing.T) {
	cat := fixtureCatalog()
	tpl, _ := cat.ByID("fire1")
	active := cat.NewInstance(tpl, 50)
	bench := cat.NewInstance(tpl, 50)
	st := battleState(active, game.Earth) // not the weakness
	st.Opponent.Bench = []*game.CreatureInstance{bench}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		if got := Decide(st, cat, rng).Kind; got != ActionRoll {
			t.Fatalf("expected roll on a neutral matchup, got %v", got)
		}
	}
}
