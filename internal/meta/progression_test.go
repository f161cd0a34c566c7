package meta

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/oninross/elementara/internal/catalog"
	"github.com/oninross/elementara/internal/game"
	"github.com/oninross/elementara/internal/keys"
)

type memStore struct {
	counters map[string]int
}

func newMemStore() *memStore { return &memStore{counters: map[string]int{}} }

func (m *memStore) GetCounter(key string) (int, error) { return m.counters[key], nil }

func (m *memStore) SetCounter(key string, value int) error {
	m.counters[key] = value
	return nil
}

func fixtureCatalog() *catalog.Catalog {
	templates := []game.CreatureTemplate{}
	lines := []struct {
		prefix  string
		element game.Element
	}{
		{"fire", game.Fire},
		{"water", game.Water},
		{"earth", game.Earth},
	}
	for _, l := range lines {
		ids := []string{l.prefix + "1", l.prefix + "2", l.prefix + "3"}
		hps := []int{90, 120, 150}
		for i := range ids {
			templates = append(templates, game.CreatureTemplate{
				ID:            ids[i],
				Name:          ids[i],
				Element:       l.element,
				BaseMaxHP:     hps[i],
				Stage:         game.Stage(i + 1),
				EvolutionLine: ids,
			})
		}
	}
	return catalog.New(templates)
}

func endlessClashState() *game.BattleState {
	st := game.NewBattleState()
	st.Phase = game.PhaseInGame
	st.SelectedModeID = game.ModeEvolutionClash
	st.IsEndlessModeActive = true
	return st
}

func TestHandleWin_RevertsAndHeals(t *testing.T) {
	store := newMemStore()
	cat := fixtureCatalog()
	p := New(store, cat)

	st := endlessClashState()
	st.EndlessWins = 2

	// Evolved survivor at low HP plus a knocked out bench creature.
	evolvedTpl, _ := cat.ByID("fire2")
	evolved := cat.NewInstance(evolvedTpl, evolvedTpl.BaseMaxHP)
	evolved.IsFaceUp = true
	evolved.CurrentHP = 10

	benchTpl, _ := cat.ByID("water1")
	benchKO := cat.NewInstance(benchTpl, 50)
	benchKO.CurrentHP = 0

	st.Player = game.RosterSlot{Active: evolved, Bench: []*game.CreatureInstance{benchKO}}

	outcome, err := p.HandleWin(st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Wins != 3 || outcome.Difficulty != 4 {
		t.Fatalf("expected wins=3 difficulty=4, got %d/%d", outcome.Wins, outcome.Difficulty)
	}
	if store.counters[keys.WinTally] != 3 {
		t.Fatalf("win tally must persist, got %d", store.counters[keys.WinTally])
	}

	active := outcome.Roster.Active
	if active.ID != "fire1" || active.Stage != game.StageBasic {
		t.Fatalf("evolved creature must revert to its basic form, got %s", active.ID)
	}
	// The reverted card keeps its basic form's template HP (90), and a
	// survivor at 10 HP heals up to 75% of that.
	if active.MaxHP != 90 || active.CurrentHP != 67 {
		t.Fatalf("expected 67/90 after heal, got %d/%d", active.CurrentHP, active.MaxHP)
	}
	if active.TurnsSurvived != 0 {
		t.Fatalf("survived-turn counters reset between battles")
	}

	revived := outcome.Roster.Bench[0]
	if revived.CurrentHP != 25 || !revived.IsFaceUp {
		t.Fatalf("knocked out creature revives at half HP face up, got %d", revived.CurrentHP)
	}
}

func TestHandleWin_KnockedOutEvolvedRevivesAtTemplateHalf(t *testing.T) {
	store := newMemStore()
	cat := fixtureCatalog()
	p := New(store, cat)

	st := endlessClashState()
	evolvedTpl, _ := cat.ByID("fire2")
	evolved := cat.NewInstance(evolvedTpl, evolvedTpl.BaseMaxHP)
	evolved.CurrentHP = 0
	st.Player = game.RosterSlot{Active: evolved}

	outcome, err := p.HandleWin(st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := outcome.Roster.Active
	// Reverted to fire1 (90 max), revived at half of that.
	if got.ID != "fire1" || got.MaxHP != 90 || got.CurrentHP != 45 {
		t.Fatalf("expected fire1 at 45/90, got %s at %d/%d", got.ID, got.CurrentHP, got.MaxHP)
	}
	if !got.IsFaceUp {
		t.Fatalf("revived creatures come back face up")
	}
}

func TestHandleWin_RevertClampsCarriedHP(t *testing.T) {
	store := newMemStore()
	cat := fixtureCatalog()
	p := New(store, cat)

	st := endlessClashState()
	evolvedTpl, _ := cat.ByID("fire2")
	evolved := cat.NewInstance(evolvedTpl, evolvedTpl.BaseMaxHP)
	evolved.CurrentHP = 120 // above the basic form's 90 max
	st.Player = game.RosterSlot{Active: evolved}

	outcome, err := p.HandleWin(st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := outcome.Roster.Active
	if got.CurrentHP != 90 || got.MaxHP != 90 {
		t.Fatalf("carried HP must clamp to the reverted max, got %d/%d", got.CurrentHP, got.MaxHP)
	}
}

func TestHandleWin_HealthySurvivorKeepsHP(t *testing.T) {
	store := newMemStore()
	cat := fixtureCatalog()
	p := New(store, cat)

	st := endlessClashState()
	tpl, _ := cat.ByID("fire1")
	active := cat.NewInstance(tpl, 50)
	active.CurrentHP = 45
	st.Player = game.RosterSlot{Active: active}

	outcome, err := p.HandleWin(st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Roster.Active.CurrentHP != 45 {
		t.Fatalf("a survivor above 75%% keeps its HP, got %d", outcome.Roster.Active.CurrentHP)
	}
}

func TestHandleWin_FullPowerDoesNotRevert(t *testing.T) {
	store := newMemStore()
	cat := fixtureCatalog()
	p := New(store, cat)

	st := endlessClashState()
	st.SelectedModeID = game.ModeFullPowerDuel
	tpl, _ := cat.ByID("fire3")
	active := cat.NewInstance(tpl, tpl.BaseMaxHP)
	active.CurrentHP = 0
	st.Player = game.RosterSlot{Active: active}

	outcome, err := p.HandleWin(st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := outcome.Roster.Active
	if got.ID != "fire3" {
		t.Fatalf("full power cards never revert, got %s", got.ID)
	}
	if got.CurrentHP != 75 {
		t.Fatalf("knocked out card revives at half of 150, got %d", got.CurrentHP)
	}
}

func TestHandleLoss_ResetsTally(t *testing.T) {
	store := newMemStore()
	store.counters[keys.WinTally] = 6
	p := New(store, fixtureCatalog())

	st := endlessClashState()
	st.EndlessWins = 6

	score, err := p.HandleLoss(st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if score != 6 {
		t.Fatalf("final score is the run's win count, got %d", score)
	}
	if store.counters[keys.WinTally] != 0 {
		t.Fatalf("tally must reset on loss, got %d", store.counters[keys.WinTally])
	}
}

func TestGenerateOpponentCreatures_ScalesAndAvoidsDuplicates(t *testing.T) {
	p := New(newMemStore(), fixtureCatalog())
	mode := game.ModeByID(game.ModeEvolutionClash)

	got, err := p.GenerateOpponentCreatures(mode, 5, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 opponents, got %d", len(got))
	}
	seen := map[string]bool{}
	for _, c := range got {
		if seen[c.ID] {
			t.Fatalf("duplicate template %s in opponent roster", c.ID)
		}
		seen[c.ID] = true
		if c.Stage != game.StageBasic {
			t.Fatalf("evolution clash opponents start basic, got stage %d", c.Stage)
		}
		// floor(50 * 1.5) with five wins banked.
		if c.MaxHP != 75 || c.CurrentHP != 75 {
			t.Fatalf("expected 75 HP at 5 wins, got %d/%d", c.CurrentHP, c.MaxHP)
		}
		if !c.IsFaceUp {
			t.Fatalf("opponent creatures are revealed immediately")
		}
	}
}

func TestGenerateOpponentCreatures_FullPowerUsesFinalForms(t *testing.T) {
	p := New(newMemStore(), fixtureCatalog())
	mode := game.ModeByID(game.ModeFullPowerDuel)

	got, err := p.GenerateOpponentCreatures(mode, 0, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Stage != game.StageFinal {
		t.Fatalf("full power opponents are final forms, got %+v", got)
	}
	if got[0].MaxHP != 150 {
		t.Fatalf("full power opponents keep template HP at 0 wins, got %d", got[0].MaxHP)
	}
}

func TestGenerateOpponentCreatures_FailsOnShortPool(t *testing.T) {
	// Single line: only one basic form available, mode needs three.
	templates := []game.CreatureTemplate{
		{ID: "solo1", Name: "solo1", Element: game.Fire, BaseMaxHP: 90, Stage: game.StageBasic, EvolutionLine: []string{"solo1", "solo2", "solo3"}},
		{ID: "solo2", Name: "solo2", Element: game.Fire, BaseMaxHP: 120, Stage: game.StageMiddle, EvolutionLine: []string{"solo1", "solo2", "solo3"}},
		{ID: "solo3", Name: "solo3", Element: game.Fire, BaseMaxHP: 150, Stage: game.StageFinal, EvolutionLine: []string{"solo1", "solo2", "solo3"}},
	}
	p := New(newMemStore(), catalog.New(templates))
	mode := game.ModeByID(game.ModeEvolutionClash)

	if _, err := p.GenerateOpponentCreatures(mode, 0, rand.New(rand.NewSource(3))); !errors.Is(err, ErrNotEnoughTemplates) {
		t.Fatalf("expected ErrNotEnoughTemplates, got %v", err)
	}
}

func TestRecordTrophy_OnlyImproves(t *testing.T) {
	store := newMemStore()
	p := New(store, fixtureCatalog())

	record, err := p.RecordTrophy(game.ModeEvolutionClash, 4)
	if err != nil || record != 4 {
		t.Fatalf("expected new record 4, got %d (%v)", record, err)
	}
	record, err = p.RecordTrophy(game.ModeEvolutionClash, 2)
	if err != nil || record != 4 {
		t.Fatalf("a lower score must not overwrite the record, got %d (%v)", record, err)
	}
	if store.counters[keys.Trophy(game.ModeEvolutionClash)] != 4 {
		t.Fatalf("stored trophy mismatch: %d", store.counters[keys.Trophy(game.ModeEvolutionClash)])
	}
}
