// Package meta implements the progression layer that lives outside a
// single battle: the persisted endless win tally, trophy records,
// opponent wave generation and the roster carry-over between endless
// battles.
package meta

import (
	"errors"
	"math"
	"math/rand"

	"github.com/oninross/elementara/internal/catalog"
	"github.com/oninross/elementara/internal/game"
	"github.com/oninross/elementara/internal/keys"
)

var (
	// ErrNotEnoughTemplates means the configured roster cannot supply
	// the creature count the mode requires without duplicates.
	ErrNotEnoughTemplates = errors.New("not enough creature templates for opponent roster")
)

// ProgressStore persists small named counters (win tallies, trophies).
// A missing key reads as zero.
type ProgressStore interface {
	GetCounter(key string) (int, error)
	SetCounter(key string, value int) error
}

// Progression coordinates endless-mode state across battles.
type Progression struct {
	store ProgressStore
	cat   *catalog.Catalog
}

func New(store ProgressStore, cat *catalog.Catalog) *Progression {
	return &Progression{store: store, cat: cat}
}

// LoadWinTally reads the persisted endless win streak.
func (p *Progression) LoadWinTally() (int, error) {
	return p.store.GetCounter(keys.WinTally)
}

// SaveWinTally overwrites the persisted endless win streak.
func (p *Progression) SaveWinTally(tally int) error {
	return p.store.SetCounter(keys.WinTally, tally)
}

// Trophy reads the best recorded endless score for a mode.
func (p *Progression) Trophy(modeID string) (int, error) {
	return p.store.GetCounter(keys.Trophy(modeID))
}

// RecordTrophy stores the score as the mode's trophy if it beats the
// previous record. It returns the (possibly unchanged) record.
func (p *Progression) RecordTrophy(modeID string, score int) (int, error) {
	current, err := p.store.GetCounter(keys.Trophy(modeID))
	if err != nil {
		return 0, err
	}
	if score <= current {
		return current, nil
	}
	if err := p.store.SetCounter(keys.Trophy(modeID), score); err != nil {
		return 0, err
	}
	return score, nil
}

// WinOutcome describes the state changes of a won endless battle.
type WinOutcome struct {
	Roster     game.RosterSlot
	Wins       int
	Difficulty int
}

// HandleWin prepares the player's roster for the next endless battle
// and advances the persisted tally. Evolution Clash rosters revert to
// their basic forms first, then heal: a knocked-out creature revives
// at half its max HP, a survivor heals up to at least three quarters.
// The new difficulty is the incremented tally plus one.
func (p *Progression) HandleWin(st *game.BattleState) (WinOutcome, error) {
	mode := st.Mode()

	roster := st.Player
	all := roster.All()
	healed := make([]*game.CreatureInstance, 0, len(all))
	for _, c := range all {
		healed = append(healed, p.healForNextBattle(c, mode))
	}

	next := game.RosterSlot{}
	if len(healed) > 0 {
		next.Active = healed[0]
		next.Bench = healed[1:]
	}

	wins := st.EndlessWins + 1
	if err := p.SaveWinTally(wins); err != nil {
		return WinOutcome{}, err
	}
	return WinOutcome{Roster: next, Wins: wins, Difficulty: wins + 1}, nil
}

// healForNextBattle reverts an Evolution Clash creature to its basic
// form (carrying its current HP and face state over) before applying
// the between-battle heal. The reverted card uses the basic form's own
// template HP, so revive and heal baselines come from the catalog, not
// the mode's starting-HP override.
func (p *Progression) healForNextBattle(c *game.CreatureInstance, mode *game.GameMode) *game.CreatureInstance {
	out := c
	if mode != nil && mode.AllowEvolution && c.Stage != game.StageBasic && len(c.EvolutionLine) > 0 {
		if base, err := p.cat.ByID(c.EvolutionLine[0]); err == nil {
			reverted := p.cat.NewInstance(base, base.BaseMaxHP)
			reverted.CurrentHP = c.CurrentHP
			reverted.IsFaceUp = c.IsFaceUp
			out = reverted
		}
	}

	if out.CurrentHP <= 0 {
		out.CurrentHP = int(math.Floor(0.5 * float64(out.MaxHP)))
		out.IsFaceUp = true
	} else {
		healed := int(math.Floor(0.75 * float64(out.MaxHP)))
		if healed > out.CurrentHP {
			out.CurrentHP = healed
		}
	}
	if out.CurrentHP > out.MaxHP {
		out.CurrentHP = out.MaxHP
	}
	out.TurnsSurvived = 0
	return out
}

// HandleLoss resets the persisted endless streak after a defeat and
// returns the final score of the run.
func (p *Progression) HandleLoss(st *game.BattleState) (finalScore int, err error) {
	finalScore = st.EndlessWins
	if err := p.SaveWinTally(0); err != nil {
		return 0, err
	}
	return finalScore, nil
}

// GenerateOpponentCreatures draws a fresh opponent roster without
// duplicates. Evolution Clash opponents start as basic forms at the
// mode's starting HP; Full Power Duel opponents are final forms at
// template HP. Every creature's max HP scales by 10% per endless win.
func (p *Progression) GenerateOpponentCreatures(mode *game.GameMode, winCount int, rng *rand.Rand) ([]*game.CreatureInstance, error) {
	stage := game.StageBasic
	if mode.UsesTemplateHP() {
		stage = game.StageFinal
	}
	pool := p.cat.ByStage(stage)
	if len(pool) < mode.PlayerCreatureCount {
		return nil, ErrNotEnoughTemplates
	}

	picks := make([]game.CreatureTemplate, len(pool))
	copy(picks, pool)
	rng.Shuffle(len(picks), func(i, j int) {
		picks[i], picks[j] = picks[j], picks[i]
	})

	scale := 1.0 + 0.1*float64(winCount)
	instances := make([]*game.CreatureInstance, 0, mode.PlayerCreatureCount)
	for i := 0; i < mode.PlayerCreatureCount; i++ {
		t := &picks[i]
		baseHP := mode.StartingHP
		if mode.UsesTemplateHP() {
			baseHP = t.BaseMaxHP
		}
		effHP := int(math.Floor(float64(baseHP) * scale))
		inst := p.cat.NewInstance(t, effHP)
		inst.IsFaceUp = true
		instances = append(instances, inst)
	}
	return instances, nil
}
