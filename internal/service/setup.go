package service

import (
	"encoding/json"

	"github.com/oninross/elementara/internal/engine"
	"github.com/oninross/elementara/internal/game"
	"github.com/oninross/elementara/internal/keys"
)

// CreateBattle persists a fresh session under the given code and moves
// it straight into mode selection. Persisted trophies are loaded onto
// the state so the menu can display them.
func (s *Service) CreateBattle(code string) (*game.BattleState, []Event, error) {
	st := game.NewBattleState()

	events, err := engine.StartModeSelection(st)
	if err != nil {
		return nil, nil, err
	}

	for _, m := range game.Modes {
		record, err := s.repo.GetCounter(keys.Trophy(m.ID))
		if err != nil {
			return nil, nil, err
		}
		if record > 0 {
			st.EndlessTrophies[m.ID] = record
		}
	}

	b, err := json.Marshal(st)
	if err != nil {
		return nil, nil, err
	}
	sess := &game.BattleSession{SessionCode: code, State: b}
	if err := s.repo.CreateSession(sess); err != nil {
		return nil, nil, err
	}
	return st, events, nil
}

// SelectMode chooses the battle ruleset.
func (s *Service) SelectMode(code, modeID string) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		return engine.SelectMode(st, modeID)
	})
}

// SelectChallenge chooses between a standard match and an endless run.
// Endless runs resume from the persisted win tally.
func (s *Service) SelectChallenge(code string, endless bool) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		tally := 0
		if endless {
			var err error
			tally, err = s.prog.LoadWinTally()
			if err != nil {
				return nil, err
			}
		}
		return engine.SelectChallenge(st, endless, tally)
	})
}

// Proceed dismisses the instructions screen.
func (s *Service) Proceed(code string) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		return engine.ProceedFromInstructions(st)
	})
}

// SelectElement narrows the creature pick pool to one element.
func (s *Service) SelectElement(code string, element game.Element) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		return engine.SelectElement(st, s.cat, element)
	})
}

// PickCreature adds a creature to the pending roster. Full Power Duel
// needs a single card, so a completed pick confirms the roster
// immediately; Evolution Clash waits for an explicit confirm.
func (s *Service) PickCreature(code, creatureID string) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		complete, events, err := engine.PickCreature(st, s.cat, creatureID)
		if err != nil {
			return nil, err
		}
		if complete && st.Mode().UsesTemplateHP() {
			confirmEvents, err := s.confirmRoster(st)
			if err != nil {
				return nil, err
			}
			events = append(events, confirmEvents...)
		}
		return events, nil
	})
}

// UnpickCreature removes the pick at the given index.
func (s *Service) UnpickCreature(code string, index int) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		return engine.UnpickCreature(st, index)
	})
}

// ConfirmRoster locks in the player's picks, generates the opponent
// roster and flips the first-turn coin.
func (s *Service) ConfirmRoster(code string) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		return s.confirmRoster(st)
	})
}

func (s *Service) confirmRoster(st *game.BattleState) ([]Event, error) {
	mode := st.Mode()
	if mode == nil {
		return nil, engine.ErrWrongPhase
	}

	s.rngMu.Lock()
	defer s.rngMu.Unlock()

	winCount := 0
	if st.IsEndlessModeActive {
		winCount = st.EndlessWins
	}
	opponent, err := s.prog.GenerateOpponentCreatures(mode, winCount, s.rng)
	if err != nil {
		return nil, err
	}
	return engine.ConfirmRoster(st, s.cat, opponent, s.rng)
}

// Begin starts play after the coin toss. If the coin gave the opponent
// the first move, its turns run immediately.
func (s *Service) Begin(code string) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		events, err := engine.Begin(st)
		if err != nil {
			return nil, err
		}

		s.rngMu.Lock()
		defer s.rngMu.Unlock()

		aiEvents, err := s.opponentTurnsLocked(st, s.rng)
		if err != nil {
			return nil, err
		}
		return append(events, aiEvents...), nil
	})
}

// Restart restarts the selected mode from the instructions screen. An
// endless restart begins a fresh run, so the persisted tally resets.
func (s *Service) Restart(code string) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		if st.IsEndlessModeActive {
			if err := s.prog.SaveWinTally(0); err != nil {
				return nil, err
			}
		}
		tally, err := s.prog.LoadWinTally()
		if err != nil {
			return nil, err
		}
		return engine.Restart(st, tally), nil
	})
}

// BackToMenu abandons the battle and returns to mode selection,
// keeping persisted progress.
func (s *Service) BackToMenu(code string) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		tally, err := s.prog.LoadWinTally()
		if err != nil {
			return nil, err
		}
		return engine.BackToMenu(st, tally), nil
	})
}

// DeleteBattle removes a finished or abandoned session.
func (s *Service) DeleteBattle(code string) error {
	mu := s.sessionLock(code)
	mu.Lock()
	defer mu.Unlock()
	return s.repo.DeleteSessionByCode(code)
}
