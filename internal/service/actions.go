package service

import (
	"math/rand"

	"github.com/oninross/elementara/internal/ai"
	"github.com/oninross/elementara/internal/constants"
	"github.com/oninross/elementara/internal/engine"
	"github.com/oninross/elementara/internal/game"
	"github.com/oninross/elementara/internal/logging"
)

// maxOpponentTurns bounds the AI loop for one player action. The
// opponent can chain turns only while the player is skipping, so two
// is the practical maximum; the bound guards against state bugs.
const maxOpponentTurns = 4

// Roll resolves the player's die roll, the follow-up win check and
// turn end, and then plays out the opponent's turns.
func (s *Service) Roll(code string) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		if err := s.checkPlayerAction(st); err != nil {
			return nil, err
		}
		if st.HasRolledThisTurn {
			return nil, ErrAlreadyRolled
		}

		s.rngMu.Lock()
		defer s.rngMu.Unlock()

		result, events := engine.Roll(st, s.rng)
		if !result.Resolved {
			return nil, ErrInvalidTransition
		}
		postEvents, err := s.afterDamage(st, result.CriticalHit, s.rng)
		if err != nil {
			return nil, err
		}
		events = append(events, postEvents...)

		aiEvents, err := s.opponentTurnsLocked(st, s.rng)
		if err != nil {
			return nil, err
		}
		return append(events, aiEvents...), nil
	})
}

// Evolve evolves the player's active creature. Evolving consumes the
// turn.
func (s *Service) Evolve(code string) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		if err := s.checkPlayerAction(st); err != nil {
			return nil, err
		}
		if st.HasRolledThisTurn {
			return nil, ErrAlreadyRolled
		}
		events, ok := engine.Evolve(st, s.cat, game.OwnerPlayer)
		if !ok {
			return nil, ErrInvalidTransition
		}

		s.rngMu.Lock()
		defer s.rngMu.Unlock()

		postEvents, err := s.afterDamage(st, false, s.rng)
		if err != nil {
			return nil, err
		}
		events = append(events, postEvents...)

		aiEvents, err := s.opponentTurnsLocked(st, s.rng)
		if err != nil {
			return nil, err
		}
		return append(events, aiEvents...), nil
	})
}

// TagOut swaps the player's active creature with a bench creature and
// ends the turn.
func (s *Service) TagOut(code, instanceID string) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		if err := s.checkPlayerAction(st); err != nil {
			return nil, err
		}
		if st.HasRolledThisTurn {
			return nil, ErrAlreadyRolled
		}
		events, ok := engine.TagOut(st, game.OwnerPlayer, instanceID)
		if !ok {
			return nil, ErrInvalidTransition
		}
		st.HasRolledThisTurn = true

		s.rngMu.Lock()
		defer s.rngMu.Unlock()

		postEvents, err := s.afterDamage(st, false, s.rng)
		if err != nil {
			return nil, err
		}
		events = append(events, postEvents...)

		aiEvents, err := s.opponentTurnsLocked(st, s.rng)
		if err != nil {
			return nil, err
		}
		return append(events, aiEvents...), nil
	})
}

// Replacement resolves the player's forced replacement after a
// knockout. When the knockout interrupted an unfinished turn the turn
// end runs now; a knockout from the corruption aftershock arrives with
// the turn already advanced.
func (s *Service) Replacement(code, instanceID string) (*game.BattleState, []Event, error) {
	return s.transition(code, func(st *game.BattleState) ([]Event, error) {
		if st.IsGameOver {
			return nil, ErrGameOver
		}
		if st.ReplacementPhaseFor != game.OwnerPlayer {
			return nil, ErrNoReplacementPending
		}

		pendingEndTurn := st.HasRolledThisTurn
		events, ok := engine.ReplaceActive(st, game.OwnerPlayer, instanceID)
		if !ok {
			return nil, ErrInvalidTransition
		}

		s.rngMu.Lock()
		defer s.rngMu.Unlock()

		if pendingEndTurn {
			postEvents, err := s.afterDamage(st, false, s.rng)
			if err != nil {
				return nil, err
			}
			events = append(events, postEvents...)
		}

		aiEvents, err := s.opponentTurnsLocked(st, s.rng)
		if err != nil {
			return nil, err
		}
		return append(events, aiEvents...), nil
	})
}

func (s *Service) checkPlayerAction(st *game.BattleState) error {
	if st.IsGameOver {
		return ErrGameOver
	}
	if st.Phase != game.PhaseInGame {
		return ErrInvalidTransition
	}
	if st.ReplacementPhaseFor != game.OwnerNone {
		return ErrReplacementPending
	}
	if st.Turn != game.OwnerPlayer {
		return ErrNotYourTurn
	}
	return nil
}

// afterDamage runs the post-action sequence for the current turn
// owner: win-condition check, battle/run transitions, turn end, and a
// re-check when the corruption aftershock fires during the turn end.
// A battle transition (endless next battle or game over) swallows the
// pending turn end; the next endless battle always opens on the
// player's turn.
func (s *Service) afterDamage(st *game.BattleState, criticalHit bool, rng *rand.Rand) ([]Event, error) {
	events := []Event{}

	outcome, outcomeEvents := engine.CheckWinCondition(st, rng)
	events = append(events, outcomeEvents...)

	switch outcome {
	case engine.OutcomeOpponentLost:
		finishEvents, err := s.finishBattleWon(st, rng)
		return append(events, finishEvents...), err
	case engine.OutcomePlayerLost:
		finishEvents, err := s.finishBattleLost(st)
		return append(events, finishEvents...), err
	case engine.OutcomePlayerMustReplace:
		// The turn end waits for the replacement. A critical hit's skip
		// is recorded now so it is not lost across the pause.
		if criticalHit {
			st.SkipNextTurnFor = st.Turn
		}
		return events, nil
	}

	endEvents, aftershockFired := engine.EndTurn(st, criticalHit)
	events = append(events, endEvents...)

	if aftershockFired {
		outcome, outcomeEvents = engine.CheckWinCondition(st, rng)
		events = append(events, outcomeEvents...)
		switch outcome {
		case engine.OutcomeOpponentLost:
			finishEvents, err := s.finishBattleWon(st, rng)
			return append(events, finishEvents...), err
		case engine.OutcomePlayerLost:
			finishEvents, err := s.finishBattleLost(st)
			return append(events, finishEvents...), err
		}
	}
	return events, nil
}

// finishBattleWon resolves a defeated opponent: the next wave in an
// endless run, game over otherwise.
func (s *Service) finishBattleWon(st *game.BattleState, rng *rand.Rand) ([]Event, error) {
	if !st.IsEndlessModeActive {
		return engine.FinishStandard(st, game.OwnerPlayer), nil
	}

	outcome, err := s.prog.HandleWin(st)
	if err != nil {
		return nil, err
	}
	opponent, err := s.prog.GenerateOpponentCreatures(st.Mode(), outcome.Wins, rng)
	if err != nil {
		return nil, err
	}
	logging.Info("endless battle won", logging.Fields{
		constants.LogFieldMode: st.SelectedModeID,
		constants.LogFieldWins: outcome.Wins,
	})
	return engine.ApplyNextBattle(st, outcome.Roster, opponent, outcome.Wins, outcome.Difficulty), nil
}

// finishBattleLost resolves a player defeat: ends the endless run and
// records the trophy, or simply ends a standard match.
func (s *Service) finishBattleLost(st *game.BattleState) ([]Event, error) {
	if !st.IsEndlessModeActive {
		return engine.FinishStandard(st, game.OwnerOpponent), nil
	}

	finalScore, err := s.prog.HandleLoss(st)
	if err != nil {
		return nil, err
	}
	record, err := s.prog.RecordTrophy(st.SelectedModeID, finalScore)
	if err != nil {
		return nil, err
	}
	if st.EndlessTrophies == nil {
		st.EndlessTrophies = map[string]int{}
	}
	st.EndlessTrophies[st.SelectedModeID] = record

	events := engine.ApplyRunEnd(st, finalScore)
	if record == finalScore && finalScore > 0 {
		events = append(events, Event{
			Kind:    engine.EventTrophyRecord,
			Message: "New personal best! Trophy updated.",
			Amount:  record,
		})
	}
	return events, nil
}

// opponentTurnsLocked plays the opponent's turns until play returns to
// the player or the battle pauses/ends. Caller holds rngMu.
func (s *Service) opponentTurnsLocked(st *game.BattleState, rng *rand.Rand) ([]Event, error) {
	events := []Event{}

	for i := 0; i < maxOpponentTurns; i++ {
		if st.IsGameOver || st.Phase != game.PhaseInGame ||
			st.Turn != game.OwnerOpponent || st.ReplacementPhaseFor != game.OwnerNone {
			return events, nil
		}

		action := ai.Decide(st, s.cat, rng)
		switch action.Kind {
		case ai.ActionEvolve:
			evolveEvents, ok := engine.Evolve(st, s.cat, game.OwnerOpponent)
			events = append(events, evolveEvents...)
			if !ok {
				return events, nil
			}
			postEvents, err := s.afterDamage(st, false, rng)
			if err != nil {
				return nil, err
			}
			events = append(events, postEvents...)

		case ai.ActionTagOut:
			tagEvents, ok := engine.TagOut(st, game.OwnerOpponent, action.TargetInstanceID)
			events = append(events, tagEvents...)
			if !ok {
				return events, nil
			}
			st.HasRolledThisTurn = true
			postEvents, err := s.afterDamage(st, false, rng)
			if err != nil {
				return nil, err
			}
			events = append(events, postEvents...)

		default:
			result, rollEvents := engine.Roll(st, rng)
			events = append(events, rollEvents...)
			if !result.Resolved {
				return events, nil
			}
			postEvents, err := s.afterDamage(st, result.CriticalHit, rng)
			if err != nil {
				return nil, err
			}
			events = append(events, postEvents...)
		}
	}

	logging.Warn("opponent turn loop bound reached", logging.Fields{
		constants.LogFieldTurn:  st.Turn,
		constants.LogFieldPhase: st.Phase,
	})
	return events, nil
}
