// Package service coordinates battle sessions: it loads and persists
// state snapshots, serializes concurrent transitions per session, and
// drives the opponent's turns after each player action.
package service

import (
	"encoding/json"
	"errors"
	"math/rand"
	"sync"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/oninross/elementara/internal/catalog"
	"github.com/oninross/elementara/internal/engine"
	"github.com/oninross/elementara/internal/game"
	"github.com/oninross/elementara/internal/meta"
	"github.com/oninross/elementara/internal/storage"
)

// Event re-exports the engine's presentation event so API handlers
// depend on the service only.
type Event = engine.Event

var (
	ErrBattleNotFound       = errors.New("battle not found")
	ErrNotYourTurn          = errors.New("it is not the player's turn")
	ErrAlreadyRolled        = errors.New("the die was already rolled this turn")
	ErrGameOver             = errors.New("the battle is already over")
	ErrReplacementPending   = errors.New("a replacement must be chosen first")
	ErrNoReplacementPending = errors.New("no replacement is pending")
	ErrInvalidTransition    = errors.New("action not valid in current state")
)

type Service struct {
	repo storage.Repository
	cat  *catalog.Catalog
	prog *meta.Progression

	// rng feeds every random decision (die faces, coin flips, shuffles,
	// AI choices). Guarded by the session lock of the transition using
	// it; tests inject a seeded source.
	rngMu sync.Mutex
	rng   *rand.Rand

	// sessions serializes transitions per battle code. loads collapses
	// concurrent cold reads of the same session into one DB query.
	sessionsMu sync.Mutex
	sessions   map[string]*sync.Mutex
	loads      singleflight.Group
}

func New(repo storage.Repository, cat *catalog.Catalog, rng *rand.Rand) *Service {
	return &Service{
		repo:     repo,
		cat:      cat,
		prog:     meta.New(repo, cat),
		rng:      rng,
		sessions: map[string]*sync.Mutex{},
	}
}

// Progression exposes the meta-progression layer (read-only queries
// like trophies go through it directly).
func (s *Service) Progression() *meta.Progression { return s.prog }

func (s *Service) sessionLock(code string) *sync.Mutex {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()
	mu, ok := s.sessions[code]
	if !ok {
		mu = &sync.Mutex{}
		s.sessions[code] = mu
	}
	return mu
}

func (s *Service) loadState(code string) (*game.BattleSession, *game.BattleState, error) {
	sess, err := s.repo.FindSessionByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrBattleNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	var st game.BattleState
	if err := json.Unmarshal(sess.State, &st); err != nil {
		return nil, nil, err
	}
	return sess, &st, nil
}

func (s *Service) saveState(sess *game.BattleSession, st *game.BattleState) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	sess.State = b
	return s.repo.UpdateSession(sess)
}

// GetBattle returns the current state snapshot for a session.
// Concurrent reads of the same code share one DB round trip.
func (s *Service) GetBattle(code string) (*game.BattleState, error) {
	v, err, _ := s.loads.Do(code, func() (interface{}, error) {
		_, st, err := s.loadState(code)
		return st, err
	})
	if err != nil {
		return nil, err
	}
	return v.(*game.BattleState), nil
}

// transition runs fn under the session lock with a load/save cycle
// around it. fn mutates the state in place and returns presentation
// events.
func (s *Service) transition(code string, fn func(st *game.BattleState) ([]Event, error)) (*game.BattleState, []Event, error) {
	mu := s.sessionLock(code)
	mu.Lock()
	defer mu.Unlock()

	sess, st, err := s.loadState(code)
	if err != nil {
		return nil, nil, err
	}
	events, err := fn(st)
	if err != nil {
		return nil, nil, err
	}
	if err := s.saveState(sess, st); err != nil {
		return nil, nil, err
	}
	return st, events, nil
}
