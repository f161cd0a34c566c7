package storage

import (
	"github.com/oninross/elementara/internal/game"
)

type Repository interface {
	CreateSession(s *game.BattleSession) error
	// FindSessionByCode returns the session with the given code, or
	// gorm.ErrRecordNotFound.
	FindSessionByCode(code string) (*game.BattleSession, error)
	UpdateSession(s *game.BattleSession) error
	DeleteSessionByCode(code string) error

	// Progress counters (endless win tally, trophies). A missing key
	// reads as zero.
	GetCounter(key string) (int, error)
	SetCounter(key string, value int) error
}
