package storage

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/oninross/elementara/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateSession(s *game.BattleSession) error {
	return r.db.Create(s).Error
}

func (r *sqliteRepository) FindSessionByCode(code string) (*game.BattleSession, error) {
	var s game.BattleSession
	if err := r.db.Where("session_code = ?", code).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) UpdateSession(s *game.BattleSession) error {
	return r.db.Save(s).Error
}

func (r *sqliteRepository) DeleteSessionByCode(code string) error {
	return r.db.Where("session_code = ?", code).Delete(&game.BattleSession{}).Error
}

func (r *sqliteRepository) GetCounter(key string) (int, error) {
	var e game.ProgressEntry
	err := r.db.Where("key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return e.Value, nil
}

func (r *sqliteRepository) SetCounter(key string, value int) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": value}),
	}).Create(&game.ProgressEntry{Key: key, Value: value}).Error
}
