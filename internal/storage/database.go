package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oninross/elementara/internal/game"
)

// OpenAndMigrate opens the sqlite database and keeps the schema
// current via AutoMigrate. Creature stats are never persisted: the
// config file is the single source of truth and battle snapshots carry
// their own copies.
func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.BattleSession{}, &game.ProgressEntry{}); err != nil {
		return nil, err
	}
	return db, nil
}
