package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oninross/elementara/internal/api"
	"github.com/oninross/elementara/internal/catalog"
	"github.com/oninross/elementara/internal/config"
	"github.com/oninross/elementara/internal/constants"
	"github.com/oninross/elementara/internal/logging"
	"github.com/oninross/elementara/internal/service"
	"github.com/oninross/elementara/internal/storage"
)

func main() {
	// Load the creature roster file (required). Path may be provided
	// via ELEMENTARA_CONFIG or defaults to ./elementara_config.json in
	// the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid elementara configuration", err, logging.Fields{"config_path": configPath, "hint": "create an elementara_config.json with a 'creature_lines' array (line,element,creatures[name,stage,hp,weakness,resistance]) and optional server.address"})
	}

	// Allow the DB path to be configured via ELEMENTARA_DB. Default to
	// a `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = constants.DefaultDBPath
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db)
	cat := catalog.New(cfg.Templates)
	svc := service.New(repo, cat, rand.New(rand.NewSource(time.Now().UnixNano())))
	handler := api.NewBattleHandler(svc, cat)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteModes, handler.ListModes)
		apiRoutes.GET(constants.RouteCreatures, handler.ListCreatures)
		apiRoutes.GET(constants.RouteProgress, handler.GetProgress)

		apiRoutes.POST(constants.RouteBattles, handler.CreateBattle)
		apiRoutes.GET(constants.RouteBattleByCode, handler.GetBattle)
		apiRoutes.DELETE(constants.RouteBattleByCode, handler.DeleteBattle)

		apiRoutes.POST(constants.RouteBattleMode, handler.SelectMode)
		apiRoutes.POST(constants.RouteBattleChallenge, handler.SelectChallenge)
		apiRoutes.POST(constants.RouteBattleProceed, handler.Proceed)
		apiRoutes.POST(constants.RouteBattleElement, handler.SelectElement)
		apiRoutes.POST(constants.RouteBattlePick, handler.PickCreature)
		apiRoutes.POST(constants.RouteBattleUnpick, handler.UnpickCreature)
		apiRoutes.POST(constants.RouteBattleConfirm, handler.ConfirmRoster)
		apiRoutes.POST(constants.RouteBattleBegin, handler.Begin)

		apiRoutes.POST(constants.RouteBattleRoll, handler.Roll)
		apiRoutes.POST(constants.RouteBattleEvolve, handler.Evolve)
		apiRoutes.POST(constants.RouteBattleTagOut, handler.TagOut)
		apiRoutes.POST(constants.RouteBattleReplacement, handler.Replacement)
		apiRoutes.POST(constants.RouteBattleRestart, handler.Restart)
		apiRoutes.POST(constants.RouteBattleMenu, handler.BackToMenu)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
