package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oninross/elementara/internal/catalog"
	"github.com/oninross/elementara/internal/constants"
	"github.com/oninross/elementara/internal/engine"
	"github.com/oninross/elementara/internal/game"
	"github.com/oninross/elementara/internal/service"
)

// BattleHandler exposes battle sessions over HTTP.
type BattleHandler struct {
	svc *service.Service
	cat *catalog.Catalog
}

func NewBattleHandler(svc *service.Service, cat *catalog.Catalog) *BattleHandler {
	return &BattleHandler{svc: svc, cat: cat}
}

// respondState sends the state snapshot plus the transition's
// presentation events.
func respondState(c *gin.Context, status int, st *game.BattleState, events []service.Event) {
	if events == nil {
		events = []service.Event{}
	}
	c.JSON(status, gin.H{
		constants.JSONKeyState:  st,
		constants.JSONKeyEvents: events,
	})
}

// respondError maps service and engine errors to HTTP statuses:
// unknown sessions are 404, stale or out-of-order actions are 409,
// malformed input is 400.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, service.ErrNotYourTurn),
		errors.Is(err, service.ErrAlreadyRolled),
		errors.Is(err, service.ErrGameOver),
		errors.Is(err, service.ErrReplacementPending),
		errors.Is(err, service.ErrNoReplacementPending),
		errors.Is(err, engine.ErrWrongPhase):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: err.Error()})
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, engine.ErrUnknownMode),
		errors.Is(err, engine.ErrUnknownElement),
		errors.Is(err, engine.ErrDuplicatePick),
		errors.Is(err, engine.ErrRosterFull),
		errors.Is(err, engine.ErrRosterIncomplete),
		errors.Is(err, catalog.ErrTemplateNotFound):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
	}
}

// battleCode extracts and validates the battle code path parameter.
// The empty string means the code was rejected (a response has been
// written).
func battleCode(c *gin.Context) string {
	code := normalizeBattleCode(c.Param("battleCode"))
	if code == "" || !battleCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidBattleCode})
		return ""
	}
	return code
}
