package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oninross/elementara/internal/constants"
	"github.com/oninross/elementara/internal/game"
	"github.com/oninross/elementara/internal/service"
)

type SelectModePayload struct {
	ModeID string `json:"mode_id"`
}

type SelectChallengePayload struct {
	Endless bool `json:"endless"`
}

type SelectElementPayload struct {
	Element string `json:"element"`
}

type PickCreaturePayload struct {
	CreatureID string `json:"creature_id"`
}

type UnpickCreaturePayload struct {
	Index int `json:"index"`
}

type TargetInstancePayload struct {
	InstanceID string `json:"instance_id"`
}

// runTransition handles the shared shape of every transition endpoint:
// validate the code, run the service call, respond with state+events.
func runTransition(c *gin.Context, fn func(code string) (*game.BattleState, []service.Event, error)) {
	code := battleCode(c)
	if code == "" {
		return
	}
	st, events, err := fn(code)
	if err != nil {
		respondError(c, err)
		return
	}
	respondState(c, http.StatusOK, st, events)
}

// SelectMode chooses the battle ruleset.
func (h *BattleHandler) SelectMode(c *gin.Context) {
	var req SelectModePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	runTransition(c, func(code string) (*game.BattleState, []service.Event, error) {
		return h.svc.SelectMode(code, req.ModeID)
	})
}

// SelectChallenge chooses standard or endless play.
func (h *BattleHandler) SelectChallenge(c *gin.Context) {
	var req SelectChallengePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	runTransition(c, func(code string) (*game.BattleState, []service.Event, error) {
		return h.svc.SelectChallenge(code, req.Endless)
	})
}

// Proceed dismisses the instructions screen.
func (h *BattleHandler) Proceed(c *gin.Context) {
	runTransition(c, h.svc.Proceed)
}

// SelectElement narrows the creature pool to one element.
func (h *BattleHandler) SelectElement(c *gin.Context) {
	var req SelectElementPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	runTransition(c, func(code string) (*game.BattleState, []service.Event, error) {
		return h.svc.SelectElement(code, game.Element(req.Element))
	})
}

// PickCreature adds a creature to the pending roster.
func (h *BattleHandler) PickCreature(c *gin.Context) {
	var req PickCreaturePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	runTransition(c, func(code string) (*game.BattleState, []service.Event, error) {
		return h.svc.PickCreature(code, req.CreatureID)
	})
}

// UnpickCreature removes a pending pick by index.
func (h *BattleHandler) UnpickCreature(c *gin.Context) {
	var req UnpickCreaturePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	runTransition(c, func(code string) (*game.BattleState, []service.Event, error) {
		return h.svc.UnpickCreature(code, req.Index)
	})
}

// ConfirmRoster locks in the roster and flips the coin.
func (h *BattleHandler) ConfirmRoster(c *gin.Context) {
	runTransition(c, h.svc.ConfirmRoster)
}

// Begin starts play after the coin toss.
func (h *BattleHandler) Begin(c *gin.Context) {
	runTransition(c, h.svc.Begin)
}

// Roll resolves the player's die roll.
func (h *BattleHandler) Roll(c *gin.Context) {
	runTransition(c, h.svc.Roll)
}

// Evolve evolves the player's active creature.
func (h *BattleHandler) Evolve(c *gin.Context) {
	runTransition(c, h.svc.Evolve)
}

// TagOut swaps the player's active creature with a bench creature.
func (h *BattleHandler) TagOut(c *gin.Context) {
	var req TargetInstancePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	runTransition(c, func(code string) (*game.BattleState, []service.Event, error) {
		return h.svc.TagOut(code, req.InstanceID)
	})
}

// Replacement resolves a forced replacement after a knockout.
func (h *BattleHandler) Replacement(c *gin.Context) {
	var req TargetInstancePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	runTransition(c, func(code string) (*game.BattleState, []service.Event, error) {
		return h.svc.Replacement(code, req.InstanceID)
	})
}

// Restart restarts the current mode from the instructions screen.
func (h *BattleHandler) Restart(c *gin.Context) {
	runTransition(c, h.svc.Restart)
}

// BackToMenu abandons the battle and returns to mode selection.
func (h *BattleHandler) BackToMenu(c *gin.Context) {
	runTransition(c, h.svc.BackToMenu)
}
