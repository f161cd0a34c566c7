package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oninross/elementara/internal/constants"
	"github.com/oninross/elementara/internal/game"
	"github.com/oninross/elementara/internal/keys"
	"github.com/oninross/elementara/internal/logging"
)

// CreateBattle starts a new battle session and returns its code along
// with the initial state.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	code := generateBattleCode()

	st, events, err := h.svc.CreateBattle(code)
	if err != nil {
		logging.Error("failed to create battle", err, logging.Fields{constants.LogFieldBattleCode: code})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		constants.JSONKeyCode:   code,
		constants.JSONKeyState:  st,
		constants.JSONKeyEvents: events,
	})
}

// GetBattle returns the current state snapshot.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	code := battleCode(c)
	if code == "" {
		return
	}
	st, err := h.svc.GetBattle(code)
	if err != nil {
		respondError(c, err)
		return
	}
	respondState(c, http.StatusOK, st, nil)
}

// DeleteBattle removes a session.
func (h *BattleHandler) DeleteBattle(c *gin.Context) {
	code := battleCode(c)
	if code == "" {
		return
	}
	if err := h.svc.DeleteBattle(code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Battle deleted"})
}

// ListModes returns the supported game modes.
func (h *BattleHandler) ListModes(c *gin.Context) {
	c.JSON(http.StatusOK, game.Modes)
}

// ListCreatures returns the full creature catalog.
func (h *BattleHandler) ListCreatures(c *gin.Context) {
	c.JSON(http.StatusOK, h.cat.All())
}

// GetProgress returns the persisted endless progression: the current
// win tally and the per-mode trophies.
func (h *BattleHandler) GetProgress(c *gin.Context) {
	prog := h.svc.Progression()

	tally, err := prog.LoadWinTally()
	if err != nil {
		logging.Error("failed to load win tally", err, logging.Fields{constants.LogFieldKey: keys.WinTally})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProgress})
		return
	}

	trophies := map[string]int{}
	for _, m := range game.Modes {
		record, err := prog.Trophy(m.ID)
		if err != nil {
			logging.Error("failed to load trophy", err, logging.Fields{constants.LogFieldKey: keys.Trophy(m.ID)})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchProgress})
			return
		}
		if record > 0 {
			trophies[m.ID] = record
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"win_tally": tally,
		"trophies":  trophies,
	})
}
