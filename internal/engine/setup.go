package engine

import (
	"errors"
	"math/rand"

	"github.com/oninross/elementara/internal/catalog"
	"github.com/oninross/elementara/internal/game"
)

var (
	ErrWrongPhase       = errors.New("transition not valid in current phase")
	ErrUnknownMode      = errors.New("unknown game mode")
	ErrUnknownElement   = errors.New("unknown element")
	ErrRosterIncomplete = errors.New("roster selection incomplete")
	ErrDuplicatePick    = errors.New("creature already in roster")
	ErrRosterFull       = errors.New("roster is full")
)

// StartModeSelection moves a fresh session from setup into mode
// selection.
func StartModeSelection(st *game.BattleState) ([]Event, error) {
	if st.Phase != game.PhaseSetup {
		return nil, ErrWrongPhase
	}
	st.Phase = game.PhaseModeSelection
	return []Event{logf("Select a game mode to begin!")}, nil
}

// SelectMode records the chosen ruleset and asks for the challenge
// type next (standard match or endless).
func SelectMode(st *game.BattleState, modeID string) ([]Event, error) {
	if st.Phase != game.PhaseModeSelection {
		return nil, ErrWrongPhase
	}
	mode := game.ModeByID(modeID)
	if mode == nil {
		return nil, ErrUnknownMode
	}
	st.SelectedModeID = mode.ID
	st.SelectionSubPhase = game.SubPhaseChooseChallenge
	return []Event{logf("You selected %s. Choose your challenge.", mode.Name)}, nil
}

// SelectChallenge picks between a standard match and an endless run.
// For endless runs the persisted win tally carries over so a returning
// player resumes at their previous difficulty.
func SelectChallenge(st *game.BattleState, endless bool, savedTally int) ([]Event, error) {
	if st.Phase != game.PhaseModeSelection || st.SelectionSubPhase != game.SubPhaseChooseChallenge {
		return nil, ErrWrongPhase
	}
	wins := 0
	if endless {
		wins = savedTally
	}
	st.IsEndlessModeActive = endless
	st.EndlessWins = wins
	st.AIDifficulty = wins + 1
	st.Phase = game.PhaseInstructions
	st.SelectionSubPhase = game.SubPhaseNone
	if endless {
		return []Event{logf("Endless Challenge selected!")}, nil
	}
	return []Event{logf("Standard Match selected.")}, nil
}

// ProceedFromInstructions moves into the roster selection flow.
func ProceedFromInstructions(st *game.BattleState) ([]Event, error) {
	if st.Phase != game.PhaseInstructions {
		return nil, ErrWrongPhase
	}
	st.Phase = game.PhaseCreatureSelection
	st.SelectionSubPhase = game.SubPhaseChooseElement
	return []Event{logf("Now choose your creatures for battle!")}, nil
}

// SelectElement narrows the pick pool to one element. Evolution Clash
// picks from basic forms, Full Power Duel from final forms.
func SelectElement(st *game.BattleState, cat *catalog.Catalog, element game.Element) ([]Event, error) {
	if st.Phase != game.PhaseCreatureSelection || st.SelectionSubPhase != game.SubPhaseChooseElement {
		return nil, ErrWrongPhase
	}
	if !element.Valid() {
		return nil, ErrUnknownElement
	}
	mode := st.Mode()
	if mode == nil {
		return nil, ErrWrongPhase
	}

	stage := game.StageBasic
	nextSub := game.SubPhaseChooseCreature
	if mode.UsesTemplateHP() {
		stage = game.StageFinal
		nextSub = game.SubPhaseChooseFullPowerCard
	}
	pool := cat.ByElementAndStage(element, stage)
	if len(pool) == 0 {
		return []Event{logf("No %s creatures available. Please choose another element.", element)}, nil
	}

	ids := make([]string, 0, len(pool))
	for _, t := range pool {
		ids = append(ids, t.ID)
	}
	st.CurrentElementChoice = element
	st.CreatureChoicePool = ids
	st.SelectionSubPhase = nextSub
	return []Event{logf("You chose the %s element. Now pick a creature.", element)}, nil
}

// PickCreature adds a creature to the player's pending roster. It
// returns true once the roster holds the mode's required count.
func PickCreature(st *game.BattleState, cat *catalog.Catalog, creatureID string) (bool, []Event, error) {
	if st.Phase != game.PhaseCreatureSelection {
		return false, nil, ErrWrongPhase
	}
	if st.SelectionSubPhase != game.SubPhaseChooseCreature && st.SelectionSubPhase != game.SubPhaseChooseFullPowerCard {
		return false, nil, ErrWrongPhase
	}
	mode := st.Mode()
	if mode == nil {
		return false, nil, ErrWrongPhase
	}
	t, err := cat.ByID(creatureID)
	if err != nil {
		return false, nil, err
	}
	for _, id := range st.PlayerSelectedIDs {
		if id == creatureID {
			return false, nil, ErrDuplicatePick
		}
	}
	if len(st.PlayerSelectedIDs) >= mode.PlayerCreatureCount {
		return false, nil, ErrRosterFull
	}

	st.PlayerSelectedIDs = append(st.PlayerSelectedIDs, creatureID)
	events := []Event{logf("Added %s (%s) to your roster.", t.Name, t.Element)}

	complete := len(st.PlayerSelectedIDs) == mode.PlayerCreatureCount
	if complete {
		st.SelectionSubPhase = game.SubPhaseNone
	} else {
		st.SelectionSubPhase = game.SubPhaseChooseElement
		st.CurrentElementChoice = ""
	}
	st.CreatureChoicePool = nil
	return complete, events, nil
}

// UnpickCreature removes the pick at the given index and reopens
// element selection.
func UnpickCreature(st *game.BattleState, index int) ([]Event, error) {
	if st.Phase != game.PhaseCreatureSelection {
		return nil, ErrWrongPhase
	}
	if index < 0 || index >= len(st.PlayerSelectedIDs) {
		return nil, ErrRosterIncomplete
	}
	st.PlayerSelectedIDs = append(st.PlayerSelectedIDs[:index], st.PlayerSelectedIDs[index+1:]...)
	st.SelectionSubPhase = game.SubPhaseChooseElement
	st.CurrentElementChoice = ""
	st.CreatureChoicePool = nil
	return []Event{logf("Removed a creature from your roster.")}, nil
}

// ConfirmRoster builds both battle rosters and flips the first-turn
// coin. Player instances use the mode's starting HP (or the template's
// own HP in Full Power Duel); the opponent roster is generated by the
// meta-progression module and passed in ready-made. An unknown
// template id aborts setup: that is corrupt catalog data, not a
// recoverable input error.
func ConfirmRoster(st *game.BattleState, cat *catalog.Catalog, opponent []*game.CreatureInstance, rng *rand.Rand) ([]Event, error) {
	if st.Phase != game.PhaseCreatureSelection {
		return nil, ErrWrongPhase
	}
	mode := st.Mode()
	if mode == nil {
		return nil, ErrWrongPhase
	}
	if len(st.PlayerSelectedIDs) != mode.PlayerCreatureCount {
		return nil, ErrRosterIncomplete
	}
	if len(opponent) == 0 {
		return nil, ErrRosterIncomplete
	}

	playerInstances := make([]*game.CreatureInstance, 0, mode.PlayerCreatureCount)
	for _, id := range st.PlayerSelectedIDs {
		t, err := cat.ByID(id)
		if err != nil {
			return nil, err
		}
		hp := mode.StartingHP
		if mode.UsesTemplateHP() {
			hp = t.BaseMaxHP
		}
		playerInstances = append(playerInstances, cat.NewInstance(t, hp))
	}

	st.Player = game.RosterSlot{Active: playerInstances[0], Bench: playerInstances[1:]}
	st.Opponent = game.RosterSlot{Active: opponent[0], Bench: opponent[1:]}

	events := []Event{logf("Rosters confirmed. Flipping a coin to see who goes first...")}

	// Heads: the player moves first.
	first := game.OwnerOpponent
	face := game.CoinTails
	if rng.Intn(2) == 0 {
		first = game.OwnerPlayer
		face = game.CoinHeads
	}
	st.CoinFlipResult = face
	st.Turn = first
	st.Phase = game.PhaseCoinToss
	events = append(events, eventf(EventCoinFlip, "Coin toss result: %s! %s goes first!", face, sideName(first)))
	return events, nil
}

// Begin reveals both rosters and starts play. The coin-toss phase is
// kept observable so a client can animate the flip before beginning.
func Begin(st *game.BattleState) ([]Event, error) {
	if st.Phase != game.PhaseCoinToss {
		return nil, ErrWrongPhase
	}
	for _, c := range st.Player.All() {
		c.IsFaceUp = true
	}
	for _, c := range st.Opponent.All() {
		c.IsFaceUp = true
	}
	st.Phase = game.PhaseInGame
	st.HasRolledThisTurn = false
	return []Event{logf("The battle begins!")}, nil
}

// BackToMenu discards the battle and returns to mode selection,
// preserving only persisted progress (trophies and the endless tally).
func BackToMenu(st *game.BattleState, savedTally int) []Event {
	trophies := st.EndlessTrophies
	*st = *game.NewBattleState()
	st.Phase = game.PhaseModeSelection
	st.EndlessWins = savedTally
	st.AIDifficulty = savedTally + 1
	st.EndlessTrophies = trophies
	return []Event{logf("Returned to game mode selection.")}
}

// Restart restarts the currently selected mode from the instructions
// screen. Restarting an endless run starts a fresh run: the tally
// resets (the caller persists the reset).
func Restart(st *game.BattleState, savedTally int) []Event {
	if st.Mode() == nil {
		return BackToMenu(st, savedTally)
	}

	trophies := st.EndlessTrophies
	modeID := st.SelectedModeID
	endless := st.IsEndlessModeActive

	wins := st.EndlessWins
	if endless {
		wins = 0
	}

	*st = *game.NewBattleState()
	st.Phase = game.PhaseInstructions
	st.SelectedModeID = modeID
	st.IsEndlessModeActive = endless
	st.EndlessWins = wins
	st.AIDifficulty = wins + 1
	st.EndlessTrophies = trophies
	return []Event{logf("Restarting current game mode.")}
}
