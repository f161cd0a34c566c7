package game

import "gorm.io/gorm"

// Element is one of the four elemental types a creature can have.
type Element string

const (
	Fire  Element = "Fire"
	Water Element = "Water"
	Earth Element = "Earth"
	Air   Element = "Air"
)

// Elements lists every element in display order.
var Elements = []Element{Fire, Water, Earth, Air}

// Valid reports whether e is one of the four known elements.
func (e Element) Valid() bool {
	switch e {
	case Fire, Water, Earth, Air:
		return true
	}
	return false
}

// Stage is a creature's evolution stage (1..3).
type Stage int

const (
	StageBasic  Stage = 1
	StageMiddle Stage = 2
	StageFinal  Stage = 3
)

// CreatureTemplate is the immutable catalog entry for a creature. The
// id is a slug derived from the name; EvolutionLine holds the template
// ids of the full stage 1→3 chain (including this template's own id at
// position Stage-1).
type CreatureTemplate struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Element       Element  `json:"element"`
	BaseMaxHP     int      `json:"base_max_hp"`
	Weakness      Element  `json:"weakness,omitempty"`   // empty = none
	Resistance    Element  `json:"resistance,omitempty"` // empty = none
	Ability       string   `json:"ability"`
	Stage         Stage    `json:"stage"`
	EvolutionLine []string `json:"evolution_line"`
}

// CreatureInstance is a mutable battle copy of a template. Each
// instance gets a unique InstanceID distinct from the template id so
// damage events can target it unambiguously (both sides may field the
// same template).
type CreatureInstance struct {
	CreatureTemplate
	InstanceID    string `json:"instance_id"`
	MaxHP         int    `json:"max_hp"`
	CurrentHP     int    `json:"current_hp"`
	TurnsSurvived int    `json:"turns_survived"`
	IsFaceUp      bool   `json:"is_face_up"`
}

// KnockedOut reports whether the instance is at 0 HP.
func (c *CreatureInstance) KnockedOut() bool { return c.CurrentHP <= 0 }

// RosterSlot holds one side's creatures: a single active slot and an
// ordered bench.
type RosterSlot struct {
	Active *CreatureInstance   `json:"active"`
	Bench  []*CreatureInstance `json:"bench"`
	// SkippedTurn is reserved for future per-side skip tracking; the
	// engine currently records skips on BattleState.SkipNextTurnFor.
	SkippedTurn bool `json:"skipped_turn"`
}

// HasLivingBench reports whether any bench creature is still standing.
func (r *RosterSlot) HasLivingBench() bool {
	for _, c := range r.Bench {
		if !c.KnockedOut() {
			return true
		}
	}
	return false
}

// LivingBench returns the bench creatures that are still standing.
func (r *RosterSlot) LivingBench() []*CreatureInstance {
	out := make([]*CreatureInstance, 0, len(r.Bench))
	for _, c := range r.Bench {
		if !c.KnockedOut() {
			out = append(out, c)
		}
	}
	return out
}

// All returns the active creature (if any) followed by the bench.
func (r *RosterSlot) All() []*CreatureInstance {
	out := make([]*CreatureInstance, 0, len(r.Bench)+1)
	if r.Active != nil {
		out = append(out, r.Active)
	}
	out = append(out, r.Bench...)
	return out
}

// TurnOwner identifies which side is acting.
type TurnOwner string

const (
	OwnerNone     TurnOwner = ""
	OwnerPlayer   TurnOwner = "player"
	OwnerOpponent TurnOwner = "opponent"
)

// Other returns the opposing side.
func (o TurnOwner) Other() TurnOwner {
	if o == OwnerPlayer {
		return OwnerOpponent
	}
	return OwnerPlayer
}

// Phase is the battle lifecycle phase.
type Phase string

const (
	PhaseSetup             Phase = "setup"
	PhaseModeSelection     Phase = "mode_selection"
	PhaseInstructions      Phase = "instructions"
	PhaseCreatureSelection Phase = "creature_selection"
	PhaseCoinToss          Phase = "coin_toss"
	PhaseInGame            Phase = "in_game"
	PhaseGameOver          Phase = "game_over"
)

// SelectionSubPhase refines the selection flow inside mode/creature
// selection.
type SelectionSubPhase string

const (
	SubPhaseNone                SelectionSubPhase = ""
	SubPhaseChooseChallenge     SelectionSubPhase = "choose_challenge_type"
	SubPhaseChooseElement       SelectionSubPhase = "choose_element"
	SubPhaseChooseCreature      SelectionSubPhase = "choose_creature"
	SubPhaseChooseFullPowerCard SelectionSubPhase = "choose_full_power_card"
)

// CoinFace is the result of the first-turn coin flip.
type CoinFace string

const (
	CoinHeads CoinFace = "Heads"
	CoinTails CoinFace = "Tails"
)

// BattleState is the root aggregate for one battle session. It is
// owned by exactly one writer at a time (the transition currently
// executing); readers only ever see a fully formed snapshot.
type BattleState struct {
	Phase             Phase             `json:"phase"`
	SelectionSubPhase SelectionSubPhase `json:"selection_sub_phase"`
	Turn              TurnOwner         `json:"turn"`

	Player   RosterSlot `json:"player"`
	Opponent RosterSlot `json:"opponent"`

	// Dice bookkeeping. Rolls resolve synchronously; reveal pacing is
	// a presentation hint carried on the emitted events.
	DiceValue         int       `json:"dice_value"`
	HasRolledThisTurn bool      `json:"has_rolled_this_turn"`
	LastDieRoll       int       `json:"last_die_roll"` // 0 = no roll yet
	LastDieRollOwner  TurnOwner `json:"last_die_roll_owner"`

	// Corrupted die bookkeeping.
	IsCorrupted             bool      `json:"is_corrupted"`
	CorruptedTurnsRemaining int       `json:"corrupted_turns_remaining"`
	CorruptedOwner          TurnOwner `json:"corrupted_owner"`

	// Evolution flags, used only as corruption preconditions.
	HasPlayerEvolved   bool `json:"has_player_evolved"`
	HasOpponentEvolved bool `json:"has_opponent_evolved"`

	SkipNextTurnFor     TurnOwner `json:"skip_next_turn_for"`
	ReplacementPhaseFor TurnOwner `json:"replacement_phase_for"`
	IsTaggingOut        bool      `json:"is_tagging_out"`
	CoinFlipResult      CoinFace  `json:"coin_flip_result,omitempty"`

	IsGameOver bool      `json:"is_game_over"`
	Winner     TurnOwner `json:"winner"`

	SelectedModeID       string   `json:"selected_mode_id"`
	PlayerSelectedIDs    []string `json:"player_selected_ids"`
	CurrentElementChoice Element  `json:"current_element_choice,omitempty"`
	CreatureChoicePool   []string `json:"creature_choice_pool,omitempty"`

	IsEndlessModeActive bool           `json:"is_endless_mode_active"`
	EndlessWins         int            `json:"endless_wins"`
	AIDifficulty        int            `json:"ai_difficulty"`
	FinalEndlessScore   int            `json:"final_endless_score"`
	EndlessTrophies     map[string]int `json:"endless_trophies"`
}

// NewBattleState returns a fresh state at the setup phase.
func NewBattleState() *BattleState {
	return &BattleState{
		Phase:           PhaseSetup,
		Turn:            OwnerPlayer,
		DiceValue:       1,
		AIDifficulty:    1,
		EndlessTrophies: map[string]int{},
	}
}

// Mode returns the selected game mode, or nil before mode selection.
func (s *BattleState) Mode() *GameMode {
	return ModeByID(s.SelectedModeID)
}

// Roster returns the roster slot for the given side.
func (s *BattleState) Roster(owner TurnOwner) *RosterSlot {
	if owner == OwnerPlayer {
		return &s.Player
	}
	return &s.Opponent
}

// ActiveOf returns the active creature for the given side (may be nil).
func (s *BattleState) ActiveOf(owner TurnOwner) *CreatureInstance {
	return s.Roster(owner).Active
}

// HasEvolved reports the evolution flag for the given side.
func (s *BattleState) HasEvolved(owner TurnOwner) bool {
	if owner == OwnerPlayer {
		return s.HasPlayerEvolved
	}
	return s.HasOpponentEvolved
}

// SetEvolved records that the given side evolved at least once this
// battle.
func (s *BattleState) SetEvolved(owner TurnOwner) {
	if owner == OwnerPlayer {
		s.HasPlayerEvolved = true
	} else {
		s.HasOpponentEvolved = true
	}
}

// BattleSession is the persisted form of a battle: a stable session
// code plus the full state serialized as JSON. Storing the aggregate
// as one snapshot keeps reads atomic and lets battles survive process
// restarts.
type BattleSession struct {
	gorm.Model
	SessionCode string `json:"session_code" gorm:"uniqueIndex;size:12"`
	State       []byte `json:"-" gorm:"type:blob"`
}

func (BattleSession) TableName() string { return "battle_sessions" }

// ProgressEntry is one row of the persistent key-value store used by
// the meta-progression module (win tally and per-mode trophies).
type ProgressEntry struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex;size:64"`
	Value int
}

func (ProgressEntry) TableName() string { return "progress_entries" }
