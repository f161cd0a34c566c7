package game

// GameMode is the immutable configuration of a battle ruleset.
type GameMode struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	PlayerCreatureCount int    `json:"player_creature_count"`
	// EvolutionTurnsRequired is meaningful only when AllowEvolution is
	// set; evolution-disabled modes ignore it.
	EvolutionTurnsRequired int  `json:"evolution_turns_required"`
	AllowEvolution         bool `json:"allow_evolution"`
	// StartingHP is the baseline max HP used when the mode overrides the
	// template's own HP. Full Power Duel ignores it and uses the
	// template's base HP instead.
	StartingHP int `json:"starting_hp"`
}

// UsesTemplateHP reports whether creatures keep their template base HP
// instead of the mode's StartingHP baseline.
func (m *GameMode) UsesTemplateHP() bool { return m.ID == ModeFullPowerDuel }

// Fixed mode ids. The ids are persisted in trophy keys, so they must
// stay stable.
const (
	ModeEvolutionClash = "set-3"
	ModeFullPowerDuel  = "set-2"
)

// Modes lists the two supported game modes.
var Modes = []GameMode{
	{
		ID:                     ModeEvolutionClash,
		Name:                   "Evolution Clash",
		Description:            "Full evolution lines, tags, evolution buffs.",
		PlayerCreatureCount:    3,
		EvolutionTurnsRequired: 2,
		AllowEvolution:         true,
		StartingHP:             50,
	},
	{
		ID:                     ModeFullPowerDuel,
		Name:                   "Full Power Duel",
		Description:            "Full cards with stats, no evolution.",
		PlayerCreatureCount:    1,
		EvolutionTurnsRequired: 0,
		AllowEvolution:         false,
		StartingHP:             80, // overridden by the creature's own HP
	},
}

// ModeByID returns the mode with the given id, or nil.
func ModeByID(id string) *GameMode {
	for i := range Modes {
		if Modes[i].ID == id {
			return &Modes[i]
		}
	}
	return nil
}
