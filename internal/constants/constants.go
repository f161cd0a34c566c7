package constants

// Centralized constants for env keys, routes, JSON keys, error
// messages and log field names.
const (
	// Environment variable keys
	EnvConfigPath = "ELEMENTARA_CONFIG"
	EnvDBPath     = "ELEMENTARA_DB"

	// Defaults
	DefaultConfigPath = "./elementara_config.json"
	DefaultDBPath     = "./data/elementara.db"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix         = "/api"
	RouteVersion           = "/version"
	RouteModes             = "/modes"
	RouteCreatures         = "/creatures"
	RouteProgress          = "/progress"
	RouteBattles           = "/battles"
	RouteBattleByCode      = "/battles/:battleCode"
	RouteBattleMode        = "/battles/:battleCode/mode"
	RouteBattleChallenge   = "/battles/:battleCode/challenge"
	RouteBattleProceed     = "/battles/:battleCode/proceed"
	RouteBattleElement     = "/battles/:battleCode/element"
	RouteBattlePick        = "/battles/:battleCode/pick"
	RouteBattleUnpick      = "/battles/:battleCode/unpick"
	RouteBattleConfirm     = "/battles/:battleCode/confirm"
	RouteBattleBegin       = "/battles/:battleCode/begin"
	RouteBattleRoll        = "/battles/:battleCode/roll"
	RouteBattleEvolve      = "/battles/:battleCode/evolve"
	RouteBattleTagOut      = "/battles/:battleCode/tag-out"
	RouteBattleReplacement = "/battles/:battleCode/replacement"
	RouteBattleRestart     = "/battles/:battleCode/restart"
	RouteBattleMenu        = "/battles/:battleCode/menu"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyState   = "state"
	JSONKeyEvents  = "events"
	JSONKeyCode    = "session_code"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrInvalidBattleCode   = "Invalid battle code"
	ErrBattleNotFound      = "Battle not found"
	ErrFailedCreateBattle  = "Failed to create battle"
	ErrFailedUpdateBattle  = "Failed to update battle"
	ErrFailedFetchProgress = "Failed to fetch progress"
)

// Logging field names
const (
	LogFieldBattleCode = "battle_code"
	LogFieldMode       = "mode"
	LogFieldTurn       = "turn"
	LogFieldPhase      = "phase"
	LogFieldRoll       = "roll"
	LogFieldDamage     = "damage"
	LogFieldCreature   = "creature"
	LogFieldInstance   = "instance_id"
	LogFieldReason     = "reason"
	LogFieldAddr       = "addr"
	LogFieldKey        = "key"
	LogFieldWins       = "wins"
)
