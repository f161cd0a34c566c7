package keys

// Keys for the persistent progress store. The literal values are part
// of the on-disk contract (existing saves reference them), so they
// must never change.

const (
	// WinTally stores the current endless run's consecutive win count.
	WinTally = "endless_win_tally"

	trophyPrefix = "endless_trophy_"
)

// Trophy returns the progress key holding the best endless win count
// for the given game mode id (e.g. "endless_trophy_set-3").
func Trophy(modeID string) string {
	return trophyPrefix + modeID
}
