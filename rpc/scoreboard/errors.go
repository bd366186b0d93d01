package scoreboard

import (
	"strings"

	cst "github.com/nspcc-dev/reputation-scoreboard/contracts/scoreboard/scoreboardconst"
)

// IsError checks whether err is a contract exception carrying msg. Contract
// exceptions reach RPC clients as plain text inside FAULT state descriptions,
// so the check is textual.
func IsError(err error, msg string) bool {
	return err != nil && strings.Contains(err.Error(), msg)
}

// IsNotInitialized checks whether err means the board has not been created
// yet.
func IsNotInitialized(err error) bool {
	return IsError(err, cst.NotInitializedError)
}

// IsEntryNotFound checks whether err means the requested reputation entry
// does not exist.
func IsEntryNotFound(err error) bool {
	return IsError(err, cst.EntryNotFoundError)
}
