/*
Package scoreboardconst contains constants shared by the Scoreboard contract
and its off-chain clients.
*/
package scoreboardconst

// Notification names.
const (
	BoardInitializedEvent = "BoardInitialized"
	UserVotedEvent        = "UserVoted"
	ScoreResetEvent       = "ScoreReset"
	RoleUnlockedEvent     = "RoleUnlocked"
)

// Vote directions reported in UserVoted notification.
const (
	DirectionUpvote   = "upvote"
	DirectionDownvote = "downvote"
)

// RoleTopContributor is the only role a reputation entry can unlock.
const RoleTopContributor = "top_contributor"

// Exception messages thrown by the contract.
const (
	// AlreadyInitializedError is thrown on the second board initialization.
	AlreadyInitializedError = "board is already initialized"
	// NotInitializedError is thrown when the board is used before initialization.
	NotInitializedError = "board is not initialized"
	// InsufficientTokenBalanceError is thrown when the voter holds no units of
	// the presented asset.
	InsufficientTokenBalanceError = "insufficient token balance to vote"
	// InvalidTokenMintError is thrown when the presented asset differs from
	// the board's required asset.
	InvalidTokenMintError = "invalid token mint"
	// CooldownNotPassedError is thrown when the same voter votes for the same
	// target again before the cooldown expires.
	CooldownNotPassedError = "cooldown period has not passed since last vote"
	// NotAuthorizedError is thrown when reset is called by anyone but the
	// board authority.
	NotAuthorizedError = "not authorized to perform this action"
	// InsufficientReputationError is thrown when the entry's score is below
	// the unlock threshold.
	InsufficientReputationError = "insufficient reputation to unlock this role"
	// EntryNotFoundError is thrown when the requested reputation entry
	// does not exist.
	EntryNotFoundError = "reputation entry does not exist"
)

// Fixed sizes of the stored records.
const (
	HashLen  = 20
	IntLen   = 8
	BoardLen = HashLen + IntLen + HashLen + IntLen
	EntryLen = HashLen + IntLen + 1
	VoteLen  = HashLen + HashLen + IntLen
)

// Storage key prefixes.
const (
	BoardKey    = "b"
	EntryPrefix = 'e'
	VotePrefix  = 'v'
)
