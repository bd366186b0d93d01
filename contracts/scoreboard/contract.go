package scoreboard

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/reputation-scoreboard/common"
	cst "github.com/nspcc-dev/reputation-scoreboard/contracts/scoreboard/scoreboardconst"
)

// BoardConfig is the single board configuration record.
type BoardConfig struct {
	Authority     interop.Hash160
	Cooldown      int
	RequiredAsset interop.Hash160
	Threshold     int
}

// ReputationEntry is a reputation record of a single subject.
type ReputationEntry struct {
	Subject        interop.Hash160
	Reputation     int
	TopContributor bool
}

// VoteRecord stores the time of the last vote cast by voter for target.
type VoteRecord struct {
	Voter    interop.Hash160
	Target   interop.Hash160
	LastVote int
}

const (
	entryPrefix = cst.EntryPrefix
	votePrefix  = cst.VotePrefix
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	if data != nil {
		args := data.([]any)
		if len(args) == 4 {
			initialize(ctx, args[0].(interop.Hash160), args[1].(int),
				args[2].(interop.Hash160), args[3].(int))
		}
	}

	runtime.Log("scoreboard contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(script []byte, manifest []byte, data any) {
	if !common.HasUpdateAccess() {
		panic("only committee can update contract")
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("scoreboard contract updated")
}

// Initialize method creates the board. It must be signed by the authority
// which is the only account allowed to reset scores later. Cooldown is the
// number of seconds that must pass between two votes of the same voter for the
// same target. Threshold is the reputation required to unlock the
// top_contributor role. Neither value is validated.
//
// Initialize panics if the board already exists.
func Initialize(authority interop.Hash160, cooldown int, requiredAsset interop.Hash160, threshold int) {
	initialize(storage.GetContext(), authority, cooldown, requiredAsset, threshold)
}

func initialize(ctx storage.Context, authority interop.Hash160, cooldown int, requiredAsset interop.Hash160, threshold int) {
	checkHash160(authority, "authority")
	checkHash160(requiredAsset, "asset")
	common.CheckWitness(authority)

	if storage.Get(ctx, cst.BoardKey) != nil {
		panic(cst.AlreadyInitializedError)
	}

	storage.Put(ctx, cst.BoardKey, encodeBoard(BoardConfig{
		Authority:     authority,
		Cooldown:      cooldown,
		RequiredAsset: requiredAsset,
		Threshold:     threshold,
	}))

	runtime.Notify(cst.BoardInitializedEvent, authority, cooldown, requiredAsset, threshold)
}

// Upvote method increments the reputation of target by one on behalf of
// voter and returns the new score. Voter must sign the transaction and hold a
// positive balance of asset, which must be the board's required asset. The
// same voter can vote for the same target once per cooldown period.
//
// Produces UserVoted notification.
func Upvote(voter, target, asset interop.Hash160) int {
	return vote(voter, target, asset, 1)
}

// Downvote method decrements the reputation of target by one on behalf of
// voter and returns the new score. It has the same requirements as Upvote and
// shares the cooldown with it. The score is not bounded below.
//
// Produces UserVoted notification.
func Downvote(voter, target, asset interop.Hash160) int {
	return vote(voter, target, asset, -1)
}

func vote(voter, target, asset interop.Hash160, delta int) int {
	checkHash160(voter, "voter")
	checkHash160(target, "target")
	checkHash160(asset, "asset")
	common.CheckWitness(voter)

	ctx := storage.GetContext()
	b := getBoard(ctx)

	if assetBalance(asset, voter) <= 0 {
		panic(cst.InsufficientTokenBalanceError)
	}
	if !asset.Equals(b.RequiredAsset) {
		panic(cst.InvalidTokenMintError)
	}

	now := runtime.GetTime() / 1000

	rec, existed := loadVoteRecord(ctx, voter, target)
	if existed && now-rec.LastVote < b.Cooldown {
		panic(cst.CooldownNotPassedError)
	}
	rec.LastVote = now
	storage.Put(ctx, voteKey(voter, target), encodeVoteRecord(rec))

	entry, _ := loadEntry(ctx, target)
	entry.Reputation += delta
	storage.Put(ctx, entryKey(target), encodeEntry(entry))

	direction := cst.DirectionUpvote
	if delta < 0 {
		direction = cst.DirectionDownvote
	}
	runtime.Notify(cst.UserVotedEvent, voter, target, direction, entry.Reputation)

	return entry.Reputation
}

// ResetScore method sets the reputation of target to zero and revokes its
// top_contributor role. Only the board authority can reset scores, and the
// transaction must carry its witness.
//
// Produces ScoreReset notification.
func ResetScore(authority, target interop.Hash160) {
	checkHash160(target, "target")

	ctx := storage.GetContext()
	b := getBoard(ctx)

	if !common.HasAuthority(b.Authority, authority) {
		panic(cst.NotAuthorizedError)
	}

	entry, ok := loadEntry(ctx, target)
	if !ok {
		panic(cst.EntryNotFoundError)
	}

	entry.Reputation = 0
	entry.TopContributor = false
	storage.Put(ctx, entryKey(target), encodeEntry(entry))

	runtime.Notify(cst.ScoreResetEvent, authority, target)
}

// UnlockRole method grants the top_contributor role to subject if its
// reputation reaches the board threshold. Anyone can call it. It returns
// true when the role has been granted by this call and false if subject
// already had it.
//
// Produces RoleUnlocked notification when the role is granted.
func UnlockRole(subject interop.Hash160) bool {
	checkHash160(subject, "subject")

	ctx := storage.GetContext()
	b := getBoard(ctx)

	entry, _ := loadEntry(ctx, subject)
	if entry.Reputation < b.Threshold {
		panic(cst.InsufficientReputationError)
	}
	if entry.TopContributor {
		return false
	}

	entry.TopContributor = true
	storage.Put(ctx, entryKey(subject), encodeEntry(entry))

	runtime.Notify(cst.RoleUnlockedEvent, subject, cst.RoleTopContributor, entry.Reputation)

	return true
}

// Board method returns the board configuration. It panics if the board is
// not initialized.
func Board() BoardConfig {
	return getBoard(storage.GetReadOnlyContext())
}

// Entry method returns the reputation entry of subject. It panics if the
// entry does not exist.
func Entry(subject interop.Hash160) ReputationEntry {
	entry, ok := loadEntry(storage.GetReadOnlyContext(), subject)
	if !ok {
		panic(cst.EntryNotFoundError)
	}
	return entry
}

// IsTopContributor method returns true if subject has unlocked the
// top_contributor role.
func IsTopContributor(subject interop.Hash160) bool {
	entry, _ := loadEntry(storage.GetReadOnlyContext(), subject)
	return entry.TopContributor
}

// LastVote method returns the time (in seconds) of the last vote of voter for
// target or 0 if there were no votes.
func LastVote(voter, target interop.Hash160) int {
	rec, _ := loadVoteRecord(storage.GetReadOnlyContext(), voter, target)
	return rec.LastVote
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func checkHash160(h interop.Hash160, name string) {
	if len(h) != interop.Hash160Len {
		panic("invalid " + name + " hash")
	}
}

// assetBalance returns balance of holder in the asset contract. Unknown
// contracts are treated as zero balance.
func assetBalance(asset, holder interop.Hash160) int {
	if management.GetContract(asset) == nil {
		return 0
	}
	return contract.Call(asset, "balanceOf", contract.ReadOnly, holder).(int)
}

func getBoard(ctx storage.Context) BoardConfig {
	data := storage.Get(ctx, cst.BoardKey)
	if data == nil {
		panic(cst.NotInitializedError)
	}
	return decodeBoard(data.([]byte))
}

func loadEntry(ctx storage.Context, subject interop.Hash160) (ReputationEntry, bool) {
	data := storage.Get(ctx, entryKey(subject))
	if data == nil {
		return ReputationEntry{Subject: subject}, false
	}
	return decodeEntry(data.([]byte)), true
}

func loadVoteRecord(ctx storage.Context, voter, target interop.Hash160) (VoteRecord, bool) {
	data := storage.Get(ctx, voteKey(voter, target))
	if data == nil {
		return VoteRecord{Voter: voter, Target: target}, false
	}
	return decodeVoteRecord(data.([]byte)), true
}

func entryKey(subject interop.Hash160) []byte {
	return append([]byte{entryPrefix}, subject...)
}

func voteKey(voter, target interop.Hash160) []byte {
	return append(append([]byte{votePrefix}, voter...), target...)
}

func encodeBoard(b BoardConfig) []byte {
	data := append([]byte{}, b.Authority...)
	data = append(data, int64Bytes(b.Cooldown)...)
	data = append(data, b.RequiredAsset...)
	return append(data, int64Bytes(b.Threshold)...)
}

func decodeBoard(data []byte) BoardConfig {
	return BoardConfig{
		Authority:     interop.Hash160(data[:20]),
		Cooldown:      convert.ToInteger(data[20:28]),
		RequiredAsset: interop.Hash160(data[28:48]),
		Threshold:     convert.ToInteger(data[48:56]),
	}
}

func encodeEntry(e ReputationEntry) []byte {
	data := append([]byte{}, e.Subject...)
	data = append(data, int64Bytes(e.Reputation)...)
	if e.TopContributor {
		return append(data, 1)
	}
	return append(data, 0)
}

func decodeEntry(data []byte) ReputationEntry {
	return ReputationEntry{
		Subject:        interop.Hash160(data[:20]),
		Reputation:     convert.ToInteger(data[20:28]),
		TopContributor: data[28] != 0,
	}
}

func encodeVoteRecord(r VoteRecord) []byte {
	data := append([]byte{}, r.Voter...)
	data = append(data, r.Target...)
	return append(data, int64Bytes(r.LastVote)...)
}

func decodeVoteRecord(data []byte) VoteRecord {
	return VoteRecord{
		Voter:    interop.Hash160(data[:20]),
		Target:   interop.Hash160(data[20:40]),
		LastVote: convert.ToInteger(data[40:48]),
	}
}

// int64Bytes returns 8-byte little-endian two's complement representation
// of n. It panics if n does not fit into 64 bits.
func int64Bytes(n int) []byte {
	data := convert.ToBytes(n)
	if len(data) > cst.IntLen {
		panic("integer overflow")
	}

	pad := byte(0)
	if n < 0 {
		pad = 0xff
	}
	for len(data) < cst.IntLen {
		data = append(data, pad)
	}
	return data
}
