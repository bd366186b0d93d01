// Package scoreboard contains RPC wrappers for Reputation Scoreboard contract.
package scoreboard

import (
	"errors"
	"fmt"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)

// ScoreboardBoardConfig is a contract-specific scoreboard.BoardConfig type used by its methods.
type ScoreboardBoardConfig struct {
	Authority util.Uint160
	Cooldown *big.Int
	RequiredAsset util.Uint160
	Threshold *big.Int
}

// ScoreboardReputationEntry is a contract-specific scoreboard.ReputationEntry type used by its methods.
type ScoreboardReputationEntry struct {
	Subject util.Uint160
	Reputation *big.Int
	TopContributor bool
}

// BoardInitializedEvent represents "BoardInitialized" event emitted by the contract.
type BoardInitializedEvent struct {
	Authority util.Uint160
	Cooldown *big.Int
	RequiredAsset util.Uint160
	Threshold *big.Int
}

// UserVotedEvent represents "UserVoted" event emitted by the contract.
type UserVotedEvent struct {
	Voter util.Uint160
	Target util.Uint160
	Direction string
	NewScore *big.Int
}

// ScoreResetEvent represents "ScoreReset" event emitted by the contract.
type ScoreResetEvent struct {
	Authority util.Uint160
	Target util.Uint160
}

// RoleUnlockedEvent represents "RoleUnlocked" event emitted by the contract.
type RoleUnlockedEvent struct {
	Subject util.Uint160
	Role string
	Reputation *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Board invokes `board` method of contract.
func (c *ContractReader) Board() (*ScoreboardBoardConfig, error) {
	return itemToScoreboardBoardConfig(unwrap.Item(c.invoker.Call(c.hash, "board")))
}

// Entry invokes `entry` method of contract.
func (c *ContractReader) Entry(subject util.Uint160) (*ScoreboardReputationEntry, error) {
	return itemToScoreboardReputationEntry(unwrap.Item(c.invoker.Call(c.hash, "entry", subject)))
}

// IsTopContributor invokes `isTopContributor` method of contract.
func (c *ContractReader) IsTopContributor(subject util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isTopContributor", subject))
}

// LastVote invokes `lastVote` method of contract.
func (c *ContractReader) LastVote(voter util.Uint160, target util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "lastVote", voter, target))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Downvote creates a transaction invoking `downvote` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Downvote(voter util.Uint160, target util.Uint160, asset util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "downvote", voter, target, asset)
}

// DownvoteTransaction creates a transaction invoking `downvote` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DownvoteTransaction(voter util.Uint160, target util.Uint160, asset util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "downvote", voter, target, asset)
}

// DownvoteUnsigned creates a transaction invoking `downvote` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DownvoteUnsigned(voter util.Uint160, target util.Uint160, asset util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "downvote", nil, voter, target, asset)
}

// Initialize creates a transaction invoking `initialize` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Initialize(authority util.Uint160, cooldown *big.Int, requiredAsset util.Uint160, threshold *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "initialize", authority, cooldown, requiredAsset, threshold)
}

// InitializeTransaction creates a transaction invoking `initialize` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) InitializeTransaction(authority util.Uint160, cooldown *big.Int, requiredAsset util.Uint160, threshold *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "initialize", authority, cooldown, requiredAsset, threshold)
}

// InitializeUnsigned creates a transaction invoking `initialize` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) InitializeUnsigned(authority util.Uint160, cooldown *big.Int, requiredAsset util.Uint160, threshold *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "initialize", nil, authority, cooldown, requiredAsset, threshold)
}

// ResetScore creates a transaction invoking `resetScore` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) ResetScore(authority util.Uint160, target util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "resetScore", authority, target)
}

// ResetScoreTransaction creates a transaction invoking `resetScore` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) ResetScoreTransaction(authority util.Uint160, target util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "resetScore", authority, target)
}

// ResetScoreUnsigned creates a transaction invoking `resetScore` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) ResetScoreUnsigned(authority util.Uint160, target util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "resetScore", nil, authority, target)
}

// UnlockRole creates a transaction invoking `unlockRole` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UnlockRole(subject util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unlockRole", subject)
}

// UnlockRoleTransaction creates a transaction invoking `unlockRole` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UnlockRoleTransaction(subject util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "unlockRole", subject)
}

// UnlockRoleUnsigned creates a transaction invoking `unlockRole` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UnlockRoleUnsigned(subject util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "unlockRole", nil, subject)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// Upvote creates a transaction invoking `upvote` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Upvote(voter util.Uint160, target util.Uint160, asset util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "upvote", voter, target, asset)
}

// UpvoteTransaction creates a transaction invoking `upvote` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpvoteTransaction(voter util.Uint160, target util.Uint160, asset util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "upvote", voter, target, asset)
}

// UpvoteUnsigned creates a transaction invoking `upvote` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpvoteUnsigned(voter util.Uint160, target util.Uint160, asset util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "upvote", nil, voter, target, asset)
}

// itemToScoreboardBoardConfig converts stack item into *ScoreboardBoardConfig.
func itemToScoreboardBoardConfig(item stackitem.Item, err error) (*ScoreboardBoardConfig, error) {
	if err != nil {
		return nil, err
	}
	var res = new(ScoreboardBoardConfig)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of ScoreboardBoardConfig from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *ScoreboardBoardConfig) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Authority, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Authority: %w", err)
	}

	index++
	res.Cooldown, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Cooldown: %w", err)
	}

	index++
	res.RequiredAsset, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field RequiredAsset: %w", err)
	}

	index++
	res.Threshold, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Threshold: %w", err)
	}

	return nil
}

// itemToScoreboardReputationEntry converts stack item into *ScoreboardReputationEntry.
func itemToScoreboardReputationEntry(item stackitem.Item, err error) (*ScoreboardReputationEntry, error) {
	if err != nil {
		return nil, err
	}
	var res = new(ScoreboardReputationEntry)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of ScoreboardReputationEntry from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *ScoreboardReputationEntry) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.Subject, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Subject: %w", err)
	}

	index++
	res.Reputation, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Reputation: %w", err)
	}

	index++
	res.TopContributor, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field TopContributor: %w", err)
	}

	return nil
}

// BoardInitializedEventsFromApplicationLog retrieves a set of all emitted events
// with "BoardInitialized" name from the provided [result.ApplicationLog].
func BoardInitializedEventsFromApplicationLog(log *result.ApplicationLog) ([]*BoardInitializedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*BoardInitializedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "BoardInitialized" {
				continue
			}
			event := new(BoardInitializedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize BoardInitializedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to BoardInitializedEvent or
// returns an error if it's not possible to do to so.
func (e *BoardInitializedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Authority, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Authority: %w", err)
	}

	index++
	e.Cooldown, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Cooldown: %w", err)
	}

	index++
	e.RequiredAsset, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field RequiredAsset: %w", err)
	}

	index++
	e.Threshold, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Threshold: %w", err)
	}

	return nil
}

// UserVotedEventsFromApplicationLog retrieves a set of all emitted events
// with "UserVoted" name from the provided [result.ApplicationLog].
func UserVotedEventsFromApplicationLog(log *result.ApplicationLog) ([]*UserVotedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*UserVotedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "UserVoted" {
				continue
			}
			event := new(UserVotedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize UserVotedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to UserVotedEvent or
// returns an error if it's not possible to do to so.
func (e *UserVotedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Voter, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Voter: %w", err)
	}

	index++
	e.Target, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Target: %w", err)
	}

	index++
	e.Direction, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Direction: %w", err)
	}

	index++
	e.NewScore, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field NewScore: %w", err)
	}

	return nil
}

// ScoreResetEventsFromApplicationLog retrieves a set of all emitted events
// with "ScoreReset" name from the provided [result.ApplicationLog].
func ScoreResetEventsFromApplicationLog(log *result.ApplicationLog) ([]*ScoreResetEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ScoreResetEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ScoreReset" {
				continue
			}
			event := new(ScoreResetEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ScoreResetEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ScoreResetEvent or
// returns an error if it's not possible to do to so.
func (e *ScoreResetEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Authority, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Authority: %w", err)
	}

	index++
	e.Target, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Target: %w", err)
	}

	return nil
}

// RoleUnlockedEventsFromApplicationLog retrieves a set of all emitted events
// with "RoleUnlocked" name from the provided [result.ApplicationLog].
func RoleUnlockedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RoleUnlockedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RoleUnlockedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RoleUnlocked" {
				continue
			}
			event := new(RoleUnlockedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RoleUnlockedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RoleUnlockedEvent or
// returns an error if it's not possible to do to so.
func (e *RoleUnlockedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Subject, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Subject: %w", err)
	}

	index++
	e.Role, err = func (item stackitem.Item) (string, error) {
		b, err := item.TryBytes()
		if err != nil {
			return "", err
		}
		if !utf8.Valid(b) {
			return "", errors.New("not a UTF-8 string")
		}
		return string(b), nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Role: %w", err)
	}

	index++
	e.Reputation, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Reputation: %w", err)
	}

	return nil
}
