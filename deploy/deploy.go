package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/reputation-scoreboard/rpc/scoreboard"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the Scoreboard deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// BoardPrm groups parameters of the board created on deployment.
type BoardPrm struct {
	// Account allowed to reset scores.
	Authority util.Uint160
	// Minimal number of seconds between two votes of the same voter for the
	// same target.
	Cooldown int64
	// Asset voters must hold.
	RequiredAsset util.Uint160
	// Reputation required to unlock top_contributor role.
	TopContributorThreshold int64
}

// Prm groups all parameters of the Scoreboard deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy the contract to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// The contract address is derived from it.
	LocalAccount *wallet.Account

	Contract CommonDeployPrm

	Board BoardPrm

	// Update the on-chain contract if its NEF differs from the local one. The
	// contract only accepts updates signed by the committee.
	AllowUpdate bool
}

// ErrAuthorityMismatch is returned by Deploy when the board must be
// initialized but the local account is not the configured authority.
var ErrAuthorityMismatch = errors.New("local account is not the board authority")

// Deploy makes the Scoreboard contract available on the chain represented by
// Prm.Blockchain and returns its address.
//
// Deploy is idempotent. Stages:
//  1. contract deployment (the board is created atomically with it if the
//     local account is the authority)
//  2. optional update of the already deployed contract
//  3. board initialization if it was not created yet
//
// Deploy blocks until all sent transactions are accepted or ctx is done.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	if prm.LocalAccount == nil {
		return util.Uint160{}, errors.New("missing local account")
	}
	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}

	localAcc := prm.LocalAccount.ScriptHash()
	isAuthority := prm.Board.Authority.Equals(localAcc)
	contractAddress := scoreboardAddress(localAcc, prm.Contract)
	log := prm.Logger.With(zap.Stringer("contract", contractAddress))

	act, err := actor.New(prm.Blockchain, []actor.SignerAccount{deploySigner(prm.LocalAccount, contractAddress)})
	if err != nil {
		return util.Uint160{}, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	onChain, err := prm.Blockchain.GetContractStateByHash(contractAddress)
	if err != nil {
		if !isErrContractNotFound(err) {
			return util.Uint160{}, fmt.Errorf("get contract state: %w", err)
		}

		log.Info("contract is missing on the chain, deploying...", zap.Bool("with board", isAuthority))

		var data any
		if isAuthority {
			data = boardArgs(prm.Board)
		}

		txHash, vub, err := management.New(act).Deploy(&prm.Contract.NEF, &prm.Contract.Manifest, data)
		err = awaitTx(ctx, act, txHash, vub, err)
		if err != nil {
			return util.Uint160{}, fmt.Errorf("deploy contract: %w", err)
		}

		log.Info("contract successfully deployed", zap.Stringer("tx", txHash))
	} else if onChain.NEF.Checksum != prm.Contract.NEF.Checksum {
		if !prm.AllowUpdate {
			log.Warn("on-chain contract differs from the local one, update is disabled",
				zap.Uint32("on-chain checksum", onChain.NEF.Checksum),
				zap.Uint32("local checksum", prm.Contract.NEF.Checksum))
		} else {
			err = updateContract(ctx, act, contractAddress, prm.Contract)
			if err != nil {
				return util.Uint160{}, fmt.Errorf("update contract: %w", err)
			}
			log.Info("contract successfully updated")
		}
	} else {
		log.Debug("contract is already deployed")
	}

	reader := scoreboard.NewReader(invoker.New(prm.Blockchain, nil), contractAddress)

	board, err := reader.Board()
	if err == nil {
		checkBoard(log, board, prm.Board)
		return contractAddress, nil
	}
	if !scoreboard.IsNotInitialized(err) {
		return util.Uint160{}, fmt.Errorf("read board: %w", err)
	}

	if !isAuthority {
		log.Info("board is not initialized and the local account can't do it",
			zap.Stringer("authority", prm.Board.Authority), zap.Stringer("local", localAcc))
		return util.Uint160{}, ErrAuthorityMismatch
	}

	log.Info("initializing the board...")

	txHash, vub, err := scoreboard.New(act, contractAddress).Initialize(prm.Board.Authority,
		big.NewInt(prm.Board.Cooldown), prm.Board.RequiredAsset, big.NewInt(prm.Board.TopContributorThreshold))
	err = awaitTx(ctx, act, txHash, vub, err)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("initialize board: %w", err)
	}

	log.Info("board successfully initialized", zap.Stringer("tx", txHash))

	return contractAddress, nil
}

func updateContract(ctx context.Context, act *actor.Actor, contractAddress util.Uint160, c CommonDeployPrm) error {
	bNEF, err := c.NEF.Bytes()
	if err != nil {
		return fmt.Errorf("encode NEF: %w", err)
	}

	bManifest, err := json.Marshal(&c.Manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	txHash, vub, err := scoreboard.New(act, contractAddress).Update(bNEF, bManifest, nil)
	return awaitTx(ctx, act, txHash, vub, err)
}

// scoreboardAddress returns address of the contract deployed by sender.
func scoreboardAddress(sender util.Uint160, c CommonDeployPrm) util.Uint160 {
	return state.CreateContractHash(sender, c.NEF.Checksum, c.Manifest.Name)
}

// deploySigner returns signer of all Deploy transactions. Board creation in
// _deploy checks the authority witness while the contract is called by the
// management contract, so the scope must include the contract itself.
func deploySigner(acc *wallet.Account, contractAddress util.Uint160) actor.SignerAccount {
	return actor.SignerAccount{
		Signer: transaction.Signer{
			Account:          acc.ScriptHash(),
			Scopes:           transaction.CalledByEntry | transaction.CustomContracts,
			AllowedContracts: []util.Uint160{contractAddress},
		},
		Account: acc,
	}
}

func boardArgs(b BoardPrm) []any {
	return []any{b.Authority, b.Cooldown, b.RequiredAsset, b.TopContributorThreshold}
}

// checkBoard logs differences between the on-chain board and the expected
// parameters. The board can't be changed after creation.
func checkBoard(log *zap.Logger, board *scoreboard.ScoreboardBoardConfig, prm BoardPrm) {
	if !board.Authority.Equals(prm.Authority) ||
		board.Cooldown.Cmp(big.NewInt(prm.Cooldown)) != 0 ||
		!board.RequiredAsset.Equals(prm.RequiredAsset) ||
		board.Threshold.Cmp(big.NewInt(prm.TopContributorThreshold)) != 0 {
		log.Warn("on-chain board differs from the configured one",
			zap.Stringer("authority", board.Authority),
			zap.Stringer("cooldown", board.Cooldown),
			zap.Stringer("asset", board.RequiredAsset),
			zap.Stringer("threshold", board.Threshold))
		return
	}

	log.Debug("board is already initialized")
}

// awaitTx waits for the transaction sent by act and checks it was
// successfully executed.
func awaitTx(ctx context.Context, act *actor.Actor, txHash util.Uint256, vub uint32, err error) error {
	if err != nil {
		return fmt.Errorf("send transaction: %w", err)
	}

	res, err := act.WaitAny(ctx, vub, txHash)
	if err != nil {
		return fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}

	if res.VMState != vmstate.Halt {
		return fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), res.FaultException)
	}

	return nil
}

func isErrContractNotFound(err error) bool {
	return strings.Contains(err.Error(), "Unknown contract")
}
