/*
Package watcher follows Reputation Scoreboard notifications on the chain.

Watcher polls blocks of a Neo RPC node, decodes Scoreboard notifications from
application logs of their transactions, logs them and counts them in
Prometheus metrics. The index of the last processed block is kept in LevelDB
so that a restarted watcher continues from where it stopped.
*/
package watcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/block"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	cst "github.com/nspcc-dev/reputation-scoreboard/contracts/scoreboard/scoreboardconst"
	"github.com/nspcc-dev/reputation-scoreboard/rpc/scoreboard"
	"go.uber.org/zap"
)

// Chain is a source of blocks and application logs.
type Chain interface {
	GetBlockCount() (uint32, error)
	GetBlockByIndex(index uint32) (*block.Block, error)
	GetApplicationLog(hash util.Uint256, trig *trigger.Type) (*result.ApplicationLog, error)
}

// Prm groups Watcher parameters.
type Prm struct {
	Logger     *zap.Logger
	Chain      Chain
	Contract   util.Uint160
	Checkpoint *Checkpoint
	Metrics    *Metrics

	// Polling period of the chain height.
	PollInterval time.Duration

	// Block to start from when there is no checkpoint.
	StartHeight uint32
}

// Watcher processes Scoreboard notifications block by block.
type Watcher struct {
	log          *zap.Logger
	chain        Chain
	contract     util.Uint160
	checkpoint   *Checkpoint
	metrics      *Metrics
	pollInterval time.Duration

	next uint32
}

// New creates Watcher resuming from the stored checkpoint if any.
func New(prm Prm) (*Watcher, error) {
	switch {
	case prm.Chain == nil:
		return nil, errors.New("missing chain")
	case prm.Checkpoint == nil:
		return nil, errors.New("missing checkpoint")
	case prm.Metrics == nil:
		return nil, errors.New("missing metrics")
	case prm.PollInterval <= 0:
		return nil, fmt.Errorf("non-positive poll interval %s", prm.PollInterval)
	}

	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}

	next := prm.StartHeight
	last, ok, err := prm.Checkpoint.Height()
	if err != nil {
		return nil, fmt.Errorf("read checkpoint: %w", err)
	}
	if ok {
		next = last + 1
	}

	return &Watcher{
		log:          prm.Logger,
		chain:        prm.Chain,
		contract:     prm.Contract,
		checkpoint:   prm.Checkpoint,
		metrics:      prm.Metrics,
		pollInterval: prm.PollInterval,
		next:         next,
	}, nil
}

// Run processes new blocks until ctx is done. Chain errors are logged and
// retried on the next poll.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Info("watching scoreboard notifications",
		zap.Stringer("contract", w.contract), zap.Uint32("from", w.next))

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		err := w.poll(ctx)
		if err != nil {
			w.log.Warn("chain polling failed", zap.Uint32("block", w.next), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped", zap.Uint32("next block", w.next))
			return nil
		case <-ticker.C:
		}
	}
}

// poll processes all blocks persisted since the previous call.
func (w *Watcher) poll(ctx context.Context) error {
	count, err := w.chain.GetBlockCount()
	if err != nil {
		return fmt.Errorf("get block count: %w", err)
	}

	for ; w.next < count; w.next++ {
		if ctx.Err() != nil {
			return nil
		}

		err = w.processBlock(w.next)
		if err != nil {
			return fmt.Errorf("process block %d: %w", w.next, err)
		}

		err = w.checkpoint.Store(w.next)
		if err != nil {
			return fmt.Errorf("store checkpoint: %w", err)
		}

		w.metrics.height.Set(float64(w.next))
	}

	return nil
}

func (w *Watcher) processBlock(index uint32) error {
	b, err := w.chain.GetBlockByIndex(index)
	if err != nil {
		return fmt.Errorf("get block: %w", err)
	}

	for _, tx := range b.Transactions {
		appLog, err := w.chain.GetApplicationLog(tx.Hash(), nil)
		if err != nil {
			return fmt.Errorf("get application log of %s: %w", tx.Hash().StringLE(), err)
		}

		err = w.processLog(contractEvents(appLog, w.contract))
		if err != nil {
			return fmt.Errorf("transaction %s: %w", tx.Hash().StringLE(), err)
		}
	}

	return nil
}

// contractEvents returns a copy of appLog with successful executions only
// and with notifications of the contract only.
func contractEvents(appLog *result.ApplicationLog, contract util.Uint160) *result.ApplicationLog {
	res := &result.ApplicationLog{Container: appLog.Container}

	for _, ex := range appLog.Executions {
		if ex.VMState != vmstate.Halt {
			continue
		}

		var events []state.NotificationEvent
		for _, e := range ex.Events {
			if e.ScriptHash.Equals(contract) {
				events = append(events, e)
			}
		}

		if len(events) > 0 {
			ex.Events = events
			res.Executions = append(res.Executions, ex)
		}
	}

	return res
}

func (w *Watcher) processLog(appLog *result.ApplicationLog) error {
	if len(appLog.Executions) == 0 {
		return nil
	}

	log := w.log.With(zap.Stringer("tx", appLog.Container))

	boards, err := scoreboard.BoardInitializedEventsFromApplicationLog(appLog)
	if err != nil {
		return err
	}
	for _, e := range boards {
		log.Info("board initialized",
			zap.Stringer("authority", e.Authority),
			zap.Stringer("cooldown", e.Cooldown),
			zap.Stringer("asset", e.RequiredAsset),
			zap.Stringer("threshold", e.Threshold))
		w.metrics.boards.Inc()
	}

	votes, err := scoreboard.UserVotedEventsFromApplicationLog(appLog)
	if err != nil {
		return err
	}
	for _, e := range votes {
		if e.Direction != cst.DirectionUpvote && e.Direction != cst.DirectionDownvote {
			log.Warn("unexpected vote direction", zap.String("direction", e.Direction))
			continue
		}
		log.Info("user voted",
			zap.Stringer("voter", e.Voter),
			zap.Stringer("target", e.Target),
			zap.String("direction", e.Direction),
			zap.Stringer("score", e.NewScore))
		w.metrics.votes.WithLabelValues(e.Direction).Inc()
	}

	resets, err := scoreboard.ScoreResetEventsFromApplicationLog(appLog)
	if err != nil {
		return err
	}
	for _, e := range resets {
		log.Info("score reset",
			zap.Stringer("authority", e.Authority),
			zap.Stringer("target", e.Target))
		w.metrics.resets.Inc()
	}

	unlocks, err := scoreboard.RoleUnlockedEventsFromApplicationLog(appLog)
	if err != nil {
		return err
	}
	for _, e := range unlocks {
		log.Info("role unlocked",
			zap.Stringer("subject", e.Subject),
			zap.String("role", e.Role),
			zap.Stringer("reputation", e.Reputation))
		w.metrics.unlocks.Inc()
	}

	return nil
}
