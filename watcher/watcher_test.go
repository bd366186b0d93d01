package watcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/block"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	cst "github.com/nspcc-dev/reputation-scoreboard/contracts/scoreboard/scoreboardconst"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"go.uber.org/zap/zaptest"
)

var (
	testContract  = util.Uint160{0xde, 0xad}
	otherContract = util.Uint160{0xbe, 0xef}
)

type testChain struct {
	blocks []*block.Block
	logs   map[util.Uint256]*result.ApplicationLog
	err    error
}

func newTestChain() *testChain {
	return &testChain{logs: make(map[util.Uint256]*result.ApplicationLog)}
}

func (c *testChain) GetBlockCount() (uint32, error) {
	if c.err != nil {
		return 0, c.err
	}
	return uint32(len(c.blocks)), nil
}

func (c *testChain) GetBlockByIndex(index uint32) (*block.Block, error) {
	if int(index) >= len(c.blocks) {
		return nil, errors.New("unknown block")
	}
	return c.blocks[index], nil
}

func (c *testChain) GetApplicationLog(hash util.Uint256, _ *trigger.Type) (*result.ApplicationLog, error) {
	l, ok := c.logs[hash]
	if !ok {
		return nil, errors.New("unknown transaction")
	}
	return l, nil
}

// addBlock appends a block with one transaction per execution.
func (c *testChain) addBlock(execs ...state.Execution) {
	index := uint32(len(c.blocks))
	b := &block.Block{Header: block.Header{Index: index}}

	for i := range execs {
		tx := transaction.New([]byte{byte(index), byte(i)}, 0)
		tx.Nonce = index<<8 | uint32(i)
		b.Transactions = append(b.Transactions, tx)
		c.logs[tx.Hash()] = &result.ApplicationLog{
			Container:  tx.Hash(),
			Executions: []state.Execution{execs[i]},
		}
	}

	c.blocks = append(c.blocks, b)
}

func halt(events ...state.NotificationEvent) state.Execution {
	return state.Execution{
		Trigger: trigger.Application,
		VMState: vmstate.Halt,
		Events:  events,
	}
}

func event(contract util.Uint160, name string, items ...any) state.NotificationEvent {
	arr := make([]stackitem.Item, len(items))
	for i := range items {
		arr[i] = stackitem.Make(items[i])
	}
	return state.NotificationEvent{
		ScriptHash: contract,
		Name:       name,
		Item:       stackitem.NewArray(arr),
	}
}

func voted(direction string, score int) state.NotificationEvent {
	return event(testContract, cst.UserVotedEvent,
		util.Uint160{1}.BytesBE(), util.Uint160{2}.BytesBE(), direction, score)
}

func newTestWatcher(t *testing.T, chain Chain, stor storage.Storage, start uint32) (*Watcher, *Metrics) {
	cp, err := NewCheckpoint(stor)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cp.Close() })

	m := NewMetrics(prometheus.NewRegistry())
	w, err := New(Prm{
		Logger:       zaptest.NewLogger(t),
		Chain:        chain,
		Contract:     testContract,
		Checkpoint:   cp,
		Metrics:      m,
		PollInterval: 10 * time.Millisecond,
		StartHeight:  start,
	})
	require.NoError(t, err)
	return w, m
}

func TestWatcher_Poll(t *testing.T) {
	chain := newTestChain()
	chain.addBlock()
	chain.addBlock(
		halt(event(testContract, cst.BoardInitializedEvent,
			util.Uint160{1}.BytesBE(), 60, util.Uint160{3}.BytesBE(), 5)),
		halt(voted(cst.DirectionUpvote, 1)),
	)
	chain.addBlock(
		halt(voted(cst.DirectionUpvote, 2), voted(cst.DirectionDownvote, 1)),
		state.Execution{VMState: vmstate.Fault, Events: []state.NotificationEvent{voted(cst.DirectionUpvote, 2)}},
		halt(event(otherContract, cst.UserVotedEvent,
			util.Uint160{1}.BytesBE(), util.Uint160{2}.BytesBE(), cst.DirectionUpvote, 1)),
	)
	chain.addBlock(
		halt(event(testContract, cst.RoleUnlockedEvent, util.Uint160{2}.BytesBE(), cst.RoleTopContributor, 5)),
		halt(event(testContract, cst.ScoreResetEvent, util.Uint160{1}.BytesBE(), util.Uint160{2}.BytesBE())),
	)

	w, m := newTestWatcher(t, chain, storage.NewMemStorage(), 0)
	require.NoError(t, w.poll(context.Background()))

	require.EqualValues(t, 1, testutil.ToFloat64(m.boards))
	require.EqualValues(t, 2, testutil.ToFloat64(m.votes.WithLabelValues(cst.DirectionUpvote)))
	require.EqualValues(t, 1, testutil.ToFloat64(m.votes.WithLabelValues(cst.DirectionDownvote)))
	require.EqualValues(t, 1, testutil.ToFloat64(m.unlocks))
	require.EqualValues(t, 1, testutil.ToFloat64(m.resets))
	require.EqualValues(t, 3, testutil.ToFloat64(m.height))

	h, ok, err := w.checkpoint.Height()
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 3, h)

	t.Run("nothing new", func(t *testing.T) {
		require.NoError(t, w.poll(context.Background()))
		require.EqualValues(t, 2, testutil.ToFloat64(m.votes.WithLabelValues(cst.DirectionUpvote)))
	})

	t.Run("malformed event", func(t *testing.T) {
		chain.addBlock(halt(event(testContract, cst.UserVotedEvent, 1)))
		require.Error(t, w.poll(context.Background()))

		h, _, err := w.checkpoint.Height()
		require.NoError(t, err)
		require.EqualValues(t, 3, h)
	})
}

func TestWatcher_Resume(t *testing.T) {
	chain := newTestChain()
	for i := 0; i < 3; i++ {
		chain.addBlock(halt(voted(cst.DirectionUpvote, i+1)))
	}

	stor := storage.NewMemStorage()

	cp, err := NewCheckpoint(stor)
	require.NoError(t, err)
	require.NoError(t, cp.Store(1))
	require.NoError(t, cp.Close())

	w, m := newTestWatcher(t, chain, stor, 0)
	require.EqualValues(t, 2, w.next)

	require.NoError(t, w.poll(context.Background()))
	require.EqualValues(t, 1, testutil.ToFloat64(m.votes.WithLabelValues(cst.DirectionUpvote)))
}

func TestWatcher_StartHeight(t *testing.T) {
	chain := newTestChain()
	for i := 0; i < 5; i++ {
		chain.addBlock(halt(voted(cst.DirectionDownvote, -i-1)))
	}

	w, m := newTestWatcher(t, chain, storage.NewMemStorage(), 3)
	require.NoError(t, w.poll(context.Background()))
	require.EqualValues(t, 2, testutil.ToFloat64(m.votes.WithLabelValues(cst.DirectionDownvote)))
}

func TestWatcher_Run(t *testing.T) {
	chain := newTestChain()
	chain.err = errors.New("node is down")

	w, m := newTestWatcher(t, chain, storage.NewMemStorage(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
	require.EqualValues(t, 0, testutil.ToFloat64(m.height))
}

func TestNew(t *testing.T) {
	cp, err := NewCheckpoint(storage.NewMemStorage())
	require.NoError(t, err)
	m := NewMetrics(prometheus.NewRegistry())

	_, err = New(Prm{Checkpoint: cp, Metrics: m, PollInterval: time.Second})
	require.Error(t, err)
	_, err = New(Prm{Chain: newTestChain(), Metrics: m, PollInterval: time.Second})
	require.Error(t, err)
	_, err = New(Prm{Chain: newTestChain(), Checkpoint: cp, PollInterval: time.Second})
	require.Error(t, err)
	_, err = New(Prm{Chain: newTestChain(), Checkpoint: cp, Metrics: m})
	require.Error(t, err)
	_, err = New(Prm{Chain: newTestChain(), Checkpoint: cp, Metrics: m, PollInterval: time.Second})
	require.NoError(t, err)
}
