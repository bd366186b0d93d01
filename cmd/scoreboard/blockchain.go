package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/urfave/cli"
)

// wrapper over rpcclient providing blockchain services needed for commands.
type remoteBlockchain struct {
	rpc     *rpcclient.Client
	timeout time.Duration
}

// newRemoteBlockchain dials Neo RPC server configured in global flags.
// Connection and all requests are done within the configured timeout.
func newRemoteBlockchain(ctx context.Context, c *cli.Context) (*remoteBlockchain, error) {
	endpoint := c.GlobalString("rpc-endpoint")
	if endpoint == "" {
		return nil, cli.NewExitError("missing Neo RPC endpoint", 1)
	}
	timeout := c.GlobalDuration("timeout")

	cl, err := rpcclient.New(ctx, endpoint, rpcclient.Options{
		DialTimeout:    timeout,
		RequestTimeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = cl.Init()
	if err != nil {
		cl.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	return &remoteBlockchain{
		rpc:     cl,
		timeout: timeout,
	}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

func (x *remoteBlockchain) invoker() *invoker.Invoker {
	return invoker.New(x.rpc, nil)
}

func (x *remoteBlockchain) actor(acc *wallet.Account) (*actor.Actor, error) {
	act, err := actor.NewSimple(x.rpc, acc)
	if err != nil {
		return nil, fmt.Errorf("init actor: %w", err)
	}
	return act, nil
}

// await waits for the transaction sent by act and returns its execution
// result if it was successful.
func (x *remoteBlockchain) await(act *actor.Actor, txHash util.Uint256, vub uint32, err error) (*state.AppExecResult, error) {
	if err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), x.timeout)
	defer cancel()

	res, err := act.WaitAny(ctx, vub, txHash)
	if err != nil {
		return nil, fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}
	if res.VMState != vmstate.Halt {
		return nil, fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), res.FaultException)
	}
	return res, nil
}
