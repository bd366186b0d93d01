package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/reputation-scoreboard/contracts"
	"github.com/nspcc-dev/reputation-scoreboard/deploy"
	"github.com/nspcc-dev/reputation-scoreboard/rpc/scoreboard"
	"github.com/nspcc-dev/reputation-scoreboard/watcher"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var contractFlag = cli.StringFlag{
	Name:   "contract, c",
	Usage:  "Scoreboard contract address or script hash",
	EnvVar: "SCOREBOARD_CONTRACT",
}

var boardFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "authority",
		Usage: "Account allowed to reset scores (signing account if not set)",
	},
	cli.Int64Flag{
		Name:  "cooldown",
		Usage: "Seconds between two votes of the same voter for the same target",
		Value: 60,
	},
	cli.StringFlag{
		Name:  "asset",
		Usage: "NEP-17 token voters must hold (GAS if not set)",
	},
	cli.Int64Flag{
		Name:  "threshold",
		Usage: "Reputation required to unlock top_contributor role",
		Value: 10,
	},
}

func deployCommand() cli.Command {
	return cli.Command{
		Name:  "deploy",
		Usage: "Deploy the contract and create the board",
		Flags: append(append([]cli.Flag{
			cli.StringFlag{
				Name:  "artifacts",
				Usage: "Directory with compiled contract.nef and manifest.json",
				Value: contracts.ScoreboardDir,
			},
			cli.BoolFlag{
				Name:  "update",
				Usage: "Update the deployed contract if it differs from the local one",
			},
		}, walletFlags...), boardFlags...),
		Action: deployAction,
	}
}

func deployAction(c *cli.Context) error {
	log, err := newLogger(c.GlobalString("log-level"))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctr, err := contracts.ReadDir(c.String("artifacts"))
	if err != nil {
		return fmt.Errorf("read contract artifacts: %w", err)
	}

	acc, err := openAccount(c)
	if err != nil {
		return err
	}

	board, err := parseBoard(c, acc.ScriptHash())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.GlobalDuration("timeout"))
	defer cancel()

	b, err := newRemoteBlockchain(ctx, c)
	if err != nil {
		return err
	}
	defer b.close()

	h, err := deploy.Deploy(ctx, deploy.Prm{
		Logger:       log,
		Blockchain:   b.rpc,
		LocalAccount: acc,
		Contract: deploy.CommonDeployPrm{
			NEF:      ctr.NEF,
			Manifest: ctr.Manifest,
		},
		Board:       board,
		AllowUpdate: c.Bool("update"),
	})
	if err != nil {
		return fmt.Errorf("deploy: %w", err)
	}

	fmt.Fprintln(c.App.Writer, address.Uint160ToString(h))
	return nil
}

func initializeCommand() cli.Command {
	return cli.Command{
		Name:   "initialize",
		Usage:  "Create the board of the already deployed contract",
		Flags:  append(append([]cli.Flag{contractFlag}, walletFlags...), boardFlags...),
		Action: initializeAction,
	}
}

func initializeAction(c *cli.Context) error {
	return withContract(c, func(await awaitFunc, ctr *scoreboard.Contract, signer util.Uint160) error {
		board, err := parseBoard(c, signer)
		if err != nil {
			return err
		}
		if !board.Authority.Equals(signer) {
			return cli.NewExitError("board must be initialized by the authority account", 1)
		}

		_, err = await(ctr.Initialize(board.Authority, big.NewInt(board.Cooldown),
			board.RequiredAsset, big.NewInt(board.TopContributorThreshold)))
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}

		fmt.Fprintln(c.App.Writer, "board initialized")
		return nil
	})
}

func voteCommand(name, usage string) cli.Command {
	return cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<target>",
		Flags: append([]cli.Flag{
			contractFlag,
			cli.StringFlag{
				Name:  "asset",
				Usage: "Token to vote with (board's required asset if not set)",
			},
		}, walletFlags...),
		Action: func(c *cli.Context) error {
			return voteAction(c, name == "upvote")
		},
	}
}

func voteAction(c *cli.Context, up bool) error {
	target, err := parseArgAccount(c, "target")
	if err != nil {
		return err
	}

	return withContract(c, func(await awaitFunc, ctr *scoreboard.Contract, signer util.Uint160) error {
		asset, err := parseOptionalAccount(c, "asset")
		if err != nil {
			return err
		}
		if asset == nil {
			board, err := ctr.Board()
			if err != nil {
				return fmt.Errorf("read board: %w", err)
			}
			asset = &board.RequiredAsset
		}

		send := ctr.Downvote
		if up {
			send = ctr.Upvote
		}

		res, err := await(send(signer, target, *asset))
		if err != nil {
			return fmt.Errorf("vote: %w", err)
		}
		if len(res.Stack) != 1 {
			return fmt.Errorf("unexpected result stack length %d", len(res.Stack))
		}

		score, err := res.Stack[0].TryInteger()
		if err != nil {
			return fmt.Errorf("invalid score: %w", err)
		}

		fmt.Fprintf(c.App.Writer, "reputation of %s: %s\n", address.Uint160ToString(target), score)
		return nil
	})
}

func resetCommand() cli.Command {
	return cli.Command{
		Name:      "reset",
		Usage:     "Reset reputation of the target to zero (authority only)",
		ArgsUsage: "<target>",
		Flags:     append([]cli.Flag{contractFlag}, walletFlags...),
		Action:    resetAction,
	}
}

func resetAction(c *cli.Context) error {
	target, err := parseArgAccount(c, "target")
	if err != nil {
		return err
	}

	return withContract(c, func(await awaitFunc, ctr *scoreboard.Contract, signer util.Uint160) error {
		_, err := await(ctr.ResetScore(signer, target))
		if err != nil {
			return fmt.Errorf("reset score: %w", err)
		}

		fmt.Fprintf(c.App.Writer, "reputation of %s reset\n", address.Uint160ToString(target))
		return nil
	})
}

func unlockCommand() cli.Command {
	return cli.Command{
		Name:      "unlock",
		Usage:     "Unlock top_contributor role of the subject",
		ArgsUsage: "<subject>",
		Flags:     append([]cli.Flag{contractFlag}, walletFlags...),
		Action:    unlockAction,
	}
}

func unlockAction(c *cli.Context) error {
	subject, err := parseArgAccount(c, "subject")
	if err != nil {
		return err
	}

	return withContract(c, func(await awaitFunc, ctr *scoreboard.Contract, _ util.Uint160) error {
		res, err := await(ctr.UnlockRole(subject))
		if err != nil {
			return fmt.Errorf("unlock role: %w", err)
		}

		unlocked := len(res.Stack) == 1
		if unlocked {
			unlocked, err = res.Stack[0].TryBool()
			if err != nil {
				return fmt.Errorf("invalid result: %w", err)
			}
		}

		if unlocked {
			fmt.Fprintf(c.App.Writer, "role unlocked for %s\n", address.Uint160ToString(subject))
		} else {
			fmt.Fprintf(c.App.Writer, "%s already has the role\n", address.Uint160ToString(subject))
		}
		return nil
	})
}

func showCommand() cli.Command {
	return cli.Command{
		Name:      "show",
		Usage:     "Print the board or the reputation of the subject",
		ArgsUsage: "[subject]",
		Flags: []cli.Flag{
			contractFlag,
			cli.StringFlag{
				Name:  "voter",
				Usage: "Also print the time of the last vote of this account for the subject",
			},
		},
		Action: showAction,
	}
}

func showAction(c *cli.Context) error {
	contractHash, err := parseRequiredAccount(c, "contract")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.GlobalDuration("timeout"))
	defer cancel()

	b, err := newRemoteBlockchain(ctx, c)
	if err != nil {
		return err
	}
	defer b.close()

	r := scoreboard.NewReader(b.invoker(), contractHash)
	w := c.App.Writer

	if c.NArg() == 0 {
		board, err := r.Board()
		if err != nil {
			return fmt.Errorf("read board: %w", err)
		}

		fmt.Fprintf(w, "authority: %s\n", address.Uint160ToString(board.Authority))
		fmt.Fprintf(w, "cooldown: %ss\n", board.Cooldown)
		fmt.Fprintf(w, "required asset: %s\n", board.RequiredAsset.StringLE())
		fmt.Fprintf(w, "threshold: %s\n", board.Threshold)
		return nil
	}

	subject, err := parseArgAccount(c, "subject")
	if err != nil {
		return err
	}

	entry, err := r.Entry(subject)
	switch {
	case scoreboard.IsEntryNotFound(err):
		fmt.Fprintf(w, "%s has no reputation entry\n", address.Uint160ToString(subject))
	case err != nil:
		return fmt.Errorf("read entry: %w", err)
	default:
		fmt.Fprintf(w, "reputation: %s\n", entry.Reputation)
		fmt.Fprintf(w, "top contributor: %t\n", entry.TopContributor)
	}

	voter, err := parseOptionalAccount(c, "voter")
	if err != nil || voter == nil {
		return err
	}

	last, err := r.LastVote(*voter, subject)
	if err != nil {
		return fmt.Errorf("read last vote: %w", err)
	}
	fmt.Fprintf(w, "last vote: %s\n", last)
	return nil
}

func watchCommand() cli.Command {
	return cli.Command{
		Name:  "watch",
		Usage: "Follow contract notifications and expose them as metrics",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "config, config-file",
				Usage: "Path to the watcher YAML configuration",
			},
		},
		Action: watchAction,
	}
}

func watchAction(c *cli.Context) error {
	path := c.String("config")
	if path == "" {
		return cli.NewExitError("missing watcher configuration", 1)
	}

	cfg, err := watcher.LoadConfig(path)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logger.Level)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	contractHash, err := scoreboard.ParseAccount(cfg.Contract)
	if err != nil {
		return fmt.Errorf("invalid contract address: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cl, err := rpcclient.New(ctx, cfg.RPC.Endpoint, rpcclient.Options{
		DialTimeout:    cfg.RPC.DialTimeout,
		RequestTimeout: cfg.RPC.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("RPC client dial: %w", err)
	}
	defer cl.Close()

	err = cl.Init()
	if err != nil {
		return fmt.Errorf("RPC client init: %w", err)
	}

	cp, err := watcher.OpenCheckpoint(cfg.Checkpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := cp.Close(); err != nil {
			log.Error("failed to close checkpoint", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	w, err := watcher.New(watcher.Prm{
		Logger:       log,
		Chain:        cl,
		Contract:     contractHash,
		Checkpoint:   cp,
		Metrics:      watcher.NewMetrics(reg),
		PollInterval: cfg.Poll,
		StartHeight:  cfg.Start,
	})
	if err != nil {
		return fmt.Errorf("init watcher: %w", err)
	}

	log.Info("watching scoreboard contract",
		zap.Stringer("contract", contractHash), zap.String("rpc", cfg.RPC.Endpoint))

	err = watcher.Serve(ctx, log, w, cfg.Metrics.Address, reg)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// awaitFunc waits for the sent transaction and returns its successful result.
type awaitFunc func(util.Uint256, uint32, error) (*state.AppExecResult, error)

// withContract opens the wallet account, connects to the RPC node and calls f
// with the contract binding signing transactions by that account.
func withContract(c *cli.Context, f func(awaitFunc, *scoreboard.Contract, util.Uint160) error) error {
	contractHash, err := parseRequiredAccount(c, "contract")
	if err != nil {
		return err
	}

	acc, err := openAccount(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.GlobalDuration("timeout"))
	defer cancel()

	b, err := newRemoteBlockchain(ctx, c)
	if err != nil {
		return err
	}
	defer b.close()

	act, err := b.actor(acc)
	if err != nil {
		return err
	}

	await := func(txHash util.Uint256, vub uint32, err error) (*state.AppExecResult, error) {
		return b.await(act, txHash, vub, err)
	}

	return f(await, scoreboard.New(act, contractHash), acc.ScriptHash())
}

func parseBoard(c *cli.Context, signer util.Uint160) (deploy.BoardPrm, error) {
	res := deploy.BoardPrm{
		Authority:               signer,
		Cooldown:                c.Int64("cooldown"),
		RequiredAsset:           gas.Hash,
		TopContributorThreshold: c.Int64("threshold"),
	}

	authority, err := parseOptionalAccount(c, "authority")
	if err != nil {
		return res, err
	}
	if authority != nil {
		res.Authority = *authority
	}

	asset, err := parseOptionalAccount(c, "asset")
	if err != nil {
		return res, err
	}
	if asset != nil {
		res.RequiredAsset = *asset
	}

	return res, nil
}

func parseOptionalAccount(c *cli.Context, flag string) (*util.Uint160, error) {
	s := c.String(flag)
	if s == "" {
		return nil, nil
	}

	h, err := scoreboard.ParseAccount(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return &h, nil
}

func parseRequiredAccount(c *cli.Context, flag string) (util.Uint160, error) {
	h, err := parseOptionalAccount(c, flag)
	if err != nil {
		return util.Uint160{}, err
	}
	if h == nil {
		return util.Uint160{}, cli.NewExitError(fmt.Sprintf("missing --%s", flag), 1)
	}
	return *h, nil
}

func parseArgAccount(c *cli.Context, name string) (util.Uint160, error) {
	if c.NArg() != 1 {
		return util.Uint160{}, cli.NewExitError(fmt.Sprintf("exactly one %s argument expected", name), 1)
	}

	h, err := scoreboard.ParseAccount(c.Args().First())
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return h, nil
}
