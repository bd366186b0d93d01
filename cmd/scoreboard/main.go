package main

import (
	"fmt"
	"os"
	"time"

	"github.com/nspcc-dev/reputation-scoreboard/common"
	"github.com/urfave/cli"
)

// Version is the application version, set at build time.
var Version = "dev"

func main() {
	app := newApp()

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "scoreboard"
	app.Usage = "Reputation Scoreboard contract tool"
	app.Version = fmt.Sprintf("%s (contract %d)", Version, common.Version)
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "rpc-endpoint, r",
			Usage:  "Network address of the Neo RPC server",
			EnvVar: "SCOREBOARD_RPC_ENDPOINT",
		},
		cli.DurationFlag{
			Name:  "timeout, t",
			Usage: "Timeout of RPC requests and transaction awaiting",
			Value: time.Minute,
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "Logging level (debug, info, warn, error)",
			Value: "info",
		},
	}
	app.Commands = []cli.Command{
		deployCommand(),
		initializeCommand(),
		voteCommand("upvote", "Increase reputation of the target by one"),
		voteCommand("downvote", "Decrease reputation of the target by one"),
		resetCommand(),
		unlockCommand(),
		showCommand(),
		watchCommand(),
	}
	return app
}
