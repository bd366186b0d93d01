package main

import (
	"fmt"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/reputation-scoreboard/rpc/scoreboard"
	"github.com/urfave/cli"
	"golang.org/x/term"
)

var walletFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "wallet, w",
		Usage: "Path to the NEP-6 wallet file",
	},
	cli.StringFlag{
		Name:  "address, a",
		Usage: "Wallet account to sign with (default account if not set)",
	},
	cli.StringFlag{
		Name:   "password",
		Usage:  "Wallet account password (asked interactively if not set)",
		EnvVar: "SCOREBOARD_WALLET_PASSWORD",
	},
}

// openAccount reads the wallet configured in walletFlags and returns its
// decrypted account.
func openAccount(c *cli.Context) (*wallet.Account, error) {
	path := c.String("wallet")
	if path == "" {
		return nil, cli.NewExitError("missing wallet", 1)
	}

	w, err := wallet.NewWalletFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wallet: %w", err)
	}
	defer w.Close()

	var h util.Uint160
	if addr := c.String("address"); addr != "" {
		h, err = scoreboard.ParseAccount(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid account: %w", err)
		}
	} else {
		h = w.GetChangeAddress()
	}

	acc := w.GetAccount(h)
	if acc == nil {
		return nil, fmt.Errorf("account %s is missing in the wallet", h.StringLE())
	}

	password := c.String("password")
	if password == "" && !c.IsSet("password") {
		password, err = readPassword(acc.Address)
		if err != nil {
			return nil, err
		}
	}

	err = acc.Decrypt(password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
	}

	return acc, nil
}

func readPassword(address string) (string, error) {
	fmt.Fprintf(os.Stderr, "Password for %s: ", address)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pass), nil
}
