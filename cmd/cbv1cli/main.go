package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thrasher-corp/coinbasev1/encoding/json"
	"github.com/thrasher-corp/coinbasev1/exchanges/request"
	"github.com/thrasher-corp/coinbasev1/log"
	"github.com/urfave/cli/v2"
)

var (
	configPath    string
	verbose       bool
	timeout       time.Duration
	ignoreTimeout bool
)

const defaultTimeout = time.Minute

func jsonOutput(in any) {
	j, err := json.MarshalIndent(in, "", " ")
	if err != nil {
		return
	}
	fmt.Println(string(j))
}

// withTimeout bounds the command context unless the user disabled it
func withTimeout(c *cli.Context) (context.Context, context.CancelFunc) {
	ctx := c.Context
	if verbose {
		ctx = request.WithVerbose(ctx)
	}
	if ignoreTimeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "cbv1cli"
	app.EnableBashCompletion = true
	app.Usage = "command line interface for the Coinbase v1 REST API"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "the config file to load, defaults to the data directory config",
			Destination: &configPath,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "logs every request and response",
			Destination: &verbose,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Value:       defaultTimeout,
			Usage:       "the overall timeout for a command",
			Destination: &timeout,
		},
		&cli.BoolFlag{
			Name:        "ignoretimeout",
			Usage:       "runs commands without a timeout",
			Destination: &ignoreTimeout,
		},
	}
	app.Commands = []*cli.Command{
		authCommand,
		userCommand,
		balanceCommand,
		accountsCommand,
		accountBalanceCommand,
		transactionsCommand,
		transfersCommand,
		addressesCommand,
		contactsCommand,
		applicationsCommand,
		paymentMethodsCommand,
	}
	return app
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := newApp()
	err := app.RunContext(ctx, os.Args)
	if closeErr := log.CloseLogger(); closeErr != nil {
		fmt.Fprintln(os.Stderr, closeErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
