// Command lotus-sc inspects, deploys and runs lotus scripts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lotus-sim/lotus-script-go/host"
)

const usage = `Usage: lotus-sc <command> [flags]

Commands:
  info   -path <file.wasm> [-json]    Print the variables a script declares
  deploy [-user-id N -sub-id N]       Build the script and copy it into the LOTUS overrides
  run    -path <file.wasm> [-i]       Step a script in a simulated vehicle
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	log, err := newLogger(os.Getenv("LOTUS_SC_DEBUG") != "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	host.SetLogger(log)
	zap.ReplaceGlobals(log)

	ctx := context.Background()
	args := os.Args[2:]

	switch os.Args[1] {
	case "info":
		err = infoCommand(ctx, args)
	case "deploy":
		err = deployCommand(ctx, log, args)
	case "run":
		err = runCommand(ctx, args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(1)
	}

	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
