package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "init":
		if err := initLedger(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "status":
		if err := status(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "balance":
		if err := balance(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "transfer":
		if err := transfer(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "approve":
		if err := approve(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "transferfrom":
		if err := transferFrom(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "commit":
		if err := commitTrajectory(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "burn":
		if err := ignitionBurn(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "vest":
		if err := vest(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "log":
		if err := missionLog(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "events":
		if err := events(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("orbit version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`orbit - fixed-supply launch-token ledger

Usage:
  orbit <command> [options]

Commands:
  init          Create the ledger stream from a config file
  status        Show phase, supply, and burn totals
  balance       Show the balance of an address
  transfer      Move funds from the caller to a recipient
  approve       Set an allowance for a spender
  transferfrom  Move funds on an allowance
  commit        Perform the one-time trajectory commit
  burn          Execute an ignition burn
  vest          Vesting operations (schedule, claim, claimable)
  log           Mission log operations (append, show, len)
  events        Show the notification stream
  help          Show this help message
  version       Show version information

Examples:
  # Create the ledger recorded in orbit.db
  orbit init --config orbit.toml

  # Move funds at height 42
  orbit transfer --config orbit.toml --caller 0xabc --height 42 --to 0xdef --amount 1000

  # Commit the launch allocation
  orbit commit --config orbit.toml --caller 0xauthority --height 100

All mutating commands take --caller and --height; the ledger never
guesses either.`)
}
