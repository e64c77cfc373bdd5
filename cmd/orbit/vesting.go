package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/orbit-xyz/go-orbit/token"
)

func vest(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: orbit vest <schedule|claim|claimable> [options]")
	}
	switch args[0] {
	case "schedule":
		return vestSchedule(args[1:])
	case "claim":
		return vestClaim(args[1:])
	case "claimable":
		return vestClaimable(args[1:])
	default:
		return fmt.Errorf("unknown vest subcommand: %s", args[0])
	}
}

func vestSchedule(args []string) error {
	fs := flag.NewFlagSet("vest schedule", flag.ExitOnError)
	configPath := configFlag(fs)
	caller, height := callFlags(fs)
	beneficiary := fs.String("beneficiary", "", "Grant beneficiary (required)")
	amountStr := fs.String("amount", "", "Amount to escrow (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *beneficiary == "" || *amountStr == "" {
		return fmt.Errorf("--caller, --beneficiary, and --amount are required")
	}
	amount, err := parseAmount(*amountStr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	ctx := context.Background()
	tok, store, err := openLedger(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	call := token.Call{Caller: token.Address(*caller), Height: *height}
	if err := tok.ScheduleVesting(call, token.Address(*beneficiary), amount); err != nil {
		return err
	}
	if err := record(ctx, store, cfg.Stream, tok); err != nil {
		return err
	}
	log.Info().Str("beneficiary", *beneficiary).Str("amount", amount.Dec()).Msg("vesting scheduled")
	return nil
}

func vestClaim(args []string) error {
	fs := flag.NewFlagSet("vest claim", flag.ExitOnError)
	configPath := configFlag(fs)
	caller, height := callFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" {
		return fmt.Errorf("--caller is required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	ctx := context.Background()
	tok, store, err := openLedger(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	call := token.Call{Caller: token.Address(*caller), Height: *height}
	if err := tok.ClaimVested(call); err != nil {
		return err
	}
	if err := record(ctx, store, cfg.Stream, tok); err != nil {
		return err
	}
	g := tok.Grant(token.Address(*caller))
	log.Info().Str("claimed", g.Claimed.Dec()).Str("total", g.Total.Dec()).Msg("vesting claimed")
	return nil
}

func vestClaimable(args []string) error {
	fs := flag.NewFlagSet("vest claimable", flag.ExitOnError)
	configPath := configFlag(fs)
	beneficiary := fs.String("beneficiary", "", "Grant beneficiary (required)")
	height := fs.Uint64("height", 0, "Height to evaluate at")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *beneficiary == "" {
		return fmt.Errorf("--beneficiary is required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	ctx := context.Background()
	tok, store, err := openLedger(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	claimable := tok.ClaimableVested(token.Address(*beneficiary), *height)
	fmt.Printf("%s claimable at height %d: %s\n", *beneficiary, *height, claimable.Dec())
	return nil
}
