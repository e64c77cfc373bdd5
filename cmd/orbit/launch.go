package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/orbit-xyz/go-orbit/eventstream"
	"github.com/orbit-xyz/go-orbit/token"
)

func initLedger(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := configFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	tokCfg, err := cfg.tokenConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := eventstream.NewSQLiteStore(cfg.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	version, err := store.StreamVersion(ctx, cfg.Stream)
	if err != nil {
		return err
	}
	if version >= 0 {
		return fmt.Errorf("stream %q already initialized (version %d)", cfg.Stream, version)
	}

	tok, err := token.New(tokCfg)
	if err != nil {
		return err
	}
	if err := record(ctx, store, cfg.Stream, tok); err != nil {
		return err
	}

	log.Info().
		Str("db", cfg.DB).
		Str("stream", cfg.Stream).
		Str("supply", tok.TotalSupply().Dec()).
		Str("authority", string(tokCfg.Authority)).
		Msg("ledger initialized")
	return nil
}

func status(args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := configFlag(fs)
	height := fs.Uint64("height", 0, "Current block height (for unlock check)")
	if err := fs.Parse(args); err != nil {
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

	fmt.Printf("Token:          %s (%s), %d decimals\n", token.TokenName, token.TokenSymbol, token.TokenDecimals)
	fmt.Printf("Phase:          %s\n", tok.Phase())
	fmt.Printf("Committed:      %v\n", tok.TrajectoryCommitted())
	fmt.Printf("Total supply:   %s\n", tok.TotalSupply().Dec())
	fmt.Printf("Total burned:   %s\n", tok.TotalBurned().Dec())
	fmt.Printf("Transfers:      %d\n", tok.TransferCount())
	fmt.Printf("Unlock height:  %d (unlocked at %d: %v)\n",
		tok.LaunchUnlockHeight(), *height, tok.IsLaunchUnlocked(*height))
	fmt.Printf("Mission log:    %d/%d entries\n", tok.MissionLogLength(), token.MissionLogCapacity)
	return nil
}

func commitTrajectory(args []string) error {
	fs := flag.NewFlagSet("commit", flag.ExitOnError)
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
	if err := tok.CommitTrajectory(call); err != nil {
		return err
	}
	if err := record(ctx, store, cfg.Stream, tok); err != nil {
		return err
	}
	log.Info().Uint64("height", *height).Msg("trajectory committed")
	return nil
}

func ignitionBurn(args []string) error {
	fs := flag.NewFlagSet("burn", flag.ExitOnError)
	configPath := configFlag(fs)
	caller, height := callFlags(fs)
	amountStr := fs.String("amount", "", "Amount to burn (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *amountStr == "" {
		return fmt.Errorf("--caller and --amount are required")
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
	if err := tok.ExecuteIgnitionBurn(call, amount); err != nil {
		return err
	}
	if err := record(ctx, store, cfg.Stream, tok); err != nil {
		return err
	}
	log.Info().Str("amount", amount.Dec()).Str("total", tok.TotalBurned().Dec()).Msg("ignition burn")
	return nil
}
