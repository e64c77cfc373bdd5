package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/orbit-xyz/go-orbit/token"
)

func missionLog(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: orbit log <append|show|len> [options]")
	}
	switch args[0] {
	case "append":
		return logAppend(args[1:])
	case "show":
		return logShow(args[1:])
	case "len":
		return logLen(args[1:])
	default:
		return fmt.Errorf("unknown log subcommand: %s", args[0])
	}
}

func logAppend(args []string) error {
	fs := flag.NewFlagSet("log append", flag.ExitOnError)
	configPath := configFlag(fs)
	caller, height := callFlags(fs)
	valueStr := fs.String("value", "0", "Numeric value to record")
	content := fs.String("tag", "", "Tag content; hashed to the fixed-size label (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *content == "" {
		return fmt.Errorf("--caller and --tag are required")
	}
	value, err := parseAmount(*valueStr)
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

	tag := token.HashTag([]byte(*content))
	call := token.Call{Caller: token.Address(*caller), Height: *height}
	if err := tok.LogMission(call, value, tag); err != nil {
		return err
	}
	if err := record(ctx, store, cfg.Stream, tok); err != nil {
		return err
	}
	log.Info().Int("index", tok.MissionLogLength()-1).Str("tag", tag.String()).Msg("mission logged")
	return nil
}

func logShow(args []string) error {
	fs := flag.NewFlagSet("log show", flag.ExitOnError)
	configPath := configFlag(fs)
	index := fs.Int("index", -1, "Entry index (-1 for all)")
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

	if *index >= 0 {
		entry, err := tok.MissionLogEntry(*index)
		if err != nil {
			return err
		}
		fmt.Printf("[%d] height=%d value=%s tag=%s\n", *index, entry.Height, entry.Value.Dec(), entry.Tag)
		return nil
	}
	for i := 0; i < tok.MissionLogLength(); i++ {
		entry, err := tok.MissionLogEntry(i)
		if err != nil {
			return err
		}
		fmt.Printf("[%d] height=%d value=%s tag=%s\n", i, entry.Height, entry.Value.Dec(), entry.Tag)
	}
	return nil
}

func logLen(args []string) error {
	fs := flag.NewFlagSet("log len", flag.ExitOnError)
	configPath := configFlag(fs)
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

	fmt.Printf("%d/%d\n", tok.MissionLogLength(), token.MissionLogCapacity)
	return nil
}
