package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/orbit-xyz/go-orbit/token"
)

func balance(args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	configPath := configFlag(fs)
	addr := fs.String("address", "", "Address to query (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *addr == "" {
		return fmt.Errorf("--address is required")
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

	fmt.Printf("%s: %s\n", *addr, tok.BalanceOf(token.Address(*addr)).Dec())
	return nil
}

func transfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	configPath := configFlag(fs)
	caller, height := callFlags(fs)
	to := fs.String("to", "", "Recipient address (required)")
	amountStr := fs.String("amount", "", "Amount to move (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *to == "" || *amountStr == "" {
		return fmt.Errorf("--caller, --to, and --amount are required")
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
	if err := tok.Transfer(call, token.Address(*to), amount); err != nil {
		return err
	}
	if err := record(ctx, store, cfg.Stream, tok); err != nil {
		return err
	}
	log.Info().Str("from", *caller).Str("to", *to).Str("amount", amount.Dec()).Msg("transfer")
	return nil
}

func approve(args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	configPath := configFlag(fs)
	caller, height := callFlags(fs)
	spender := fs.String("spender", "", "Spender address (required)")
	amountStr := fs.String("amount", "", "Allowance to set (required; use 'max' for unlimited)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *spender == "" || *amountStr == "" {
		return fmt.Errorf("--caller, --spender, and --amount are required")
	}

	amount := token.Unlimited()
	if *amountStr != "max" {
		var err error
		amount, err = parseAmount(*amountStr)
		if err != nil {
			return err
		}
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
	if err := tok.Approve(call, token.Address(*spender), amount); err != nil {
		return err
	}
	if err := record(ctx, store, cfg.Stream, tok); err != nil {
		return err
	}
	log.Info().Str("owner", *caller).Str("spender", *spender).Msg("approved")
	return nil
}

func transferFrom(args []string) error {
	fs := flag.NewFlagSet("transferfrom", flag.ExitOnError)
	configPath := configFlag(fs)
	caller, height := callFlags(fs)
	from := fs.String("from", "", "Owner address (required)")
	to := fs.String("to", "", "Recipient address (required)")
	amountStr := fs.String("amount", "", "Amount to move (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *from == "" || *to == "" || *amountStr == "" {
		return fmt.Errorf("--caller, --from, --to, and --amount are required")
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
	if err := tok.TransferFrom(call, token.Address(*from), token.Address(*to), amount); err != nil {
		return err
	}
	if err := record(ctx, store, cfg.Stream, tok); err != nil {
		return err
	}
	log.Info().Str("from", *from).Str("to", *to).Str("amount", amount.Dec()).Msg("transfer from")
	return nil
}
