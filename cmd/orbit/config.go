package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/holiman/uint256"

	"github.com/orbit-xyz/go-orbit/eventstream"
	"github.com/orbit-xyz/go-orbit/journal"
	"github.com/orbit-xyz/go-orbit/token"
)

// Config is the orbit.toml layout. The token section carries the
// construction-time parameters; they must not change once the stream
// exists, since the ledger is rebuilt from the stream against them.
type Config struct {
	DB     string      `toml:"db"`
	Stream string      `toml:"stream"`
	Token  TokenConfig `toml:"token"`
}

// TokenConfig mirrors token.Config with TOML-friendly field types.
type TokenConfig struct {
	SupplyCap        string `toml:"supply_cap"`
	Authority        string `toml:"authority"`
	LiquidityReserve string `toml:"liquidity_reserve"`
	Treasury         string `toml:"treasury"`
	BurnTarget       string `toml:"burn_target"`
	Custody          string `toml:"custody"`
	VestStartHeight  uint64 `toml:"vest_start_height"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.DB == "" {
		cfg.DB = "orbit.db"
	}
	if cfg.Stream == "" {
		cfg.Stream = "orbit"
	}
	return cfg, nil
}

func (c Config) tokenConfig() (token.Config, error) {
	supply, err := uint256.FromDecimal(c.Token.SupplyCap)
	if err != nil {
		return token.Config{}, fmt.Errorf("parse supply_cap: %w", err)
	}
	return token.Config{
		SupplyCap:        supply,
		Authority:        token.Address(c.Token.Authority),
		LiquidityReserve: token.Address(c.Token.LiquidityReserve),
		Treasury:         token.Address(c.Token.Treasury),
		BurnTarget:       token.Address(c.Token.BurnTarget),
		Custody:          token.Address(c.Token.Custody),
		VestStartHeight:  c.Token.VestStartHeight,
	}, nil
}

// configFlag registers the shared --config flag on a flag set.
func configFlag(fs *flag.FlagSet) *string {
	return fs.String("config", "orbit.toml", "Path to the ledger config file")
}

// callFlags registers the shared --caller and --height flags.
func callFlags(fs *flag.FlagSet) (*string, *uint64) {
	caller := fs.String("caller", "", "Calling address (required)")
	height := fs.Uint64("height", 0, "Current block height")
	return caller, height
}

// openLedger opens the event store and rebuilds the ledger by replay.
func openLedger(ctx context.Context, cfg Config) (*token.Token, eventstream.Store, error) {
	tokCfg, err := cfg.tokenConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := eventstream.NewSQLiteStore(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	version, err := store.StreamVersion(ctx, cfg.Stream)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	if version < 0 {
		store.Close()
		return nil, nil, fmt.Errorf("stream %q is empty; run orbit init first", cfg.Stream)
	}
	tok, err := journal.Load(ctx, store, cfg.Stream, tokCfg)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return tok, store, nil
}

// record persists drained ledger events after a successful operation.
func record(ctx context.Context, store eventstream.Store, stream string, tok *token.Token) error {
	events := tok.DrainEvents()
	version, err := journal.Persist(ctx, store, stream, events)
	if err != nil {
		return fmt.Errorf("record events: %w", err)
	}
	log.Info().Int("version", version).Int("events", len(events)).Msg("recorded")
	return nil
}

func parseAmount(s string) (*uint256.Int, error) {
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return amount, nil
}
