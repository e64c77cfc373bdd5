package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/orbit-xyz/go-orbit/eventstream"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	configPath := configFlag(fs)
	types := fs.String("types", "", "Comma-separated event types to include (default: all)")
	from := fs.Int("from", 0, "First stream version to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	ctx := context.Background()
	store, err := eventstream.NewSQLiteStore(cfg.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	var records []*eventstream.Event
	if *types != "" {
		filter := eventstream.Filter{Stream: cfg.Stream, Types: strings.Split(*types, ",")}
		records, err = store.ReadAll(ctx, filter)
	} else {
		records, err = store.Read(ctx, cfg.Stream, *from)
	}
	if err != nil {
		return err
	}

	for _, e := range records {
		fmt.Printf("%4d  %-20s %s  %s\n", e.Version, e.Type,
			e.CreatedAt.Format("2006-01-02 15:04:05"), string(e.Data))
	}
	return nil
}
