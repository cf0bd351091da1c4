package main

import (
	"fmt"

	"github.com/IvanBrykalov/tiercache/cache"
	"github.com/btcsuite/btclog/v2"
	"github.com/jessevdk/go-flags"
)

// config holds the command line options of tierbench.
type config struct {
	Levels   int    `long:"levels" description:"Number of cache levels" default:"3"`
	Capacity int    `long:"capacity" description:"Size budget of every level" default:"200"`
	Policy   string `long:"policy" short:"p" description:"Eviction policy used by inserts" choice:"lru" choice:"mru" default:"lru"`

	Ops      int   `long:"ops" short:"n" description:"Operations per replica" default:"100000"`
	Replicas int   `long:"replicas" short:"r" description:"Independent caches replaying the same workload concurrently" default:"4"`
	Seed     int64 `long:"seed" description:"Workload seed; replicas share it" default:"1"`

	Keys    int `long:"keys" description:"Distinct item ids" default:"1000"`
	Headers int `long:"headers" description:"Distinct item headers" default:"32"`
	MaxSize int `long:"maxsize" description:"Largest item size drawn (sizes above --capacity are rejected)" default:"64"`
	Lookups int `long:"lookups" description:"Lookup percentage [0..100]" default:"70"`
	Updates int `long:"updates" description:"Update percentage [0..100]; the rest are inserts" default:"10"`

	DebugLevel string `long:"debuglevel" short:"d" description:"Logging level: trace, debug, info, warn, error, critical, off" default:"info"`
	Dump       bool   `long:"dump" description:"Print the final state of the first replica"`
}

// loadConfig parses args (without the program name) and validates the result.
// Parse errors are returned, not printed; the caller reports them once.
func loadConfig(args []string) (*config, error) {
	cfg := &config{}
	parser := flags.NewParser(cfg, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	switch {
	case cfg.Levels <= 0:
		return nil, fmt.Errorf("--levels must be positive, got %d",
			cfg.Levels)

	case cfg.Capacity <= 0:
		return nil, fmt.Errorf("--capacity must be positive, got %d",
			cfg.Capacity)

	case cfg.Ops < 0 || cfg.Keys <= 0 || cfg.Headers <= 0 ||
		cfg.MaxSize < 0:

		return nil, fmt.Errorf("--ops, --keys, --headers and --maxsize " +
			"must be non-negative (keys and headers positive)")

	case cfg.Replicas <= 0:
		return nil, fmt.Errorf("--replicas must be positive, got %d",
			cfg.Replicas)

	case cfg.Lookups < 0 || cfg.Updates < 0 ||
		cfg.Lookups+cfg.Updates > 100:

		return nil, fmt.Errorf("--lookups + --updates must be within "+
			"[0, 100], got %d + %d", cfg.Lookups, cfg.Updates)
	}

	if _, err := cache.ParsePolicy(cfg.Policy); err != nil {
		return nil, err
	}
	if _, ok := btclog.LevelFromString(cfg.DebugLevel); !ok {
		return nil, fmt.Errorf("invalid --debuglevel %q", cfg.DebugLevel)
	}

	return cfg, nil
}
