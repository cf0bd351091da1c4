// Command tierbench replays a seeded synthetic workload against independent
// tiered cache replicas, checks that every replica ends in the same state and
// reports the collected metrics.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/IvanBrykalov/tiercache/cache"
	pmet "github.com/IvanBrykalov/tiercache/metrics/prom"
	"github.com/btcsuite/btclog/v2"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// log is the command's logger; it is replaced once the config is parsed.
var log btclog.Logger = btclog.Disabled

// result summarizes one replica run.
type result struct {
	inserted, duplicates, oversized int
	hits, misses                    int
	updated, updateMisses           int

	entries int
	state   string
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, fe.Message)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Errorf("tierbench failed: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config) error {
	logger := btclog.NewSLogger(btclog.NewDefaultHandler(os.Stdout))
	lvl, _ := btclog.LevelFromString(cfg.DebugLevel)
	logger.SetLevel(lvl)
	log = logger
	cache.UseLogger(logger)

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	pol, err := cache.ParsePolicy(cfg.Policy)
	if err != nil {
		return err
	}

	log.Infof("policy=%s levels=%d capacity=%d replicas=%d ops=%d "+
		"keys=%d headers=%d seed=%d", pol.Name(), cfg.Levels,
		cfg.Capacity, cfg.Replicas, cfg.Ops, cfg.Keys, cfg.Headers,
		cfg.Seed)

	reg := prometheus.NewRegistry()
	results := make([]result, cfg.Replicas)

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Replicas; i++ {
		// Each replica owns its cache; only the collectors are shared.
		m := pmet.New(reg, "tier", "bench", prometheus.Labels{
			"replica": strconv.Itoa(i),
		})
		c := cache.New[int, string](cache.Options[int, string]{
			Levels:   cfg.Levels,
			Capacity: cfg.Capacity,
			Metrics:  m,
		})

		g.Go(func() error {
			res, err := replay(ctx, cfg, c)
			if err != nil {
				return fmt.Errorf("replica %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	for i, r := range results {
		if r.state != results[0].state {
			return fmt.Errorf("replica %d diverged from replica 0", i)
		}
	}

	r := results[0]
	log.Infof("done in %v: all %d replicas ended in the same state "+
		"(%d entries)", elapsed, cfg.Replicas, r.entries)
	log.Infof("inserts: accepted=%d duplicate=%d oversized=%d",
		r.inserted, r.duplicates, r.oversized)
	hitRate := 0.0
	if total := r.hits + r.misses; total > 0 {
		hitRate = float64(r.hits) / float64(total) * 100
	}
	log.Infof("lookups: hits=%d misses=%d hit-rate=%.2f%%", r.hits,
		r.misses, hitRate)
	log.Infof("updates: applied=%d misses=%d", r.updated, r.updateMisses)

	if err := reportMetrics(reg); err != nil {
		return err
	}

	if cfg.Dump {
		fmt.Print(r.state)
	}
	return nil
}

// replay runs the seeded workload against c.
func replay(ctx context.Context, cfg *config,
	c cache.Cache[int, string]) (result, error) {

	pol, err := cache.ParsePolicy(cfg.Policy)
	if err != nil {
		return result{}, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	draw := func() cache.Item[int, string] {
		id := rng.Intn(cfg.Keys)
		return cache.Item[int, string]{
			ID:      id,
			Size:    rng.Intn(cfg.MaxSize + 1),
			Header:  "content-" + strconv.Itoa(id%cfg.Headers),
			Payload: "v" + strconv.Itoa(rng.Int()),
		}
	}

	var res result
	for op := 0; op < cfg.Ops; op++ {
		if op&1023 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		item := draw()
		switch p := rng.Intn(100); {
		case p < cfg.Lookups:
			if _, ok := c.Lookup(item); ok {
				res.hits++
			} else {
				res.misses++
			}

		case p < cfg.Lookups+cfg.Updates:
			if err := c.Update(item); err == nil {
				res.updated++
			} else if errors.Is(err, cache.ErrCacheMiss) {
				res.updateMisses++
			} else {
				return res, err
			}

		default:
			switch err := c.Insert(item, pol); {
			case err == nil:
				res.inserted++
			case errors.Is(err, cache.ErrDuplicateKey):
				res.duplicates++
			case errors.Is(err, cache.ErrOversizedItem):
				res.oversized++
			default:
				return res, err
			}
		}
	}

	res.entries = c.Len()
	res.state = c.String()
	return res, nil
}

// reportMetrics logs every gathered family summed over its label sets.
func reportMetrics(reg prometheus.Gatherer) error {
	mfs, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range mfs {
		total := 0.0
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue() + m.GetGauge().GetValue()
		}
		log.Infof("metric %s = %v", mf.GetName(), total)
	}
	return nil
}
