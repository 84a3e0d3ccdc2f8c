// Package main provides the dualfit CLI.
//
// Usage:
//
//	dualfit version
//	dualfit fit  -config fit.yaml [-steps N] [-backend hybrid] [-num-workers N] [-seed N] [-log-every N] [-params out.txt]
//	dualfit eval -config fit.yaml -params out.txt x1 x2 ...
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/born-ml/dualfit/internal/config"
)

const version = "v0.1.0"

func usage() {
	fmt.Println("dualfit - line-search model fitting with forward-mode gradients")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  fit        Fit a model to a sampled polynomial")
	fmt.Println("  eval       Evaluate saved parameters at points")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("dualfit %s\n", version)
	case "fit":
		fitCommand(os.Args[2:])
	case "eval":
		evalCommand(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func fitCommand(args []string) {
	fs := flag.NewFlagSet("fit", flag.ExitOnError)
	cfgPath := fs.String("config", "fit.yaml", "Path to YAML config")
	steps := fs.Int("steps", 0, "Number of training steps")
	backend := fs.String("backend", "", "Gradient backend: dense, sparse or hybrid")
	numWorkers := fs.Int("num-workers", 0, "Number of evaluation workers")
	seed := fs.Int64("seed", 0, "PRNG seed")
	logEvery := fs.Int("log-every", 0, "Log every N steps")
	params := fs.String("params", "", "Write fitted parameters to this file")
	_ = fs.Parse(args)

	var seedOverride *int64
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedOverride = seed
		}
	})

	cfg := loadConfig(*cfgPath, config.Overrides{
		Steps:      *steps,
		Backend:    *backend,
		NumWorkers: *numWorkers,
		Seed:       seedOverride,
		LogEvery:   *logEvery,
		Params:     *params,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := runFit(ctx, cfg, log.Default())
	if err != nil {
		log.Fatalf("fit failed: %v", err)
	}
	for i, p := range res.Params {
		fmt.Printf("p[%d] = %g\n", i, p)
	}
}

func evalCommand(args []string) {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	cfgPath := fs.String("config", "fit.yaml", "Path to YAML config")
	params := fs.String("params", "", "Parameter file to evaluate (default: params from config)")
	_ = fs.Parse(args)

	cfg := loadConfig(*cfgPath, config.Overrides{Params: *params})
	if cfg.Params == "" {
		log.Fatalf("no parameter file: set -params or params in %s", *cfgPath)
	}

	xs := make([]float64, fs.NArg())
	for i, arg := range fs.Args() {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			log.Fatalf("invalid point %q: %v", arg, err)
		}
		xs[i] = x
	}

	ys, err := runEval(cfg, cfg.Params, xs, log.Default())
	if err != nil {
		log.Fatalf("eval failed: %v", err)
	}
	for i, y := range ys {
		fmt.Printf("f(%g) = %g\n", xs[i], y)
	}
}

func loadConfig(path string, o config.Overrides) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	cfg.ApplyOverrides(o)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	return cfg
}
