// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command qbench drives a concurrent FIFO queue benchmark: pick a queue
// variant and a run mode, configure thread count/batch sizes/stop
// condition, and report throughput and (in safe mode) correctness.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"code.hybscloud.com/qbench/bench"
	"code.hybscloud.com/qbench/internal/report"
)

// fileOverride is the optional YAML shape accepted via --config, letting a
// recipe's parameters be checked into a file instead of typed as flags.
type fileOverride struct {
	BatchSize   int    `yaml:"batch_size"`
	NumThreads  int    `yaml:"num_threads"`
	Repetitions int    `yaml:"repetitions"`
	MaxTimeS    int    `yaml:"max_time_s"`
	Sets        int    `yaml:"sets"`
	Seed        int32  `yaml:"seed"`
	Prefill     int    `yaml:"prefill"`
	Recipe      string `yaml:"recipe"`
	Queue       string `yaml:"queue"`
	Mode        string `yaml:"mode"`
}

func recipeByName(name string) bench.Recipe {
	switch name {
	case "upper_half":
		return bench.UpperHalf
	case "one_to_all":
		return bench.OneToAll
	case "even_odd":
		return bench.EvenOdd
	default:
		return bench.Balanced
	}
}

func main() {
	var (
		queueKind   = pflag.String("queue", "lock_free", "queue variant: sequential, global_lock, fine_lock, lock_free")
		mode        = pflag.String("mode", "safe", "run mode: fast, safe, sets")
		threads     = pflag.Int("threads", 4, "number of worker goroutines")
		repetitions = pflag.Int("repetitions", 10, "number of repetitions to average over")
		maxTimeS    = pflag.Int("max-time", 1, "wall-clock seconds per repetition (0 if --sets is set)")
		sets        = pflag.Int("sets", 0, "fixed iteration count per repetition (0 if --max-time is set)")
		seed        = pflag.Int32("seed", 1, "RNG seed")
		batch       = pflag.Int("batch", 1000, "per-worker batch size")
		prefill     = pflag.Int("prefill", 0, "elements pushed before the first repetition (fast mode only)")
		recipeFlag  = pflag.String("recipe", "balanced", "batch recipe: balanced, upper_half, one_to_all, even_odd")
		configFile  = pflag.String("config", "", "optional YAML file overriding the flags above")
		csvOut      = pflag.Bool("csv", false, "emit CSV instead of human-readable text")
		logLevel    = pflag.String("log-level", "info", "zerolog level: debug, info, warn, error")
	)
	pflag.Parse()

	lvl, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).With().Timestamp().Logger()

	if *configFile != "" {
		data, err := os.ReadFile(*configFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", *configFile).Msg("read config file")
		}
		var override fileOverride
		if err := yaml.Unmarshal(data, &override); err != nil {
			log.Fatal().Err(err).Msg("parse config file")
		}
		if override.BatchSize != 0 {
			*batch = override.BatchSize
		}
		if override.NumThreads != 0 {
			*threads = override.NumThreads
		}
		if override.Repetitions != 0 {
			*repetitions = override.Repetitions
		}
		if override.MaxTimeS != 0 {
			*maxTimeS = override.MaxTimeS
		}
		if override.Sets != 0 {
			*sets = override.Sets
		}
		if override.Seed != 0 {
			*seed = override.Seed
		}
		if override.Prefill != 0 {
			*prefill = override.Prefill
		}
		if override.Recipe != "" {
			*recipeFlag = override.Recipe
		}
		if override.Queue != "" {
			*queueKind = override.Queue
		}
		if override.Mode != "" {
			*mode = override.Mode
		}
	}

	cfg := bench.BuildConfig(recipeByName(*recipeFlag), *batch, *threads, *repetitions, *maxTimeS, *sets, *seed, *prefill)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	q, err := bench.New(bench.Kind(*queueKind), *threads)
	if err != nil {
		log.Fatal().Err(err).Msg("select queue")
	}
	defer q.Destroy()

	driver := &bench.Driver{Config: cfg, Queue: q}

	var counters []bench.Counter
	switch *mode {
	case "fast":
		counters, err = driver.RunFast()
	case "sets":
		counters, err = driver.RunSets()
	case "safe":
		var verifications []bench.VerifyResult
		counters, verifications, err = driver.RunSafe()
		for i, v := range verifications {
			if !v.OK {
				log.Warn().Int("repetition", i).Int64("pushed", v.Pushed).
					Int64("popped", v.Popped).Int64("residual", v.Residual).
					Msg("correctness check failed")
			}
		}
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown run mode")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("run benchmark")
	}

	results := bench.Aggregate(counters)
	results.Average(*repetitions)

	if *csvOut {
		if err := report.WriteCSV(os.Stdout, string(*queueKind)+"/"+*mode, *threads, results, true); err != nil {
			log.Fatal().Err(err).Msg("write csv")
		}
		return
	}
	if err := report.WriteText(os.Stdout, results); err != nil {
		log.Fatal().Err(err).Msg("write text")
	}
}
