package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

const (
	configKey  = "config"
	formatKey  = "format"
	repeatsKey = "repeats"
	profileKey = "cpuprofile"
)

func main() {
	initLogger()

	cmd := &cli.Command{
		Name:  "ripple-bench",
		Usage: "Benchmark ripple dependency graphs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configKey,
				Usage: "Path to a TOML file describing benchmark cases",
			},
			&cli.StringFlag{
				Name:  formatKey,
				Usage: "Output format: pretty or ascii",
				Value: "pretty",
			},
			&cli.UintFlag{
				Name:  repeatsKey,
				Usage: "Repeats per case, best run is reported",
				Value: 5,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to the given file",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("benchmark failed")
	}
}

func initLogger() {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Str("app", "ripple-bench").Logger()
}

func run(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String(formatKey)
	if format != "pretty" && format != "ascii" {
		return fmt.Errorf("unknown format %q", format)
	}

	cases := defaultCases()
	if path := cmd.String(configKey); path != "" {
		loaded, err := loadCases(path)
		if err != nil {
			return err
		}
		cases = loaded
		log.Info().Str("path", path).Int("cases", len(cases)).Msg("loaded benchmark config")
	}

	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("start profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	repeats := int(cmd.Uint(repeatsKey))
	start := time.Now()
	log.Info().Int("repeats", repeats).Msg("starting benchmark, please wait")

	var results []caseResult
	for _, c := range cases {
		log.Info().Str("case", c.Name).Msg("running")
		res, err := runCase(c, repeats)
		if err != nil {
			return fmt.Errorf("case %q: %w", c.Name, err)
		}
		results = append(results, res)
	}

	render(os.Stdout, format, results)
	log.Info().Dur("elapsed", time.Since(start)).Msg("finished")
	return nil
}
