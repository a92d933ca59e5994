package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cardio/cardio/internal/config"
	"github.com/cardio/cardio/internal/seed"
)

func datasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dataset",
		Short:        "Inspect the seed dataset",
		SilenceUsage: true,
	}

	var url string
	var asJSON bool
	checkCmd := &cobra.Command{
		Use:          "check",
		Short:        "Load the dataset and report record problems",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if url != "" {
				cfg.DatasetURL = url
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), seedTimeout)
			defer cancel()

			logger := newLogger(cfg.Env, "warn").Output(os.Stderr)
			report, err := checkDataset(ctx, cfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "source: %s\n", report.Source)
				fmt.Fprintf(out, "patients: %d\n", report.Counts.Patients)
				fmt.Fprintf(out, "heart rate readings: %d\n", report.Counts.Readings)
				for _, p := range report.Problems {
					fmt.Fprintf(out, "problem: %s\n", p)
				}
			}

			if n := len(report.Problems); n > 0 {
				return fmt.Errorf("dataset has %d problem(s)", n)
			}
			return nil
		},
	}
	checkCmd.Flags().StringVar(&url, "url", "", "dataset location (overrides DATASET_URL)")
	checkCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	cmd.AddCommand(checkCmd)
	return cmd
}

type datasetReport struct {
	Source   string         `json:"source"`
	Counts   seed.Counts    `json:"counts"`
	Problems []seed.Problem `json:"problems"`
}

func checkDataset(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*datasetReport, error) {
	src, err := seed.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	ds, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	problems := ds.Validate()
	if problems == nil {
		problems = []seed.Problem{}
	}
	return &datasetReport{
		Source:   src.String(),
		Counts:   seed.Counts{Patients: len(ds.Patients), Readings: len(ds.HeartRateReadings)},
		Problems: problems,
	}, nil
}
