package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/heavybullets8/cutstock/pkg/cutting"
)

var (
	outputHTML string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [job-file]",
	Short: "Compute a cutting plan from a job file (TOML or JSON)",
	Args:  cobra.ExactArgs(1),
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&outputHTML, "html", "", "write an HTML cut ticket to this path")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	j, err := loadJob(args[0])
	if err != nil {
		return fmt.Errorf("loading job file: %w", err)
	}

	ctx := j.toContext()
	adapter := cutting.NewZerologAdapter(log)

	result, err := cutting.Optimize(context.Background(), ctx, adapter)
	if err != nil {
		return fmt.Errorf("optimize: %w", err)
	}

	printSummary(ctx, result)

	if outputHTML != "" {
		if err := writeCutTicket(outputHTML, ctx, result); err != nil {
			return fmt.Errorf("writing html cut ticket: %w", err)
		}
		fmt.Printf("Wrote cut ticket to %s\n", outputHTML)
	}

	return nil
}

func loadJob(path string) (job, error) {
	var j job
	data, err := os.ReadFile(path)
	if err != nil {
		return j, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &j)
	default:
		err = toml.Unmarshal(data, &j)
	}
	return j, err
}
