package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/embset"
)

var (
	dataPath   string
	metricName string
	verbose    bool

	globalSet    *embset.EmbeddingSet
	globalLogger *embset.Logger
)

var rootCmd = &cobra.Command{
	Use:   "embset",
	Short: "Algebra and similarity search over named embedding vectors",
	Long: `embset manipulates sets of named, fixed-dimension embedding vectors:
vector-space algebra (add, subtract, project, orthogonalize), similarity
ranking, and snapshot export.

Datasets are JSON or YAML files of named vectors, or .emb snapshot files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		globalLogger = embset.NewTextLogger(level)

		if dataPath == "" {
			return fmt.Errorf("no dataset given, use --data")
		}

		set, err := loadDataset(dataPath)
		if err != nil {
			return fmt.Errorf("failed to load dataset: %w", err)
		}
		globalSet = set

		globalLogger.Debug("dataset loaded",
			"path", dataPath,
			"label", set.Label(),
			"size", set.Len(),
			"dimension", set.Dim(),
		)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Path to a JSON, YAML or .emb dataset")
	rootCmd.PersistentFlags().StringVar(&metricName, "metric", "cosine", "Distance metric (cosine, euclidean, sqeuclidean, correlation, manhattan)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
