package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/embset"
	"github.com/hupe1980/embset/distance"
)

var similarN int

var similarCmd = &cobra.Command{
	Use:   "similar <name>",
	Short: "Rank the members closest to a named member",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	rootCmd.AddCommand(similarCmd)
	similarCmd.Flags().IntVarP(&similarN, "limit", "n", 10, "Number of results")
}

func runSimilar(cmd *cobra.Command, args []string) error {
	metric, err := distance.ParseMetric(metricName)
	if err != nil {
		return err
	}

	n := similarN
	if n > globalSet.Len() {
		n = globalSet.Len()
	}

	searcher, err := embset.NewSearcher(globalSet,
		embset.WithMetric(metric),
		embset.WithLogger(globalLogger),
	)
	if err != nil {
		return err
	}

	scored, err := searcher.ScoreSimilar(embset.ByName(args[0]), n)
	if err != nil {
		return err
	}

	for _, s := range scored {
		fmt.Printf("%-24s %.6f\n", s.Embedding.Name(), s.Score)
	}

	return nil
}
