package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var meanCmd = &cobra.Command{
	Use:   "mean",
	Short: "Print the arithmetic mean of all member vectors",
	RunE:  runMean,
}

func init() {
	rootCmd.AddCommand(meanCmd)
}

func runMean(cmd *cobra.Command, args []string) error {
	mean, err := globalSet.Average("")
	if err != nil {
		return err
	}

	fmt.Printf("%s: %v\n", mean.Name(), mean.Vector())
	return nil
}
