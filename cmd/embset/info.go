package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show dataset label, size, dimension and member names",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	fmt.Printf("label:     %s\n", globalSet.Label())
	fmt.Printf("size:      %d\n", globalSet.Len())
	fmt.Printf("dimension: %d\n", globalSet.Dim())
	fmt.Printf("names:     %s\n", strings.Join(globalSet.Names(), ", "))
	return nil
}
