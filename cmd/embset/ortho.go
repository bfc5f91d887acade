package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var orthoCmd = &cobra.Command{
	Use:   "ortho <axis>...",
	Short: "Project the set away from the span of the named members",
	Long: `Project every member away from the subspace spanned by the given member
vectors (Gram-Schmidt) and print the resulting coordinates.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runOrtho,
}

func init() {
	rootCmd.AddCommand(orthoCmd)
}

func runOrtho(cmd *cobra.Command, args []string) error {
	span, err := globalSet.Subset(args...)
	if err != nil {
		return err
	}

	result, err := globalSet.OrthogonalToSpan(span)
	if err != nil {
		return err
	}

	names, matrix := result.NamedMatrix()
	fmt.Printf("label: %s\n", result.Label())
	for i, name := range names {
		fmt.Printf("%-24s %v\n", name, matrix[i])
	}

	return nil
}
