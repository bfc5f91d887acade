package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/embset/persist"
)

var saveCompression string

var saveCmd = &cobra.Command{
	Use:   "save <path>",
	Short: "Write the dataset to a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().StringVar(&saveCompression, "compression", "none", "Snapshot compression (none, lz4, zstd)")
}

func runSave(cmd *cobra.Command, args []string) error {
	var compression persist.Compression
	switch saveCompression {
	case "none":
		compression = persist.CompressionNone
	case "lz4":
		compression = persist.CompressionLZ4
	case "zstd":
		compression = persist.CompressionZstd
	default:
		return fmt.Errorf("unknown compression %q (want none, lz4 or zstd)", saveCompression)
	}

	if err := persist.Save(args[0], globalSet, persist.WithCompression(compression)); err != nil {
		return err
	}

	globalLogger.Info("snapshot saved",
		"path", args[0],
		"compression", compression.String(),
		"size", globalSet.Len(),
	)

	return nil
}
