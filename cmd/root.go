package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scanprep",
		Short: "Chest X-ray standardization service for AI analysis",
		Long: `Scanprep normalizes uploaded chest X-rays (DICOM or standard raster
images) into fixed 540x540 letterboxed frames for preview and inference.

It ships a web service for the upload workflow and a CLI normalizer for
operators and batch use.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newNormalizeCmd())

	return cmd
}
