package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/radlens/scanprep/internal/encode"
	"github.com/radlens/scanprep/internal/standardize"
	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	var (
		isDicom bool
		format  string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "normalize <path-or-url>",
		Short: "Standardize a single image to a 540x540 frame",
		Long: `Normalizes one chest X-ray (DICOM or standard raster, local file or
remote URL) into a 540x540 letterboxed frame and writes it next to the
source or to the path given with --output.`,
		Example: `  # Normalize a local DICOM file
  scanprep normalize study.dcm

  # Force the DICOM path for an unmarked file and emit JPEG
  scanprep normalize scan.bin --dicom --format jpeg -o scan.jpg

  # Normalize a remote image
  scanprep normalize https://example.org/chest.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]

			var source standardize.Source
			if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") ||
				strings.HasPrefix(target, "data:") {
				source = standardize.URLSource(target)
			} else {
				data, err := os.ReadFile(target)
				if err != nil {
					return fmt.Errorf("failed to read input file: %w", err)
				}
				source = standardize.FileSource(target, "", data)
			}

			opts := standardize.Options{DicomHint: isDicom}
			switch format {
			case "png":
				opts.Format = encode.MIMEPNG
			case "jpeg", "jpg":
				opts.Format = encode.MIMEJPEG
			default:
				return fmt.Errorf("unsupported format %q (use png or jpeg)", format)
			}

			frame, err := standardize.NewPipeline().Standardize(cmd.Context(), source, opts)
			if err != nil {
				return err
			}

			outPath := output
			if outPath == "" {
				ext := ".png"
				if frame.MIME == encode.MIMEJPEG {
					ext = ".jpg"
				}
				outPath = "standardized" + ext
			}
			if err := os.WriteFile(outPath, frame.Data, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}

			fmt.Printf("Wrote %dx%d %s frame to %s (%d bytes)\n",
				frame.Width, frame.Height, frame.Format, outPath, len(frame.Data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&isDicom, "dicom", false, "Force the DICOM decode path")
	cmd.Flags().StringVarP(&format, "format", "f", "png", "Output format: png or jpeg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")

	return cmd
}
