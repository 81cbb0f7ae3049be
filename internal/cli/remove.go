package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ironsheep/chromakey-mcp/internal/colorkey"
	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// keyOptions are the flags shared by remove and batch.
type keyOptions struct {
	color     string
	tolerance int
	trim      bool
	json      bool
}

func (o *keyOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.color, "color", "c", "", "background color: white, black, green, blue, a configured name, or hex (default from config)")
	cmd.Flags().IntVarP(&o.tolerance, "tolerance", "t", colorkey.DefaultTolerance, "color tolerance 0-100; matches when |dR|+|dG|+|dB| <= tolerance*3 (default from config)")
	cmd.Flags().BoolVar(&o.trim, "trim", false, "crop the result to its visible content")
	cmd.Flags().BoolVar(&o.json, "json", false, "print results as JSON")
}

func (a *app) newRemoveCmd() *cobra.Command {
	var (
		opts   keyOptions
		output string
	)

	cmd := &cobra.Command{
		Use:   "remove <image>",
		Short: "Make the background of one image transparent",
		Long: `Remove the flat-colored background of an image and save it as PNG.

Supported input formats: PNG, JPEG, GIF, BMP, WebP. Output is always PNG.

Examples:
  # White background, default tolerance, writes photo_transparent.png
  chromakey remove photo.jpg

  # Green screen with a looser match, cropped to the subject
  chromakey remove -c green -t 45 --trim render.png

  # Exact hex color, explicit destination
  chromakey remove -c '#F0F0F0' -t 0 -o out.png sheet.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, tolerance, err := a.keyFlags(cmd, opts.color, opts.tolerance)
			if err != nil {
				return err
			}

			p := colorkey.NewProcessor(imaging.NewFileLoader(), a.logger.Named("colorkey"), a.cfg.OutputSuffix)
			res, err := p.Process(cmd.Context(), colorkey.Job{
				Source:    args[0],
				Output:    output,
				Target:    target,
				Tolerance: tolerance,
				Trim:      opts.trim,
			})
			if err != nil {
				return err
			}

			if opts.json {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printResult(cmd.OutOrStdout(), res)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path (default: <source-stem>_transparent.png)")
	return cmd
}

func printResult(w io.Writer, r *colorkey.FileResult) {
	fmt.Fprintf(w, "%s -> %s\n", r.Source, r.Output)
	fmt.Fprintf(w, "  key %s, tolerance %d (threshold %d)\n", r.Target, r.Tolerance, r.Threshold)
	fmt.Fprintf(w, "  removed %d of %d pixels (%.1f%%)\n", r.RemovedPixels, r.TotalPixels, r.RemovedPercent)
	if r.Trimmed != nil {
		fmt.Fprintf(w, "  trimmed to %dx%d at (%d,%d)\n", r.Width, r.Height, r.Trimmed.X1, r.Trimmed.Y1)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
