package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

func (a *app) newSuggestCmd() *cobra.Command {
	var (
		top    int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "suggest <image>",
		Short: "Suggest the background color and tolerance for an image",
		Long: `Inspect the border of an image and report its most common colors, the
nearest named key color, and the smallest tolerance that would match it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imaging.NewFileLoader().Load(args[0])
			if err != nil {
				return err
			}
			s, err := imaging.SuggestKeyColor(img, a.palette, top)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, s)
			}

			fmt.Fprintf(out, "background %s (%.1f%% of %d border pixels)\n", s.Color.Hex, s.Color.Percentage, s.BorderPixels)
			if s.SuggestedTolerance >= 0 {
				fmt.Fprintf(out, "use: -c %s -t %d (distance %d)\n", s.Nearest, s.SuggestedTolerance, s.NearestDistance)
			} else {
				fmt.Fprintf(out, "no named color within tolerance 100; use: -c '%s' -t 0\n", s.Color.Hex)
			}
			for _, c := range s.Top {
				fmt.Fprintf(out, "  %s %5.1f%%\n", c.Hex, c.Percentage)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&top, "top", "n", 5, "number of border colors to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
