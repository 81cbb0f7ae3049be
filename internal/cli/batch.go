package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/chromakey-mcp/internal/colorkey"
	"github.com/ironsheep/chromakey-mcp/internal/imaging"
)

// batchOutput is the JSON shape of a batch run.
type batchOutput struct {
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Items     []batchOutputItem `json:"items"`
}

type batchOutputItem struct {
	Source string               `json:"source"`
	Result *colorkey.FileResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

func (a *app) newBatchCmd() *cobra.Command {
	var (
		opts    keyOptions
		workers int
	)

	cmd := &cobra.Command{
		Use:   "batch <image|dir>...",
		Short: "Make the background of many images transparent",
		Long: `Remove backgrounds from several images concurrently. Directories are scanned
(non-recursively) for supported images; files that already end in the output
suffix are skipped. Each result is written next to its source.

A failure on one image does not stop the others. The command exits non-zero
if any image failed.

Examples:
  chromakey batch ./characters
  chromakey batch -c green -t 40 -j 4 a.png b.png ./more`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, tolerance, err := a.keyFlags(cmd, opts.color, opts.tolerance)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Workers
			}

			p := colorkey.NewProcessor(imaging.NewFileLoader(), a.logger.Named("colorkey"), a.cfg.OutputSuffix)
			sources, err := imaging.ExpandImagePaths(args, p.Suffix())
			if err != nil {
				return err
			}
			jobs := make([]colorkey.Job, len(sources))
			for i, src := range sources {
				jobs[i] = colorkey.Job{Source: src, Target: target, Tolerance: tolerance, Trim: opts.trim}
			}

			items, err := p.ProcessBatch(cmd.Context(), jobs, workers)
			if err != nil {
				return err
			}

			sum := colorkey.Summarize(items)
			out := cmd.OutOrStdout()
			if opts.json {
				res := batchOutput{Succeeded: sum.Succeeded, Failed: sum.Failed}
				for _, it := range items {
					item := batchOutputItem{Source: it.Job.Source, Result: it.Result}
					if it.Err != nil {
						item.Error = it.Err.Error()
					}
					res.Items = append(res.Items, item)
				}
				if err := writeJSON(out, res); err != nil {
					return err
				}
			} else {
				for _, it := range items {
					if it.Err != nil {
						fmt.Fprintf(out, "FAILED %s: %v\n", it.Job.Source, it.Err)
						continue
					}
					printResult(out, it.Result)
				}
				fmt.Fprintf(out, "%d succeeded, %d failed\n", sum.Succeeded, sum.Failed)
			}

			if sum.Failed > 0 {
				return fmt.Errorf("%d of %d images failed", sum.Failed, len(items))
			}
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "images processed concurrently (default from config)")
	return cmd
}
