package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/kestrelworks/listr-cli/internal/config"
	"github.com/kestrelworks/listr-cli/internal/lifelist"
	"github.com/kestrelworks/listr-cli/internal/optimizer"
	"github.com/kestrelworks/listr-cli/internal/report"
	"github.com/kestrelworks/listr-cli/internal/utils"
)

var (
	optFile   string
	optStart  string
	optEnd    string
	optK      int
	optCounty string
	optOutput string
	optFormat string
	optQuiet  bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rank hotspots by expected new lifers for a date range",
	Example: `  listr optimize --file MyEBirdData.csv --start 2026-05-01 --end 2026-05-10
  listr optimize --file MyEBirdData.csv --start 2026-05-01 --end 2026-05-10 -k 10 --county Chittenden
  listr optimize --file MyEBirdData.csv --start 2026-05-01 --end 2026-05-10 --output report.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if optFile == "" {
			return fmt.Errorf("--file is required")
		}
		if optStart == "" || optEnd == "" {
			return fmt.Errorf("--start and --end are required (YYYY-MM-DD)")
		}
		format, err := resolveFormat(optFormat, optOutput)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(optFile)
		if err != nil {
			return fmt.Errorf("read life list: %w", err)
		}
		list, parseRep := lifelist.Parse(string(data))
		if !optQuiet {
			fmt.Printf("✓ Loaded %d species from %s (%d rows, %d duplicates, %d excluded)\n",
				list.Len(), optFile, parseRep.Rows, parseRep.Duplicates,
				parseRep.ExcludedGroups+parseRep.ExcludedHybrids)
		}

		req := optimizer.NewRequest(list, optStart, optEnd, resolveK(optK, cfg), optCounty)
		client := serviceClient()
		if debug {
			fmt.Fprintf(os.Stderr, "POST %s/api/optimize (%d species, k=%d)\n",
				client.BaseURL(), len(req.LifeList), req.K)
		}
		resp, err := client.Optimize(context.Background(), req)
		if err != nil {
			return err
		}

		switch format {
		case "json":
			b, err := utils.PrettyJSON(resp)
			if err != nil {
				return err
			}
			return writeOutput(optOutput, append(b, '\n'))
		case "html":
			var buf bytes.Buffer
			if err := report.WriteHTML(&buf, report.Build(resp, renderOptions())); err != nil {
				return err
			}
			if err := writeOutput(optOutput, buf.Bytes()); err != nil {
				return err
			}
			if !optQuiet && optOutput != "" {
				fmt.Printf("✓ Report written to %s\n", optOutput)
			}
			return nil
		default:
			return writeOutput(optOutput, []byte(report.Text(report.Build(resp, renderOptions()))))
		}
	},
}

// resolveFormat picks the output format: an explicit --format wins, else the
// output filename extension decides, else a terminal table.
func resolveFormat(format, output string) (string, error) {
	switch format {
	case "html", "json", "table":
		return format, nil
	case "":
	default:
		return "", fmt.Errorf("invalid --format: %s (use html, table or json)", format)
	}
	switch {
	case strings.HasSuffix(output, ".html"):
		return "html", nil
	case strings.HasSuffix(output, ".json"):
		return "json", nil
	}
	return "table", nil
}

// resolveK applies the configured default when -k is not given.
func resolveK(k int, c *cfgpkg.Global) int {
	if k > 0 {
		return k
	}
	if c != nil && c.DefaultK > 0 {
		return c.DefaultK
	}
	return 5
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return utils.SafeWriteFile(path, data)
}

func init() {
	optimizeCmd.Flags().StringVarP(&optFile, "file", "f", "", "life list CSV export (required)")
	optimizeCmd.Flags().StringVar(&optStart, "start", "", "start date, YYYY-MM-DD (required)")
	optimizeCmd.Flags().StringVar(&optEnd, "end", "", "end date, YYYY-MM-DD (required)")
	optimizeCmd.Flags().IntVarP(&optK, "hotspots", "k", 0, "number of hotspots to request (default from config)")
	optimizeCmd.Flags().StringVar(&optCounty, "county", "", "restrict to one county")
	optimizeCmd.Flags().StringVarP(&optOutput, "output", "o", "", "write the report to this file instead of stdout")
	optimizeCmd.Flags().StringVar(&optFormat, "format", "", "output format: html, table or json (default from --output extension)")
	optimizeCmd.Flags().BoolVarP(&optQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(optimizeCmd)
}
