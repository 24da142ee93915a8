package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kestrelworks/listr-cli/internal/lifelist"
	"github.com/kestrelworks/listr-cli/internal/utils"
)

var (
	llFile string
	llJSON bool
	llShow int
)

var lifelistCmd = &cobra.Command{
	Use:   "lifelist",
	Short: "Parse a life list CSV and summarize what was loaded",
	Example: `  listr lifelist --file MyEBirdData.csv
  listr lifelist --file MyEBirdData.csv --show 20
  listr lifelist --file MyEBirdData.csv --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if llFile == "" {
			return fmt.Errorf("--file is required")
		}
		data, err := os.ReadFile(llFile)
		if err != nil {
			return fmt.Errorf("read life list: %w", err)
		}
		list, rep := lifelist.Parse(string(data))

		if llJSON {
			b, err := utils.PrettyJSON(map[string]any{
				"species":          list.Len(),
				"rows":             rep.Rows,
				"duplicates":       rep.Duplicates,
				"excluded_groups":  rep.ExcludedGroups,
				"excluded_hybrids": rep.ExcludedHybrids,
				"names":            list.Names(),
			})
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}

		fmt.Printf("Species:          %d\n", list.Len())
		fmt.Printf("Rows read:        %d\n", rep.Rows)
		fmt.Printf("Duplicates:       %d\n", rep.Duplicates)
		fmt.Printf("Excluded groups:  %d (slash alternatives, \"sp.\" entries)\n", rep.ExcludedGroups)
		fmt.Printf("Excluded hybrids: %d\n", rep.ExcludedHybrids)
		if list.Len() == 0 {
			fmt.Println("\nNo species loaded. Check that the file has a header row with a \"Common Name\" column.")
			return nil
		}
		if llShow > 0 {
			names := list.Names()
			if llShow < len(names) {
				names = names[:llShow]
			}
			fmt.Println()
			for _, name := range names {
				fmt.Printf("- %s\n", name)
			}
			if list.Len() > llShow {
				fmt.Printf("... and %d more\n", list.Len()-llShow)
			}
		}
		return nil
	},
}

func init() {
	lifelistCmd.Flags().StringVarP(&llFile, "file", "f", "", "life list CSV export (required)")
	lifelistCmd.Flags().BoolVar(&llJSON, "json", false, "print the parsed list as JSON")
	lifelistCmd.Flags().IntVar(&llShow, "show", 10, "number of species names to print (0 to hide)")
	rootCmd.AddCommand(lifelistCmd)
}
