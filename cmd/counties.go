package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var countiesCmd = &cobra.Command{
	Use:   "counties",
	Short: "List the county filter values the service supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		counties, err := serviceClient().Counties(context.Background())
		if err != nil {
			return err
		}
		if len(counties) == 0 {
			fmt.Println("(no counties)")
			return nil
		}
		for _, county := range counties {
			fmt.Println(county)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countiesCmd)
}
