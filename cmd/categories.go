package cmd

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"civiceye/internal/services"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List report categories, departments and keywords",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		catalog := appInstance.Catalog
		departments := catalog.Departments()

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Category", "Department", "Resolution", "Keywords"})
		table.SetBorder(false)
		table.SetAutoWrapText(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)

		for _, cat := range catalog.Categories() {
			table.Append([]string{
				string(cat),
				departments[cat],
				services.EstimatedResolution(cat),
				strings.Join(catalog.Keywords(cat), ", "),
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
