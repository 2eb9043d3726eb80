package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"civiceye/internal/clix"
	"civiceye/internal/models"
)

var (
	classifyText   string
	classifyFile   string
	classifyImages []string
	classifyJSON   bool
)

// classifyCmd runs the categorization pipeline locally without the HTTP server.
var classifyCmd = &cobra.Command{
	Use:   "classify [report text]",
	Short: "Categorize a report from the command line",
	Long: `Runs the same validation, image checks, classification and suggestion
steps as POST /categorize and prints the result.

Example:
  civiceye classify --text "Huge pothole blocking traffic" --image ./photo.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		text, err := clix.ParseReportText(cmd.Flags(), args)
		if err != nil {
			return err
		}
		images, err := clix.ParseImages(cmd.Flags())
		if err != nil {
			return err
		}

		resp, err := appInstance.CategorizationService.Categorize(cmd.Context(), models.ReportRequest{
			Text:   text,
			Images: images,
		})
		if err != nil {
			return fmt.Errorf("categorize: %w", err)
		}

		out := cmd.OutOrStdout()
		if classifyJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		}
		printCategoryResponse(out, resp)
		return nil
	},
}

func priorityColor(p models.Priority) func(a ...interface{}) string {
	switch p {
	case models.PriorityHigh:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case models.PriorityMedium:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgGreen).SprintFunc()
	}
}

func printCategoryResponse(w io.Writer, resp *models.CategoryResponse) {
	fmt.Fprintf(w, "Category:    %s\n", color.CyanString(string(resp.Category)))
	fmt.Fprintf(w, "Confidence:  %.3f\n", resp.Confidence)
	fmt.Fprintf(w, "Priority:    %s\n", priorityColor(resp.Priority)(strings.ToUpper(string(resp.Priority))))
	fmt.Fprintf(w, "Department:  %s\n", resp.Department)
	fmt.Fprintf(w, "Resolution:  %s\n", resp.Suggestions.EstimatedResolution)
	fmt.Fprintf(w, "Follow-up:   %v\n", resp.Suggestions.FollowUpNeeded)
	fmt.Fprintf(w, "Images:      %d processed\n", resp.Suggestions.ImagesProcessed)
	fmt.Fprintln(w, "Recommended actions:")
	for i, a := range resp.Suggestions.RecommendedActions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, a)
	}
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyText, "text", "", "Report text to categorize")
	classifyCmd.Flags().StringVar(&classifyFile, "file", "", "Read report text from a file")
	classifyCmd.Flags().StringSliceVar(&classifyImages, "image", nil, "Image file to attach (repeatable, max 3)")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Print the raw JSON response")
}
