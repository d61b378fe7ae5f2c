package cli

import (
	"encoding/json"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthjournal/internal/services"
)

func (a *app) exportCommand() *cobra.Command {
	var from, to string
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write daily records as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, toDate, err := services.ParseExportRange(from, to)
			if err != nil {
				return err
			}

			if summaryOnly {
				summary, err := a.exports.BuildSummary(fromDate, toDate)
				if err != nil {
					return err
				}
				if !summary.HasData {
					a.println(cmd, a.t("export.empty"))
					return nil
				}
				a.println(cmd, a.tf("export.summary", humanize.Comma(int64(summary.TotalEntries)), summary.DateFrom, summary.DateTo))
				return nil
			}

			entries, err := a.exports.BuildJSONEntries(fromDate, toDate)
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(entries)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day to include, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day to include, YYYY-MM-DD")
	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "print only the entry count and date range")
	return cmd
}
