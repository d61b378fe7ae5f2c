package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthjournal/internal/services"
)

func (a *app) trendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend <variable>",
		Short: "Print one variable as a date/value series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if _, ok := services.FindTrendVariable(name); !ok {
				return unknownVariableError{name: name}
			}
			points, err := a.records.QueryByVariable(name)
			if err != nil {
				return err
			}
			if len(points) == 0 {
				a.println(cmd, a.t("trend.empty"))
				return nil
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, point := range points {
				fmt.Fprintf(writer, "%s\t%s\n", point.Date, strconv.FormatFloat(point.Value, 'f', -1, 64))
			}
			if err := writer.Flush(); err != nil {
				return err
			}

			stats := services.SummarizeTrend(points)
			a.println(cmd, a.tf("trend.summary", stats.Count, stats.Mean, stats.Min, stats.Max, stats.From.String(), stats.To.String()))
			return nil
		},
	}
	cmd.AddCommand(a.trendVariablesCommand())
	return cmd
}

func (a *app) trendVariablesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vars",
		Short: "List the variables that can be plotted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, group := range []string{services.TrendGroupSymptoms, services.TrendGroupSleep} {
				fmt.Fprintln(writer, a.t("trend.group."+group))
				for _, variable := range services.TrendVariablesInGroup(group) {
					fmt.Fprintf(writer, "  %s\t%s\n", variable.Name, variable.Label)
				}
			}
			return writer.Flush()
		},
	}
}
