package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthjournal/internal/models"
	"github.com/terraincognita07/healthjournal/internal/services"
)

func (a *app) medicationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "med",
		Aliases: []string{"medication"},
		Short:   "Manage the medication catalog",
	}
	cmd.AddCommand(a.medicationAddCommand(), a.medicationListCommand(), a.medicationActiveCommand())
	return cmd
}

func (a *app) medicationAddCommand() *cobra.Command {
	var name, kind, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a medication",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := a.dateOrToday(start, "start")
			if err != nil {
				return err
			}
			endDate, err := parseOptionalDate(end, "end")
			if err != nil {
				return err
			}

			saved, err := a.medications.Add(models.Medication{
				Name:  strings.TrimSpace(name),
				Kind:  models.ParseMedicationKind(kind),
				Start: &startDate,
				End:   endDate,
			})
			if err != nil {
				return err
			}

			a.logger.Info().Str("name", saved.Name).Str("kind", string(saved.Kind)).Msg("medication saved")
			a.println(cmd, a.tf("medication.saved", saved.Name))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "medication name")
	cmd.Flags().StringVar(&kind, "kind", string(models.MedicationPermanent), "Permanent or Temporary")
	cmd.Flags().StringVar(&start, "start", "", "first day taken, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&end, "end", "", "last day taken, required for Temporary")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) medicationListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every registered medication",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			medications, err := a.medications.LoadAll()
			if err != nil {
				return err
			}
			if len(medications) == 0 {
				a.println(cmd, a.t("medication.list_empty"))
				return nil
			}
			return a.writeMedicationTable(cmd, medications)
		},
	}
}

func (a *app) medicationActiveCommand() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "active",
		Short: "List medications active on a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := a.dateOrToday(date, "date")
			if err != nil {
				return err
			}
			names, err := a.medications.ActiveNamesOn(day)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				a.println(cmd, a.tf("medication.none_active", day.String()))
				return nil
			}
			a.println(cmd, a.tf("medication.active_header", day.String()))
			for _, name := range names {
				a.println(cmd, "  "+name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day to check, YYYY-MM-DD (default today)")
	return cmd
}

func (a *app) writeMedicationTable(cmd *cobra.Command, medications []models.Medication) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, medication := range medications {
		end := models.FormatDate(medication.End)
		if medication.Kind == models.MedicationPermanent {
			end = a.t("medication.forever")
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			medication.Name, medication.Kind, models.FormatDate(medication.Start), end)
	}
	return writer.Flush()
}

// warnInactiveMedications flags taken names with no active catalog entry.
// The record is still saved.
func (a *app) warnInactiveMedications(cmd *cobra.Command, record models.DailyRecord) {
	if record.Date == nil || len(record.MedicationsTaken) == 0 {
		return
	}
	active, err := a.medications.ActiveOn(*record.Date)
	if err != nil {
		a.logger.Warn().Err(err).Msg("active medications unavailable")
		return
	}
	inactive := services.InactiveMedicationNames(record.MedicationsTaken, active)
	if len(inactive) == 0 {
		return
	}
	a.logger.Warn().Strs("medications", inactive).Str("date", record.Date.String()).Msg("medication not active on record date")
	fmt.Fprintln(cmd.ErrOrStderr(), a.tf("record.inactive_medications", record.Date.String(), strings.Join(inactive, ", ")))
}
