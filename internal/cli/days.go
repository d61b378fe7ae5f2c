package cli

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthjournal/internal/models"
	"github.com/terraincognita07/healthjournal/internal/services"
)

func (a *app) dayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "day",
		Aliases: []string{"record"},
		Short:   "Record and review daily entries",
	}
	cmd.AddCommand(a.dayAddCommand(), a.dayListCommand())
	return cmd
}

type dayAddFlags struct {
	date           string
	severities     map[string]*int
	otherSymptoms  string
	medications    []string
	bedtime        string
	wakeTime       string
	sleepQuality   int
	sleepIncidents []string
	meals          map[models.MealSlot]*[]string
	events         []string
	notes          string
}

// Fatigue and mood start mid-scale; every other symptom starts at none.
var severityFlagDefaults = map[string]int{"fatigue": 5, "mood": 5}

func severityFlagName(column string) string {
	return strings.ReplaceAll(column, "_", "-")
}

func mealFlagName(slot models.MealSlot) string {
	return strings.ToLower(string(slot))
}

func (a *app) dayAddCommand() *cobra.Command {
	flags := dayAddFlags{
		severities: make(map[string]*int),
		meals:      make(map[models.MealSlot]*[]string),
	}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Save the daily record for one day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.dayInputFromFlags(cmd, flags)
			if err != nil {
				return err
			}
			record, err := services.NormalizeDailyRecordInput(input)
			if err != nil {
				return err
			}
			saved, err := a.records.Add(record)
			if err != nil {
				return err
			}

			a.logger.Info().Str("date", saved.Date.String()).Msg("daily record saved")
			a.warnInactiveMedications(cmd, saved)
			if saved.SleepHours != nil {
				a.println(cmd, a.tf("record.saved_sleep", saved.Date.String(), *saved.SleepHours))
			} else {
				a.println(cmd, a.tf("record.saved", saved.Date.String()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.date, "date", "", "day being recorded, YYYY-MM-DD (default today)")
	for _, field := range models.SeverityFields() {
		value := new(int)
		flags.severities[field.Column] = value
		cmd.Flags().IntVar(value, severityFlagName(field.Column), severityFlagDefaults[field.Column], field.Label+" (0-10)")
	}
	cmd.Flags().StringVar(&flags.otherSymptoms, "other-symptoms", "", "free-text symptoms")
	cmd.Flags().StringArrayVar(&flags.medications, "med", nil, "medication taken (repeatable)")
	cmd.Flags().StringVar(&flags.bedtime, "bedtime", "", "time gone to bed, HH:MM")
	cmd.Flags().StringVar(&flags.wakeTime, "wake", "", "time woken up, HH:MM")
	cmd.Flags().IntVar(&flags.sleepQuality, "sleep-quality", 0, "sleep quality (0-10)")
	cmd.Flags().StringArrayVar(&flags.sleepIncidents, "incident", nil, "sleep incident tag (repeatable)")
	for _, slot := range models.MealSlots() {
		foods := new([]string)
		flags.meals[slot] = foods
		cmd.Flags().StringArrayVar(foods, mealFlagName(slot), nil, fmt.Sprintf("food eaten at %s (repeatable, up to %d)", slot, models.MaxFoodsPerSlot))
	}
	cmd.Flags().StringArrayVar(&flags.events, "event", nil, "event tag (repeatable)")
	cmd.Flags().StringVar(&flags.notes, "notes", "", "free-text notes")
	return cmd
}

func (a *app) dayInputFromFlags(cmd *cobra.Command, flags dayAddFlags) (services.DailyRecordInput, error) {
	date, err := a.dateOrToday(flags.date, "date")
	if err != nil {
		return services.DailyRecordInput{}, err
	}
	bedtime, err := parseOptionalClock(flags.bedtime, "bedtime")
	if err != nil {
		return services.DailyRecordInput{}, err
	}
	wakeTime, err := parseOptionalClock(flags.wakeTime, "wake")
	if err != nil {
		return services.DailyRecordInput{}, err
	}

	input := services.DailyRecordInput{
		Date:             date,
		Severities:       make(map[string]int, len(flags.severities)),
		OtherSymptoms:    flags.otherSymptoms,
		MedicationsTaken: flags.medications,
		Bedtime:          bedtime,
		WakeTime:         wakeTime,
		SleepIncidents:   flags.sleepIncidents,
		Meals:            make(map[models.MealSlot][]string, len(flags.meals)),
		Events:           flags.events,
		Notes:            flags.notes,
	}
	for column, value := range flags.severities {
		input.Severities[column] = *value
	}
	if cmd.Flags().Changed("sleep-quality") {
		quality := flags.sleepQuality
		input.SleepQuality = &quality
	}
	for slot, foods := range flags.meals {
		input.Meals[slot] = *foods
	}
	return input, nil
}

func (a *app) dayListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved daily records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.records.LoadAll()
			if err != nil {
				return err
			}
			if len(records) == 0 {
				a.println(cmd, a.t("record.list_empty"))
				return nil
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, record := range records {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
					models.FormatDate(record.Date),
					formatSymptoms(record),
					formatSleep(record),
					strings.Join(record.MedicationsTaken, ", "),
					strings.Join(record.Meals.Foods(), ", "),
				)
			}
			if err := writer.Flush(); err != nil {
				return err
			}
			a.println(cmd, a.tf("record.count", humanize.Comma(int64(len(records)))))
			return nil
		},
	}
}

// formatSymptoms lists the non-zero severities as column=value pairs.
func formatSymptoms(record models.DailyRecord) string {
	parts := make([]string, 0)
	for _, field := range models.SeverityFields() {
		value := *field.Ref(&record)
		if value == 0 {
			continue
		}
		parts = append(parts, field.Column+"="+strconv.Itoa(value))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func formatSleep(record models.DailyRecord) string {
	parts := make([]string, 0, 2)
	if record.SleepHours != nil {
		parts = append(parts, strconv.FormatFloat(*record.SleepHours, 'f', 2, 64)+"h")
	}
	if record.SleepQuality != nil {
		parts = append(parts, "q"+strconv.Itoa(*record.SleepQuality))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
