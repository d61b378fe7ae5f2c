// Package cli is the command-line surface of the journal.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthjournal/internal/config"
	"github.com/terraincognita07/healthjournal/internal/db"
	"github.com/terraincognita07/healthjournal/internal/i18n"
	"github.com/terraincognita07/healthjournal/internal/logger"
	"github.com/terraincognita07/healthjournal/internal/models"
	"github.com/terraincognita07/healthjournal/internal/services"
)

const serviceName = "healthjournal"

// Options replaces the process environment in tests.
type Options struct {
	LoadConfig func() (*config.Config, error)
	Today      func(cfg *config.Config) civil.Date
	LogOutput  io.Writer
}

func DefaultOptions() Options {
	return Options{
		LoadConfig: config.New,
		Today:      (*config.Config).Today,
		LogOutput:  os.Stderr,
	}
}

type app struct {
	options Options

	dataDir string
	storage string
	lang    string

	cfg         *config.Config
	logger      zerolog.Logger
	messages    *i18n.Manager
	language    string
	repos       *db.Repositories
	medications *services.MedicationService
	records     *services.DailyRecordService
	exports     *services.ExportService
	questions   *services.QuestionEngine
}

// Execute runs the command line of the current process.
func Execute() error {
	return Run(os.Args[1:], os.Stdout, os.Stderr, DefaultOptions())
}

// Run executes one command and releases storage afterwards. Failures are
// reported on stderr in the configured language and returned.
func Run(args []string, stdout io.Writer, stderr io.Writer, options Options) error {
	a := &app{options: options, logger: zerolog.Nop()}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if closeErr := a.close(); closeErr != nil {
		a.logger.Error().Stack().Err(closeErr).Msg("close storage failed")
	}
	if err != nil {
		fmt.Fprintln(stderr, a.describeError(err))
	}
	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "healthjournal",
		Short:         "Personal health journal: medications, daily symptoms, sleep and meals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
	}
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "directory holding the journal files")
	root.PersistentFlags().StringVar(&a.storage, "storage", "", "storage driver: csv or sqlite")
	root.PersistentFlags().StringVar(&a.lang, "lang", "", "answer language: en or es")

	root.AddCommand(
		a.medicationCommand(),
		a.dayCommand(),
		a.trendCommand(),
		a.askCommand(),
		a.exportCommand(),
	)
	return root
}

func (a *app) open() error {
	cfg, err := a.options.LoadConfig()
	if err != nil {
		return err
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.storage != "" {
		cfg.StorageDriver = a.storage
	}
	if a.lang != "" {
		cfg.Language = a.lang
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logger.New(serviceName, cfg.LogLevel, cfg.LogFormat, a.options.LogOutput)

	messages, err := i18n.NewManager(cfg.Language)
	if err != nil {
		return fmt.Errorf("load translations: %w", err)
	}
	a.messages = messages
	a.language = messages.NormalizeLanguage(cfg.Language)

	repos, err := db.Open(db.Options{
		Driver:           cfg.StorageDriver,
		MedicationsPath:  cfg.MedicationsPath(),
		DailyRecordsPath: cfg.DailyRecordsPath(),
		SQLitePath:       cfg.SQLitePath(),
	}, models.JSONMealLogCodec{}, a.logger)
	if err != nil {
		return fmt.Errorf("%w: %w", errStorageOpen, err)
	}
	a.repos = repos

	a.medications = services.NewMedicationService(repos.Medications)
	a.records = services.NewDailyRecordService(repos.DailyRecords)
	a.exports = services.NewExportService(a.records)
	a.questions = services.NewQuestionEngine(messages, a.language)

	a.logger.Debug().
		Str("storage", cfg.StorageDriver).
		Str("data_dir", cfg.DataDir).
		Str("language", a.language).
		Msg("journal opened")
	return nil
}

func (a *app) close() error {
	if a.repos == nil {
		return nil
	}
	err := a.repos.Close()
	a.repos = nil
	return err
}

func (a *app) today() civil.Date {
	return a.options.Today(a.cfg)
}

func (a *app) t(key string) string {
	return a.messages.Translate(a.language, key)
}

func (a *app) tf(key string, args ...any) string {
	return a.messages.Translatef(a.language, key, args...)
}

func (a *app) println(cmd *cobra.Command, line string) {
	fmt.Fprintln(cmd.OutOrStdout(), line)
}

var errStorageOpen = errors.New("open storage failed")

// describeError renders err for the person at the terminal. Before the
// translations are loaded the raw error text is all there is.
func (a *app) describeError(err error) string {
	if a.messages == nil {
		return "Error: " + err.Error()
	}

	var unknown unknownVariableError
	switch {
	case errors.As(err, &unknown):
		return a.tf("error.unknown_variable", unknown.name)
	case errors.Is(err, services.ErrMedicationEndRequired):
		return a.t("error.medication_end_required")
	case errors.Is(err, services.ErrInvalidMedicationKind):
		return a.t("error.invalid_medication_kind")
	case errors.Is(err, services.ErrDailyRecordDateRequired):
		return a.t("error.date_required")
	case errors.Is(err, errStorageOpen),
		errors.Is(err, services.ErrMedicationLoadFailed),
		errors.Is(err, services.ErrMedicationCreateFailed),
		errors.Is(err, services.ErrDailyRecordLoadFailed),
		errors.Is(err, services.ErrDailyRecordCreateFailed):
		return a.tf("error.storage", err)
	default:
		return a.tf("error.invalid_input", err)
	}
}

type unknownVariableError struct {
	name string
}

func (err unknownVariableError) Error() string {
	return fmt.Sprintf("unknown trend variable %q", err.name)
}

func (err unknownVariableError) Unwrap() error {
	return services.ErrUnknownTrendVariable
}

// parseOptionalDate treats an empty flag as "not given".
func parseOptionalDate(raw string, flag string) (*civil.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := models.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return value, nil
}

func parseOptionalClock(raw string, flag string) (*civil.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := models.ParseClock(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return value, nil
}

// dateOrToday resolves a date flag, defaulting to the current day.
func (a *app) dateOrToday(raw string, flag string) (civil.Date, error) {
	value, err := parseOptionalDate(raw, flag)
	if err != nil {
		return civil.Date{}, err
	}
	if value == nil {
		return a.today(), nil
	}
	return *value, nil
}
