package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) askCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask a question about the journal in plain language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.records.LoadAll()
			if err != nil {
				return err
			}
			answer := a.questions.Ask(strings.Join(args, " "), records)
			a.logger.Debug().
				Str("pattern", answer.Pattern).
				Bool("matched", answer.Matched).
				Bool("sufficient", answer.Sufficient).
				Msg("question answered")
			a.println(cmd, answer.Message)
			return nil
		},
	}
}
