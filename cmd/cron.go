package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/toolshed/internal/adapters/in/cli"
	"github.com/bnema/toolshed/internal/domain"
)

// cronFlagNames maps each field to its flag.
var cronFlagNames = map[domain.CronField]string{
	domain.FieldSecond:     "second",
	domain.FieldMinute:     "minute",
	domain.FieldHour:       "hour",
	domain.FieldDayOfMonth: "day-of-month",
	domain.FieldMonth:      "month",
	domain.FieldDayOfWeek:  "day-of-week",
}

func newCronCmd(opts *rootOptions) *cobra.Command {
	var (
		specs       = make(map[domain.CronField]*string, len(domain.CronFields))
		query       string
		interactive bool
		preview     int
		output      string
	)

	cmd := &cobra.Command{
		Use:   "cron",
		Short: "Build a six-field cron expression",
		Long: `Build a cron expression (second minute hour day-of-month month day-of-week).

Each field takes a spec of the form kind[:arg[:arg[:arg]]]:

  every                      *
  interval:N                 every N, e.g. 0/N
  between:FROM:TO            FROM-TO, names allowed for month and weekday
  specific:A,B,C             a list of values
  ranges:A-B,C-D             a list of ranges (second, minute, hour, day)
  intervalBetween:N:FROM:TO  FROM-TO/N
  last[:OFFSET]              last day of the month, or OFFSET days before it
  nth:WEEKDAY:N              the Nth WEEKDAY of the month, e.g. FRI#2
  lastWeekday:WEEKDAY        the last WEEKDAY of the month, e.g. FRIL

A share-link query (--query) is applied first and field flags override it.`,
		Example: `  toolshed cron --minute interval:15 --hour between:9:17 --day-of-week between:MON:FRI
  toolshed cron --day-of-month last --preview 3
  toolshed cron --query 's=3&a0=0&m=1&a1=5' -o json
  toolshed cron -i`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := cli.ParseFormat(output)
			if err != nil {
				return err
			}
			k, err := opts.load(cmd)
			if err != nil {
				return err
			}

			runOpts := cli.CronOptions{
				Specs:       make(map[domain.CronField]string),
				Query:       query,
				Interactive: interactive,
				Preview:     preview,
				Output:      format,
				BaseURL:     k.Config().Server.BaseURL,
			}
			if !cmd.Flags().Changed("preview") {
				runOpts.Preview = k.Config().Cron.PreviewCount
			}
			for f, spec := range specs {
				if cmd.Flags().Changed(cronFlagNames[f]) {
					runOpts.Specs[f] = *spec
				}
			}

			var prompt cli.Prompter
			if interactive {
				prompt = cli.SurveyPrompter{}
			}
			runner := cli.NewCronRunner(k.Cron(), prompt, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return runner.Run(cmd.Context(), runOpts)
		},
	}

	for _, f := range domain.CronFields {
		specs[f] = cmd.Flags().String(cronFlagNames[f], "", f.Label()+" spec, e.g. "+cronFlagExample(f))
	}
	cmd.Flags().StringVar(&query, "query", "", "share-link query to start from")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for each field")
	cmd.Flags().IntVar(&preview, "preview", 0, "number of upcoming run times to show (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")

	return cmd
}

func cronFlagExample(f domain.CronField) string {
	switch f {
	case domain.FieldDayOfMonth:
		return "last:3"
	case domain.FieldMonth:
		return "between:JAN:JUN"
	case domain.FieldDayOfWeek:
		return "nth:FRI:2"
	default:
		return "interval:5"
	}
}
