package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/toolshed/internal/app"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Serve the cron builder and tax estimator as HTML pages and a JSON API.
The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context(), k)
		},
	}
}
