package main

import (
	"github.com/spf13/cobra"

	"question-service/internal/infra/config"
)

type rootOptions struct {
	configFiles []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "question-service",
		Short: "Question CRUD service with RPC-backed answers",
		Long: `question-service stores questions in memory, PostgreSQL or Redis and serves
them over HTTP. Answers are fetched from the GptAnswerService over gRPC or Connect.

Example usage:
  question-service                                  # serve with ./config/config.toml
  question-service serve --config config/00-default.toml --config local.toml
  question-service serve --with-answer-server       # also run the answer stub
  question-service migrate up                       # apply PostgreSQL migrations
  question-service config                           # print the resolved config`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringSliceVar(&opts.configFiles, "config", nil,
		"TOML config file, repeatable; later files override earlier ones")

	serve := newServeCmd(opts)
	cmd.RunE = serve.RunE
	cmd.Flags().AddFlagSet(serve.Flags())

	cmd.AddCommand(serve)
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.configFiles...)
}
