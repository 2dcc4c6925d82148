// cmd/report-writer/generate.go
package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"report-writer/internal/app"
	"report-writer/internal/common/config"
	"report-writer/internal/models"
	"report-writer/internal/report/clipboard"
	"report-writer/internal/report/notify"
	"report-writer/internal/report/session"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	in := &fieldInput{}
	var copyReport, requireComplete bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one report and print it",
		Long: `Fills a single certificate form from flags, sends it to the configured
generator and prints the report on stdout. Logs go to stderr.

Example:
  report-writer generate -t rcd-test --set rcdType=30ma --set rcdLocation="Kitchen" --copy`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			log, sync := opts.logger(cfg, "stderr")
			defer sync()

			id, err := models.ParseTemplateID(in.template)
			if err != nil {
				return err
			}
			values, err := in.values(cmd.InOrStdin())
			if err != nil {
				return err
			}

			gen, backend := app.BuildGenerator(cfg, log)
			s := session.New(uuid.NewString(), session.Deps{
				Generator: gen,
				Notifier:  notify.NewLogNotifier(log),
				Clipboard: clipboard.System{},
				Logger:    log,
			}, session.Options{
				RequireComplete:  requireComplete || cfg.Session.RequireComplete,
				Timeout:          config.GetDuration(cfg.Generator.Timeout),
				Backend:          backend,
				ClipboardBackend: config.ClipboardSystem,
			})
			defer s.Close()

			if err := s.SelectTemplate(id); err != nil {
				return err
			}
			if err := s.SetFields(values); err != nil {
				return err
			}
			s.SetNotes(in.notes)

			report, err := s.Generate(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if copyReport {
				return s.CopyReport(cmd.Context())
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().BoolVar(&copyReport, "copy", false, "Copy the report to the system clipboard")
	cmd.Flags().BoolVar(&requireComplete, "require-complete", false, "Refuse to generate while required fields are empty")
	return cmd
}
