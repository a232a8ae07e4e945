package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/gotender/internal/config"
	"github.com/jonesrussell/gotender/internal/extractor"
	"github.com/jonesrussell/gotender/internal/fetcher"
	"github.com/jonesrussell/gotender/internal/logger"
	"github.com/jonesrussell/gotender/internal/notifier"
	"github.com/jonesrussell/gotender/internal/pipeline"
	"github.com/jonesrussell/gotender/internal/relevance"
	"github.com/jonesrussell/gotender/internal/seenstore"
)

func newRunCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one notification pass against the configured source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if dryRun {
				cfg.Notify.DryRun = true
			}

			log, err := logger.NewLogger(cfg.Debug)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			store, err := seenstore.Open(cfg.Store)
			if err != nil {
				return fmt.Errorf("open seen store: %w", err)
			}
			defer func() {
				if closeErr := store.Close(); closeErr != nil {
					log.Error("Failed to close seen store", logger.Error(closeErr))
				}
			}()

			strategy, err := newStrategy(cfg.Source.Type, log)
			if err != nil {
				return err
			}

			var sender notifier.Sender
			if cfg.Notify.DryRun {
				sender = notifier.NewDryRunSender(log)
			} else {
				sender = notifier.NewSMTPSender(cfg.Notify.SMTP, log)
			}

			p := pipeline.New(pipeline.Deps{
				Source:     fetcher.New(cfg.Source.Timeout, cfg.Source.UserAgent, log),
				Strategy:   strategy,
				Keywords:   relevance.Parse(cfg.Keywords),
				Store:      store,
				Sender:     sender,
				Recipients: cfg.Notify.Recipients,
				SourceURL:  cfg.Source.URL,
				Retries:    cfg.Notify.Retries,
				Logger:     log,
			})

			summary, err := p.Run(cmd.Context())
			if err != nil {
				log.Error("Run failed", logger.Error(err))
				return err
			}

			fmt.Printf("run %s: %d candidates, %d relevant, %d new, %d notified, %d failed\n",
				summary.RunID, summary.Candidates, summary.Relevant,
				summary.New, summary.Notified, summary.Failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log notifications instead of sending them")
	return cmd
}

func newStrategy(sourceType string, log logger.Logger) (extractor.Strategy, error) {
	switch sourceType {
	case config.SourceTypeAnchor:
		return extractor.NewAnchorStrategy(log), nil
	case config.SourceTypeTable:
		return extractor.NewTableStrategy(log), nil
	default:
		return nil, fmt.Errorf("unknown source type %q", sourceType)
	}
}
