package notifier

import (
	"context"

	"github.com/jonesrussell/gotender/internal/logger"
)

// DryRunSender logs what would have been sent and reports success. Used when
// notify.dry_run is set.
type DryRunSender struct {
	logger logger.Logger
}

func NewDryRunSender(log logger.Logger) *DryRunSender {
	return &DryRunSender{logger: log}
}

func (s *DryRunSender) Send(_ context.Context, msg Message, recipients []string) error {
	s.logger.Info("[dry-run] would send notification",
		logger.String("subject", msg.Subject),
		logger.Strings("recipients", recipients),
	)
	return nil
}
