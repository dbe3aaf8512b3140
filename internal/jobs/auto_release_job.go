package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"peermint/internal/core/application/usecases/commands"
	"peermint/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// AutoReleaseJob sweeps for orders whose release deadline has passed and
// releases their custody to the helper. Each order is released through the
// same command handler the API uses, so the deadline is re-checked against
// current database state inside the transaction.
type AutoReleaseJob struct {
	handler    commands.AutoReleaseCommandHandler
	uowFactory commands.OrderUoWFactory
	interval   time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewAutoReleaseJob creates the deadline sweep job. interval controls how
// often the sweep runs.
func NewAutoReleaseJob(
	handler commands.AutoReleaseCommandHandler,
	uowFactory commands.OrderUoWFactory,
	interval time.Duration,
	logger *slog.Logger,
) *AutoReleaseJob {
	return &AutoReleaseJob{
		handler:    handler,
		uowFactory: uowFactory,
		interval:   interval,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "auto_release_job"),
	}
}

// Start begins the periodic deadline sweep.
func (j *AutoReleaseJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-release job started", "interval", j.interval.String())
	return nil
}

// Stop stops the deadline sweep.
func (j *AutoReleaseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-release job stopped")
}

func (j *AutoReleaseJob) sweep() {
	ctx := context.Background()
	now := time.Now().UTC()

	repository := j.uowFactory.Create().OrderRepository()
	releasable, err := repository.GetAllReleasable(ctx, now)
	if err != nil {
		j.logger.ErrorContext(ctx, "Auto-release sweep failed to list orders", "error", err)
		return
	}

	for _, candidate := range releasable {
		cmd, err := commands.NewAutoReleaseCommand(candidate.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Auto-release command rejected", "order_id", candidate.ID(), "error", err)
			continue
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// A concurrent release, dispute, or deadline change between the
			// listing and the transaction is an expected race, not a failure.
			if errors.Is(err, order.ErrNotExpired) || errors.Is(err, order.ErrInvalidStatus) {
				continue
			}
			j.logger.ErrorContext(ctx, "Auto-release failed", "order_id", candidate.ID(), "error", err)
		}
	}
}
