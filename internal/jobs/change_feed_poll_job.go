package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// changePoller is the slice of the change feed the job drives.
type changePoller interface {
	Poll(ctx context.Context) error
}

// ChangeFeedPollJob re-reads the version markers on a fixed interval. It is
// the fallback behind the LISTEN/NOTIFY push channel: a notification dropped
// during a reconnect is picked up by the next poll, deduplicated by the feed
// itself.
type ChangeFeedPollJob struct {
	poller changePoller
	cron   *cron.Cron
	logger *slog.Logger
}

// NewChangeFeedPollJob creates the poll fallback job. Runs every five
// seconds.
func NewChangeFeedPollJob(poller changePoller, logger *slog.Logger) *ChangeFeedPollJob {
	return &ChangeFeedPollJob{
		poller: poller,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "change_feed_poll_job"),
	}
}

// Start begins polling.
func (j *ChangeFeedPollJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * * *", func() {
		ctx := context.Background()
		if err := j.poller.Poll(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Change feed poll failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Change feed poll job started (running every 5 seconds)")
	return nil
}

// Stop stops the poll job.
func (j *ChangeFeedPollJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Change feed poll job stopped")
}
