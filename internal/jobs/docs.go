// Package jobs provides scheduled background tasks for the freight service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ChangeFeedPollJob - runs every five seconds to re-read entity version
// markers as a fallback for dropped LISTEN/NOTIFY notifications
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(feed, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Poll failures are logged and retried on the next tick; the push channel
// keeps the feed live in the meantime.
package jobs
