// Package jobs provides scheduled background tasks for the workflow engine.
//
// Jobs run on github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// ScheduledTriggerJob raises the "scheduled" automation trigger for every order
// whose status is not terminal. Its spec defaults to "0 */5 * * * *".
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.NewScheduledTriggerJob(orders, trigger, spec, terminal, logger))
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failing order is logged and skipped; the pass continues with the next one.
package jobs
