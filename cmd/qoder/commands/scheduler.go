package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Diaa1123/amz-qoder/internal/scheduler"
	"github.com/Diaa1123/amz-qoder/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage the cron scheduler",
	Long: `Starts the scheduler daemon or inspects its jobs.

Registered jobs:
- daily_trends: trend discovery and niche scoring
- weekly_generation: full listing generation pipeline

Subcommands:
  start   - Start the scheduler daemon
  list    - List registered jobs
  run     - Run one job immediately

Example:
  go run ./cmd/qoder scheduler start
  go run ./cmd/qoder scheduler list
  go run ./cmd/qoder scheduler run daily_trends`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		RunE:  runSchedulerDaemon,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listSchedulerJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run one job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedulerJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// initScheduler wires the pipeline and registers the cron jobs
func initScheduler() (*app, *scheduler.Scheduler, error) {
	a, err := newApp(nil, false)
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(a.log)
	if err := sched.AddJob(jobs.NewDailyTrendJob(a.orch, a.cfg, a.log)); err != nil {
		a.Close()
		return nil, nil, fmt.Errorf("register daily job: %w", err)
	}
	if err := sched.AddJob(jobs.NewWeeklyGenerationJob(a.orch, a.cfg, a.log)); err != nil {
		a.Close()
		return nil, nil, fmt.Errorf("register weekly job: %w", err)
	}

	return a, sched, nil
}

func runSchedulerDaemon(cmd *cobra.Command, args []string) error {
	a, sched, err := initScheduler()
	if err != nil {
		return err
	}
	defer a.Close()

	sched.Start()
	defer sched.Stop()

	fmt.Println("Scheduler started. Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	a.log.Info("Scheduler stopped")
	return nil
}

func listSchedulerJobs(cmd *cobra.Command, args []string) error {
	a, sched, err := initScheduler()
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Println("Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	a, sched, err := initScheduler()
	if err != nil {
		return err
	}
	defer a.Close()

	jobName := args[0]
	fmt.Printf("Running job: %s\n", jobName)

	if err := sched.RunJob(jobName); err != nil {
		return err
	}

	// RunJob is asynchronous; block until the run shows up in history
	history, err := waitForResult(sched, jobName)
	if err != nil {
		return err
	}

	last := history.Results[len(history.Results)-1]
	if !last.Success {
		return fmt.Errorf("job failed: %s", last.Error)
	}

	fmt.Printf("Job completed in %s\n", last.Duration)
	return nil
}

func waitForResult(sched *scheduler.Scheduler, jobName string) (*scheduler.JobHistory, error) {
	for {
		history, err := sched.GetJobHistory(jobName)
		if err != nil {
			return nil, err
		}
		if len(history.Results) > 0 {
			return history, nil
		}
		time.Sleep(time.Second)
	}
}
