package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"uthread/demo"
	"uthread/fiber"
	"uthread/internal/config"
	"uthread/internal/obs"
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one of the fiber runtime's demo scenarios",
	}

	cmd.AddCommand(newPrintersCommand())
	cmd.AddCommand(newMutexExclusionCommand())
	cmd.AddCommand(newMailboxCommand())
	cmd.AddCommand(newFIFOMutexCommand())
	cmd.AddCommand(newHoLSemaphoreCommand())
	cmd.AddCommand(newRecursiveMutexCommand())

	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

// schedulerOpts loads the command's config and returns the
// fiber.SchedulerOption set every scenario's scheduler should run with,
// wiring cfg.LogLevel into a zerolog logger that writes to the command's
// error output. The scenario results themselves are printed separately
// by printResult.
func schedulerOpts(cmd *cobra.Command) (*config.Config, []fiber.SchedulerOption, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := obs.New(cmd.OutOrStderr(), cfg.LogLevel)
	return cfg, []fiber.SchedulerOption{fiber.WithLogger(logger)}, nil
}

func printResult(r demo.Result) {
	fmt.Printf("%s: %s\n", r.Scenario, r.Summary)
	for k, v := range r.Details {
		fmt.Printf("  %s = %d\n", k, v)
	}
}

func newPrintersCommand() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "printers",
		Short: "Run the ten-printer scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := schedulerOpts(cmd)
			if err != nil {
				return err
			}
			if n == 0 {
				n = cfg.Scenario.Printers
			}
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			printResult(demo.TenPrinters(n, rng, opts...))
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "printers", 0, "number of printer fibers (defaults to config)")
	return cmd
}

func newMutexExclusionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mutex-exclusion",
		Short: "Run the three-fiber mutex exclusion scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, opts, err := schedulerOpts(cmd)
			if err != nil {
				return err
			}
			printResult(demo.MutexExclusion(opts...))
			return nil
		},
	}
}

func newMailboxCommand() *cobra.Command {
	var producers, consumers, messages int
	cmd := &cobra.Command{
		Use:   "mailbox",
		Short: "Run the producers/consumers mailbox scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := schedulerOpts(cmd)
			if err != nil {
				return err
			}
			if producers == 0 {
				producers = cfg.Scenario.MailboxProducers
			}
			if consumers == 0 {
				consumers = cfg.Scenario.MailboxConsumers
			}
			if messages == 0 {
				messages = cfg.Scenario.MailboxMessages
			}
			printResult(demo.Mailbox(producers, consumers, messages, opts...))
			return nil
		},
	}
	cmd.Flags().IntVar(&producers, "producers", 0, "number of producer fibers (defaults to config)")
	cmd.Flags().IntVar(&consumers, "consumers", 0, "number of consumer fibers (defaults to config)")
	cmd.Flags().IntVar(&messages, "messages", 0, "messages posted per producer (defaults to config)")
	return cmd
}

func newFIFOMutexCommand() *cobra.Command {
	var waiters int
	cmd := &cobra.Command{
		Use:   "fifo-mutex",
		Short: "Run the FIFO mutex ordering scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, opts, err := schedulerOpts(cmd)
			if err != nil {
				return err
			}
			printResult(demo.FIFOMutex(waiters, opts...))
			return nil
		},
	}
	cmd.Flags().IntVar(&waiters, "waiters", 5, "number of waiter fibers")
	return cmd
}

func newHoLSemaphoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hol-semaphore",
		Short: "Run the head-of-line blocking semaphore scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, opts, err := schedulerOpts(cmd)
			if err != nil {
				return err
			}
			printResult(demo.HeadOfLineSemaphore(opts...))
			return nil
		},
	}
}

func newRecursiveMutexCommand() *cobra.Command {
	var depth int
	cmd := &cobra.Command{
		Use:   "recursive-mutex",
		Short: "Run the recursive mutex scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := schedulerOpts(cmd)
			if err != nil {
				return err
			}
			if depth == 0 {
				depth = cfg.Scenario.RecursiveMutexDepth
			}
			printResult(demo.RecursiveMutex(depth, opts...))
			return nil
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "recursion depth (defaults to config)")
	return cmd
}
