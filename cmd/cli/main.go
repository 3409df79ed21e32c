package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finaspirants/sprintcap/internal/config"
	"github.com/finaspirants/sprintcap/pkg/clients/excelclient"
	"github.com/finaspirants/sprintcap/pkg/clients/mailclient"
	"github.com/finaspirants/sprintcap/pkg/core/services"
	"github.com/finaspirants/sprintcap/pkg/metrics"
	"github.com/finaspirants/sprintcap/pkg/report"
	"github.com/finaspirants/sprintcap/pkg/utils/logging"
	"github.com/finaspirants/sprintcap/pkg/web"
)

// App holds the application dependencies
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	ctx    context.Context
}

var (
	verbose    bool
	configPath string
	app        *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sprintcap",
		Short: "Sprint capacity automation - analyze team leave and plan sprint capacity",
		Long:  `A CLI tool that reads the team's leave spreadsheet, maps leave and on-call rotations onto sprints, and produces capacity reports.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on the console")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file")

	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(emailCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(setupCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and loads configuration
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application")

	app.logger.Debug("Loading configuration")
	if configPath != "" {
		app.cfg, err = config.LoadFromPath(configPath)
	} else {
		app.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	return nil
}

// runAnalysis opens the workbook and runs the full capacity pipeline.
func runAnalysis(ctx context.Context) (*services.AnalysisResult, error) {
	start := time.Now()

	wb, err := excelclient.Open(app.cfg.ExcelFilePath, app.cfg.ExcelSheetName, time.Now())
	if err != nil {
		metrics.AnalysisRunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	defer wb.Close()

	app.logger.Info("Opened workbook",
		zap.String("file", app.cfg.ExcelFilePath),
		zap.String("sheet", wb.LeaveSheet()),
	)

	result, err := services.RunAnalysis(ctx, wb, app.cfg, app.logger, time.Now())
	metrics.AnalysisDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AnalysisRunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.AnalysisRunsTotal.WithLabelValues("success").Inc()
	metrics.ObserveResult(result)
	return result, nil
}

func reportOptions() report.Options {
	return report.Options{
		ReferenceDate: app.cfg.ReferenceDate(),
		DurationDays:  app.cfg.SprintDurationDays,
	}
}

// Command definitions

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the capacity analysis and render a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			save, _ := cmd.Flags().GetBool("save")
			outDir, _ := cmd.Flags().GetString("output")

			result, err := runAnalysis(app.ctx)
			if err != nil {
				return err
			}

			opts := reportOptions()
			var content, ext string
			switch format {
			case "text":
				content = report.Text(result.Capacities, result.GeneratedAt, opts)
				ext = "txt"
			case "html":
				content, err = report.HTML(result.Capacities, result.GeneratedAt, opts)
				if err != nil {
					return err
				}
				ext = "html"
			default:
				return fmt.Errorf("unknown format %q: use text or html", format)
			}

			if save {
				path, err := report.Save(outDir, report.Filename(result.GeneratedAt, ext), content)
				if err != nil {
					return err
				}
				fmt.Printf("Report saved to: %s\n", path)
				return nil
			}

			fmt.Print(content)
			return nil
		},
	}

	cmd.Flags().String("format", "text", "Report format: text or html")
	cmd.Flags().Bool("save", false, "Save the report to the reports folder instead of printing it")
	cmd.Flags().String("output", report.DefaultReportsDir, "Directory for saved reports")

	return cmd
}

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show a one-line capacity summary per sprint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := runAnalysis(app.ctx)
			if err != nil {
				return err
			}

			opts := reportOptions()
			rule := strings.Repeat("=", 60)
			fmt.Println(rule)
			fmt.Println("SPRINT CAPACITY ANALYSIS SUMMARY")
			fmt.Println(rule)
			fmt.Printf("Analysis Date: %s\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Team Members Analyzed: %d\n", len(result.Employees))
			fmt.Printf("Sprints Analyzed: %d\n\n", len(result.Capacities))

			for _, c := range result.Capacities {
				fmt.Printf("Sprint %d (%s - %s): %.1f%% capacity, %d working days, %.1f/%.1f hrs (Members: %d, On leave: %d)\n",
					report.AbsoluteSprintNumber(c.Sprint.Start, opts),
					c.Sprint.Start.Format("Jan 02"),
					c.Sprint.End.Format("Jan 02"),
					c.CapacityPercent,
					c.WorkingDays,
					c.ActualHours,
					c.IdealHours,
					c.TotalMembers,
					len(c.MembersOnLeave),
				)
			}
			fmt.Println(rule)
			return nil
		},
	}
}

func emailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "email",
		Short: "Send the capacity report for the next two sprints by email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			result, err := runAnalysis(app.ctx)
			if err != nil {
				return err
			}

			opts := reportOptions()
			emailBody, err := report.Email(result.Capacities, result.GeneratedAt, opts)
			if err != nil {
				return err
			}
			fullHTML, err := report.HTML(result.Capacities, result.GeneratedAt, opts)
			if err != nil {
				return err
			}

			if dryRun {
				path, err := report.Save(report.DefaultReportsDir,
					report.Filename(result.GeneratedAt, "email.html"), emailBody)
				if err != nil {
					return err
				}
				fmt.Printf("Dry run: email body saved to %s\n", path)
				fmt.Println("Copy and paste it into your email client, or run without --dry-run to send.")
				return nil
			}

			client := mailclient.NewClient(app.cfg.Email, app.logger)
			recipients := client.Recipients()
			textBody := report.Text(result.Capacities[2:4], result.GeneratedAt, opts)

			err = client.SendReport(app.ctx, report.Subject(result.GeneratedAt),
				textBody, emailBody, fullHTML, recipients)
			if err != nil {
				metrics.EmailsSentTotal.WithLabelValues("error").Inc()
				return err
			}
			metrics.EmailsSentTotal.WithLabelValues("success").Inc()

			fmt.Printf("Capacity report sent to: %s\n", strings.Join(recipients, ", "))
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Save the email body to a file instead of sending")

	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the capacity dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			ctx, stop := signal.NotifyContext(app.ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := web.NewServer(addr, runAnalysis, reportOptions(), app.logger)
			fmt.Printf("Dashboard listening on %s (Ctrl+C to stop)\n", addr)
			return server.ListenAndServe(ctx)
		},
	}

	cmd.Flags().String("addr", ":8080", "Listen address for the dashboard")

	return cmd
}

func setupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Interactively create or update the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg
			scanner := bufio.NewScanner(os.Stdin)

			fmt.Println("Sprint Capacity Configuration Setup")
			fmt.Println(strings.Repeat("=", 40))

			fmt.Println("\n1. Sprint Configuration:")
			if v := prompt(scanner, "Sprint start date (YYYY-MM-DD)", cfg.SprintStartDate); v != "" {
				if _, err := time.Parse("2006-01-02", v); err != nil {
					return fmt.Errorf("invalid date %q: %w", v, err)
				}
				cfg.SprintStartDate = v
			}
			if v := prompt(scanner, "Sprint duration in days", strconv.Itoa(cfg.SprintDurationDays)); v != "" {
				days, err := strconv.Atoi(v)
				if err != nil || days < 1 {
					return fmt.Errorf("sprint duration must be a positive number")
				}
				cfg.SprintDurationDays = days
			}

			fmt.Println("\n2. File Configuration:")
			if v := prompt(scanner, "Excel file path", cfg.ExcelFilePath); v != "" {
				cfg.ExcelFilePath = v
			}
			if v := prompt(scanner, "Excel sheet name (blank to auto-detect)", cfg.ExcelSheetName); v != "" {
				cfg.ExcelSheetName = v
			}

			fmt.Println("\n3. Email Configuration (optional):")
			if v := prompt(scanner, "SMTP server", cfg.Email.SMTPServer); v != "" {
				cfg.Email.SMTPServer = v
			}
			if v := prompt(scanner, "Sender email", cfg.Email.SenderEmail); v != "" {
				cfg.Email.SenderEmail = v
			}
			if v := prompt(scanner, "Scrum master email", cfg.Email.ScrumMasterEmail); v != "" {
				cfg.Email.ScrumMasterEmail = v
			}

			target := configPath
			if target == "" {
				target = "sprintcap.yaml"
			}
			if err := config.Write(cfg, target); err != nil {
				return err
			}

			fmt.Printf("\nConfiguration saved to %s\n", target)
			return nil
		},
	}
}

func prompt(scanner *bufio.Scanner, label, current string) string {
	fmt.Printf("%s [%s]: ", label, current)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}
