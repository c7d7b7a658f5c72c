package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-auditor/internal/config"
	"github.com/jonathan/resume-auditor/internal/counterfactual"
	"github.com/jonathan/resume-auditor/internal/db"
	"github.com/jonathan/resume-auditor/internal/logger"
	"github.com/jonathan/resume-auditor/internal/perturb"
	"github.com/jonathan/resume-auditor/internal/report"
	"github.com/jonathan/resume-auditor/internal/schemas"
	"github.com/jonathan/resume-auditor/internal/types"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run the full counterfactual fairness audit",
	Long:  "Runs the standard counterfactual test suite (gender proxy, name redaction, university swap, gap insertion) for a resume pool against a job description, producing a FairnessReport JSON with per-test pass/fail verdicts.",
	RunE:  runAudit,
}

var (
	auditResumes    string
	auditJob        string
	auditConfig     string
	auditOutput     string
	auditRanker     string
	auditCSVIDCol   string
	auditCSVTextCol string
	auditParallel   bool
	auditJSONLogs   bool
	auditDebug      bool
	auditFailOnFail bool
)

func init() {
	auditCmd.Flags().StringVarP(&auditResumes, "resumes", "r", "", "Path to resume pool file, JSON or CSV (required)")
	auditCmd.Flags().StringVarP(&auditJob, "job", "j", "", "Path to job description text file (required)")
	auditCmd.Flags().StringVarP(&auditConfig, "config", "c", "", "Path to audit config JSON file")
	auditCmd.Flags().StringVarP(&auditOutput, "out", "o", "", "Path to output FairnessReport JSON file (required)")
	auditCmd.Flags().StringVar(&auditRanker, "ranker", "", "Ranker to audit: tfidf, bm25, or hybrid (overrides config)")
	auditCmd.Flags().StringVar(&auditCSVIDCol, "csv-id-col", "id", "CSV column holding resume ids")
	auditCmd.Flags().StringVar(&auditCSVTextCol, "csv-text-col", "text", "CSV column holding resume text")
	auditCmd.Flags().BoolVar(&auditParallel, "parallel", false, "Run tests concurrently, one goroutine per perturbation type")
	auditCmd.Flags().BoolVar(&auditJSONLogs, "json-logs", false, "Emit JSON logs instead of console output")
	auditCmd.Flags().BoolVar(&auditDebug, "debug", false, "Enable debug logging")
	auditCmd.Flags().BoolVar(&auditFailOnFail, "fail-on-violation", false, "Exit non-zero when the audit's overall verdict is failed")

	if err := auditCmd.MarkFlagRequired("resumes"); err != nil {
		panic(fmt.Sprintf("failed to mark resumes flag as required: %v", err))
	}
	if err := auditCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := auditCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(auditCmd)
}

func runAudit(_ *cobra.Command, _ []string) error {
	log, err := logger.New(auditJSONLogs, auditDebug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// 1. Load configuration
	cfg := config.Default()
	if auditConfig != "" {
		if schemaPath := schemas.ResolveSchemaPath(schemas.ConfigSchemaPath); schemaPath != "" {
			if err := schemas.ValidateDocument(schemaPath, auditConfig); err != nil {
				return fmt.Errorf("config failed schema validation: %w", err)
			}
		}
		cfg, err = config.Load(auditConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if auditRanker != "" {
		cfg.Ranker = auditRanker
	}
	if auditParallel {
		cfg.Parallel = true
	}

	// 2. Load inputs
	pool, err := loadPool(auditResumes, auditCSVIDCol, auditCSVTextCol)
	if err != nil {
		return fmt.Errorf("failed to load resume pool: %w", err)
	}

	query, err := loadJob(auditJob)
	if err != nil {
		return err
	}

	// 3. Build the audit subject and tester
	ranker, err := buildRanker(cfg.Ranker)
	if err != nil {
		return err
	}

	generatorConfig, err := cfg.GeneratorConfig()
	if err != nil {
		return fmt.Errorf("invalid perturbation config: %w", err)
	}
	tester := counterfactual.NewTester(ranker, perturb.NewGenerator(generatorConfig), log)

	log.Info("starting fairness audit",
		zap.String("ranker", cfg.Ranker),
		zap.Int("pool_size", len(pool)),
		zap.Bool("parallel", cfg.Parallel))

	// 4. Run the test suite
	var results map[string]*types.TestResult
	if cfg.Parallel {
		results, err = tester.RunAllParallel(query, pool, cfg.UniversityTiers)
	} else {
		results, err = tester.RunAll(query, pool, cfg.UniversityTiers)
	}
	if err != nil {
		return fmt.Errorf("fairness audit failed: %w", err)
	}

	// 5. Aggregate verdicts and write the report
	fairnessReport := counterfactual.GenerateReport(results, cfg.Thresholds)

	if err := report.WriteJSON(fairnessReport, auditOutput); err != nil {
		return err
	}
	report.NewPrinter(os.Stdout).PrintReport(fairnessReport)

	// 6. Persist when a database is configured
	if cfg.DatabaseURL != "" {
		if err := persistAudit(context.Background(), cfg, query, pool, results, fairnessReport); err != nil {
			return err
		}
	}

	if auditFailOnFail && !fairnessReport.OverallPassed {
		return fmt.Errorf("fairness audit failed: %d tests ran, overall verdict failed", len(fairnessReport.Summary))
	}
	return nil
}

// persistAudit records the run and its artifacts in PostgreSQL.
func persistAudit(ctx context.Context, cfg *config.Config, query string, pool []types.Resume, results map[string]*types.TestResult, fairnessReport *types.FairnessReport) error {
	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.CreateAuditRun(ctx, cfg.Ranker, query, len(pool))
	if err != nil {
		return err
	}

	for testName, result := range results {
		if err := store.SaveTestResult(ctx, runID, testName, result); err != nil {
			return err
		}
	}
	if err := store.SaveFairnessReport(ctx, runID, fairnessReport); err != nil {
		return err
	}

	status := "failed"
	if fairnessReport.OverallPassed {
		status = "passed"
	}
	return store.CompleteAuditRun(ctx, runID, status)
}
