package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/compscan/compscan/core"
	"github.com/compscan/compscan/domain"
	"github.com/compscan/compscan/internal/config"
	"github.com/compscan/compscan/service"
)

var (
	configPath string
	outputPath string
	noProgress bool
	forceWrite bool
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Build the component dependency graph and report findings",
		Long: `Analyze scans a React or Vue project, builds its component dependency
graph, and writes a single JSON document with the graph and the findings
(circular dependencies, unused props, dead code, coupling, hub components).`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: compscan-report.json)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	cmd.Flags().BoolVarP(&forceWrite, "force", "f", false, "Overwrite the output file without prompting")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	projectPath := args[0]

	cfg, err := config.Load(configPath, projectPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if outputPath != "" {
		cfg.OutputPath = outputPath
	}

	if err := confirmOverwrite(cfg.OutputPath); err != nil {
		return err
	}

	pm := service.NewProgressManager(!noProgress)
	defer pm.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	executor := service.NewParallelExecutorWithProgress(cfg.ToCoreConfig(), pm)

	var result domain.CoreResult
	task := newAnalyzeTask(cfg.ToCoreConfig(), pm, &result)
	if err := executor.Execute(ctx, []domain.ExecutableTask{task}); err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if len(result.ParseFailures) > 0 {
		for _, pf := range result.ParseFailures {
			fmt.Fprintf(os.Stderr, "warning: %s: %s (%s)\n", pf.FileId, pf.Reason, pf.Detail)
		}
	}

	file, err := os.Create(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := service.WriteAnalysisJSON(file, result, cfg.ToCoreConfig(), time.Now()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	absPath, _ := filepath.Abs(cfg.OutputPath)
	fmt.Printf("Report written to %s\n", absPath)
	fmt.Printf("%d nodes, %d edges, %d circular dependencies, %d parse failures\n",
		len(result.Graph.Nodes), result.Graph.Metadata.EdgeCount,
		len(result.Findings.CircularDependencies), len(result.ParseFailures))

	return nil
}

// confirmOverwrite prompts before clobbering an existing report, unless
// --force was given or the file does not yet exist.
func confirmOverwrite(path string) error {
	if forceWrite {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("%s already exists, overwrite", path),
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		return fmt.Errorf("aborted: %s not overwritten", path)
	}
	return nil
}

// analyzeTask adapts core.Analyze to domain.ExecutableTask so it can run
// under ParallelExecutorImpl's top-level cancellation token and timeout.
type analyzeTask struct {
	cfg      domain.CoreConfig
	progress domain.ProgressManager
	out      *domain.CoreResult
}

func newAnalyzeTask(cfg domain.CoreConfig, progress domain.ProgressManager, out *domain.CoreResult) *analyzeTask {
	return &analyzeTask{cfg: cfg, progress: progress, out: out}
}

func (t *analyzeTask) Name() string    { return "analyze" }
func (t *analyzeTask) IsEnabled() bool { return true }

func (t *analyzeTask) Execute(ctx context.Context) error {
	result, err := core.Analyze(ctx, t.cfg, t.progress)
	if err != nil {
		return err
	}
	*t.out = result
	return nil
}
