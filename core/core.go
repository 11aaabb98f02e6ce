// Package core exposes the single library-level entry point the rest of
// the system depends on (spec.md §6): Analyze runs the full FileScanner →
// ASTAnalyzer → GraphBuilder → AnalysisEngine pipeline over a project and
// returns a frozen CoreResult. Grounded on app/analyze_usecase.go's
// orchestration shape (collect files, run stages, assemble one result
// with a total duration), adapted from the teacher's complexity/dead-code
// use-case fan-out to this spec's four-stage pipeline.
package core

import (
	"context"
	"fmt"

	"github.com/compscan/compscan/domain"
	"github.com/compscan/compscan/internal/astanalyzer"
	"github.com/compscan/compscan/internal/graphbuilder"
	"github.com/compscan/compscan/internal/findings"
	"github.com/compscan/compscan/internal/scanner"
)

// Analyze runs the pipeline for config and returns the resulting graph,
// findings, and any per-file parse failures. The only error return is
// fatal (ProjectNotFound, InvalidFramework, or InvalidGraph); anything
// file-specific is reported through CoreResult.ParseFailures instead.
func Analyze(ctx context.Context, config domain.CoreConfig, progress domain.ProgressManager) (domain.CoreResult, error) {
	sc, err := scanner.New(config.ProjectPath, config.Framework, config.UserExcludes, config.TsconfigOverride)
	if err != nil {
		return domain.CoreResult{}, err
	}

	fileIds, err := sc.ScanFiles()
	if err != nil {
		return domain.CoreResult{}, fmt.Errorf("scanning project files: %w", err)
	}

	analyzer := astanalyzer.New(sc)
	facts, parseFailures := analyzer.AnalyzeAll(ctx, fileIds, config.Concurrency, config.PerFileTimeout, progress)

	graph := graphbuilder.Build(facts)

	result, err := findings.Analyze(graph)
	if err != nil {
		return domain.CoreResult{}, err
	}

	return domain.CoreResult{
		Graph:         graph,
		Findings:      result,
		ParseFailures: parseFailures,
	}, nil
}
