// Package astanalyzer turns one source file into a FileFacts record: the
// per-file extraction stage of the pipeline, and the bounded worker pool
// that runs it concurrently over a project's file list.
package astanalyzer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/compscan/compscan/domain"
	"github.com/compscan/compscan/internal/corerr"
	"github.com/compscan/compscan/internal/jsast"
	"github.com/compscan/compscan/internal/vuesfc"
)

// Resolver is the subset of internal/scanner.FileScanner the analyzer
// needs to turn a written specifier into an in-project FileId.
type Resolver interface {
	ResolveImport(specifier string, fromFile domain.FileId) (domain.FileId, bool)
}

// ASTAnalyzer extracts FileFacts from one file at a time.
type ASTAnalyzer struct {
	resolver Resolver
}

// New returns an ASTAnalyzer that resolves import specifiers through resolver.
func New(resolver Resolver) *ASTAnalyzer {
	return &ASTAnalyzer{resolver: resolver}
}

// Analyze parses fileId and extracts its FileFacts. It returns (nil, nil)
// when the file contributes nothing (no component, no export) — that is
// not a failure. It returns (nil, failure) when the file could not be
// parsed; it never returns both non-nil.
func (a *ASTAnalyzer) Analyze(fileId domain.FileId) (*domain.FileFacts, *domain.ParseFailure) {
	source, err := os.ReadFile(fileId.String())
	if err != nil {
		return nil, &domain.ParseFailure{FileId: fileId, Reason: corerr.ReasonIoError, Detail: err.Error()}
	}

	ext := strings.ToLower(filepath.Ext(fileId.String()))
	if ext == ".vue" {
		return a.analyzeVue(fileId, source)
	}
	return a.analyzeJSLike(fileId, source, ext)
}

func (a *ASTAnalyzer) analyzeJSLike(fileId domain.FileId, source []byte, ext string) (*domain.FileFacts, *domain.ParseFailure) {
	switch ext {
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs", ".mts", ".cts":
	default:
		return nil, &domain.ParseFailure{FileId: fileId, Reason: corerr.ReasonUnsupportedExtension}
	}

	ast, err := jsast.ParseForLanguage(fileId.String(), source)
	if err != nil {
		return nil, &domain.ParseFailure{FileId: fileId, Reason: corerr.ReasonSyntaxError, Detail: err.Error()}
	}

	facts := domain.NewFileFacts(fileId, fileId.Base())
	e := &extractor{facts: facts, resolver: a.resolver, fromFile: fileId}
	e.run(ast)

	if !facts.HasContribution() {
		return nil, nil
	}
	return facts, nil
}

func (a *ASTAnalyzer) analyzeVue(fileId domain.FileId, source []byte) (*domain.FileFacts, *domain.ParseFailure) {
	sfc := vuesfc.Parse(string(source))

	facts := domain.NewFileFacts(fileId, fileId.Base())

	if sfc.Script != nil {
		scriptAST, err := jsast.ParseForLanguage(scriptFilenameFor(fileId, sfc.Script), []byte(sfc.Script.Source))
		if err != nil {
			return nil, &domain.ParseFailure{FileId: fileId, Reason: corerr.ReasonSyntaxError, Detail: err.Error()}
		}
		e := &extractor{facts: facts, resolver: a.resolver, fromFile: fileId}
		e.run(scriptAST)
	}

	for _, tag := range sfc.TemplateTags {
		a.recordTemplateUsage(facts, tag)
	}

	if !facts.HasContribution() {
		return nil, nil
	}
	return facts, nil
}

// recordTemplateUsage matches a template custom tag against a
// previously-imported local/imported name and records a usage, per
// spec.md §4.2's Vue dispatch (no further prop extraction from templates).
func (a *ASTAnalyzer) recordTemplateUsage(facts *domain.FileFacts, tag string) {
	for target, edge := range facts.Imports {
		for _, spec := range edge.Specifiers {
			if spec.Local == tag || spec.Imported == tag {
				facts.RecordUsage(target, nil)
				return
			}
		}
	}
}

func scriptFilenameFor(fileId domain.FileId, script *vuesfc.Script) string {
	if script.Lang == "ts" {
		return fileId.String() + ".ts"
	}
	return fileId.String() + ".js"
}
