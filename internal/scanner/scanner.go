// Package scanner discovers project-local source files and resolves
// module specifiers to file identities, following the file-walking and
// gitignore conventions of the broader toolchain it was adapted from.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/compscan/compscan/domain"
	"github.com/compscan/compscan/internal/corerr"
)

var reactExtensions = []string{".js", ".jsx", ".ts", ".tsx"}
var vueExtensions = []string{".vue", ".js", ".ts"}

var defaultExcludeDirs = map[string]struct{}{
	"node_modules": {},
	"dist":         {},
	"build":        {},
	".git":         {},
	"coverage":     {},
}

var defaultExcludeFilePatterns = []string{"*.test.*", "*.spec.*", "*.d.ts"}

// FileScanner enumerates project source files and resolves module
// specifiers to in-project FileIds.
type FileScanner struct {
	projectPath  string
	framework    domain.Framework
	userExcludes []string
	gi           *ignore.GitIgnore
	aliases      []pathAlias
}

// New returns a FileScanner rooted at projectPath for the given framework,
// loading .gitignore and tsconfig alias data once up front.
func New(projectPath string, framework domain.Framework, userExcludes []string, tsconfigOverride string) (*FileScanner, error) {
	info, err := os.Stat(projectPath)
	if err != nil || !info.IsDir() {
		return nil, corerr.ProjectNotFound(projectPath)
	}
	if framework != domain.FrameworkReact && framework != domain.FrameworkVue {
		return nil, corerr.InvalidFramework(string(framework))
	}

	abs, err := filepath.Abs(projectPath)
	if err != nil {
		abs = projectPath
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	aliases, _ := loadTSConfigAliases(abs, tsconfigOverride)

	return &FileScanner{
		projectPath:  abs,
		framework:    framework,
		userExcludes: userExcludes,
		gi:           loadGitIgnore(abs),
		aliases:      aliases,
	}, nil
}

func extensionsFor(framework domain.Framework) []string {
	if framework == domain.FrameworkVue {
		return vueExtensions
	}
	return reactExtensions
}

// ScanFiles enumerates project source files, deduplicated and sorted
// lexicographically. IO errors on individual files are skipped, not
// fatal.
func (s *FileScanner) ScanFiles() ([]domain.FileId, error) {
	exts := extensionsFor(s.framework)
	seen := make(map[domain.FileId]struct{})
	var out []domain.FileId

	err := filepath.Walk(s.projectPath, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return nil // individual IO errors are not fatal
		}

		relPath, relErr := filepath.Rel(s.projectPath, path)
		if relErr == nil && s.gi != nil && s.gi.MatchesPath(relPath) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			base := filepath.Base(path)
			if _, excluded := defaultExcludeDirs[base]; excluded {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}
		if !hasExt(path, exts) {
			return nil
		}
		if matchesAny(filepath.Base(path), defaultExcludeFilePatterns) {
			return nil
		}
		if matchesAny(filepath.Base(path), s.userExcludes) || matchesAny(path, s.userExcludes) {
			return nil
		}

		id := domain.NewFileId(path)
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			out = append(out, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Sort(domain.ByFileId(out))
	return out, nil
}

// InProjectScope reports whether path is a descendant of the project root.
func (s *FileScanner) InProjectScope(path string) bool {
	rel, err := filepath.Rel(s.projectPath, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ResolveImport resolves a module specifier written in fromFile to a
// FileId. Returns ("", false) for bare third-party specifiers and for
// anything that does not resolve to an existing file. The resolved path
// is not checked against the project root: a `../` specifier that leaves
// the project and names an existing file is returned as well.
func (s *FileScanner) ResolveImport(specifier string, fromFile domain.FileId) (domain.FileId, bool) {
	candidate, ok := s.resolveSpecifierBase(specifier, fromFile)
	if !ok {
		return "", false
	}
	if resolved, ok := s.probeExtensions(candidate); ok {
		return resolved, true
	}
	return "", false
}

// resolveSpecifierBase applies the alias/relative resolution order (first
// match wins) and returns a candidate path with no extension probing yet.
func (s *FileScanner) resolveSpecifierBase(specifier string, fromFile domain.FileId) (string, bool) {
	for _, alias := range s.aliases {
		if rest, ok := alias.match(specifier); ok {
			return filepath.Join(alias.resolvedBase, rest), true
		}
	}

	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		dir := filepath.Dir(string(fromFile))
		return filepath.Join(dir, specifier), true
	}
	if strings.HasPrefix(specifier, "/") {
		return filepath.Join(s.projectPath, specifier), true
	}

	return "", false
}

func (s *FileScanner) probeExtensions(candidate string) (domain.FileId, bool) {
	exts := extensionsFor(s.framework)

	if hasExt(candidate, exts) {
		if fileExists(candidate) {
			return domain.NewFileId(candidate), true
		}
	}
	for _, ext := range exts {
		p := candidate + ext
		if fileExists(p) {
			return domain.NewFileId(p), true
		}
	}
	for _, ext := range exts {
		p := filepath.Join(candidate, "index"+ext)
		if fileExists(p) {
			return domain.NewFileId(p), true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func hasExt(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func matchesAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if matched, err := filepath.Match(p, s); err == nil && matched {
			return true
		}
	}
	return false
}

func loadGitIgnore(root string) *ignore.GitIgnore {
	gitignorePath := filepath.Join(root, ".gitignore")
	gi, err := ignore.CompileIgnoreFile(gitignorePath)
	if err != nil {
		return nil
	}
	return gi
}
