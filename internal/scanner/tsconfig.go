package scanner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// pathAlias is one compiled entry of tsconfig.json's compilerOptions.paths,
// expressed as a wildcard prefix and the resolved directory it maps to.
type pathAlias struct {
	prefix       string // text before the "*"
	suffix       string // text after the "*" (usually empty)
	resolvedBase string // baseUrl + the paths value's directory, wildcard stripped
}

// match reports whether specifier matches this alias and, if so, returns
// the wildcard remainder to join onto resolvedBase.
func (a pathAlias) match(specifier string) (string, bool) {
	if !strings.HasPrefix(specifier, a.prefix) || !strings.HasSuffix(specifier, a.suffix) {
		return "", false
	}
	rest := specifier[len(a.prefix):]
	rest = strings.TrimSuffix(rest, a.suffix)
	return rest, true
}

type tsconfigFile struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// loadTSConfigAliases reads tsconfig.json (or override) at the project
// root and compiles its baseUrl/paths declarations into pathAliases,
// ordered by longest prefix first so the most specific alias wins.
func loadTSConfigAliases(projectRoot, override string) ([]pathAlias, error) {
	path := override
	if path == "" {
		path = filepath.Join(projectRoot, "tsconfig.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg tsconfigFile
	if err := json.Unmarshal(stripJSONComments(data), &cfg); err != nil {
		return nil, err
	}
	if cfg.CompilerOptions.BaseURL == "" || len(cfg.CompilerOptions.Paths) == 0 {
		return nil, nil
	}

	base := filepath.Join(projectRoot, cfg.CompilerOptions.BaseURL)

	var aliases []pathAlias
	for pattern, targets := range cfg.CompilerOptions.Paths {
		if len(targets) == 0 {
			continue
		}
		target := targets[0]

		prefix, suffix := splitWildcard(pattern)
		targetPrefix, targetSuffix := splitWildcard(target)
		_ = targetSuffix // the spec's substitution is positional on the single wildcard

		aliases = append(aliases, pathAlias{
			prefix:       prefix,
			suffix:       suffix,
			resolvedBase: filepath.Join(base, targetPrefix),
		})
	}

	sortAliasesByPrefixLength(aliases)
	return aliases, nil
}

func splitWildcard(pattern string) (prefix, suffix string) {
	idx := strings.Index(pattern, "*")
	if idx < 0 {
		return pattern, ""
	}
	return pattern[:idx], pattern[idx+1:]
}

func sortAliasesByPrefixLength(aliases []pathAlias) {
	for i := 1; i < len(aliases); i++ {
		for j := i; j > 0 && len(aliases[j].prefix) > len(aliases[j-1].prefix); j-- {
			aliases[j], aliases[j-1] = aliases[j-1], aliases[j]
		}
	}
}

// stripJSONComments removes // line comments so tsconfig.json (which
// permits them) parses with encoding/json. Comments inside string
// literals are left untouched.
func stripJSONComments(data []byte) []byte {
	var out []byte
	inString := false
	escaped := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}
		if c == '/' && i+1 < len(data) && data[i+1] == '/' {
			for i < len(data) && data[i] != '\n' {
				i++
			}
			out = append(out, '\n')
			continue
		}
		out = append(out, c)
	}
	return out
}
