package domain

import (
	"time"

	"github.com/compscan/compscan/internal/corerr"
)

// Framework is the supported component framework for a project.
type Framework string

const (
	FrameworkReact Framework = "react"
	FrameworkVue   Framework = "vue"
)

// CoreConfig is the single explicit configuration value accepted by the
// core entry point. No dynamic property lookup and no environment-variable
// reads happen below this boundary; every external collaborator (CLI,
// config-file loader) is responsible for producing one of these.
type CoreConfig struct {
	ProjectPath      string
	Framework        Framework
	UserExcludes     []string
	Concurrency      int // default = hardware parallelism when 0
	PerFileTimeout   time.Duration // 0 = unbounded
	TsconfigOverride string        // "" = probe project root
}

// ParseFailure records one file the analyzer could not process. It is
// data, not an error: the pipeline always attempts to complete its
// remaining work after recording one.
type ParseFailure struct {
	FileId FileId
	Reason corerr.ParseFailureReason
	Detail string
}

// CoreResult is the single output value of the core entry point.
type CoreResult struct {
	Graph         *Graph
	Findings      Findings
	ParseFailures []ParseFailure
}
