package shaders

import (
	"crypto/sha256"
	"os"
	"sync"

	"github.com/gogpu/naga"

	"github.com/hollowgrove/marcher/engine/core"
)

// Stage identifies the pipeline stage a module is compiled for. WGSL entry
// points are fixed per stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// EntryPoint returns the WGSL entry point name for the stage.
func (s Stage) EntryPoint() string {
	if s == StageVertex {
		return "vs_main"
	}
	return "fs_main"
}

// Options participate in the cache key, so toggling them forces a recompile
// even for unchanged source.
type Options struct {
	// DebugInfo keeps the WGSL source text on the artifact for diagnostics.
	DebugInfo bool
	// Optimize is recorded for cache identity. The current toolchain emits
	// unoptimized SPIR-V either way.
	Optimize bool
}

// Artifact is one compiled shader module: SPIR-V words plus the identity it
// was compiled under.
type Artifact struct {
	Name   string
	Stage  Stage
	SPIRV  []uint32
	Source string // empty unless Options.DebugInfo
}

type cacheKey struct {
	sourceHash [32]byte
	stage      Stage
	options    Options
}

// Compiler compiles WGSL to SPIR-V and memoizes the result. Identical
// (source, stage, options) triples compile exactly once. Safe for
// concurrent use; the hot-reload watcher compiles from its own goroutine.
type Compiler struct {
	mu       sync.Mutex
	cache    map[cacheKey]*Artifact
	compiles uint64
	options  Options
}

func NewCompiler(options Options) *Compiler {
	return &Compiler{
		cache:   make(map[cacheKey]*Artifact),
		options: options,
	}
}

// Compile returns the SPIR-V artifact for the given WGSL source and stage,
// compiling it on a cache miss. Compile failures carry the toolchain
// diagnostic verbatim and leave the cache untouched.
func (c *Compiler) Compile(name string, source string, stage Stage) (*Artifact, error) {
	key := cacheKey{
		sourceHash: sha256.Sum256([]byte(source)),
		stage:      stage,
		options:    c.options,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if artifact, ok := c.cache[key]; ok {
		core.LogDebug("shader %q (%s): cache hit", name, stage)
		return artifact, nil
	}

	c.compiles++
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, &core.ShaderCompileError{Name: name, Diagnostic: err.Error()}
	}

	artifact := &Artifact{
		Name:  name,
		Stage: stage,
		SPIRV: spirvWords(spirv),
	}
	if c.options.DebugInfo {
		artifact.Source = source
	}
	c.cache[key] = artifact
	core.LogDebug("shader %q (%s): compiled, %d words", name, stage, len(artifact.SPIRV))
	return artifact, nil
}

// CompileBuiltin compiles an embedded module by name.
func (c *Compiler) CompileBuiltin(name string, stage Stage) (*Artifact, error) {
	source, ok := BuiltinSource(name)
	if !ok {
		return nil, &core.ShaderCompileError{Name: name, Diagnostic: "no such built-in module"}
	}
	return c.Compile(name, source, stage)
}

// CompileFile compiles a WGSL file from disk. Used by the hot-reload path.
func (c *Compiler) CompileFile(path string, stage Stage) (*Artifact, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &core.ShaderCompileError{Name: path, Diagnostic: err.Error()}
	}
	return c.Compile(path, string(source), stage)
}

// Preload compiles every built-in module for both stages. Called during
// renderer initialization so compile failures surface before the first frame.
func (c *Compiler) Preload() error {
	for _, name := range []string{ModuleRaymarch} {
		for _, stage := range []Stage{StageVertex, StageFragment} {
			if _, err := c.CompileBuiltin(name, stage); err != nil {
				return err
			}
		}
	}
	return nil
}

// ToolchainInvocations reports how many times the underlying compiler ran,
// cache hits excluded.
func (c *Compiler) ToolchainInvocations() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compiles
}

// SPIR-V is a stream of little-endian 32-bit words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
