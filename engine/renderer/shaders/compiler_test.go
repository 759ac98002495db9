package shaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowgrove/marcher/engine/core"
)

const minimalVertexWGSL = `
@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 0.0, 1.0);
}
`

const minimalFragmentWGSL = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 1.0, 1.0);
}
`

func TestCompileProducesSPIRV(t *testing.T) {
	c := NewCompiler(Options{})
	artifact, err := c.Compile("minimal", minimalVertexWGSL, StageVertex)
	require.NoError(t, err)
	require.NotEmpty(t, artifact.SPIRV)
	// SPIR-V magic number.
	assert.Equal(t, uint32(0x07230203), artifact.SPIRV[0])
	assert.Equal(t, StageVertex, artifact.Stage)
}

func TestCompileCachesIdenticalSource(t *testing.T) {
	c := NewCompiler(Options{})
	first, err := c.Compile("minimal", minimalVertexWGSL, StageVertex)
	require.NoError(t, err)
	second, err := c.Compile("minimal", minimalVertexWGSL, StageVertex)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, uint64(1), c.ToolchainInvocations())
}

func TestCompileRecompilesChangedSource(t *testing.T) {
	c := NewCompiler(Options{})
	_, err := c.Compile("a", minimalVertexWGSL, StageVertex)
	require.NoError(t, err)
	_, err = c.Compile("b", minimalVertexWGSL+"\n// edited\n", StageVertex)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), c.ToolchainInvocations())
}

func TestCompileStageIsPartOfCacheKey(t *testing.T) {
	source := minimalVertexWGSL + minimalFragmentWGSL
	c := NewCompiler(Options{})
	_, err := c.Compile("both", source, StageVertex)
	require.NoError(t, err)
	_, err = c.Compile("both", source, StageFragment)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), c.ToolchainInvocations())
}

func TestCompileInvalidSource(t *testing.T) {
	c := NewCompiler(Options{})
	_, err := c.Compile("broken", "fn vs_main( {", StageVertex)
	require.Error(t, err)

	var compileErr *core.ShaderCompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "broken", compileErr.Name)
	assert.NotEmpty(t, compileErr.Diagnostic)

	// A failed compile must not poison the cache.
	_, err = c.Compile("minimal", minimalVertexWGSL, StageVertex)
	assert.NoError(t, err)
}

func TestDebugInfoRetainsSource(t *testing.T) {
	c := NewCompiler(Options{DebugInfo: true})
	artifact, err := c.Compile("minimal", minimalVertexWGSL, StageVertex)
	require.NoError(t, err)
	assert.Equal(t, minimalVertexWGSL, artifact.Source)

	stripped := NewCompiler(Options{})
	artifact, err = stripped.Compile("minimal", minimalVertexWGSL, StageVertex)
	require.NoError(t, err)
	assert.Empty(t, artifact.Source)
}

func TestOptionsArePartOfCacheKey(t *testing.T) {
	debug := NewCompiler(Options{DebugInfo: true})
	_, err := debug.Compile("minimal", minimalVertexWGSL, StageVertex)
	require.NoError(t, err)

	optimized := NewCompiler(Options{Optimize: true})
	_, err = optimized.Compile("minimal", minimalVertexWGSL, StageVertex)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), debug.ToolchainInvocations())
	assert.Equal(t, uint64(1), optimized.ToolchainInvocations())
}

func TestBuiltinSources(t *testing.T) {
	source, ok := BuiltinSource(ModuleRaymarch)
	require.True(t, ok)
	assert.Contains(t, source, "vs_main")
	assert.Contains(t, source, "fs_main")
	assert.Contains(t, source, "var<uniform> scene")

	_, ok = BuiltinSource("nonexistent")
	assert.False(t, ok)
}

func TestStageEntryPoints(t *testing.T) {
	assert.Equal(t, "vs_main", StageVertex.EntryPoint())
	assert.Equal(t, "fs_main", StageFragment.EntryPoint())
}
