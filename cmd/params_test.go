package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/s-lunowa/yaourt-fem-dg/dg"
	"github.com/s-lunowa/yaourt-fem-dg/mesh"
)

func TestInputParameters(t *testing.T) {
	data := []byte(`
eta: 2.5
degree: 3
mesh_family: quad
use_upwinding: true
solver: bicgstab
`)
	var ip InputParameters
	assert.NoError(t, ip.Parse(data))

	cfg := dg.DefaultConfig()
	family := "tri"
	assert.NoError(t, ip.Apply(&cfg, &family))
	assert.Equal(t, 2.5, cfg.Eta)
	assert.Equal(t, 3, cfg.Degree)
	assert.Equal(t, 4, cfg.RefLevels) // absent key keeps the default
	assert.Equal(t, "quad", family)
	assert.True(t, cfg.UseUpwinding)
	assert.False(t, cfg.UsePreconditioner)
	assert.Equal(t, dg.BiCGSTAB, cfg.Solver)

	bad := InputParameters{Solver: "gmres"}
	assert.Error(t, bad.Apply(&cfg, &family))
}

func newTestCommand() *cobra.Command {
	c := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	addSolverFlags(c)
	return c
}

func TestParseOptions(t *testing.T) {
	{ // Defaults
		c := newTestCommand()
		assert.NoError(t, c.ParseFlags(nil))
		opt, err := parseOptions(c)
		assert.NoError(t, err)
		assert.Equal(t, dg.DefaultConfig(), opt.cfg)
		assert.Equal(t, "tri", opt.meshFamily)
	}
	{ // Degree and refinement clamping
		c := newTestCommand()
		assert.NoError(t, c.ParseFlags([]string{"-k", "0", "-r", "-2"}))
		opt, err := parseOptions(c)
		assert.NoError(t, err)
		assert.Equal(t, 1, opt.cfg.Degree)
		assert.Equal(t, 0, opt.cfg.RefLevels)
	}
	{ // Legacy mesh toggles, explicit -m wins
		c := newTestCommand()
		assert.NoError(t, c.ParseFlags([]string{"-q"}))
		opt, err := parseOptions(c)
		assert.NoError(t, err)
		assert.Equal(t, "quad", opt.meshFamily)

		c = newTestCommand()
		assert.NoError(t, c.ParseFlags([]string{"-q", "-m", "tri"}))
		opt, err = parseOptions(c)
		assert.NoError(t, err)
		assert.Equal(t, "tri", opt.meshFamily)
	}
	{ // Solver selection and validation
		c := newTestCommand()
		assert.NoError(t, c.ParseFlags([]string{"--solver", "bicgstab", "-p", "-v"}))
		opt, err := parseOptions(c)
		assert.NoError(t, err)
		assert.Equal(t, dg.BiCGSTAB, opt.cfg.Solver)
		assert.True(t, opt.cfg.UsePreconditioner)
		assert.True(t, opt.cfg.Verbose)

		c = newTestCommand()
		assert.NoError(t, c.ParseFlags([]string{"--solver", "gmres"}))
		_, err = parseOptions(c)
		assert.Error(t, err)
	}
	{ // Export destinations
		c := newTestCommand()
		assert.NoError(t, c.ParseFlags([]string{"-o", "out.vtk", "--gnuplot", "sol.txt"}))
		opt, err := parseOptions(c)
		assert.NoError(t, err)
		assert.Equal(t, "out.vtk", opt.outputFile)
		assert.Equal(t, "sol.txt", opt.gnuplotFile)
	}
}

func TestBuildMesh(t *testing.T) {
	msh, err := buildMesh("tri", 1, false)
	assert.NoError(t, err)
	assert.Equal(t, mesh.Triangle, msh.ElementType())

	msh, err = buildMesh("quad", 1, false)
	assert.NoError(t, err)
	assert.Equal(t, mesh.Quadrilateral, msh.ElementType())

	_, err = buildMesh("hex", 1, false)
	assert.Error(t, err)
}
