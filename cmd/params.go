package cmd

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/s-lunowa/yaourt-fem-dg/dg"
)

// InputParameters carries the solver configuration read from a YAML
// parameter file. Fields are pointers so that keys absent from the file
// leave the built-in defaults untouched; explicit command line flags
// override both.
type InputParameters struct {
	Eta               *float64 `json:"eta,omitempty"`
	Degree            *int     `json:"degree,omitempty"`
	RefLevels         *int     `json:"ref_levels,omitempty"`
	MeshFamily        string   `json:"mesh_family,omitempty"`
	UsePreconditioner *bool    `json:"use_preconditioner,omitempty"`
	UseUpwinding      *bool    `json:"use_upwinding,omitempty"`
	Shatter           *bool    `json:"shatter,omitempty"`
	Solver            string   `json:"solver,omitempty"`
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// Apply copies the parameters that were present in the file onto the
// configuration and mesh family selection.
func (ip *InputParameters) Apply(cfg *dg.Config, meshFamily *string) error {
	if ip.Eta != nil {
		cfg.Eta = *ip.Eta
	}
	if ip.Degree != nil {
		cfg.Degree = *ip.Degree
	}
	if ip.RefLevels != nil {
		cfg.RefLevels = *ip.RefLevels
	}
	if ip.MeshFamily != "" {
		*meshFamily = ip.MeshFamily
	}
	if ip.UsePreconditioner != nil {
		cfg.UsePreconditioner = *ip.UsePreconditioner
	}
	if ip.UseUpwinding != nil {
		cfg.UseUpwinding = *ip.UseUpwinding
	}
	if ip.Shatter != nil {
		cfg.Shatter = *ip.Shatter
	}
	if ip.Solver != "" {
		st, err := dg.ParseSolverType(ip.Solver)
		if err != nil {
			return err
		}
		cfg.Solver = st
	}
	return nil
}

func (ip *InputParameters) Print() {
	fmt.Printf("Input Parameters\n")
	if ip.Eta != nil {
		fmt.Printf("\teta: %8.5f\n", *ip.Eta)
	}
	if ip.Degree != nil {
		fmt.Printf("\tdegree: %d\n", *ip.Degree)
	}
	if ip.RefLevels != nil {
		fmt.Printf("\tref_levels: %d\n", *ip.RefLevels)
	}
	if ip.MeshFamily != "" {
		fmt.Printf("\tmesh_family: %s\n", ip.MeshFamily)
	}
	if ip.UsePreconditioner != nil {
		fmt.Printf("\tuse_preconditioner: %v\n", *ip.UsePreconditioner)
	}
	if ip.UseUpwinding != nil {
		fmt.Printf("\tuse_upwinding: %v\n", *ip.UseUpwinding)
	}
	if ip.Shatter != nil {
		fmt.Printf("\tshatter: %v\n", *ip.Shatter)
	}
	if ip.Solver != "" {
		fmt.Printf("\tsolver: %s\n", ip.Solver)
	}
}
