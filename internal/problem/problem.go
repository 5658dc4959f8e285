// Package problem reads jet scheme problems from YAML files:
//
//	field: QQ            # or GF(p)
//	order: grevlex       # order of the result jet ring
//	vars: [x, y]
//	ideal: ["x^2 - y^3 - y^2"]
//	n: 2
//	model:               # optional, for the birational method
//	  vars: [s]
//	  ideal: []
//	  map: ["s^3 - s", "s^2 - 1"]
package problem

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/njchilds90/gojets/algebra"
	"github.com/njchilds90/gojets/errs"
)

// File is the YAML form of a problem.
type File struct {
	Field string     `yaml:"field"`
	Order string     `yaml:"order"`
	Vars  []string   `yaml:"vars"`
	Ideal []string   `yaml:"ideal"`
	N     int        `yaml:"n"`
	Model *ModelFile `yaml:"model,omitempty"`
}

// ModelFile describes a birational model: its coordinates, its ideal and
// the image of each base variable.
type ModelFile struct {
	Vars  []string `yaml:"vars"`
	Ideal []string `yaml:"ideal"`
	Map   []string `yaml:"map"`
}

// Problem is a File resolved into rings, ideals and maps.
type Problem struct {
	Base  *algebra.Ring
	Ideal *algebra.Ideal
	N     int
	// Order is the jet ring order; empty defers to the caller's default.
	Order string

	// Model fields are nil without a model section.
	Model      *algebra.Ring
	ModelIdeal *algebra.Ideal
	Map        []algebra.Poly
}

// HasModel reports whether the birational method can run.
func (p *Problem) HasModel() bool { return p.Model != nil }

// Load reads and resolves a problem file.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem: %w", err)
	}
	return Parse(data)
}

// Parse resolves a problem from YAML.
func Parse(data []byte) (*Problem, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errs.Configf("problem.Parse", "invalid YAML: %v", err)
	}
	return f.Build()
}

// Build resolves f.
func (f *File) Build() (*Problem, error) {
	const op = "problem.Build"
	if len(f.Vars) == 0 {
		return nil, errs.Configf(op, "no variables")
	}
	if f.N < 0 {
		return nil, errs.Dimensionf(op, "jet order %d < 0", f.N)
	}
	field, err := algebra.ParseField(f.Field)
	if err != nil {
		return nil, err
	}
	base, err := algebra.NewRing(field, f.Vars, "grevlex")
	if err != nil {
		return nil, err
	}
	gens, err := algebra.ParseAll(base, f.Ideal)
	if err != nil {
		return nil, err
	}
	I, err := algebra.NewIdeal(base, gens...)
	if err != nil {
		return nil, err
	}
	p := &Problem{Base: base, Ideal: I, N: f.N, Order: f.Order}
	if f.Model == nil {
		return p, nil
	}

	model, err := algebra.NewRing(field, f.Model.Vars, "grevlex")
	if err != nil {
		return nil, err
	}
	if len(f.Model.Map) != len(f.Vars) {
		return nil, errs.Configf(op, "model map has %d entries for %d variables", len(f.Model.Map), len(f.Vars))
	}
	mgens, err := algebra.ParseAll(model, f.Model.Ideal)
	if err != nil {
		return nil, err
	}
	if p.ModelIdeal, err = algebra.NewIdeal(model, mgens...); err != nil {
		return nil, err
	}
	if p.Map, err = algebra.ParseAll(model, f.Model.Map); err != nil {
		return nil, err
	}
	p.Model = model
	return p, nil
}
