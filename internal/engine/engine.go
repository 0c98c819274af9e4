// Package engine composes validation, unit conversion, access control and the
// discipline formula packages into a single calculation entry point. It holds
// no mutable state after construction and performs no I/O, so one Engine is
// shared across all request handlers.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"ObraCalc/internal/calc/topography"
	"ObraCalc/internal/engine/access"
	"ObraCalc/internal/engine/diagram"
	"ObraCalc/internal/engine/units"
	"ObraCalc/internal/engine/validate"
)

type FieldKind int

const (
	NumberField FieldKind = iota
	ChoiceField
	CoordinatesField
)

// Field declares one input of a calculation module. Fields are validated in
// declaration order so the first reported error is deterministic.
type Field struct {
	Name    string
	Kind    FieldKind
	Bounds  validate.Bounds
	Choices []string
	// Unit is the unit the value is entered in, Target the unit the formula
	// expects. An empty unit marks values outside the conversion table
	// (angles, specific weights, flow rates); Convert passes those through.
	Unit   units.Unit
	Target units.Unit
}

// Inputs carries the validated, unit-converted values handed to a module's
// compute function.
type Inputs struct {
	numbers map[string]float64
	choices map[string]string
	coords  map[string][]topography.Point
}

func (in Inputs) Number(name string) float64 { return in.numbers[name] }
func (in Inputs) Choice(name string) string  { return in.choices[name] }

func (in Inputs) Coords(name string) []topography.Point { return in.coords[name] }

type moduleSpec struct {
	module  access.Module
	fields  []Field
	compute func(in Inputs) (map[string]float64, map[string]diagram.Series, error)
}

// Value is an input as the user entered it, kept with its unit tag for the
// stored record.
type Value struct {
	Raw       string     `json:"raw"`
	Magnitude float64    `json:"magnitude,omitempty"`
	Unit      units.Unit `json:"unit,omitempty"`
}

// Record is the outcome of one calculation. The engine builds it and hands it
// off; persistence and display belong to the caller.
type Record struct {
	ID        uuid.UUID                 `json:"id"`
	Module    access.Module             `json:"module"`
	Name      string                    `json:"name"`
	Inputs    map[string]Value          `json:"inputs"`
	Values    map[string]float64        `json:"values"`
	Diagrams  map[string]diagram.Series `json:"diagrams,omitempty"`
	CreatedAt time.Time                 `json:"created_at"`
}

// AccessError: the plan does not cover the module. The message names the
// required plan so the upgrade path stays visible.
type AccessError struct {
	Module   access.Module
	Required access.Tier
}

func (e *AccessError) Error() string { return access.DeniedMessage(e.Module) }

// ValidationError: a field failed parsing or bounds checking.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Reason) }

// InputError: a formula precondition was violated after field validation
// passed (degenerate geometry and the like).
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return e.Reason }

type Engine struct {
	specs map[access.Module]moduleSpec
}

func New() *Engine {
	e := &Engine{specs: make(map[access.Module]moduleSpec)}
	for _, s := range []moduleSpec{
		structuralSpec(),
		concreteSpec(),
		hydraulicsSpec(),
		foundationsSpec(),
		topographySpec(),
	} {
		e.specs[s.module] = s
	}
	return e
}

// Run executes one calculation: gate, validate, convert, compute, package.
// The first failing step aborts the request; no partial results.
func (e *Engine) Run(module access.Module, tier access.Tier, name string, raw map[string]string) (*Record, error) {
	required, known := access.Required(module)
	if !known {
		return nil, &InputError{Reason: "Módulo desconhecido."}
	}
	if tier < required {
		return nil, &AccessError{Module: module, Required: required}
	}

	spec, ok := e.specs[module]
	if !ok {
		return nil, &InputError{Reason: "Módulo desconhecido."}
	}

	in := Inputs{
		numbers: make(map[string]float64),
		choices: make(map[string]string),
		coords:  make(map[string][]topography.Point),
	}
	recInputs := make(map[string]Value, len(spec.fields))

	for _, f := range spec.fields {
		rv, present := raw[f.Name]
		if !present || rv == "" {
			return nil, &ValidationError{Field: f.Name, Reason: "Campo obrigatório"}
		}
		switch f.Kind {
		case NumberField:
			v, err := validate.Number(rv, f.Bounds)
			if err != nil {
				return nil, &ValidationError{Field: f.Name, Reason: err.Error()}
			}
			in.numbers[f.Name] = units.Convert(v, f.Unit, f.Target)
			recInputs[f.Name] = Value{Raw: rv, Magnitude: v, Unit: f.Unit}
		case ChoiceField:
			if !contains(f.Choices, rv) {
				return nil, &ValidationError{Field: f.Name, Reason: "Opção inválida"}
			}
			in.choices[f.Name] = rv
			recInputs[f.Name] = Value{Raw: rv}
		case CoordinatesField:
			pts, err := topography.ParseCoordinates(rv)
			if err != nil {
				return nil, &ValidationError{Field: f.Name, Reason: err.Error()}
			}
			in.coords[f.Name] = pts
			recInputs[f.Name] = Value{Raw: rv}
		}
	}

	values, diagrams, err := spec.compute(in)
	if err != nil {
		return nil, &InputError{Reason: err.Error()}
	}

	return &Record{
		ID:        uuid.New(),
		Module:    module,
		Name:      name,
		Inputs:    recInputs,
		Values:    values,
		Diagrams:  diagrams,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
