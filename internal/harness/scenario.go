package harness

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/transposon/internal/genome"
	"github.com/roach88/transposon/internal/ir"
)

//go:embed schema.cue
var schemaCUE string

// Scenario defines a conformance test scenario: a genome size, a sequence
// of operations and what each of them must produce.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Size is the initial number of empty symbols.
	Size int `yaml:"size"`

	// GenomeID is a fixed genome id for deterministic traces.
	// If empty, defaults to "test-genome-default".
	GenomeID string `yaml:"genome_id,omitempty"`

	// Kinds lists the representations to run. Empty means all of them.
	Kinds []genome.Kind `yaml:"kinds,omitempty"`

	// Steps are applied in order.
	Steps []Step `yaml:"steps"`

	// Final is checked once after the last step.
	Final *Expect `yaml:"final,omitempty"`
}

// Step is one genome operation with optional expectations.
type Step struct {
	Op     ir.OpKind `yaml:"op"`
	Pos    int       `yaml:"pos,omitempty"`
	Length int       `yaml:"length,omitempty"`
	TE     int       `yaml:"te,omitempty"`
	Offset int       `yaml:"offset,omitempty"`
	Expect *Expect   `yaml:"expect,omitempty"`
}

// ToOp converts the step to a journal op.
func (s Step) ToOp() ir.Op {
	switch s.Op {
	case ir.OpInsert:
		return ir.Insert(s.Pos, s.Length)
	case ir.OpCopy:
		return ir.Copy(s.TE, s.Offset)
	case ir.OpDisable:
		return ir.Disable(s.TE)
	default:
		return ir.Op{Kind: s.Op}
	}
}

// Expect lists what a step (or the final genome) must look like.
// Nil fields are not checked.
type Expect struct {
	ID     *int    `yaml:"id,omitempty"`
	Absent *bool   `yaml:"absent,omitempty"`
	OK     *bool   `yaml:"ok,omitempty"`
	Render *string `yaml:"render,omitempty"`
	Length *int    `yaml:"length,omitempty"`
	Active *[]int  `yaml:"active,omitempty"`
}

// ScenarioErrorCode categorizes scenario loading errors.
type ScenarioErrorCode string

const (
	ErrCodeRead   ScenarioErrorCode = "READ"
	ErrCodeParse  ScenarioErrorCode = "PARSE"
	ErrCodeSchema ScenarioErrorCode = "SCHEMA"
)

// ScenarioError is returned when a scenario file cannot be loaded.
type ScenarioError struct {
	Code    ScenarioErrorCode
	Path    string // file path, if loaded from disk
	Field   string // offending field path, for schema errors
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ScenarioError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", e.Code)
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
	}
	fmt.Fprintf(&b, ": %s", e.Message)
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ScenarioError) Unwrap() error {
	return e.Err
}

// IsSchemaError returns true if the error is a schema violation.
// Uses errors.As to handle wrapped errors.
func IsSchemaError(err error) bool {
	var se *ScenarioError
	if errors.As(err, &se) {
		return se.Code == ErrCodeSchema
	}
	return false
}

// LoadScenario reads, validates and decodes a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ScenarioError{Code: ErrCodeRead, Path: path, Message: err.Error(), Err: err}
	}

	s, err := ParseScenario(data)
	if err != nil {
		var se *ScenarioError
		if errors.As(err, &se) {
			se.Path = path
		}
		return nil, err
	}
	return s, nil
}

// ParseScenario validates YAML scenario data against the schema and
// decodes it.
func ParseScenario(data []byte) (*Scenario, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ScenarioError{Code: ErrCodeParse, Message: err.Error(), Err: err}
	}
	if raw == nil {
		return nil, &ScenarioError{Code: ErrCodeParse, Message: "empty scenario"}
	}

	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	// The schema has already rejected unknown fields; KnownFields keeps the
	// struct honest if the two ever drift apart.
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, &ScenarioError{Code: ErrCodeParse, Message: err.Error(), Err: err}
	}
	return &s, nil
}

// validateSchema unifies raw with #Scenario and requires a concrete result.
func validateSchema(raw map[string]any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile scenario schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Scenario"))

	v := def.Unify(ctx.Encode(raw))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return schemaError(err)
	}
	return nil
}

// schemaError reports the first CUE error with its field path.
func schemaError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ScenarioError{Code: ErrCodeSchema, Message: err.Error(), Err: err}
	}

	first := errs[0]
	return &ScenarioError{
		Code:    ErrCodeSchema,
		Field:   strings.Join(first.Path(), "."),
		Message: first.Error(),
		Err:     err,
	}
}
