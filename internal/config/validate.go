// CUE schema and struct-tag validation
package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
	"github.com/go-playground/validator/v10"
)

// Definitions in the bundled schema.
const (
	JobDefinition        = "#Job"
	SimulationDefinition = "#Simulation"
)

//go:embed schemas/ctsim.cue
var schemaFS embed.FS

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// BundledSchema returns the CUE schema compiled into the binary.
func BundledSchema() ([]byte, error) {
	return schemaFS.ReadFile("schemas/ctsim.cue")
}

// ValidateWithCue validates a YAML file against a definition of a CUE
// schema. An empty cueFile selects the bundled schema.
func ValidateWithCue(configFile, cueFile, definition string) error {
	yamlBytes, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML config: %w", err)
	}
	return ValidateBytes(configFile, yamlBytes, cueFile, definition)
}

// ValidateBytes is ValidateWithCue for YAML already in memory.
func ValidateBytes(name string, yamlBytes []byte, cueFile, definition string) error {
	var schemaBytes []byte
	var err error
	if cueFile == "" {
		schemaBytes, err = BundledSchema()
	} else {
		schemaBytes, err = os.ReadFile(cueFile)
	}
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}

	ctx := cuecontext.New()
	schemaVal := ctx.CompileBytes(schemaBytes)
	if schemaVal.Err() != nil {
		return fmt.Errorf("compile CUE schema: %w", schemaVal.Err())
	}
	def := schemaVal.LookupPath(cue.ParsePath(definition))
	if !def.Exists() {
		return fmt.Errorf("schema has no definition %s", definition)
	}

	file, err := yaml.Extract(name, yamlBytes)
	if err != nil {
		return fmt.Errorf("parse YAML: %w", err)
	}
	configVal := ctx.BuildFile(file)
	if configVal.Err() != nil {
		return fmt.Errorf("build YAML value: %w", configVal.Err())
	}

	final := def.Unify(configVal)
	if err := final.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// Validate checks the struct-level constraints of a job.
func (j JobParameters) Validate() error {
	return structErr("job", validate.Struct(j))
}

// Validate checks the struct-level constraints of the configuration.
func (c *SimulationConfig) Validate() error {
	return structErr("config", validate.Struct(c))
}

func structErr(what string, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %s: %w", what, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid %s: %s", what, strings.Join(msgs, "; "))
}
