// Package validation checks dispatcher configuration.
//
// Two layers apply: a configuration file is first checked against the JSON
// schema generated from entities.Config, then the merged configuration is
// checked against its struct tags.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/petricontrols/bootstrap/application/schema"
	"github.com/petricontrols/bootstrap/domain/entities"
	domainerrors "github.com/petricontrols/bootstrap/domain/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// validate is a package-level singleton; building a validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their file keys rather than Go names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateConfig checks cfg against its validate tags. The first failing field
// is reported as a *errors.ConfigError, with the remaining failures in its message.
func ValidateConfig(cfg *entities.Config) error {
	if cfg == nil {
		return &domainerrors.ConfigError{Err: errors.New("config is nil")}
	}

	return structError(validate.Struct(cfg))
}

// ValidateMarker checks only the marker section, for callers that never load a module.
func ValidateMarker(m entities.Marker) error {
	err := structError(validate.Struct(m))
	var cfgErr *domainerrors.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Field != "" {
		cfgErr.Field = "marker." + cfgErr.Field
	}
	return err
}

func structError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &domainerrors.ConfigError{Err: err}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return &domainerrors.ConfigError{
		Field: fieldPath(verrs[0]),
		Err:   errors.New(strings.Join(msgs, "; ")),
	}
}

func fieldPath(fe validator.FieldError) string {
	// Namespace is "Config.module.path"; drop the root type name.
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldPath(fe))
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fieldPath(fe), fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fieldPath(fe), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", fieldPath(fe), fe.Tag())
	}
}

// SchemaValidator checks configuration documents against the config JSON schema.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

const configSchemaURL = "petri-bootstrap-config.json"

// NewSchemaValidator compiles the schema generated for entities.Config.
func NewSchemaValidator() (*SchemaValidator, error) {
	raw, err := schema.ConfigSchema()
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(configSchemaURL, strings.NewReader(string(raw))); err != nil {
		return nil, fmt.Errorf("failed to add config schema: %w", err)
	}
	sch, err := compiler.Compile(configSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid config schema: %w", err)
	}
	return &SchemaValidator{schema: sch}, nil
}

// ValidateYAML checks a YAML (or JSON) configuration document. An empty
// document is valid. Violations are reported as a *errors.ConfigError naming
// the first offending location.
func (v *SchemaValidator) ValidateYAML(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return &domainerrors.ConfigError{Err: fmt.Errorf("failed to parse config document: %w", err)}
	}
	if doc == nil {
		return nil
	}

	// Round-trip through JSON so the validator sees JSON types only.
	b, err := json.Marshal(doc)
	if err != nil {
		return &domainerrors.ConfigError{Err: fmt.Errorf("config document is not JSON compatible: %w", err)}
	}
	var obj any
	if err := json.Unmarshal(b, &obj); err != nil {
		return &domainerrors.ConfigError{Err: fmt.Errorf("failed to prepare validation object: %w", err)}
	}

	err = v.schema.Validate(obj)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &domainerrors.ConfigError{Err: err}
	}
	leaves := leafErrors(ve)
	sort.SliceStable(leaves, func(i, j int) bool {
		return leaves[i].InstanceLocation < leaves[j].InstanceLocation
	})
	msgs := make([]string, 0, len(leaves))
	for _, l := range leaves {
		msgs = append(msgs, fmt.Sprintf("%s: %s", location(l.InstanceLocation), l.Message))
	}
	return &domainerrors.ConfigError{
		Field: location(leaves[0].InstanceLocation),
		Err:   errors.New(strings.Join(msgs, "; ")),
	}
}

func leafErrors(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		out = append(out, leafErrors(c)...)
	}
	return out
}

// location converts a JSON pointer such as "/module/path" into "module.path".
func location(ptr string) string {
	loc := strings.ReplaceAll(strings.TrimPrefix(ptr, "/"), "/", ".")
	if loc == "" {
		return "(root)"
	}
	return loc
}
