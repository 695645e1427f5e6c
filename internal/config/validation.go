package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pipeforge/core/internal/pipeline"
)

// ValidateConfig performs struct-tag validation on a fully-decoded
// EngineConfig (teacher's ValidateConfig entry point, narrowed from a
// step-DAG document to engine tuning — there is no dependency graph here
// for a cycle_detector to run over).
func ValidateConfig(cfg *EngineConfig) error {
	if cfg == nil {
		return pipeline.NewEngineError(pipeline.ErrCodeValidation, "configuration is nil", nil, nil)
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}

// convertValidationError normalizes a validator.ValidationErrors into the
// engine's single error representation (teacher's convertValidationError,
// adapted from pkg/errors.ValidationError to pipeline.EngineError).
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}
	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag %q", field, ve.Tag())
		return pipeline.NewEngineError(pipeline.ErrCodeValidation, msg, err, map[string]interface{}{
			"field": field,
			"tag":   ve.Tag(),
		})
	}
	return pipeline.NewEngineError(pipeline.ErrCodeValidation, err.Error(), err, nil)
}

// yamlishFieldName lowercases a validator struct namespace into the
// yaml-key-shaped form an operator would recognize from the config file
// they wrote (teacher's yamlishFieldName, unchanged).
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	lowered := make([]string, len(parts))
	for i, part := range parts {
		lowered[i] = strings.ToLower(part)
	}
	return strings.Join(lowered, ".")
}
