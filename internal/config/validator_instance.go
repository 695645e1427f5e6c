package config

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared, lazily-initialized validator used
// across the config package (teacher's sync.Once singleton pattern, custom
// tags registered the way the teacher registers "semver"/"step_id").
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("resource_limit", func(fl validator.FieldLevel) bool {
			pct := fl.Field().Float()
			return pct >= 0 && pct <= 100
		})
		validateInst = v
	})
	return validateInst
}

// GetValidator exposes the shared validator instance for use outside the
// package, the way the teacher's GetValidator does for step plugins.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
