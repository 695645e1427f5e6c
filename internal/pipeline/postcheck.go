package pipeline

// PostCheckType enumerates the supported supplemental post-execution checks,
// generalized from the teacher's config.Validation (see SPEC_FULL.md section 4).
type PostCheckType string

const (
	PostCheckCommandExists PostCheckType = "command_exists"
	PostCheckFileExists    PostCheckType = "file_exists"
	PostCheckPathContains  PostCheckType = "path_contains"
)

// PostCheck is a post-execution environment assertion attached to a
// Pipeline. Unlike the Script Validator (which runs pre-execution against
// script text), post-checks run after the job result is known and assert
// facts about the environment the job produced.
type PostCheck struct {
	Type   PostCheckType
	Config map[string]string
}

// Validate ensures the post-check carries the configuration its type requires.
func (v PostCheck) Validate() error {
	switch v.Type {
	case PostCheckCommandExists:
		return v.requireKeys("command")
	case PostCheckFileExists:
		return v.requireKeys("path")
	case PostCheckPathContains:
		return v.requireKeys("file", "text")
	default:
		return NewEngineError(ErrCodeType, "unknown post-check type", nil, map[string]interface{}{"type": v.Type})
	}
}

func (v PostCheck) requireKeys(keys ...string) error {
	for _, k := range keys {
		if v.Config[k] == "" {
			return NewEngineError(ErrCodeMissing, "post-check missing required field", nil, map[string]interface{}{
				"type":  v.Type,
				"field": k,
			})
		}
	}
	return nil
}
