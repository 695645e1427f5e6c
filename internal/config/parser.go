package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/pipeforge/core/internal/pipeline"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseConfig loads an EngineConfig from disk, validates it, and returns
// the resulting document (teacher's ParseConfig, same read-decode-validate
// shape, targeting EngineConfig instead of the step-DAG Config).
func ParseConfig(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pipeline.NewEngineError(pipeline.ErrCodeValidation, fmt.Sprintf("cannot read %s", path), err, map[string]interface{}{"phase": "read"})
	}

	var cfg EngineConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, pipeline.NewEngineError(pipeline.ErrCodeValidation, fmt.Sprintf("%s: malformed document", path), err, map[string]interface{}{
			"phase": "parse",
			"line":  extractLine(err),
		})
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// extractLine pulls the "line N" the yaml.v3 decoder embeds in its error
// text, so a parse failure can report where in the file it went wrong
// (teacher's extractLine, unchanged).
func extractLine(err error) int {
	if err == nil {
		return 0
	}
	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
