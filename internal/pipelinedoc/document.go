// Package pipelinedoc is the reference ports.ScriptEvaluator adapter: a
// direct structural mapping from a YAML document onto pipeline.Pipeline,
// the same way internal/config decodes EngineConfig with yaml.v3 struct
// tags. This is deliberately not a textual DSL grammar (spec 1 keeps that
// out of scope) — there is no tokenizer, no expression language, just
// fields decoding into fields, grounded on the teacher's
// internal/infrastructure/config.NewYAMLLoader decode-then-validate shape.
package pipelinedoc

import (
	"gopkg.in/yaml.v3"
)

// Document is the on-disk shape of a pipeline description.
type Document struct {
	Name   string            `yaml:"name"`
	Agent  AgentDoc          `yaml:"agent,omitempty"`
	Env    map[string]string `yaml:"env,omitempty"`
	Stages []StageDoc        `yaml:"stages"`
	Post   PostDoc           `yaml:"post,omitempty"`
}

// AgentDoc is the YAML form of pipeline.Agent.
type AgentDoc struct {
	Kind  string `yaml:"kind,omitempty"`
	Image string `yaml:"image,omitempty"`
	Tag   string `yaml:"tag,omitempty"`
	Host  string `yaml:"host,omitempty"`
	YAML  string `yaml:"yaml,omitempty"`
	Label string `yaml:"label,omitempty"`
}

// StageDoc is one named sequence of step calls.
type StageDoc struct {
	Name  string     `yaml:"name"`
	Steps []StepCall `yaml:"steps"`
}

// StepCall names a registered step and the arguments to dispatch it with.
type StepCall struct {
	Step string                 `yaml:"step"`
	Args map[string]interface{} `yaml:"args,omitempty"`
}

// PostDoc names the post-execution hook steps by lifecycle trigger (spec
// 4.H.2). Each entry is dispatched in order, ignoring its return value;
// only dispatch errors are reported to the runtime.
type PostDoc struct {
	Always  []StepCall `yaml:"always,omitempty"`
	Success []StepCall `yaml:"success,omitempty"`
	Failure []StepCall `yaml:"failure,omitempty"`
}

// Parse decodes raw YAML bytes into a Document.
func Parse(raw []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
