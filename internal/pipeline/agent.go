package pipeline

// AgentKind enumerates the supported agent variants (spec section 3).
type AgentKind string

const (
	AgentAny        AgentKind = "any"
	AgentDocker     AgentKind = "docker"
	AgentKubernetes AgentKind = "kubernetes"
)

// Agent identifies where a pipeline (or stage) should execute. It is a
// tagged variant: only the fields relevant to Kind are populated. Concrete
// agent runtimes (image building, container orchestration) are out of scope
// for the core (spec section 1) — Agent is a pure value object describing
// intent, consumed by an external ports.AgentManager.
type Agent struct {
	Kind AgentKind

	// Docker fields.
	Image string
	Tag   string
	Host  string

	// Kubernetes fields.
	YAML  string
	Label string
}

// AnyAgent returns the host-execution agent variant.
func AnyAgent() Agent { return Agent{Kind: AgentAny} }

// DockerAgent returns a container agent variant.
func DockerAgent(image, tag, host string) Agent {
	return Agent{Kind: AgentDocker, Image: image, Tag: tag, Host: host}
}

// KubernetesAgent returns a pod-template agent variant.
func KubernetesAgent(yamlSpec, label string) Agent {
	return Agent{Kind: AgentKubernetes, YAML: yamlSpec, Label: label}
}

// Validate ensures the agent's variant-specific fields are populated.
func (a Agent) Validate() error {
	switch a.Kind {
	case AgentAny, "":
		return nil
	case AgentDocker:
		if a.Image == "" {
			return NewEngineError(ErrCodeMissing, "docker agent requires an image", nil, nil)
		}
		return nil
	case AgentKubernetes:
		if a.YAML == "" {
			return NewEngineError(ErrCodeMissing, "kubernetes agent requires a pod YAML template", nil, nil)
		}
		return nil
	default:
		return NewEngineError(ErrCodeType, "unknown agent kind", nil, map[string]interface{}{"kind": a.Kind})
	}
}
