package ports

import "context"

// StepCategory classifies a registered step for discovery and registry
// statistics (spec 3, 4.F).
type StepCategory string

const (
	StepCategoryGeneral      StepCategory = "General"
	StepCategoryScm          StepCategory = "Scm"
	StepCategoryBuild        StepCategory = "Build"
	StepCategoryTest         StepCategory = "Test"
	StepCategoryDeploy       StepCategory = "Deploy"
	StepCategorySecurity     StepCategory = "Security"
	StepCategoryUtil         StepCategory = "Util"
	StepCategoryNotification StepCategory = "Notification"
)

// SecurityLevel gates what a dispatched step is allowed to touch (spec 4.F).
// Trusted steps run unrestricted; Restricted (the default) run under the
// resource monitor with filesystem access confined to the workspace root;
// Isolated additionally forbids thread creation and network access. The
// dispatcher never enforces this itself — it delegates to a SandboxManager.
type SecurityLevel string

const (
	SecurityLevelTrusted    SecurityLevel = "Trusted"
	SecurityLevelRestricted SecurityLevel = "Restricted"
	SecurityLevelIsolated   SecurityLevel = "Isolated"
)

// ParameterSpec documents one named, ordered argument a step accepts (spec
// 3, "parameter-schema (ordered (name, type, has-default))").
type ParameterSpec struct {
	Name       string
	Type       string
	HasDefault bool
	Default    interface{}
}

// StepMetadata is the metadata a step publishes to the registry (spec 3).
// The registration time and execution stats are kept by the registry
// alongside it, not in this struct.
type StepMetadata struct {
	Name          string
	Description   string
	Category      StepCategory
	SecurityLevel SecurityLevel
	Parameters    []ParameterSpec
	ReturnType    string
	IsSuspending  bool
}

// Step encapsulates a single invocable pipeline action. Implementations must
// honor context cancellation; Run is invoked with the dispatcher's context
// bridge already installed, so current-pipeline-context lookups inside Run
// resolve to the caller's context (spec 4.F step 3).
type Step interface {
	Metadata() StepMetadata
	Run(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// StepRegistry manages step discovery and dispatch (spec 4.F). Registries
// must be safe for concurrent use because stages may run with internal
// fan-out and dispatch steps concurrently.
type StepRegistry interface {
	Register(s Step) error
	Get(name string) (Step, error)
	List() []StepMetadata
}
