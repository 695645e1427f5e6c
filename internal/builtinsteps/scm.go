package builtinsteps

import (
	"context"

	"github.com/pipeforge/core/internal/pipeline"
	"github.com/pipeforge/core/internal/ports"
	"github.com/pipeforge/core/internal/scm"
)

// ScmCheckoutStep wraps a ports.SourceRetriever so a pipeline document can
// fetch a declared source dependency by name before running its build
// stages. It is Restricted: checkouts land under the retriever's
// configured base directory, never arbitrary paths.
type ScmCheckoutStep struct {
	Retriever ports.SourceRetriever
}

var _ ports.Step = ScmCheckoutStep{}

func (ScmCheckoutStep) Metadata() ports.StepMetadata {
	return ports.StepMetadata{
		Name:          "scm.checkout",
		Description:   "Retrieves a named source dependency and returns its local path.",
		Category:      ports.StepCategoryScm,
		SecurityLevel: ports.SecurityLevelRestricted,
		Parameters: []ports.ParameterSpec{
			{Name: "name", Type: "string"},
			{Name: "url", Type: "string"},
			{Name: "ref", Type: "string", HasDefault: true, Default: ""},
		},
		ReturnType: "string",
	}
}

func (s ScmCheckoutStep) Run(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	name, _ := args["name"].(string)
	url, _ := args["url"].(string)
	if name == "" || url == "" {
		return nil, pipeline.NewBadArgsError("scm.checkout", "both \"name\" and \"url\" are required")
	}
	ref, _ := args["ref"].(string)

	path, err := s.Retriever.Retrieve(ctx, ports.LibraryConfig{Name: name, URL: url, Ref: ref})
	if err != nil {
		return nil, scm.ToEngineError("scm.checkout", err)
	}
	return path, nil
}
