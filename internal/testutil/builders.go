package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/hupe1980/deepagent/core"
	"github.com/hupe1980/deepagent/planner"
)

// MetadataDocument returns the canonical metadata path and a valid metadata
// document for the topic.
func MetadataDocument(topic string) (string, string) {
	paths := planner.DerivePaths(topic)
	md := planner.Metadata{
		Topic: topic,
		Paths: paths,
	}
	data, err := json.Marshal(md)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal metadata: %v", err))
	}
	return paths.Metadata, string(data)
}

// PlannerDocuments returns a complete set of planning artifacts for the
// topic: analysis, scope, plan and metadata documents, as a planning run
// would have written them.
func PlannerDocuments(topic string) core.Documents {
	paths := planner.DerivePaths(topic)
	metadataPath, metadata := MetadataDocument(topic)
	return core.Documents{
		paths.Analysis: fmt.Sprintf(`{"topic":%q,"findings":[]}`, topic),
		paths.Scope:    fmt.Sprintf(`{"topic":%q,"in_scope":[],"out_of_scope":[]}`, topic),
		paths.Plan:     fmt.Sprintf(`{"topic":%q,"steps":[]}`, topic),
		metadataPath:   metadata,
	}
}
