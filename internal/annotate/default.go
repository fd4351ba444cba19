package annotate

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/deployctx/deployctx/internal/document"
)

//go:embed deployment_schema.yaml
var deploymentSchemaYAML []byte

var loadDefault = sync.OnceValue(func() *document.Mapping {
	n, err := document.DecodeYAML(deploymentSchemaYAML)
	if err != nil {
		panic(fmt.Sprintf("annotate: embedded deployment schema is invalid: %v", err))
	}
	schema, err := ParseSchema(n)
	if err != nil {
		panic(fmt.Sprintf("annotate: embedded deployment schema is invalid: %v", err))
	}
	return schema
})

// DefaultSchema returns the built-in deployment template annotation schema.
// It is parsed once and must be treated as read-only; callers pass it
// explicitly into Annotate rather than relying on ambient state.
func DefaultSchema() *document.Mapping {
	return loadDefault()
}
