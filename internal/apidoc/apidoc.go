// Package apidoc serves the OpenAPI description of the HTTP API.
package apidoc

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/m1z23r/drift/pkg/drift"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var document []byte

// Doc is the parsed and validated API description.
type Doc struct {
	spec *openapi3.T
	json []byte
	yaml []byte
}

// Load parses the embedded document. The YAML is converted to JSON before it
// reaches the loader so both representations come from one source.
func Load(ctx context.Context) (*Doc, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(document, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse api document: %w", err)
	}

	jsonContent, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert api document: %w", err)
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false

	spec, err := loader.LoadFromData(jsonContent)
	if err != nil {
		return nil, fmt.Errorf("failed to load api document: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid api document: %w", err)
	}

	return &Doc{spec: spec, json: jsonContent, yaml: document}, nil
}

// Operations lists every "METHOD /path" pair in the document.
func (d *Doc) Operations() []string {
	var ops []string
	for path, item := range d.spec.Paths.Map() {
		for method := range item.Operations() {
			ops = append(ops, method+" "+path)
		}
	}
	return ops
}

func (d *Doc) Version() string {
	return d.spec.Info.Version
}

func (d *Doc) ServeJSON(c *drift.Context) {
	c.Response.Header().Set("Content-Type", "application/json")
	c.Response.WriteHeader(http.StatusOK)
	_, _ = c.Response.Write(d.json)
}

func (d *Doc) ServeYAML(c *drift.Context) {
	c.Response.Header().Set("Content-Type", "application/yaml")
	c.Response.WriteHeader(http.StatusOK)
	_, _ = c.Response.Write(d.yaml)
}
