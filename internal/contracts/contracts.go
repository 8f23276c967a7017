// Package contracts checks outgoing write payloads against embedded JSON
// schemas before they reach the network.
package contracts

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Contract names.
const (
	Enquiry = "enquiry"
	Review  = "review"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const resourceRoot = "mem://aperture/schemas/"

var compiled = mustCompile()

// Violation describes the first schema failure found in a payload.
type Violation struct {
	Contract string
	// Field is the top-level property at fault, or "" when the failure is
	// about the document as a whole.
	Field   string
	Message string
}

func (v *Violation) Error() string {
	if v.Field == "" {
		return fmt.Sprintf("%s contract: %s", v.Contract, v.Message)
	}
	return fmt.Sprintf("%s contract: %s: %s", v.Contract, v.Field, v.Message)
}

// Validate checks a JSON document against the named contract. A schema
// failure is returned as a *Violation.
func Validate(contract string, body []byte) error {
	schema, ok := compiled[contract]
	if !ok {
		return fmt.Errorf("unknown contract %q", contract)
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("%s contract: body is not valid JSON: %w", contract, err)
	}
	if err := schema.Validate(doc); err != nil {
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			return violation(contract, verr)
		}
		return fmt.Errorf("%s contract: %w", contract, err)
	}
	return nil
}

// ValidateValue marshals v and checks it against the named contract.
func ValidateValue(contract string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s contract: encode: %w", contract, err)
	}
	return Validate(contract, body)
}

func violation(contract string, verr *jsonschema.ValidationError) *Violation {
	leaf := verr
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	field := strings.TrimPrefix(leaf.InstanceLocation, "/")
	if i := strings.IndexByte(field, '/'); i >= 0 {
		field = field[:i]
	}
	if field == "" {
		field = missingProperty(leaf.Message)
	}
	return &Violation{Contract: contract, Field: field, Message: leaf.Message}
}

// missingProperty pulls the first name out of "missing properties: 'a', 'b'".
func missingProperty(msg string) string {
	rest, ok := strings.CutPrefix(msg, "missing properties: ")
	if !ok {
		return ""
	}
	first, _, _ := strings.Cut(rest, ",")
	return strings.Trim(strings.TrimSpace(first), "'")
}

func mustCompile() map[string]*jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		panic(fmt.Sprintf("read embedded schemas: %v", err))
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		file, err := schemaFS.Open("schemas/" + entry.Name())
		if err != nil {
			panic(fmt.Sprintf("open schema %s: %v", entry.Name(), err))
		}
		err = compiler.AddResource(resourceRoot+entry.Name(), file)
		_ = file.Close()
		if err != nil {
			panic(fmt.Sprintf("add schema resource %s: %v", entry.Name(), err))
		}
		names = append(names, entry.Name())
	}

	out := make(map[string]*jsonschema.Schema, len(names))
	for _, name := range names {
		schema, err := compiler.Compile(resourceRoot + name)
		if err != nil {
			panic(fmt.Sprintf("compile schema %s: %v", name, err))
		}
		out[strings.TrimSuffix(name, ".json")] = schema
	}
	return out
}
