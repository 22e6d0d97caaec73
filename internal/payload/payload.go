// Package payload validates raw request bodies against embedded JSON schemas
// and holds the lenient field types used when decoding them.
package payload

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/qri-io/jsonschema"

	"github.com/garnizeh/skillswap/internal/apperr"
)

// Schema names, one per file under schemas/.
const (
	Signup        = "signup"
	Login         = "login"
	RequestCreate = "request_create"
	RequestStatus = "request_status"
	ChatCreate    = "chat_create"
	MessageCreate = "message_create"
	ReportCreate  = "report_create"
	SkillCreate   = "skill_create"
	SavedSkill    = "saved_skill"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Registry holds compiled schemas keyed by name.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*jsonschema.Schema
}

// NewRegistry compiles every embedded schema.
func NewRegistry() (*Registry, error) {
	return LoadRegistry(schemaFS, "schemas")
}

// LoadRegistry compiles every *.json file in dir of fsys.
func LoadRegistry(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read schemas: %w", err)
	}

	schemas := make(map[string]*jsonschema.Schema, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		b, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}
		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", e.Name(), err)
		}
		schemas[strings.TrimSuffix(e.Name(), ".json")] = rs
	}

	return &Registry{schemas: schemas}, nil
}

// Validate checks data against the named schema. Malformed JSON and schema
// violations come back as validation errors naming the offending fields.
func (r *Registry) Validate(ctx context.Context, name string, data []byte) error {
	r.mu.RLock()
	schema, ok := r.schemas[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no schema named %q", name)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return apperr.Validation("request body is required")
	}
	if !json.Valid(data) {
		return apperr.Validation("invalid request")
	}

	verrs, err := schema.ValidateBytes(ctx, data)
	if err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid request", err)
	}
	if len(verrs) > 0 {
		msgs := make([]string, 0, len(verrs))
		for _, v := range verrs {
			field := strings.TrimPrefix(v.PropertyPath, "/")
			if field == "" {
				msgs = append(msgs, v.Message)
				continue
			}
			msgs = append(msgs, field+": "+v.Message)
		}
		return apperr.Validation(strings.Join(msgs, "; "))
	}
	return nil
}

// ID decodes a positive identifier sent either as a JSON number or as a
// numeric string. Absent or null leaves it zero.
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = 0
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unq)
	}
	if s == "" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", s)
	}
	*id = ID(v)
	return nil
}

// StringList accepts a JSON array of strings, a JSON-encoded array inside a
// string, or a comma-separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = NormalizeList(arr)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("expected a list of strings")
	}
	*l = ParseList(s)
	return nil
}

// ParseList splits a raw form value that holds either a JSON array or a
// comma-separated list.
func ParseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			return NormalizeList(arr)
		}
	}
	return NormalizeList(strings.Split(raw, ","))
}

// NormalizeList trims entries, drops blanks and removes case-insensitive duplicates.
func NormalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
