package cli

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaFile is the on-disk YAML schema definition:
//
//	fields:
//	  - id
//	  - name
//	  - email
type SchemaFile struct {
	Fields []string `yaml:"fields"`
}

// LoadSchema reads a YAML schema definition and returns its field names in
// declared order. Validation of the names themselves is the store's job.
func LoadSchema(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var sf SchemaFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(sf.Fields) == 0 {
		return nil, fmt.Errorf("%s declares no fields", path)
	}
	return sf.Fields, nil
}

// parseAssignments turns "field=value" arguments into write-side values.
func parseAssignments(args []string) (map[string]any, error) {
	rec := make(map[string]any, len(args))
	for _, arg := range args {
		field, value, err := splitAssignment(arg)
		if err != nil {
			return nil, err
		}
		rec[field] = value
	}
	return rec, nil
}

func splitAssignment(arg string) (field, value string, err error) {
	field, value, ok := strings.Cut(arg, "=")
	if !ok || field == "" {
		return "", "", fmt.Errorf("invalid field assignment %q: want field=value", arg)
	}
	return field, value, nil
}
