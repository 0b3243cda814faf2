package github

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// Variables is the desired set of variables for one environment, keyed by
// variable name. Values are arbitrary strings; nothing is coerced.
type Variables map[string]string

// Keys returns the variable names in sorted order.
func (v Variables) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Document is the desired-state input: environment name to its variables.
// It is read-only once loaded and never mutated by the sync.
type Document map[string]Variables

// EnvironmentNames returns the environment names in sorted order.
func (d Document) EnvironmentNames() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VariableCount returns the total number of variables across environments.
func (d Document) VariableCount() int {
	n := 0
	for _, vars := range d {
		n += len(vars)
	}
	return n
}

// GitHub Actions variable names: alphanumeric or underscore, must not start
// with a digit.
var validVariableKey = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadDocument parses a YAML desired-state document. The top level must be a
// mapping from environment name to a mapping of string keys to string values.
// Non-string variable values (numbers, booleans, nested mappings) are
// rejected at the boundary rather than coerced.
func LoadDocument(data []byte) (Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var validationErrors ValidationErrors
	doc := make(Document, len(raw))

	for envName, rawVars := range raw {
		if err := validateEnvironmentName(envName); err != nil {
			validationErrors.Add("environment", envName, err.Error())
			continue
		}

		// An environment with no variables is a bare key in YAML.
		if rawVars == nil {
			doc[envName] = Variables{}
			continue
		}

		varsMap, ok := rawVars.(map[string]any)
		if !ok {
			validationErrors.Add("environment", envName, "must be a mapping of variable names to string values")
			continue
		}

		vars := make(Variables, len(varsMap))
		for key, value := range varsMap {
			if !validVariableKey.MatchString(key) {
				validationErrors.Add(fmt.Sprintf("%s.%s", envName, key), "", "variable names may only contain alphanumeric characters and underscores and must not start with a digit")
				continue
			}
			str, ok := value.(string)
			if !ok {
				validationErrors.Add(fmt.Sprintf("%s.%s", envName, key), fmt.Sprintf("%v", value), "variable values must be strings; quote numeric or boolean-looking values")
				continue
			}
			vars[key] = str
		}
		doc[envName] = vars
	}

	if validationErrors.HasErrors() {
		return nil, &GitHubError{
			Type:    ErrorTypeValidation,
			Message: validationErrors.Error(),
			Cause:   validationErrors,
		}
	}

	return doc, nil
}

// LoadDocumentFromFile loads a desired-state document from a file
func LoadDocumentFromFile(filename string) (Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadDocument(data)
}

// validateEnvironmentName validates an environment name against GitHub rules
func validateEnvironmentName(name string) error {
	if name == "" {
		return fmt.Errorf("environment name cannot be empty")
	}

	if len(name) > 255 {
		return fmt.Errorf("environment name must be 255 characters or less")
	}

	return nil
}
