// Package suitefile loads declarative test suites from YAML files.
//
// A suite file names a suite and declares a tree of groups and checks.
// Each check invokes a registered check function by name with a map of
// arguments. Files are validated twice: against an embedded CUE schema
// for shape, then strictly decoded (unknown fields rejected) so typos
// like "test:" for "tests:" fail loudly at load time.
package suitefile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/attestkit/attest/internal/suite"
)

// File is the decoded form of a suite file.
type File struct {
	// Name uniquely identifies the suite.
	Name string `yaml:"name"`

	// Description explains what the suite validates. Optional.
	Description string `yaml:"description,omitempty"`

	// Tests is the tree of checks and nested groups, in declaration order.
	Tests []NodeSpec `yaml:"tests"`
}

// NodeSpec is either a check (name + check set) or a group
// (group + tests set); mixing the two shapes is a load error.
type NodeSpec struct {
	// Check fields.
	Name   string         `yaml:"name,omitempty"`
	Check  string         `yaml:"check,omitempty"`
	Args   map[string]any `yaml:"args,omitempty"`
	Ignore bool           `yaml:"ignore,omitempty"`

	// Group fields.
	Group string     `yaml:"group,omitempty"`
	Tests []NodeSpec `yaml:"tests,omitempty"`
}

// Load reads, validates, and builds the suite defined in one file.
// Check names are resolved against checks at load time, so an unknown
// check is a load error rather than a runtime one.
func Load(path string, checks *Checks) (*suite.Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	// Generic decode first, for schema validation.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// Strict decode rejects unknown fields the open schema tolerates.
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode suite file: %w", err)
	}

	return buildSuite(&file, checks)
}

// LoadDir loads every .yaml/.yml suite file under dir, in walk order.
// A non-empty filter glob restricts loading to files whose base name
// (extension stripped) matches.
func LoadDir(dir string, filter string, checks *Checks) ([]*suite.Suite, error) {
	var suites []*suite.Suite

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}
		s, err := Load(path, checks)
		if err != nil {
			return err
		}
		suites = append(suites, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return suites, nil
}

func buildSuite(file *File, checks *Checks) (*suite.Suite, error) {
	if file.Name == "" {
		return nil, fmt.Errorf("invalid suite file: name is required")
	}
	nodes, err := buildNodes(file.Tests, checks, file.Name)
	if err != nil {
		return nil, err
	}
	return suite.New(file.Name, nodes...), nil
}

func buildNodes(specs []NodeSpec, checks *Checks, path string) ([]suite.Node, error) {
	nodes := make([]suite.Node, 0, len(specs))
	for i, spec := range specs {
		node, err := buildNode(spec, checks, fmt.Sprintf("%s/tests[%d]", path, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func buildNode(spec NodeSpec, checks *Checks, path string) (suite.Node, error) {
	isGroup := spec.Group != ""
	isCheck := spec.Name != "" || spec.Check != ""

	switch {
	case isGroup && isCheck:
		return nil, fmt.Errorf("%s: node declares both group and check fields", path)
	case isGroup:
		children, err := buildNodes(spec.Tests, checks, path)
		if err != nil {
			return nil, err
		}
		return suite.NewGroup(spec.Group, children...), nil
	case isCheck:
		if spec.Name == "" {
			return nil, fmt.Errorf("%s: name is required", path)
		}
		if spec.Check == "" {
			return nil, fmt.Errorf("%s: check is required", path)
		}
		if len(spec.Tests) > 0 {
			return nil, fmt.Errorf("%s: a check cannot have nested tests", path)
		}
		fn, ok := checks.lookup(spec.Check)
		if !ok {
			return nil, fmt.Errorf("%s: unknown check %q", path, spec.Check)
		}
		args := spec.Args
		body := func() error { return fn(args) }
		t := suite.NewTest(spec.Name, body)
		if spec.Ignore {
			t = t.Ignore()
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%s: node must declare either a check or a group", path)
	}
}
