package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/exprtree"
)

// loadContext builds an evaluation context from a YAML file mapping names to
// integers, if path is non-empty, and then from name=value definitions.
// Definitions override the file.
func loadContext(path string, given []string) (*exprtree.Context, error) {
	var opts []exprtree.ContextOption
	if path != "" {
		vars, err := readVarsFile(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, exprtree.SetVars(vars))
	}
	for _, d := range given {
		name, val, err := parseGiven(d)
		if err != nil {
			return nil, err
		}
		opts = append(opts, exprtree.SetVar(name, val))
	}
	return exprtree.NewContext(opts...), nil
}

func readVarsFile(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading variables: %w", err)
	}
	var vars map[string]int
	if err := yaml.Unmarshal(data, &vars); err != nil {
		return nil, fmt.Errorf("parsing variables in %s: %w", path, err)
	}
	return vars, nil
}

// parseGiven parses a "name=value" variable definition.
func parseGiven(s string) (string, int, error) {
	name, val, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, errors.New("variable definition " + strconv.Quote(s) + " has no name")
	}
	v, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return "", 0, fmt.Errorf("setting %s: %w", name, err)
	}
	return name, v, nil
}
