package common

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteOutput marshals v to stdout as indented JSON (the default) or
// YAML when format is "yaml".
func WriteOutput(v interface{}, format string) error {
	var data []byte
	var err error

	if strings.ToLower(format) == "yaml" {
		data, err = yaml.Marshal(v)
	} else {
		data, err = json.MarshalIndent(v, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	fmt.Println(string(data))
	return nil
}
