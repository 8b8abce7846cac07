package config

import (
	"reflect"
	"strings"

	"github.com/tessellated-io/blobtx/log"
	"gopkg.in/yaml.v2"
)

// WriteYamlWithComments writes config as YAML, placing each top level field's `comment` tag above it.
func WriteYamlWithComments(config any, header string, filename string, logger *log.Logger) (bool, error) {
	fileData, err := addCommentsToYaml(config, header)
	if err != nil {
		return false, err
	}

	return SafeWrite(filename, fileData, logger)
}

func addCommentsToYaml(config any, header string) ([]byte, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, err
	}

	comments := topLevelComments(config)

	var result strings.Builder
	if header != "" {
		for _, line := range strings.Split(header, "\n") {
			result.WriteString("# " + line + "\n")
		}
	}

	// Top level keys are the only unindented lines.
	lines := strings.SplitAfter(string(data), "\n")
	for _, line := range lines {
		if line != "" && line[0] != ' ' && line[0] != '-' {
			key, _, found := strings.Cut(line, ":")
			if comment, ok := comments[key]; found && ok {
				result.WriteString("\n# " + comment + "\n")
			}
		}
		result.WriteString(line)
	}

	return []byte(result.String()), nil
}

// topLevelComments maps YAML keys to their comment tags. Handles both struct and pointer to struct.
func topLevelComments(config any) map[string]string {
	comments := make(map[string]string)

	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return comments
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		yamlKey, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		comment := field.Tag.Get("comment")
		if yamlKey != "" && comment != "" {
			comments[yamlKey] = comment
		}
	}
	return comments
}
