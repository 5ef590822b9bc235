package layout

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlLevel is the on-disk YAML structure of a layout file.
type yamlLevel struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description,omitempty"`
	Rules       RuleOverrides `yaml:"rules,omitempty"`
	Rows        []string      `yaml:"rows"`
}

// formatExtensions returns supported file extensions.
func formatExtensions() []string {
	return []string{".txt", ".lay", ".yaml", ".yml"}
}

// parseByExtension routes to the correct parser. id is the fallback ID
// derived from the file name.
func parseByExtension(data []byte, ext, id string) (Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return parseYAML(data, id)
	case ".txt", ".lay":
		return parseText(data, id), nil
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

func parseYAML(data []byte, id string) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(yl.Rows) == 0 {
		return Level{}, fmt.Errorf("layout %q has no rows", id)
	}
	lvl := Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Description: yl.Description,
		Rules:       yl.Rules,
		Rows:        yl.Rows,
	}
	if lvl.ID == "" {
		lvl.ID = id
	}
	if lvl.Name == "" {
		lvl.Name = titleFromID(lvl.ID)
	}
	return lvl, nil
}

// parseText reads a raw grid. Leading blank lines and trailing blank lines
// are dropped; inner rows are kept verbatim.
func parseText(data []byte, id string) Level {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	rows := strings.Split(text, "\n")
	for len(rows) > 0 && strings.TrimSpace(rows[0]) == "" {
		rows = rows[1:]
	}
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	return Level{ID: id, Name: titleFromID(id), Rows: rows}
}

// titleFromID turns "pie-wall" into "Pie Wall".
func titleFromID(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
