package disclaimer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldColor    FieldType = "color"
	FieldTextarea FieldType = "textarea"
)

type Field struct {
	Name  string    `json:"name" yaml:"name"`
	Label string    `json:"label" yaml:"label"`
	Type  FieldType `json:"type" yaml:"type"`
}

// Config describes the block to a visual page builder: which props it
// takes, what they start as and which control edits each one.
type Config struct {
	Name         string  `json:"name" yaml:"name"`
	Label        string  `json:"label" yaml:"label"`
	DefaultProps Props   `json:"defaultProps" yaml:"defaultProps"`
	Fields       []Field `json:"fields" yaml:"fields"`
}

var BlockConfig = Config{
	Name:  "Disclaimer",
	Label: "Disclaimer",
	DefaultProps: Props{
		PaidForBy:       "Committee Name",
		PacID:           "C00000000",
		TextColor:       "#ffffff",
		BackgroundColor: "#1f2937",
	},
	Fields: []Field{
		{Name: "paidForBy", Label: "Paid for by", Type: FieldText},
		{Name: "pacId", Label: "PAC ID", Type: FieldText},
		{Name: "textColor", Label: "Text color", Type: FieldColor},
		{Name: "backgroundColor", Label: "Background color", Type: FieldColor},
		{Name: "note", Label: "Additional note (markdown)", Type: FieldTextarea},
	},
}

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var Formats = []string{FormatJSON, FormatYAML}

func (c Config) FieldNames() []string {
	return lo.Map(c.Fields, func(f Field, _ int) string { return f.Name })
}

func (c Config) Export(w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q, expected one of %v", format, Formats)
	}
}
