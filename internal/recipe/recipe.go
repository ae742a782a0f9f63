// Package recipe loads transform recipes from TOML or Markdown files and
// merges command-line overrides into them.
package recipe

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/sokinpui/transplant/internal/fs"
	"github.com/sokinpui/transplant/internal/splice"
)

type tomlRecipe struct {
	Excise struct {
		Start     string  `toml:"start"`
		End       string  `toml:"end"`
		Separator *string `toml:"separator"`
	} `toml:"excise"`
	Insert struct {
		Marker      string  `toml:"marker"`
		Payload     string  `toml:"payload"`
		PayloadFile string  `toml:"payload_file"`
		Separator   *string `toml:"separator"`
	} `toml:"insert"`
	Usage struct {
		Old string `toml:"old"`
		New string `toml:"new"`
	} `toml:"usage"`
}

// Overrides holds recipe values given on the command line. Empty fields leave
// the loaded recipe untouched.
type Overrides struct {
	StartMarker  string
	EndMarker    string
	InsertMarker string
	PayloadFile  string
	OldUsage     string
	NewUsage     string
}

// Load reads a recipe file, choosing the format by extension.
func Load(path string) (splice.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return splice.Recipe{}, fmt.Errorf("failed to read recipe: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ParseTOML(data, filepath.Dir(path))
	case ".md", ".markdown":
		return ParseMarkdown(data)
	default:
		return splice.Recipe{}, fmt.Errorf("unsupported recipe format %q (want .toml or .md)", filepath.Ext(path))
	}
}

// ParseTOML builds a Recipe from TOML. A relative payload_file is resolved
// against baseDir.
func ParseTOML(data []byte, baseDir string) (splice.Recipe, error) {
	var tr tomlRecipe
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tr); err != nil {
		return splice.Recipe{}, fmt.Errorf("failed to parse toml recipe: %w", err)
	}

	r := splice.NewRecipe()
	r.StartMarker = tr.Excise.Start
	r.EndMarker = tr.Excise.End
	if tr.Excise.Separator != nil {
		r.ExciseSeparator = *tr.Excise.Separator
	}

	r.InsertMarker = tr.Insert.Marker
	if tr.Insert.Separator != nil {
		r.InsertSeparator = *tr.Insert.Separator
	}

	switch {
	case tr.Insert.Payload != "" && tr.Insert.PayloadFile != "":
		return splice.Recipe{}, fmt.Errorf("toml recipe sets both insert.payload and insert.payload_file")
	case tr.Insert.PayloadFile != "":
		payloadPath := tr.Insert.PayloadFile
		if !filepath.IsAbs(payloadPath) {
			payloadPath = filepath.Join(baseDir, payloadPath)
		}
		payload, err := fs.ReadText(payloadPath)
		if err != nil {
			return splice.Recipe{}, fmt.Errorf("failed to read payload: %w", err)
		}
		r.Payload = payload
	default:
		r.Payload = tr.Insert.Payload
	}

	r.OldUsage = tr.Usage.Old
	r.NewUsage = tr.Usage.New
	return r, nil
}

// Apply merges the overrides into r. A payload file override is read here.
func (o Overrides) Apply(r splice.Recipe) (splice.Recipe, error) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&r.StartMarker, o.StartMarker)
	set(&r.EndMarker, o.EndMarker)
	set(&r.InsertMarker, o.InsertMarker)
	set(&r.OldUsage, o.OldUsage)
	set(&r.NewUsage, o.NewUsage)

	if o.PayloadFile != "" {
		payload, err := fs.ReadText(o.PayloadFile)
		if err != nil {
			return r, fmt.Errorf("failed to read payload: %w", err)
		}
		r.Payload = payload
	}
	return r, nil
}
