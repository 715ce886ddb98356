package formdef

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formrender/pkg/model"
)

type documentFile struct {
	Forms []model.Form `json:"forms" yaml:"forms"`
}

// Parse decodes a JSON or YAML document. A document holds either a "forms"
// list or a single form.
func Parse(data []byte, source string) ([]model.Form, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("formdef: file %s is empty", source)
	}

	var doc documentFile
	if err := sonic.Unmarshal(data, &doc); err == nil {
		return formsOf(doc, data, source, sonic.Unmarshal)
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return formsOf(doc, data, source, yaml.Unmarshal)
	}
	return nil, fmt.Errorf("formdef: parse %s: invalid JSON or YAML", source)
}

func formsOf(doc documentFile, data []byte, source string, unmarshal func([]byte, any) error) ([]model.Form, error) {
	if len(doc.Forms) > 0 {
		return doc.Forms, nil
	}
	var single model.Form
	if err := unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("formdef: parse %s: %w", source, err)
	}
	if single.ID == "" {
		return nil, fmt.Errorf("formdef: file %s defines no forms", source)
	}
	return []model.Form{single}, nil
}

// Load parses one document into a resolved catalog.
func Load(data []byte, source string) (*Catalog, error) {
	forms, err := Parse(data, source)
	if err != nil {
		return nil, err
	}
	catalog := NewCatalog()
	for _, form := range forms {
		if err := catalog.Add(form, source); err != nil {
			return nil, err
		}
	}
	if err := catalog.Resolve(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// LoadFile reads and loads a single document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formdef: read %s: %w", path, err)
	}
	return Load(data, path)
}

// LoadFS walks fsys and loads every .json, .yaml and .yml file into one
// resolved catalog. Sub-forms may reference forms from other files.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := NewCatalog()
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdef: read %s: %w", path, err)
		}
		forms, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, form := range forms {
			if err := catalog.Add(form, path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := catalog.Resolve(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
