package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var builtinFS embed.FS

// Parse decodes one catalog file. Unknown fields are rejected. Templates
// inherit the file's grade and category when they leave them unset.
func Parse(data []byte) ([]TemplateSpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	for i := range f.Templates {
		if f.Templates[i].Grade == 0 {
			f.Templates[i].Grade = f.Grade
		}
		if f.Templates[i].Category == "" {
			f.Templates[i].Category = f.Category
		}
	}
	return f.Templates, nil
}

// LoadFS reads every .yaml and .yml file under fsys in lexical order.
func LoadFS(fsys fs.FS) ([]TemplateSpec, error) {
	var specs []TemplateSpec
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isCatalogFile(p) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		parsed, err := Parse(data)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		for i := range parsed {
			parsed[i].Source = p
		}
		specs = append(specs, parsed...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return specs, nil
}

// LoadDir reads the catalog files in dir.
func LoadDir(dir string) ([]TemplateSpec, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("read templates directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("templates path %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// Builtin returns the specs of the embedded catalog.
func Builtin() ([]TemplateSpec, error) {
	sub, err := fs.Sub(builtinFS, "templates")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// Load builds a registry from the embedded catalog plus, when extraDir is
// set, the catalog files found there.
func Load(extraDir string) (*Registry, error) {
	specs, err := Builtin()
	if err != nil {
		return nil, fmt.Errorf("load builtin catalog: %w", err)
	}

	r := NewRegistry()
	if err := r.Register(specs...); err != nil {
		return nil, fmt.Errorf("builtin catalog: %w", err)
	}

	if extraDir == "" {
		return r, nil
	}
	extra, err := LoadDir(extraDir)
	if err != nil {
		return nil, err
	}
	if err := r.Register(extra...); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", extraDir, err)
	}
	return r, nil
}

func isCatalogFile(p string) bool {
	switch path.Ext(p) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
