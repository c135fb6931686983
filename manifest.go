package rnav

import (
	"io"
	"os"

	"github.com/rohanthewiz/rnav/core/refs"
	"github.com/rohanthewiz/serr"
	"gopkg.in/yaml.v3"
)

// Manifest declares a plugin and its route references as data, so
// contributions can come from a plugin.yaml next to the plugin instead
// of linked Go code.
//
// Example:
//
//	plugin: catalog
//	refs:
//	  - name: entity
//	    params: [namespace, name]
//	  - name: settings
//	    optional: true
type Manifest struct {
	Plugin string        `yaml:"plugin"`
	Refs   []ManifestRef `yaml:"refs"`
}

// ManifestRef is one route-reference declaration in a manifest.
// An omitted optional field means the binding is required.
type ManifestRef struct {
	Name     string   `yaml:"name"`
	Params   []string `yaml:"params"`
	Optional bool     `yaml:"optional"`
}

// LoadManifest reads a YAML manifest.
func LoadManifest(r io.Reader) (m Manifest, err error) {
	if err = yaml.NewDecoder(r).Decode(&m); err != nil {
		return m, serr.Wrap(err, "decoding plugin manifest")
	}

	if m.Plugin == "" {
		return m, serr.New("manifest is missing the plugin name")
	}
	for _, ref := range m.Refs {
		if ref.Name == "" {
			return m, serr.New("manifest route reference is missing a name",
				"plugin", m.Plugin)
		}
	}
	return m, nil
}

// LoadManifestFile reads a YAML manifest from a file.
func LoadManifestFile(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, serr.Wrap(err, "opening plugin manifest")
	}
	defer f.Close()

	return LoadManifest(f)
}

// RegisterManifest registers the manifest's plugin and declares its
// route references. Returns the plugin handle.
func (h *Host) RegisterManifest(m Manifest) (*Plugin, error) {
	p, err := h.RegisterPlugin(m.Plugin)
	if err != nil {
		return nil, err
	}

	for _, mr := range m.Refs {
		opts := []refs.Option{refs.WithParams(mr.Params...)}
		if mr.Optional {
			opts = append(opts, refs.Optional())
		}

		if err = p.Declare(mr.Name, refs.NewExternal(opts...)); err != nil {
			return nil, err
		}
	}
	return p, nil
}
