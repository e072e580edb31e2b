package layout

import (
	"fmt"
	"os"

	"elekit/pkg/domain"
	"elekit/pkg/serrors"
	"gopkg.in/yaml.v3"
)

// Load reads a custom layout from a yaml file and validates it. The file has
// the shape:
//
//	name: my-layout
//	nodes:
//	  - {path: src, kind: dir}
//	  - {path: src/main.py, kind: file}
//	  - path: README.md
//	    kind: template
//	    content: |
//	      # My project
func Load(path string) (domain.Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Layout{}, serrors.Wrap(serrors.ErrNotFound, err, "could not read layout file %q", path)
	}

	var l domain.Layout
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return domain.Layout{}, serrors.Wrap(serrors.ErrInvalid, err, "could not parse layout file %q", path)
	}

	if err := Validate(&l); err != nil {
		return domain.Layout{}, fmt.Errorf("layout file %q: %w", path, err)
	}

	return l, nil
}
