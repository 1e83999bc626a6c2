// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 qiao-925

package manifest

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// Writer encodes a manifest to a stream.
type Writer struct {
	write func(w io.Writer, v any) error
}

var (
	// JSONWriter writes the manifest as JSON.
	JSONWriter = Writer{writeJSON}
	// YAMLWriter writes the manifest as YAML.
	YAMLWriter = Writer{writeYAML}
)

// export is the serialized shape: repos grouped by classification.
type export struct {
	Groups map[string][]Repo `json:"groups" yaml:"groups"`
}

// Write encodes the manifest, grouped and sorted.
func (wr Writer) Write(w io.Writer, m *Manifest) error {
	out := export{Groups: map[string][]Repo{}}
	for _, r := range m.Repos() {
		out.Groups[r.Group] = append(out.Groups[r.Group], r)
	}
	return wr.write(w, out)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close() //nolint:errcheck
	return enc.Encode(v)
}
