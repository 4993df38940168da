package report

import (
	"encoding/json"
	"io"
)

// jsonRenderer emits the summary as an indented JSON document. The field
// set is part of the tool's interface and stays stable across releases.
type jsonRenderer struct{}

func (r *jsonRenderer) Render(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
