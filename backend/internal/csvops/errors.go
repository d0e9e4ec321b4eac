package csvops

import (
	"errors"
	"fmt"
	"strings"
)

// Dataset labels used in error messages and summaries.
const (
	DatasetOld = "Excel A"
	DatasetNew = "Excel B"
)

// ErrNameColumnRequired is returned when a comparison is requested without a name column.
var ErrNameColumnRequired = errors.New("name column is required")

// MissingColumnError reports which dataset(s) lack the required name column.
type MissingColumnError struct {
	Column   string
	Datasets []string
}

func (e *MissingColumnError) Error() string {
	return "cannot compare because required column is missing: " + strings.Join(e.Lines(), "; ")
}

// Lines renders one "<dataset> missing column: '<col>'" entry per offending dataset.
func (e *MissingColumnError) Lines() []string {
	lines := make([]string, 0, len(e.Datasets))
	for _, d := range e.Datasets {
		lines = append(lines, fmt.Sprintf("%s missing column: '%s'", d, e.Column))
	}
	return lines
}
