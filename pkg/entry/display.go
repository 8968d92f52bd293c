package entry

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// PrettyPrint writes entries as an aligned table.
func PrettyPrint(w io.Writer, entries ...Entry) {
	if len(entries) == 0 {
		return
	}
	if w == nil {
		w = color.Output
	}

	tbl := uitable.New()
	tbl.Separator = "  "

	for _, e := range entries {
		tbl.AddRow(e.Row())
	}
	_, _ = fmt.Fprintln(w, tbl)
}
