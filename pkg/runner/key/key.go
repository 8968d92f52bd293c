// Package key provides CLI helpers to display the flow legend.
package key

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/flowlog/pkg/calendar"
	"tableflip.dev/flowlog/pkg/flow"
)

// Key prints the flow levels with their symbols and codes.
type Key struct {
	// Out defaults to color.Output.
	Out io.Writer
}

// Do renders the legend.
func (k *Key) Do(ctx context.Context) error {
	w := k.Out
	if w == nil {
		w = color.Output
	}
	_, _ = fmt.Fprintln(w, "")

	levels := flow.Options()
	sort.Sort(flow.ByOrder(levels))
	k.Key(ctx, w, levels)

	_, _ = fmt.Fprintln(w, "")
	return nil
}

// Key renders a table of the given levels.
func (k *Key) Key(_ context.Context, w io.Writer, levels []flow.Flow) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Flow"), bold.Sprint("Code"), bold.Sprint("Name"), bold.Sprint("Meaning"))
	for _, f := range levels {
		l := f.Level()
		tbl.AddRow(calendar.Swatch(f), f.Code(), l.Name, l.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}
