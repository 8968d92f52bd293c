package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/store"
)

// Remove deletes the entry of one date. Removing an absent date is not an
// error.
type Remove struct {
	Date        entry.Date
	Out         io.Writer
	Persistence store.Persistence
}

func (r *Remove) Do(ctx context.Context) error {
	if r.Persistence == nil {
		return errors.New("can not remove, no persistence")
	}
	if r.Date.IsZero() {
		return errors.New("can not remove, no date")
	}
	w := r.Out
	if w == nil {
		w = color.Output
	}

	existing, found, err := r.Persistence.Find(ctx, r.Date)
	if err != nil {
		return err
	}
	if !found {
		_, _ = color.New(color.Faint).Fprintf(w, "nothing logged on %s\n", r.Date)
		return nil
	}
	if err := r.Persistence.Delete(ctx, r.Date); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "removed %s\n", entry.New(r.Date, existing))
	return nil
}
