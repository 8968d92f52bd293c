package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/flowlog/pkg/calendar"
	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/printers"
	"tableflip.dev/flowlog/pkg/store"
)

// Get prints one month: the calendar grid and the entries logged in it.
type Get struct {
	Year        int
	Month       time.Month
	WeekStart   calendar.WeekStart
	JSON        bool
	Now         func() time.Time
	Out         io.Writer
	Persistence store.Persistence
}

func (n *Get) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}
	now := n.Now
	if now == nil {
		now = time.Now
	}
	year, month := n.Year, n.Month
	if year == 0 {
		today := entry.Today(now)
		year, month = today.Year, today.Month
	}

	all, err := n.Persistence.Month(ctx, year, month)
	if err != nil {
		return err
	}

	w := n.Out
	if w == nil {
		w = color.Output
	}
	if n.JSON {
		if all == nil {
			all = []entry.Entry{}
		}
		b, err := json.Marshal(all)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, string(b))
		return nil
	}

	cells, err := calendar.Build(year, month, all)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: w}
	pp.NewLine()
	pp.Month(year, month, cells, n.WeekStart, entry.Today(now))
	pp.TitleWithCount("Entries", len(all))
	pp.Entries(all...)
	pp.Title("Key")
	pp.Legend()
	return nil
}
