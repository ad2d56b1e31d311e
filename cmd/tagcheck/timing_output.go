package main

import (
	"fmt"
	"io"

	"tagcheck/internal/driver"
)

func printTimings(out io.Writer, run *driver.Run) {
	if out == nil || run == nil || run.Timer == nil {
		return
	}
	report := run.Timer.Report()
	if len(report.Phases) == 0 {
		return
	}
	fmt.Fprint(out, report.String())
	var cached int
	for i := range run.Results {
		if run.Results[i].Cached {
			cached++
		}
	}
	if cached > 0 {
		fmt.Fprintf(out, "  %d of %d documents served from cache\n", cached, len(run.Results))
	}
}
