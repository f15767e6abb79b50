package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/garagemonitor/garagemonitor/internal/diagnostic"
	"github.com/garagemonitor/garagemonitor/internal/fleet"
)

// Text writes snap to w in report order. Nothing is written for an empty
// snapshot.
func Text(w io.Writer, snap fleet.Snapshot) error {
	if snap.Len() == 0 {
		return nil
	}

	bw := bufio.NewWriter(w)
	for _, st := range snap.Statuses {
		fmt.Fprintf(bw, "Car: %s\n", st.CarID)
		if score, ok := st.ScoreValue(); ok {
			fmt.Fprintf(bw, "  Performance Score: %.2f\n", score)
		} else {
			fmt.Fprintln(bw, "  Performance Score: INVALID")
		}
		if msg := st.Alert.Message(); msg != "" {
			fmt.Fprintf(bw, "  ALERT: %s\n", msg)
		}
		fmt.Fprintf(bw, "  Diagnostics: %s\n", formatDiagnostics(st.Diagnostics))
	}

	scored := 0
	for _, st := range snap.Statuses {
		if st.Complete {
			scored++
		}
	}
	if avg, ok := snap.AverageScore(); ok {
		fmt.Fprintf(bw, "Fleet: %d cars, %d scored, average score %.2f\n", snap.Len(), scored, avg)
	} else {
		fmt.Fprintf(bw, "Fleet: %d cars, none scored\n", snap.Len())
	}
	return bw.Flush()
}

// formatDiagnostics lists readings in canonical kind order as kind=value.
func formatDiagnostics(d map[diagnostic.Kind]diagnostic.Record) string {
	parts := make([]string, 0, len(d))
	for _, k := range diagnostic.Kinds() {
		if rec, ok := d[k]; ok {
			parts = append(parts, k.String()+"="+strconv.FormatFloat(rec.Value(), 'g', -1, 64))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
