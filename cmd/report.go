package cmd

import (
	"bufio"
	"io"

	"github.com/conneroisu/planwriter/internal/generate"
	"github.com/conneroisu/planwriter/internal/pagebuf"
	"github.com/conneroisu/planwriter/internal/stream"
)

func resultLabel(r generate.TargetResult, dryRun bool) string {
	switch {
	case r.Err != nil:
		return "failed"
	case dryRun && r.Stale:
		return "stale"
	case dryRun:
		return "up-to-date"
	case r.Result == pagebuf.ResultWritten:
		return "written"
	default:
		return "unchanged"
	}
}

// writeReport prints one line per reported target followed by a totals line.
// Unchanged targets are only listed when verbose is set.
func writeReport(w io.Writer, summary *generate.Summary, dryRun, verbose bool) error {
	out := bufio.NewWriter(w)

	for _, r := range summary.Results {
		label := resultLabel(r, dryRun)
		if !verbose && (label == "unchanged" || label == "up-to-date") {
			continue
		}
		stream.WriteStrings(out, "  ", label, "\t", r.Target, " -> ", r.Path)
		if r.Err != nil {
			stream.WriteStrings(out, ": ", r.Err.Error())
		}
		_ = out.WriteByte('\n')
	}

	stream.WriteInt(out, len(summary.Results))
	stream.WriteString(out, " targets: ")
	if dryRun {
		stream.WriteInt(out, summary.Stale)
		stream.WriteString(out, " stale, ")
	} else {
		stream.WriteInt(out, summary.Written)
		stream.WriteString(out, " written, ")
	}
	stream.WriteInt(out, summary.Unchanged)
	stream.WriteString(out, " unchanged, ")
	stream.WriteInt(out, summary.Failed)
	stream.WriteLine(out, " failed")

	return out.Flush()
}
