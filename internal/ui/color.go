package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/edikit/edikit/internal/edi"
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func DiagnosticLine(w io.Writer, d edi.Diagnostic) {
	label := errStyle.Render("error")
	if d.Severity == edi.SeverityWarning {
		label = warnStyle.Render("warn ")
	}
	fmt.Fprintln(w, label+"  "+d.Error())
}

func SummaryLine(w io.Writer, ic *edi.Interchange, errs, warns int) {
	status := okStyle.Render("ok")
	if errs > 0 {
		status = errStyle.Render("failed")
	}
	fmt.Fprintf(w, "%s  %s interchange %s: %d transaction(s), %d error(s), %d warning(s)\n",
		status, ic.Standard, ic.ControlNumber(), len(ic.AllTransactions()), errs, warns)
}

func SegmentLine(w io.Writer, indent string, seg *edi.Segment) {
	fmt.Fprintf(w, "%s%s %s\n", indent, seg.ID, dimStyle.Render(fmt.Sprintf("(%d elements, line %d)", len(seg.Elements), seg.Pos.Line)))
}

func DuplicateLine(w io.Writer, control string) {
	fmt.Fprintln(w, warnStyle.Render("duplicate")+"  interchange "+control+" was already received")
}

func ReceiptLine(w io.Writer, id, standard, sender, receiver, control, when string, ok bool) {
	status := okStyle.Render("ok    ")
	if !ok {
		status = errStyle.Render("failed")
	}
	fmt.Fprintf(w, "%s  %s %s  %s -> %s  %s  %s\n", status, standard, control, sender, receiver, when, dimStyle.Render(id))
}
