package grammar

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"gopkg.llgram.org/llpc/internal/ll"
)

// FormatRule renders the kth rule (1-based) for diagnostics, e.g. when
// expanding a trace into readable derivation steps.
func FormatRule(g *ll.Grammar, k int) (string, error) {
	p, ok := g.Rule(k)
	if !ok {
		return "", fmt.Errorf("grammar has no rule %d", k)
	}
	return fmt.Sprintf("%d: %s", k, p), nil
}

// WriteRuleTable writes all numbered rules as a table.
func WriteRuleTable(w io.Writer, g *ll.Grammar) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "HEAD", "BODY"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	for _, p := range g.Productions() {
		names := make([]string, 0, len(p.Body))
		for _, sym := range p.Body {
			names = append(names, sym.Name)
		}
		table.Append([]string{strconv.Itoa(p.Index), p.Head, strings.Join(names, " ")})
	}
	table.Render()
}
