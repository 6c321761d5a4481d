package main

import (
	"fmt"
	"html/template"
	"os"
	"sort"
	"strings"

	"github.com/heavybullets8/cutstock/pkg/cutting"
)

// printSummary prints a terminal report summarizing the cutting plan across
// every stock length used.
func printSummary(ctx cutting.OptimizationContext, res cutting.OptimizationResult) {
	fmt.Println("\n--- Cut Optimization Summary ---")
	fmt.Printf("Algorithm:     %s\n", res.Algorithm)
	fmt.Printf("Stock Needed:  %d bars\n", res.StockCount)
	fmt.Printf("Efficiency:    %.1f%%\n", res.Efficiency)
	if res.StockCount > 0 {
		fmt.Printf("Total Waste:   %.1f mm (avg %.1f mm per bar)\n", res.TotalWaste, res.TotalWaste/float64(res.StockCount))
	}
	fmt.Printf("Execution:     %.2f ms\n", res.ExecutionTimeMs)
	fmt.Println("---------------------------------")

	for _, s := range res.StockSummary {
		fmt.Printf("\nStock %.1f mm: %d bars, avg waste %.1f mm, efficiency %.1f%%\n",
			s.StockLength, s.Count, s.AvgWaste, s.Efficiency)
	}

	if len(res.DetailedWasteAnalysis.ExcessiveCutIndices) > 0 {
		fmt.Printf("\n%d bar(s) flagged with excessive waste.\n", len(res.DetailedWasteAnalysis.ExcessiveCutIndices))
	}
}

type cutTicketData struct {
	Date       string
	RequestID  string
	Algorithm  string
	StockCount int
	Efficiency string
	TotalWaste string
	Patterns   []patternRow
}

type patternRow struct {
	Count    int
	CutList  string
	StockLen string
	Used     string
	Waste    string
	Marks    []markRow
}

type markRow struct {
	Index int
	MarkAt string
	Length string
}

// writeCutTicket renders an HTML cut ticket, one section per distinct
// cutting pattern (plan label), with a per-piece mark-at table for the shop
// floor.
func writeCutTicket(path string, ctx cutting.OptimizationContext, res cutting.OptimizationResult) error {
	grouped := groupByPlanLabel(res.Cuts)

	labels := make([]string, 0, len(grouped))
	for label := range grouped {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	data := cutTicketData{
		RequestID:  ctx.RequestID,
		Algorithm:  res.Algorithm.String(),
		StockCount: res.StockCount,
		Efficiency: fmt.Sprintf("%.1f", res.Efficiency),
		TotalWaste: fmt.Sprintf("%.1f", res.TotalWaste),
	}

	for _, label := range labels {
		cuts := grouped[label]
		rep := cuts[0]

		lengths := make([]string, len(rep.Segments))
		for i, s := range rep.Segments {
			lengths[i] = fmt.Sprintf("%.1f mm", s.Length)
		}

		var marks []markRow
		for i, s := range rep.Segments {
			marks = append(marks, markRow{Index: i + 1, MarkAt: fmt.Sprintf("%.1f mm", s.EndPosition()), Length: fmt.Sprintf("%.1f mm", s.Length)})
		}

		data.Patterns = append(data.Patterns, patternRow{
			Count:    len(cuts),
			CutList:  strings.Join(lengths, ", "),
			StockLen: fmt.Sprintf("%.1f mm", rep.StockLength),
			Used:     fmt.Sprintf("%.1f mm", rep.UsedLength),
			Waste:    fmt.Sprintf("%.1f mm", rep.RemainingLength),
			Marks:    marks,
		})
	}

	t := template.Must(template.New("ticket").Parse(cutTicketTemplate))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return t.Execute(f, data)
}

func groupByPlanLabel(cuts []cutting.Cut) map[string][]cutting.Cut {
	out := map[string][]cutting.Cut{}
	for _, c := range cuts {
		out[c.PlanLabel] = append(out[c.PlanLabel], c)
	}
	return out
}

const cutTicketTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>Cut Ticket</title>
    <style>
        :root { --ink: #1C1E21; --steel: #3A4750; --safety: #EE6C4D; --row: #F2F3F4; --border: #B0B6BB; }
        * { box-sizing: border-box; }
        body { font-family: "Consolas", "Courier New", monospace; margin: 0 auto; max-width: 960px; padding: 24px; color: var(--ink); background: #fff; }
        h1 { color: var(--steel); margin-top: 0; text-transform: uppercase; letter-spacing: 1px; }
        h2, h3 { color: var(--steel); border-bottom: 3px solid var(--safety); padding-bottom: 4px; }
        table { width: 100%; border-collapse: collapse; margin: 16px 0; }
        th, td { padding: 8px 6px; border: 1px solid var(--border); font-variant-numeric: tabular-nums; }
        th { background: var(--steel); color: #fff; text-align: left; }
        tr:nth-child(even) td { background: var(--row); }
        @media print { body { padding: 0; } h1 { font-size: 18pt; } }
    </style>
</head>
<body>
<h1>Cut Ticket</h1>
<p>
    <strong>Request:</strong> {{.RequestID}}<br>
    <strong>Algorithm:</strong> {{.Algorithm}}<br>
    <strong>Bars needed:</strong> {{.StockCount}}<br>
    <strong>Efficiency:</strong> {{.Efficiency}}%<br>
    <strong>Total waste:</strong> {{.TotalWaste}} mm
</p>
<h2>Cut Patterns</h2>
<table>
    <tr><th>Qty</th><th>Stock</th><th>Cuts</th><th>Used</th><th>Waste</th></tr>
    {{range .Patterns}}
    <tr><td>{{.Count}}</td><td>{{.StockLen}}</td><td>{{.CutList}}</td><td>{{.Used}}</td><td>{{.Waste}}</td></tr>
    {{end}}
</table>
{{range $p := .Patterns}}
<h3>Pattern &times;{{$p.Count}} on {{$p.StockLen}}</h3>
<table>
    <tr><th>#</th><th>Mark At</th><th>Cut Piece</th></tr>
    {{range $p.Marks}}
    <tr><td>{{.Index}}</td><td>{{.MarkAt}}</td><td>{{.Length}}</td></tr>
    {{end}}
</table>
{{end}}
</body>
</html>`
