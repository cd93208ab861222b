package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-coretweet/pkg/algorithms"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1).
			MarginRight(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

const topShown = 5

func kv(rows ...[2]string) string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s", width, r[0])) + "  " + r[1]
	}
	return strings.Join(lines, "\n")
}

func optional(v *float64) string {
	if v == nil {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", *v)
}

func renderReport(rep *report) string {
	s := rep.result.Summary
	g := s.Graph

	graphBox := boxStyle.Render(titleStyle.Render("Graph") + "\n" + kv(
		[2]string{"vertices", fmt.Sprint(g.Vertices)},
		[2]string{"edges", fmt.Sprint(g.Edges)},
		[2]string{"total weight", fmt.Sprintf("%g", g.TotalWeight)},
		[2]string{"density", fmt.Sprintf("%.4f", g.Density)},
		[2]string{"components", fmt.Sprint(g.Components)},
		[2]string{"diameter", fmt.Sprint(g.Diameter)},
	))

	var boxes []string
	boxes = append(boxes, graphBox)
	if c := s.Community; c != nil {
		boxes = append(boxes, boxStyle.Render(titleStyle.Render("Communities") + "\n" + kv(
			[2]string{"method", c.Method},
			[2]string{"count", fmt.Sprint(c.Count)},
			[2]string{"largest", fmt.Sprint(c.Largest)},
			[2]string{"modularity", optional(c.Modularity)},
			[2]string{"clustering", fmt.Sprintf("%.4f", c.Clustering)},
		)))
	}
	if len(s.Homophily) > 0 {
		rows := make([][2]string, len(s.Homophily))
		for i, h := range s.Homophily {
			rows[i] = [2]string{h.Attribute, fmt.Sprintf("r=%s  E-I=%s", optional(h.Assortativity), optional(h.EIIndex))}
		}
		boxes = append(boxes, boxStyle.Render(titleStyle.Render("Homophily")+"\n"+kv(rows...)))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("co-retweet run " + s.RunID))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n")

	if top := s.Top[algorithms.MetricPageRank]; len(top) > 0 {
		rows := make([][2]string, 0, topShown)
		for i, node := range top[:min(topShown, len(top))] {
			rows = append(rows, [2]string{fmt.Sprintf("%d. %s", i+1, node.ID), fmt.Sprintf("%.6f", node.Score)})
		}
		b.WriteString(boxStyle.Render(titleStyle.Render("Top PageRank") + "\n" + kv(rows...)))
		b.WriteString("\n")
	}

	for _, w := range s.Warnings {
		b.WriteString(warnStyle.Render("! " + w))
		b.WriteString("\n")
	}
	for _, w := range rep.written {
		b.WriteString(labelStyle.Render("wrote " + w.Location))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
