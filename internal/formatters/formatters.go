package formatters

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"strings"

	"credflow-console/internal/dunning"
	"credflow-console/web"
)

// RuleRow is one rendered row of a rule listing.
type RuleRow struct {
	RuleName  string `json:"rule_name"`
	Priority  int    `json:"priority"`
	Active    bool   `json:"active"`
	AppliesTo string `json:"applies_to"`
	Condition string `json:"condition"`
	Action    string `json:"action"`
}

// RulesOutput is the complete rule-listing payload for JSON output.
type RulesOutput struct {
	TotalRules  int       `json:"total_rules"`
	ActiveRules int       `json:"active_rules"`
	Rules       []RuleRow `json:"rules"`
}

func buildRows(rules []dunning.Rule) RulesOutput {
	output := RulesOutput{TotalRules: len(rules)}
	for i := range rules {
		r := &rules[i]
		if r.IsActive {
			output.ActiveRules++
		}
		appliesTo := string(r.AppliesToPlanType)
		if appliesTo == "" || r.AppliesToPlanType == dunning.PlanAll {
			appliesTo = "All"
		}
		output.Rules = append(output.Rules, RuleRow{
			RuleName:  r.RuleName,
			Priority:  r.Priority,
			Active:    r.IsActive,
			AppliesTo: appliesTo,
			Condition: dunning.FormatCondition(*r),
			Action:    dunning.FormatAction(*r),
		})
	}
	return output
}

// RulesText renders a rule listing as a plain-text table.
func RulesText(w io.Writer, rules []dunning.Rule) {
	output := buildRows(rules)

	fmt.Fprintf(w, "Dunning Rules\n")
	fmt.Fprintf(w, "=============\n\n")
	fmt.Fprintf(w, "Total: %d rules (%d active)\n\n", output.TotalRules, output.ActiveRules)

	fmt.Fprintf(w, "%-4s %-30s %-8s %-10s %-24s %s\n", "PRI", "NAME", "ACTIVE", "APPLIES", "CONDITION", "ACTION")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 110))
	for _, row := range output.Rules {
		active := "no"
		if row.Active {
			active = "yes"
		}
		fmt.Fprintf(w, "%-4d %-30s %-8s %-10s %-24s %s\n",
			row.Priority, row.RuleName, active, row.AppliesTo, row.Condition, row.Action)
	}
}

// RulesJSON renders a rule listing as indented JSON.
func RulesJSON(w io.Writer, rules []dunning.Rule) {
	output := buildRows(rules)

	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling JSON: %v", err)
	}
	fmt.Fprintln(w, string(jsonData))
}

// TimelineText renders the dunning timeline as plain text, one event per
// line in day order with the derived axis ticks at the bottom.
func TimelineText(w io.Writer, timeline dunning.Timeline) {
	fmt.Fprintf(w, "Dunning Timeline (day 0 to %d)\n", timeline.MaxDay)
	fmt.Fprintf(w, "==============================\n\n")

	if len(timeline.Events) == 0 {
		fmt.Fprintf(w, "No active day-based rules.\n")
		return
	}

	for _, event := range timeline.Events {
		fmt.Fprintf(w, "Day %3d  [%s]\n", event.Day, event.BadgeLabel)
		for _, line := range strings.Split(event.TooltipContent, "\n") {
			fmt.Fprintf(w, "         %s\n", line)
		}
		fmt.Fprintln(w)
	}

	var ticks []string
	for _, tick := range timeline.Ticks {
		ticks = append(ticks, fmt.Sprintf("%d", tick))
	}
	fmt.Fprintf(w, "Axis: %s\n", strings.Join(ticks, " "))
}

// TimelineJSON renders the derived timeline as indented JSON.
func TimelineJSON(w io.Writer, timeline dunning.Timeline) {
	jsonData, err := json.MarshalIndent(timeline, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling JSON: %v", err)
	}
	fmt.Fprintln(w, string(jsonData))
}

// TickMark is one axis label with its precomputed position.
type TickMark struct {
	Day    int
	Offset float64
}

// TimelineHTMLData is the template payload for the HTML timeline report.
type TimelineHTMLData struct {
	Timeline    dunning.Timeline
	TickMarks   []TickMark
	Rules       []RuleRow
	TotalRules  int
	ActiveRules int
	GeneratedAt string
	CSS         template.CSS
	JS          template.JS
}

// TimelineHTML renders the timeline and rule listing as a standalone HTML
// report. Writes to outputFile, or stdout when outputFile is empty.
func TimelineHTML(timeline dunning.Timeline, rules []dunning.Rule, generatedAt, outputFile string) {
	rows := buildRows(rules)
	var tickMarks []TickMark
	for _, day := range timeline.Ticks {
		tickMarks = append(tickMarks, TickMark{
			Day:    day,
			Offset: 2 + float64(day)/float64(timeline.MaxDay)*96,
		})
	}
	data := TimelineHTMLData{
		Timeline:    timeline,
		TickMarks:   tickMarks,
		Rules:       rows.Rules,
		TotalRules:  rows.TotalRules,
		ActiveRules: rows.ActiveRules,
		GeneratedAt: generatedAt,
		CSS:         template.CSS(web.CSS),
		JS:          template.JS(web.JS),
	}

	tmpl := template.Must(template.New("timeline-report.html").Funcs(templateFuncs()).ParseFS(web.Templates, "templates/timeline-report.html"))

	var output *os.File
	var err error

	if outputFile != "" {
		output, err = os.OpenFile(outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			log.Fatalf("Error creating HTML file: %v", err)
		}
		defer output.Close()
	} else {
		output = os.Stdout
	}

	if err := tmpl.Execute(output, data); err != nil {
		log.Fatalf("Error executing template: %v", err)
	}

	if outputFile != "" {
		fmt.Printf("HTML report generated: %s\n", outputFile)
	}
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"lower": strings.ToLower,
		"pct": func(offset float64) string {
			return fmt.Sprintf("%.2f%%", offset)
		},
		"nl2br": func(s string) template.HTML {
			return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
		},
		"sideClass": func(above bool) string {
			if above {
				return "event-above"
			}
			return "event-below"
		},
	}
}
