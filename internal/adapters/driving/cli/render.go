package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// Output formats accepted by --output.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// visiblePlan returns the plan as the given tier may see it.
func visiblePlan(plan domain.PlanDocument, tier domain.AccountTier) domain.PlanDocument {
	if tier.ShowsAutomationInsights() {
		return plan
	}
	return plan.WithoutAutomationInsights()
}

// writePlan renders plan in the requested format.
func writePlan(w io.Writer, plan domain.PlanDocument, tier domain.AccountTier, format string) error {
	visible := visiblePlan(plan, tier)
	switch format {
	case formatJSON:
		text, err := visible.Canonical()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, text)
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlValue(map[string]any(visible))); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatText, "":
		writePlanText(w, plan, tier)
		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q (use text, json or yaml)", domain.ErrInvalidInput, format)
	}
}

// writePlanText prints the sections of a plan for reading in a terminal.
func writePlanText(w io.Writer, plan domain.PlanDocument, tier domain.AccountTier) {
	idea := plan.Idea()
	title := idea.Title
	if title == "" {
		title = "Business Idea"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	for _, field := range []struct{ label, value string }{
		{"Location", idea.Location},
		{"Budget", idea.Budget},
		{"Category", idea.Category},
	} {
		if field.value != "" {
			fmt.Fprintf(w, "%s: %s\n", field.label, field.value)
		}
	}
	if idea.Description != "" {
		fmt.Fprintf(w, "\n%s\n", idea.Description)
	}

	if models := plan.BusinessModels(); len(models) > 0 {
		fmt.Fprintln(w, "\nBusiness Models")
		for i, m := range models {
			fmt.Fprintf(w, "  %d. %s\n", i+1, m.Name)
			if m.Summary != "" {
				fmt.Fprintf(w, "     %s\n", m.Summary)
			}
			writeDetail(w, "Costs", m.CostBreakdown)
			writeDetail(w, "Revenue", m.RevenueForecast)
			writeDetail(w, "Opportunities", m.Opportunities)
			writeDetail(w, "Risks", m.Risks)
		}
	}

	if roadmap := plan.Roadmap(); len(roadmap) > 0 {
		fmt.Fprintln(w, "\nRoadmap")
		for _, step := range roadmap {
			fmt.Fprintf(w, "  %s: %s\n", step.Month, strings.Join(step.Goals, "; "))
		}
	}

	if _, ok := plan[domain.SectionFeasibility]; ok {
		f := plan.Feasibility()
		fmt.Fprintln(w, "\nFeasibility")
		fmt.Fprintf(w, "  Profitable: %s\n", yesNo(f.Profitable))
		if f.HasConfidence {
			fmt.Fprintf(w, "  Confidence: %s/10\n", strconv.FormatFloat(f.ConfidenceScore, 'f', -1, 64))
		}
		if f.RecommendedModel != "" {
			fmt.Fprintf(w, "  Recommended model: %s\n", f.RecommendedModel)
		}
	}

	insights, ok := plan.AutomationInsights()
	switch {
	case ok && tier.ShowsAutomationInsights():
		fmt.Fprintln(w, "\nAutomation Insights")
		for _, key := range sortedKeys(insights) {
			fmt.Fprintf(w, "  %s: %s\n", humanize(key), strings.Join(domain.TextList(insights[key]), "; "))
		}
	case !tier.ShowsAutomationInsights():
		fmt.Fprintln(w, "\nUpgrade to Pro (bizpilot upgrade) to unlock automation insights.")
	}
}

func writeDetail(w io.Writer, label string, v any) {
	switch t := v.(type) {
	case nil:
		return
	case map[string]any:
		parts := make([]string, 0, len(t))
		for _, key := range sortedKeys(t) {
			parts = append(parts, humanize(key)+" "+domain.Text(t[key]))
		}
		fmt.Fprintf(w, "     %s: %s\n", label, strings.Join(parts, ", "))
	default:
		fmt.Fprintf(w, "     %s: %s\n", label, strings.Join(domain.TextList(v), "; "))
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// humanize turns "cost_breakdown" into "Cost breakdown".
func humanize(key string) string {
	s := strings.ReplaceAll(key, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// yamlValue converts json.Number leaves to native numbers so YAML emits
// them unquoted.
func yamlValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = yamlValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = yamlValue(val)
		}
		return out
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
