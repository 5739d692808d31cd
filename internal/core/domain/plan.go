package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// PlanDocument is a generated business analysis as returned by the generation
// service: idea summary, business models, roadmap, feasibility and, for Pro
// accounts, automation insights.
//
// The server owns the shape and it is not contractually fixed, so the document
// is kept as a loosely typed JSON object and passed through verbatim. The
// accessors below only read; nothing in the client rewrites a plan.
type PlanDocument map[string]any

// Top-level plan sections.
const (
	SectionIdea               = "idea"
	SectionBusinessModels     = "business_models"
	SectionRoadmap            = "roadmap"
	SectionFeasibility        = "feasibility"
	SectionAutomationInsights = "automation_insights"
)

// DecodePlan parses JSON text into a PlanDocument.
// Numbers are kept as json.Number so that every field round-trips exactly.
func DecodePlan(data []byte) (PlanDocument, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var plan PlanDocument
	if err := dec.Decode(&plan); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPlan, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after document", ErrMalformedPlan)
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: null document", ErrMalformedPlan)
	}
	return plan, nil
}

// Validate reports whether the document can stand in as a session plan.
func (p PlanDocument) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty document", ErrMalformedPlan)
	}
	return nil
}

// Canonical returns the indented JSON text form of the plan.
// Map keys are emitted in sorted order and HTML characters are left unescaped.
func (p PlanDocument) Canonical() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return "", fmt.Errorf("encode plan: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Clone returns a deep copy of the plan.
func (p PlanDocument) Clone() PlanDocument {
	if p == nil {
		return nil
	}
	return cloneValue(p).(PlanDocument)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case PlanDocument:
		out := make(PlanDocument, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}

// Lookup walks nested objects by key and returns the value found.
func (p PlanDocument) Lookup(path ...string) (any, bool) {
	var cur any = map[string]any(p)
	for _, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Number looks up a numeric field. Numeric strings are accepted too, since
// the service is not consistent about quoting scores.
func (p PlanDocument) Number(path ...string) (float64, bool) {
	v, ok := p.Lookup(path...)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// IdeaSummary is the idea section flattened to display strings.
type IdeaSummary struct {
	Title       string
	Location    string
	Budget      string
	Category    string
	Description string
}

// Idea returns the idea summary section.
func (p PlanDocument) Idea() IdeaSummary {
	idea := p.section(SectionIdea)
	return IdeaSummary{
		Title:       Text(idea["title"]),
		Location:    Text(idea["location"]),
		Budget:      Text(idea["budget"]),
		Category:    Text(idea["category"]),
		Description: Text(idea["description"]),
	}
}

// BusinessModel is a read-only view of one generated business model.
// Cost breakdown, revenue forecast, opportunities and risks vary in shape
// (object, list or plain text) and are passed through untouched.
type BusinessModel struct {
	Name            string
	Summary         string
	CostBreakdown   any
	RevenueForecast any
	Opportunities   any
	Risks           any
}

// BusinessModels returns the business model list.
func (p PlanDocument) BusinessModels() []BusinessModel {
	list, _ := p[SectionBusinessModels].([]any)
	models := make([]BusinessModel, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		// The service has emitted both spellings; read whichever is present.
		summary := Text(m["summary"])
		if summary == "" {
			summary = Text(m["summery"])
		}
		models = append(models, BusinessModel{
			Name:            Text(m["name"]),
			Summary:         summary,
			CostBreakdown:   m["cost_breakdown"],
			RevenueForecast: m["revenue_forecast"],
			Opportunities:   m["opportunities"],
			Risks:           m["risks"],
		})
	}
	return models
}

// Milestone is one roadmap entry.
type Milestone struct {
	Month string
	Goals []string
}

// Roadmap returns the ordered month-to-milestones list.
func (p PlanDocument) Roadmap() []Milestone {
	list, _ := p[SectionRoadmap].([]any)
	roadmap := make([]Milestone, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		roadmap = append(roadmap, Milestone{
			Month: Text(m["month"]),
			Goals: TextList(m["milestones"]),
		})
	}
	return roadmap
}

// Feasibility is the feasibility section.
type Feasibility struct {
	Profitable       bool
	ConfidenceScore  float64
	HasConfidence    bool
	RecommendedModel string
}

// Feasibility returns the feasibility assessment.
func (p PlanDocument) Feasibility() Feasibility {
	f := p.section(SectionFeasibility)
	score, ok := toFloat(f["confidence_score"])
	profitable, _ := f["profitable"].(bool)
	return Feasibility{
		Profitable:       profitable,
		ConfidenceScore:  score,
		HasConfidence:    ok,
		RecommendedModel: Text(f["recommended_model"]),
	}
}

// AutomationInsights returns the automation insights section when present.
// Only Pro accounts receive it; callers gate display on the account tier.
func (p PlanDocument) AutomationInsights() (map[string]any, bool) {
	insights, ok := p[SectionAutomationInsights].(map[string]any)
	if !ok || len(insights) == 0 {
		return nil, false
	}
	return insights, true
}

// WithoutAutomationInsights returns a shallow copy of the plan without the
// automation insights section, for display to Free accounts.
func (p PlanDocument) WithoutAutomationInsights() PlanDocument {
	out := make(PlanDocument, len(p))
	for k, v := range p {
		if k == SectionAutomationInsights {
			continue
		}
		out[k] = v
	}
	return out
}

func (p PlanDocument) section(name string) map[string]any {
	m, _ := p[name].(map[string]any)
	return m
}

// Text renders a loosely typed plan value as display text.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool, float64, int, int64:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// TextList renders a list value as display strings. A scalar becomes a
// single-element list.
func TextList(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, Text(item))
		}
		return out
	default:
		return []string{Text(t)}
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		n := json.Number(strings.TrimSpace(t))
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
