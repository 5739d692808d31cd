// Package plan provides the scrollable business plan view.
package plan

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bizpilot/bizpilot-cli/internal/adapters/driving/tui/keymap"
	"github.com/bizpilot/bizpilot-cli/internal/adapters/driving/tui/styles"
	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

// View renders a plan inside a viewport.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model
	plan     domain.PlanDocument
	tier     domain.AccountTier
}

// NewView creates an empty plan view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	v := &View{
		styles:   s,
		keymap:   km,
		viewport: viewport.New(80, 20),
		tier:     domain.TierFree,
	}
	v.refresh()
	return v
}

// SetPlan replaces the displayed plan and scrolls to the top.
func (v *View) SetPlan(plan domain.PlanDocument) {
	v.plan = plan
	v.refresh()
	v.viewport.GotoTop()
}

// Plan returns the displayed plan.
func (v *View) Plan() domain.PlanDocument {
	return v.plan
}

// SetTier sets the account tier used to gate automation insights.
func (v *View) SetTier(tier domain.AccountTier) {
	v.tier = tier
	v.refresh()
}

// SetDimensions resizes the viewport.
func (v *View) SetDimensions(width, height int) {
	if height < 3 {
		height = 3
	}
	v.viewport.Width = width
	v.viewport.Height = height
	v.refresh()
}

// Update scrolls the plan.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case keymap.Matches(k.String(), v.keymap.ScrollUp):
			v.viewport.HalfViewUp()
			return v, nil
		case keymap.Matches(k.String(), v.keymap.ScrollDown):
			v.viewport.HalfViewDown()
			return v, nil
		}
	}
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

// View renders the viewport.
func (v *View) View() string {
	return v.viewport.View()
}

func (v *View) refresh() {
	v.viewport.SetContent(Render(v.styles, v.plan, v.tier))
}

// Render formats a plan for the terminal. Automation insights are only
// rendered for tiers that may see them.
func Render(s *styles.Styles, plan domain.PlanDocument, tier domain.AccountTier) string {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if len(plan) == 0 {
		return s.Muted.Render("No plan yet. Describe your business idea below and press enter.")
	}

	var b strings.Builder
	idea := plan.Idea()
	title := idea.Title
	if title == "" {
		title = "Business Idea"
	}
	b.WriteString(s.Title.Render(title) + "\n")
	var facts []string
	for _, f := range [][2]string{{"Location", idea.Location}, {"Budget", idea.Budget}, {"Category", idea.Category}} {
		if f[1] != "" {
			facts = append(facts, f[0]+": "+f[1])
		}
	}
	if len(facts) > 0 {
		b.WriteString(s.Muted.Render(strings.Join(facts, "  ·  ")) + "\n")
	}
	if idea.Description != "" {
		b.WriteString("\n" + s.Normal.Render(idea.Description) + "\n")
	}

	if models := plan.BusinessModels(); len(models) > 0 {
		b.WriteString(s.Section.Render("Business Models") + "\n")
		for i, m := range models {
			fmt.Fprintf(&b, "%d. %s\n", i+1, m.Name)
			if m.Summary != "" {
				b.WriteString("   " + s.Muted.Render(m.Summary) + "\n")
			}
			if risks := domain.TextList(m.Risks); len(risks) > 0 {
				b.WriteString("   Risks: " + strings.Join(risks, "; ") + "\n")
			}
		}
	}

	if roadmap := plan.Roadmap(); len(roadmap) > 0 {
		b.WriteString(s.Section.Render("Roadmap") + "\n")
		for _, step := range roadmap {
			fmt.Fprintf(&b, "%s: %s\n", step.Month, strings.Join(step.Goals, "; "))
		}
	}

	if _, ok := plan[domain.SectionFeasibility]; ok {
		f := plan.Feasibility()
		b.WriteString(s.Section.Render("Feasibility") + "\n")
		verdict := s.Error.Render("not profitable")
		if f.Profitable {
			verdict = s.Success.Render("profitable")
		}
		b.WriteString(verdict)
		if f.HasConfidence {
			b.WriteString(", confidence " + strconv.FormatFloat(f.ConfidenceScore, 'f', -1, 64) + "/10")
		}
		b.WriteString("\n")
		if f.RecommendedModel != "" {
			b.WriteString("Recommended: " + f.RecommendedModel + "\n")
		}
	}

	insights, ok := plan.AutomationInsights()
	switch {
	case ok && tier.ShowsAutomationInsights():
		b.WriteString(s.Section.Render("Automation Insights") + "\n")
		keys := make([]string, 0, len(insights))
		for k := range insights {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", strings.ReplaceAll(k, "_", " "), strings.Join(domain.TextList(insights[k]), "; "))
		}
	case !tier.ShowsAutomationInsights():
		b.WriteString("\n" + s.Muted.Render("Upgrade to Pro to unlock automation insights.") + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
