package plan

import (
	"encoding/json"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/bizpilot/bizpilot-cli/internal/core/domain"
)

func teaStall() domain.PlanDocument {
	return domain.PlanDocument{
		"idea": map[string]any{
			"title":    "Chai Corner",
			"location": "Pune",
			"budget":   "50000 INR",
		},
		"business_models": []any{
			map[string]any{"name": "Walk-in stall", "summery": "Sell tea to commuters"},
		},
		"roadmap": []any{
			map[string]any{"month": "Month 1", "milestones": []any{"Permit", "Setup"}},
		},
		"feasibility": map[string]any{
			"profitable":        true,
			"confidence_score":  json.Number("8"),
			"recommended_model": "Walk-in stall",
		},
		"automation_insights": map[string]any{"billing": "UPI QR codes"},
	}
}

func TestRender_Empty(t *testing.T) {
	out := Render(nil, nil, domain.TierFree)

	assert.Contains(t, out, "No plan yet")
}

func TestRender_Sections(t *testing.T) {
	out := Render(nil, teaStall(), domain.TierPro)

	assert.Contains(t, out, "Chai Corner")
	assert.Contains(t, out, "Location: Pune")
	assert.Contains(t, out, "Walk-in stall")
	assert.Contains(t, out, "Sell tea to commuters")
	assert.Contains(t, out, "Month 1: Permit; Setup")
	assert.Contains(t, out, "confidence 8/10")
	assert.Contains(t, out, "billing: UPI QR codes")
}

func TestRender_FreeTierHidesInsights(t *testing.T) {
	out := Render(nil, teaStall(), domain.TierFree)

	assert.NotContains(t, out, "UPI QR codes")
	assert.Contains(t, out, "Upgrade to Pro")
}

func TestView_SetPlanAndTier(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(100, 40)
	assert.Contains(t, v.View(), "No plan yet")

	v.SetPlan(teaStall())
	assert.Equal(t, teaStall(), v.Plan())
	assert.Contains(t, v.View(), "Chai Corner")
	assert.NotContains(t, v.View(), "UPI QR codes")

	v.SetTier(domain.TierPro)
	assert.Contains(t, v.View(), "UPI QR codes")
}

func TestView_Scroll(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 3)
	v.SetPlan(teaStall())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.NotContains(t, v.View(), "Chai Corner")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Contains(t, v.View(), "Chai Corner")
}
