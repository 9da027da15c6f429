package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPalette(t *testing.T) {
	expected := []LabelColor{
		{"ORG", "#FF5733"},
		{"LAWYER", "#6A0DAD"},
		{"DATE", "#FFD700"},
		{"CASE_NUMBER", "#0000FF"},
		{"JUDGE", "#32CD32"},
		{"STATUTE", "#FFA07A"},
		{"COURT", "#20B2AA"},
		{"RESPONDENT", "#800000"},
		{"PRECEDENT", "#FF1493"},
		{"WITNESS", "#708090"},
		{"OTHER_PERSON", "#8B4513"},
		{"GPE", "#4682B4"},
		{"PROVISION", "#9400D3"},
		{"PETITIONER", "#556B2F"},
	}
	p := DefaultPalette()
	assert.Equal(t, expected, p.Entries())
	for _, entry := range expected {
		color, ok := p.Color(entry.Label)
		assert.True(t, ok, entry.Label)
		assert.Equal(t, entry.Color, color, entry.Label)
	}

	_, ok := p.Color("PERSON")
	assert.False(t, ok)
	assert.False(t, p.Has("date"))
}

func TestPaletteIsNotModifiedThroughEntries(t *testing.T) {
	p := NewPalette(LabelColor{"ORG", "#000"}, LabelColor{"ORG", "#fff"})
	entries := p.Entries()
	entries[0].Color = "#123"

	color, _ := p.Color("ORG")
	assert.Equal(t, "#000", color)
	assert.Equal(t, []LabelColor{{"ORG", "#000"}}, p.Entries())
}
