package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalTheme(t *testing.T) {
	tests := []struct {
		name     string
		phrase   string
		expected string
		found    bool
	}{
		{"Exact match", "project", "project", true},
		{"Plural maps to same theme", "projects", "project", true},
		{"Close plural variant", "jobs", "work", true},
		{"Multi-word variant", "web app", "project", true},
		{"Leading possessive stripped", "my project", "project", true},
		{"Leading article stripped", "the office", "work", true},
		{"Family member", "mom", "family", true},
		{"Pets plural", "cats", "pets", true},
		{"Workout is health, not work", "workout", "health", true},
		{"Unknown word", "xylophone", "", false},
		{"Too short after cleaning", "a", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, ok := CanonicalTheme(tt.phrase)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, theme)
		})
	}
}

func TestCanonicalTheme_PrefixDistanceLimit(t *testing.T) {
	// "meetings" is within two characters of the "meeting" variant.
	theme, ok := CanonicalTheme("meetings")
	assert.True(t, ok)
	assert.Equal(t, "work", theme)

	// "working" is three characters past "work" and must not match it.
	_, ok = CanonicalTheme("working")
	assert.False(t, ok)
}

func TestNormalizeTheme(t *testing.T) {
	assert.Equal(t, "project", NormalizeTheme("projects"))
	assert.Equal(t, "xylophone", NormalizeTheme("xylophone"))
	assert.Equal(t, "xylophone", NormalizeTheme("my xylophone"))
	assert.Equal(t, "work", NormalizeTheme("The Office"))
}

func TestThemeDictionary_OrderIsStable(t *testing.T) {
	// Matching is first-category-wins, so the enumeration order is part of
	// the contract.
	expected := []string{
		"project", "work", "family", "health", "relationships", "education",
		"travel", "hobbies", "food", "finance", "home", "entertainment",
		"sports", "pets", "nature", "shopping", "sleep", "stress", "goals",
		"time",
	}
	names := make([]string, 0, len(themeDictionary))
	for _, category := range themeDictionary {
		names = append(names, category.name)
	}
	assert.Equal(t, expected, names)
}
