package finance

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSavingWarning(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		wantOK  bool
		want    string
	}{
		{name: "no target", current: 50, target: 0, wantOK: false},
		{name: "negative target", current: 50, target: -10, wantOK: false},
		{name: "goal exceeded", current: 150, target: 100, wantOK: false},
		{name: "exactly at target", current: 100, target: 100, wantOK: true, want: "Tabungan kamu tepat di batas target saving."},
		{name: "five percent short", current: 95, target: 100, wantOK: true, want: "Tabungan kamu sekitar 5% lagi untuk mencapai target."},
		{name: "fraction rounds up", current: 87.5, target: 100, wantOK: true, want: "Tabungan kamu sekitar 13% lagi untuk mencapai target."},
		{name: "fifty percent is inclusive", current: 50, target: 100, wantOK: true, want: "Tabungan kamu sekitar 50% lagi untuk mencapai target."},
		{name: "just above fifty percent", current: 49, target: 100, wantOK: false},
		{name: "tiny overshoot past fifty", current: 49.9999, target: 100, wantOK: false},
		{name: "nothing saved", current: 0, target: 100, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SavingWarning(tt.current, tt.target)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSavingWarning_AtTargetForAnyPositiveTarget(t *testing.T) {
	for _, target := range []float64{0.01, 1, 250_000, 1e9} {
		got, ok := SavingWarning(target, target)
		assert.True(t, ok, "target %v", target)
		assert.Equal(t, warningMessages[DefaultLanguage].atTarget, got)
	}
}

func TestSavingWarning_ZeroTargetIgnoresCurrent(t *testing.T) {
	for _, current := range []float64{-5, 0, 10, 1e6} {
		_, ok := SavingWarning(current, 0)
		assert.False(t, ok, "current %v", current)
	}
}

func TestSavingWarningIn_English(t *testing.T) {
	got, ok := SavingWarningIn(LanguageEnglish, 80, 100)
	assert.True(t, ok)
	assert.Equal(t, "Your savings are about 20% away from the target.", got)

	got, ok = SavingWarningIn(LanguageEnglish, 100, 100)
	assert.True(t, ok)
	assert.Equal(t, "Your savings are exactly at the target.", got)
}

func TestSavingWarningIn_UnknownLanguageFallsBack(t *testing.T) {
	got, ok := SavingWarningIn(Language("fr"), 95, 100)
	assert.True(t, ok)
	assert.Contains(t, got, "5%")
	assert.Contains(t, got, "Tabungan")
}

func TestWarningBucket(t *testing.T) {
	tests := []struct {
		current float64
		want    int
		wantOK  bool
	}{
		{current: 99, want: 10, wantOK: true},
		{current: 90, want: 10, wantOK: true},
		{current: 89, want: 20, wantOK: true},
		{current: 65, want: 40, wantOK: true},
		{current: 50, want: 50, wantOK: true},
		{current: 40, want: 0, wantOK: false},
		{current: 101, want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("current_%v", tt.current), func(t *testing.T) {
			got, ok := WarningBucket(tt.current, 100)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, LanguageEnglish, ParseLanguage("en"))
	assert.Equal(t, LanguageIndonesian, ParseLanguage("id"))
	assert.Equal(t, DefaultLanguage, ParseLanguage(""))
	assert.Equal(t, DefaultLanguage, ParseLanguage("de"))
}
