package finance

import (
	"fmt"
	"math"
)

// Language selects the message catalogue used for user-facing copy.
type Language string

const (
	LanguageIndonesian Language = "id"
	LanguageEnglish    Language = "en"

	DefaultLanguage = LanguageIndonesian
)

// WarningThresholds are the shortfall buckets, in percent, that produce a
// near-miss warning. Shortfalls above the last bucket stay silent.
var WarningThresholds = []int{10, 20, 30, 40, 50}

type warningCatalogue struct {
	atTarget string
	nearMiss string
}

var warningMessages = map[Language]warningCatalogue{
	LanguageIndonesian: {
		atTarget: "Tabungan kamu tepat di batas target saving.",
		nearMiss: "Tabungan kamu sekitar %d%% lagi untuk mencapai target.",
	},
	LanguageEnglish: {
		atTarget: "Your savings are exactly at the target.",
		nearMiss: "Your savings are about %d%% away from the target.",
	},
}

// ParseLanguage maps a free-form code to a supported language, falling back
// to the default catalogue.
func ParseLanguage(code string) Language {
	lang := Language(code)
	if _, ok := warningMessages[lang]; ok {
		return lang
	}
	return DefaultLanguage
}

// SavingWarning returns the near-target warning for a savings goal in the
// default language. The second return value is false when no warning applies.
func SavingWarning(current, target float64) (string, bool) {
	return SavingWarningIn(DefaultLanguage, current, target)
}

// SavingWarningIn is SavingWarning with an explicit message catalogue.
func SavingWarningIn(lang Language, current, target float64) (string, bool) {
	if target <= 0 || current > target {
		return "", false
	}

	msgs, ok := warningMessages[lang]
	if !ok {
		msgs = warningMessages[DefaultLanguage]
	}

	if current == target {
		return msgs.atTarget, true
	}

	shortfall := ShortfallPercent(current, target)
	if _, ok := WarningBucket(current, target); !ok {
		return "", false
	}

	return fmt.Sprintf(msgs.nearMiss, int(math.Ceil(shortfall))), true
}

// WarningBucket returns the smallest threshold that covers the shortfall of
// current against target.
func WarningBucket(current, target float64) (int, bool) {
	if target <= 0 || current > target {
		return 0, false
	}

	shortfall := ShortfallPercent(current, target)
	for _, threshold := range WarningThresholds {
		if shortfall <= float64(threshold) {
			return threshold, true
		}
	}

	return 0, false
}

// ShortfallPercent is the percentage by which current falls below target.
// Callers must ensure target > 0.
func ShortfallPercent(current, target float64) float64 {
	return (target - current) / target * 100
}
