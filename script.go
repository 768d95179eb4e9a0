package textflow

import "sort"

// Script identifies the Unicode script of a run of text. Runs of uniform
// script are shaped together; mixing scripts in one shaping call produces
// wrong contextual forms.
type Script uint32

const (
	// ScriptCommon covers punctuation, digits and symbols shared across scripts.
	ScriptCommon Script = iota
	// ScriptInherited covers combining marks that take the script of their base.
	ScriptInherited
	// ScriptLatin covers Latin and its extended blocks.
	ScriptLatin
	// ScriptCyrillic covers Cyrillic and its extensions.
	ScriptCyrillic
	// ScriptGreek covers Greek and Coptic.
	ScriptGreek
	// ScriptArabic covers Arabic, its supplements and presentation forms.
	ScriptArabic
	// ScriptHebrew covers Hebrew.
	ScriptHebrew
	// ScriptHan covers CJK unified ideographs.
	ScriptHan
	// ScriptHiragana covers Japanese Hiragana.
	ScriptHiragana
	// ScriptKatakana covers Japanese Katakana.
	ScriptKatakana
	// ScriptHangul covers Korean Hangul.
	ScriptHangul
	// ScriptDevanagari covers Devanagari.
	ScriptDevanagari
	// ScriptThai covers Thai.
	ScriptThai
	// ScriptUnknown is returned for codepoints outside the known ranges.
	ScriptUnknown
)

var scriptNames = [...]string{
	ScriptCommon:     "Common",
	ScriptInherited:  "Inherited",
	ScriptLatin:      "Latin",
	ScriptCyrillic:   "Cyrillic",
	ScriptGreek:      "Greek",
	ScriptArabic:     "Arabic",
	ScriptHebrew:     "Hebrew",
	ScriptHan:        "Han",
	ScriptHiragana:   "Hiragana",
	ScriptKatakana:   "Katakana",
	ScriptHangul:     "Hangul",
	ScriptDevanagari: "Devanagari",
	ScriptThai:       "Thai",
	ScriptUnknown:    "Unknown",
}

// String returns the name of the script.
func (s Script) String() string {
	if int(s) < len(scriptNames) {
		return scriptNames[s]
	}
	return unknownStr
}

// IsRTL reports whether the script is written right-to-left.
func (s Script) IsRTL() bool {
	return s == ScriptArabic || s == ScriptHebrew
}

// scriptRange is a half-open-free inclusive codepoint range assigned to
// one script. The table must stay sorted by lo.
type scriptRange struct {
	lo, hi rune
	script Script
}

var scriptRanges = []scriptRange{
	{0x0300, 0x036F, ScriptInherited}, // Combining Diacritical Marks
	{0x0370, 0x03FF, ScriptGreek},
	{0x0400, 0x04FF, ScriptCyrillic},
	{0x0500, 0x052F, ScriptCyrillic}, // Cyrillic Supplement
	{0x0590, 0x05FF, ScriptHebrew},
	{0x0600, 0x06FF, ScriptArabic},
	{0x0750, 0x077F, ScriptArabic}, // Arabic Supplement
	{0x08A0, 0x08FF, ScriptArabic}, // Arabic Extended-A
	{0x0900, 0x097F, ScriptDevanagari},
	{0x0E00, 0x0E7F, ScriptThai},
	{0x1100, 0x11FF, ScriptHangul}, // Hangul Jamo
	{0x1AB0, 0x1AFF, ScriptInherited},
	{0x1DC0, 0x1DFF, ScriptInherited},
	{0x1E00, 0x1EFF, ScriptLatin}, // Latin Extended Additional
	{0x1F00, 0x1FFF, ScriptGreek}, // Greek Extended
	{0x2000, 0x206F, ScriptCommon},
	{0x2070, 0x2BFF, ScriptCommon}, // symbols, arrows, math operators
	{0x2DE0, 0x2DFF, ScriptCyrillic},
	{0x3000, 0x303F, ScriptCommon}, // CJK Symbols and Punctuation
	{0x3040, 0x309F, ScriptHiragana},
	{0x30A0, 0x30FF, ScriptKatakana},
	{0x3130, 0x318F, ScriptHangul},
	{0x31F0, 0x31FF, ScriptKatakana},
	{0x3400, 0x4DBF, ScriptHan}, // CJK Extension A
	{0x4E00, 0x9FFF, ScriptHan}, // CJK Unified Ideographs
	{0xA640, 0xA69F, ScriptCyrillic},
	{0xAC00, 0xD7AF, ScriptHangul}, // Hangul Syllables
	{0xF900, 0xFAFF, ScriptHan},    // CJK Compatibility Ideographs
	{0xFB1D, 0xFB4F, ScriptHebrew}, // Hebrew presentation forms
	{0xFB50, 0xFDFF, ScriptArabic}, // Arabic Presentation Forms-A
	{0xFE20, 0xFE2F, ScriptInherited},
	{0xFE70, 0xFEFF, ScriptArabic}, // Arabic Presentation Forms-B
	{0xFF00, 0xFF64, ScriptCommon}, // Fullwidth punctuation
	{0xFF65, 0xFF9F, ScriptKatakana},
	{0x20000, 0x2A6DF, ScriptHan}, // CJK Extension B
}

// DetectScript returns the Unicode script for a codepoint, using hardcoded
// ranges for the scripts the layout distinguishes. Punctuation, digits and
// symbols return ScriptCommon; combining marks return ScriptInherited so
// they stay in the run of their base character.
func DetectScript(r rune) Script {
	if r < 0x0080 {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			return ScriptLatin
		}
		return ScriptCommon
	}
	if r >= 0x0080 && r <= 0x00FF {
		// Latin-1 Supplement mixes letters with punctuation.
		if (r >= 0x00C0 && r <= 0x00D6) || (r >= 0x00D8 && r <= 0x00F6) || r >= 0x00F8 {
			return ScriptLatin
		}
		return ScriptCommon
	}
	i := sort.Search(len(scriptRanges), func(i int) bool {
		return scriptRanges[i].hi >= r
	})
	if i < len(scriptRanges) && scriptRanges[i].lo <= r {
		return scriptRanges[i].script
	}
	return ScriptUnknown
}

// DominantScript returns the most frequent concrete script in text.
// Common and Inherited codepoints are ignored; if nothing concrete
// remains the result is ScriptUnknown.
func DominantScript(text string) Script {
	var counts [len(scriptNames)]int
	total := 0
	for _, r := range text {
		s := DetectScript(r)
		if s == ScriptCommon || s == ScriptInherited || s == ScriptUnknown {
			continue
		}
		counts[s]++
		total++
	}
	if total == 0 {
		return ScriptUnknown
	}
	best := ScriptUnknown
	bestCount := 0
	for s, n := range counts {
		if n > bestCount {
			best = Script(s)
			bestCount = n
		}
	}
	return best
}
