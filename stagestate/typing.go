package stagestate

import "math"

// typingStart is when the typed reveal begins within a clip.
const typingStart = 0.15

// typingSpeed scales characters-per-second with text length, bounded so
// long and short titles both stay within readable typing speed limits.
func typingSpeed(charCount int, minCPS, maxCPS, divisor float64) float64 {
	return clamp(float64(charCount)/divisor, minCPS, maxCPS)
}

// visibleCharCount is the typed-character budget at elapsed time t.
func visibleCharCount(charCount int, t, cps float64) int {
	if charCount == 0 {
		return 0
	}
	n := int(math.Floor((t - typingStart) * cps))
	if n < 0 {
		return 0
	}
	if n > charCount {
		return charCount
	}
	return n
}

// buildTypedLines distributes the visible-character budget across the
// title's lines. Newlines force a break without consuming budget, so
// every non-newline character costs exactly one unit regardless of line.
func buildTypedLines(text string, visibleChars int) []string {
	lines := []string{""}
	remaining := visibleChars
	for _, r := range text {
		if r == '\n' {
			lines = append(lines, "")
			continue
		}
		if remaining <= 0 {
			break
		}
		lines[len(lines)-1] += string(r)
		remaining--
	}
	return lines
}

// caretVisible blinks the caret at 2 Hz while typing is in progress.
func caretVisible(charCount, visible int, t float64) bool {
	typing := charCount > 0 && visible < charCount && t >= typingStart
	return typing && int(math.Floor((t-typingStart)*2))%2 == 0
}
