package filescan

import (
	"math"
	"strings"
	"unicode"
)

// Obfuscation score thresholds. Each contribution is added only when its
// threshold is crossed; the total is capped at 1.0.
const (
	entropyThreshold     = 4.5  // bits per character
	specialCharThreshold = 0.3  // non-alphanumeric, non-whitespace ratio
	longLineThreshold    = 0.1  // fraction of lines longer than longLineChars
	escapeTokenThreshold = 0.05 // escape-sequence tokens per character

	longLineChars = 200

	entropyWeight     = 0.3
	specialCharWeight = 0.2
	longLineWeight    = 0.2
	escapeTokenWeight = 0.3
)

// ShannonEntropy returns the entropy of s in bits per character, computed
// from the character-frequency distribution: H = -sum(p * log2(p)).
// A sample drawn uniformly from N distinct characters scores exactly log2(N).
func ShannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}

	freq := make(map[rune]int)
	total := 0
	for _, r := range s {
		freq[r]++
		total++
	}

	var h float64
	for _, count := range freq {
		p := float64(count) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}

// ObfuscationScore estimates how obfuscated a content sample looks, in
// [0, 1]. Four independent signals contribute: high entropy, a large share
// of special characters, very long lines, and a high density of escape
// tokens. Pure function over the sample; no I/O.
func ObfuscationScore(s string) float64 {
	if s == "" {
		return 0
	}

	var score float64
	if ShannonEntropy(s) > entropyThreshold {
		score += entropyWeight
	}

	special, total := 0, 0
	for _, r := range s {
		total++
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			special++
		}
	}
	if float64(special)/float64(total) > specialCharThreshold {
		score += specialCharWeight
	}

	lines := strings.Split(s, "\n")
	long := 0
	for _, line := range lines {
		if len(line) > longLineChars {
			long++
		}
	}
	if float64(long)/float64(len(lines)) > longLineThreshold {
		score += longLineWeight
	}

	escapes := strings.Count(s, `\x`) + strings.Count(s, `\\`)
	if float64(escapes)/float64(total) > escapeTokenThreshold {
		score += escapeTokenWeight
	}

	return math.Min(score, 1.0)
}
