package filescan

import (
	"context"
	"fmt"
	"regexp"
)

// malwareWarningLimit is the number of heuristic warnings a file may carry
// before the pipeline rejects it as suspected malware.
const malwareWarningLimit = 2

// highObfuscationScore marks samples whose obfuscation score alone warrants
// a dedicated warning.
const highObfuscationScore = 0.7

// Common malicious and obfuscation idioms. Each match contributes one
// warning; the scanner never tries to prove intent, it counts indicators.
var malwarePatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)eval\(`), "eval call"},
	{regexp.MustCompile(`(?i)document\.write`), "document.write call"},
	{regexp.MustCompile(`(?i)fromCharCode`), "fromCharCode decoding"},
	{regexp.MustCompile(`(?i)unescape`), "unescape decoding"},
	{regexp.MustCompile(`(?i)ActiveXObject`), "ActiveXObject instantiation"},
	{regexp.MustCompile(`(?i)WScript\.Shell`), "WScript.Shell access"},
	{regexp.MustCompile(`(?i)cmd\.exe`), "cmd.exe reference"},
	{regexp.MustCompile(`(?i)powershell`), "powershell reference"},
	{regexp.MustCompile(`(?i)base64`), "base64 payload"},
}

// scanContent samples up to 64KB of the file and runs the pattern set plus
// the obfuscation scorer over it. It reports indicators as warnings and
// leaves the reject decision to the orchestrator, which fails the file once
// the warning count from this stage exceeds malwareWarningLimit.
func (s *Scanner) scanContent(ctx context.Context, f FileHandle) ([]string, error) {
	sample, err := readPrefix(ctx, f, malwareSampleBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: reading content sample: %w", ErrValidationFailed, err)
	}

	text := toText(sample)

	var warnings []string
	for _, p := range malwarePatterns {
		if p.re.MatchString(text) {
			warnings = append(warnings, fmt.Sprintf("suspicious pattern detected: %s", p.label))
		}
	}

	if score := ObfuscationScore(text); score > highObfuscationScore {
		warnings = append(warnings, fmt.Sprintf("high obfuscation score: %.2f", score))
	}

	return warnings, nil
}
