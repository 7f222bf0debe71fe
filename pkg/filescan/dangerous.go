package filescan

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Extensions of executables, installers, and scripts that the product never
// accepts as uploads regardless of declared type.
var dangerousExtensions = map[string]bool{
	".exe": true, ".bat": true, ".cmd": true, ".com": true,
	".scr": true, ".pif": true, ".msi": true, ".dll": true,
	".jar": true, ".vbs": true, ".ps1": true, ".sh": true,
	".app": true, ".deb": true, ".rpm": true, ".dmg": true,
}

// MIME types that declare executable or script content outright.
var dangerousMIMETypes = map[string]bool{
	"application/x-msdownload":    true,
	"application/x-executable":    true,
	"application/x-msdos-program": true,
	"application/x-ms-installer":  true,
	"application/x-sh":            true,
	"application/x-shellscript":   true,
	"text/x-shellscript":          true,
	"application/java-archive":    true,
}

var (
	// Windows reserved device names, matched as whole names with or without
	// an extension: "con", "con.txt", "COM1.pdf" are all reserved.
	reservedDeviceNameRe = regexp.MustCompile(`(?i)^(?:con|prn|aux|nul|com[1-9]|lpt[1-9])(?:\..*)?$`)

	invalidFilenameCharsRe = regexp.MustCompile(`[<>:"|?*]`)
)

// DetectDangerousFile runs the filename and declared-type blocklists and
// returns one warning per independent hit. It never decides pass/fail by
// itself: the Scanner treats any non-empty result as a hard failure with
// quarantine advised, unless executables are explicitly allowed. Exported so
// callers can query the warnings outside a full pipeline run.
func DetectDangerousFile(name, declaredType string) []string {
	var warnings []string

	if ext := strings.ToLower(filepath.Ext(name)); dangerousExtensions[ext] {
		warnings = append(warnings, fmt.Sprintf("dangerous file extension %q", ext))
	}
	if dangerousMIMETypes[strings.ToLower(declaredType)] {
		warnings = append(warnings, fmt.Sprintf("dangerous MIME type %q", declaredType))
	}
	if reservedDeviceNameRe.MatchString(name) {
		warnings = append(warnings, fmt.Sprintf("filename %q matches a reserved device name", name))
	}
	if invalidFilenameCharsRe.MatchString(name) {
		warnings = append(warnings, fmt.Sprintf("filename %q contains invalid characters", name))
	}

	return warnings
}
