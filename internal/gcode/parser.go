// Package gcode extracts print metadata from slicer-generated comment
// headers. Every slicer writes its own comment dialect, so extraction runs
// an ordered list of pattern families per quantity and takes the first hit.
package gcode

import (
	"regexp"
	"strconv"
	"strings"
)

// weightPattern matches a filament weight in grams in capture group 1.
type weightPattern struct {
	name string
	re   *regexp.Regexp
}

var weightPatterns = []weightPattern{
	// "filament used [g]: 10.5g", "Total filament weight = 10.5", "filament cost (g): 3.2"
	{"annotated", regexp.MustCompile(`(?i)(?:total |used )?filament (?:used|weight|cost)\s*(?:\(g\)|\[g\])?\s*[:=]\s*(\d+\.?\d*)\s*g?`)},
	// PrusaSlicer machine-readable form.
	{"bare assignment", regexp.MustCompile(`(?i)filament_used_g\s*=\s*(\d+\.?\d*)`)},
}

// timePattern converts its capture groups to total seconds. ok=false means
// the line does not count as a hit and the next family is tried.
type timePattern struct {
	name    string
	re      *regexp.Regexp
	seconds func(m []string) (secs int, ok bool)
}

var timePatterns = []timePattern{
	// Bambu Studio writes "total estimated time: 1h 23m 45s". Checked first
	// because the phrase is unambiguous for that vendor.
	{
		"bambu total",
		regexp.MustCompile(`(?i)total estimated time:\s*(?:(\d+)\s*h)?\s*(?:(\d+)\s*m)?\s*(?:(\d+)\s*s)?`),
		func(m []string) (int, bool) {
			secs := groupInt(m, 1)*3600 + groupInt(m, 2)*60 + groupInt(m, 3)
			return secs, secs > 0
		},
	},
	// "estimated printing time (normal mode) = 1d 2h 3m 4s" with free text
	// between the keyword and the separator.
	{
		"dhms with junk",
		regexp.MustCompile(`(?i)(?:build|print|estimated printing) time.+[:=]\s*(?:(\d+)\s*d)?\s*(?:(\d+)\s*h)?\s*(?:(\d+)\s*m)?\s*(?:(\d+)\s*s)?`),
		dhmsSeconds,
	},
	// "Build time: 2h 3m", "print time 1h30m".
	{
		"dhms simple",
		regexp.MustCompile(`(?i)(?:build|print|estimated printing) time\s*[:=]?\s*(?:(\d+)d)?\s*(?:(\d+)h)?\s*(?:(\d+)m)?\s*(?:(\d+)s)?`),
		dhmsSeconds,
	},
	// "estimated print time: 01:30:00". A parsed zero still counts as a hit.
	{
		"clock",
		regexp.MustCompile(`(?i)estimated print time\s*:\s*(\d{2}):(\d{2}):(\d{2})`),
		func(m []string) (int, bool) {
			return groupInt(m, 1)*3600 + groupInt(m, 2)*60 + groupInt(m, 3), true
		},
	},
	// Cura emits the raw second count. A parsed zero still counts as a hit.
	{
		"cura seconds",
		regexp.MustCompile(`(?i)^;TIME:(\d+)`),
		func(m []string) (int, bool) {
			return groupInt(m, 1), true
		},
	},
}

// lengthPattern yields filament length normalized to millimeters.
type lengthPattern struct {
	name string
	re   *regexp.Regexp
	mm   func(m []string) float64
}

var lengthPatterns = []lengthPattern{
	// "filament used = 1234.5mm", "Filament used: 12.345m".
	{
		"unit suffix",
		regexp.MustCompile(`(?i)filament used\s*[:=]\s*(\d+\.?\d*)\s*(mm|m)`),
		func(m []string) float64 {
			v, _ := strconv.ParseFloat(m[1], 64)
			if strings.EqualFold(m[2], "m") {
				return v * 1000
			}
			return v
		},
	},
	// PrusaSlicer machine-readable form, implicitly meters.
	{
		"bare assignment",
		regexp.MustCompile(`(?i)filament_used_m\s*=\s*(\d+\.?\d*)`),
		func(m []string) float64 {
			v, _ := strconv.ParseFloat(m[1], 64)
			return v * 1000
		},
	},
}

// Parse scans the file text top to bottom, looking only at comment lines.
// The three quantities are searched independently and each keeps the first
// value that matches; they may come from different lines. Parse never
// fails: quantities that are not found stay nil.
func Parse(text string) Extraction {
	var ex Extraction

	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, ";") {
			continue
		}

		if ex.FilamentWeightG == nil {
			for _, p := range weightPatterns {
				m := p.re.FindStringSubmatch(line)
				if m == nil {
					continue
				}
				if v, err := strconv.ParseFloat(m[1], 64); err == nil {
					ex.FilamentWeightG = floatPtr(v)
				}
				break
			}
		}

		if ex.PrintTimeSeconds == nil {
			for _, p := range timePatterns {
				m := p.re.FindStringSubmatch(line)
				if m == nil {
					continue
				}
				if secs, ok := p.seconds(m); ok {
					ex.PrintTimeSeconds = intPtr(secs)
					break
				}
			}
		}

		if ex.FilamentLengthMm == nil {
			for _, p := range lengthPatterns {
				m := p.re.FindStringSubmatch(line)
				if m == nil {
					continue
				}
				ex.FilamentLengthMm = floatPtr(p.mm(m))
				break
			}
		}

		if ex.Complete() {
			break
		}
	}

	return ex
}

func dhmsSeconds(m []string) (int, bool) {
	secs := groupInt(m, 1)*86400 + groupInt(m, 2)*3600 + groupInt(m, 3)*60 + groupInt(m, 4)
	return secs, secs > 0
}

// groupInt parses capture group i, treating a missing group as 0.
func groupInt(m []string, i int) int {
	if i >= len(m) || m[i] == "" {
		return 0
	}
	v, err := strconv.Atoi(m[i])
	if err != nil {
		return 0
	}
	return v
}
