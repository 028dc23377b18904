package command

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	lowerCaser = cases.Lower(language.English)
	upperCaser = cases.Upper(language.English)
)

// spokenDigits maps radio-alphabet digit words to digits. "niner", "tree"
// and "fife" are the ICAO pronunciations.
var spokenDigits = map[string]string{
	"zero":  "0",
	"one":   "1",
	"two":   "2",
	"three": "3",
	"tree":  "3",
	"four":  "4",
	"five":  "5",
	"fife":  "5",
	"six":   "6",
	"seven": "7",
	"eight": "8",
	"nine":  "9",
	"niner": "9",
}

// Variant-specific patterns, tried in a fixed priority order: heading,
// altitude, speed, direct, contact, approach, hold. The altitude patterns
// demand 4+ digit magnitudes unless an explicit keyword disambiguates, so
// 2-3 digit heading/speed values never parse as altitudes.
var (
	reTurnHeading = regexp.MustCompile(`^turn\s+(left|right)(?:\s+heading)?\s+(\d{1,3})$`)
	reHeading     = regexp.MustCompile(`^(?:fly\s+)?heading\s+(\d{1,3})$`)
	reBareTurn    = regexp.MustCompile(`^(left|right)\s+(\d{1,3})$`)

	reClimbDescend = regexp.MustCompile(`^(?:climb|descend)(?:\s+and)?(?:\s+maintain)?(?:\s+to)?\s+(\d{3,5})$`)
	reMaintainAlt  = regexp.MustCompile(`^maintain\s+altitude\s+(\d{3,5})$`)
	reMaintain     = regexp.MustCompile(`^maintain\s+(\d{4,5})$`)

	reSpeedVerb = regexp.MustCompile(`^(?:reduce|increase|maintain)\s+speed(?:\s+to)?\s+(\d{2,3})$`)
	reSpeedBare = regexp.MustCompile(`^speed\s+(\d{2,3})$`)

	reDirectVerb = regexp.MustCompile(`^(?:proceed|cleared)\s+direct(?:\s+to)?\s+([a-z][a-z0-9]{1,5})$`)
	reDirectBare = regexp.MustCompile(`^direct(?:\s+to)?\s+([a-z][a-z0-9]{1,5})$`)

	reContact = regexp.MustCompile(`^contact\s+([a-z][a-z ]*?)\s+(\d{2,3}(?:\.\d{1,3})?)$`)

	reApproach = regexp.MustCompile(`^cleared\s+(ils|visual|rnav|localizer|vor|ndb)(?:\s+approach)?(?:\s+runway)?\s+(\d{1,2}[lrc]?)$`)

	reHold = regexp.MustCompile(`^hold\s+at\s+([a-z][a-z0-9]{1,5})(?:\s+(\d{1,3})\s+inbound)?(?:\s+(left|right)\s+turns)?$`)

	// "climb/descend and maintain" is a single altitude clause; every other
	// " and " separates clauses.
	reFuseAltitude = regexp.MustCompile(`\b(climb|descend)\s+and\s+maintain\b`)
)

// Parse converts one free-text instruction clause into a Command. It returns
// nil when nothing matches; that is the expected path for unparseable input,
// never an error.
func Parse(text string) Command {
	s := Normalize(text)
	if s == "" {
		return nil
	}

	// 1. Heading
	if m := reTurnHeading.FindStringSubmatch(s); m != nil {
		return Heading{Degrees: atof(m[2]), Direction: turnDir(m[1])}
	}
	if m := reHeading.FindStringSubmatch(s); m != nil {
		return Heading{Degrees: atof(m[1]), Direction: TurnEither}
	}
	if m := reBareTurn.FindStringSubmatch(s); m != nil {
		return Heading{Degrees: atof(m[2]), Direction: turnDir(m[1])}
	}

	// 2. Altitude
	if m := reClimbDescend.FindStringSubmatch(s); m != nil {
		return Altitude{Feet: atof(m[1])}
	}
	if m := reMaintainAlt.FindStringSubmatch(s); m != nil {
		return Altitude{Feet: atof(m[1])}
	}
	if m := reMaintain.FindStringSubmatch(s); m != nil {
		return Altitude{Feet: atof(m[1])}
	}

	// 3. Speed
	if m := reSpeedVerb.FindStringSubmatch(s); m != nil {
		return Speed{Knots: atof(m[1])}
	}
	if m := reSpeedBare.FindStringSubmatch(s); m != nil {
		return Speed{Knots: atof(m[1])}
	}

	// 4. Direct
	if m := reDirectVerb.FindStringSubmatch(s); m != nil {
		return Direct{Fix: upperCaser.String(m[1])}
	}
	if m := reDirectBare.FindStringSubmatch(s); m != nil {
		return Direct{Fix: upperCaser.String(m[1])}
	}

	// 5. Contact
	if m := reContact.FindStringSubmatch(s); m != nil {
		return Contact{Facility: m[1], Frequency: m[2]}
	}

	// 6. Approach
	if m := reApproach.FindStringSubmatch(s); m != nil {
		return Approach{Type: m[1], Runway: upperCaser.String(m[2])}
	}

	// 7. Hold
	if m := reHold.FindStringSubmatch(s); m != nil {
		h := Hold{Fix: upperCaser.String(m[1]), Turns: TurnRight}
		if m[2] != "" {
			h.InboundCourseDeg = atof(m[2])
			h.HasInboundCourse = true
		}
		if m[3] != "" {
			h.Turns = turnDir(m[3])
		}
		return h
	}

	return nil
}

// ParseMultiple splits an instruction on " and " or commas and parses each
// clause independently, preserving order. Clauses that fail to parse are
// dropped; the remaining clauses still apply.
func ParseMultiple(text string) []Command {
	s := Normalize(text)
	s = reFuseAltitude.ReplaceAllString(s, "$1 maintain")
	s = strings.ReplaceAll(s, " and ", ",")

	var cmds []Command
	for _, clause := range strings.Split(s, ",") {
		if cmd := Parse(strings.TrimSpace(clause)); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// Suggestions returns human-readable format hints when parsing fails, keyed
// on which instruction keyword was present but malformed.
func Suggestions(text string) []string {
	s := Normalize(text)
	var hints []string

	if strings.Contains(s, "heading") || strings.Contains(s, "turn") {
		hints = append(hints, "heading: 'turn left heading 220', 'heading 090' or 'left 180'")
	}
	if strings.Contains(s, "climb") || strings.Contains(s, "descend") || strings.Contains(s, "maintain") {
		hints = append(hints, "altitude: 'climb and maintain 5000' or 'maintain 8000'")
	}
	if strings.Contains(s, "speed") {
		hints = append(hints, "speed: 'reduce speed to 210' or 'maintain speed 250'")
	}
	if strings.Contains(s, "direct") {
		hints = append(hints, "direct: 'proceed direct BOSCO'")
	}
	if len(hints) == 0 {
		hints = append(hints, "try 'turn left heading 220', 'descend and maintain 5000' or 'reduce speed to 210'")
	}
	return hints
}

// Normalize lowercases the instruction, replaces spoken digit words and
// joins runs of single digits ("one two one point five" -> "121.5",
// "three thousand" -> "3000"). It is idempotent.
func Normalize(text string) string {
	s := lowerCaser.String(strings.TrimSpace(text))
	tokens := strings.Fields(s)

	for i, tok := range tokens {
		if d, ok := spokenDigits[tok]; ok {
			tokens[i] = d
		}
	}

	return strings.Join(mergeNumbers(tokens), " ")
}

// mergeNumbers collapses runs of single-digit tokens into one number,
// joining over "point" for decimals and expanding "thousand"/"hundred".
func mergeNumbers(tokens []string) []string {
	var out []string
	i := 0
	for i < len(tokens) {
		if !isSingleDigit(tokens[i]) {
			out = append(out, tokens[i])
			i++
			continue
		}

		num := tokens[i]
		i++
		for i < len(tokens) && isSingleDigit(tokens[i]) {
			num += tokens[i]
			i++
		}

		if i < len(tokens) && tokens[i] == "point" && i+1 < len(tokens) && isSingleDigit(tokens[i+1]) {
			num += "."
			i++
			for i < len(tokens) && isSingleDigit(tokens[i]) {
				num += tokens[i]
				i++
			}
			out = append(out, num)
			continue
		}

		if i < len(tokens) && (tokens[i] == "thousand" || tokens[i] == "hundred") {
			v, _ := strconv.Atoi(num)
			if tokens[i] == "thousand" {
				v *= 1000
				i++
				// "three thousand five hundred"
				if i+1 < len(tokens) && isSingleDigit(tokens[i]) && tokens[i+1] == "hundred" {
					h, _ := strconv.Atoi(tokens[i])
					v += h * 100
					i += 2
				}
			} else {
				v *= 100
				i++
			}
			num = strconv.Itoa(v)
		}

		out = append(out, num)
	}
	return out
}

func isSingleDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

func turnDir(s string) TurnDirection {
	switch s {
	case "left":
		return TurnLeft
	case "right":
		return TurnRight
	default:
		return TurnEither
	}
}

func atof(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
