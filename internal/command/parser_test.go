package command

import (
	"testing"
)

func TestParseHeadingVariants(t *testing.T) {
	tests := []struct {
		text    string
		degrees float64
		dir     TurnDirection
	}{
		{"turn left heading 220", 220, TurnLeft},
		{"Turn Right Heading 045", 45, TurnRight},
		{"heading 090", 90, TurnEither},
		{"fly heading 310", 310, TurnEither},
		{"left 180", 180, TurnLeft},
		{"right 360", 360, TurnRight},
		{"turn left heading two two zero", 220, TurnLeft},
		{"heading niner zero", 90, TurnEither},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			cmd := Parse(tc.text)
			h, ok := cmd.(Heading)
			if !ok {
				t.Fatalf("Parse(%q) = %#v, want Heading", tc.text, cmd)
			}
			if h.Degrees != tc.degrees || h.Direction != tc.dir {
				t.Errorf("got %v/%v, want %v/%v", h.Degrees, h.Direction, tc.degrees, tc.dir)
			}
		})
	}
}

func TestParseAltitudeVariants(t *testing.T) {
	tests := []struct {
		text string
		feet float64
	}{
		{"climb and maintain 5000", 5000},
		{"descend and maintain 3000", 3000},
		{"climb 11000", 11000},
		{"descend to 900", 900},
		{"maintain 8000", 8000},
		{"maintain altitude 900", 900},
		{"climb and maintain three thousand five hundred", 3500},
		{"descend and maintain one zero thousand", 10000},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			cmd := Parse(tc.text)
			a, ok := cmd.(Altitude)
			if !ok {
				t.Fatalf("Parse(%q) = %#v, want Altitude", tc.text, cmd)
			}
			if a.Feet != tc.feet {
				t.Errorf("got %v ft, want %v", a.Feet, tc.feet)
			}
		})
	}
}

func TestParseSpeedVariants(t *testing.T) {
	tests := []struct {
		text  string
		knots float64
	}{
		{"reduce speed to 210", 210},
		{"increase speed 280", 280},
		{"maintain speed 250", 250},
		{"speed 180", 180},
		{"reduce speed to one eight zero", 180},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			cmd := Parse(tc.text)
			sp, ok := cmd.(Speed)
			if !ok {
				t.Fatalf("Parse(%q) = %#v, want Speed", tc.text, cmd)
			}
			if sp.Knots != tc.knots {
				t.Errorf("got %v kt, want %v", sp.Knots, tc.knots)
			}
		})
	}
}

func TestParseProceduralVariants(t *testing.T) {
	if d, ok := Parse("proceed direct BOSCO").(Direct); !ok || d.Fix != "BOSCO" {
		t.Errorf("direct parse failed: %#v", Parse("proceed direct BOSCO"))
	}
	if d, ok := Parse("cleared direct to marin").(Direct); !ok || d.Fix != "MARIN" {
		t.Errorf("direct-to parse failed: %#v", Parse("cleared direct to marin"))
	}

	if c, ok := Parse("contact approach 124.35").(Contact); !ok || c.Facility != "approach" || c.Frequency != "124.35" {
		t.Errorf("contact parse failed: %#v", Parse("contact approach 124.35"))
	}
	if c, ok := Parse("contact socal approach one two one point five").(Contact); !ok || c.Frequency != "121.5" {
		t.Errorf("spoken frequency parse failed: %#v", Parse("contact socal approach one two one point five"))
	}

	if a, ok := Parse("cleared ils approach runway 28L").(Approach); !ok || a.Type != "ils" || a.Runway != "28L" {
		t.Errorf("approach parse failed: %#v", Parse("cleared ils approach runway 28L"))
	}
	if a, ok := Parse("cleared visual 9").(Approach); !ok || a.Type != "visual" || a.Runway != "9" {
		t.Errorf("short approach parse failed: %#v", Parse("cleared visual 9"))
	}

	h, ok := Parse("hold at BOSCO 270 inbound left turns").(Hold)
	if !ok || h.Fix != "BOSCO" || !h.HasInboundCourse || h.InboundCourseDeg != 270 || h.Turns != TurnLeft {
		t.Errorf("hold parse failed: %#v", Parse("hold at BOSCO 270 inbound left turns"))
	}
	if h, ok := Parse("hold at alpha").(Hold); !ok || h.Turns != TurnRight || h.HasInboundCourse {
		t.Errorf("default hold turns should be right: %#v", Parse("hold at alpha"))
	}
}

func TestParseDisambiguation(t *testing.T) {
	// Bare "maintain" with a 3-digit value is ambiguous between altitude and
	// speed, so it must not parse at all.
	if cmd := Parse("maintain 250"); cmd != nil {
		t.Errorf("Parse(\"maintain 250\") = %#v, want nil", cmd)
	}
	// 4 digits is unambiguously an altitude.
	if _, ok := Parse("maintain 2500").(Altitude); !ok {
		t.Errorf("Parse(\"maintain 2500\") should be Altitude")
	}
	// Explicit keyword allows 3 digits.
	if _, ok := Parse("maintain altitude 250").(Altitude); !ok {
		t.Errorf("Parse(\"maintain altitude 250\") should be Altitude")
	}
}

func TestParseUnrecognized(t *testing.T) {
	for _, text := range []string{"", "say again", "hdg two", "climb"} {
		if cmd := Parse(text); cmd != nil {
			t.Errorf("Parse(%q) = %#v, want nil", text, cmd)
		}
	}
}

func TestParseMultiple(t *testing.T) {
	cmds := ParseMultiple("descend and maintain 4000, reduce speed to 210 and turn left heading 180")
	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want 3: %#v", len(cmds), cmds)
	}
	if a, ok := cmds[0].(Altitude); !ok || a.Feet != 4000 {
		t.Errorf("first command = %#v, want Altitude 4000", cmds[0])
	}
	if s, ok := cmds[1].(Speed); !ok || s.Knots != 210 {
		t.Errorf("second command = %#v, want Speed 210", cmds[1])
	}
	if h, ok := cmds[2].(Heading); !ok || h.Degrees != 180 || h.Direction != TurnLeft {
		t.Errorf("third command = %#v, want Heading 180 left", cmds[2])
	}
}

func TestParseMultipleAltitudeThenSpeed(t *testing.T) {
	// Only "climb/descend and maintain" fuses into one clause; a following
	// "and maintain speed" must still start a new clause.
	cmds := ParseMultiple("climb and maintain 5000 and maintain speed 250")
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2: %#v", len(cmds), cmds)
	}
	if a, ok := cmds[0].(Altitude); !ok || a.Feet != 5000 {
		t.Errorf("first command = %#v, want Altitude 5000", cmds[0])
	}
	if s, ok := cmds[1].(Speed); !ok || s.Knots != 250 {
		t.Errorf("second command = %#v, want Speed 250", cmds[1])
	}

	cmds = ParseMultiple("descend and maintain 3000 and maintain speed 210 and contact tower 118.3")
	if len(cmds) != 3 {
		t.Fatalf("got %d commands, want 3: %#v", len(cmds), cmds)
	}
	if a, ok := cmds[0].(Altitude); !ok || a.Feet != 3000 {
		t.Errorf("first command = %#v, want Altitude 3000", cmds[0])
	}
	if s, ok := cmds[1].(Speed); !ok || s.Knots != 210 {
		t.Errorf("second command = %#v, want Speed 210", cmds[1])
	}
	if c, ok := cmds[2].(Contact); !ok || c.Frequency != "118.3" {
		t.Errorf("third command = %#v, want Contact 118.3", cmds[2])
	}
}

func TestParseMultipleDropsBadClauses(t *testing.T) {
	cmds := ParseMultiple("heading 270, say again, speed 210")
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2: %#v", len(cmds), cmds)
	}
	if _, ok := cmds[0].(Heading); !ok {
		t.Errorf("first = %#v, want Heading", cmds[0])
	}
	if _, ok := cmds[1].(Speed); !ok {
		t.Errorf("second = %#v, want Speed", cmds[1])
	}
}

func TestSuggestions(t *testing.T) {
	hints := Suggestions("heading two")
	if len(hints) != 1 {
		t.Fatalf("got %d hints, want 1: %v", len(hints), hints)
	}

	hints = Suggestions("speed slow please")
	if len(hints) != 1 {
		t.Fatalf("got %d hints, want 1: %v", len(hints), hints)
	}

	// Unrecognized text still gets a generic hint.
	if hints = Suggestions("say again"); len(hints) != 1 {
		t.Errorf("expected the fallback hint for unknown text, got %v", hints)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize("Turn Left Heading Two Two Zero")
	twice := Normalize(once)
	if once != twice {
		t.Errorf("Normalize not idempotent: %q vs %q", once, twice)
	}
	if once != "turn left heading 220" {
		t.Errorf("Normalize = %q", once)
	}
}
