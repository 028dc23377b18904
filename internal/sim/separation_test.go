package sim

import (
	"testing"

	"github.com/ivanlamont/AI-ATC-sub000/pkg/geometry"
)

func acAt(callsign string, x, y, altFt float64) *Aircraft {
	return NewAircraft(callsign, CategoryJet, geometry.Point{X: x, Y: y}, 0, 250, altFt)
}

func TestCheckSeparation(t *testing.T) {
	t.Run("both minima breached", func(t *testing.T) {
		vs := CheckSeparation([]*Aircraft{
			acAt("UAL101", 0, 0, 10000),
			acAt("DAL202", 1, 0, 10500),
		})
		if len(vs) != 1 {
			t.Fatalf("got %d violations, want 1", len(vs))
		}
		v := vs[0]
		if v.First != "DAL202" || v.Second != "UAL101" {
			t.Errorf("pair = %s/%s, want sorted DAL202/UAL101", v.First, v.Second)
		}
		if v.LateralNm != 1 || v.VerticalFt != 500 {
			t.Errorf("measured %v nm / %v ft", v.LateralNm, v.VerticalFt)
		}
	})

	t.Run("vertical separation alone is safe", func(t *testing.T) {
		vs := CheckSeparation([]*Aircraft{
			acAt("UAL101", 0, 0, 10000),
			acAt("DAL202", 1, 0, 11000),
		})
		if len(vs) != 0 {
			t.Errorf("got %d violations, want 0", len(vs))
		}
	})

	t.Run("lateral separation alone is safe", func(t *testing.T) {
		vs := CheckSeparation([]*Aircraft{
			acAt("UAL101", 0, 0, 10000),
			acAt("DAL202", 2, 0, 10000),
		})
		if len(vs) != 0 {
			t.Errorf("exactly 2.0 nm must not violate, got %d", len(vs))
		}
	})

	t.Run("landed aircraft are skipped", func(t *testing.T) {
		a := acAt("UAL101", 0, 0, 0)
		a.Landed = true
		vs := CheckSeparation([]*Aircraft{a, acAt("DAL202", 0.5, 0, 100)})
		if len(vs) != 0 {
			t.Errorf("got %d violations involving a landed aircraft", len(vs))
		}
	})

	t.Run("all pairs scanned", func(t *testing.T) {
		vs := CheckSeparation([]*Aircraft{
			acAt("AAL1", 0, 0, 10000),
			acAt("AAL2", 0.5, 0, 10000),
			acAt("AAL3", 1, 0, 10000),
		})
		if len(vs) != 3 {
			t.Errorf("got %d violations, want 3", len(vs))
		}
	})
}

func TestViolationPairKey(t *testing.T) {
	v := Violation{First: "DAL202", Second: "UAL101"}
	if v.PairKey() != "DAL202/UAL101" {
		t.Errorf("PairKey = %q", v.PairKey())
	}
}
