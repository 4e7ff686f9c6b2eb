package reconcile

import (
	"testing"

	"github.com/claimpipe/claimpipe/internal/claim"
	"github.com/claimpipe/claimpipe/internal/config"
)

func testConfig(mode string, threshold int) *config.Config {
	return &config.Config{
		FuzzyFields: []string{claim.FieldInsuranceCompany, claim.FieldCauseOfLoss},
		KnownValues: map[string][]string{
			claim.FieldInsuranceCompany: {"Allianz", "State Farm", "GEICO"},
			claim.FieldCauseOfLoss:      {"Wind", "Hail", "Water Damage"},
		},
		FuzzyThreshold: threshold,
		FuzzyCompare:   mode,
	}
}

func TestApply_FieldNameMode(t *testing.T) {
	// In this mode candidates compete against the field's display name.
	cfg := testConfig(config.FuzzyCompareFieldName, 80)
	cfg.KnownValues[claim.FieldInsuranceCompany] = []string{"Insurance Compan", "GEICO"}
	r := New(cfg, nil)

	t.Run("missing field promoted from candidate near display name", func(t *testing.T) {
		rec := claim.NewRecord()
		r.Apply(rec, nil)

		if rec[claim.FieldInsuranceCompany] != "Insurance Compan" {
			t.Errorf("got %v, want promotion into missing field", rec[claim.FieldInsuranceCompany])
		}
	})

	t.Run("extracted value never overwritten", func(t *testing.T) {
		rec := claim.NewRecord()
		rec[claim.FieldInsuranceCompany] = "whatever was extracted"
		r.Apply(rec, nil)

		if rec[claim.FieldInsuranceCompany] != "whatever was extracted" {
			t.Errorf("got %v, want extracted value kept", rec[claim.FieldInsuranceCompany])
		}
	})

	t.Run("no candidate near display name leaves the sentinel", func(t *testing.T) {
		rec := claim.NewRecord()
		r.Apply(rec, nil)

		if rec[claim.FieldCauseOfLoss] != claim.Missing {
			t.Errorf("got %v, want sentinel", rec[claim.FieldCauseOfLoss])
		}
	})
}

func TestApply_CapturedMode(t *testing.T) {
	r := New(testConfig(config.FuzzyCompareCaptured, 80), nil)

	t.Run("remnant near a known value is promoted", func(t *testing.T) {
		rec := claim.NewRecord()
		r.Apply(rec, map[string]string{claim.FieldInsuranceCompany: "Alianz"})

		if rec[claim.FieldInsuranceCompany] != "Allianz" {
			t.Errorf("got %v, want Allianz", rec[claim.FieldInsuranceCompany])
		}
	})

	t.Run("distant remnant leaves the sentinel", func(t *testing.T) {
		rec := claim.NewRecord()
		r.Apply(rec, map[string]string{claim.FieldInsuranceCompany: "Mutual of Omaha"})

		if rec[claim.FieldInsuranceCompany] != claim.Missing {
			t.Errorf("got %v, want sentinel", rec[claim.FieldInsuranceCompany])
		}
	})

	t.Run("no remnant leaves the sentinel", func(t *testing.T) {
		rec := claim.NewRecord()
		r.Apply(rec, nil)

		if rec[claim.FieldInsuranceCompany] != claim.Missing {
			t.Errorf("got %v, want sentinel", rec[claim.FieldInsuranceCompany])
		}
	})

	t.Run("extracted value never overwritten", func(t *testing.T) {
		rec := claim.NewRecord()
		rec[claim.FieldInsuranceCompany] = "Alianz"
		r.Apply(rec, map[string]string{claim.FieldInsuranceCompany: "Alianz"})

		if rec[claim.FieldInsuranceCompany] != "Alianz" {
			t.Errorf("got %v, want extracted value kept", rec[claim.FieldInsuranceCompany])
		}
	})
}

func TestApply_ThresholdBoundary(t *testing.T) {
	// A score of exactly the threshold must not promote.
	cfg := testConfig(config.FuzzyCompareCaptured, 80)
	cfg.FuzzyFields = []string{claim.FieldCauseOfLoss}
	cfg.KnownValues = map[string][]string{claim.FieldCauseOfLoss: {"Winds"}}
	r := New(cfg, nil)

	rec := claim.NewRecord()
	r.Apply(rec, map[string]string{claim.FieldCauseOfLoss: "Wind"}) // distance 1, maxLen 5 -> score 80

	if got := Similarity("Wind", "Winds"); got != 80 {
		t.Fatalf("similarity(Wind, Winds) = %d, want 80", got)
	}
	if rec[claim.FieldCauseOfLoss] != claim.Missing {
		t.Errorf("score at threshold promoted: %v", rec[claim.FieldCauseOfLoss])
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"Allianz", "Allianz", 100},
		{"allianz", "ALLIANZ", 100},
		{"", "", 100},
		{"abc", "xyz", 0},
		{"Wind", "Winds", 80},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != tt.want {
			t.Errorf("Similarity(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
