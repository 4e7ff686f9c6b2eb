package claim

import (
	"reflect"
	"testing"
)

func TestNewRecord(t *testing.T) {
	rec := NewRecord()

	if len(rec) != len(Fields()) {
		t.Fatalf("record has %d fields, registry has %d", len(rec), len(Fields()))
	}

	t.Run("kind-correct defaults", func(t *testing.T) {
		if rec[FieldInsuranceCompany] != Missing {
			t.Errorf("text default = %v", rec[FieldInsuranceCompany])
		}
		if rec[FieldWind] != false {
			t.Errorf("boolean default = %v", rec[FieldWind])
		}
		if rec[FieldOtherDetails] != "" {
			t.Errorf("Other_Details default = %v", rec[FieldOtherDetails])
		}
		if got, ok := rec[FieldAttachments].([]string); !ok || len(got) != 0 {
			t.Errorf("list default = %v", rec[FieldAttachments])
		}
		if got, ok := rec[FieldEntities].(Bucket); !ok || len(got) != 0 {
			t.Errorf("bucket default = %v", rec[FieldEntities])
		}
	})
}

func TestRecord_IsDefault(t *testing.T) {
	rec := NewRecord()

	if !rec.IsDefault(FieldDateOfLoss) {
		t.Error("fresh field reported as non-default")
	}

	rec[FieldDateOfLoss] = "2023-06-15"
	if rec.IsDefault(FieldDateOfLoss) {
		t.Error("set field reported as default")
	}

	rec[FieldWind] = true
	if rec.IsDefault(FieldWind) {
		t.Error("true boolean reported as default")
	}

	if rec.IsDefault("No.Such") {
		t.Error("unknown field reported as default")
	}
}

func TestRecord_Merge(t *testing.T) {
	rec := NewRecord()
	rec[FieldHandler] = "Kim"

	rec.Merge(map[string]any{
		FieldHandler:     "Sam",        // existing value wins
		FieldInsuredName: "Jane Doe",   // fills a default
		"Unknown.Field":  "discarded",  // unknown keys ignored
	})

	if rec[FieldHandler] != "Kim" {
		t.Errorf("Handler = %v, want Kim", rec[FieldHandler])
	}
	if rec[FieldInsuredName] != "Jane Doe" {
		t.Errorf("InsuredName = %v", rec[FieldInsuredName])
	}
	if _, ok := rec["Unknown.Field"]; ok {
		t.Error("unknown key merged into record")
	}
}

func TestRecord_MissingFields(t *testing.T) {
	rec := NewRecord()

	missing := rec.MissingFields()
	for _, name := range missing {
		if name == FieldEntities || name == FieldTransformerEntities {
			t.Errorf("bucket field %s reported missing", name)
		}
	}
	wantLen := len(Fields()) - 2 // both buckets excluded
	if len(missing) != wantLen {
		t.Errorf("fresh record missing %d fields, want %d", len(missing), wantLen)
	}

	rec[FieldDateOfLoss] = "2023-06-15"
	rec[FieldAttachments] = []string{"a.pdf"}
	missing = rec.MissingFields()
	for _, name := range missing {
		if name == FieldDateOfLoss || name == FieldAttachments {
			t.Errorf("set field %s reported missing", name)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{FieldInsuranceCompany, "Insurance Company"},
		{FieldDateOfLoss, "Date Of Loss"},
		{FieldWind, "Wind"},
		{FieldOtherChecked, "Other Checked"},
		{FieldAdjusterPhone, "Adjuster Phone Number"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.in); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBucket(t *testing.T) {
	b := Bucket{}

	b.Add("person", "Jane Doe")
	b.Add("person", "Jane Doe") // duplicate
	b.Add("person", "Chris Park")
	b.Add("organization", "Allianz")
	b.Add("", "dropped")
	b.Add("person", "  ")

	if got := b.Mentions("person"); !reflect.DeepEqual(got, []string{"Jane Doe", "Chris Park"}) {
		t.Errorf("person mentions = %v", got)
	}
	if b.Len() != 3 {
		t.Errorf("Len = %d, want 3", b.Len())
	}
	if got := b.Mentions("date"); got != nil {
		t.Errorf("absent label = %v, want nil", got)
	}
}
