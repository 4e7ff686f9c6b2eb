package segment

import (
	"testing"
)

var testHeaders = []string{
	"Requesting Party",
	"Insured Information",
	"Adjuster Information",
	"Assignment Information",
	"Assignment Type",
	"Additional details/Special Instructions",
	"Attachment(s)",
}

func TestSplit(t *testing.T) {
	s := New(testHeaders)

	t.Run("basic sections", func(t *testing.T) {
		body := "Requesting Party\nInsurance Company: Allianz\n\nInsured Information\nName: Jane Doe\n"
		got := s.Split(body)

		if len(got) != 2 {
			t.Fatalf("expected 2 sections, got %d: %v", len(got), got)
		}
		if got["Requesting Party"] != "Insurance Company: Allianz" {
			t.Errorf("Requesting Party = %q", got["Requesting Party"])
		}
		if got["Insured Information"] != "Name: Jane Doe" {
			t.Errorf("Insured Information = %q", got["Insured Information"])
		}
	})

	t.Run("decorated headers match", func(t *testing.T) {
		body := "*** REQUESTING PARTY: ***\nHandler: Bob\n  **Insured Information**  \nName: Al\n"
		got := s.Split(body)

		if got["Requesting Party"] != "Handler: Bob" {
			t.Errorf("decorated header not matched: %v", got)
		}
		if got["Insured Information"] != "Name: Al" {
			t.Errorf("decorated header not matched: %v", got)
		}
	})

	t.Run("pre-header content is discarded", func(t *testing.T) {
		body := "Hi team,\nplease handle this one.\n\nAssignment Information\nDate of Loss: 06/15/2023\n"
		got := s.Split(body)

		if len(got) != 1 {
			t.Fatalf("expected 1 section, got %v", got)
		}
		if got["Assignment Information"] != "Date of Loss: 06/15/2023" {
			t.Errorf("Assignment Information = %q", got["Assignment Information"])
		}
	})

	t.Run("duplicate header appends", func(t *testing.T) {
		body := "Attachment(s)\nphotos.zip\nAttachment(s)\nestimate.pdf\n"
		got := s.Split(body)

		if got["Attachment(s)"] != "photos.zip\nestimate.pdf" {
			t.Errorf("duplicate header body = %q", got["Attachment(s)"])
		}
	})

	t.Run("header with no body yields empty section", func(t *testing.T) {
		body := "Adjuster Information\nAssignment Information\nCause of Loss: Hail\n"
		got := s.Split(body)

		if v, ok := got["Adjuster Information"]; !ok || v != "" {
			t.Errorf("expected empty Adjuster Information section, got %q (present=%v)", v, ok)
		}
		if got["Assignment Information"] != "Cause of Loss: Hail" {
			t.Errorf("Assignment Information = %q", got["Assignment Information"])
		}
	})

	t.Run("no headers yields empty map", func(t *testing.T) {
		got := s.Split("just some free text\nwith no structure\n")
		if len(got) != 0 {
			t.Errorf("expected no sections, got %v", got)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		got := s.Split("")
		if len(got) != 0 {
			t.Errorf("expected no sections, got %v", got)
		}
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Requesting Party", "requesting party"},
		{"  *Requesting Party:*  ", "requesting party"},
		{"ATTACHMENT(S):", "attachment(s)"},
		{"** Assignment Type **", "assignment type"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
