package fallback

import (
	"reflect"
	"testing"

	"github.com/claimpipe/claimpipe/internal/claim"
	"github.com/claimpipe/claimpipe/internal/config"
)

func TestParse(t *testing.T) {
	p := New(config.DefaultConfig(), nil)

	t.Run("full coverage on empty input", func(t *testing.T) {
		rec := p.Parse("")
		want := claim.NewRecord()
		if !reflect.DeepEqual(rec, want) {
			t.Errorf("empty input record differs from fresh record:\ngot  %v\nwant %v", rec, want)
		}
	})

	t.Run("fallback patterns recover aliases", func(t *testing.T) {
		raw := "Sorry for the mess, details below.\nDOL: 06/15/2023\nPolicyholder: Jane Doe\nPeril: hail storm\nClaim No. CLM-99\n"
		rec := p.Parse(raw)

		if rec[claim.FieldDateOfLoss] != "2023-06-15" {
			t.Errorf("DateOfLoss = %v", rec[claim.FieldDateOfLoss])
		}
		if rec[claim.FieldInsuredName] != "Jane Doe" {
			t.Errorf("InsuredName = %v", rec[claim.FieldInsuredName])
		}
		if rec[claim.FieldCauseOfLoss] != "hail storm" {
			t.Errorf("CauseOfLoss = %v", rec[claim.FieldCauseOfLoss])
		}
		if rec[claim.FieldCarrierClaimNumber] != "CLM-99" {
			t.Errorf("CarrierClaimNumber = %v", rec[claim.FieldCarrierClaimNumber])
		}
	})

	t.Run("lenient line scan matches display labels", func(t *testing.T) {
		raw := "Handler: Kim Soto\nCause Of Loss: Wind\nResidence Occupied: yes\n"
		rec := p.Parse(raw)

		if rec[claim.FieldHandler] != "Kim Soto" {
			t.Errorf("Handler = %v", rec[claim.FieldHandler])
		}
		if rec[claim.FieldCauseOfLoss] != "Wind" {
			t.Errorf("CauseOfLoss = %v", rec[claim.FieldCauseOfLoss])
		}
		if rec[claim.FieldResidenceOccupied] != true {
			t.Errorf("ResidenceOccupied = %v", rec[claim.FieldResidenceOccupied])
		}
	})

	t.Run("pattern hit wins over line scan", func(t *testing.T) {
		raw := "DOL: 01/02/2023\nDate Of Loss: 12/31/2020\n"
		rec := p.Parse(raw)

		if rec[claim.FieldDateOfLoss] != "2023-01-02" {
			t.Errorf("DateOfLoss = %v, want pattern result", rec[claim.FieldDateOfLoss])
		}
	})

	t.Run("unknown labels ignored", func(t *testing.T) {
		rec := p.Parse("Shoe Size: 42\nFavorite Color: blue\n")
		want := claim.NewRecord()
		if !reflect.DeepEqual(rec, want) {
			t.Errorf("unknown labels mutated the record")
		}
	})

	t.Run("attachments filtered", func(t *testing.T) {
		rec := p.Parse("Attachments: roof.pdf, selfie.jpg, notes.txt\n")
		want := []string{"roof.pdf", "selfie.jpg"}
		if got := rec[claim.FieldAttachments]; !reflect.DeepEqual(got, want) {
			t.Errorf("Attachments = %v, want %v", got, want)
		}
	})
}
