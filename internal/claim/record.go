package claim

// Missing is the sentinel for string fields the pipeline could not fill.
const Missing = "N/A"

// Kind classifies a field's value type and drives normalization and defaults.
type Kind int

const (
	// Text fields hold trimmed free text, defaulting to the Missing marker.
	Text Kind = iota
	// Boolean fields resolve through the configured vocabulary, defaulting to false.
	Boolean
	// Checklist fields come from bracketed checkbox markers: any non-empty
	// marker other than "unchecked" means checked.
	Checklist
	// Date fields normalize to YYYY-MM-DD where a configured format matches.
	Date
	// Phone fields normalize to (AAA) BBB-CCCC / +1 (BBB) CCC-DDDD shapes.
	Phone
	// List fields hold zero or more strings (attachments), defaulting to empty.
	List
	// Buckets hold entity mentions grouped by label.
	Buckets
)

// FieldSpec describes one field of the claim record.
type FieldSpec struct {
	Name    string // fully-qualified record key, e.g. "AdjusterInformation.PolicyNumber"
	Kind    Kind
	Default any
}

// Record is a flat claim record keyed by fully-qualified field name.
// Every field from Fields() is always present; absence of data is encoded
// by the kind's default value, never by a missing key.
type Record map[string]any

// Fully-qualified field names. Grouped by source section of the email.
const (
	FieldInsuranceCompany   = "RequestingParty.InsuranceCompany"
	FieldHandler            = "RequestingParty.Handler"
	FieldCarrierClaimNumber = "RequestingParty.CarrierClaimNumber"

	FieldInsuredName    = "InsuredInformation.Name"
	FieldContactNumber  = "InsuredInformation.ContactNumber"
	FieldLossAddress    = "InsuredInformation.LossAddress"
	FieldPublicAdjuster = "InsuredInformation.PublicAdjuster"
	FieldOwnerOrTenant  = "InsuredInformation.OwnerOrTenant"

	FieldAdjusterName  = "AdjusterInformation.AdjusterName"
	FieldAdjusterPhone = "AdjusterInformation.AdjusterPhoneNumber"
	FieldAdjusterEmail = "AdjusterInformation.AdjusterEmail"
	FieldJobTitle      = "AdjusterInformation.JobTitle"
	FieldAdjusterAddr  = "AdjusterInformation.Address"
	FieldPolicyNumber  = "AdjusterInformation.PolicyNumber"

	FieldDateOfLoss        = "AssignmentInformation.DateOfLoss"
	FieldCauseOfLoss       = "AssignmentInformation.CauseOfLoss"
	FieldFactsOfLoss       = "AssignmentInformation.FactsOfLoss"
	FieldLossDescription   = "AssignmentInformation.LossDescription"
	FieldResidenceOccupied = "AssignmentInformation.ResidenceOccupied"
	FieldSomeoneHome       = "AssignmentInformation.SomeoneHome"
	FieldRepairProgress    = "AssignmentInformation.RepairProgress"
	FieldAssignmentType    = "AssignmentInformation.AssignmentType"
	FieldInspectionType    = "AssignmentInformation.InspectionType"

	FieldWind         = "Wind"
	FieldStructural   = "Structural"
	FieldHail         = "Hail"
	FieldFoundation   = "Foundation"
	FieldOtherChecked = "Other_Checked"
	FieldOtherDetails = "Other_Details"

	FieldAdditionalInstructions = "AdditionalInstructions"
	FieldAttachments            = "Attachments"

	FieldEntities            = "Entities"
	FieldTransformerEntities = "TransformerEntities"
)

// registry lists every known field in document order. Order matters only for
// deterministic iteration in diagnostics and tests.
var registry = []FieldSpec{
	{Name: FieldInsuranceCompany, Kind: Text},
	{Name: FieldHandler, Kind: Text},
	{Name: FieldCarrierClaimNumber, Kind: Text},

	{Name: FieldInsuredName, Kind: Text},
	{Name: FieldContactNumber, Kind: Phone},
	{Name: FieldLossAddress, Kind: Text},
	{Name: FieldPublicAdjuster, Kind: Text},
	{Name: FieldOwnerOrTenant, Kind: Text},

	{Name: FieldAdjusterName, Kind: Text},
	{Name: FieldAdjusterPhone, Kind: Phone},
	{Name: FieldAdjusterEmail, Kind: Text},
	{Name: FieldJobTitle, Kind: Text},
	{Name: FieldAdjusterAddr, Kind: Text},
	{Name: FieldPolicyNumber, Kind: Text},

	{Name: FieldDateOfLoss, Kind: Date},
	{Name: FieldCauseOfLoss, Kind: Text},
	{Name: FieldFactsOfLoss, Kind: Text},
	{Name: FieldLossDescription, Kind: Text},
	{Name: FieldResidenceOccupied, Kind: Boolean},
	{Name: FieldSomeoneHome, Kind: Boolean},
	{Name: FieldRepairProgress, Kind: Text},
	{Name: FieldAssignmentType, Kind: Text},
	{Name: FieldInspectionType, Kind: Text},

	{Name: FieldWind, Kind: Checklist},
	{Name: FieldStructural, Kind: Checklist},
	{Name: FieldHail, Kind: Checklist},
	{Name: FieldFoundation, Kind: Checklist},
	{Name: FieldOtherChecked, Kind: Checklist},
	{Name: FieldOtherDetails, Kind: Text, Default: ""},

	{Name: FieldAdditionalInstructions, Kind: Text},
	{Name: FieldAttachments, Kind: List},

	{Name: FieldEntities, Kind: Buckets},
	{Name: FieldTransformerEntities, Kind: Buckets},
}

var byName = func() map[string]FieldSpec {
	m := make(map[string]FieldSpec, len(registry))
	for _, f := range registry {
		m[f.Name] = f
	}
	return m
}()

// Fields returns every known field in document order.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the spec for a fully-qualified field name.
func Lookup(name string) (FieldSpec, bool) {
	f, ok := byName[name]
	return f, ok
}

// DefaultValue returns the type-correct default for a field spec.
func (f FieldSpec) DefaultValue() any {
	if f.Default != nil {
		return f.Default
	}
	switch f.Kind {
	case Boolean, Checklist:
		return false
	case List:
		return []string{}
	case Buckets:
		return Bucket{}
	default:
		return Missing
	}
}

// NewRecord returns a record with total field coverage: every known field
// present at its default value.
func NewRecord() Record {
	r := make(Record, len(registry))
	for _, f := range registry {
		r[f.Name] = f.DefaultValue()
	}
	return r
}

// IsDefault reports whether the record still holds the default value for the
// named field. Unknown fields report false.
func (r Record) IsDefault(name string) bool {
	f, ok := byName[name]
	if !ok {
		return false
	}
	v, ok := r[name]
	if !ok {
		return true
	}
	switch f.Kind {
	case Boolean, Checklist:
		b, ok := v.(bool)
		return ok && !b
	case List:
		l, ok := v.([]string)
		return ok && len(l) == 0
	case Buckets:
		b, ok := v.(Bucket)
		return ok && len(b) == 0
	default:
		s, ok := v.(string)
		def, _ := f.DefaultValue().(string)
		return ok && s == def
	}
}

// Merge copies values from src into fields of r still at their default,
// leaving existing non-default values in place. Unknown keys in src are
// ignored.
func (r Record) Merge(src map[string]any) {
	for name, v := range src {
		if _, ok := byName[name]; !ok {
			continue
		}
		if v == nil || !r.IsDefault(name) {
			continue
		}
		r[name] = v
	}
}

// MissingFields returns the names of all fields still at their default,
// in document order. Entity buckets are excluded: an email with no
// recognizable entities is not a degraded parse.
func (r Record) MissingFields() []string {
	var out []string
	for _, f := range registry {
		if f.Kind == Buckets {
			continue
		}
		if r.IsDefault(f.Name) {
			out = append(out, f.Name)
		}
	}
	return out
}

// DisplayName returns the human label for a field: the last path segment
// split on case boundaries, e.g. "InsuranceCompany" -> "Insurance Company".
func DisplayName(name string) string {
	seg := name
	if i := lastDot(name); i >= 0 {
		seg = name[i+1:]
	}
	var out []rune
	for i, r := range seg {
		if i > 0 && r >= 'A' && r <= 'Z' {
			prev := rune(seg[i-1])
			if prev != '_' && prev != ' ' && !(prev >= 'A' && prev <= 'Z') {
				out = append(out, ' ')
			}
		}
		if r == '_' {
			r = ' '
		}
		out = append(out, r)
	}
	return string(out)
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}
