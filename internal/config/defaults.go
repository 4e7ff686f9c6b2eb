package config

import (
	"github.com/claimpipe/claimpipe/internal/claim"
)

// DefaultConfig returns the built-in extraction knowledge. An external config
// file and CLAIMPIPE_* environment variables override it field-by-field; the
// merged result is immutable for the pipeline's lifetime.
func DefaultConfig() *Config {
	return &Config{
		SectionHeaders: []string{
			SectionRequestingParty,
			SectionInsured,
			SectionAdjuster,
			SectionAssignment,
			SectionAssignmentType,
			SectionAdditionalDetails,
			SectionAttachments,
		},

		Patterns: map[string]map[string]string{
			SectionRequestingParty: {
				claim.FieldInsuranceCompany:   `(?im)^\s*insurance company\s*:?[ \t]*(.*)$`,
				claim.FieldHandler:            `(?im)^\s*handler\s*:?[ \t]*(.*)$`,
				claim.FieldCarrierClaimNumber: `(?im)^\s*(?:carrier )?claim (?:number|#)\s*:?[ \t]*(.*)$`,
			},
			SectionInsured: {
				claim.FieldInsuredName:    `(?im)^\s*(?:insured )?name\s*:?[ \t]*(.*)$`,
				claim.FieldContactNumber:  `(?im)^\s*contact (?:#|number)\s*:?[ \t]*(.*)$`,
				claim.FieldLossAddress:    `(?im)^\s*loss address\s*:?[ \t]*(.*)$`,
				claim.FieldPublicAdjuster: `(?im)^\s*public adjuster\s*:?[ \t]*(.*)$`,
				claim.FieldOwnerOrTenant:  `(?im)^\s*is the insured an owner or a tenant[^:?]*[:?][ \t]*(.*)$`,
			},
			SectionAdjuster: {
				claim.FieldAdjusterName:  `(?im)^\s*adjuster name\s*:?[ \t]*(.*)$`,
				claim.FieldAdjusterPhone: `(?im)^\s*(?:adjuster )?phone(?: number)?\s*:?[ \t]*(.*)$`,
				claim.FieldAdjusterEmail: `(?im)^\s*(?:adjuster )?e-?mail\s*:?[ \t]*(.*)$`,
				claim.FieldJobTitle:      `(?im)^\s*job title\s*:?[ \t]*(.*)$`,
				claim.FieldAdjusterAddr:  `(?im)^\s*address\s*:?[ \t]*(.*)$`,
				claim.FieldPolicyNumber:  `(?im)^\s*policy (?:number|#)\s*:?[ \t]*(.*)$`,
			},
			SectionAssignment: {
				claim.FieldDateOfLoss:        `(?im)^\s*date of loss(?:/occurrence)?\s*:?[ \t]*(.*)$`,
				claim.FieldCauseOfLoss:       `(?im)^\s*cause of loss\s*:?[ \t]*(.*)$`,
				claim.FieldFactsOfLoss:       `(?im)^\s*facts of loss\s*:?[ \t]*(.*)$`,
				claim.FieldLossDescription:   `(?im)^\s*loss description\s*:?[ \t]*(.*)$`,
				claim.FieldResidenceOccupied: `(?im)^\s*residence occupied(?: during loss)?\s*:?[ \t]*(.*)$`,
				claim.FieldSomeoneHome:       `(?im)^\s*was someone home(?: at time of damage)?\s*:?[ \t]*(.*)$`,
				claim.FieldRepairProgress:    `(?im)^\s*repair(?: or mitigation)? progress\s*:?[ \t]*(.*)$`,
				claim.FieldAssignmentType:    `(?im)^\s*(?:assignment )?type\s*:?[ \t]*(.*)$`,
				claim.FieldInspectionType:    `(?im)^\s*inspection type\s*:?[ \t]*(.*)$`,
			},
			SectionAssignmentType: {
				claim.FieldWind:         `(?im)^[\s*\-]*wind\s*\[([^\]]*)\]`,
				claim.FieldStructural:   `(?im)^[\s*\-]*structural\s*\[([^\]]*)\]`,
				claim.FieldHail:         `(?im)^[\s*\-]*hail\s*\[([^\]]*)\]`,
				claim.FieldFoundation:   `(?im)^[\s*\-]*foundation\s*\[([^\]]*)\]`,
				claim.FieldOtherChecked: `(?im)^[\s*\-]*other\s*\[([^\]]*)\][ \t:\-]*(.*)$`,
			},
			SectionAdditionalDetails: {
				claim.FieldAdditionalInstructions: `(?s)\A\s*(.+?)\s*\z`,
			},
			SectionAttachments: {
				claim.FieldAttachments: `(?s)\A\s*(.+?)\s*\z`,
			},
		},

		FallbackPatterns: map[string]string{
			claim.FieldDateOfLoss:         `(?im)^\s*(?:dol|loss date|incident date|date of incident)\s*:?[ \t]*(.*)$`,
			claim.FieldCarrierClaimNumber: `(?im)claim\s*(?:no\.?|number|#)\s*:?[ \t]*([A-Za-z0-9\-]+)`,
			claim.FieldPolicyNumber:       `(?im)policy\s*(?:no\.?|number|#)\s*:?[ \t]*([A-Za-z0-9\-]+)`,
			claim.FieldInsuredName:        `(?im)^\s*policyholder\s*:?[ \t]*(.*)$`,
			claim.FieldLossAddress:        `(?im)^\s*property address\s*:?[ \t]*(.*)$`,
			claim.FieldCauseOfLoss:        `(?im)^\s*peril\s*:?[ \t]*(.*)$`,
			claim.FieldAdjusterEmail:      `(?im)^\s*e-?mail\s*:?[ \t]*(\S+@\S+)`,
			claim.FieldAttachments:        `(?im)^\s*attachment(?:\(s\)|s)?\s*:?[ \t]*(.*)$`,
		},

		DateFormats: []string{
			"01/02/2006",
			"2006-01-02",
			"January 2, 2006",
			"Jan 2, 2006",
			"01-02-2006",
			"2 January 2006",
			"02 Jan 2006",
		},

		BooleanPositive: []string{"yes", "true", "1", "x", "y", "checked", "on"},
		BooleanNegative: []string{"no", "false", "0", "n", "unchecked", "off", "none", "n/a"},

		FuzzyFields: []string{
			claim.FieldInsuranceCompany,
			claim.FieldAssignmentType,
			claim.FieldCauseOfLoss,
		},
		KnownValues: map[string][]string{
			claim.FieldInsuranceCompany: {"Allianz", "State Farm", "GEICO"},
			claim.FieldAssignmentType:   {"Wind", "Structural", "Hail", "Foundation", "Other"},
			claim.FieldCauseOfLoss:      {"Wind", "Hail", "Fire", "Water Damage", "Flood", "Theft", "Vandalism"},
		},
		FuzzyThreshold: 80,
		FuzzyCompare:   FuzzyCompareFieldName,

		AttachmentExtensions: []string{
			".pdf", ".doc", ".docx", ".xls", ".xlsx",
			".jpg", ".jpeg", ".png", ".gif", ".tif", ".tiff", ".bmp",
		},

		PostRules: []Rule{
			{TargetField: claim.FieldWind, ConditionField: claim.FieldAssignmentType, ConditionValue: "Wind", ActionValue: true},
			{TargetField: claim.FieldStructural, ConditionField: claim.FieldAssignmentType, ConditionValue: "Structural", ActionValue: true},
			{TargetField: claim.FieldHail, ConditionField: claim.FieldAssignmentType, ConditionValue: "Hail", ActionValue: true},
			{TargetField: claim.FieldFoundation, ConditionField: claim.FieldAssignmentType, ConditionValue: "Foundation", ActionValue: true},
			{TargetField: claim.FieldOtherChecked, ConditionField: claim.FieldAssignmentType, ConditionValue: "Other", ActionValue: true},
		},

		Recognizers: RecognizersConfig{
			General: RecognizerConfig{
				Type:           "openai",
				Model:          "gpt-4o-mini",
				APIKey:         "${OPENAI_API_KEY}",
				TimeoutSeconds: 60,
				Enabled:        false,
			},
			Transformer: RecognizerConfig{
				Type:           "openai",
				Model:          "gpt-4o-mini",
				APIKey:         "${OPENAI_API_KEY}",
				TimeoutSeconds: 60,
				Enabled:        false,
			},
			RelevantLabels: []string{"person", "organization", "gpe", "product", "date"},
			Retries:        2,
		},

		Server: ServerConfig{
			Host:                  "127.0.0.1",
			Port:                  "8080",
			RequestTimeoutSeconds: 120,
		},
	}
}
