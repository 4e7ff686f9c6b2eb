package config

// Canonical section names. These are the headers the segmenter recognizes
// and the keys of the Patterns map; matching is case-insensitive.
const (
	SectionRequestingParty   = "Requesting Party"
	SectionInsured           = "Insured Information"
	SectionAdjuster          = "Adjuster Information"
	SectionAssignment        = "Assignment Information"
	SectionAssignmentType    = "Assignment Type"
	SectionAdditionalDetails = "Additional details/Special Instructions"
	SectionAttachments       = "Attachment(s)"
)

// Fuzzy comparison modes for the reconciler. FuzzyCompareFieldName replicates
// the reference system's observed behavior (candidates scored against the
// field's display name); FuzzyCompareCaptured scores against whatever partial
// text extraction captured before defaulting.
const (
	FuzzyCompareFieldName = "field-name"
	FuzzyCompareCaptured  = "captured"
)

// Config holds all declarative extraction knowledge. It is resolved once at
// construction (built-in defaults overridden field-by-field by an optional
// external document) and read-only thereafter; pipelines share one value.
type Config struct {
	// SectionHeaders lists recognized headers in canonical form, in the
	// order sections typically appear in assignment emails.
	SectionHeaders []string `mapstructure:"section_headers" yaml:"section_headers"`

	// Patterns maps section name -> field name -> primary extraction
	// pattern. Each pattern carries exactly one capturing group for the
	// value ("Other" under Assignment Type carries two: marker and details).
	Patterns map[string]map[string]string `mapstructure:"patterns" yaml:"patterns"`

	// FallbackPatterns maps field name -> alternate pattern tried when the
	// section-scoped primary misses. Flat, not section-scoped.
	FallbackPatterns map[string]string `mapstructure:"fallback_patterns" yaml:"fallback_patterns"`

	// DateFormats are Go reference layouts tried in order.
	DateFormats []string `mapstructure:"date_formats" yaml:"date_formats"`

	// BooleanPositive and BooleanNegative are the lowercase vocabularies a
	// captured boolean value is resolved against.
	BooleanPositive []string `mapstructure:"boolean_positive" yaml:"boolean_positive"`
	BooleanNegative []string `mapstructure:"boolean_negative" yaml:"boolean_negative"`

	// FuzzyFields names the fields eligible for fuzzy reconciliation.
	FuzzyFields []string `mapstructure:"fuzzy_fields" yaml:"fuzzy_fields"`

	// KnownValues maps field name -> canonical values, in preference order.
	KnownValues map[string][]string `mapstructure:"known_values" yaml:"known_values"`

	// FuzzyThreshold is the 0-100 similarity score a candidate must exceed
	// to be promoted into a missing field.
	FuzzyThreshold int `mapstructure:"fuzzy_threshold" yaml:"fuzzy_threshold"`

	// FuzzyCompare selects the reconciler comparison target; one of
	// FuzzyCompareFieldName (default) or FuzzyCompareCaptured.
	FuzzyCompare string `mapstructure:"fuzzy_compare" yaml:"fuzzy_compare"`

	// AttachmentExtensions are the document/image extensions an attachment
	// token may carry to survive filtering (lowercase, with dot).
	AttachmentExtensions []string `mapstructure:"attachment_extensions" yaml:"attachment_extensions"`

	// PostRules are conditional corrections applied across the whole record
	// after reconciliation, in declaration order.
	PostRules []Rule `mapstructure:"post_rules" yaml:"post_rules"`

	// Recognizers configures the two pluggable entity-recognition backends.
	Recognizers RecognizersConfig `mapstructure:"recognizers" yaml:"recognizers"`

	// Server holds the HTTP surface settings.
	Server ServerConfig `mapstructure:"server" yaml:"server"`
}

// Rule is one declarative post-processing correction: when the record's
// ConditionField equals ConditionValue, TargetField is set to ActionValue.
type Rule struct {
	TargetField    string `mapstructure:"target_field" yaml:"target_field"`
	ConditionField string `mapstructure:"condition_field" yaml:"condition_field"`
	ConditionValue any    `mapstructure:"condition_value" yaml:"condition_value"`
	ActionValue    any    `mapstructure:"action_value" yaml:"action_value"`
}

// RecognizersConfig selects and configures entity-recognition backends.
// The pipeline treats both as optional collaborators behind an interface;
// model lifecycle belongs entirely to the backend.
type RecognizersConfig struct {
	// General is the type-labeled span recognizer feeding the Entities
	// bucket; its labels are filtered to the relevant subset.
	General RecognizerConfig `mapstructure:"general" yaml:"general"`
	// Transformer is the group-labeled span recognizer feeding the
	// TransformerEntities bucket.
	Transformer RecognizerConfig `mapstructure:"transformer" yaml:"transformer"`
	// RelevantLabels is the label subset retained from the general
	// recognizer's open label set.
	RelevantLabels []string `mapstructure:"relevant_labels" yaml:"relevant_labels"`
	// Retries bounds per-recognizer retry attempts before the enricher
	// falls back to an empty bucket.
	Retries int `mapstructure:"retries" yaml:"retries"`
}

// RecognizerConfig configures one recognizer backend.
type RecognizerConfig struct {
	// Type names the backend ("openai" or "" for none).
	Type string `mapstructure:"type" yaml:"type"`
	// Model is the backend model identifier.
	Model string `mapstructure:"model" yaml:"model"`
	// APIKey may use ${ENV_VAR} syntax to reference environment variables.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	// TimeoutSeconds bounds a single recognizer call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Enabled        bool `mapstructure:"enabled" yaml:"enabled"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
	// RequestTimeoutSeconds bounds one parse request end to end; exceeding
	// it is treated like a validation failure from the caller's side.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" yaml:"request_timeout_seconds"`
}
