package config

// Config holds defaults for the run command. Unset fields leave the built-in
// defaults in place; command-line flags override both.
type Config struct {
	Width             *int  `json:"width,omitempty" yaml:"width,omitempty"`
	LabelWidth        *int  `json:"label_width,omitempty" yaml:"label_width,omitempty"`
	SummaryLabelWidth *int  `json:"summary_label_width,omitempty" yaml:"summary_label_width,omitempty"`
	Summary           *bool `json:"summary,omitempty" yaml:"summary,omitempty"`
	NoProgress        *bool `json:"no_progress,omitempty" yaml:"no_progress,omitempty"`
	Debug             *bool `json:"debug,omitempty" yaml:"debug,omitempty"`
}
