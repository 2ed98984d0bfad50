package types

import (
	"strings"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Severities lists every known severity, highest first.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityModerate, SeverityLow, SeverityInfo}

// ParseSeverity accepts the five npm audit severities case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch sv := Severity(strings.ToLower(strings.TrimSpace(s))); sv {
	case SeverityCritical, SeverityHigh, SeverityModerate, SeverityLow, SeverityInfo:
		return sv, nil
	default:
		return "", MalformedInputf("unexpected severity. accepts: %q, actual: %q", Severities, s)
	}
}

// Rank orders severities for sorting: critical=1 ... info=5.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 1
	case SeverityHigh:
		return 2
	case SeverityModerate:
		return 3
	case SeverityLow:
		return 4
	case SeverityInfo:
		return 5
	default:
		return len(Severities) + 1
	}
}

func (s Severity) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func (s Severity) String() string {
	return string(s)
}

type Vulnerability struct {
	Title    string   `json:"title,omitempty"`
	Severity Severity `json:"severity,omitempty"`
	URL      string   `json:"url,omitempty"`
}

type Resolution struct {
	ID       int      `json:"id,omitempty"`
	Path     []string `json:"path,omitempty"`
	Dev      bool     `json:"dev,omitempty"`
	Optional bool     `json:"optional,omitempty"`
	Bundled  bool     `json:"bundled,omitempty"`

	Vulnerability Vulnerability `json:"vulnerability,omitempty"`

	Action  string `json:"action,omitempty"`
	Module  string `json:"module,omitempty"`
	Target  string `json:"target,omitempty"`
	Depth   *int   `json:"depth,omitempty"`
	Project string `json:"project,omitempty"`
}

// Root is the top-level dependency that pulls the vulnerable module in.
func (r Resolution) Root() string {
	if len(r.Path) == 0 {
		return r.Module
	}
	return r.Path[0]
}

// ParsePath splits an npm audit path ("a>b>c") into its segments.
func ParsePath(path string) []string {
	ss := strings.Split(path, ">")
	for i, s := range ss {
		ss[i] = strings.TrimSpace(s)
	}
	return ss
}

type Counts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Moderate int `json:"moderate"`
	Low      int `json:"low"`
	Info     int `json:"info"`
}

func (c *Counts) Add(s Severity) error {
	switch s {
	case SeverityCritical:
		c.Critical++
	case SeverityHigh:
		c.High++
	case SeverityModerate:
		c.Moderate++
	case SeverityLow:
		c.Low++
	case SeverityInfo:
		c.Info++
	default:
		return MalformedInputf("unexpected severity. accepts: %q, actual: %q", Severities, s)
	}
	return nil
}

// Values returns the counts in Severities order.
func (c Counts) Values() []int {
	return []int{c.Critical, c.High, c.Moderate, c.Low, c.Info}
}

func (c Counts) Total() int {
	return c.Critical + c.High + c.Moderate + c.Low + c.Info
}

type ProjectSummary struct {
	Project string `json:"project"`
	Counts  Counts `json:"counts"`
}
