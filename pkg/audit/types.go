package audit

// Document is an `npm audit --json` report (audit report v1 layout).
type Document struct {
	Advisories map[string]Advisory `json:"advisories"`
	Actions    []Action            `json:"actions"`
}

type Advisory struct {
	Title    *string `json:"title"`
	Severity *string `json:"severity"`
	URL      *string `json:"url"`
}

type Action struct {
	Action   *string   `json:"action"`
	Module   *string   `json:"module"`
	Target   *string   `json:"target,omitempty"`
	Depth    *int      `json:"depth,omitempty"` // update actions only
	Resolves []Resolve `json:"resolves"`
}

type Resolve struct {
	ID       *int    `json:"id"`
	Path     *string `json:"path"`
	Dev      *bool   `json:"dev"`
	Optional *bool   `json:"optional"`
	Bundled  *bool   `json:"bundled"`
}
