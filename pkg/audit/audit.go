package audit

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/MaineK00n/amalgamate/pkg/types"
)

type options struct {
	progress io.Writer
}

type Option interface {
	apply(*options)
}

type progressOption struct{ w io.Writer }

func (o progressOption) apply(opts *options) {
	opts.progress = o.w
}

// WithProgress copies every byte read from the file to w as well.
func WithProgress(w io.Writer) Option {
	return progressOption{w: w}
}

// Open reads the whole audit file at path and decodes it. Paths ending in
// ".zst" are zstd-decompressed first.
func Open(path string, opts ...Option) (*Document, error) {
	options := &options{
		progress: io.Discard,
	}
	for _, o := range opts {
		o.apply(options)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, types.IOError(err, "open %s", path)
	}
	defer f.Close()

	var r io.Reader = io.TeeReader(f, options.progress)
	compressed := filepath.Ext(path) == ".zst"
	if compressed {
		d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, types.MalformedInputf("decompress %s: %s", path, err)
		}
		defer d.Close()
		r = d
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		if compressed {
			return nil, types.MalformedInputf("decompress %s: %s", path, err)
		}
		return nil, types.IOError(err, "read %s", path)
	}

	doc, err := Decode(buf.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return doc, nil
}

func Decode(bs []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(bs, &doc); err != nil {
		return nil, types.MalformedInputf("unmarshal json: %s", err)
	}
	if doc.Advisories == nil {
		return nil, types.MalformedInputf("missing required key %q", "advisories")
	}
	if doc.Actions == nil {
		return nil, types.MalformedInputf("missing required key %q", "actions")
	}
	return &doc, nil
}

// ReadVulnerability looks up the advisory with the given id.
func ReadVulnerability(doc *Document, id int) (types.Vulnerability, error) {
	a, ok := doc.Advisories[strconv.Itoa(id)]
	if !ok {
		return types.Vulnerability{}, types.MalformedInputf("advisory %d not found", id)
	}
	if a.Title == nil {
		return types.Vulnerability{}, types.MalformedInputf("advisory %d: missing required key %q", id, "title")
	}
	if a.Severity == nil {
		return types.Vulnerability{}, types.MalformedInputf("advisory %d: missing required key %q", id, "severity")
	}
	if a.URL == nil {
		return types.Vulnerability{}, types.MalformedInputf("advisory %d: missing required key %q", id, "url")
	}

	s, err := types.ParseSeverity(*a.Severity)
	if err != nil {
		return types.Vulnerability{}, errors.Wrapf(err, "advisory %d", id)
	}

	return types.Vulnerability{
		Title:    *a.Title,
		Severity: s,
		URL:      *a.URL,
	}, nil
}

// ReadResolution builds a Resolution from one entry of an action's
// "resolves" list. Action-level fields are left for the caller to stamp.
func ReadResolution(doc *Document, raw Resolve) (types.Resolution, error) {
	if raw.ID == nil {
		return types.Resolution{}, types.MalformedInputf("resolve: missing required key %q", "id")
	}
	for _, f := range []struct {
		key     string
		present bool
	}{
		{key: "path", present: raw.Path != nil},
		{key: "dev", present: raw.Dev != nil},
		{key: "optional", present: raw.Optional != nil},
		{key: "bundled", present: raw.Bundled != nil},
	} {
		if !f.present {
			return types.Resolution{}, types.MalformedInputf("resolve %d: missing required key %q", *raw.ID, f.key)
		}
	}

	v, err := ReadVulnerability(doc, *raw.ID)
	if err != nil {
		return types.Resolution{}, errors.Wrapf(err, "resolve %d", *raw.ID)
	}

	return types.Resolution{
		ID:            *raw.ID,
		Path:          types.ParsePath(*raw.Path),
		Dev:           *raw.Dev,
		Optional:      *raw.Optional,
		Bundled:       *raw.Bundled,
		Vulnerability: v,
	}, nil
}

type ActionHeader struct {
	Action string
	Module string
	Target string
	Depth  *int
}

// ReadAction extracts the action-level fields shared by all of its resolves.
func ReadAction(a Action) (ActionHeader, error) {
	if a.Action == nil {
		return ActionHeader{}, types.MalformedInputf("action: missing required key %q", "action")
	}
	if a.Module == nil {
		return ActionHeader{}, types.MalformedInputf("action %s: missing required key %q", *a.Action, "module")
	}
	if a.Resolves == nil {
		return ActionHeader{}, types.MalformedInputf("action %s %s: missing required key %q", *a.Action, *a.Module, "resolves")
	}

	h := ActionHeader{
		Action: *a.Action,
		Module: *a.Module,
		Depth:  a.Depth,
	}
	if a.Target != nil {
		h.Target = *a.Target
	}
	return h, nil
}
