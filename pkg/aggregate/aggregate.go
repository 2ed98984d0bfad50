package aggregate

import (
	"log/slog"
	"slices"

	"github.com/pkg/errors"

	"github.com/MaineK00n/amalgamate/pkg/audit"
	"github.com/MaineK00n/amalgamate/pkg/types"
)

type Kind string

const (
	KindDependencies    Kind = "dependencies"
	KindDevDependencies Kind = "devDependencies"
	KindBoth            Kind = "both"
)

var Kinds = []Kind{KindDependencies, KindDevDependencies, KindBoth}

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindDependencies, KindDevDependencies, KindBoth:
		return k, nil
	default:
		return "", types.InvalidConfigurationf("unexpected kind. accepts: %q, actual: %q", Kinds, s)
	}
}

// Gather flattens every resolve of every action in doc, in encounter order,
// and stamps each with its action fields and project.
func Gather(doc *audit.Document, project string) ([]types.Resolution, error) {
	var rs []types.Resolution
	for i, a := range doc.Actions {
		h, err := audit.ReadAction(a)
		if err != nil {
			return nil, errors.Wrapf(err, "read action %d of %s", i, project)
		}

		for _, raw := range a.Resolves {
			r, err := audit.ReadResolution(doc, raw)
			if err != nil {
				return nil, errors.Wrapf(err, "read %s %s of %s", h.Action, h.Module, project)
			}
			r.Action = h.Action
			r.Module = h.Module
			r.Target = h.Target
			r.Depth = h.Depth
			r.Project = project

			slog.Debug("Gather", "project", project, "action", h.Action, "module", h.Module, "id", r.ID, "severity", r.Vulnerability.Severity)
			rs = append(rs, r)
		}
	}
	return rs, nil
}

func FilterByKind(rs []types.Resolution, kind Kind) ([]types.Resolution, error) {
	switch kind {
	case KindBoth:
		return rs, nil
	case KindDependencies, KindDevDependencies:
		filtered := make([]types.Resolution, 0, len(rs))
		for _, r := range rs {
			if r.Dev == (kind == KindDevDependencies) {
				filtered = append(filtered, r)
			}
		}
		return filtered, nil
	default:
		return nil, types.InvalidConfigurationf("unexpected kind. accepts: %q, actual: %q", Kinds, kind)
	}
}

// SortBySeverity sorts rs in place, most severe first. Equal severities keep
// their relative order.
func SortBySeverity(rs []types.Resolution) {
	slices.SortStableFunc(rs, func(a, b types.Resolution) int {
		return a.Vulnerability.Severity.Rank() - b.Vulnerability.Severity.Rank()
	})
}
