package summary

import (
	"github.com/pkg/errors"

	"github.com/MaineK00n/amalgamate/pkg/types"
)

// Summarize tallies severities per project. Projects appear in the order
// they are first seen in rs.
func Summarize(rs []types.Resolution) ([]types.ProjectSummary, error) {
	var ss []types.ProjectSummary
	index := map[string]int{}
	for _, r := range rs {
		i, ok := index[r.Project]
		if !ok {
			i = len(ss)
			index[r.Project] = i
			ss = append(ss, types.ProjectSummary{Project: r.Project})
		}
		if err := ss[i].Counts.Add(r.Vulnerability.Severity); err != nil {
			return nil, errors.Wrapf(err, "summarize %s", r.Project)
		}
	}
	return ss, nil
}
