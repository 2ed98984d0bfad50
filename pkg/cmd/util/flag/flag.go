package flag

import (
	"github.com/spf13/cobra"

	"github.com/MaineK00n/amalgamate/pkg/aggregate"
)

// Kind is a pflag.Value restricted to the dependency kinds accepted by run.
type Kind aggregate.Kind

func (k *Kind) String() string {
	return string(*k)
}

func (k *Kind) Set(v string) error {
	parsed, err := aggregate.ParseKind(v)
	if err != nil {
		return err
	}
	*k = Kind(parsed)
	return nil
}

func (k *Kind) Type() string {
	return "Kind"
}

func KindCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ks := make([]string, 0, len(aggregate.Kinds))
	for _, k := range aggregate.Kinds {
		ks = append(ks, string(k))
	}
	return ks, cobra.ShellCompDirectiveNoFileComp
}
