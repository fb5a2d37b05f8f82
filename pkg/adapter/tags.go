package adapter

import (
	"strings"

	"github.com/samber/lo"

	"github.com/quka-ai/quka-client/pkg/types"
)

// CountPolicy decides the count of tags built from a bare name list.
type CountPolicy int

const (
	// CountFrequency counts how often a name occurs in the list.
	CountFrequency CountPolicy = iota
	// CountUniform gives every distinct name a count of 1.
	CountUniform
)

func (p CountPolicy) String() string {
	switch p {
	case CountUniform:
		return "uniform"
	default:
		return "frequency"
	}
}

func ParseCountPolicy(s string) CountPolicy {
	if strings.EqualFold(strings.TrimSpace(s), "uniform") {
		return CountUniform
	}
	return CountFrequency
}

// TagsFromNames folds names into distinct tags in first-seen order. Blank
// names are dropped.
func TagsFromNames(names []string, policy CountPolicy) []types.TagDto {
	cleaned := lo.FilterMap(names, func(name string, _ int) (string, bool) {
		name = strings.TrimSpace(name)
		return name, name != ""
	})
	counts := lo.CountValues(cleaned)

	return lo.Map(lo.Uniq(cleaned), func(name string, _ int) types.TagDto {
		count := 1
		if policy == CountFrequency {
			count = counts[name]
		}
		return types.TagDto{Name: name, Count: types.Number(float64(count))}
	})
}
