package tagcloud

import (
	"sort"

	"github.com/samber/lo"

	"github.com/quka-ai/quka-client/pkg/types"
)

type Tier int

const (
	TierBase Tier = iota
	TierLow
	TierMid
	TierTop
)

func (t Tier) String() string {
	switch t {
	case TierTop:
		return "top"
	case TierMid:
		return "mid"
	case TierLow:
		return "low"
	default:
		return "base"
	}
}

// TierFor maps count/maxCount onto the four visual tiers.
func TierFor(ratio float64) Tier {
	switch {
	case ratio > 0.8:
		return TierTop
	case ratio > 0.6:
		return TierMid
	case ratio > 0.4:
		return TierLow
	default:
		return TierBase
	}
}

type Style struct {
	Class string
	Bold  bool
	Size  int
	Color string
}

var (
	tierStyles = map[Tier]Style{
		TierTop:  {Class: "text-lg font-bold text-primary", Bold: true, Size: 4, Color: "primary"},
		TierMid:  {Class: "text-base font-medium text-primary/80", Size: 3, Color: "primary-muted"},
		TierLow:  {Class: "text-sm text-foreground", Size: 2, Color: "foreground"},
		TierBase: {Class: "text-xs text-muted-foreground", Size: 1, Color: "muted"},
	}
	SelectedStyle = Style{Class: "bg-primary text-primary-foreground font-bold", Bold: true, Size: 4, Color: "selected"}
)

func StyleFor(t Tier) Style {
	return tierStyles[t]
}

type Item struct {
	Name     string
	Count    int64
	Ratio    float64
	Tier     Tier
	Selected bool
	Style    Style
}

// Rank sorts tags by count, highest first and stable for equal counts, and
// assigns each one a tier. An empty input yields nil without computing any
// ratio.
func Rank(tags []types.TagDto) []Item {
	if len(tags) == 0 {
		return nil
	}

	items := lo.Map(tags, func(tag types.TagDto, _ int) Item {
		return Item{Name: tag.Name, Count: tag.Count.Int()}
	})
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})

	maxCount := lo.MaxBy(items, func(a, b Item) bool {
		return a.Count > b.Count
	}).Count

	for i := range items {
		if maxCount > 0 {
			items[i].Ratio = float64(items[i].Count) / float64(maxCount)
		}
		items[i].Tier = TierFor(items[i].Ratio)
		items[i].Style = StyleFor(items[i].Tier)
	}
	return items
}
