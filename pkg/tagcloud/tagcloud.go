package tagcloud

import (
	"log/slog"
	"sync"

	"github.com/quka-ai/quka-client/pkg/adapter"
	"github.com/quka-ai/quka-client/pkg/i18n"
	"github.com/quka-ai/quka-client/pkg/query"
	"github.com/quka-ai/quka-client/pkg/types"
)

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseSuccess
	PhaseEmpty
)

func (p Phase) String() string {
	switch p {
	case PhaseError:
		return "error"
	case PhaseSuccess:
		return "success"
	case PhaseEmpty:
		return "empty"
	default:
		return "loading"
	}
}

type Translator interface {
	Get(lang, id string) string
}

var defaultTranslator = sync.OnceValue(func() Translator {
	return i18n.NewLocalizer(types.LANGUAGE_EN_KEY, types.LANGUAGE_CN_KEY)
})

// View is a fully resolved render of the tag cloud.
type View struct {
	Phase   Phase
	Lang    string
	Title   string
	Message string
	Spinner bool
	Items   []Item
}

// Component is controlled by its owner: the selected tag comes in from
// outside and clicks are only reported through OnSelect.
type Component struct {
	Selected   string
	OnSelect   func(name string)
	Policy     adapter.CountPolicy
	Translator Translator
}

func (c *Component) t() Translator {
	if c.Translator != nil {
		return c.Translator
	}
	return defaultTranslator()
}

// Render turns a tag-name query into a view.
func (c *Component) Render(res query.Result[[]string], lang string) View {
	tr := c.t()
	switch res.Status {
	case query.StatusLoading:
		return View{
			Phase:   PhaseLoading,
			Lang:    lang,
			Title:   tr.Get(lang, i18n.TAGCLOUD_TITLE),
			Message: tr.Get(lang, i18n.TAGCLOUD_LOADING),
			Spinner: true,
		}
	case query.StatusError:
		slog.Warn("tag cloud failed to load tags")
		return View{
			Phase:   PhaseError,
			Lang:    lang,
			Title:   tr.Get(lang, i18n.TAGCLOUD_TITLE),
			Message: tr.Get(lang, i18n.TAGCLOUD_ERROR),
		}
	}
	return c.RenderTags(adapter.TagsFromNames(res.Data, c.Policy), lang)
}

// RenderTags renders tags that already carry counts.
func (c *Component) RenderTags(tags []types.TagDto, lang string) View {
	tr := c.t()
	view := View{
		Lang:  lang,
		Title: tr.Get(lang, i18n.TAGCLOUD_TITLE),
	}
	if len(tags) == 0 {
		view.Phase = PhaseEmpty
		view.Message = tr.Get(lang, i18n.TAGCLOUD_EMPTY)
		return view
	}

	view.Phase = PhaseSuccess
	view.Items = Rank(tags)
	for i := range view.Items {
		if c.Selected != "" && view.Items[i].Name == c.Selected {
			view.Items[i].Selected = true
			view.Items[i].Style = SelectedStyle
		}
	}
	return view
}

func (c *Component) Click(name string) {
	if c.OnSelect != nil {
		c.OnSelect(name)
	}
}
