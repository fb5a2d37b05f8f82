package tagcloud

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

var htmlTemplate = template.Must(template.New("tagcloud").Parse(`<section class="tag-cloud" data-phase="{{.Phase}}" lang="{{.Lang}}">
<h3 class="tag-cloud__title">{{.Title}}</h3>
{{- if .Spinner}}
<div class="tag-cloud__loading"><span class="spinner" aria-hidden="true"></span><span>{{.Message}}</span></div>
{{- else if .Items}}
<div class="tag-cloud__tags">
{{- range .Items}}
<button type="button" class="tag {{.Style.Class}}" data-tag="{{.Name}}" data-tier="{{.Tier}}"{{if .Selected}} aria-pressed="true"{{end}}>{{.Name}}</button>
{{- end}}
</div>
{{- else}}
<p class="tag-cloud__notice">{{.Message}}</p>
{{- end}}
</section>
`))

func (v View) WriteHTML(w io.Writer) error {
	return htmlTemplate.Execute(w, v)
}

var textMarkers = map[Tier]string{
	TierTop:  "###",
	TierMid:  "##",
	TierLow:  "#",
	TierBase: "·",
}

// WriteText renders the view for a terminal, one tag per line.
func (v View) WriteText(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(v.Title)
	sb.WriteByte('\n')

	switch {
	case v.Spinner:
		fmt.Fprintf(&sb, "... %s\n", v.Message)
	case len(v.Items) == 0:
		fmt.Fprintf(&sb, "%s\n", v.Message)
	default:
		for _, item := range v.Items {
			marker := textMarkers[item.Tier]
			if item.Selected {
				marker = ">>"
			}
			fmt.Fprintf(&sb, "%-3s %s (%d)\n", marker, item.Name, item.Count)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
