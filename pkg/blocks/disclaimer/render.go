package disclaimer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/russross/blackfriday"
)

const blockTemplate = `<div class="disclaimer-block" style="color: {{.TextColor}}; background-color: {{.BackgroundColor}}; padding: 16px; text-align: center; font-size: 14px;">` +
	`<p class="disclaimer-text">Paid for by {{.PaidForBy}} | PAC ID: {{.PacID}}</p>` +
	`{{with .Note}}<div class="disclaimer-note">{{.}}</div>{{end}}` +
	`</div>`

var tmpl = template.Must(template.New("disclaimer").Parse(blockTemplate))

type view struct {
	PaidForBy       string
	PacID           string
	TextColor       template.CSS
	BackgroundColor template.CSS
	Note            template.HTML
}

const (
	noteHTMLFlags  = blackfriday.HTML_SKIP_HTML | blackfriday.HTML_SAFELINK | blackfriday.HTML_HREF_TARGET_BLANK
	noteExtensions = blackfriday.EXTENSION_AUTOLINK | blackfriday.EXTENSION_STRIKETHROUGH | blackfriday.EXTENSION_NO_INTRA_EMPHASIS
)

func renderNote(md string) template.HTML {
	if md == "" {
		return ""
	}
	out := blackfriday.Markdown([]byte(md), blackfriday.HtmlRenderer(noteHTMLFlags, "", ""), noteExtensions)
	return template.HTML(out) //nolint:gosec // raw HTML is skipped by the renderer
}

// Render turns props into markup. Values are not validated; colors go into
// the style attribute as given.
func Render(p Props) (string, error) {
	v := view{
		PaidForBy:       p.PaidForBy,
		PacID:           p.PacID,
		TextColor:       template.CSS(p.TextColor),       //nolint:gosec
		BackgroundColor: template.CSS(p.BackgroundColor), //nolint:gosec
		Note:            renderNote(p.Note),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("rendering disclaimer: %w", err)
	}
	return buf.String(), nil
}
