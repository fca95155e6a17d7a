// Package notify renders and delivers the run's digest.
package notify

import (
	"html/template"
	"strings"

	"jobwatch/internal/models"
)

const noMatchesNotice = "<p>No new matching jobs.</p>"

var digestTmpl = template.Must(template.New("digest").Parse(
	`<h3>New matching jobs</h3><ul>
{{- range .}}
<li><a href='{{.URL}}'>{{.Title}}</a><br><small>Source: {{.Source}}</small></li>
{{- end}}
</ul>`))

// BuildDigest renders jobs as an HTML list in input order, one entry per job.
// It never fails; a template error degrades to the no-matches notice.
func BuildDigest(jobs []models.Job) string {
	if len(jobs) == 0 {
		return noMatchesNotice
	}
	var b strings.Builder
	if err := digestTmpl.Execute(&b, jobs); err != nil {
		return noMatchesNotice
	}
	return b.String()
}
