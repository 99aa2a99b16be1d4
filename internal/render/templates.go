package render

import (
	"bytes"
	"html/template"
)

var templates = template.Must(template.New("render").Parse(`
{{define "symbol"}}{{if .Image}}<img src="{{.Image}}" alt="Symbol" class="{{.Class}}-image" data-fallback="{{.Class}}-emoji" onerror="this.outerHTML='<span class=\''+this.dataset.fallback+'\'>📋</span>'">{{else}}<span class="{{.Class}}-emoji">{{.Emoji}}</span>{{end}}{{end}}

{{define "ballot"}}<table class="ballot"><tbody id="candidates-list">
{{- if not .Rows}}
<tr class="placeholder"><td colspan="4"><p>No candidates available yet.</p><p>Please contact the admin to add candidates.</p></td></tr>
{{- else}}{{range .Rows}}
<tr id="candidate-row-{{.ID}}" class="candidate-row{{if .Voted}} voted{{end}}">
<td>{{.Position}}</td>
<td><div class="candidate-info"><div class="candidate-details"><div class="candidate-name">{{.Name}}</div>{{if .Description}}<div class="candidate-party">{{.Description}}</div>{{end}}<div class="vote-count-display">Votes: {{.VoteCount}}</div></div></div></td>
<td><div class="symbol-container">{{.Symbol}}</div></td>
<td><form method="post" action="/ballot/select?id={{.ID}}"><button class="vote-btn" type="submit"{{if not $.Enabled}} disabled{{end}}>VOTE</button></form></td>
</tr>{{end}}{{end}}
</tbody></table>
{{- if .Confirmed}}
<div id="vote-confirmation" class="vote-confirmation">Your vote has been recorded. Thank you for voting!</div>
{{- end}}{{end}}

{{define "confirmation"}}<div class="confirm-dialog" data-candidate="{{.ID}}">
<p>Are you sure you want to vote for {{.Name}}? This action cannot be undone.</p>
<form method="post" action="/ballot/confirm"><button class="btn-primary" type="submit">Confirm</button></form>
<form method="post" action="/ballot/cancel"><button class="btn-secondary" type="submit">Cancel</button></form>
</div>{{end}}

{{define "admin-candidates"}}<div id="admin-candidates-list">
{{- if not .}}
<p class="placeholder">No candidates added yet.</p>
{{- else}}{{range .}}
<div class="candidate-card" id="candidate-card-{{.ID}}">
<div class="candidate-card-info">{{.Symbol}}<div class="candidate-card-details"><h4>{{.Name}}</h4>{{if .Description}}<p>{{.Description}}</p>{{end}}<p>Votes: {{.VoteCount}}</p></div></div>
<div class="candidate-card-actions"><a class="icon-btn btn-primary" href="/admin/candidates/{{.ID}}">Edit</a><button class="icon-btn btn-danger" data-delete="/admin/candidates/{{.ID}}">Delete</button></div>
</div>{{end}}{{end}}
</div>{{end}}

{{define "results"}}<div id="results-chart">
{{- if not .Total}}
<p class="placeholder">No votes have been cast yet.</p>
{{- else}}{{range .Shares}}
<div class="result-bar"><div class="result-header"><span class="result-name">{{.Name}}</span><span class="result-count">{{.Count}} votes</span></div><div class="result-progress"><div class="result-fill" style="width: {{.Label}}%">{{.Label}}%</div></div></div>{{end}}{{end}}
</div>{{end}}

{{define "vote-log"}}<table class="vote-log"><tbody id="detailed-votes-list">
{{- if not .}}
<tr class="placeholder"><td colspan="3">No votes recorded yet.</td></tr>
{{- else}}{{range .}}
<tr><td>{{.IP}}</td><td><strong>{{.Candidate}}</strong></td><td>{{.When}}</td></tr>{{end}}{{end}}
</tbody></table>{{end}}

{{define "notice"}}{{if .Message}}<div class="notice notice-{{.Level}}" role="alert">{{.Message}}</div>{{end}}{{end}}
`))

// execute never fails for well-typed input; an execution error degrades to
// an empty fragment instead of escaping a renderer.
func execute(name string, data any) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return ""
	}
	return buf.String()
}
