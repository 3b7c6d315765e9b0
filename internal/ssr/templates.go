package ssr

import (
	"html/template"
)

const documentTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="app">{{.Markup}}</div>
<script>window.__APOLLO_STATE__ = {{.State}};</script>
<script src="/static/bundle.js" defer></script>
</body>
</html>
`

const feedTemplate = `<main class="feed">
<h1>Messages</h1>
{{if .Viewer}}<p class="viewer">Signed in as {{.Viewer.Username}}</p>{{else}}<p class="viewer"><a href="/signin">Sign in</a> to post</p>{{end}}
<ul>
{{range .Messages}}<li data-id="{{.ID}}"><span class="author">{{.Username}}</span> <time datetime="{{.CreatedAt}}">{{.CreatedAt}}</time><p>{{.Text}}</p></li>
{{end}}</ul>
{{if .HasNextPage}}<button class="more">More</button>{{end}}
</main>
`

const accountTemplate = `<main class="account">
{{if .Viewer}}<h1>{{.Viewer.Username}}</h1>
<dl>
<dt>Email</dt><dd>{{.Viewer.Email}}</dd>
{{if .Viewer.Role}}<dt>Role</dt><dd>{{.Viewer.Role}}</dd>{{end}}
</dl>{{else}}<h1>Account</h1>
<p>You are signed out. <a href="/signin">Sign in</a>.</p>{{end}}
</main>
`

func parseTemplates() *template.Template {
	t := template.Must(template.New("document").Parse(documentTemplate))
	template.Must(t.New("feed").Parse(feedTemplate))
	template.Must(t.New("account").Parse(accountTemplate))
	return t
}
