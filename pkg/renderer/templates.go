package renderer

// layoutTemplate is the shared document shell. Every page kind renders into <main>
// through the kind dispatcher.
const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="{{.Site.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Spec.Title}}</title>
{{- if .Spec.Description}}
<meta name="description" content="{{.Spec.Description}}">
{{- end}}
<link rel="canonical" href="{{.Canonical}}">
<link rel="stylesheet" href="{{.Stylesheet}}">
</head>
<body>
{{template "site-nav" .}}
<main>
{{template "kind-dispatcher" .}}
</main>
{{template "page-links" .}}
{{- if .Site.Footer}}
<footer class="site-footer">{{.Site.Footer}}</footer>
{{- end}}
</body>
</html>
{{end}}`

const partialsTemplate = `{{define "site-nav"}}<header class="site-header">
<nav class="site-nav">
{{- if .Site.Name}}<a class="brand" href="/">{{.Site.Name}}</a>{{end}}
{{- range .Site.Nav}}<a href="{{.Href}}">{{.Label}}</a>{{end}}
</nav>
</header>{{end}}

{{define "page-links"}}{{if .Spec.Links}}<nav class="page-links">
<ul>
{{- range .Spec.Links}}
<li><a href="{{.Href}}">{{.Label}}</a></li>
{{- end}}
</ul>
</nav>{{end}}{{end}}

{{define "body"}}{{if .Body}}<div class="prose">
{{.Body}}</div>{{end}}{{end}}

{{define "features"}}{{if .Spec.Features}}<ul class="features">
{{- range .Spec.Features}}
<li>{{.}}</li>
{{- end}}
</ul>{{end}}{{end}}`

const contentTemplate = `{{define "render-content"}}<section class="content">
{{- if .Spec.Heading}}
<h1>{{.Spec.Heading}}</h1>
{{- end}}
{{template "body" .}}
{{template "features" .}}
</section>{{end}}`

// landingTemplate renders both hand-written landing pages and keyword variants.
const landingTemplate = `{{define "render-landing"}}<section class="hero">
<h1>{{.Spec.Hero.Headline}}</h1>
{{- if .Spec.Hero.Subline}}
<p class="subline">{{.Spec.Hero.Subline}}</p>
{{- end}}
{{- if .Spec.Hero.CTA}}
<a class="cta" href="#kontakt">{{.Spec.Hero.CTA}}</a>
{{- end}}
</section>
{{- if .Spec.Problems}}
<section class="problems">
<ul>
{{- range .Spec.Problems}}
<li>{{.}}</li>
{{- end}}
</ul>
</section>
{{- end}}
{{- with .Spec.Solution}}
<section class="solution">
<h2>{{.Headline}}</h2>
<p>{{.Text}}</p>
</section>
{{- end}}
{{template "body" .}}
{{template "features" .}}
{{- if .Spec.Steps}}
<section class="steps">
<ol>
{{- range .Spec.Steps}}
<li>{{.}}</li>
{{- end}}
</ol>
</section>
{{- end}}
{{- if .Spec.Trust}}
<section class="trust"><p>{{.Spec.Trust}}</p></section>
{{- end}}
{{- if .Spec.FinalCTA}}
<section class="cta-final" id="kontakt"><a class="cta" href="#kontakt">{{.Spec.FinalCTA}}</a></section>
{{- end}}{{end}}`

const pricingTemplate = `{{define "render-pricing"}}<section class="pricing">
{{- if .Spec.Heading}}
<h1>{{.Spec.Heading}}</h1>
{{- end}}
{{template "body" .}}
<div class="tiers">
{{- range .Spec.Tiers}}
<div class="tier">
<h2>{{.Name}}</h2>
{{- if .Price}}
<p class="price">{{.Price}}</p>
{{- end}}
<ul>
{{- range .Features}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- if .CTA}}
<a class="cta" href="#kontakt">{{.CTA}}</a>
{{- end}}
</div>
{{- end}}
</div>
</section>{{end}}`

const placeholderTemplate = `{{define "render-placeholder"}}<section class="placeholder">
{{- if .Spec.Heading}}
<h1>{{.Spec.Heading}}</h1>
{{- end}}
{{template "body" .}}
</section>{{end}}`

// dispatcherTemplate routes to the block selected by .Block.
const dispatcherTemplate = `{{define "kind-dispatcher"}}
{{- if eq .Block "render-landing"}}{{template "render-landing" .}}
{{- else if eq .Block "render-pricing"}}{{template "render-pricing" .}}
{{- else if eq .Block "render-placeholder"}}{{template "render-placeholder" .}}
{{- else}}{{template "render-content" .}}
{{- end}}{{end}}`

// allTemplates returns every template concatenated for parsing.
func allTemplates() string {
	return layoutTemplate +
		partialsTemplate +
		contentTemplate +
		landingTemplate +
		pricingTemplate +
		placeholderTemplate +
		dispatcherTemplate
}
