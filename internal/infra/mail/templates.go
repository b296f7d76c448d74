package mail

import "text/template"

type magicLinkData struct {
	Name     string
	LoginURL string
}

type orderConfirmationData struct {
	Name         string
	PackageName  string
	Amount       int64
	DashboardURL string
}

var magicLinkTemplate = template.Must(template.New("magic_link").Parse(`
<p>Hi {{.Name}},</p>
<p>Your WeTrain EducationTech account has been created. Sign in with the
link below — no password needed:</p>
<p><a href="{{.LoginURL}}">Sign in to your dashboard</a></p>
<p>— Team WeTrain</p>
`))

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Parse(`
<p>Hi {{.Name}},</p>
<p>We received your payment of ৳{{.Amount}} for <strong>{{.PackageName}}</strong>.</p>
<p>Your order is completed — everything is available in your
<a href="{{.DashboardURL}}">dashboard</a>.</p>
<p>— Team WeTrain</p>
`))
