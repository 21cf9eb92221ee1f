package mailing

import (
	"bytes"
	"html/template"
)

var requestStatusTemplate = template.Must(template.New("request_status").Parse(
	`<p>Hello {{.DonorName}},</p>
<p>Your donation of <b>{{.ItemCount}} x {{.ItemName}}</b> has been <b>{{.Status}}</b> by {{.OrganizationName}}.</p>
{{if .AppURL}}<p><a href="{{.AppURL}}">Open your dashboard</a></p>{{end}}`))

type RequestStatusData struct {
	DonorName        string
	ItemName         string
	ItemCount        int
	Status           string
	OrganizationName string
	AppURL           string
}

func RenderRequestStatus(data RequestStatusData) (string, error) {
	var buf bytes.Buffer
	if err := requestStatusTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
