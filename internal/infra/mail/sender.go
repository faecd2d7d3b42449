package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"gopkg.in/gomail.v2"
)

var alertTemplate = template.Must(template.New("alert").Parse(`<h2>{{.Subject}}</h2>
<table>
{{- range .Fields}}
  <tr><td><b>{{.Name}}</b></td><td>{{.Value}}</td></tr>
{{- end}}
</table>
`))

func NewEmailSender(host string, port int, user, password, from, to string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
	}
}

// SendAlert manda o alerta de um evento do CRM para a caixa da equipe comercial.
func (s *EmailSender) SendAlert(subject string, fields map[string]string) error {
	body, err := RenderAlert(subject, fields)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To)
	m.SetHeader("Subject", "[CRM] "+subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

// RenderAlert monta o HTML do alerta, com campos vazios omitidos e em ordem alfabética.
func RenderAlert(subject string, fields map[string]string) (string, error) {
	data := AlertEmailData{Subject: subject}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			continue
		}
		data.Fields = append(data.Fields, AlertField{Name: name, Value: value})
	}
	sort.Slice(data.Fields, func(i, j int) bool {
		return data.Fields[i].Name < data.Fields[j].Name
	})

	var body bytes.Buffer
	if err := alertTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}
