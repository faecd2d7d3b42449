package mail

type AlertField struct {
	Name  string
	Value string
}

type AlertEmailData struct {
	Subject string
	Fields  []AlertField
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       string
}
