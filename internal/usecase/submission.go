package usecase

import (
	"strings"
)

type SubmissionKind string

const (
	KindOrder SubmissionKind = "order"
	KindQuiz  SubmissionKind = "quiz"
	KindLead  SubmissionKind = "lead"
)

// Prefixo reservado dos campos pergunta/resposta de quiz.
const QuizFieldPrefix = "q_"

var (
	orderNumberKeys   = []string{"orderid", "order_id", "order_number"}
	paymentStatusKeys = []string{"payment", "payment_status", "paymentstatus"}
	productsKey       = "products"
	formNameKeys      = []string{"formname", "form_name"}
	formIDKeys        = []string{"formid", "form_id"}
)

// Classify decide o tipo da submissão. A ordem importa: pedido vence quiz,
// que vence lead simples.
func Classify(p *Payload) SubmissionKind {
	if p.Has(orderNumberKeys...) ||
		p.Has(paymentStatusKeys...) ||
		p.Has(productsKey) ||
		formMentions(p, "order") {
		return KindOrder
	}

	if formMentions(p, "quiz") || len(quizFields(p)) > 0 {
		return KindQuiz
	}

	return KindLead
}

func formMentions(p *Payload, token string) bool {
	form := strings.ToLower(p.String(formIDKeys...) + " " + p.String(formNameKeys...))
	return strings.Contains(form, token)
}

// formLabel é o nome do formulário, depois o id, depois o fallback.
func formLabel(p *Payload, fallback string) string {
	if name := p.String(formNameKeys...); name != "" {
		return name
	}
	if id := p.String(formIDKeys...); id != "" {
		return id
	}
	return fallback
}

type quizAnswer struct {
	Question string
	Answer   string
}

func quizFields(p *Payload) []quizAnswer {
	var answers []quizAnswer
	for _, key := range p.Keys() {
		if len(key) <= len(QuizFieldPrefix) || !strings.EqualFold(key[:len(QuizFieldPrefix)], QuizFieldPrefix) {
			continue
		}
		question := strings.ReplaceAll(key[len(QuizFieldPrefix):], "_", " ")
		answers = append(answers, quizAnswer{
			Question: strings.TrimSpace(question),
			Answer:   p.String(key),
		})
	}
	return answers
}

// IsTestPing reconhece a requisição de verificação que o construtor de sites
// manda ao cadastrar a URL do webhook: só o campo "test".
func IsTestPing(p *Payload) bool {
	if p.Len() != 1 {
		return false
	}
	_, ok := p.Get("test")
	return ok
}
