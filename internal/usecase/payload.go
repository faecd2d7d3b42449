package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Payload é o corpo do webhook já achatado em campo -> valor, preservando
// a ordem em que os campos chegaram. Valores vindos de form são strings;
// vindos de JSON podem ser números, listas ou objetos.
type Payload struct {
	keys   []string
	values map[string]any
}

func NewPayload() *Payload {
	return &Payload{values: make(map[string]any)}
}

func (p *Payload) Set(key string, value any) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *Payload) Keys() []string {
	return p.keys
}

func (p *Payload) Len() int {
	return len(p.keys)
}

// Get procura a chave exata e, se não achar, ignora maiúsculas/minúsculas.
func (p *Payload) Get(key string) (any, bool) {
	if v, ok := p.values[key]; ok {
		return v, true
	}
	for _, k := range p.keys {
		if strings.EqualFold(k, key) {
			return p.values[k], true
		}
	}
	return nil, false
}

// Has diz se algum dos campos está presente com valor não vazio.
func (p *Payload) Has(keys ...string) bool {
	for _, key := range keys {
		v, ok := p.Get(key)
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return true
	}
	return false
}

// String devolve o primeiro campo não vazio entre as chaves, sem espaços nas pontas.
func (p *Payload) String(keys ...string) string {
	return strings.TrimSpace(p.Text(keys...))
}

// Text é como String, mas devolve o valor exatamente como chegou.
// Campos de texto livre (comment) passam por aqui.
func (p *Payload) Text(keys ...string) string {
	for _, key := range keys {
		v, ok := p.Get(key)
		if !ok {
			continue
		}
		if s := toString(v); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// Float devolve o primeiro campo numérico entre as chaves.
func (p *Payload) Float(keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := p.Get(key)
		if !ok {
			continue
		}
		if f, ok := toFloat(v); ok {
			return f, true
		}
	}
	return 0, false
}

// DecodePayload interpreta o corpo como JSON quando o content type diz JSON,
// caindo para urlencoded se o JSON não for válido (o construtor de sites às
// vezes manda o header errado). Qualquer outro content type é urlencoded.
func DecodePayload(body []byte, contentType string) (*Payload, error) {
	if strings.Contains(strings.ToLower(contentType), "json") {
		p, err := decodeJSONObject(body)
		if err == nil {
			return p, nil
		}
		fp, formErr := decodeForm(body)
		if formErr != nil {
			return nil, newParseError(fmt.Sprintf("body is neither JSON (%v) nor form data (%v)", err, formErr))
		}
		return fp, nil
	}

	p, err := decodeForm(body)
	if err != nil {
		return nil, newParseError("invalid form data: " + err.Error())
	}
	return p, nil
}

func decodeJSONObject(body []byte) (*Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("json body is not an object")
	}

	p := NewPayload()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("json object key is not a string")
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		p.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after json object")
	}
	return p, nil
}

var errNoFormFields = errors.New("no key=value pair found")

// decodeForm segue url.ParseQuery, mas mantém a ordem dos campos, fica com
// o primeiro valor de chaves repetidas e tolera escapes quebrados ("50% off").
// Só falha quando nenhum par chave=valor aparece no corpo.
func decodeForm(body []byte) (*Payload, error) {
	p := NewPayload()
	raw := strings.TrimSpace(string(body))
	pairs := 0

	for raw != "" {
		var pair string
		pair, raw, _ = strings.Cut(raw, "&")
		if pair == "" {
			continue
		}
		k, v, hasValue := strings.Cut(pair, "=")
		if hasValue {
			pairs++
		}
		key := unescapeLenient(k)
		if _, exists := p.values[key]; exists {
			continue
		}
		p.Set(key, unescapeLenient(v))
	}

	if pairs == 0 {
		return nil, errNoFormFields
	}
	return p, nil
}

// unescapeLenient mantém o texto cru (com '+' virando espaço) quando o
// percent-encoding é inválido.
func unescapeLenient(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return strings.ReplaceAll(s, "+", " ")
	}
	return decoded
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), " ", "")
		s = strings.ReplaceAll(s, ",", ".")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
