package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"
)

const WebhookSecretHeader = "X-Webhook-Secret"

// RequireSecret protege o webhook com um segredo compartilhado. Segredo
// vazio desliga a checagem.
func RequireSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(WebhookSecretHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
				log.Printf("⚠️ [WEBHOOK] segredo inválido vindo de %s", r.RemoteAddr)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"success":false,"error":"invalid webhook secret","code":"UNAUTHORIZED"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
