package http

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go/client"
)

const twilioSignatureHeader = "X-Twilio-Signature"

// RequireTwilioSignature rejects requests whose X-Twilio-Signature does not match
// the form parameters signed with authToken. publicBaseURL is the scheme and host
// Twilio was configured with; the request URI is appended to it.
func RequireTwilioSignature(authToken, publicBaseURL string, logger zerolog.Logger) func(http.Handler) http.Handler {
	validator := client.NewRequestValidator(authToken)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)
			if err := r.ParseForm(); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid form body")
				return
			}

			params := make(map[string]string, len(r.PostForm))
			for key, values := range r.PostForm {
				if len(values) > 0 {
					params[key] = values[0]
				}
			}

			url := publicBaseURL + r.URL.RequestURI()
			if !validator.Validate(url, params, r.Header.Get(twilioSignatureHeader)) {
				logger.Warn().
					Str("request_id", RequestIDFromContext(r.Context())).
					Str("url", url).
					Msg("twilio signature rejected")
				writeError(w, http.StatusForbidden, codeForbidden, "invalid signature")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
