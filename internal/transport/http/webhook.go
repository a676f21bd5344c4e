package http

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go/twiml"

	"github.com/LuminoLuxx/whatsapp-orders-mvp/internal/app"
)

const maxWebhookBody = 64 << 10

// MessageHandler answers one inbound chat message.
type MessageHandler interface {
	HandleMessage(ctx context.Context, msg app.Message) (app.Reply, error)
}

// HandleTwilioWebhook serves Twilio's inbound WhatsApp webhook. The form fields
// Body, From and MessageSid feed the chat flow and the reply goes back as TwiML.
func HandleTwilioWebhook(svc MessageHandler, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid form body")
			return
		}

		msg := app.Message{
			Body:       r.PostForm.Get("Body"),
			From:       r.PostForm.Get("From"),
			MessageSID: r.PostForm.Get("MessageSid"),
		}
		reply, err := svc.HandleMessage(r.Context(), msg)
		if err != nil {
			logger.Error().Err(err).
				Str("request_id", RequestIDFromContext(r.Context())).
				Str("message_sid", msg.MessageSID).
				Msg("handle message")
		}

		writeTwiML(w, logger, reply.Text)
	})
}

func writeTwiML(w http.ResponseWriter, logger zerolog.Logger, text string) {
	doc, err := twiml.Messages([]twiml.Element{&twiml.MessagingMessage{Body: text}})
	if err != nil {
		logger.Error().Err(err).Msg("render twiml")
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
