package bot

import (
	"encoding/json"
	"net/http"
)

// webhookRequest is an incoming chat message
type webhookRequest struct {
	Message string `json:"message"`
}

// webhookResponse is the bot's reply
type webhookResponse struct {
	Reply string `json:"reply"`
}

// WebhookHandler returns an HTTP handler that feeds incoming messages
// through the command router. Chat platforms post messages here.
func (b *Bot) WebhookHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req webhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request body"})
			return
		}

		reply := b.HandleCommand(r.Context(), req.Message)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(webhookResponse{Reply: reply})
	}
}
