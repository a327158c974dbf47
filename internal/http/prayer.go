package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

type PrayerRequestPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SendPrayerRequest relays the submission by email. Nothing is stored.
func (s *Server) SendPrayerRequest(w http.ResponseWriter, r *http.Request) {
	var req PrayerRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		WriteError(w, http.StatusBadRequest, "All fields are required.")
		return
	}
	if !strings.Contains(req.Email, "@") {
		WriteError(w, http.StatusBadRequest, "A valid email address is required.")
		return
	}
	if !s.Mailer.Enabled() {
		WriteError(w, http.StatusNotImplemented, "Prayer request relay is not configured on this server.")
		return
	}
	if err := s.Mailer.SendPrayerRequest(req.Name, req.Email, req.Message); err != nil {
		log.Printf("prayer request relay failed: %v", err)
		WriteError(w, http.StatusInternalServerError, "Failed to send prayer request. Please try again later.")
		return
	}
	WriteSuccess(w, http.StatusOK, nil, "Your prayer request has been sent.")
}
