package v1

import (
	"github.com/google/uuid"

	"github.com/pocketfolio/backend/internal/auth"
	"github.com/pocketfolio/backend/internal/models"
)

type Credentials struct {
	Email    string `json:"email" example:"jane@example.com"` // Email address of the user
	Password string `json:"password" example:"correct horse"` // Password, at least 8 characters
}

// Session is the result of a successful registration or login.
type Session struct {
	Token  string    `json:"token"`                                                 // Bearer token for the Authorization header
	UserID uuid.UUID `json:"userId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"` // ID of the user
	Email  string    `json:"email" example:"jane@example.com"`                      // Email address of the user
}

func newSession(user models.User) (Session, error) {
	token, err := auth.NewToken(tokenSecret, tokenLifetime, user.ID, user.Email)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:  token,
		UserID: user.ID,
		Email:  user.Email,
	}, nil
}

type SessionResponse struct {
	Data  *Session `json:"data"`  // The session, if the credentials were accepted
	Error *string  `json:"error"` // The error, if any occurred
}
