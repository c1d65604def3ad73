package authapimodels

import (
	"perf-track-backend/lib/utils/apperr"
)

type LoginData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginData) Validate() error {
	if r.Email == "" {
		return apperr.NewValidation("email is required")
	}
	if r.Password == "" {
		return apperr.NewValidation("password is required")
	}
	return nil
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
