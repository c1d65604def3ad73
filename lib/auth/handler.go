package authhandler

import (
	"perf-track-backend/db"
	emailverify "perf-track-backend/lib/email-verify"
	usersstore "perf-track-backend/lib/users/store"
	"perf-track-backend/lib/utils/apperr"
	authutils "perf-track-backend/lib/utils/auth-utils"
	authapimodels "perf-track-backend/models/api/auth"
)

type Provider interface {
	Login(email, password string) (resp authapimodels.TokenResponse, err error)
	VerifyEmail(code string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) Login(email, password string) (resp authapimodels.TokenResponse, err error) {
	user, err := i.store.FindByEmail(email)
	if err != nil {
		return resp, apperr.WrapDependency(err, "failed to load user")
	}
	if user == nil {
		return resp, apperr.NewNotFound("invalid email or password")
	}
	if authutils.GetMD5Hash(password) != user.Password {
		return resp, apperr.NewNotFound("invalid email or password")
	}
	accessToken, err := authutils.GetToken(user.ID, user.GetFullName(), user.Role)
	if err != nil {
		return resp, apperr.WrapDependency(err, "failed to sign access token")
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.GetFullName())
	if err != nil {
		return resp, apperr.WrapDependency(err, "failed to sign refresh token")
	}
	return authapimodels.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (i impl) VerifyEmail(code string) error {
	return emailverify.Instance.VerifyCode(code)
}
