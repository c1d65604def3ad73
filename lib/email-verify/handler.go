package emailverify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"perf-track-backend/config"
	"perf-track-backend/db"
	emailverifystore "perf-track-backend/lib/email-verify/store"
	"perf-track-backend/lib/smtp"
	usersstore "perf-track-backend/lib/users/store"
	"perf-track-backend/lib/utils/apperr"
	dbmodels "perf-track-backend/models/db"
)

const daysToExpires = 14

type Provider interface {
	SendVerifyCode(email string) error
	VerifyCode(code string) error
}

var Instance Provider

func NewInstance(emailFrom string) Provider {
	return &impl{
		verifyStore: emailverifystore.NewInstance(db.DB),
		emailFrom:   emailFrom,
	}
}

type impl struct {
	verifyStore emailverifystore.Provider
	emailFrom   string
}

func (i impl) SendVerifyCode(email string) error {
	exist, err := i.verifyStore.Exist(email)
	if err != nil {
		return apperr.WrapDependency(err, "failed to check pending verifications")
	}
	if exist {
		return apperr.NewConflict("a verification for this email is already pending")
	}
	verifyData := dbmodels.EmailVerify{
		Email:         email,
		Code:          uuid.NewString(),
		DateGenerated: time.Now(),
		DateExpires:   time.Now().Add(time.Hour * 24 * daysToExpires),
	}
	err = i.verifyStore.Create(verifyData)
	if err != nil {
		return apperr.WrapDependency(err, "failed to store verification code")
	}
	message := fmt.Sprintf("Confirm your email: %s/api/v1/auth/verify-email?code=%s", config.Conf.Smtp.DomainForVerifyLink, verifyData.Code)
	err = smtp.Instance.SendEMail(i.emailFrom, email, message, "Email confirmation")
	if err != nil {
		return apperr.WrapDependency(err, "failed to send verification email")
	}
	return nil
}

func (i impl) VerifyCode(code string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		verifyStore := emailverifystore.NewInstance(tx)
		userStore := usersstore.NewInstance(tx)

		email, err := applyCode(code, verifyStore)
		if err != nil {
			return err
		}
		return markVerified(email, userStore)
	})
}

func applyCode(code string, verifyStore emailverifystore.Provider) (email string, err error) {
	verifyData, err := verifyStore.GetByCode(code)
	if err != nil {
		return "", apperr.WrapDependency(err, "failed to look up verification code")
	}
	if verifyData == nil {
		return "", apperr.NewNotFound("verification code not found")
	}
	if !verifyData.DateUsed.IsZero() {
		return "", apperr.NewConflict("verification code already used")
	}
	if verifyData.DateExpires.Before(time.Now()) {
		return "", apperr.NewConflict("verification code expired")
	}
	updMap := map[string]interface{}{
		"date_used": time.Now(),
	}
	err = verifyStore.UpdateByCode(code, updMap)
	if err != nil {
		log.WithField("email", verifyData.Email).WithError(err).Error("failed to mark verification code as used")
		return "", apperr.WrapDependency(err, "failed to apply verification code")
	}
	return verifyData.Email, nil
}

func markVerified(email string, userStore usersstore.Provider) error {
	logger := log.WithField("email", email)

	user, err := userStore.FindByEmail(email)
	if err != nil {
		logger.WithError(err).Error("email not verified, failed to load user")
		return apperr.WrapDependency(err, "failed to load user")
	}
	if user == nil {
		return apperr.NewNotFound("user not found")
	}
	updMap := map[string]interface{}{
		"verified": true,
	}
	err = userStore.Update(user.ID, updMap)
	if err != nil {
		logger.WithError(err).Error("failed to flag user as verified")
		return apperr.WrapDependency(err, "failed to update user")
	}
	return nil
}
