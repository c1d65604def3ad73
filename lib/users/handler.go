package usershandler

import (
	log "github.com/sirupsen/logrus"

	"perf-track-backend/db"
	emailverify "perf-track-backend/lib/email-verify"
	usersstore "perf-track-backend/lib/users/store"
	"perf-track-backend/lib/utils/apperr"
	authutils "perf-track-backend/lib/utils/auth-utils"
	"perf-track-backend/models"
	userapimodels "perf-track-backend/models/api/user"
	dbmodels "perf-track-backend/models/db"
)

type Provider interface {
	Register(data userapimodels.RegisterData) (id string, err error)
	GetByID(id string) (item userapimodels.UserView, err error)
	List() (list []userapimodels.UserView, err error)
	UpdateProfile(id string, patch userapimodels.UserPatch) (item userapimodels.UserView, err error)
	ChangeRole(id string, role models.UserRole) error
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

func (i impl) Register(data userapimodels.RegisterData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	exist, err := i.store.ExistByEmail(data.Email)
	if err != nil {
		return "", apperr.WrapDependency(err, "failed to check email")
	}
	if exist {
		return "", apperr.NewConflict("a user with this email already exists")
	}
	rec := dbmodels.User{
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		Password:  authutils.GetMD5Hash(data.Password),
		Role:      models.StaffRole,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", apperr.WrapDependency(err, "failed to create user")
	}
	// account creation triggers the verification mail, a send failure is
	// not fatal for the registration itself
	if sendErr := emailverify.Instance.SendVerifyCode(data.Email); sendErr != nil {
		log.WithField("email", data.Email).WithError(sendErr).Error("failed to send verification email")
	}
	return id, nil
}

func (i impl) GetByID(id string) (item userapimodels.UserView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return item, apperr.WrapDependency(err, "failed to load user")
	}
	if rec == nil {
		return item, apperr.NewNotFound("user not found")
	}
	return rec.ToModel(), nil
}

func (i impl) List() (list []userapimodels.UserView, err error) {
	recs, err := i.store.List()
	if err != nil {
		return nil, apperr.WrapDependency(err, "failed to list users")
	}
	list = make([]userapimodels.UserView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, rec.ToModel())
	}
	return list, nil
}

func (i impl) UpdateProfile(id string, patch userapimodels.UserPatch) (item userapimodels.UserView, err error) {
	updMap := map[string]interface{}{}
	if patch.FirstName != nil {
		updMap["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updMap["last_name"] = *patch.LastName
	}
	if patch.ContractStart != nil {
		updMap["contract_start"] = *patch.ContractStart
	}
	if patch.ContractEnd != nil {
		updMap["contract_end"] = *patch.ContractEnd
	}
	if len(updMap) != 0 {
		err = i.store.Update(id, updMap)
		if err != nil {
			return item, apperr.WrapDependency(err, "failed to update user")
		}
	}
	return i.GetByID(id)
}

func (i impl) ChangeRole(id string, role models.UserRole) error {
	if !role.IsValid() {
		return apperr.NewValidation("role must be staff, supervisor or admin")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return apperr.WrapDependency(err, "failed to load user")
	}
	if rec == nil {
		return apperr.NewNotFound("user not found")
	}
	err = i.store.Update(id, map[string]interface{}{"role": role})
	if err != nil {
		return apperr.WrapDependency(err, "failed to change role")
	}
	return nil
}
