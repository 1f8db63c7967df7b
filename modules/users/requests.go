package users

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/proclimb/minisystem/handler"
	"github.com/proclimb/minisystem/pkg/binder"
	"github.com/proclimb/minisystem/svc/intake"
	"github.com/proclimb/minisystem/svc/intake/advisory"
	"github.com/proclimb/minisystem/svc/registration"
)

// userForm is the multipart intake form.
type userForm struct {
	Name       string                `form:"name"`
	Kana       string                `form:"kana"`
	BirthYear  string                `form:"birth_year"`
	BirthMonth string                `form:"birth_month"`
	BirthDay   string                `form:"birth_day"`
	PostalCode string                `form:"postal_code"`
	Prefecture string                `form:"prefecture"`
	CityTown   string                `form:"city_town"`
	Building   string                `form:"building"`
	Tel        string                `form:"tel"`
	Email      string                `form:"email"`
	Document1  *multipart.FileHeader `file:"document1"`
	Document2  *multipart.FileHeader `file:"document2"`
}

func (f userForm) input() registration.Input {
	in := registration.Input{
		Fields: intake.Submission{
			intake.FieldName:       f.Name,
			intake.FieldKana:       f.Kana,
			intake.KeyBirthYear:    f.BirthYear,
			intake.KeyBirthMonth:   f.BirthMonth,
			intake.KeyBirthDay:     f.BirthDay,
			intake.FieldPostalCode: f.PostalCode,
			intake.KeyPrefecture:   f.Prefecture,
			intake.KeyCityTown:     f.CityTown,
			intake.KeyBuilding:     f.Building,
			intake.FieldTel:        f.Tel,
			intake.FieldEmail:      f.Email,
		},
		Files: map[string]*multipart.FileHeader{},
	}
	if f.Document1 != nil {
		in.Files[intake.SlotDocument1] = f.Document1
	}
	if f.Document2 != nil {
		in.Files[intake.SlotDocument2] = f.Document2
	}
	return in
}

type userPath struct {
	ID string `path:"id"`
}

// editForm is userForm addressed to an existing user. Path binding runs
// first, form binding fills the rest.
type editForm struct {
	ID         string                `path:"id"`
	Name       string                `form:"name"`
	Kana       string                `form:"kana"`
	PostalCode string                `form:"postal_code"`
	Prefecture string                `form:"prefecture"`
	CityTown   string                `form:"city_town"`
	Building   string                `form:"building"`
	Tel        string                `form:"tel"`
	Email      string                `form:"email"`
	Document1  *multipart.FileHeader `file:"document1"`
	Document2  *multipart.FileHeader `file:"document2"`
}

func (f editForm) input() registration.Input {
	return userForm{
		Name:       f.Name,
		Kana:       f.Kana,
		PostalCode: f.PostalCode,
		Prefecture: f.Prefecture,
		CityTown:   f.CityTown,
		Building:   f.Building,
		Tel:        f.Tel,
		Email:      f.Email,
		Document1:  f.Document1,
		Document2:  f.Document2,
	}.input()
}

// advisoryRequest is the body of /users/validate. DataStar clients send the
// same shape as signals; extra signals such as "errors" are ignored.
type advisoryRequest struct {
	Edit    bool                       `json:"edit"`
	Fields  map[string]string          `json:"fields"`
	Uploads map[string]advisory.Upload `json:"uploads"`
}

var jsonBinder = binder.JSON()

// bindAdvisory reads DataStar signals or a JSON body.
func bindAdvisory(r *http.Request, v any) error {
	if handler.IsDataStar(r) {
		if err := handler.ReadSignals(r, v); err != nil {
			return errors.Join(binder.ErrInvalidJSON, err)
		}
		return nil
	}
	if err := jsonBinder(r, v); err != nil {
		if errors.Is(err, binder.ErrBinderNotApplicable) {
			return binder.ErrUnsupportedMediaType
		}
		return err
	}
	return nil
}
