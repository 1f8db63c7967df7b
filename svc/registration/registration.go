package registration

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"github.com/proclimb/minisystem/svc/intake"
)

// User is a registered person with their address and identity documents.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Kana      string     `json:"kana"`
	BirthDate time.Time  `json:"birth_date"`
	Tel       string     `json:"tel"`
	Email     string     `json:"email"`
	Address   Address    `json:"address"`
	Documents []Document `json:"documents"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Address struct {
	PostalCode string `json:"postal_code"`
	Prefecture string `json:"prefecture"`
	CityTown   string `json:"city_town"`
	Building   string `json:"building"`
}

// Document is a stored identity document. URL is filled on read.
type Document struct {
	Slot      string    `json:"slot"`
	Key       string    `json:"-"`
	Filename  string    `json:"filename"`
	MediaType string    `json:"media_type"`
	Size      int64     `json:"size"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"uploaded_at"`
}

// Document returns the document stored in slot.
func (u *User) Document(slot string) (Document, bool) {
	for _, d := range u.Documents {
		if d.Slot == slot {
			return d, true
		}
	}
	return Document{}, false
}

// Input is one submission of the intake form.
// Files maps an upload slot to the chosen file; absent slots mean no file.
type Input struct {
	Fields intake.Submission
	Files  map[string]*multipart.FileHeader
}

func (in Input) applyTo(u *User) {
	f := in.Fields
	u.Name = f.Get(intake.FieldName)
	u.Kana = f.Get(intake.FieldKana)
	u.Tel = f.Get(intake.FieldTel)
	u.Email = f.Get(intake.FieldEmail)
	u.Address = Address{
		PostalCode: f.Get(intake.FieldPostalCode),
		Prefecture: f.Get(intake.KeyPrefecture),
		CityTown:   f.Get(intake.KeyCityTown),
		Building:   f.Get(intake.KeyBuilding),
	}
}
