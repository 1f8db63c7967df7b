package intake

// Error keys of a Result. Birth date and address errors cover several inputs.
const (
	FieldName       = "name"
	FieldKana       = "kana"
	FieldBirthDate  = "birth_date"
	FieldPostalCode = "postal_code"
	FieldAddress    = "address"
	FieldTel        = "tel"
	FieldEmail      = "email"
)

// Submission input keys that differ from their error key.
const (
	KeyBirthYear  = "birth_year"
	KeyBirthMonth = "birth_month"
	KeyBirthDay   = "birth_day"
	KeyPrefecture = "prefecture"
	KeyCityTown   = "city_town"
	KeyBuilding   = "building"
)

// Upload slots.
const (
	SlotDocument1 = "document1"
	SlotDocument2 = "document2"
)

// Slots lists the upload slots in display order.
var Slots = []string{SlotDocument1, SlotDocument2}

// Fields lists the error keys in display order.
var Fields = []string{
	FieldName,
	FieldKana,
	FieldBirthDate,
	FieldPostalCode,
	FieldAddress,
	FieldTel,
	FieldEmail,
}

// Keys lists every submission input key.
var Keys = []string{
	FieldName,
	FieldKana,
	KeyBirthYear,
	KeyBirthMonth,
	KeyBirthDay,
	FieldPostalCode,
	KeyPrefecture,
	KeyCityTown,
	KeyBuilding,
	FieldTel,
	FieldEmail,
}

// Submission maps input keys to raw form values.
type Submission map[string]string

// Get returns the raw value for key, or "" when absent.
func (s Submission) Get(key string) string {
	if s == nil {
		return ""
	}
	return s[key]
}
