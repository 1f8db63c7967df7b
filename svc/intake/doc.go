// Package intake validates personal-data submissions: name, phonetic name,
// birth date, postal code and address, phone, email and two optional
// identity-document uploads.
//
// Every field is an ordered chain of rules; the first failing rule is the
// field's only error. Fields are evaluated independently, so a Result lists
// every problem at once.
//
//	engine := intake.NewEngine(directory,
//		intake.WithCityMatch(intake.CityMatchContains),
//		intake.WithLookupTimeout(3*time.Second),
//	)
//	res := engine.Validate(ctx, intake.ModeCreate, submission, uploads)
//	if !res.OK() {
//		render(res.FieldErrors(), res.FileErrors())
//	}
//
// The address check compares the prefecture and city against the postal code
// directory. A directory that has no record, errors, times out or panics
// yields a postal_code error of kind validator.KindUnverifiable with code
// "postal_code.not_found" or "postal_code.lookup_failed". A record that
// disagrees yields an address error of kind validator.KindInconsistent.
//
// Mode only toggles the birth date: ModeEdit skips it entirely.
package intake
