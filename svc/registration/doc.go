// Package registration stores intake submissions as users.
//
// Register and Update always run the authoritative intake engine first; a
// rejected submission returns *ValidationFailedError carrying the full
// result. Accepted uploads are written to file.Storage before the database
// transaction and are deleted again if the transaction fails. After an update
// commits, the replaced objects are deleted.
//
//	svc := registration.NewService(engine, registration.NewPgStore(pool), storage,
//		registration.WithLogger(log),
//	)
//	user, err := svc.Register(ctx, registration.Input{Fields: fields, Files: files})
//	if vf, ok := registration.AsValidationFailed(err); ok {
//		render(vf.Result.FieldErrors(), vf.Result.FileErrors())
//	}
package registration
