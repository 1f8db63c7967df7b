// Package file handles uploaded identity documents: describing them for
// constraint checks and storing them on local disk or S3.
//
// Describe turns a multipart upload into a Descriptor. The media type is
// sniffed from the first 512 bytes of content, so a GIF renamed to .png is
// still reported as image/gif:
//
//	d, err := file.Describe(fh)
//	if err != nil {
//		return err
//	}
//	// d.Size, d.MediaType feed the upload constraint checker
//
// Storage has two implementations selected by Config.Driver:
//
//	storage, err := file.NewStorage(ctx, cfg) // "local" or "s3"
//	f, err := storage.Save(ctx, fh, "users/"+id+"/document1.png")
//	url := storage.URL(f.Key)
//
// LocalStorage confines every key to its base directory. S3Storage works with
// AWS S3 and compatible services (MinIO) and maps SDK errors onto the package
// sentinels (ErrFileNotFound, ErrAccessDenied, ErrBucketNotFound, ...).
package file
