package binder

import (
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"reflect"
)

// DefaultMaxMemory is how much of a multipart body is kept in memory before
// spilling file parts to disk.
const DefaultMaxMemory = 10 << 20

var fileHeaderType = reflect.TypeOf((*multipart.FileHeader)(nil))

// Form binds application/x-www-form-urlencoded and multipart/form-data
// bodies. Fields tagged `form:"name"` receive values, fields tagged
// `file:"name"` of type *multipart.FileHeader or []*multipart.FileHeader
// receive uploads. Other content types report ErrBinderNotApplicable.
//
//	type registerRequest struct {
//		Name      string                `form:"name"`
//		Tel       string                `form:"tel"`
//		Document1 *multipart.FileHeader `file:"document1"`
//	}
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return ErrMissingContentType
		}
		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
		}

		var (
			values map[string][]string
			files  map[string][]*multipart.FileHeader
		)

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return formError(err)
			}
			values = r.PostForm

		case "multipart/form-data":
			if params["boundary"] == "" {
				return fmt.Errorf("%w: missing boundary", ErrInvalidForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return formError(err)
			}
			values = r.MultipartForm.Value
			files = r.MultipartForm.File

		default:
			return ErrBinderNotApplicable
		}

		return bindForm(v, values, files)
	}
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit %d bytes", ErrRequestTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %v", ErrInvalidForm, err)
}

func bindForm(v any, values map[string][]string, files map[string][]*multipart.FileHeader) error {
	rv, err := structTarget(v, ErrInvalidForm)
	if err != nil {
		return err
	}
	rt := rv.Type()

	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		if name, ok := tagName(sf, "form"); ok {
			if vals := values[name]; len(vals) > 0 {
				if err := setFieldValue(field, vals); err != nil {
					return fmt.Errorf("%w: field %s: %v", ErrInvalidForm, sf.Name, err)
				}
			}
			continue
		}

		if name, ok := tagName(sf, "file"); ok {
			headers := files[name]
			if len(headers) == 0 {
				continue
			}
			switch {
			case sf.Type == fileHeaderType:
				field.Set(reflect.ValueOf(headers[0]))
			case sf.Type.Kind() == reflect.Slice && sf.Type.Elem() == fileHeaderType:
				field.Set(reflect.ValueOf(headers))
			default:
				return fmt.Errorf("%w: field %s: unsupported file field type %s", ErrInvalidForm, sf.Name, sf.Type)
			}
		}
	}
	return nil
}
