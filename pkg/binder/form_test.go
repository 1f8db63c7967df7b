package binder_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proclimb/minisystem/pkg/binder"
)

type intakeForm struct {
	Name      string                `form:"name"`
	Tel       string                `form:"tel"`
	Agree     bool                  `form:"agree"`
	Tags      []string              `form:"tag"`
	Skipped   string                `form:"-"`
	Document1 *multipart.FileHeader `file:"document1"`
	Document2 *multipart.FileHeader `file:"document2"`
}

func multipartRequest(t *testing.T, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for k, content := range files {
		fw, err := mw.CreateFormFile(k, k+".png")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/users", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded keeps surrounding whitespace", func(t *testing.T) {
		t.Parallel()
		form := url.Values{"name": {" 山田 太郎 "}, "tel": {"03-1234-5678"}, "agree": {"on"}, "tag": {"a", "b"}, "Skipped": {"x"}}
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got intakeForm
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, " 山田 太郎 ", got.Name)
		assert.Equal(t, "03-1234-5678", got.Tel)
		assert.True(t, got.Agree)
		assert.Equal(t, []string{"a", "b"}, got.Tags)
		assert.Empty(t, got.Skipped)
		assert.Nil(t, got.Document1)
	})

	t.Run("multipart binds values and files", func(t *testing.T) {
		t.Parallel()
		req := multipartRequest(t,
			map[string]string{"name": "山田太郎"},
			map[string][]byte{"document1": []byte("\x89PNG\r\n\x1a\n")},
		)

		var got intakeForm
		require.NoError(t, binder.Form()(req, &got))
		assert.Equal(t, "山田太郎", got.Name)
		require.NotNil(t, got.Document1)
		assert.Equal(t, "document1.png", got.Document1.Filename)
		assert.Nil(t, got.Document2)
	})

	t.Run("json is not applicable", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")

		var got intakeForm
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrBinderNotApplicable)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/users", nil)

		var got intakeForm
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrMissingContentType)
	})

	t.Run("oversized body", func(t *testing.T) {
		t.Parallel()
		body := "name=" + strings.Repeat("x", 4096)
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		req.Body = http.MaxBytesReader(rec, req.Body, 512)

		var got intakeForm
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrRequestTooLarge)
	})

	t.Run("invalid int value", func(t *testing.T) {
		t.Parallel()
		type target struct {
			Year int `form:"birth_year"`
		}
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("birth_year=abc"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var got target
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrInvalidForm)
	})

	t.Run("non-pointer target", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/users", io.NopCloser(strings.NewReader("name=x")))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		assert.ErrorIs(t, binder.Form()(req, intakeForm{}), binder.ErrInvalidForm)
	})
}
