package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumanthd032/DataCanvas/internal/ui/features"
)

func multipartBody(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("database", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadValidDatabase(t *testing.T) {
	fx := features.SetupFixture(t)
	h := NewHandlers(fx.Sessions, fx.SessionStore)

	body, contentType := multipartBody(t, "sales.db", features.DBBytes(t))
	req := features.AuthedRequest(t, fx, http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	sess := fx.Sessions.Get(features.TestSessionID)
	assert.True(t, sess.Open())
	assert.Equal(t, "sales.db", sess.Name())
}

func TestUploadRejectsMalformedFile(t *testing.T) {
	fx := features.SetupFixture(t)
	h := NewHandlers(fx.Sessions, fx.SessionStore)

	body, contentType := multipartBody(t, "junk.db", []byte("this is not sqlite"))
	req := features.AuthedRequest(t, fx, http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "not+a+valid+SQLite+database")

	sess := fx.Sessions.Get(features.TestSessionID)
	assert.False(t, sess.Open())
}

func TestUploadStripsDirectoryFromFilename(t *testing.T) {
	fx := features.SetupFixture(t)
	h := NewHandlers(fx.Sessions, fx.SessionStore)

	body, contentType := multipartBody(t, "../../etc/sales.db", features.DBBytes(t))
	req := features.AuthedRequest(t, fx, http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "sales.db", fx.Sessions.Get(features.TestSessionID).Name())
}

func TestUploadMissingFileField(t *testing.T) {
	fx := features.SetupFixture(t)
	h := NewHandlers(fx.Sessions, fx.SessionStore)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	req := features.AuthedRequest(t, fx, http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "no+database+file")
}

func TestUploadReplacesPreviousDatabase(t *testing.T) {
	fx := features.SetupFixture(t)
	h := NewHandlers(fx.Sessions, fx.SessionStore)
	features.OpenTestDB(t, fx)

	body, contentType := multipartBody(t, "second.db", features.DBBytes(t))
	req := features.AuthedRequest(t, fx, http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "second.db", fx.Sessions.Get(features.TestSessionID).Name())
}
