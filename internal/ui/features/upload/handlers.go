// Package upload accepts database files and installs them in the session.
package upload

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/gorilla/sessions"
	"github.com/sumanthd032/DataCanvas/internal/session"
	"github.com/sumanthd032/DataCanvas/internal/sqlitedb"
	"github.com/sumanthd032/DataCanvas/internal/ui/features/common"
)

// maxUploadBytes bounds how much of a multipart body is kept in memory.
const maxUploadBytes = 512 << 20

// Handlers provides HTTP handlers for the upload feature.
type Handlers struct {
	sessions     *session.Manager
	sessionStore sessions.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(mgr *session.Manager, sessionStore sessions.Store) *Handlers {
	return &Handlers{sessions: mgr, sessionStore: sessionStore}
}

// Upload replaces the session's database with the posted file. A rejected
// file leaves the session without any database.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	sess := common.Resolve(w, r, h.sessionStore, h.sessions)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("database")
	if err != nil {
		redirectError(w, r, "no database file in upload")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		redirectError(w, r, "failed to read upload: "+err.Error())
		return
	}

	name := filepath.Base(header.Filename)
	if err := sess.ReplaceUpload(data, name); err != nil {
		var ffe *sqlitedb.FileFormatError
		if errors.As(err, &ffe) {
			redirectError(w, r, name+" is not a valid SQLite database")
			return
		}
		redirectError(w, r, err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?error="+url.QueryEscape(msg), http.StatusSeeOther)
}
