package server

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/NYTimes/gziphandler"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	"github.com/google/renameio/v2"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/xdg-go/tinyjson"
)

const defaultMaxBodyBytes = 1 << 20

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(s.cfg.ConfigFile)
	if err != nil {
		level.Error(s.logger).Log("msg", "error opening config", "file", s.cfg.ConfigFile, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody(errors.Wrap(err, "error opening config")))
		return
	}
	defer f.Close()

	v, err := tinyjson.Parse(bufio.NewReader(f))
	if err != nil {
		s.parseFailed(err, "file", s.cfg.ConfigFile)
		writeJSON(w, http.StatusBadRequest, errorBody(err))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// postConfig replaces the config file with the canonical form of the request
// body.  The file is only written if the body parses.
func (s *Server) postConfig(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	body := http.MaxBytesReader(w, r.Body, limit)

	v, err := tinyjson.Parse(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody(err))
			return
		}
		s.parseFailed(err, "remote", r.RemoteAddr)
		writeJSON(w, http.StatusBadRequest, errorBody(err))
		return
	}

	text := v.String()
	if err := writeFileAtomic(s.cfg.ConfigFile, text); err != nil {
		level.Error(s.logger).Log("msg", "error writing config", "file", s.cfg.ConfigFile, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody(err))
		return
	}
	level.Info(s.logger).Log("msg", "config replaced", "file", s.cfg.ConfigFile, "bytes", len(text))
	writeJSON(w, http.StatusOK, v)
}

func writeFileAtomic(path, text string) error {
	t, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return errors.Wrap(err, "error creating temp config")
	}
	defer t.Cleanup()

	if _, err := t.WriteString(text); err != nil {
		return errors.Wrap(err, "error writing temp config")
	}
	return errors.Wrap(t.CloseAtomicallyReplace(), "error replacing config")
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := s.conns.writeTable(w); err != nil {
		level.Debug(s.logger).Log("msg", "error writing stats", "err", err)
		return
	}
	fmt.Fprintf(w, "\nserved %s in %s requests\n",
		humanize.Bytes(s.bytesServed.Load()),
		humanize.Comma(int64(s.requests.Load())),
	)
}

func (s *Server) static() http.Handler {
	return gziphandler.GzipHandler(http.FileServer(http.Dir(s.cfg.WebRoot)))
}

func (s *Server) parseFailed(err error, keyvals ...interface{}) {
	s.metrics.parseFailures.WithLabelValues(kindLabel(err)).Inc()
	level.Debug(s.logger).Log(append([]interface{}{"msg", "invalid JSON", "err", err}, keyvals...)...)
}

// kindLabel names the parse error kind of err for metrics.
func kindLabel(err error) string {
	kinds := []struct {
		kind  error
		label string
	}{
		{tinyjson.ErrUnexpectedEOF, "unexpected_eof"},
		{tinyjson.ErrUnexpectedToken, "unexpected_token"},
		{tinyjson.ErrMalformedNumber, "malformed_number"},
		{tinyjson.ErrUnterminatedString, "unterminated_string"},
		{tinyjson.ErrIllegalControlCharacter, "illegal_control_character"},
		{tinyjson.ErrInvalidUnicodeEscape, "invalid_unicode_escape"},
		{tinyjson.ErrExpectedDelimiter, "expected_delimiter"},
		{tinyjson.ErrTrailingInput, "trailing_input"},
		{tinyjson.ErrDepthExceeded, "depth_exceeded"},
		{tinyjson.ErrRead, "read"},
	}
	for _, k := range kinds {
		if errors.Is(err, k.kind) {
			return k.label
		}
	}
	return "other"
}

func errorBody(err error) tinyjson.Value {
	obj := tinyjson.NewObject()
	obj.Set("error", tinyjson.String(err.Error()))
	return obj.Value()
}

func writeJSON(w http.ResponseWriter, status int, v tinyjson.Value) {
	text := v.AppendTo(nil)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(text)))
	w.WriteHeader(status)
	w.Write(text)
}

// instrument logs each request and updates the request metrics.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := "other"
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		s.requests.Inc()
		s.bytesServed.Add(uint64(rw.written))
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(rw.status)).Inc()
		s.metrics.bytesServed.Add(float64(rw.written))

		contentLength := rw.Header().Get("Content-Length")
		if contentLength == "" {
			contentLength = "?"
		}
		level.Info(s.logger).Log("method", r.Method, "uri", r.RequestURI, "status", rw.status, "content_length", contentLength)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status  int
	written int
	wrote   bool
}

func (rw *responseWriter) WriteHeader(status int) {
	if !rw.wrote {
		rw.status = status
		rw.wrote = true
	}
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wrote = true
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}
