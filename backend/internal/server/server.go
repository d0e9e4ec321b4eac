package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/config"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/csvops"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/pipeline"
	"github.com/JustUsingaWebsite/nric-compare/backend/internal/sheet"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MaxUploadBytes bounds the multipart body of one request.
const MaxUploadBytes = 32 << 20

const requestIDHeader = "X-Request-ID"

var validate = validator.New()

// Server is the HTTP shell around the comparison pipeline: upload two spreadsheets,
// get the summary and name preview back, or the result workbook.
type Server struct {
	cfg config.Config
	log *logrus.Logger
}

// New creates a server using cfg for columns, sheet names and output naming.
func New(cfg config.Config, log *logrus.Logger) *Server {
	return &Server{cfg: cfg, log: log}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /api/sheets", s.handleSheets)
	mux.HandleFunc("POST /api/compare", s.handleCompare)
	mux.HandleFunc("POST /api/compare/json", s.handleCompareJSON)
	return s.withRequestID(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

type ctxKey struct{}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)

		entry := s.log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
		})
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, entry)))
		entry.WithField("duration", time.Since(start)).Debug("request served")
	})
}

func (s *Server) logger(r *http.Request) logrus.FieldLogger {
	if entry, ok := r.Context().Value(ctxKey{}).(*logrus.Entry); ok {
		return entry
	}
	return s.log
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sheetsForm struct {
	File *multipart.FileHeader `validate:"required"`
}

func (s *Server) handleSheets(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid upload: %w", err))
		return
	}

	form := sheetsForm{File: formFile(r, "file")}
	if err := validate.Struct(form); err != nil {
		s.fail(w, r, http.StatusBadRequest, errors.New("field 'file' is required"))
		return
	}

	f, err := form.File.Open()
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	defer f.Close()

	wb, err := sheet.Open(f, form.File.Filename, sheet.Options{Charset: s.cfg.Charset})
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	defer wb.Close()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"file":   form.File.Filename,
		"sheets": wb.SheetNames(),
	})
}

type compareForm struct {
	FileA  *multipart.FileHeader `validate:"required"`
	FileB  *multipart.FileHeader `validate:"required"`
	SheetA string
	SheetB string
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid upload: %w", err))
		return
	}

	form := compareForm{
		FileA:  formFile(r, "file_a"),
		FileB:  formFile(r, "file_b"),
		SheetA: r.FormValue("sheet_a"),
		SheetB: r.FormValue("sheet_b"),
	}
	if err := validate.Struct(form); err != nil {
		s.fail(w, r, http.StatusBadRequest, errors.New("upload both files (file_a, file_b) to compare"))
		return
	}

	fa, err := form.FileA.Open()
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	defer fa.Close()
	fb, err := form.FileB.Open()
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	defer fb.Close()

	download := r.URL.Query().Get("download") == "1"
	res, err := pipeline.Run(r.Context(), s.cfg, s.logger(r),
		sheet.Input{Name: form.FileA.Filename, Sheet: form.SheetA, Reader: fa},
		sheet.Input{Name: form.FileB.Filename, Sheet: form.SheetB, Reader: fb},
		pipeline.Options{SkipExport: !download},
	)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}

	if download {
		w.Header().Set("Content-Type", sheet.ContentTypeXLSX)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.cfg.Output))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(res.Workbook)
		return
	}

	writeJSON(w, http.StatusOK, res.Report(s.cfg.NameColumn, true))
}

// handleCompareJSON runs the core on a JSON CompareRequest and answers with the
// CompareResponse, error message included.
func (s *Server) handleCompareJSON(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, MaxUploadBytes))
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	req, err := csvops.DecodeCompareRequest(data)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("invalid compare request: %w", err))
		return
	}
	if req.Options.NameColumn == "" {
		req.Options.NameColumn = s.cfg.NameColumn
	}
	if req.Options.SerialColumn == "" {
		req.Options.SerialColumn = s.cfg.SerialColumn
	}

	res, err := csvops.Compare(req)
	if err != nil {
		s.logger(r).WithError(err).Warn("compare request failed")
		writeJSON(w, statusFor(err), res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type errorBody struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	body := errorBody{Error: err.Error()}
	var mc *csvops.MissingColumnError
	if errors.As(err, &mc) {
		body.Missing = mc.Lines()
	}
	s.logger(r).WithError(err).WithField("status", status).Warn("request failed")
	writeJSON(w, status, body)
}

func statusFor(err error) int {
	var mc *csvops.MissingColumnError
	var pe *sheet.ParseError
	switch {
	case errors.As(err, &mc):
		return http.StatusUnprocessableEntity
	case errors.As(err, &pe):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
