package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/docpal/docpal/internal/httputil"
	"github.com/docpal/docpal/internal/logging"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
	Session string `json:"session,omitempty"`
}

// TextRequest is the body of POST /api/summary and POST /api/quiz.
type TextRequest struct {
	Text    string `json:"text"`
	Session string `json:"session,omitempty"`
}

// TextResponse carries the agent's surfaced output. Failed mirrors the
// "Error" prefix contract so clients can render failures distinctly without
// parsing the text themselves.
type TextResponse struct {
	Text   string `json:"text"`
	Failed bool   `json:"failed,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.OkJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := httputil.Parse(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if req.Message == "" {
		httputil.ErrorWithCode(w, http.StatusBadRequest, "message is required")
		return
	}
	s.respond(w, r, req.Session, req.Message)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := httputil.Parse(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	s.respond(w, r, req.Session, fmt.Sprintf("Summarize the following document: %s", req.Text))
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := httputil.Parse(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	s.respond(w, r, req.Session, fmt.Sprintf("Generate a quiz from the following document: %s", req.Text))
}

// handleUpload stages an uploaded PDF in a temp file, asks the agent to
// extract it, and removes the staging file afterwards — extraction failure
// included.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.ErrorWithCode(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "docpal-upload-*.pdf")
	if err != nil {
		httputil.InternalError(w, "failed to stage upload")
		return
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			logging.Warnf("could not delete temporary PDF file %s: %v", tmpPath, err)
		}
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		httputil.InternalError(w, "failed to stage upload")
		return
	}
	if err := tmp.Close(); err != nil {
		httputil.InternalError(w, "failed to stage upload")
		return
	}

	logging.Infof("staged upload %s at %s", header.Filename, tmpPath)

	session := r.FormValue("session")
	message := fmt.Sprintf("Please extract all text from the PDF file located at: %s", tmpPath)
	s.respond(w, r, session, message)
}

// respond runs one agent turn and writes the surfaced text. Routing faults
// are contract violations between model and registry, so they come back as
// HTTP errors rather than text.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, session, message string) {
	result, err := s.agent.Process(r.Context(), session, message)
	if err != nil {
		logging.Errorf("agent turn failed: %v", err)
		httputil.InternalError(w, err.Error())
		return
	}
	httputil.OkJSON(w, TextResponse{
		Text:   result.Reply,
		Failed: strings.HasPrefix(result.Reply, "Error"),
	})
}
