package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/docpal/docpal/agent/runner"
	"github.com/docpal/docpal/internal/logging"
)

func init() {
	logging.Disable()
}

// stubAgent records the messages it receives and returns a canned reply.
type stubAgent struct {
	reply    string
	err      error
	messages []string
}

func (s *stubAgent) Process(_ context.Context, _, message string) (*runner.TurnResult, error) {
	s.messages = append(s.messages, message)
	if s.err != nil {
		return nil, s.err
	}
	return &runner.TurnResult{Reply: s.reply}, nil
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeText(t *testing.T, rec *httptest.ResponseRecorder) TextResponse {
	t.Helper()

	var resp TextResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestChatReturnsAgentReply(t *testing.T) {
	agent := &stubAgent{reply: "Hello Ana!"}
	handler := New(agent, 0).Router()

	rec := postJSON(t, handler, "/api/chat", ChatRequest{Message: "Hi, I'm Ana"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeText(t, rec)
	if resp.Text != "Hello Ana!" {
		t.Errorf("expected agent reply, got %q", resp.Text)
	}
	if resp.Failed {
		t.Error("expected Failed unset for a normal reply")
	}
}

func TestChatRequiresMessage(t *testing.T) {
	handler := New(&stubAgent{}, 0).Router()

	rec := postJSON(t, handler, "/api/chat", ChatRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty message, got %d", rec.Code)
	}
}

func TestErrorPrefixMarksFailure(t *testing.T) {
	agent := &stubAgent{reply: "Error extracting text from PDF at /tmp/x.pdf: no such file"}
	handler := New(agent, 0).Router()

	rec := postJSON(t, handler, "/api/chat", ChatRequest{Message: "extract /tmp/x.pdf"})
	resp := decodeText(t, rec)
	if !resp.Failed {
		t.Error("expected Failed set for Error-prefixed reply")
	}
	if !strings.HasPrefix(resp.Text, "Error extracting text from PDF at ") {
		t.Errorf("expected the error text passed through verbatim, got %q", resp.Text)
	}
}

func TestSummaryPhrasesRequest(t *testing.T) {
	agent := &stubAgent{reply: "The summary."}
	handler := New(agent, 0).Router()

	rec := postJSON(t, handler, "/api/summary", TextRequest{Text: "long document text"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(agent.messages) != 1 {
		t.Fatalf("expected one agent turn, got %d", len(agent.messages))
	}
	if agent.messages[0] != "Summarize the following document: long document text" {
		t.Errorf("unexpected phrasing: %q", agent.messages[0])
	}
}

func TestQuizPhrasesRequest(t *testing.T) {
	agent := &stubAgent{reply: "Q1 ..."}
	handler := New(agent, 0).Router()

	postJSON(t, handler, "/api/quiz", TextRequest{Text: "notes"})
	if agent.messages[0] != "Generate a quiz from the following document: notes" {
		t.Errorf("unexpected phrasing: %q", agent.messages[0])
	}
}

func TestAgentFaultBecomesHTTPError(t *testing.T) {
	agent := &stubAgent{err: context.DeadlineExceeded}
	handler := New(agent, 0).Router()

	rec := postJSON(t, handler, "/api/chat", ChatRequest{Message: "hello"})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for an agent fault, got %d", rec.Code)
	}
}

func TestUploadStagesAndCleansUpTempFile(t *testing.T) {
	agent := &stubAgent{reply: "extracted text"}
	handler := New(agent, 0).Router()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "doc.pdf")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	part.Write([]byte("%PDF-1.4 fake"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(agent.messages) != 1 {
		t.Fatalf("expected one agent turn, got %d", len(agent.messages))
	}

	msg := agent.messages[0]
	const prefix = "Please extract all text from the PDF file located at: "
	if !strings.HasPrefix(msg, prefix) {
		t.Fatalf("unexpected extraction message: %q", msg)
	}

	// The staging file is removed after the turn, success or not.
	stagedPath := strings.TrimPrefix(msg, prefix)
	if _, err := os.Stat(stagedPath); !os.IsNotExist(err) {
		t.Errorf("expected staging file %s removed, stat err: %v", stagedPath, err)
	}

	resp := decodeText(t, rec)
	if resp.Text != "extracted text" {
		t.Errorf("expected extraction output passed through, got %q", resp.Text)
	}
}

func TestUploadWithoutFile(t *testing.T) {
	handler := New(&stubAgent{}, 0).Router()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing file, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	handler := New(&stubAgent{}, 0).Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
