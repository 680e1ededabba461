package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"assignhelper/internal/answer"
	"assignhelper/internal/config"
	"assignhelper/internal/domain"
	"assignhelper/web"
)

type stubAnswerer struct {
	answer   string
	err      error
	question string
	upload   *answer.Upload
	content  string
}

func (s *stubAnswerer) Ask(_ context.Context, question string, upload *answer.Upload) (string, error) {
	s.question = question
	s.upload = upload
	if upload != nil {
		content, _ := io.ReadAll(upload.Content)
		s.content = string(content)
	}
	if s.err != nil {
		return "", s.err
	}
	return s.answer, nil
}

type fakeRepo struct {
	entries  []*domain.HistoryEntry
	frequent []*domain.FrequencyEntry
	recorded []*domain.HistoryEntry
}

func (f *fakeRepo) RecordQuestion(_ context.Context, entry *domain.HistoryEntry) error {
	f.recorded = append(f.recorded, entry)
	return nil
}

func (f *fakeRepo) RecentQuestions(_ context.Context, _ int) ([]*domain.HistoryEntry, error) {
	return f.entries, nil
}

func (f *fakeRepo) MostFrequent(_ context.Context, _ int) ([]*domain.FrequencyEntry, error) {
	return f.frequent, nil
}

func (f *fakeRepo) PurgeAll(_ context.Context) (int64, error) { return 0, nil }
func (f *fakeRepo) Ping(_ context.Context) error              { return nil }
func (f *fakeRepo) Close() error                              { return nil }

func newTestHandler(t *testing.T, repo *fakeRepo, answerer answer.Answerer) *Handler {
	t.Helper()

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	cfg := &config.Config{
		Port:                   "8080",
		DBPath:                 "test.db",
		UpstreamURL:            "http://upstream.test/api/",
		UpstreamTimeoutSeconds: 5,
		MaxUploadMB:            10,
		RecentLimit:            10,
		FrequentLimit:          5,
	}
	return NewHandler(repo, answerer, renderer, cfg)
}

func multipartBody(t *testing.T, question string, filename, fileContent string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if question != "" {
		if err := writer.WriteField("question", question); err != nil {
			t.Fatalf("write question field: %v", err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create file field: %v", err)
		}
		if _, err := part.Write([]byte(fileContent)); err != nil {
			t.Fatalf("write file content: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func decodeBody(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()

	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return got
}

func TestJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	data := map[string]string{"foo": "bar"}

	JSON(w, http.StatusOK, data)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	got := decodeBody(t, resp)
	if got["foo"] != "bar" {
		t.Errorf("Expected foo=bar, got %v", got["foo"])
	}
}

func TestAskReturnsAnswer(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	stub := &stubAnswerer{answer: "4"}
	h := newTestHandler(t, repo, stub)

	body, contentType := multipartBody(t, "2+2?", "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.Ask(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	got := decodeBody(t, resp)
	if got["answer"] != "4" {
		t.Errorf("Expected answer=4, got %v", got["answer"])
	}
	if stub.question != "2+2?" {
		t.Errorf("Answerer received question %q", stub.question)
	}

	if len(repo.recorded) != 1 {
		t.Fatalf("Expected 1 recorded entry, got %d", len(repo.recorded))
	}
	entry := repo.recorded[0]
	if entry.Question != "2+2?" || entry.Answer != "4" || entry.HadFile {
		t.Errorf("Unexpected recorded entry: %+v", entry)
	}
}

func TestAskWithFile(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	stub := &stubAnswerer{answer: "42"}
	h := newTestHandler(t, repo, stub)

	body, contentType := multipartBody(t, "what is in the file?", "answers.csv", "answer\n42\n")
	req := httptest.NewRequest(http.MethodPost, "/api/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.Ask(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Result().StatusCode)
	}
	if stub.upload == nil {
		t.Fatal("Expected upload to reach the answerer")
	}
	if stub.upload.Filename != "answers.csv" {
		t.Errorf("Expected filename answers.csv, got %q", stub.upload.Filename)
	}
	if stub.content != "answer\n42\n" {
		t.Errorf("Unexpected upload content: %q", stub.content)
	}

	if len(repo.recorded) != 1 || !repo.recorded[0].HadFile {
		t.Errorf("Expected recorded entry with HadFile set, got %+v", repo.recorded)
	}
}

func TestAskBackendErrorVerbatim(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{}
	stub := &stubAnswerer{err: &answer.BackendError{Message: "bad input"}}
	h := newTestHandler(t, repo, stub)

	body, contentType := multipartBody(t, "2+2?", "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.Ask(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", resp.StatusCode)
	}
	got := decodeBody(t, resp)
	if got["error"] != "bad input" {
		t.Errorf("Expected error=bad input, got %v", got["error"])
	}
	if len(repo.recorded) != 0 {
		t.Errorf("Expected no recorded entries on failure, got %d", len(repo.recorded))
	}
}

func TestAskMissingQuestion(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, &fakeRepo{}, &stubAnswerer{answer: "ignored"})

	body, contentType := multipartBody(t, "", "notes.txt", "hello")
	req := httptest.NewRequest(http.MethodPost, "/api/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	h.Ask(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
	got := decodeBody(t, resp)
	if got["error"] != "question is required" {
		t.Errorf("Expected error=question is required, got %v", got["error"])
	}
}

func TestTestEndpoint(t *testing.T) {
	t.Parallel()

	stub := &stubAnswerer{answer: "4"}
	h := newTestHandler(t, &fakeRepo{}, stub)

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	w := httptest.NewRecorder()

	h.Test(w, req)

	got := decodeBody(t, w.Result())
	if got["question"] != "What is 2+2?" {
		t.Errorf("Expected fixed test question, got %v", got["question"])
	}
	if got["answer"] != "4" {
		t.Errorf("Expected answer=4, got %v", got["answer"])
	}
}

func TestTestEndpointUpstreamDown(t *testing.T) {
	t.Parallel()

	stub := &stubAnswerer{err: &answer.BackendError{Message: "no answer from upstream"}}
	h := newTestHandler(t, &fakeRepo{}, stub)

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	w := httptest.NewRecorder()

	h.Test(w, req)

	got := decodeBody(t, w.Result())
	if got["error"] != "no answer from upstream" {
		t.Errorf("Expected upstream error, got %v", got)
	}
}

func TestPageRendersHistory(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{
		entries: []*domain.HistoryEntry{
			{Question: "A?", Answer: "B", HadFile: true, AskedAt: time.Now()},
		},
		frequent: []*domain.FrequencyEntry{
			{Question: "A?", Count: 2},
		},
	}
	h := newTestHandler(t, repo, &stubAnswerer{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	h.Page(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	html, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"A?", "B", "(with file)", "asked 2 times"} {
		if !strings.Contains(string(html), want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}
}

func TestPageRendersEmptyState(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, &fakeRepo{}, &stubAnswerer{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	h.Page(w, req)

	html, _ := io.ReadAll(w.Result().Body)
	if !strings.Contains(string(html), "No questions have been asked yet.") {
		t.Error("Expected empty-state message on page")
	}
}
