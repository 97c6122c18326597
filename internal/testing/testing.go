// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/torrentio/cli/internal/models"
)

// MockService is a configurable test double for the services.Service interface.
// Zero-value funcs return empty results.
type MockService struct {
	RegisterFn    func(ctx context.Context, name, email, password string) (*models.User, error)
	LoginFn       func(ctx context.Context, email, password string) (string, error)
	GamesFn       func(ctx context.Context) ([]models.Game, error)
	SearchFn      func(ctx context.Context, query string) ([]models.Game, error)
	DevelopersFn  func(ctx context.Context) ([]models.Developer, error)
	LoginCalls    int
	RegisterCalls int
}

func (m *MockService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	m.RegisterCalls++
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, name, email, password)
	}
	return &models.User{Name: name, Email: email}, nil
}

func (m *MockService) Login(ctx context.Context, email, password string) (string, error) {
	m.LoginCalls++
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return "test-token", nil
}

func (m *MockService) Games(ctx context.Context) ([]models.Game, error) {
	if m.GamesFn != nil {
		return m.GamesFn(ctx)
	}
	return []models.Game{}, nil
}

func (m *MockService) SearchGames(ctx context.Context, query string) ([]models.Game, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query)
	}
	return []models.Game{}, nil
}

func (m *MockService) Developers(ctx context.Context) ([]models.Developer, error) {
	if m.DevelopersFn != nil {
		return m.DevelopersFn(ctx)
	}
	return []models.Developer{}, nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if err == nil && !info.IsDir() {
		t.Errorf("Expected directory, found file: %s", path)
	}
}
