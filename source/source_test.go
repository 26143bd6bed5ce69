package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cafe-experiment/cafeplot/dataset"
)

func TestDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "a.csv"), []byte("charge\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := Dir(dir)
	f, err := src.Open(context.Background(), "sub/a.csv")
	if err != nil {
		t.Fatalf("could not open file: %+v", err)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(raw), "charge\n1\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	_, err = src.Open(context.Background(), "sub/missing.csv")
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDirCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Dir(t.TempDir()).Open(ctx, "a.csv")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

// fakeS3 serves path-style GETs out of a map of object keys.
type fakeS3 struct {
	bucket  string
	objects map[string][]byte
}

func (m *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	p := strings.TrimPrefix(req.URL.Path, "/"+m.bucket+"/")
	body, ok := m.objects[p]
	if req.Method != http.MethodGet || !ok {
		msg := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message><Key>%s</Key></Error>`, p)
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader(msg)),
			Header:     http.Header{"Content-Type": {"application/xml"}},
			Request:    req,
		}, nil
	}
	return &http.Response{
		StatusCode:    http.StatusOK,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Header: http.Header{
			"Content-Length": {fmt.Sprintf("%d", len(body))},
			"Content-Type":   {"application/octet-stream"},
		},
		Request: req,
	}, nil
}

func newFakeS3(objects map[string][]byte) *S3 {
	rt := &fakeS3{bucket: "cafe", objects: objects}
	client := s3.New(s3.Options{
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider("AKIA", "SECRET", ""),
		HTTPClient:   &http.Client{Transport: rt},
		UsePathStyle: true,
		BaseEndpoint: aws.String("https://mock.s3.local"),
	})
	return NewS3FromClient(client, "cafe", "pass1")
}

func TestS3(t *testing.T) {
	src := newFakeS3(map[string][]byte{
		"pass1/summary/Ca48_MF.csv": []byte("charge\n2.5\n"),
	})

	f, err := src.Open(context.Background(), "summary/Ca48_MF.csv")
	if err != nil {
		t.Fatalf("could not open object: %+v", err)
	}
	defer f.Close()

	buf := make([]byte, 6)
	if _, err := f.ReadAt(buf, 0); err != nil {
		t.Fatalf("could not read at: %+v", err)
	}
	if got, want := string(buf), "charge"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	_, err = src.Open(context.Background(), "summary/Fe54_MF.csv")
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNewS3RequiresBucket(t *testing.T) {
	if _, err := NewS3(context.Background(), S3Config{}); err == nil {
		t.Fatalf("expected an error for a missing bucket")
	}
}

func TestDirAbsolute(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "b.csv")
	if err := os.WriteFile(fname, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Dir("/does/not/matter").Open(context.Background(), filepath.ToSlash(fname))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	f.Close()
}
