package s3_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobclip/internal/config"
	"jobclip/internal/port"
	"jobclip/internal/storage/s3"
)

func newStore(t *testing.T, endpoint string) port.ObjectStorage {
	t.Helper()
	store, err := s3.NewS3Client(context.Background(), &config.S3Config{
		Region:    "us-east-1",
		Endpoint:  endpoint,
		AccessKey: "test-access",
		SecretKey: "test-secret",
	})
	require.NoError(t, err)
	return store
}

func TestUpload_PutsObject(t *testing.T) {
	var gotMethod, gotPath, gotType, gotDisposition, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		gotDisposition = r.Header.Get("Content-Disposition")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("ETag", `"abc123"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	out, err := newStore(t, server.URL).Upload(context.Background(), port.UploadInput{
		Bucket:      "captures",
		Key:         "captures/id-1/resume.pdf",
		Body:        strings.NewReader("pdf-bytes"),
		ContentType: "application/pdf",
		Size:        9,
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/captures/captures/id-1/resume.pdf", gotPath)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, "attachment; filename=resume.pdf", gotDisposition)
	assert.Contains(t, gotBody, "pdf-bytes")
	assert.Equal(t, `"abc123"`, out.ETag)
}

func TestDelete_ReportsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
	}))
	defer server.Close()

	err := newStore(t, server.URL).Delete(context.Background(), "captures", "captures/id-1/resume.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3 delete captures/captures/id-1/resume.pdf")
}

func TestGetPresignedURL(t *testing.T) {
	store := newStore(t, "http://minio.local:9000")

	url, err := store.GetPresignedURL(context.Background(), "captures", "captures/id-1/resume.pdf", 600)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://minio.local:9000/captures/captures/id-1/resume.pdf?"))
	assert.Contains(t, url, "X-Amz-Expires=600")
	assert.Contains(t, url, "X-Amz-Signature=")
}
