package netx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploader_Put_OK(t *testing.T) {
	var gotBody, gotType, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody, gotType, gotMethod = string(b), r.Header.Get("Content-Type"), r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u := NewUploader(5 * time.Second)
	require.NoError(t, u.Put(context.Background(), srv.URL+"/bucket/key", []byte("jpeg-bytes"), "image/jpeg"))

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "jpeg-bytes", gotBody)
	assert.Equal(t, "image/jpeg", gotType)
}

func TestUploader_Put_DefaultContentType(t *testing.T) {
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
	}))
	defer srv.Close()

	require.NoError(t, NewUploader(time.Second).Put(context.Background(), srv.URL, []byte("x"), ""))
	assert.Equal(t, "application/octet-stream", gotType)
}

func TestUploader_Put_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("<Error>SignatureDoesNotMatch</Error>"))
	}))
	defer srv.Close()

	err := NewUploader(time.Second).Put(context.Background(), srv.URL, []byte("x"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "SignatureDoesNotMatch")
}
