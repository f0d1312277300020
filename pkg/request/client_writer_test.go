package request

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientWriter_StatusCode(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *ClientWriter)
		want  int
	}{
		{
			name:  "DefaultsToOK",
			write: func(w *ClientWriter) { _, _ = w.Write([]byte("ok")) },
			want:  http.StatusOK,
		},
		{
			name:  "RecordsExplicitStatus",
			write: func(w *ClientWriter) { w.WriteHeader(http.StatusNotFound) },
			want:  http.StatusNotFound,
		},
		{
			name:  "NothingWritten",
			write: func(w *ClientWriter) {},
			want:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			cw := NewClientWriter(rec)
			tt.write(cw)
			require.Equal(t, tt.want, cw.StatusCode())
		})
	}
}
