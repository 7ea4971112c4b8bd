package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hridaya423/newster/internal/adapter/dashboardclient"
	"github.com/hridaya423/newster/internal/dashboard"
)

func TestRetryOnce(t *testing.T) {
	tests := map[string]struct {
		firstStatus int
		wantErr     bool
		wantCalls   int32
		wantNote    bool
	}{
		"transient failure is retried": {firstStatus: http.StatusServiceUnavailable, wantCalls: 2, wantNote: true},
		"proxy error is not retried":   {firstStatus: http.StatusInternalServerError, wantErr: true, wantCalls: 1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) == 1 {
					w.WriteHeader(tc.firstStatus)
					return
				}
				_, _ = w.Write([]byte(`{"articles":[{"title":"A","url":"https://a.example","urlToImage":"https://a.example/i.jpg"}]}`))
			}))
			t.Cleanup(srv.Close)

			controller := dashboard.New(dashboardclient.New(srv.URL, srv.Client()), dashboard.Options{Category: "general"})
			defer controller.Close()
			ctx := context.Background()
			var out bytes.Buffer

			err := retryOnce(ctx, &out, controller, controller.Load(ctx))

			assert.Equal(t, tc.wantCalls, calls.Load())
			if tc.wantErr {
				require.Error(t, err)
				assert.Empty(t, controller.Snapshot().Articles)
				assert.Empty(t, out.String())
				return
			}
			require.NoError(t, err)
			assert.Len(t, controller.Snapshot().Articles, 1)
			assert.Empty(t, controller.Snapshot().Error)
			assert.Equal(t, tc.wantNote, out.Len() > 0)
			assert.Contains(t, out.String(), "retrying")
		})
	}
}
