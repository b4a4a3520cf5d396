package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lotopool/backend/pkg/errorx"
	"github.com/lotopool/backend/pkg/testutil"
	"github.com/lotopool/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type pingRequest struct{}

type pingResponse struct {
	Message string `json:"message"`
}

type envelope struct {
	Code  int64        `json:"code"`
	Error string       `json:"error"`
	Data  pingResponse `json:"data"`
}

func serve(r *Router, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		panic(err)
	}

	return w, resp
}

func Test_Router_middlewareFailureWritesErrorEnvelope(t *testing.T) {
	r := New(testutil.MockContext())
	r.Use(func(ctx context.Context, req *http.Request) (context.Context, error) {
		return nil, errors.New("boom")
	})

	reached := false
	GET(r, "/ping", func(ctx context.Context, req *pingRequest) (*pingResponse, error) {
		reached = true
		return &pingResponse{Message: "pong"}, nil
	})

	w, resp := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.False(t, reached)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(errorx.Unknown.Code), resp.Code)
	require.Equal(t, errorx.Unknown.Message, resp.Error)
}

func Test_Router_requireAuthenticationRejectsAnonymousCalls(t *testing.T) {
	r := New(testutil.MockContext())
	r.Use(Authenticate())
	r.Use(RequireAuthentication())

	GET(r, "/ping", func(ctx context.Context, req *pingRequest) (*pingResponse, error) {
		return &pingResponse{Message: "pong"}, nil
	})

	_, resp := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, int64(errorx.Unauthenticated), resp.Code)
}

func Test_Router_middlewareDerivedContextReachesHandler(t *testing.T) {
	r := New(testutil.MockContext())
	r.Use(Authenticate())

	GET(r, "/whoami", func(ctx context.Context, req *pingRequest) (*pingResponse, error) {
		return &pingResponse{Message: xcontext.RequestUserID(ctx)}, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User-Id", "user-1")

	_, resp := serve(r, req)
	require.Equal(t, int64(0), resp.Code)
	require.Equal(t, "user-1", resp.Data.Message)
}
