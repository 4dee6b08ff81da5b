package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"student-manager-api/internal/domain/user"
	"student-manager-api/internal/infrastructure/jwt"
	"student-manager-api/internal/interface/api/rest/response"
)

const testSecret = "test-secret"

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) response.Envelope {
	t.Helper()

	var raw struct {
		response.Envelope
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Envelope
}

func bearer(t *testing.T, pr user.Principal) map[string]string {
	t.Helper()

	tok, err := jwt.New(testSecret).Issue(pr.ID.String(), pr.Email, string(pr.Role))
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func adminPrincipal() user.Principal {
	return user.Principal{ID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}
}
