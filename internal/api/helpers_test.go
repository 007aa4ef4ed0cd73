package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"kpiawards/internal/model"
	"kpiawards/internal/service/awards"
	"kpiawards/internal/service/store"
)

func newTestRouter(t *testing.T, opts Options) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	st.SetReferenceNames(model.KindFaculty, "ФІОТ", "ФЕЛ")
	st.SetReferenceNames(model.KindKPIAward, "Подяка", "Грамота 'КПІ'", "Почесний професор")
	st.SetReferenceNames(model.KindStateAward, "Орден", "Заслужений діяч")

	opts.Service = awards.NewService(st, st, nil)
	if opts.UploadDir == "" {
		opts.UploadDir = t.TempDir()
	}
	if opts.ExportDir == "" {
		opts.ExportDir = t.TempDir()
	}
	h := NewHandler(opts)

	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r, st
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("unmarshal: %v body=%s", err, w.Body.String())
	}
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
