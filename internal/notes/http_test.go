package notes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen-studio/lumen-backend/internal/auth"
	"github.com/lumen-studio/lumen-backend/internal/collections"
)

func newTestRouter(t *testing.T, store collections.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.CtxUID, "test-user")
		c.Next()
	})
	NewHandler(NewService(store)).Register(r.Group("/notes"))
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAndListRoundTrip(t *testing.T) {
	r := newTestRouter(t, collections.NewMemoryStore())

	w := doJSON(r, http.MethodPost, "/notes", `{"content":"remember the milk"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/notes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK    bool   `json:"ok"`
		Notes []Note `json:"notes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, "remember the milk", resp.Notes[0].Content)
}

func TestCreateEmptyContentIsBadRequest(t *testing.T) {
	r := newTestRouter(t, collections.NewMemoryStore())

	for _, body := range []string{`{"content":""}`, `{"content":"   "}`, `{}`} {
		w := doJSON(r, http.MethodPost, "/notes", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), `"field":"content"`)
	}
}

func TestDeleteThenListIsEmpty(t *testing.T) {
	store := collections.NewMemoryStore()
	r := newTestRouter(t, store)

	id, err := store.Add(context.Background(), "test-user", Collection, map[string]interface{}{
		"content": "remember the milk",
	})
	require.NoError(t, err)

	w := doJSON(r, http.MethodDelete, "/notes/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/notes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"notes":[]`)
}

func TestListSurfacesPermissionDenied(t *testing.T) {
	store := collections.NewMemoryStore()
	store.Fail(collections.ErrPermissionDenied)
	r := newTestRouter(t, store)

	w := doJSON(r, http.MethodGet, "/notes", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// deniedWatchStore opens watches that die on the first Next, so the
// handler races the closing updates channel against the buffered
// error.
type deniedWatchStore struct {
	collections.Store
}

func (deniedWatchStore) Watch(ctx context.Context, ownerID, collection string) (collections.Watch, error) {
	return deniedWatch{}, nil
}

type deniedWatch struct{}

func (deniedWatch) Next() ([]collections.Doc, error) {
	return nil, collections.ErrPermissionDenied
}

func (deniedWatch) Stop() {}

// TestListNeverMasksDeniedWatchAsEmpty hammers the race between the
// updates channel closing and the buffered terminal error: a denied
// read must never answer 200 with an empty list.
func TestListNeverMasksDeniedWatchAsEmpty(t *testing.T) {
	r := newTestRouter(t, deniedWatchStore{Store: collections.NewMemoryStore()})

	for i := 0; i < 50; i++ {
		w := doJSON(r, http.MethodGet, "/notes", "")
		require.Equal(t, http.StatusForbidden, w.Code, "iteration %d: %s", i, w.Body.String())
	}
}

// TestStreamDeliversSnapshots drives the SSE endpoint end to end:
// initial empty snapshot, a snapshot per write, and an error event
// when the watch dies.
func TestStreamDeliversSnapshots(t *testing.T) {
	store := collections.NewMemoryStore()
	r := newTestRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/notes/stream", nil)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.ServeHTTP(w, req)
	}()

	time.Sleep(100 * time.Millisecond)
	_, err := store.Add(context.Background(), "test-user", Collection, map[string]interface{}{
		"content": "remember the milk",
	})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	store.Fail(collections.ErrPermissionDenied)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream handler did not terminate")
	}

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "event: snapshot")
	assert.Contains(t, body, `"notes":[]`)
	assert.Contains(t, body, "remember the milk")
	assert.Contains(t, body, "event: error")
	assert.Contains(t, body, "access denied")
}
