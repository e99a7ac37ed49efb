package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"procurehub/internal/audit"
	bidding "procurehub/internal/bidService"
	model "procurehub/internal/models"
	"procurehub/internal/notify"
	"procurehub/internal/repository"
	"procurehub/internal/server"
	tender "procurehub/internal/tenderService"

	"github.com/gin-gonic/gin"
)

// testClock is a movable time source shared by both services, so tests can
// cross deadlines and grace windows without sleeping.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(start time.Time) *testClock {
	return &testClock{now: start}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SetupTestRouter initializes the full stack over the in-memory repository.
func SetupTestRouter() (*gin.Engine, *testClock) {
	gin.SetMode(gin.TestMode)

	clock := newTestClock(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))
	repo := repository.NewMemoryRepo()
	notifier := notify.NewLogNotifier()
	auditor := audit.NewLogAuditor()

	tenderSvc := tender.NewService(repo, repo, notifier, auditor).WithClock(clock.Now)
	bidSvc := bidding.NewService(repo, repo, notifier, auditor).WithClock(clock.Now)

	router := server.SetupRouter(tenderSvc, bidSvc)
	return router, clock
}

// ExecuteRequestAndParse executes an HTTP request as the given actor and
// parses the JSON envelope.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any, actor model.Actor) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if actor.ID != "" {
		req.Header.Set("X-Actor-ID", actor.ID)
		req.Header.Set("X-Actor-Role", string(actor.Role))
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	d, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return d
}
