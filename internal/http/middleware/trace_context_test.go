package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/betterday-backend/internal/platform/ctxutil"
)

func TestAttachTraceContextGeneratesIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AttachTraceContext())

	var td *ctxutil.TraceData
	r.GET("/ping", func(c *gin.Context) {
		td = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if td == nil {
		t.Fatal("expected trace data on request context")
	}
	if td.TraceID == "" || td.RequestID == "" {
		t.Fatalf("expected generated ids, got trace=%q request=%q", td.TraceID, td.RequestID)
	}
	if got := rec.Header().Get("X-Trace-Id"); got != td.TraceID {
		t.Fatalf("trace id header: got=%q want=%q", got, td.TraceID)
	}
	if got := rec.Header().Get("X-Request-Id"); got != td.RequestID {
		t.Fatalf("request id header: got=%q want=%q", got, td.RequestID)
	}
}

func TestAttachTraceContextHonorsInboundHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AttachTraceContext())

	var td *ctxutil.TraceData
	r.GET("/ping", func(c *gin.Context) {
		td = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Trace-Id", "trace-abc")
	req.Header.Set("X-Request-Id", "req-123")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if td == nil {
		t.Fatal("expected trace data on request context")
	}
	if td.TraceID != "trace-abc" {
		t.Fatalf("trace id: got=%q want=%q", td.TraceID, "trace-abc")
	}
	if td.RequestID != "req-123" {
		t.Fatalf("request id: got=%q want=%q", td.RequestID, "req-123")
	}
}
