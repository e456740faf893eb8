package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func TestAttachSharesLoggerWithRequestContext(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	l := zap.NewNop().With(zap.String("request_id", "abc"))
	Attach(c, l)

	if got := FromEcho(c); got != l {
		t.Errorf("FromEcho() returned a different logger")
	}
	if got := FromContext(c.Request().Context()); got != l {
		t.Errorf("FromContext() returned a different logger")
	}
}

func TestFromContextFallsBackToGlobal(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext() = nil, want global logger")
	}
}
