package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func doAbort(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	Abort(c, err)
	return rec
}

func TestAbortTypedError(t *testing.T) {
	rec := doAbort(NotFound("Transaction not found"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Success || body.Message != "Transaction not found" {
		t.Errorf("body = %+v", body)
	}
}

func TestAbortUnknownErrorIsOpaque500(t *testing.T) {
	rec := doAbort(errors.New("pq: connection refused at 10.0.0.5"))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Message != "internal server error" {
		t.Errorf("internal detail leaked: %q", body.Message)
	}
}

func TestAbortWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("listing transactions: %w", Forbidden("role not allowed"))
	rec := doAbort(wrapped)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestConstructors(t *testing.T) {
	cases := []struct {
		err  *Error
		code int
	}{
		{BadRequest("x"), 400},
		{Unauthorized("x"), 401},
		{Forbidden("x"), 403},
		{NotFound("x"), 404},
		{Internal("x"), 500},
	}
	for _, c := range cases {
		if c.err.Code != c.code {
			t.Errorf("code = %d, want %d", c.err.Code, c.code)
		}
		if c.err.Error() != "x" {
			t.Errorf("message = %q", c.err.Error())
		}
	}
}
