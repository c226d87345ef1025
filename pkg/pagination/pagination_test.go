package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFromQuery(query string) Params {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return FromContext(c)
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFromQuery("")
	if p.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", p.Limit, DefaultLimit)
	}
	if p.Offset != 0 {
		t.Errorf("Offset = %d, want 0", p.Offset)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	p := paramsFromQuery("?limit=50&offset=10")
	if p.Limit != 50 {
		t.Errorf("Limit = %d, want 50", p.Limit)
	}
	if p.Offset != 10 {
		t.Errorf("Offset = %d, want 10", p.Offset)
	}
}

func TestFromContext_MaxLimit(t *testing.T) {
	p := paramsFromQuery("?limit=5000")
	if p.Limit != MaxLimit {
		t.Errorf("Limit = %d, want capped at %d", p.Limit, MaxLimit)
	}
}

func TestFromContext_NegativeValues(t *testing.T) {
	p := paramsFromQuery("?limit=-5&offset=-3")
	if p.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", p.Limit, DefaultLimit)
	}
	if p.Offset != 0 {
		t.Errorf("Offset = %d, want 0", p.Offset)
	}
}

func TestSQL(t *testing.T) {
	p := Params{Limit: 20, Offset: 40}
	if got := p.SQL(); got != "LIMIT 20 OFFSET 40" {
		t.Errorf("SQL() = %q", got)
	}
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse([]string{"a", "b"}, 25, 10, 0)
	if resp.Total != 25 || resp.Limit != 10 || resp.Offset != 0 {
		t.Errorf("response = %+v", resp)
	}
	if !resp.HasMore {
		t.Error("expected HasMore with 25 total and first page of 10")
	}

	last := NewResponse([]string{"z"}, 25, 10, 20)
	if last.HasMore {
		t.Error("expected HasMore false on the last page")
	}
}

func TestParams_Navigation(t *testing.T) {
	p := Params{Limit: 10, Offset: 10}
	if !p.HasNext(25) {
		t.Error("expected HasNext with 25 total")
	}
	if p.HasNext(20) {
		t.Error("expected no next page at exactly 20 total")
	}
	if !p.HasPrevious() {
		t.Error("expected HasPrevious at offset 10")
	}
	if p.NextOffset() != 20 {
		t.Errorf("NextOffset = %d, want 20", p.NextOffset())
	}
	if p.PreviousOffset() != 0 {
		t.Errorf("PreviousOffset = %d, want 0", p.PreviousOffset())
	}

	first := Params{Limit: 10, Offset: 0}
	if first.HasPrevious() {
		t.Error("expected no previous page at offset 0")
	}
	short := Params{Limit: 10, Offset: 5}
	if short.PreviousOffset() != 0 {
		t.Errorf("PreviousOffset = %d, want clamped to 0", short.PreviousOffset())
	}
}
