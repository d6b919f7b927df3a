package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/shantum/COH-ERP2-sub002/pkg/errors"
)

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=3", nil)
	got, err := ParseQueryInt(r, "page", 1, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}

	r = httptest.NewRequest("GET", "/", nil)
	got, err = ParseQueryInt(r, "page", 7, 1, 100)
	if err != nil || got != 7 {
		t.Fatalf("expected default 7, got %d (%v)", got, err)
	}

	r = httptest.NewRequest("GET", "/?page=abc", nil)
	if _, err := ParseQueryInt(r, "page", 1, 1, 100); pkgerrors.As(err) == nil {
		t.Fatalf("expected typed error for non-numeric value, got %v", err)
	}

	r = httptest.NewRequest("GET", "/?page=500", nil)
	if _, err := ParseQueryInt(r, "page", 1, 1, 100); pkgerrors.As(err) == nil {
		t.Fatalf("expected typed error for out-of-range value, got %v", err)
	}
}

func TestParseQueryBool(t *testing.T) {
	r := httptest.NewRequest("GET", "/?active=true", nil)
	got, err := ParseQueryBool(r, "active", false)
	if err != nil || !got {
		t.Fatalf("expected true, got %v (%v)", got, err)
	}

	r = httptest.NewRequest("GET", "/", nil)
	got, err = ParseQueryBool(r, "active", true)
	if err != nil || !got {
		t.Fatalf("expected default true, got %v (%v)", got, err)
	}

	r = httptest.NewRequest("GET", "/?active=yep", nil)
	if _, err := ParseQueryBool(r, "active", false); pkgerrors.As(err) == nil {
		t.Fatalf("expected typed error for bad boolean, got %v", err)
	}
}

type decodeTarget struct {
	Email string `json:"email" validate:"required,email"`
	Count int    `json:"count" validate:"omitempty,min=1"`
}

func TestDecodeJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"ops@example.com","count":2}`))
	var dest decodeTarget
	if err := DecodeJSONBody(r, &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Email != "ops@example.com" || dest.Count != 2 {
		t.Fatalf("unexpected decode %+v", dest)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":`))
	var dest decodeTarget
	err := DecodeJSONBody(r, &dest)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeBadRequest {
		t.Fatalf("expected BAD_REQUEST, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"a@b.com","surprise":1}`))
	var dest decodeTarget
	if pkgerrors.As(DecodeJSONBody(r, &dest)) == nil {
		t.Fatalf("expected rejection of unknown field")
	}
}

func TestDecodeJSONBodyReportsFieldErrorsByJSONName(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"not-an-email","count":-1}`))
	var dest decodeTarget
	err := DecodeJSONBody(r, &dest)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeBadRequest {
		t.Fatalf("expected BAD_REQUEST, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field detail map, got %T", typed.Details())
	}
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message %q", details["email"])
	}
	if details["count"] != "must be at least 1" {
		t.Fatalf("unexpected count message %q", details["count"])
	}
}
