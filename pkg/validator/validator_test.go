package validator_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/laundry-inventory/pkg/validator"
)

type sampleStruct struct {
	Category string `validate:"required,notblank"`
	Name     string `validate:"required,min=1,max=10"`
	Contact  string `validate:"omitempty,email"`
	Quantity int    `validate:"gte=0"`
}

func TestValidate_valid(t *testing.T) {
	s := sampleStruct{Category: "Detergent", Name: "bleach"}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := sampleStruct{}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestFormatValidationErrors_required(t *testing.T) {
	s := sampleStruct{}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Category"] != "This field is required" {
		t.Errorf("unexpected Category message: %q", m["Category"])
	}
	if m["Name"] != "This field is required" {
		t.Errorf("unexpected Name message: %q", m["Name"])
	}
}

func TestFormatValidationErrors_notblank(t *testing.T) {
	s := sampleStruct{Category: "   ", Name: "ok"}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Category"] != "Must not be blank" {
		t.Errorf("unexpected Category message: %q", m["Category"])
	}
}

func TestFormatValidationErrors_email(t *testing.T) {
	s := sampleStruct{Category: "Detergent", Name: "ok", Contact: "not-an-email"}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Contact"] != "Must be a valid email address" {
		t.Errorf("unexpected Contact message: %q", m["Contact"])
	}
}

func TestFormatValidationErrors_gte(t *testing.T) {
	s := sampleStruct{Category: "Detergent", Name: "ok", Quantity: -1}
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Quantity"] != "Must be greater than or equal to 0" {
		t.Errorf("unexpected Quantity message: %q", m["Quantity"])
	}
}

func TestFormatValidationErrors_max(t *testing.T) {
	s := sampleStruct{Category: "Detergent", Name: "12345678901"} // 11 chars > max=10
	err := pkgvalidator.Validate(&s)
	m := pkgvalidator.FormatValidationErrors(err)
	if m["Name"] != "Maximum length is 10" {
		t.Errorf("unexpected Name message: %q", m["Name"])
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

func TestSummary_ordersFields(t *testing.T) {
	err := pkgvalidator.Validate(&sampleStruct{})
	got := pkgvalidator.Summary(err)
	want := "Validation failed: Category: This field is required; Name: This field is required"
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

type stockReq struct {
	QuantityChange *int `json:"quantityChange" validate:"required"`
}

func TestValidateRequest_requiredPointerAcceptsZero(t *testing.T) {
	r := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"quantityChange":0}`))
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[stockReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if *req.QuantityChange != 0 {
		t.Errorf("unexpected QuantityChange: %d", *req.QuantityChange)
	}
}

// --- ValidateRequest ---

type itemReq struct {
	Name     string `json:"name"     validate:"required,min=1,max=255"`
	Category string `json:"category" validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,gte=0"`
}

func TestValidateRequest_valid(t *testing.T) {
	body := `{"name":"Bleach","category":"Detergent","quantity":10}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if req.Name != "Bleach" || *req.Quantity != 10 {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_missingField(t *testing.T) {
	body := `{"name":"Bleach","quantity":1}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if ok {
		t.Fatal("expected ok=false for missing category")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Validation failed: category: This field is required") {
		t.Errorf("expected 'Validation failed' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_negativeQuantity(t *testing.T) {
	body := `{"name":"Bleach","category":"Detergent","quantity":-2}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if ok {
		t.Fatal("expected ok=false for negative quantity")
	}
	if !strings.Contains(w.Body.String(), "quantity: Must be greater than or equal to 0") {
		t.Errorf("expected quantity error in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_bodyTooLarge(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
	r.Body = http.MaxBytesReader(w, r.Body, 16)

	_, ok := pkgvalidator.ValidateRequest[itemReq](w, r)
	if ok {
		t.Fatal("expected ok=false for oversized body")
	}
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}
