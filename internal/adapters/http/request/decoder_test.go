package request

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

type report struct {
	ID       *string `form:"id"`
	Name     *string `form:"name"`
	Location string  `form:"location"`
	CPU      string  `form:"cpu"`
}

func newFormRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/status", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestFormDecoderPresence(t *testing.T) {
	var got report
	if err := NewFormDecoder(1024).Decode(newFormRequest("id=abc&name=&cpu=12.50"), &got); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	id, name := "abc", ""
	want := report{ID: &id, Name: &name, CPU: "12.50"}
	if diff := pretty.Compare(want, got); diff != "" {
		t.Errorf("decoded diff (-want +got):\n%s", diff)
	}
}

func TestFormDecoderAbsentKeysStayNil(t *testing.T) {
	var got report
	if err := NewFormDecoder(1024).Decode(newFormRequest("location=Tokyo"), &got); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.ID != nil || got.Name != nil {
		t.Errorf("absent keys decoded as present: %+v", got)
	}
	if got.Location != "Tokyo" {
		t.Errorf("Location = %q", got.Location)
	}
}

func TestFormDecoderBodyTooLarge(t *testing.T) {
	var got report
	body := "location=" + strings.Repeat("x", 200)

	err := NewFormDecoder(64).Decode(newFormRequest(body), &got)
	if !errors.Is(err, ErrInvalidBody) {
		t.Errorf("Decode() error = %v, want ErrInvalidBody", err)
	}
}
