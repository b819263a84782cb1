package validation

import "testing"

func TestValidUsername(t *testing.T) {
	valid := []string{"ana", "ana_42", "tienda.norte", "a-b", "abc"}
	for _, v := range valid {
		if !ValidUsername(v) {
			t.Errorf("expected valid: %q", v)
		}
	}
	invalid := []string{"", "a", "an", "Ana", "_ana", "ana_", "ana momia", "ana@x",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"} // 33 chars
	for _, v := range invalid {
		if ValidUsername(v) {
			t.Errorf("expected invalid: %q", v)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"ana@example.com", "a+b@sub.dominio.ar"}
	for _, v := range valid {
		if !ValidEmail(v) {
			t.Errorf("expected valid: %q", v)
		}
	}
	invalid := []string{"", "ana", "ana@", "@example.com", "Ana <ana@example.com>"}
	for _, v := range invalid {
		if ValidEmail(v) {
			t.Errorf("expected invalid: %q", v)
		}
	}
}

func TestValidPassword(t *testing.T) {
	if ValidPassword("corto") {
		t.Error("short password accepted")
	}
	if !ValidPassword("s3cret-pass") {
		t.Error("valid password rejected")
	}
}
