package hospital

import (
	"errors"
	"testing"
)

func TestDirectory_Resolve(t *testing.T) {
	dir, err := NewDirectory(map[string]string{
		"HospA": "https://hospa.example.com/",
		"hospb": "http://localhost:4000",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := dir.Resolve("hospa")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://hospa.example.com" {
		t.Errorf("expected trailing slash trimmed, got %q", got)
	}

	if _, err := dir.Resolve("unknown"); !errors.Is(err, ErrHospitalNotFound) {
		t.Errorf("expected ErrHospitalNotFound, got %v", err)
	}
}

func TestDirectory_RejectsInvalidTables(t *testing.T) {
	cases := map[string]map[string]string{
		"empty":      {},
		"blank id":   {" ": "https://a.example.com"},
		"bad scheme": {"hospa": "ftp://a.example.com"},
		"no host":    {"hospa": "https://"},
	}

	for name, urls := range cases {
		if _, err := NewDirectory(urls); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestDirectory_ReplaceKeepsOldTableOnError(t *testing.T) {
	dir, err := NewDirectory(map[string]string{"hospa": "https://a.example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := dir.Replace(map[string]string{"hospa": "not a url"}); err == nil {
		t.Fatal("expected invalid replace to fail")
	}
	if _, err := dir.Resolve("hospa"); err != nil {
		t.Errorf("expected previous table to survive, got %v", err)
	}

	if err := dir.Replace(map[string]string{"hospc": "https://c.example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := dir.Resolve("hospa"); !errors.Is(err, ErrHospitalNotFound) {
		t.Errorf("expected hospa to be gone after replace, got %v", err)
	}
	if ids := dir.IDs(); len(ids) != 1 || ids[0] != "hospc" {
		t.Errorf("unexpected ids %v", ids)
	}
}
