package usecase

import (
	"errors"
	"reflect"
	"testing"

	"flipctl/internal/domain"
)

func TestExtractTenantList(t *testing.T) {
	got, err := ExtractTenantList("Loading...\n[\"acme\",\"globex\"]\ndone")
	if err != nil {
		t.Fatalf("ExtractTenantList: %v", err)
	}
	want := []string{"acme", "globex"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractTenantListCRLF(t *testing.T) {
	got, err := ExtractTenantList("booting\r\n  [\"north\",\"south\"]  \r\n")
	if err != nil {
		t.Fatalf("ExtractTenantList: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"north", "south"}) {
		t.Errorf("got %v", got)
	}
}

func TestExtractTenantListFirstMatchWins(t *testing.T) {
	got, err := ExtractTenantList("[\"first\"]\n[\"second\"]\n")
	if err != nil {
		t.Fatalf("ExtractTenantList: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"first"}) {
		t.Errorf("got %v, want the first bracketed line", got)
	}
}

func TestExtractTenantListNoJSON(t *testing.T) {
	_, err := ExtractTenantList("Loading dependencies\nwarning: something\n")
	if !errors.Is(err, domain.ErrNoJSONFound) {
		t.Errorf("err = %v, want ErrNoJSONFound", err)
	}
}

func TestExtractTenantListEmptyInput(t *testing.T) {
	_, err := ExtractTenantList("")
	if !errors.Is(err, domain.ErrNoJSONFound) {
		t.Errorf("err = %v, want ErrNoJSONFound", err)
	}
}

func TestExtractTenantListMalformed(t *testing.T) {
	for _, in := range []string{"[not json]", "[1,2,3]", `["unterminated]`} {
		_, err := ExtractTenantList(in)
		if !errors.Is(err, domain.ErrParse) {
			t.Errorf("ExtractTenantList(%q) err = %v, want ErrParse", in, err)
		}
	}
}

func TestExtractTenantListEmptyList(t *testing.T) {
	_, err := ExtractTenantList("noise\n[]\n")
	if !errors.Is(err, domain.ErrEmptyList) {
		t.Errorf("err = %v, want ErrEmptyList", err)
	}
}

func TestExtractBooleanStatus(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"=> true\n", true},
		{"=> false\n", false},
		{"", false},
		{"true", true},
		{"TRUE", false}, // literal substring match only
	}
	for _, tt := range tests {
		if got := ExtractBooleanStatus(tt.in); got != tt.want {
			t.Errorf("ExtractBooleanStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
