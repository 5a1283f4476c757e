package pagination

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Count: DefaultCount, From: 0}},
		{"?count=5&from=10", Params{Count: 5, From: 10}},
		{"?count=-1&from=-3", Params{Count: DefaultCount, From: 0}},
		{"?count=abc", Params{Count: DefaultCount, From: 0}},
		{"?count=1000", Params{Count: MaxCount, From: 0}},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/api/Hospitals"+tt.query, nil)
		if got := FromRequest(req); got != tt.want {
			t.Errorf("FromRequest(%q) = %+v, want %+v", tt.query, got, tt.want)
		}
	}
}

func TestNewPage_Envelope(t *testing.T) {
	body, err := json.Marshal(NewPage[string](nil, 0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"count":0,"results":[]}` {
		t.Errorf("got %s", body)
	}
}
