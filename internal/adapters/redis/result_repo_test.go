package redisrepo

import "testing"

func TestParseSearchResult(t *testing.T) {
	res := []interface{}{
		int64(2),
		"ocr_result:a", []interface{}{"$", `{"ID":"a","Source":"one.png","Text":"hello"}`},
		"ocr_result:b", []interface{}{"$", `{"ID":"b","Source":"https://example.com/two.png","Text":"world"}`},
	}
	recs, err := parseSearchResult(res)
	if err != nil {
		t.Fatalf("parseSearchResult() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d recognitions, want 2", len(recs))
	}
	if recs[0].ID != "a" || recs[1].Text != "world" {
		t.Fatalf("unexpected recognitions: %+v", recs)
	}
}

func TestParseSearchResultEmpty(t *testing.T) {
	recs, err := parseSearchResult([]interface{}{int64(0)})
	if err != nil || len(recs) != 0 {
		t.Fatalf("parseSearchResult() = %v, %v", recs, err)
	}
}

func TestParseSearchResultMalformed(t *testing.T) {
	tests := map[string]interface{}{
		"not an array":   map[string]interface{}{"total_results": 0},
		"bad document":   []interface{}{int64(1), "ocr_result:a", "oops"},
		"non-string doc": []interface{}{int64(1), "ocr_result:a", []interface{}{"$", 42}},
		"broken json":    []interface{}{int64(1), "ocr_result:a", []interface{}{"$", "{"}},
	}
	for name, res := range tests {
		if _, err := parseSearchResult(res); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
