package resolver

import "testing"

func TestVocabulary_CompositeKey(t *testing.T) {
	v := DefaultVocabulary()

	tests := []struct {
		query   string
		wantKey string
		wantOK  bool
	}{
		{"admission bca", "admission-bca", true},
		{"fees for bcom", "fees-bcom", true},
		{"bsc syllabus please", "syllabus-bsc", true},
		// List order decides, not position in the query.
		{"curriculum and fees for mca", "fees-mca", true},
		// "bca" is checked before "ba".
		{"bca admission", "admission-bca", true},
		{"ba fees", "fees-ba", true},
		{"fees", "", false},
		{"bca", "", false},
		{"library hours", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			key, ok := v.CompositeKey(tt.query)
			if key != tt.wantKey || ok != tt.wantOK {
				t.Errorf("CompositeKey(%q) = (%q, %v), want (%q, %v)", tt.query, key, ok, tt.wantKey, tt.wantOK)
			}
		})
	}
}

func TestVocabulary_CompositeKey_Custom(t *testing.T) {
	v := Vocabulary{Departments: []string{"law"}, Topics: []string{"hostel"}}
	key, ok := v.CompositeKey("law hostel")
	if !ok || key != "hostel-law" {
		t.Errorf("CompositeKey() = (%q, %v), want (%q, true)", key, ok, "hostel-law")
	}
	if _, ok := (Vocabulary{}).CompositeKey("bca fees"); ok {
		t.Error("CompositeKey() with empty vocabulary should not match")
	}
}
