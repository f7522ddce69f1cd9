package fuzzy

import (
	"math"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"FinanceWise", "financewise"},
		{"  Hello,   World!  ", "hello world"},
		{"Node.js & React", "node js react"},
		{"study-sphere", "study-sphere"},
		{"TABS\tand\nnewlines", "tabs and newlines"},
		{"", ""},
		{"!!!", ""},
		{"C++ / C#", "c c"},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("Tell me about the FinanceWise project!")
	want := []string{"tell", "me", "about", "the", "financewise", "project"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokens = %v, want %v", got, want)
	}
}

func TestContentTokensDropsStopWords(t *testing.T) {
	got := ContentTokens("Tell me about the FinanceWise project")
	want := []string{"financewise", "project"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ContentTokens = %v, want %v", got, want)
	}
}

func TestJaccard(t *testing.T) {
	cases := []struct {
		name string
		a, b []string
		want float64
	}{
		{"identical", []string{"a", "b"}, []string{"a", "b"}, 1.0},
		{"disjoint", []string{"a"}, []string{"b"}, 0.0},
		{"half", []string{"a", "b"}, []string{"b", "c"}, 1.0 / 3.0},
		{"empty left", nil, []string{"a"}, 0.0},
		{"both empty", nil, nil, 0.0},
		{"duplicates collapse", []string{"a", "a", "b"}, []string{"a"}, 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Jaccard(c.a, c.b)
			if math.Abs(got-c.want) > 1e-9 {
				t.Errorf("Jaccard(%v, %v) = %f, want %f", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestJaccardSymmetric(t *testing.T) {
	a := []string{"finance", "tracker", "app"}
	b := []string{"finance", "app", "dashboard", "web"}
	if Jaccard(a, b) != Jaccard(b, a) {
		t.Error("Jaccard should be symmetric")
	}
}

func TestSimilaritySubstringShortCircuit(t *testing.T) {
	if got := Similarity("Tell me about FinanceWise please", "FinanceWise"); got != 1.0 {
		t.Errorf("substring containment should score 1.0, got %f", got)
	}
	// Containment checks run both ways.
	if got := Similarity("FinanceWise", "the FinanceWise budgeting app"); got != 1.0 {
		t.Errorf("reverse containment should score 1.0, got %f", got)
	}
}

func TestSimilarityFallsBackToJaccard(t *testing.T) {
	got := Similarity("finance tracker", "tracker dashboard")
	want := 1.0 / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Similarity = %f, want %f", got, want)
	}
}

func TestSimilarityEmpty(t *testing.T) {
	if got := Similarity("", "anything"); got != 0 {
		t.Errorf("empty input should score 0, got %f", got)
	}
	if got := Similarity("???", "anything"); got != 0 {
		t.Errorf("input that normalizes to empty should score 0, got %f", got)
	}
}

func TestContainsNormalized(t *testing.T) {
	if !ContainsNormalized("What's in the TECH stack of Pantry Pal?", "pantry pal") {
		t.Error("expected case/punctuation-insensitive containment")
	}
	if ContainsNormalized("some text", "") {
		t.Error("empty candidate must never match")
	}
	if ContainsNormalized("pantry", "pantry pal") {
		t.Error("partial candidate should not match")
	}
}
