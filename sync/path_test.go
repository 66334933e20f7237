package sync

import (
	"testing"
)

func TestPathJoin(t *testing.T) {
	testCases := []struct {
		base, leaf, expected string
	}{
		{"", "a", "a"},
		{"a", "b", "a/b"},
		{"a/b", "c", "a/b/c"},
	}
	for _, testCase := range testCases {
		if result := pathJoin(testCase.base, testCase.leaf); result != testCase.expected {
			t.Errorf("pathJoin(%q, %q) = %q, want %q",
				testCase.base, testCase.leaf, result, testCase.expected)
		}
	}
}

func TestPathBase(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{"", ""},
		{"a", "a"},
		{"a/b", "b"},
		{"a/b/c", "c"},
	}
	for _, testCase := range testCases {
		if result := PathBase(testCase.path); result != testCase.expected {
			t.Errorf("PathBase(%q) = %q, want %q", testCase.path, result, testCase.expected)
		}
	}
}

func TestPathLess(t *testing.T) {
	testCases := []struct {
		first    string
		second   string
		expected bool
	}{
		{"", "", false},
		{"a", "", false},
		{"", "a", true},
		{"a", "a", false},
		{"a/b", "b", true},
		{"b", "a/b", false},
		{"a/b", "a/b", false},
		{"a/b/c", "a", false},
		{"a/b/c", "a/b", false},
		{"a", "a/b/c", true},
		{"a/b", "a/b/c", true},
		{"a/b/c", "a/b/c", false},
		{"a/b/c", "a/d/c", true},
		{"a/b/c", "a/b/cd", true},
		{"a/b/cd", "a/b/c", false},
	}
	for _, testCase := range testCases {
		if result := pathLess(testCase.first, testCase.second); result != testCase.expected {
			t.Errorf("pathLess(%q, %q) = %t, want %t",
				testCase.first, testCase.second, result, testCase.expected)
		}
	}
}
