package testutil

import (
	"testing"
)

func TestSplitArgs(t *testing.T) {
	cases := map[string][]string{
		`status`:                        {"status"},
		`add "Björk/Post/01 Army.flac"`: {"add", "Björk/Post/01 Army.flac"},
		`add "a \"quoted\" name"`:       {"add", `a "quoted" name`},
		`move 0:1 2`:                    {"move", "0:1", "2"},
		`  ping  `:                      {"ping"},
		`add ""`:                        {"add", ""},
	}
	for line, want := range cases {
		got := splitArgs(line)
		if len(got) != len(want) {
			t.Fatalf("%q: expected %q, got %q", line, want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%q: expected %q, got %q", line, want, got)
			}
		}
	}
}

func TestParseRange(t *testing.T) {
	start, end, err := parseRange([]string{"2"}, 5)
	if err != nil || start != 2 || end != 3 {
		t.Fatalf("expected 2:3, got %d:%d (%v)", start, end, err)
	}
	start, end, err = parseRange([]string{"1:4"}, 5)
	if err != nil || start != 1 || end != 4 {
		t.Fatalf("expected 1:4, got %d:%d (%v)", start, end, err)
	}
	if _, _, err := parseRange([]string{"5"}, 5); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestServerMoveAndDelete(t *testing.T) {
	s := &MPDServer{failures: map[string]string{}, song: -1, state: "stop", nextID: 1}
	s.library = []Track{{File: "a"}, {File: "b"}, {File: "c"}}
	s.Enqueue("a", "b", "c")
	if _, err := s.exec("move", []string{"0:1", "2"}); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if got := s.QueueFiles(); got[0] != "b" || got[1] != "c" || got[2] != "a" {
		t.Fatalf("unexpected queue after move: %v", got)
	}
	if _, err := s.exec("delete", []string{"1"}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := s.QueueFiles(); len(got) != 2 || got[1] != "a" {
		t.Fatalf("unexpected queue after delete: %v", got)
	}
	s.Fail("play", "boom")
	if _, err := s.exec("play", nil); err == nil || err.Error() != "boom" {
		t.Fatalf("expected injected failure, got %v", err)
	}
}
