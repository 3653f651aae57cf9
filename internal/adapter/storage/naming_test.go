package storage

import (
	"testing"
	"time"
)

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1714550400123)
	cases := map[string]string{
		"rex.jpg":             "1714550400123-rex.jpg",
		"../../etc/passwd":    "1714550400123-passwd",
		`C:\Users\me\cat.png`: "1714550400123-cat.png",
		"my dog.jpg":          "1714550400123-my_dog.jpg",
		"a#1.png":             "1714550400123-a_1.png",
		"what?.gif":           "1714550400123-what_.gif",
		"100%.png":            "1714550400123-100_.png",
		"кот.jpg":             "1714550400123-___.jpg",
		"":                    "1714550400123-photo",
	}
	for in, want := range cases {
		if got := ObjectName(now, in); got != want {
			t.Fatalf("ObjectName(%q) = %q, want %q", in, got, want)
		}
	}
}
