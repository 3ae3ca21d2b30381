package utils

import (
	"testing"
	"time"
)

func TestFormatEpoch(t *testing.T) {
	t.Parallel()

	got := FormatEpoch(0)
	if got != "1970-01-01T00:00:00Z" {
		t.Errorf("FormatEpoch(0) = %q", got)
	}

	millis := time.Date(2024, 5, 17, 12, 30, 45, 0, time.UTC).UnixMilli()
	got = FormatEpoch(millis)
	if got != "2024-05-17T12:30:45Z" {
		t.Errorf("FormatEpoch(%d) = %q", millis, got)
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	title := "  padded  "
	req := struct {
		Name  string
		Title *string
		Tags  []string
		Count int
	}{
		Name:  "  alice  ",
		Title: &title,
		Tags:  []string{" t1 ", "t2"},
		Count: 7,
	}

	Sanitize(&req)

	if req.Name != "alice" {
		t.Errorf("Name = %q", req.Name)
	}
	if *req.Title != "padded" {
		t.Errorf("Title = %q", *req.Title)
	}
	if req.Tags[0] != "t1" || req.Tags[1] != "t2" {
		t.Errorf("Tags = %v", req.Tags)
	}
	if req.Count != 7 {
		t.Errorf("Count = %d", req.Count)
	}
}

func TestSanitize_NilPointerField(t *testing.T) {
	t.Parallel()

	req := struct {
		Title *string
	}{}
	Sanitize(&req) // must not panic
	if req.Title != nil {
		t.Errorf("Title = %v", req.Title)
	}
}
