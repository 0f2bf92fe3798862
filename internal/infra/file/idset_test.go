package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestIDSetMissingFileIsEmpty(t *testing.T) {
	ctx := context.Background()
	set := NewIDSet(filepath.Join(t.TempDir(), "absent.txt"))

	if ok, err := set.Contains(ctx, "STU-1"); err != nil || ok {
		t.Fatalf("expected empty set, got (%v, %v)", ok, err)
	}
}

func TestIDSetReadsLinesSkippingComments(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "valid_ids.txt")
	content := "STU-1\n\n# issued for the second group\nSTU-2\n  STU-3  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	set := NewIDSet(path)

	for _, id := range []string{"STU-1", "STU-2", "STU-3"} {
		if ok, _ := set.Contains(ctx, id); !ok {
			t.Fatalf("expected %s in set", id)
		}
	}
	if ok, _ := set.Contains(ctx, "# issued for the second group"); ok {
		t.Fatalf("comment line must not be a member")
	}
}

func TestIDSetAddAppendsOneLine(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "used_ids.txt")
	set := NewIDSet(path)

	if err := set.Add(ctx, "STU-1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := set.Add(ctx, "STU-2"); err != nil {
		t.Fatalf("add: %v", err)
	}

	if ok, _ := set.Contains(ctx, "STU-1"); !ok {
		t.Fatalf("expected STU-1 after add")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "STU-1\nSTU-2\n" {
		t.Fatalf("unexpected file contents %q", data)
	}
}

// Out-of-band appends (the organizer editing the file mid-event) must be
// visible on the next check.
func TestIDSetSeesExternalEdits(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "valid_ids.txt")
	set := NewIDSet(path)

	if ok, _ := set.Contains(ctx, "LATE-1"); ok {
		t.Fatalf("unexpected member")
	}
	if err := os.WriteFile(path, []byte("LATE-1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if ok, _ := set.Contains(ctx, "LATE-1"); !ok {
		t.Fatalf("expected external append to be visible")
	}
}
