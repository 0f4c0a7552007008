package manhattan

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"won", "won"},
		{"  ", "unlabeled"},
		{"", "unlabeled"},
		{"after A Street", "after_A_Street"},
		{"../etc/passwd", ".._etc_passwd"},
		{"v1.2-final", "v1.2-final"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExportSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snaps")
	path, err := ExportSnapshot(dir, "first try", image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	if err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasSuffix(path, "_first_try.png") {
		t.Errorf("path = %q", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Stat: %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	tg := newTestGame(t, testOptions(t), orderedSavegame(streetA, streetB, streetC), nil)
	if err := tg.Start(); err != nil {
		t.Fatal(err)
	}
	defer tg.Stop()

	img, err := tg.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	want := image.Rect(0, 0, testW*snapshotScale, testH*snapshotScale+snapshotCaption)
	if img.Bounds() != want {
		t.Errorf("Bounds = %v, want %v", img.Bounds(), want)
	}
	if got := snapshotCaptionText(tg.Gameplay()); got != "0 of 3 streets painted, score 0" {
		t.Errorf("caption = %q", got)
	}

	tg.input.InjectDrag(0, 2, 9, 2, 3)
	tg.drain()
	if got := snapshotCaptionText(tg.Gameplay()); got != "1 of 3 streets painted, score 100" {
		t.Errorf("caption = %q", got)
	}
	img, _ = tg.Snapshot()
	// A Street runs along row 2, scaled up by snapshotScale, and was
	// unhighlighted when the pen lifted.
	r, g, b, a := img.At(1, 2*snapshotScale+1).RGBA()
	if a == 0 || r>>8 != uint32(DefaultPalette.Inactive.R) || g>>8 != uint32(DefaultPalette.Inactive.G) || b>>8 != uint32(DefaultPalette.Inactive.B) {
		t.Errorf("painted pixel = %v, want inactive color", img.At(1, 2*snapshotScale+1))
	}
}

func TestSnapshotWithoutGame(t *testing.T) {
	tg := newTestGame(t, testOptions(t), nil, nil)
	if _, err := tg.Snapshot(); err == nil {
		t.Error("Snapshot before Start succeeded")
	}
}
