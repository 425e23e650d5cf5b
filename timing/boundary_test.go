package timing

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestParseBoundariesFlat(t *testing.T) {
	data := []byte(`[
		{"Type":"WordBoundary","Offset":15000000,"Duration":5000000,"Text":"Code"},
		{"Type":"SentenceBoundary","Offset":15000000,"Duration":5000000,"Text":"Code 2"},
		{"Type":"WordBoundary","Offset":25000000,"Duration":3000000,"Text":"2"}
	]`)
	events, err := ParseBoundaries(data)
	if err != nil {
		t.Fatalf("ParseBoundaries failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 word boundaries, got %d", len(events))
	}
	if events[0].Text != "Code" || events[0].Offset != 1.5 {
		t.Errorf("unexpected first event: %+v", events[0])
	}
}

func TestParseBoundariesWrapped(t *testing.T) {
	data := []byte(`[
		{"Metadata":[{"Type":"WordBoundary","Data":{"Offset":15000000,"Duration":5000000,"text":{"Text":"Code","Length":4}}}]},
		{"Metadata":[{"Type":"SessionEnd","Data":{"Offset":99,"Duration":0}}]}
	]`)
	events, err := ParseBoundaries(data)
	if err != nil {
		t.Fatalf("ParseBoundaries failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Text != "Code" || events[0].Offset != 1.5 || events[0].Duration != 0.5 {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Code,", "code"},
		{"  Hello World!  ", "helloworld"},
		{"（动画）", "动画"},
		{"“quoted”", "quoted"},
		{"...", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildMapFirstOccurrenceWins(t *testing.T) {
	events := []Boundary{
		{Text: "Code,", Offset: 1.5, Duration: 0.5},
		{Text: "code", Offset: 3.2, Duration: 0.4},
		{Text: "animation", Offset: 2.0, Duration: 0.6},
	}
	m := BuildMap(events)
	if len(m) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %v", len(m), m)
	}
	if m["code"] != 1.5 {
		t.Errorf("expected first occurrence 1.5 for code, got %v", m["code"])
	}
}

func TestResolveLenient(t *testing.T) {
	m := Map{"animations": 2.5, "cinematic": 4.0, "generated": 1.0}

	if v, ok := m.Resolve("animation"); !ok || v != 2.5 {
		t.Errorf("prefix match failed: %v %v", v, ok)
	}
	// Multiple lenient matches take the minimum offset.
	m2 := Map{"regenerated": 5.0, "generate": 1.0}
	if v, ok := m2.Resolve("generated"); !ok || v != 1.0 {
		t.Errorf("expected minimum matched offset 1.0, got %v %v", v, ok)
	}
	if _, ok := m.Resolve("zzz"); ok {
		t.Error("expected no match for unrelated token")
	}
	if _, ok := m.Resolve("!!!"); ok {
		t.Error("expected no match for token that normalizes to empty")
	}
}

func TestClipDurationFrom(t *testing.T) {
	events := []Boundary{
		{Text: "hello", Offset: 0.2, Duration: 0.3},
		{Text: "world", Offset: 1.0, Duration: 0.5},
	}
	d, ok := ClipDurationFrom(events)
	if !ok {
		t.Fatal("expected duration from events")
	}
	if d != 2.0 {
		t.Errorf("expected 1.0+0.5+0.5 = 2.0, got %v", d)
	}
	if _, ok := ClipDurationFrom(nil); ok {
		t.Error("expected no duration for empty events")
	}
}

func TestSourceFallbacks(t *testing.T) {
	dir := t.TempDir()
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	src := NewSource(dir, "video-1", log)

	// Missing file: empty map, fallback duration, no error anywhere.
	if m := src.Timings(0); len(m) != 0 {
		t.Errorf("expected empty map for missing metadata, got %v", m)
	}
	if d := src.ClipDuration(0); d != FallbackDuration {
		t.Errorf("expected fallback duration %v, got %v", FallbackDuration, d)
	}

	// Malformed file behaves the same.
	projDir := filepath.Join(dir, "video-1")
	if err := os.MkdirAll(projDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(projDir, "1.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if d := src.ClipDuration(1); d != FallbackDuration {
		t.Errorf("expected fallback duration for malformed file, got %v", d)
	}

	// Valid file round-trips through the source.
	valid := `[{"Type":"WordBoundary","Offset":15000000,"Duration":5000000,"Text":"Code"}]`
	if err := os.WriteFile(filepath.Join(projDir, "2.json"), []byte(valid), 0644); err != nil {
		t.Fatal(err)
	}
	m := src.Timings(2)
	if m["code"] != 1.5 {
		t.Errorf("expected code at 1.5s, got %v", m)
	}
	if d := src.ClipDuration(2); d != 2.5 {
		t.Errorf("expected 1.5+0.5+0.5 = 2.5, got %v", d)
	}
}

func TestAlignment(t *testing.T) {
	data := []byte(`{
		"characters":["h","e","l","l","o"],
		"character_start_times_seconds":[0.0,0.1,0.2,0.3,0.4],
		"character_end_times_seconds":[0.1,0.2,0.3,0.4,0.5]
	}`)
	a := ParseAlignment(data)
	if a == nil {
		t.Fatal("expected valid alignment")
	}
	if got := a.SpokenUntil(0.25); got != "hel" {
		t.Errorf("SpokenUntil(0.25) = %q, want hel", got)
	}
	if got := a.SpokenUntil(-1); got != "" {
		t.Errorf("SpokenUntil before start = %q, want empty", got)
	}
	if got := a.SpokenUntil(10); got != "hello" {
		t.Errorf("SpokenUntil past end = %q, want hello", got)
	}

	if ParseAlignment([]byte(`[{"Type":"WordBoundary"}]`)) != nil {
		t.Error("word-boundary metadata must not parse as alignment")
	}
}
