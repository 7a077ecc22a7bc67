package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestLoadFont_DefaultFace(t *testing.T) {
	f, err := LoadFont("", DefaultFontSize)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	a, err := f.Measure("a")
	if err != nil {
		t.Fatal(err)
	}
	if a.Width <= 0 || a.Height <= 0 {
		t.Errorf("got %+v, want positive size", a)
	}
	if a.YBearing >= 0 {
		t.Errorf("YBearing = %g, want ink above the baseline", a.YBearing)
	}
	if a.Height > DefaultFontSize {
		t.Errorf("Height = %g, want at most the font size", a.Height)
	}

	ab, err := f.Measure("ab")
	if err != nil {
		t.Fatal(err)
	}
	if ab.Width <= a.Width {
		t.Errorf("\"ab\" width %g should exceed \"a\" width %g", ab.Width, a.Width)
	}
}

func TestLoadFont_SizeScales(t *testing.T) {
	small, err := LoadFont("", 12)
	if err != nil {
		t.Fatal(err)
	}
	big, err := LoadFont("", 48)
	if err != nil {
		t.Fatal(err)
	}
	if small.Size() != 12 || big.Size() != 48 {
		t.Errorf("sizes = %g, %g, want 12, 48", small.Size(), big.Size())
	}
	s, _ := small.Measure("k")
	b, _ := big.Measure("k")
	if b.Height <= s.Height {
		t.Errorf("48px glyph height %g should exceed 12px height %g", b.Height, s.Height)
	}
}

func TestLoadFont_Errors(t *testing.T) {
	if _, err := LoadFont("", 0); err == nil {
		t.Error("expected error for zero size")
	}
	if _, err := LoadFont(filepath.Join(t.TempDir(), "missing.ttf"), 20); err == nil {
		t.Error("expected error for missing file")
	}

	junk := filepath.Join(t.TempDir(), "junk.ttf")
	if err := os.WriteFile(junk, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFont(junk, 20); err == nil {
		t.Error("expected error for unparsable font")
	}
}

func TestMeasure_Empty(t *testing.T) {
	f, err := LoadFont("", 20)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Measure(""); err == nil {
		t.Error("expected error for empty text")
	}
}

func TestMeasure_ConcurrentCallersAgree(t *testing.T) {
	f, err := LoadFont("", DefaultFontSize)
	if err != nil {
		t.Fatal(err)
	}
	want, err := f.Measure("jk")
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				got, err := f.Measure("jk")
				if err != nil || got != want {
					errs <- fmt.Sprintf("got %+v, %v, want %+v", got, err, want)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}
