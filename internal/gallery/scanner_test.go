package gallery

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photogrid/internal/domain"
	"photogrid/internal/eventbus"
)

func writePNG(t *testing.T, path string, w, h int, shade uint8) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = shade
	}
	img.Set(0, 0, color.Gray{Y: shade + 1})

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestScanFindsPhotosInOrder(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "b.png"), 4, 3, 10)
	writePNG(t, filepath.Join(root, "a.png"), 2, 2, 20)
	writePNG(t, filepath.Join(root, "album", "c.PNG"), 5, 1, 30)
	writePNG(t, filepath.Join(root, ".hidden", "x.png"), 1, 1, 40)
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hi"), 0644))

	photos, err := NewScanner(5, 2).Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, photos, 3)
	assert.Equal(t, filepath.Join(root, "a.png"), photos[0].Path)
	assert.Equal(t, filepath.Join(root, "album", "c.PNG"), photos[1].Path)
	assert.Equal(t, filepath.Join(root, "b.png"), photos[2].Path)

	assert.Equal(t, "b.png", photos[2].Name)
	assert.Equal(t, 4, photos[2].Width)
	assert.Equal(t, 3, photos[2].Height)
	assert.Equal(t, "png", photos[2].Format)
	assert.NotEmpty(t, photos[2].Hash)
}

func TestScanMarksDuplicates(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "one.png"), 3, 3, 50)
	writePNG(t, filepath.Join(root, "copy.png"), 3, 3, 50)
	writePNG(t, filepath.Join(root, "other.png"), 3, 3, 60)

	photos, err := NewScanner(5, 4).Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, photos, 3)

	kinds := map[string]domain.PhotoKind{}
	for _, p := range photos {
		kinds[p.Name] = p.Kind
	}
	assert.Equal(t, domain.KindDuplicate, kinds["one.png"])
	assert.Equal(t, domain.KindDuplicate, kinds["copy.png"])
	assert.Equal(t, domain.KindUnique, kinds["other.png"])
}

func TestScanKeepsUndecodableImages(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.jpg"), []byte("not a jpeg"), 0644))

	photos, err := NewScanner(5, 1).Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Zero(t, photos[0].Width)
	assert.Empty(t, photos[0].Format)
}

func TestScanRespectsDepth(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "top.png"), 1, 1, 1)
	writePNG(t, filepath.Join(root, "a", "one.png"), 1, 1, 2)
	writePNG(t, filepath.Join(root, "a", "b", "two.png"), 1, 1, 3)

	photos, err := NewScanner(1, 1).Scan(context.Background(), root)
	require.NoError(t, err)

	var names []string
	for _, p := range photos {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"top.png", "one.png"}, names)
}

func TestScanMissingRoot(t *testing.T) {
	_, err := NewScanner(5, 1).Scan(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestServicePublishesScanResults(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "a.png"), 1, 1, 1)

	bus := eventbus.New()
	defer bus.Close()

	done := make(chan eventbus.ScanCompletedEvent, 1)
	bus.Subscribe(eventbus.EventScanCompleted, func(e eventbus.DomainEvent) {
		done <- e.(eventbus.ScanCompletedEvent)
	})

	svc := NewService(bus, NewScanner(5, 1), root)
	bus.Publish(eventbus.ScanRequestedEvent{})

	select {
	case ev := <-done:
		assert.Equal(t, root, ev.Root)
		require.Len(t, ev.Photos, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("scan did not complete")
	}
	svc.StopScan()
}
