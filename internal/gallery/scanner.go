package gallery

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"photogrid/internal/domain"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// Scanner finds photos below a root directory
type Scanner struct {
	MaxDepth int
	Workers  int
}

// NewScanner creates a scanner with the given depth limit and probe
// concurrency
func NewScanner(maxDepth, workers int) *Scanner {
	if workers <= 0 {
		workers = 1
	}
	return &Scanner{MaxDepth: maxDepth, Workers: workers}
}

// Scan returns the photos below root ordered by path. Files that cannot be
// read are skipped and logged.
func (s *Scanner) Scan(ctx context.Context, root string) ([]domain.Photo, error) {
	paths, err := s.walk(ctx, root)
	if err != nil {
		return nil, err
	}

	photos := make([]domain.Photo, len(paths))
	ok := make([]bool, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			photo, err := probe(path)
			if err != nil {
				log.Printf("Skipping %s: %v", path, err)
				return nil
			}
			photos[i] = photo
			ok[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]domain.Photo, 0, len(photos))
	for i, p := range photos {
		if ok[i] {
			result = append(result, p)
		}
	}
	markDuplicates(result)
	return result, nil
}

// walk collects image file paths, skipping hidden directories
func (s *Scanner) walk(ctx context.Context, root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			if path == root {
				return err
			}
			log.Printf("Error walking path %s: %v", path, err)
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			relPath, _ := filepath.Rel(root, path)
			if strings.Count(relPath, string(filepath.Separator)) >= s.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if imageExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// probe reads size, dimensions and content hash of one file
func probe(path string) (domain.Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Photo{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return domain.Photo{}, err
	}

	photo := domain.Photo{
		Path:    path,
		Name:    filepath.Base(path),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}

	// Undecodable files are still listed, just without dimensions
	if cfg, format, err := image.DecodeConfig(f); err == nil {
		photo.Width = cfg.Width
		photo.Height = cfg.Height
		photo.Format = format
	} else if !errors.Is(err, image.ErrFormat) {
		log.Printf("Could not decode %s: %v", path, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return domain.Photo{}, err
	}
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return domain.Photo{}, err
	}
	photo.Hash = hex.EncodeToString(h.Sum(nil))

	return photo, nil
}

// markDuplicates flags photos whose content hash occurs more than once
func markDuplicates(photos []domain.Photo) {
	counts := make(map[string]int, len(photos))
	for _, p := range photos {
		counts[p.Hash]++
	}
	for i := range photos {
		if counts[photos[i].Hash] > 1 {
			photos[i].Kind = domain.KindDuplicate
		} else {
			photos[i].Kind = domain.KindUnique
		}
	}
}
