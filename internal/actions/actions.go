package actions

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"photogrid/internal/domain"
	"photogrid/internal/eventbus"
)

// Service runs actions on selection snapshots. It never touches the
// selection scope itself.
type Service struct {
	bus      eventbus.EventBus
	moveDir  string
	trashDir string

	mu        sync.Mutex
	favorites map[string]bool

	// writeClipboard is swapped in tests
	writeClipboard func(string) error
}

// NewService creates the action service and subscribes it to action requests
func NewService(bus eventbus.EventBus, moveDir, trashDir string, favorites []string) *Service {
	s := &Service{
		bus:            bus,
		moveDir:        moveDir,
		trashDir:       trashDir,
		favorites:      make(map[string]bool, len(favorites)),
		writeClipboard: clipboard.WriteAll,
	}
	for _, path := range favorites {
		s.favorites[path] = true
	}

	bus.Subscribe(eventbus.EventActionRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ActionRequestedEvent); ok {
			s.Run(event.Action, event.Photos)
		}
	})

	return s
}

// Run executes action on photos and publishes the outcome
func (s *Service) Run(action domain.Action, photos []domain.Photo) (int, error) {
	var (
		count int
		err   error
	)

	switch action {
	case domain.ActionMove:
		count, err = s.Move(photos, s.moveDir)
	case domain.ActionTrash:
		count, err = s.Move(photos, s.trashDir)
	case domain.ActionFavorite:
		count = s.ToggleFavorites(photos)
	case domain.ActionCopyPaths:
		count, err = s.CopyPaths(photos)
	default:
		err = fmt.Errorf("unknown action %q", action)
	}

	if err != nil {
		log.Printf("Action %s failed: %v", action, err)
	} else {
		log.Printf("Action %s applied to %d photos", action, count)
	}

	s.bus.Publish(eventbus.ActionCompletedEvent{Action: action, Count: count, Err: err})
	if (action == domain.ActionMove || action == domain.ActionTrash) && count > 0 {
		s.bus.Publish(eventbus.ScanRequestedEvent{})
	}
	return count, err
}

// Move renames photos into dir. Name clashes get a numeric suffix and photos
// already in dir are left alone. Failures are collected and returned together.
func (s *Service) Move(photos []domain.Photo, dir string) (int, error) {
	if len(photos) == 0 {
		return 0, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var errs []error
	moved := 0
	for _, p := range photos {
		if filepath.Clean(filepath.Dir(p.Path)) == filepath.Clean(dir) {
			continue
		}
		target, err := uniquePath(filepath.Join(dir, p.Name))
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to move %s: %w", p.Path, err))
			continue
		}
		if err := os.Rename(p.Path, target); err != nil {
			errs = append(errs, fmt.Errorf("failed to move %s: %w", p.Path, err))
			continue
		}
		moved++
	}
	return moved, errors.Join(errs...)
}

// ToggleFavorites flips the favorite flag of every photo and publishes the
// new favorites list for persistence
func (s *Service) ToggleFavorites(photos []domain.Photo) int {
	s.mu.Lock()
	for _, p := range photos {
		if s.favorites[p.Path] {
			delete(s.favorites, p.Path)
		} else {
			s.favorites[p.Path] = true
		}
	}
	list := s.favoritesLocked()
	s.mu.Unlock()

	if len(photos) > 0 {
		s.bus.Publish(eventbus.ConfigChangedEvent{Favorites: list})
	}
	return len(photos)
}

// IsFavorite reports whether path is marked as favorite
func (s *Service) IsFavorite(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites[path]
}

// Favorites returns the sorted favorite paths
func (s *Service) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favoritesLocked()
}

func (s *Service) favoritesLocked() []string {
	list := make([]string, 0, len(s.favorites))
	for path := range s.favorites {
		list = append(list, path)
	}
	sort.Strings(list)
	return list
}

// CopyPaths writes the newline separated paths to the system clipboard
func (s *Service) CopyPaths(photos []domain.Photo) (int, error) {
	if len(photos) == 0 {
		return 0, nil
	}
	paths := make([]string, len(photos))
	for i, p := range photos {
		paths[i] = p.Path
	}
	if err := s.writeClipboard(strings.Join(paths, "\n")); err != nil {
		return 0, fmt.Errorf("failed to write clipboard: %w", err)
	}
	return len(photos), nil
}

// uniquePath returns path, or path with " (n)" before the extension if
// something already exists there
func uniquePath(path string) (string, error) {
	free := func(candidate string) (bool, error) {
		_, err := os.Stat(candidate)
		switch {
		case err == nil:
			return false, nil
		case errors.Is(err, fs.ErrNotExist):
			return true, nil
		default:
			return false, err
		}
	}

	ok, err := free(path)
	if err != nil || ok {
		return path, err
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
		ok, err := free(candidate)
		if err != nil {
			return "", err
		}
		if ok {
			return candidate, nil
		}
	}
}
