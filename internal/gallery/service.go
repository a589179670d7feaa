package gallery

import (
	"context"
	"fmt"
	"log"
	"sync"

	"photogrid/internal/eventbus"
)

// Service runs gallery scans in the background and publishes the results
type Service interface {
	StartScan(ctx context.Context, root string) error
	StopScan()
}

// service is the concrete implementation
type service struct {
	bus     eventbus.EventBus
	scanner *Scanner

	mu         sync.Mutex
	root       string
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewService creates a gallery service for root
func NewService(bus eventbus.EventBus, scanner *Scanner, root string) Service {
	s := &service{
		bus:     bus,
		scanner: scanner,
		root:    root,
	}

	// Subscribe to scan requests
	bus.Subscribe(eventbus.EventScanRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ScanRequestedEvent); ok {
			target := event.Root
			if target == "" {
				s.mu.Lock()
				target = s.root
				s.mu.Unlock()
			}
			if err := s.StartScan(context.Background(), target); err != nil {
				log.Printf("Scan request ignored: %v", err)
			}
		}
	})

	return s
}

// StartScan starts scanning root in the background
func (s *service) StartScan(ctx context.Context, root string) error {
	s.mu.Lock()
	if s.isScanning {
		s.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	s.isScanning = true
	s.root = root

	scanCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.mu.Unlock()

	s.bus.Publish(eventbus.ScanStartedEvent{Root: root})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			s.isScanning = false
			s.cancelFunc = nil
			s.mu.Unlock()
			cancel()
		}()

		photos, err := s.scanner.Scan(scanCtx, root)
		if err != nil {
			if scanCtx.Err() != nil {
				return
			}
			log.Printf("Error scanning %s: %v", root, err)
			s.bus.Publish(eventbus.ErrorEvent{
				Message: fmt.Sprintf("Failed to scan %s", root),
				Err:     err,
			})
			return
		}

		log.Printf("Scan of %s found %d photos", root, len(photos))
		s.bus.Publish(eventbus.ScanCompletedEvent{Root: root, Photos: photos})
	}()

	return nil
}

// StopScan stops any ongoing scan
func (s *service) StopScan() {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	s.wg.Wait()
}
