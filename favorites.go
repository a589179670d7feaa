package main

import (
	"log"
	"sync"

	"photogrid/internal/config"
	"photogrid/internal/eventbus"
)

// favoritesSaver writes the favorites list to the gallery config whenever it
// changes. Handlers run concurrently, so each save reads the current list
// from source instead of the event payload.
type favoritesSaver struct {
	mu     sync.Mutex
	cfg    *config.Config
	svc    config.ConfigService
	source func() []string
}

func (f *favoritesSaver) handle(e eventbus.DomainEvent) {
	if _, ok := e.(eventbus.ConfigChangedEvent); !ok {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg.Favorites = f.source()
	if err := f.svc.Save(f.cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	} else {
		log.Printf("Config saved for %s", f.cfg.PhotoDir)
	}
}
