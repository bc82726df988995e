package app

import (
	"fmt"
	"log"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"

	"viz3d/internal/behaviours"
	"viz3d/internal/geometry"
	"viz3d/internal/graphics/renderables/meshes"
)

// LoadFunc rebuilds the geometry of a watched file.
type LoadFunc func(path string) (*geometry.Mesh, error)

// Reloader watches mesh files and swaps their geometry when they change on
// disk. The watcher goroutine only forwards paths; the reload itself happens
// in Behave on the render loop.
type Reloader struct {
	watcher *fsnotify.Watcher
	load    LoadFunc
	meshes  map[string]*meshes.Mesh
	changed chan string
	done    chan struct{}
	once    sync.Once
}

// NewReloader starts watching the directories of the given files. Directories
// are watched instead of the files so that editors replacing a file by rename
// are still noticed.
func NewReloader(targets map[string]*meshes.Mesh, load LoadFunc) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	r := &Reloader{
		watcher: watcher,
		load:    load,
		meshes:  make(map[string]*meshes.Mesh, len(targets)),
		changed: make(chan string, 64),
		done:    make(chan struct{}),
	}

	var dirs []string
	for path, m := range targets {
		abs, err := filepath.Abs(path)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		r.meshes[abs] = m
		if dir := filepath.Dir(abs); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	go r.run()
	return r, nil
}

func (r *Reloader) run() {
	for {
		select {
		case ev, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			path := filepath.Clean(ev.Name)
			if _, watched := r.meshes[path]; !watched {
				continue
			}
			select {
			case r.changed <- path:
			case <-r.done:
				return
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watcher: %v", err)
		case <-r.done:
			return
		}
	}
}

// Behave reloads every file reported since the last tick. Several events for
// the same file collapse into one reload. A file that fails to load keeps its
// previous geometry.
func (r *Reloader) Behave(p *behaviours.Params) {
	var pending []string
drain:
	for {
		select {
		case path := <-r.changed:
			if !slices.Contains(pending, path) {
				pending = append(pending, path)
			}
		default:
			break drain
		}
	}

	for _, path := range pending {
		data, err := r.load(path)
		if err != nil {
			log.Printf("reload %s: %v", path, err)
			continue
		}
		r.meshes[path].Replace(data)
		log.Printf("reloaded %s (%d triangles)", filepath.Base(path), data.Triangles())
		p.Refresh = true
	}
}

// Close stops the watcher goroutine. Later calls do nothing.
func (r *Reloader) Close() error {
	var err error
	r.once.Do(func() {
		close(r.done)
		err = r.watcher.Close()
	})
	return err
}
