package content

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"rival-server/pkg/logger"
)

// Вотчер горячей перезагрузки контента. Смотрит за директорией с YAML
// и дебаунсит шквал событий от редакторов (write+rename+chmod за один сейв).

type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher начинает следить за указанными директориями
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isContentFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			w.Events <- event.Name
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		case <-w.closeCh:
			return
		}
	}
}

func isContentFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// WatchCatalog связывает вотчер с каталогом: каждое событие по файлу базы
// приводит к перечитыванию. Битая база логируется и игнорируется -
// в памяти продолжает жить последняя валидная версия.
func WatchCatalog(c *Catalog, path string) (*Watcher, error) {
	w, err := NewWatcher(filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	go func() {
		log := logger.System("content")
		for {
			select {
			case changed, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(changed) != filepath.Clean(path) {
					continue
				}
				if err := c.LoadFile(path); err != nil {
					log.WithError(err).Warn("Hot reload failed, keeping previous catalog")
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("Content watcher error")
			}
		}
	}()

	return w, nil
}
