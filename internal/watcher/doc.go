// Package watcher reports file changes after they settle.
//
// Editors and tools tend to write a file in several steps (truncate, write,
// rename). FileWatcher collects the notifications for a quiet period and then
// calls its callback once with every path that changed. Watch connects it to
// fsnotify for a fixed set of files.
//
//	w := watcher.NewWatcher(300*time.Millisecond, func(paths []string) {
//	    reloadSeed()
//	})
//	defer w.Stop()
//	err := watcher.Watch(ctx, w, "db.json")
package watcher
