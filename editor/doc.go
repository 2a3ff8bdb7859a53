// Package editor implements the in-memory core of a terminal-mode multiline
// text-editing control: line storage, cursor and viewport tracking, a
// keyboard/mouse selection state machine, coalescing undo/redo, dirty-range
// repaint tracking, and event dispatch. It intentionally knows nothing about
// how cells reach a terminal; screen output, clipboard access, scroll bars,
// timers, and word-break classification are all narrow collaborator
// interfaces supplied by the host (see interfaces.go).
package editor
