// Package ui shows rendered fixtures in a Fyne window, one tab per fixture.
package ui

import (
	"path/filepath"

	"github.com/chrisuehlinger/plumbgeom/render"
)

// Source is one open fixture and the scene last built from it.
type Source struct {
	Path  string
	Title string
	Scene render.Scene
	Err   error
}

// Session is the viewer state independent of any widgets.
type Session struct {
	Title   string
	Width   int
	Height  int
	Sources []*Source
	Active  int
}

// NewSession creates an empty session.
func NewSession(title string, width, height int) *Session {
	return &Session{
		Title:  title,
		Width:  width,
		Height: height,
		Active: -1,
	}
}

// Open adds a source for path and makes it active. A path that is already
// open is activated instead of added twice.
func (s *Session) Open(path string) *Source {
	if i := s.Index(path); i >= 0 {
		s.Active = i
		return s.Sources[i]
	}
	src := &Source{Path: path, Title: filepath.Base(path)}
	s.Sources = append(s.Sources, src)
	s.Active = len(s.Sources) - 1
	return src
}

// Index returns the position of the source for path, or -1.
func (s *Session) Index(path string) int {
	for i, src := range s.Sources {
		if src.Path == path {
			return i
		}
	}
	return -1
}

// Close removes the source at index.
func (s *Session) Close(index int) {
	if index < 0 || index >= len(s.Sources) {
		return
	}
	s.Sources = append(s.Sources[:index], s.Sources[index+1:]...)
	if s.Active >= len(s.Sources) {
		s.Active = len(s.Sources) - 1
	}
}

// ActiveSource returns the active source, or nil if none.
func (s *Session) ActiveSource() *Source {
	if s.Active < 0 || s.Active >= len(s.Sources) {
		return nil
	}
	return s.Sources[s.Active]
}
