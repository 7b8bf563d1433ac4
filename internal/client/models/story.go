// Package models defines the story and user types the client operates on.
package models

import (
	"fmt"
	"net/url"
	"time"

	"hacksnooze/internal/shared"
)

// Story is a single submitted news item. The ID is assigned by the server
// on creation and never changes; every other field is display-only after
// construction.
type Story struct {
	ID        string
	Title     string
	Author    string
	URL       string
	Username  string
	CreatedAt time.Time
}

// Hostname parses the story URL as an absolute URI and returns its host.
// A relative or unparseable URL fails with shared.ErrorMalformedURL.
func (s Story) Hostname() (string, error) {
	u, err := url.Parse(s.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: %q", shared.ErrorMalformedURL, s.URL)
	}
	return u.Host, nil
}

// StoryDraft is the user-supplied part of a story submission. The server
// fills in the ID, submitter, and creation time.
type StoryDraft struct {
	Title  string
	Author string
	URL    string
}

// StorySet is an ordered collection of stories keyed by story ID.
// Every collection in the client (feed, favorites, own stories) is one of
// these, so removal by ID is a single keyed delete rather than a scan.
// Prepending an ID that is already present moves it to the front.
type StorySet struct {
	order []string
	byID  map[string]Story
}

func NewStorySet(stories ...Story) *StorySet {
	s := &StorySet{byID: make(map[string]Story, len(stories))}
	for _, st := range stories {
		s.Append(st)
	}
	return s
}

func (s *StorySet) Len() int {
	return len(s.order)
}

func (s *StorySet) Contains(id string) bool {
	_, ok := s.byID[id]
	return ok
}

func (s *StorySet) Get(id string) (Story, bool) {
	st, ok := s.byID[id]
	return st, ok
}

// Prepend inserts the story at the front of the order. An existing story
// with the same ID is replaced and moved to the front.
func (s *StorySet) Prepend(st Story) {
	if s.Contains(st.ID) {
		s.Remove(st.ID)
	}
	s.order = append([]string{st.ID}, s.order...)
	s.byID[st.ID] = st
}

// Append inserts the story at the back of the order. An existing story
// with the same ID is replaced in place.
func (s *StorySet) Append(st Story) {
	if !s.Contains(st.ID) {
		s.order = append(s.order, st.ID)
	}
	s.byID[st.ID] = st
}

// Remove deletes the story with the given ID. Removing an absent ID is a
// no-op and reports false.
func (s *StorySet) Remove(id string) bool {
	if !s.Contains(id) {
		return false
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Stories returns the stories in order. The slice is a copy; mutating it
// does not affect the set.
func (s *StorySet) Stories() []Story {
	out := make([]Story, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

// Clear empties the set.
func (s *StorySet) Clear() {
	s.order = nil
	s.byID = make(map[string]Story)
}

// StoryList is the story feed: the ordered collection of all stories known
// to the client at a point in time, newest first after inserts.
type StoryList struct {
	Stories *StorySet
}

func NewStoryList(stories []Story) *StoryList {
	return &StoryList{Stories: NewStorySet(stories...)}
}
