package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hacksnooze/internal/shared"
)

func TestStoryHostname(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "https url", url: "https://example.com/article/42", want: "example.com"},
		{name: "host with port", url: "http://localhost:8080/x", want: "localhost:8080"},
		{name: "subdomain", url: "https://news.example.co.uk/", want: "news.example.co.uk"},
		{name: "relative url", url: "/article/42", wantErr: true},
		{name: "missing scheme", url: "example.com/article", wantErr: true},
		{name: "garbage", url: "://not a url", wantErr: true},
		{name: "empty", url: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			story := Story{ID: "1", URL: tt.url}
			host, err := story.Hostname()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, shared.ErrorMalformedURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, host)
		})
	}
}

func ids(stories []Story) []string {
	out := make([]string, 0, len(stories))
	for _, s := range stories {
		out = append(out, s.ID)
	}
	return out
}

func TestStorySetOrder(t *testing.T) {
	s := NewStorySet(Story{ID: "1"}, Story{ID: "2"})

	assert.Equal(t, []string{"1", "2"}, ids(s.Stories()))

	s.Prepend(Story{ID: "3"})
	assert.Equal(t, []string{"3", "1", "2"}, ids(s.Stories()))

	s.Append(Story{ID: "4"})
	assert.Equal(t, []string{"3", "1", "2", "4"}, ids(s.Stories()))
}

func TestStorySetPrependExistingMovesToFront(t *testing.T) {
	s := NewStorySet(Story{ID: "1", Title: "old"}, Story{ID: "2"})

	s.Prepend(Story{ID: "1", Title: "new"})

	assert.Equal(t, []string{"1", "2"}, ids(s.Stories()))
	assert.Equal(t, 2, s.Len())

	got, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "new", got.Title)
}

func TestStorySetRemove(t *testing.T) {
	s := NewStorySet(Story{ID: "1"}, Story{ID: "2"}, Story{ID: "3"})

	assert.True(t, s.Remove("2"))
	assert.Equal(t, []string{"1", "3"}, ids(s.Stories()))
	assert.False(t, s.Contains("2"))

	// removing an absent id is a no-op
	assert.False(t, s.Remove("2"))
	assert.Equal(t, 2, s.Len())
}

func TestStorySetStoriesIsACopy(t *testing.T) {
	s := NewStorySet(Story{ID: "1", Title: "a"})

	out := s.Stories()
	out[0].Title = "mutated"

	got, _ := s.Get("1")
	assert.Equal(t, "a", got.Title)
}

func TestStorySetClear(t *testing.T) {
	s := NewStorySet(Story{ID: "1"}, Story{ID: "2"})
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Stories())
}

func TestNewStoryList(t *testing.T) {
	now := time.Now()
	list := NewStoryList([]Story{{ID: "1", CreatedAt: now}, {ID: "2"}})
	assert.Equal(t, 2, list.Stories.Len())
	assert.Equal(t, []string{"1", "2"}, ids(list.Stories.Stories()))
}
