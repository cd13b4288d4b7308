package domain

import (
	"bytes"
	"encoding/json"
)

// ProfileSet maps usernames to profiles and remembers insertion order.
type ProfileSet struct {
	keys  []string
	items map[string]*Profile
}

func NewProfileSet() *ProfileSet {
	return &ProfileSet{items: make(map[string]*Profile)}
}

// ProfileSetFrom keys each profile by its resolved username.
func ProfileSetFrom(profiles ...*Profile) *ProfileSet {
	set := NewProfileSet()
	for _, profile := range profiles {
		if profile == nil {
			continue
		}
		set.Set(profile.Identifier(), profile)
	}
	return set
}

// Set stores profile under username. Re-setting a key replaces the value
// and keeps its original position.
func (s *ProfileSet) Set(username string, profile *Profile) {
	if _, exists := s.items[username]; !exists {
		s.keys = append(s.keys, username)
	}
	s.items[username] = profile
}

func (s *ProfileSet) Get(username string) (*Profile, bool) {
	profile, ok := s.items[username]
	return profile, ok
}

func (s *ProfileSet) Len() int {
	return len(s.keys)
}

func (s *ProfileSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *ProfileSet) Profiles() []*Profile {
	out := make([]*Profile, 0, len(s.keys))
	for _, key := range s.keys {
		out = append(out, s.items[key])
	}
	return out
}

// Merge copies every entry of other into s, other winning on conflicts.
func (s *ProfileSet) Merge(other *ProfileSet) {
	if other == nil {
		return
	}
	for _, key := range other.keys {
		s.Set(key, other.items[key])
	}
}

// MarshalJSON writes an object keyed by username in insertion order.
func (s *ProfileSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(s.items[key].raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
