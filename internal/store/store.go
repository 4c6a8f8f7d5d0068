// Package store implements the custom-allocated string arena that backs
// the completion engine: a single growable byte buffer holding UTF-8
// payloads, plus a key-sorted index of lightweight records pointing into it.
package store

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Handle is an opaque identifier for an Entry, stable for the entry's
// lifetime (until it is removed or the Store is cleared). Ids come from a
// counter that is never reset, so a Handle is never reused, and a grow
// leaves every Handle unchanged; queries still must not hold a Handle
// across a mutating call, since the entry it names may be removed.
type Handle int64

// InsertOutcome reports whether an insert created a new Entry or touched
// an existing one.
type InsertOutcome int

const (
	Inserted InsertOutcome = iota
	Updated
)

const (
	MinTextLength = 3
	MinCapacity   = 256
)

// entry is the index-array record. offset/length point into buf.
// Pointer identity is what makes the trie mirror (trie.go) safe to keep
// across slice reorders: the slice of *entry gets spliced on insert/remove,
// but a given *entry's address never moves.
type entry struct {
	id     Handle
	offset int
	length int
	freq   uint16
	age    int32
}

// Store owns a single contiguous payload arena and a sorted index into it.
type Store struct {
	buf      []byte
	used     int
	entries  []*entry // sorted by text, byte-lexicographic
	byHandle map[Handle]*entry
	nextID   Handle
	maxLen   int // longest entry, in bytes, currently live

	trie *trieMirror
}

// New creates a Store with the given initial arena capacity (bytes).
func New(initialCapacity int) *Store {
	if initialCapacity < MinCapacity {
		initialCapacity = MinCapacity
	}
	s := &Store{
		buf:      make([]byte, initialCapacity),
		byHandle: make(map[Handle]*entry),
	}
	s.trie = newTrieMirror()
	return s
}

// EntryView is a read-only snapshot of one Entry, safe to hold for the
// duration of a single query.
type EntryView struct {
	Handle    Handle
	Text      string
	Frequency uint16
	AgeDays   int32
}

func (s *Store) view(e *entry) EntryView {
	return EntryView{
		Handle:    e.id,
		Text:      string(s.buf[e.offset : e.offset+e.length]),
		Frequency: e.freq,
		AgeDays:   e.age,
	}
}

// Len returns the number of live entries.
func (s *Store) Len() int { return len(s.entries) }

// IsEmpty reports whether the Store holds no entries.
func (s *Store) IsEmpty() bool { return len(s.entries) == 0 }

// Capacity returns the current arena capacity in bytes.
func (s *Store) Capacity() int { return len(s.buf) }

// UsedBytes returns the number of arena bytes currently occupied by live
// and orphaned payloads.
func (s *Store) UsedBytes() int { return s.used }

// MaxEntryLength returns the byte length of the longest live entry, or 0
// if the Store is empty.
func (s *Store) MaxEntryLength() int { return s.maxLen }

// Clear removes all entries and empties the arena, keeping its current
// capacity.
func (s *Store) Clear() {
	s.buf = make([]byte, cap(s.buf))
	s.used = 0
	s.entries = nil
	s.byHandle = make(map[Handle]*entry)
	s.maxLen = 0
	s.trie.reset()
}

func findIndex(entries []*entry, buf []byte, text string) (int, bool) {
	lo, hi := 0, len(entries)
	for lo < hi {
		mid := (lo + hi) / 2
		cand := string(buf[entries[mid].offset : entries[mid].offset+entries[mid].length])
		if cand < text {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(entries) {
		cand := string(buf[entries[lo].offset : entries[lo].offset+entries[lo].length])
		if cand == text {
			return lo, true
		}
	}
	return lo, false
}

// Insert adds a new word or, if text is already present, increments its
// frequency (saturating at the uint16 max) and refreshes age_days to
// todayDays. Text is trimmed of leading/trailing ASCII whitespace before
// validation; the trimmed byte length must fall in [3, 50].
//
// Returns an error (and leaves the Store unchanged) only when the arena
// cannot be grown to fit the new payload; malformed text is reported via
// ok=false rather than an error, since insert_many (§4.5) needs a simple
// accepted/rejected count rather than a propagated error per word.
func (s *Store) Insert(text string, freq uint16, ageDays int32, todayDays int32) (outcome InsertOutcome, ok bool, err error) {
	trimmed := strings.Trim(text, " \t\r\n")
	if len(trimmed) < MinTextLength || len(trimmed) > 50 {
		return 0, false, nil
	}
	if freq == 0 {
		freq = 1
	}
	idx, found := findIndex(s.entries, s.buf, trimmed)
	if found {
		e := s.entries[idx]
		if e.freq < 65535 {
			e.freq++
		}
		e.age = todayDays
		return Updated, true, nil
	}
	if err := s.reserve(len(trimmed)); err != nil {
		return 0, false, err
	}
	offset := s.used
	copy(s.buf[offset:], trimmed)
	s.used += len(trimmed)

	s.nextID++
	e := &entry{
		id:     s.nextID,
		offset: offset,
		length: len(trimmed),
		freq:   freq,
		age:    ageDays,
	}
	s.entries = append(s.entries, nil)
	copy(s.entries[idx+1:], s.entries[idx:len(s.entries)-1])
	s.entries[idx] = e
	s.byHandle[e.id] = e
	s.trie.insert(trimmed, e)
	if len(trimmed) > s.maxLen {
		s.maxLen = len(trimmed)
	}
	return Inserted, true, nil
}

// InsertMany iterates Insert across texts, which may be supplied as a
// single whitespace-separated string (SPEC_FULL §4.5) or as already-split
// words; either way it returns (accepted, total).
func (s *Store) InsertMany(texts []string, ageDays, todayDays int32) (accepted, total int) {
	for _, t := range texts {
		for _, w := range strings.Fields(t) {
			total++
			if _, ok, err := s.Insert(w, 1, ageDays, todayDays); err == nil && ok {
				accepted++
			}
		}
	}
	return accepted, total
}

// Remove deletes the entry for text, if present. Its payload bytes become
// orphaned in the arena until the next grow/compaction.
func (s *Store) Remove(text string) bool {
	idx, found := findIndex(s.entries, s.buf, text)
	if !found {
		return false
	}
	e := s.entries[idx]
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	delete(s.byHandle, e.id)
	s.trie.remove(text)
	if e.length == s.maxLen {
		s.recomputeMaxLen()
	}
	return true
}

func (s *Store) recomputeMaxLen() {
	max := 0
	for _, e := range s.entries {
		if e.length > max {
			max = e.length
		}
	}
	s.maxLen = max
}

// reserve ensures the arena has room for `need` more bytes, growing and
// compacting (dropping orphaned holes) if necessary.
func (s *Store) reserve(need int) error {
	if s.used+need <= len(s.buf) {
		return nil
	}
	cur := len(s.buf)
	grow := cur
	if need > grow {
		grow = need
	}
	newCap := cur + grow
	if newCap < s.used+need {
		newCap = s.used + need
	}
	newBuf := make([]byte, newCap)
	newUsed := 0
	for _, e := range s.entries {
		copy(newBuf[newUsed:], s.buf[e.offset:e.offset+e.length])
		e.offset = newUsed
		newUsed += e.length
	}
	s.buf = newBuf
	s.used = newUsed
	s.trie.reset()
	for _, e := range s.entries {
		s.trie.insert(string(s.buf[e.offset:e.offset+e.length]), e)
	}
	return nil
}

// GetAll returns a key-sorted, read-only snapshot of every live entry.
func (s *Store) GetAll() []EntryView {
	out := make([]EntryView, len(s.entries))
	for i, e := range s.entries {
		out[i] = s.view(e)
	}
	return out
}

// Lookup resolves a Handle obtained earlier in the same query to its
// current view. Returns false if the entry no longer exists.
func (s *Store) Lookup(h Handle) (EntryView, bool) {
	e, ok := s.byHandle[h]
	if !ok {
		return EntryView{}, false
	}
	return s.view(e), true
}

// PrefixMatches returns every live entry whose text has prefix as a
// case-sensitive (byte) prefix; entries that match only case-insensitively
// are not included. It prefers the trie mirror when fresh and falls back to
// a pure binary-search walk otherwise; both must return the same entry set
// (SPEC_FULL §8 property 10). The binary-search walk returns entries in
// sorted order; the trie path returns them in the trie's visiting order.
func (s *Store) PrefixMatches(prefix string, useTrie bool) []EntryView {
	if prefix == "" {
		return nil
	}
	if useTrie && s.trie.fresh(len(s.entries)) {
		return s.trie.visitSubtree(prefix, s)
	}
	return s.prefixBinarySearch(prefix)
}

// prefixBinarySearch is the literal "binary search then walk forward"
// algorithm named by the spec.
func (s *Store) prefixBinarySearch(prefix string) []EntryView {
	idx := sort.Search(len(s.entries), func(i int) bool {
		return string(s.buf[s.entries[i].offset:s.entries[i].offset+s.entries[i].length]) >= prefix
	})
	var out []EntryView
	for i := idx; i < len(s.entries); i++ {
		e := s.entries[i]
		text := string(s.buf[e.offset : e.offset+e.length])
		if !strings.HasPrefix(text, prefix) {
			break
		}
		out = append(out, s.view(e))
	}
	return out
}

// MaxEntryLengthRunes returns the codepoint length of the longest live
// entry, used by §4.3's length-penalty term (L_max).
func (s *Store) MaxEntryLengthRunes() int {
	max := 0
	for _, e := range s.entries {
		n := utf8.RuneCountInString(string(s.buf[e.offset : e.offset+e.length]))
		if n > max {
			max = n
		}
	}
	return max
}
