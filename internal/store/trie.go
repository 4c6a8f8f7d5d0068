package store

import (
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
)

// trieMirror is a non-authoritative radix-trie index over the Store's
// sorted view, used to accelerate the prefix primitive and to cache up to
// hotCacheCapacity visited short prefixes, evicting the prefix that was
// cached earliest (a cache hit does not refresh its place). It is rebuilt
// wholesale whenever
// the arena is compacted (trie.reset, called from reserve) and updated
// incrementally on single insert/remove, mirroring
// pkg/suggest/trie.go/cache.go's SearchTrie + HotCache split in the
// teacher repo.
type trieMirror struct {
	t        *patricia.Trie
	size     int // entry count the trie was built against
	hotCache map[string][]Handle
	hotOrder []string
}

const hotCacheCapacity = 64

func newTrieMirror() *trieMirror {
	return &trieMirror{t: patricia.NewTrie(), hotCache: make(map[string][]Handle)}
}

func (m *trieMirror) reset() {
	m.t = patricia.NewTrie()
	m.size = 0
	m.hotCache = make(map[string][]Handle)
	m.hotOrder = nil
}

func (m *trieMirror) insert(text string, e *entry) {
	m.t.Insert(patricia.Prefix(text), e)
	m.size++
	m.invalidateHotCache()
}

func (m *trieMirror) remove(text string) {
	m.t.Delete(patricia.Prefix(text))
	m.size--
	m.invalidateHotCache()
}

func (m *trieMirror) invalidateHotCache() {
	m.hotCache = make(map[string][]Handle)
	m.hotOrder = nil
}

// fresh reports whether the trie has seen exactly as many live entries as
// the Store currently holds; the Store calls reset()+reinsert on every
// grow, so size staying in lockstep with liveCount is sufficient evidence
// the mirror isn't stale.
func (m *trieMirror) fresh(liveCount int) bool {
	return m.size == liveCount
}

func (m *trieMirror) visitSubtree(prefix string, s *Store) []EntryView {
	if cached, ok := m.hotCache[prefix]; ok {
		out := make([]EntryView, 0, len(cached))
		for _, h := range cached {
			if v, ok := s.Lookup(h); ok {
				out = append(out, v)
			}
		}
		return out
	}

	var out []EntryView
	var handles []Handle
	_ = m.t.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		e, ok := item.(*entry)
		if !ok {
			return nil
		}
		out = append(out, s.view(e))
		handles = append(handles, e.id)
		return nil
	})

	if utf8.RuneCountInString(prefix) <= 2 {
		m.cacheHot(prefix, handles)
	}
	return out
}

func (m *trieMirror) cacheHot(prefix string, handles []Handle) {
	if _, exists := m.hotCache[prefix]; !exists {
		if len(m.hotOrder) >= hotCacheCapacity {
			evict := m.hotOrder[0]
			m.hotOrder = m.hotOrder[1:]
			delete(m.hotCache, evict)
		}
		m.hotOrder = append(m.hotOrder, prefix)
	}
	m.hotCache[prefix] = handles
}
