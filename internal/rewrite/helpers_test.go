package rewrite

import (
	"fmt"
	"unicode/utf8"

	"github.com/meigma/banner/internal/bannertype"
)

// memSource serves entry content from a map keyed by archive index.
type memSource struct {
	files map[int][]byte
	reads map[int]int
}

func newMemSource() *memSource {
	return &memSource{files: make(map[int][]byte), reads: make(map[int]int)}
}

func (s *memSource) ReadBinary(index int) ([]byte, error) {
	data, ok := s.files[index]
	if !ok {
		return nil, fmt.Errorf("%w: no entry %d", bannertype.ErrEntryUnreadable, index)
	}
	s.reads[index]++
	return data, nil
}

func (s *memSource) ReadText(index int) (string, error) {
	data, err := s.ReadBinary(index)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", bannertype.ErrInvalidEncoding
	}
	return string(data), nil
}

// bundle is a fixture: entries in archive order plus their content.
type bundle struct {
	source  *memSource
	entries []bannertype.ResolvedEntry
}

func newBundle() *bundle {
	return &bundle{source: newMemSource()}
}

func (b *bundle) add(relPath string, data []byte) *bundle {
	idx := len(b.entries)
	b.entries = append(b.entries, bannertype.ResolvedEntry{Index: idx, RelativePath: relPath})
	b.source.files[idx] = data
	return b
}
