// Package dictionary is the public face of the word store. A Dictionary
// starts mutable, backed by a character-per-node trie, and can be compressed
// once into a read-only radix trie that answers the same queries.
//
// A Dictionary is not safe for concurrent use.
package dictionary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kumarlokesh/radix-dictionary/internal/radix"
	"github.com/kumarlokesh/radix-dictionary/internal/trie"
)

// SegmentSeparator joins the segments returned by Sequence.
const SegmentSeparator = "-"

var (
	// ErrFrozen is returned by Add and Remove after Compress; the dictionary is left unchanged
	ErrFrozen = errors.New("dictionary is compressed and read-only")
	// ErrInvalidKey is returned when a word is empty or contains a byte outside 'a'-'z'
	ErrInvalidKey = trie.ErrInvalidKey
)

// Phase represents the lifecycle state of a dictionary
type Phase int

const (
	// PhaseMutable accepts additions and removals
	PhaseMutable Phase = iota
	// PhaseFrozen is read-only and answers queries from the compressed trie
	PhaseFrozen
)

// String returns a string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseMutable:
		return "mutable"
	case PhaseFrozen:
		return "frozen"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Stats describes the current representation
type Stats struct {
	Phase Phase `json:"phase"`
	Words int   `json:"words"`
	Nodes int   `json:"nodes"`
}

// Dictionary maps lowercase words to definitions.
// Exactly one of expanded and compressed is set, as selected by phase.
type Dictionary struct {
	phase      Phase
	expanded   *trie.Trie
	compressed *radix.Tree
	logger     zerolog.Logger
}

// Option configures a Dictionary
type Option func(*Dictionary)

// WithLogger sets the logger used for phase transitions and rejected mutations
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dictionary) {
		d.logger = logger
	}
}

// New creates an empty, mutable dictionary
func New(opts ...Option) *Dictionary {
	d := &Dictionary{
		phase:    PhaseMutable,
		expanded: trie.New(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Phase returns the current phase
func (d *Dictionary) Phase() Phase {
	return d.phase
}

// Add inserts word or replaces its definition.
func (d *Dictionary) Add(word, definition string) error {
	switch d.phase {
	case PhaseMutable:
		return d.expanded.Insert(word, definition)
	default:
		d.logger.Debug().Str("word", word).Msg("Ignoring add on frozen dictionary")
		return ErrFrozen
	}
}

// Remove deletes word. Removing a word that is not present is a no-op.
func (d *Dictionary) Remove(word string) error {
	switch d.phase {
	case PhaseMutable:
		d.expanded.Delete(word)
		return nil
	default:
		d.logger.Debug().Str("word", word).Msg("Ignoring remove on frozen dictionary")
		return ErrFrozen
	}
}

// Definition returns the definition of word, or false if word is absent
func (d *Dictionary) Definition(word string) (string, bool) {
	switch d.phase {
	case PhaseMutable:
		return d.expanded.Search(word)
	default:
		return d.compressed.Search(word)
	}
}

// Sequence returns the compressed-trie segments that spell word, joined by
// SegmentSeparator. It reports false before Compress and for absent words.
func (d *Dictionary) Sequence(word string) (string, bool) {
	switch d.phase {
	case PhaseFrozen:
		segments, ok := d.compressed.Sequence(word)
		if !ok {
			return "", false
		}
		return strings.Join(segments, SegmentSeparator), true
	default:
		return "", false
	}
}

// CountPrefix returns the number of words starting with prefix
func (d *Dictionary) CountPrefix(prefix string) int {
	switch d.phase {
	case PhaseMutable:
		return d.expanded.CountPrefix(prefix)
	default:
		return d.compressed.CountPrefix(prefix)
	}
}

// Keys returns the words starting with prefix in lexicographical order
func (d *Dictionary) Keys(prefix string) []string {
	switch d.phase {
	case PhaseMutable:
		return d.expanded.KeysWithPrefix(prefix)
	default:
		return d.compressed.KeysWithPrefix(prefix)
	}
}

// Stats reports the phase, word count and node count of the live representation
func (d *Dictionary) Stats() Stats {
	switch d.phase {
	case PhaseMutable:
		return Stats{Phase: d.phase, Words: d.expanded.Len(), Nodes: d.expanded.NodeCount()}
	default:
		return Stats{Phase: d.phase, Words: d.compressed.Len(), Nodes: d.compressed.NodeCount()}
	}
}

// Compress rebuilds the dictionary as a radix trie and makes it read-only.
// Calling it again is a no-op.
func (d *Dictionary) Compress() error {
	if d.phase == PhaseFrozen {
		return nil
	}

	before := d.expanded.NodeCount()
	tree, err := radix.Build(d.expanded)
	if err != nil {
		return fmt.Errorf("compress dictionary: %w", err)
	}

	d.compressed = tree
	d.expanded = nil
	d.phase = PhaseFrozen

	d.logger.Debug().
		Int("words", tree.Len()).
		Int("nodes_before", before).
		Int("nodes_after", tree.NodeCount()).
		Msg("Compressed dictionary")
	return nil
}
