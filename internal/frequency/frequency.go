// Package frequency counts tokens and presents the counts as ordered tables.
package frequency

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Entry represents a token and its number of occurrences
type Entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Table is an ordered mapping from token to count. The order of Entries is
// significant and is kept by every consumer, including JSON output.
type Table struct {
	Entries []Entry
}

// Order selects the presentation of a Table
type Order int

const (
	// OrderAlphabetical sorts keys ordinally ascending
	OrderAlphabetical Order = iota

	// OrderOccurrence sorts by count descending, ties in alphabetical order
	OrderOccurrence
)

// String returns the configuration name of the order
func (o Order) String() string {
	switch o {
	case OrderAlphabetical:
		return "alphabetical"
	case OrderOccurrence:
		return "occurrence"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder maps a configuration name to an Order
func ParseOrder(name string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "alphabetical", "alpha":
		return OrderAlphabetical, nil
	case "occurrence", "count":
		return OrderOccurrence, nil
	default:
		return 0, fmt.Errorf("unknown order %q (want alphabetical or occurrence)", name)
	}
}

// Count builds a table from tokens, skipping empty ones. Entries keep the
// order in which each token was first seen. Counting is case-sensitive.
func Count(tokens []string) Table {
	index := make(map[string]int)
	entries := make([]Entry, 0)

	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if i, ok := index[tok]; ok {
			entries[i].Count++
			continue
		}
		index[tok] = len(entries)
		entries = append(entries, Entry{Key: tok, Count: 1})
	}

	return Table{Entries: entries}
}

// Alphabetical returns a copy of t with keys sorted ordinally ascending
func Alphabetical(t Table) Table {
	out := t.clone()
	sort.Slice(out.Entries, func(i, j int) bool {
		return out.Entries[i].Key < out.Entries[j].Key
	})
	return out
}

// ByOccurrence returns a copy of t stably sorted by count descending.
// Entries with equal counts keep their incoming relative order.
func ByOccurrence(t Table) Table {
	out := t.clone()
	sort.SliceStable(out.Entries, func(i, j int) bool {
		return out.Entries[i].Count > out.Entries[j].Count
	})
	return out
}

// Apply presents t in the requested order. The occurrence order is always
// derived from the alphabetical one so ties are deterministic.
func Apply(order Order, t Table) Table {
	alpha := Alphabetical(t)
	if order == OrderOccurrence {
		return ByOccurrence(alpha)
	}
	return alpha
}

// Len returns the number of distinct keys
func (t Table) Len() int {
	return len(t.Entries)
}

// Get returns the count for key and whether it is present
func (t Table) Get(key string) (int, bool) {
	for _, e := range t.Entries {
		if e.Key == key {
			return e.Count, true
		}
	}
	return 0, false
}

// Keys returns the keys in table order
func (t Table) Keys() []string {
	keys := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Total returns the sum of all counts
func (t Table) Total() int {
	total := 0
	for _, e := range t.Entries {
		total += e.Count
	}
	return total
}

// Top returns the first n entries in table order
func (t Table) Top(n int) Table {
	if n < 0 || n >= len(t.Entries) {
		return t.clone()
	}
	return Table{Entries: append([]Entry(nil), t.Entries[:n]...)}
}

// Map returns the counts as an unordered map
func (t Table) Map() map[string]int {
	m := make(map[string]int, len(t.Entries))
	for _, e := range t.Entries {
		m[e.Key] = e.Count
	}
	return m
}

// MarshalJSON encodes the table as a JSON object whose keys follow table order
func (t Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, e := range t.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, fmt.Errorf("marshaling key %q: %w", e.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", e.Count)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the order of its keys
func (t *Table) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("reading table: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("reading table: expected object, got %v", tok)
	}

	entries := make([]Entry, 0)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("reading table key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("reading table key: unexpected %v", tok)
		}

		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("reading count for %q: %w", key, err)
		}
		entries = append(entries, Entry{Key: key, Count: count})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("reading table end: %w", err)
	}

	t.Entries = entries
	return nil
}

func (t Table) clone() Table {
	return Table{Entries: append(make([]Entry, 0, len(t.Entries)), t.Entries...)}
}
