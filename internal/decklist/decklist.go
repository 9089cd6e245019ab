// Package decklist parses plain-text decklists of the common
// "COUNT NAME (SET) NUMBER" export format, where the set and collector
// number are optional.
package decklist

import (
	"bufio"
	"io"
	"regexp"
	"strings"
)

// linePattern matches one decklist line. Groups: count, card name, optional
// set code, optional collector number.
var linePattern = regexp.MustCompile(`^\s*(\d+)\s+(.+?)(?:\s+\((\w{3,5})\)\s+([\w\d-]+))?\s*$`)

// Entry is one resolved decklist line. Set and Number are empty when the
// line named the card without a printing.
type Entry struct {
	Name   string
	Set    string
	Number string
}

// Key identifies an entry for duplicate suppression: set-number when a
// printing was given, otherwise the card name.
func (e Entry) Key() string {
	if e.Set != "" && e.Number != "" {
		return e.Set + "-" + e.Number
	}
	return e.Name
}

// Parse reads a decklist and returns its unique entries in order, plus the
// lines that did not match the grammar. Counts are ignored: one image serves
// any number of copies.
func Parse(r io.Reader) (entries []Entry, badLines []string, err error) {
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := linePattern.FindStringSubmatch(line)
		if m == nil {
			badLines = append(badLines, line)
			continue
		}

		entry := Entry{
			Name:   strings.TrimSpace(m[2]),
			Set:    strings.ToLower(m[3]),
			Number: m[4],
		}
		if seen[entry.Key()] {
			continue
		}
		seen[entry.Key()] = true
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, badLines, err
	}
	return entries, badLines, nil
}
