// Package medication serves the medication catalog search and the
// gateway-backed lookups: information sheets, interactions, phytotherapy
// interactions, dosage tables and equivalences.
package medication

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// formRewrites collapses equivalent galenic forms before deduplication.
// Order matters: longer descriptions are rewritten first.
var formRewrites = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)comprimé pelliculé sécable`), "comprimé"},
	{regexp.MustCompile(`(?i)comprimé pelliculé`), "comprimé"},
	{regexp.MustCompile(`(?i)comprimé sécable`), "comprimé"},
	{regexp.MustCompile(`(?i)comprimé enrobé`), "comprimé"},
	{regexp.MustCompile(`(?i)comprimé orodispersible`), "comprimé"},
	{regexp.MustCompile(`(?i)gélule à libération prolongée`), "gélule LP"},
	{regexp.MustCompile(`(?i)solution injectable en seringue préremplie`), "solution injectable"},
	{regexp.MustCompile(`(?i)solution injectable en stylo prérempli`), "solution injectable"},
	{regexp.MustCompile(`(?i)solution injectable en cartouche`), "solution injectable"},
	{regexp.MustCompile(`(?i)poudre pour solution buvable en sachet-dose`), "poudre pour solution buvable"},
	{regexp.MustCompile(`(?i)poudre pour solution buvable en sachet`), "poudre pour solution buvable"},
	{regexp.MustCompile(`(?i)granulés pour solution buvable en sachet-dose`), "granulés pour solution buvable"},
	{regexp.MustCompile(`(?i)granulés pour solution buvable`), "poudre pour solution buvable"},
}

func normalizeForm(name string) string {
	for _, r := range formRewrites {
		name = r.pattern.ReplaceAllString(name, r.replacement)
	}
	return name
}

// moleculeKey extracts the deduplication key: everything before the first
// comma (molecule and dosage), lowercased. Names without a comma are used
// whole.
func moleculeKey(name string) string {
	if i := strings.Index(name, ","); i >= 0 {
		return strings.ToLower(strings.TrimSpace(name[:i]))
	}
	return strings.ToLower(strings.TrimSpace(name))
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases and strips diacritics for accent-insensitive matching.
func fold(s string) string {
	out, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Catalog is the in-memory, deduplicated medication list.
type Catalog struct {
	names  []string
	folded []string
}

// NewCatalog deduplicates and sorts raw medication names. Duplicates are
// detected on the molecule+dosage key after galenic form normalization; the
// shortest name wins. Sorting uses French collation.
func NewCatalog(raw []string) *Catalog {
	seen := make(map[string]string, len(raw))
	order := make([]string, 0, len(raw))

	for _, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := moleculeKey(normalizeForm(name))
		existing, ok := seen[key]
		if !ok {
			seen[key] = name
			order = append(order, key)
			continue
		}
		if len(name) < len(existing) {
			seen[key] = name
		}
	}

	names := make([]string, 0, len(order))
	for _, key := range order {
		names = append(names, seen[key])
	}
	collate.New(language.French, collate.Loose).SortStrings(names)

	folded := make([]string, len(names))
	for i, n := range names {
		folded[i] = fold(n)
	}
	return &Catalog{names: names, folded: folded}
}

// LoadCatalog reads the one-column CSV produced from the public medication
// database: a header line followed by one name per line, optionally quoted.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			continue
		}
		line = strings.Trim(line, `"`)
		if line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return NewCatalog(names), nil
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Search returns entries matching the query, accent and case insensitive.
// Prefix matches rank before substring matches; within each group the
// catalog order (French collation) is kept. An empty query returns nothing.
func (c *Catalog) Search(query string) []string {
	q := fold(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var prefixed, contained []string
	for i, f := range c.folded {
		switch {
		case strings.HasPrefix(f, q):
			prefixed = append(prefixed, c.names[i])
		case strings.Contains(f, q):
			contained = append(contained, c.names[i])
		}
	}
	return append(prefixed, contained...)
}
