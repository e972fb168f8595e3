// Package corpus reads tokenized corpora: one sentence per line, tokens separated by whitespace.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/botirk38/embedscore/types"
)

// maxLineSize bounds a single sentence line.
const maxLineSize = 16 * 1024 * 1024

// Read parses a corpus from r. Every line becomes a sentence, including empty lines.
func Read(r io.Reader) (types.Corpus, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var c types.Corpus
	for scanner.Scan() {
		c = append(c, strings.Fields(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return c, nil
}

// Load reads the corpus file at path.
func Load(path string) (types.Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadPair reads a hypothesis and a reference corpus and checks they are aligned.
func LoadPair(hypothesisPath, referencePath string) (hypothesis, reference types.Corpus, err error) {
	hypothesis, err = Load(hypothesisPath)
	if err != nil {
		return nil, nil, err
	}
	reference, err = Load(referencePath)
	if err != nil {
		return nil, nil, err
	}
	if err := CheckAligned(hypothesis, reference); err != nil {
		return nil, nil, err
	}
	return hypothesis, reference, nil
}

// CheckAligned returns ErrCorpusLengthMismatch when the corpora differ in sentence count.
func CheckAligned(hypothesis, reference types.Corpus) error {
	if len(hypothesis) != len(reference) {
		return fmt.Errorf("%w: %d hypothesis sentences, %d reference sentences",
			types.ErrCorpusLengthMismatch, len(hypothesis), len(reference))
	}
	return nil
}

// Vocabulary returns the distinct tokens of the given corpora in sorted order.
func Vocabulary(corpora ...types.Corpus) []string {
	seen := make(map[string]struct{})
	for _, c := range corpora {
		for _, sentence := range c {
			for _, tok := range sentence {
				seen[tok] = struct{}{}
			}
		}
	}

	vocab := make([]string, 0, len(seen))
	for tok := range seen {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)
	return vocab
}
