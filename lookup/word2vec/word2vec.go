// Package word2vec loads embeddings in the binary and text formats of the word2vec C tool.
//
// Both formats start with an ASCII header "<vocabulary size> <dimensions>\n".
// In the binary format each entry is the token, a single space, and the vector as
// little-endian float32 values, optionally followed by a newline. In the text format
// each entry is one line holding the token and its values separated by spaces.
package word2vec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/botirk38/embedscore/lookup/inmemory"
	"github.com/botirk38/embedscore/types"
)

// Options controls how an embedding file is read.
type Options struct {
	// Binary selects the binary format; otherwise the text format is read
	Binary bool

	// Limit caps the number of entries read. Zero reads the whole file.
	Limit int

	// Logger receives load progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// LoadError describes a failure to read an embedding file.
// It matches types.ErrLookupLoad with errors.Is.
type LoadError struct {
	Path  string
	Entry int // zero-based entry index, -1 for the header
	Err   error
}

func (e *LoadError) Error() string {
	if e.Entry < 0 {
		return fmt.Sprintf("%s: %s: header: %v", types.ErrLookupLoad, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s: entry %d: %v", types.ErrLookupLoad, e.Path, e.Entry, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{types.ErrLookupLoad, e.Err}
}

// Load reads the embedding file at path into an in-memory table.
func Load(path string, opts Options) (*inmemory.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Entry: -1, Err: err}
	}
	defer func() { _ = f.Close() }()

	table, err := Read(f, opts)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("loaded embeddings", "path", path, "tokens", table.Len(), "dim", table.Dim(), "binary", opts.Binary)
	return table, nil
}

// Read parses embeddings from r.
func Read(r io.Reader, opts Options) (*inmemory.Table, error) {
	br := bufio.NewReaderSize(r, 1<<20)

	count, dim, err := readHeader(br)
	if err != nil {
		return nil, &LoadError{Entry: -1, Err: err}
	}
	if opts.Limit > 0 && opts.Limit < count {
		count = opts.Limit
	}

	table := inmemory.NewTable(dim)
	for i := 0; i < count; i++ {
		var (
			token string
			vec   types.Vector
		)
		if opts.Binary {
			token, vec, err = readBinaryEntry(br, dim)
		} else {
			token, vec, err = readTextEntry(br, dim)
		}
		if err != nil {
			return nil, &LoadError{Entry: i, Err: err}
		}
		if _, err := table.Add(token, vec); err != nil {
			return nil, &LoadError{Entry: i, Err: err}
		}
	}
	return table, nil
}

func readHeader(br *bufio.Reader) (count, dim int, err error) {
	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return 0, 0, fmt.Errorf("read header: %w", err)
	}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("malformed header %q", strings.TrimSpace(line))
	}
	if count, err = strconv.Atoi(fields[0]); err != nil || count < 0 {
		return 0, 0, fmt.Errorf("malformed vocabulary size %q", fields[0])
	}
	if dim, err = strconv.Atoi(fields[1]); err != nil || dim <= 0 {
		return 0, 0, fmt.Errorf("malformed vector size %q", fields[1])
	}
	return count, dim, nil
}

func readBinaryEntry(br *bufio.Reader, dim int) (string, types.Vector, error) {
	var word []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			return "", nil, fmt.Errorf("read token: %w", unexpected(err))
		}
		if b == ' ' {
			break
		}
		if b == '\n' {
			continue
		}
		word = append(word, b)
	}
	if len(word) == 0 {
		return "", nil, errors.New("empty token")
	}

	buf := make([]byte, 4*dim)
	if _, err := io.ReadFull(br, buf); err != nil {
		return "", nil, fmt.Errorf("read vector for %q: %w", word, unexpected(err))
	}
	vec := make(types.Vector, dim)
	for j := range vec {
		vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*j:]))
	}
	return string(word), vec, nil
}

func readTextEntry(br *bufio.Reader, dim int) (string, types.Vector, error) {
	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", nil, fmt.Errorf("read line: %w", unexpected(err))
	}

	fields := strings.Fields(line)
	if len(fields) != dim+1 {
		return "", nil, fmt.Errorf("expected %d values, got %d", dim, len(fields)-1)
	}
	vec := make(types.Vector, dim)
	for j, field := range fields[1:] {
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return "", nil, fmt.Errorf("token %q value %d: %w", fields[0], j, err)
		}
		vec[j] = float32(v)
	}
	return fields[0], vec, nil
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Write serializes a table in the chosen format, tokens in sorted order.
func Write(w io.Writer, table *inmemory.Table, binaryFormat bool) error {
	bw := bufio.NewWriter(w)
	tokens := table.Tokens()
	if _, err := fmt.Fprintf(bw, "%d %d\n", len(tokens), table.Dim()); err != nil {
		return err
	}

	buf := make([]byte, 4*table.Dim())
	for _, tok := range tokens {
		vec := table.VectorOf(tok)
		if binaryFormat {
			for j, v := range vec {
				binary.LittleEndian.PutUint32(buf[4*j:], math.Float32bits(v))
			}
			if _, err := bw.WriteString(tok + " "); err != nil {
				return err
			}
			if _, err := bw.Write(buf); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
			continue
		}

		values := make([]string, len(vec))
		for j, v := range vec {
			values[j] = strconv.FormatFloat(float64(v), 'g', -1, 32)
		}
		if _, err := fmt.Fprintf(bw, "%s %s\n", tok, strings.Join(values, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}
