package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// ErrMalformedScript wraps every parse failure
var ErrMalformedScript = errors.New("malformed script")

// ParseFile parses the script stored at path. The script is named after the file.
func ParseFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Name = filepath.Base(path)
	return s, nil
}

// Parse reads a script: a header whose first token is the number of
// operations, followed by one operation per line. Blank lines are skipped and
// lines after the declared operations are ignored.
func Parse(r io.Reader) (*Script, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	next := func() (string, bool) {
		for scanner.Scan() {
			lineNo++
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	header, ok := next()
	if !ok {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read script: %w", err)
		}
		return nil, fmt.Errorf("missing operation count: %w", ErrMalformedScript)
	}
	countField, _ := splitWord(header)
	numOps, err := strconv.Atoi(countField)
	if err != nil || numOps < 0 {
		return nil, fmt.Errorf("line %d: invalid operation count %q: %w", lineNo, countField, ErrMalformedScript)
	}

	s := &Script{Ops: make([]Op, 0, numOps)}
	for len(s.Ops) < numOps {
		line, ok := next()
		if !ok {
			if err := scanner.Err(); err != nil {
				return nil, fmt.Errorf("failed to read script: %w", err)
			}
			return nil, fmt.Errorf("script declares %d operations, found %d: %w", numOps, len(s.Ops), ErrMalformedScript)
		}
		op, err := parseOp(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		op.Line = lineNo
		s.Ops = append(s.Ops, op)
	}
	return s, nil
}

func parseOp(line string) (Op, error) {
	code, rest := splitWord(line)
	n, err := strconv.Atoi(code)
	if err != nil {
		return Op{}, fmt.Errorf("invalid operation type %q: %w", code, ErrMalformedScript)
	}

	op := Op{Type: OpType(n)}
	switch op.Type {
	case OpAdd:
		op.Word, op.Definition = splitWord(rest)
	case OpRemove:
		op.Word, _ = splitWord(rest)
	case OpGetDefinition, OpGetSequence:
		op.Word, op.Expected = splitWord(rest)
	case OpCountPrefix:
		op.Word, op.Expected = splitWord(rest)
		if _, err := strconv.Atoi(op.Expected); err != nil {
			return Op{}, fmt.Errorf("%s expects an integer result, got %q: %w", op.Type, op.Expected, ErrMalformedScript)
		}
		return op, nil
	case OpCompress:
		return op, nil
	default:
		return Op{}, fmt.Errorf("invalid operation type: %d: %w", n, ErrMalformedScript)
	}

	if op.Word == "" {
		return Op{}, fmt.Errorf("%s is missing its word: %w", op.Type, ErrMalformedScript)
	}
	return op, nil
}

// splitWord splits s into its first whitespace-separated token and the
// trimmed remainder.
func splitWord(s string) (word, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}
