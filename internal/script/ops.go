// Package script reads dictionary test scripts and replays them against a
// fresh dictionary, comparing every query with the expected value written in
// the script.
package script

import (
	"fmt"
	"strings"
)

// Absent is how a missing definition or sequence is written in a script.
const Absent = "null"

// OpType is the numeric code that starts every operation line
type OpType int

const (
	OpAdd           OpType = 1
	OpRemove        OpType = 2
	OpGetDefinition OpType = 3
	OpCountPrefix   OpType = 4
	OpCompress      OpType = 5
	OpGetSequence   OpType = 6
)

// String returns the operation name
func (t OpType) String() string {
	switch t {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpGetDefinition:
		return "getDefinition"
	case OpCountPrefix:
		return "countPrefix"
	case OpCompress:
		return "compress"
	case OpGetSequence:
		return "getSequence"
	default:
		return fmt.Sprintf("OpType(%d)", int(t))
	}
}

// Op is a single scripted call. Expected is set for queries only.
type Op struct {
	Type       OpType
	Word       string
	Definition string
	Expected   string
	Line       int
}

func (op Op) String() string {
	switch op.Type {
	case OpAdd:
		return fmt.Sprintf("Op:[add %s %q]", op.Word, op.Definition)
	case OpRemove, OpGetDefinition, OpGetSequence, OpCountPrefix:
		return fmt.Sprintf("Op:[%s %s]", op.Type, op.Word)
	case OpCompress:
		return "Op:[compress]"
	default:
		return "Op:[Invalid]"
	}
}

// Script is a parsed test script
type Script struct {
	Name string
	Ops  []Op
}

func (s *Script) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Operations[%d]:{\n", len(s.Ops))
	for _, op := range s.Ops {
		b.WriteString("  ")
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return b.String()
}
