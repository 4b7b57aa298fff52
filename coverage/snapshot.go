package coverage

import (
	"errors"
	"fmt"
	"os"

	"github.com/uber/h3-go/v4"
	"google.golang.org/protobuf/encoding/protowire"
)

// Snapshot wire layout, protobuf compatible:
//
//	message CoverageSnapshot {
//	  uint32 resolution = 1;
//	  repeated fixed64 cells = 2; // packed, ascending
//	}
const (
	fieldResolution protowire.Number = 1
	fieldCells      protowire.Number = 2
)

var errTruncated = errors.New("truncated coverage snapshot")

// MarshalBinary encodes the index resolution and its sorted cells.
func (ix *Index) MarshalBinary() ([]byte, error) {
	cells := ix.Cells()
	b := protowire.AppendTag(nil, fieldResolution, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(ix.resolution))
	if len(cells) == 0 {
		return b, nil
	}
	packed := make([]byte, 0, 8*len(cells))
	for _, c := range cells {
		packed = protowire.AppendFixed64(packed, uint64(c))
	}
	b = protowire.AppendTag(b, fieldCells, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)
	return b, nil
}

// UnmarshalSnapshot decodes an index produced by MarshalBinary. Both packed
// and unpacked cell encodings are accepted; unknown fields are skipped.
func UnmarshalSnapshot(b []byte) (*Index, error) {
	resolution := DefaultResolution
	var cells []h3.Cell
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == fieldResolution && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			resolution = int(v)
			b = b[n:]
		case num == fieldCells && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			if len(packed)%8 != 0 {
				return nil, errTruncated
			}
			for len(packed) > 0 {
				v, m := protowire.ConsumeFixed64(packed)
				if m < 0 {
					return nil, protowire.ParseError(m)
				}
				cells = append(cells, h3.Cell(v))
				packed = packed[m:]
			}
			b = b[n:]
		case num == fieldCells && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			cells = append(cells, h3.Cell(v))
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	ix, err := NewIndex(resolution)
	if err != nil {
		return nil, err
	}
	for _, c := range cells {
		ix.cells[c] = struct{}{}
	}
	return ix, nil
}

// WriteSnapshot writes the encoded index to path.
func WriteSnapshot(path string, ix *Index) error {
	b, err := ix.MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write coverage snapshot %s: %w", path, err)
	}
	return nil
}

// ReadSnapshot loads an index written by WriteSnapshot.
func ReadSnapshot(path string) (*Index, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read coverage snapshot %s: %w", path, err)
	}
	ix, err := UnmarshalSnapshot(b)
	if err != nil {
		return nil, fmt.Errorf("decode coverage snapshot %s: %w", path, err)
	}
	return ix, nil
}
