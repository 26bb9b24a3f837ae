package symbol

import (
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/interner/pkg/safeconv"
)

// noneText is how the sentinel prints.
const noneText = "none"

// errSentinelEncode is returned when asked to encode a sentinel.
var errSentinelEncode = errors.New("symbol: cannot encode the reserved sentinel")

func format[S Symbol[S]](sym S) string {
	if IsNone(sym) {
		return noneText
	}

	return strconv.Itoa(sym.Index())
}

func marshalIndex[S Symbol[S]](sym S) ([]byte, error) {
	if IsNone(sym) {
		return nil, errSentinelEncode
	}

	return strconv.AppendInt(nil, int64(sym.Index()), 10), nil
}

// parseIndex decodes text as an unsigned index of the given bit size and
// mints the symbol for it.
func parseIndex[S Symbol[S]](text []byte, bitSize int) (S, error) {
	raw, err := strconv.ParseUint(string(text), 10, bitSize)
	if err != nil {
		return None[S](), fmt.Errorf("%w: %w", ErrInvalidIndex, err)
	}

	if raw > uint64(safeconv.MaxInt) {
		return None[S](), fmt.Errorf("%w: %d overflows int", ErrInvalidIndex, raw)
	}

	sym, ok := New[S](int(raw))
	if !ok {
		return sym, fmt.Errorf("%w: %d is reserved for %T", ErrInvalidIndex, raw, sym)
	}

	return sym, nil
}

func unmarshalIndex[S Symbol[S]](dst *S, text []byte, bitSize int) error {
	sym, err := parseIndex[S](text, bitSize)
	if err != nil {
		return err
	}

	*dst = sym

	return nil
}

// unmarshalJSON accepts a bare number or a quoted one. encoding/json hands
// map keys to UnmarshalJSON still quoted.
func unmarshalJSON[S Symbol[S]](dst *S, data []byte, bitSize int) error {
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}

	return unmarshalIndex(dst, data, bitSize)
}

func marshalYAML[S Symbol[S]](sym S) (any, error) {
	if IsNone(sym) {
		return nil, errSentinelEncode
	}

	return sym.Index(), nil
}

func unmarshalYAML[S Symbol[S]](dst *S, node *yaml.Node, bitSize int) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: expected a scalar, got kind %d", ErrInvalidIndex, node.Kind)
	}

	return unmarshalIndex(dst, []byte(node.Value), bitSize)
}
