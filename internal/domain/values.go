package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"gopkg.in/yaml.v3"
)

// Value is one ABI argument. The concrete types form a closed set; the
// encoder checks each against the declared parameter type.
type Value interface {
	fmt.Stringer
	isValue()
}

// UintValue is an unsigned integer of any width.
type UintValue struct{ V *big.Int }

// IntValue is a signed integer of any width.
type IntValue struct{ V *big.Int }

// AddressValue is a 20 byte account address.
type AddressValue struct{ V common.Address }

// BytesValue covers both bytes and bytesN.
type BytesValue struct{ V []byte }

// BoolValue is a boolean.
type BoolValue struct{ V bool }

// StringValue is a UTF-8 string.
type StringValue struct{ V string }

// ArrayValue covers T[] and T[N].
type ArrayValue struct{ Elems []Value }

// TupleValue is a struct argument, fields in declaration order.
type TupleValue struct{ Fields []Value }

func (UintValue) isValue()    {}
func (IntValue) isValue()     {}
func (AddressValue) isValue() {}
func (BytesValue) isValue()   {}
func (BoolValue) isValue()    {}
func (StringValue) isValue()  {}
func (ArrayValue) isValue()   {}
func (TupleValue) isValue()   {}

func (v UintValue) String() string    { return bigString(v.V) }
func (v IntValue) String() string     { return bigString(v.V) }
func (v AddressValue) String() string { return v.V.Hex() }
func (v BytesValue) String() string   { return hexutil.Encode(v.V) }
func (v BoolValue) String() string    { return fmt.Sprintf("%t", v.V) }
func (v StringValue) String() string  { return fmt.Sprintf("%q", v.V) }
func (v ArrayValue) String() string   { return "[" + joinValues(v.Elems) + "]" }
func (v TupleValue) String() string   { return "(" + joinValues(v.Fields) + ")" }

func bigString(b *big.Int) string {
	if b == nil {
		return "0"
	}
	return b.String()
}

func joinValues(vs []Value) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

// Uint builds an unsigned integer value.
func Uint(v uint64) Value { return UintValue{V: new(big.Int).SetUint64(v)} }

// BigUint builds an unsigned integer value from a big.Int.
func BigUint(v *big.Int) Value { return UintValue{V: new(big.Int).Set(v)} }

// Int builds a signed integer value.
func Int(v int64) Value { return IntValue{V: big.NewInt(v)} }

// BigInt builds a signed integer value from a big.Int.
func BigInt(v *big.Int) Value { return IntValue{V: new(big.Int).Set(v)} }

// Address builds an address value.
func Address(v common.Address) Value { return AddressValue{V: v} }

// Bytes builds a byte string value.
func Bytes(v []byte) Value { return BytesValue{V: v} }

// Bool builds a boolean value.
func Bool(v bool) Value { return BoolValue{V: v} }

// String builds a string value.
func String(v string) Value { return StringValue{V: v} }

// Array builds an array value.
func Array(elems ...Value) Value { return ArrayValue{Elems: elems} }

// Tuple builds a tuple value.
func Tuple(fields ...Value) Value { return TupleValue{Fields: fields} }

// ValuesEqual compares two argument lists by content.
func ValuesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ValueEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ValueEqual compares two values by kind and content.
func ValueEqual(a, b Value) bool {
	switch x := a.(type) {
	case UintValue:
		y, ok := b.(UintValue)
		return ok && bigEqual(x.V, y.V)
	case IntValue:
		y, ok := b.(IntValue)
		return ok && bigEqual(x.V, y.V)
	case AddressValue:
		y, ok := b.(AddressValue)
		return ok && x.V == y.V
	case BytesValue:
		y, ok := b.(BytesValue)
		return ok && string(x.V) == string(y.V)
	case BoolValue:
		y, ok := b.(BoolValue)
		return ok && x.V == y.V
	case StringValue:
		y, ok := b.(StringValue)
		return ok && x.V == y.V
	case ArrayValue:
		y, ok := b.(ArrayValue)
		return ok && ValuesEqual(x.Elems, y.Elems)
	case TupleValue:
		y, ok := b.(TupleValue)
		return ok && ValuesEqual(x.Fields, y.Fields)
	}
	return false
}

func bigEqual(a, b *big.Int) bool {
	if a == nil {
		a = new(big.Int)
	}
	if b == nil {
		b = new(big.Int)
	}
	return a.Cmp(b) == 0
}

// ValueFromNode infers a value from a YAML node: integers become Uint or
// Int, unquoted 0x literals of 20 bytes become addresses and other 0x
// literals bytes, sequences arrays and mappings tuples in key order.
// Quoted scalars stay strings; the encoder converts them when the
// parameter type asks for it.
func ValueFromNode(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) != 1 {
			return nil, fmt.Errorf("line %d: empty document", node.Line)
		}
		return ValueFromNode(node.Content[0])
	case yaml.AliasNode:
		return ValueFromNode(node.Alias)
	case yaml.SequenceNode:
		elems := make([]Value, len(node.Content))
		for i, child := range node.Content {
			v, err := ValueFromNode(child)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return ArrayValue{Elems: elems}, nil
	case yaml.MappingNode:
		fields := make([]Value, 0, len(node.Content)/2)
		for i := 1; i < len(node.Content); i += 2 {
			v, err := ValueFromNode(node.Content[i])
			if err != nil {
				return nil, err
			}
			fields = append(fields, v)
		}
		return TupleValue{Fields: fields}, nil
	case yaml.ScalarNode:
		return scalarValue(node)
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node", node.Line)
}

func scalarValue(node *yaml.Node) (Value, error) {
	quoted := node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0
	if !quoted && has0x(node.Value) {
		raw := common.FromHex(node.Value)
		if len(raw) == common.AddressLength {
			return AddressValue{V: common.BytesToAddress(raw)}, nil
		}
		return BytesValue{V: raw}, nil
	}

	switch node.ShortTag() {
	case "!!int":
		n, ok := new(big.Int).SetString(strings.ReplaceAll(node.Value, "_", ""), 0)
		if !ok {
			return nil, fmt.Errorf("line %d: invalid integer %q", node.Line, node.Value)
		}
		if n.Sign() < 0 {
			return IntValue{V: n}, nil
		}
		return UintValue{V: n}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return BoolValue{V: b}, nil
	case "!!float":
		// integers beyond 64 bits resolve as floats
		if n, ok := new(big.Int).SetString(node.Value, 10); ok {
			if n.Sign() < 0 {
				return IntValue{V: n}, nil
			}
			return UintValue{V: n}, nil
		}
		return nil, fmt.Errorf("line %d: %w: fractional number %s", node.Line, ErrArgumentType, node.Value)
	case "!!null":
		return nil, fmt.Errorf("line %d: %w: null value", node.Line, ErrArgumentType)
	}
	return StringValue{V: node.Value}, nil
}

func has0x(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// UnmarshalYAML reads `args` and `initData` for one network:
//
//	sepolia:
//	  args: [42, "0x..."]
//	  initData:
//	    initMethodName: setName
//	    initMethodArgs: ["sepolia"]
func (n *NetworkArgument) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: network arguments must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "args", "constructorArgs":
			args, err := valueList(val)
			if err != nil {
				return err
			}
			n.ConstructorArgs = args
		case "initData", "initCall":
			call := &InitCall{}
			if err := call.UnmarshalYAML(val); err != nil {
				return err
			}
			n.InitCall = call
		default:
			return fmt.Errorf("line %d: unknown key %q", node.Content[i].Line, key)
		}
	}
	return nil
}

// UnmarshalYAML reads initMethodName and initMethodArgs.
func (c *InitCall) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: init call must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "initMethodName", "method":
			c.MethodName = val.Value
		case "initMethodArgs", "args":
			args, err := valueList(val)
			if err != nil {
				return err
			}
			c.MethodArgs = args
		default:
			return fmt.Errorf("line %d: unknown key %q", node.Content[i].Line, key)
		}
	}
	if c.MethodName == "" {
		return fmt.Errorf("line %d: initMethodName is required", node.Line)
	}
	return nil
}

func valueList(node *yaml.Node) ([]Value, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a list of arguments", node.Line)
	}
	out := make([]Value, len(node.Content))
	for i, child := range node.Content {
		v, err := ValueFromNode(child)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ParseNetworkArgs decodes a YAML (or JSON) document mapping network
// names to their arguments. Document order is preserved.
func ParseNetworkArgs(data []byte) (NetworkArgs, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse network arguments: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: network arguments must map network names to arguments", root.Line)
	}
	out := make(NetworkArgs, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		arg := NetworkArgument{Network: root.Content[i].Value}
		if err := root.Content[i+1].Decode(&arg); err != nil {
			return nil, fmt.Errorf("network %s: %w", arg.Network, err)
		}
		arg.Network = root.Content[i].Value
		out = append(out, arg)
	}
	return out, nil
}
