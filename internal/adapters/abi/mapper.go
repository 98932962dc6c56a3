package abi

import (
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sahilm/fuzzy"

	"github.com/trebuchet-org/treb-multichain/internal/domain"
	"github.com/trebuchet-org/treb-multichain/internal/usecase"
)

// maxSuggestions bounds the "did you mean" list of an unknown network
const maxSuggestions = 3

// ArgumentMapper encodes per network constructor and init arguments against
// a contract ABI and aligns them with bridge domain ids.
type ArgumentMapper struct {
	log *slog.Logger
}

var _ usecase.ArgumentMapper = (*ArgumentMapper)(nil)

// NewArgumentMapper creates a new ArgumentMapper
func NewArgumentMapper(log *slog.Logger) *ArgumentMapper {
	return &ArgumentMapper{log: log.With("component", "abi")}
}

// ParseABI parses a JSON ABI. An empty document is an empty ABI.
func ParseABI(contractABI string) (*abi.ABI, error) {
	if strings.TrimSpace(contractABI) == "" {
		contractABI = "[]"
	}
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return &parsed, nil
}

// MapNetworkArgs validates every network against the registry and encodes
// its arguments. The output keeps the order of args.
func (m *ArgumentMapper) MapNetworkArgs(contractABI string, args domain.NetworkArgs, domains []domain.Domain) (*domain.EncodedArgs, error) {
	parsed, err := ParseABI(contractABI)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]domain.Domain, len(domains))
	names := make([]string, 0, len(domains))
	for _, d := range domains {
		byName[d.Name] = d
		names = append(names, d.Name)
	}

	var unknown []string
	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		if seen[arg.Network] {
			return nil, fmt.Errorf("network %s is listed more than once", arg.Network)
		}
		seen[arg.Network] = true
		if _, ok := byName[arg.Network]; !ok {
			unknown = append(unknown, arg.Network)
		}
	}
	if len(unknown) > 0 {
		return nil, &domain.UnknownNetworksError{Networks: unknown, Suggestions: suggest(unknown, names)}
	}

	out := &domain.EncodedArgs{
		DomainIDs:       make([]uint8, 0, len(args)),
		Domains:         make([]domain.Domain, 0, len(args)),
		ConstructorArgs: make([][]byte, 0, len(args)),
		InitDatas:       make([][]byte, 0, len(args)),
	}
	for _, arg := range args {
		ctor, err := EncodeConstructorArgs(parsed, arg.ConstructorArgs)
		if err != nil {
			return nil, withNetwork(err, arg.Network)
		}
		initData, err := EncodeInitCall(parsed, arg.InitCall)
		if err != nil {
			return nil, withNetwork(err, arg.Network)
		}

		d := byName[arg.Network]
		out.DomainIDs = append(out.DomainIDs, d.ID)
		out.Domains = append(out.Domains, d)
		out.ConstructorArgs = append(out.ConstructorArgs, ctor)
		out.InitDatas = append(out.InitDatas, initData)
		m.log.Debug("encoded network arguments", "network", d.Name, "domain", d.ID, "ctor_bytes", len(ctor), "init_bytes", len(initData))
	}
	return out, nil
}

// EncodeConstructorArgs ABI encodes constructor arguments without a
// selector. A contract without constructor inputs encodes to nothing.
func EncodeConstructorArgs(parsed *abi.ABI, values []domain.Value) ([]byte, error) {
	inputs := parsed.Constructor.Inputs
	switch {
	case len(inputs) > 0 && len(values) == 0:
		return nil, &domain.ArgumentError{Index: -1, Err: fmt.Errorf("%w: expected %d", domain.ErrMissingConstructorArgs, len(inputs))}
	case len(inputs) == 0 && len(values) > 0:
		return nil, &domain.ArgumentError{Index: -1, Err: fmt.Errorf("%w: got %d", domain.ErrUnexpectedConstructorArgs, len(values))}
	case len(inputs) == 0:
		return []byte{}, nil
	}
	converted, err := convertArgs(inputs, values, "")
	if err != nil {
		return nil, err
	}
	return inputs.Pack(converted...)
}

// EncodeInitCall returns selector ++ arguments for call, or an empty slice
// when there is no init call.
func EncodeInitCall(parsed *abi.ABI, call *domain.InitCall) ([]byte, error) {
	if call == nil {
		return []byte{}, nil
	}
	method, err := lookupMethod(parsed, call.MethodName, len(call.MethodArgs))
	if err != nil {
		return nil, err
	}
	converted, err := convertArgs(method.Inputs, call.MethodArgs, method.RawName)
	if err != nil {
		return nil, err
	}
	packed, err := method.Inputs.Pack(converted...)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, method.ID...), packed...), nil
}

// DecodeConstructorArgs unpacks encoded constructor arguments back into
// values, using the canonical kind of each parameter type.
func DecodeConstructorArgs(parsed *abi.ABI, data []byte) ([]domain.Value, error) {
	inputs := parsed.Constructor.Inputs
	if len(inputs) == 0 {
		if len(data) > 0 {
			return nil, fmt.Errorf("%w: got %d bytes", domain.ErrUnexpectedConstructorArgs, len(data))
		}
		return nil, nil
	}
	unpacked, err := inputs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack constructor args: %w", err)
	}
	return fromNative(inputs, unpacked)
}

// DecodeInitCall resolves the method of an encoded init call and unpacks
// its arguments. Empty data decodes to no call.
func DecodeInitCall(parsed *abi.ABI, data []byte) (*domain.InitCall, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < 4 {
		return nil, fmt.Errorf("init call of %d bytes has no selector", len(data))
	}
	method, err := parsed.MethodById(data[:4])
	if err != nil {
		return nil, err
	}
	unpacked, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s args: %w", method.RawName, err)
	}
	args, err := fromNative(method.Inputs, unpacked)
	if err != nil {
		return nil, err
	}
	return &domain.InitCall{MethodName: method.RawName, MethodArgs: args}, nil
}

func fromNative(inputs abi.Arguments, unpacked []interface{}) ([]domain.Value, error) {
	values := make([]domain.Value, len(unpacked))
	for i, raw := range unpacked {
		v, err := valueOf(inputs[i].Type, reflect.ValueOf(raw))
		if err != nil {
			return nil, &domain.ArgumentError{Index: i, Err: err}
		}
		values[i] = v
	}
	return values, nil
}

func valueOf(t abi.Type, rv reflect.Value) (domain.Value, error) {
	switch t.T {
	case abi.UintTy, abi.IntTy:
		var n *big.Int
		switch rv.Kind() {
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n = new(big.Int).SetUint64(rv.Uint())
		case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n = big.NewInt(rv.Int())
		default:
			b, ok := rv.Interface().(*big.Int)
			if !ok {
				return nil, fmt.Errorf("%w: unexpected %s for %s", domain.ErrArgumentType, rv.Type(), t)
			}
			n = b
		}
		if t.T == abi.UintTy {
			return domain.BigUint(n), nil
		}
		return domain.BigInt(n), nil
	case abi.BoolTy:
		return domain.Bool(rv.Bool()), nil
	case abi.StringTy:
		return domain.String(rv.String()), nil
	case abi.AddressTy:
		return domain.Address(rv.Interface().(common.Address)), nil
	case abi.BytesTy:
		return domain.Bytes(append([]byte{}, rv.Bytes()...)), nil
	case abi.FixedBytesTy:
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), rv)
		return domain.Bytes(b), nil
	case abi.SliceTy, abi.ArrayTy:
		elems := make([]domain.Value, rv.Len())
		for i := range elems {
			e, err := valueOf(*t.Elem, rv.Index(i))
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = e
		}
		return domain.Array(elems...), nil
	case abi.TupleTy:
		fields := make([]domain.Value, len(t.TupleElems))
		for i := range fields {
			f, err := valueOf(*t.TupleElems[i], rv.Field(i))
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", t.TupleRawNames[i], err)
			}
			fields[i] = f
		}
		return domain.Tuple(fields...), nil
	}
	return nil, fmt.Errorf("%w: unsupported parameter type %s", domain.ErrArgumentType, t)
}

// lookupMethod resolves a method by name, by signature, or among overloads
// by argument count.
func lookupMethod(parsed *abi.ABI, name string, argc int) (*abi.Method, error) {
	if method, ok := parsed.Methods[name]; ok && len(method.Inputs) == argc {
		return &method, nil
	}
	var match *abi.Method
	for _, method := range parsed.Methods {
		if method.RawName != name && method.Sig != name {
			continue
		}
		if len(method.Inputs) != argc {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("init method %s is ambiguous, use the full signature", name)
		}
		match = &method
	}
	if match != nil {
		return match, nil
	}
	if method, ok := parsed.Methods[name]; ok {
		return nil, &domain.ArgumentError{Method: name, Index: -1, Err: fmt.Errorf("%w: expected %d, got %d", domain.ErrArgumentCount, len(method.Inputs), argc)}
	}
	return nil, &domain.InitMethodNotFoundError{Method: name}
}

func convertArgs(inputs abi.Arguments, values []domain.Value, method string) ([]interface{}, error) {
	if len(inputs) != len(values) {
		return nil, &domain.ArgumentError{Method: method, Index: -1, Err: fmt.Errorf("%w: expected %d, got %d", domain.ErrArgumentCount, len(inputs), len(values))}
	}
	out := make([]interface{}, len(inputs))
	for i, input := range inputs {
		v, err := convert(input.Type, values[i])
		if err != nil {
			return nil, &domain.ArgumentError{Method: method, Index: i, Param: input.Name, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

// convert turns a Value into the Go type the abi packer expects for t.
func convert(t abi.Type, v domain.Value) (interface{}, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: missing value for %s", domain.ErrArgumentType, t)
	}
	switch t.T {
	case abi.UintTy, abi.IntTy:
		n, err := toInteger(t, v)
		if err != nil {
			return nil, err
		}
		return nativeInteger(t, n), nil

	case abi.BoolTy:
		switch x := v.(type) {
		case domain.BoolValue:
			return x.V, nil
		case domain.StringValue:
			switch strings.ToLower(x.V) {
			case "true":
				return true, nil
			case "false":
				return false, nil
			}
		}

	case abi.StringTy:
		if x, ok := v.(domain.StringValue); ok {
			return x.V, nil
		}

	case abi.AddressTy:
		switch x := v.(type) {
		case domain.AddressValue:
			return x.V, nil
		case domain.StringValue:
			if common.IsHexAddress(x.V) {
				return common.HexToAddress(x.V), nil
			}
		case domain.BytesValue:
			if len(x.V) == common.AddressLength {
				return common.BytesToAddress(x.V), nil
			}
		}

	case abi.BytesTy:
		if b, ok := toBytes(v); ok {
			return b, nil
		}

	case abi.FixedBytesTy:
		b, ok := toBytes(v)
		if !ok || len(b) != t.Size {
			break
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case abi.SliceTy, abi.ArrayTy:
		x, ok := v.(domain.ArrayValue)
		if !ok {
			break
		}
		if t.T == abi.ArrayTy && len(x.Elems) != t.Size {
			return nil, fmt.Errorf("%w: %s needs %d elements, got %d", domain.ErrArgumentType, t, t.Size, len(x.Elems))
		}
		var out reflect.Value
		if t.T == abi.SliceTy {
			out = reflect.MakeSlice(t.GetType(), len(x.Elems), len(x.Elems))
		} else {
			out = reflect.New(t.GetType()).Elem()
		}
		for i, elem := range x.Elems {
			c, err := convert(*t.Elem, elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out.Index(i).Set(reflect.ValueOf(c))
		}
		return out.Interface(), nil

	case abi.TupleTy:
		x, ok := v.(domain.TupleValue)
		if !ok {
			break
		}
		if len(x.Fields) != len(t.TupleElems) {
			return nil, fmt.Errorf("%w: %s needs %d fields, got %d", domain.ErrArgumentType, t, len(t.TupleElems), len(x.Fields))
		}
		out := reflect.New(t.GetType()).Elem()
		for i, field := range x.Fields {
			c, err := convert(*t.TupleElems[i], field)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", t.TupleRawNames[i], err)
			}
			out.Field(i).Set(reflect.ValueOf(c))
		}
		return out.Interface(), nil

	default:
		return nil, fmt.Errorf("%w: unsupported parameter type %s", domain.ErrArgumentType, t)
	}
	return nil, fmt.Errorf("%w: cannot use %s as %s", domain.ErrArgumentType, v, t)
}

func toInteger(t abi.Type, v domain.Value) (*big.Int, error) {
	var n *big.Int
	switch x := v.(type) {
	case domain.UintValue:
		n = x.V
	case domain.IntValue:
		n = x.V
	case domain.StringValue:
		parsed, ok := new(big.Int).SetString(strings.TrimSpace(x.V), 0)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not an integer", domain.ErrArgumentType, v)
		}
		n = parsed
	case domain.BytesValue:
		if t.T != abi.UintTy || len(x.V) > 32 {
			return nil, fmt.Errorf("%w: cannot use %s as %s", domain.ErrArgumentType, v, t)
		}
		n = new(big.Int).SetBytes(x.V)
	default:
		return nil, fmt.Errorf("%w: cannot use %s as %s", domain.ErrArgumentType, v, t)
	}
	if n == nil {
		n = new(big.Int)
	}

	if t.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return nil, fmt.Errorf("%w: %s overflows %s", domain.ErrArgumentType, n, t)
		}
		return n, nil
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
	if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
		return nil, fmt.Errorf("%w: %s overflows %s", domain.ErrArgumentType, n, t)
	}
	return n, nil
}

// nativeInteger matches the Go type go-ethereum maps an integer width to.
func nativeInteger(t abi.Type, n *big.Int) interface{} {
	goType := t.GetType()
	switch goType.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.ValueOf(n.Uint64()).Convert(goType).Interface()
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(n.Int64()).Convert(goType).Interface()
	}
	return new(big.Int).Set(n)
}

func toBytes(v domain.Value) ([]byte, bool) {
	switch x := v.(type) {
	case domain.BytesValue:
		return x.V, true
	case domain.AddressValue:
		return x.V.Bytes(), true
	case domain.StringValue:
		s := strings.TrimSpace(x.V)
		if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
			return nil, false
		}
		b := common.FromHex(s)
		if len(s) > 2 && len(b) == 0 {
			return nil, false
		}
		return b, true
	}
	return nil, false
}

func suggest(unknown, known []string) map[string][]string {
	out := make(map[string][]string)
	for _, name := range unknown {
		matches := fuzzy.Find(name, known)
		for i, match := range matches {
			if i == maxSuggestions {
				break
			}
			out[name] = append(out[name], match.Str)
		}
	}
	return out
}

func withNetwork(err error, network string) error {
	var argErr *domain.ArgumentError
	if errors.As(err, &argErr) {
		argErr.Network = network
		return err
	}
	return fmt.Errorf("%s: %w", network, err)
}
