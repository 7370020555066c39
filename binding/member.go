package binding

import (
	"fmt"
	"math"
	"reflect"
)

// MemberKind tells properties from methods.
type MemberKind uint8

const (
	PropertyMember MemberKind = iota + 1
	MethodMember
)

func (k MemberKind) String() string {
	switch k {
	case PropertyMember:
		return "property"
	case MethodMember:
		return "method"
	default:
		return "unknown"
	}
}

// Source tells which store answers a lookup for a member.
type Source uint8

const (
	BuiltIn Source = iota + 1
	ExpandoSource
)

func (s Source) String() string {
	switch s {
	case BuiltIn:
		return "builtin"
	case ExpandoSource:
		return "expando"
	default:
		return "unknown"
	}
}

// ArgKind is the accepted shape of a single argument or property value.
type ArgKind uint8

const (
	// ArgAny accepts every value, nil included.
	ArgAny ArgKind = iota
	// ArgString accepts Go strings only.
	ArgString
	// ArgNumber accepts Go integer and float kinds.
	ArgNumber
	// ArgBool accepts bool.
	ArgBool
	// ArgFunc accepts invocable values.
	ArgFunc
	// ArgTarget accepts values of the bound target type (for example another element).
	ArgTarget
)

func (k ArgKind) String() string {
	switch k {
	case ArgAny:
		return "any"
	case ArgString:
		return "string"
	case ArgNumber:
		return "number"
	case ArgBool:
		return "boolean"
	case ArgFunc:
		return "function"
	case ArgTarget:
		return "target"
	default:
		return "unknown"
	}
}

// Param describes one formal parameter of a built-in method.
type Param struct {
	Name     string
	Kind     ArgKind
	Optional bool
}

// Member describes one built-in member of a class. Properties set Get and,
// when writable, Set. Methods set Call and Params.
type Member[T any] struct {
	Name   string
	Kind   MemberKind
	Since  Level
	Static bool
	Hidden bool

	// Value is the accepted shape for writes to a property.
	Value ArgKind
	Get   func(T) (any, error)
	Set   func(T, any) error

	Params []Param
	Call   func(T, []any) (any, error)
}

// ReadOnly reports whether the member rejects writes.
func (m *Member[T]) ReadOnly() bool {
	return m.Kind != PropertyMember || m.Set == nil
}

func (m *Member[T]) info() MemberInfo {
	params := make([]Param, len(m.Params))
	copy(params, m.Params)
	return MemberInfo{
		Name:     m.Name,
		Kind:     m.Kind,
		Source:   BuiltIn,
		ReadOnly: m.ReadOnly(),
		Static:   m.Static,
		Hidden:   m.Hidden,
		Since:    m.Since,
		Params:   params,
	}
}

// MemberInfo is the caller-facing view of a member, built-in or expando.
type MemberInfo struct {
	Name     string
	Kind     MemberKind
	Source   Source
	ReadOnly bool
	Static   bool
	Hidden   bool
	Since    Level
	Params   []Param
}

// Filter selects members during enumeration, like a set of binding flags.
type Filter uint8

const (
	Instance Filter = 1 << iota
	Static
	Public
	NonPublic

	// DefaultFilter selects every visible member.
	DefaultFilter = Instance | Static | Public
	// AllMembers also selects hidden members.
	AllMembers = Instance | Static | Public | NonPublic
)

func (f Filter) normalize() Filter {
	if f == 0 {
		return DefaultFilter
	}
	return f
}

// Matches reports whether a member with the given info passes the filter.
func (f Filter) Matches(mi MemberInfo) bool {
	f = f.normalize()
	if mi.Static {
		if f&Static == 0 {
			return false
		}
	} else if f&Instance == 0 {
		return false
	}
	if mi.Hidden {
		return f&NonPublic != 0
	}
	return f&Public != 0
}

// checkArgs validates args against params without coercing anything.
func checkArgs[T any](params []Param, args []any) error {
	required := 0
	for _, p := range params {
		if !p.Optional {
			required++
		}
	}
	if len(args) < required || len(args) > len(params) {
		if required == len(params) {
			return fmt.Errorf("expected %d argument(s), got %d", len(params), len(args))
		}
		return fmt.Errorf("expected %d to %d argument(s), got %d", required, len(params), len(args))
	}
	for i, arg := range args {
		if !accepts[T](params[i].Kind, arg) {
			return fmt.Errorf("argument %d (%s) must be %s, got %T", i, params[i].Name, params[i].Kind, arg)
		}
	}
	return nil
}

func accepts[T any](kind ArgKind, v any) bool {
	switch kind {
	case ArgAny:
		return true
	case ArgString:
		_, ok := v.(string)
		return ok
	case ArgNumber:
		_, ok := ToFloat(v)
		return ok
	case ArgBool:
		_, ok := v.(bool)
		return ok
	case ArgFunc:
		_, ok := asInvocable(v)
		return ok
	case ArgTarget:
		_, ok := v.(T)
		return ok && !isNil(v)
	}
	return false
}

// isNil reports whether v holds a nil pointer, map, slice, func or chan.
func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// ToFloat converts the Go numeric kinds to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// ToInt converts an integral numeric value to int.
func ToInt(v any) (int, bool) {
	f, ok := ToFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
