package codec

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// ErrNilValue is returned by TypeName for a nil value.
var ErrNilValue = errors.New("nil value has no type")

var types = struct {
	sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}{
	byName: make(map[string]reflect.Type),
	byType: make(map[reflect.Type]string),
}

func init() {
	for _, v := range []any{
		false, "",
		int(0), int8(0), int16(0), int32(0), int64(0),
		uint(0), uint8(0), uint16(0), uint32(0), uint64(0),
		float32(0), float64(0),
		[]byte(nil), []string(nil), []int(nil), []int64(nil), []float64(nil), []any(nil),
		map[string]any(nil), map[string]string(nil), map[string]int(nil), map[string]float64(nil),
		time.Time{}, time.Duration(0),
	} {
		Register(v)
	}
}

// Register records the type of value so that stored values of that type
// can be decoded back into it. Register panics if another type was
// registered under the same name.
//
// Put registers the types it stores, so a process reads back what it
// wrote. A process reading records written elsewhere must register those
// types itself, typically in an init function.
func Register(value any) {
	rt := reflect.TypeOf(value)
	if rt == nil {
		panic(ErrNilValue)
	}
	RegisterName(typeName(rt), value)
}

// RegisterName is Register with an explicit name.
func RegisterName(name string, value any) {
	rt := reflect.TypeOf(value)
	if rt == nil {
		panic(ErrNilValue)
	}
	types.Lock()
	defer types.Unlock()

	if cur, ok := types.byName[name]; ok && cur != rt {
		panic(fmt.Sprintf("codec: registering duplicate types for %q: %s != %s", name, cur, rt))
	}
	if cur, ok := types.byType[rt]; ok && cur != name {
		return
	}
	types.byName[name] = rt
	types.byType[rt] = name
}

// TypeName returns the registered name of value's type, registering it
// first if needed.
func TypeName(value any) (string, error) {
	rt := reflect.TypeOf(value)
	if rt == nil {
		return "", ErrNilValue
	}

	types.RLock()
	name, ok := types.byType[rt]
	types.RUnlock()
	if ok {
		return name, nil
	}

	name = typeName(rt)
	types.Lock()
	defer types.Unlock()
	if cur, ok := types.byName[name]; ok && cur != rt {
		return "", fmt.Errorf("type name %q is taken by %s", name, cur)
	}
	types.byName[name] = rt
	types.byType[rt] = name
	return name, nil
}

// New returns a pointer to a new zero value of the type registered as
// name.
func New(name string) (reflect.Value, bool) {
	types.RLock()
	rt, ok := types.byName[name]
	types.RUnlock()
	if !ok {
		return reflect.Value{}, false
	}
	return reflect.New(rt), true
}

// typeName qualifies named types with their package path; unnamed types
// use their Go syntax.
func typeName(rt reflect.Type) string {
	star := ""
	if rt.Name() == "" && rt.Kind() == reflect.Pointer {
		star = "*"
		rt = rt.Elem()
	}
	if rt.Name() != "" && rt.PkgPath() != "" {
		return star + rt.PkgPath() + "." + rt.Name()
	}
	return star + rt.String()
}
