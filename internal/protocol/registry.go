package protocol

import (
	"fmt"
	"reflect"
	"strings"
)

// FieldType is the semantic type of a packet field, as used by the
// codec to coerce raw text.
type FieldType int

const (
	FieldInt FieldType = iota
	FieldOptByte
	FieldBool
	FieldString
	FieldIntList
	FieldPacketList
)

// Field describes one schema entry of a packet type.
type Field struct {
	Name string
	Type FieldType
	// index of the corresponding struct field
	index int
}

var constructors = map[string]func() Packet{}
var schemas = map[string][]Field{}

func register(p Packet) {
	name := p.Kind().String()
	typ := reflect.TypeOf(p)
	constructors[name] = func() Packet {
		return reflect.New(typ).Interface().(Packet)
	}
	schemas[name] = buildSchema(typ)
}

func buildSchema(typ reflect.Type) []Field {
	var fields []Field
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		tag, ok := sf.Tag.Lookup("packet")
		if !ok {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		f := Field{Name: name, index: i}
		switch sf.Type.Kind() {
		case reflect.Int:
			f.Type = FieldInt
			if opts == "optbyte" {
				f.Type = FieldOptByte
			}
		case reflect.Bool:
			f.Type = FieldBool
		case reflect.String:
			f.Type = FieldString
		case reflect.Slice:
			if sf.Type.Elem().Kind() == reflect.Int {
				f.Type = FieldIntList
			} else {
				f.Type = FieldPacketList
			}
		default:
			panic(fmt.Sprintf("protocol: unsupported field type %s on %s.%s",
				sf.Type, typ.Name(), sf.Name))
		}
		fields = append(fields, f)
	}
	return fields
}

func init() {
	for _, p := range []Packet{
		AuthOk{}, AuthRefused{}, Serial{}, PlayerInfo{}, UserInfo{},
		TableList{}, Table{}, BuyInLimits{}, Start{}, Position{},
		Seats{}, PlayerArrive{}, PlayerLeave{}, PlayerChips{},
		PlayerCards{}, BoardCards{}, State{}, InGame{}, Dealer{},
		Sit{}, SitOut{}, Rebuy{}, Fold{}, Check{}, Call{}, Raise{},
		Blind{}, Login{}, SetRole{}, GetPlayerInfo{}, GetUserInfo{},
		TableSelect{}, TableJoin{}, Seat{}, BuyIn{}, AutoBlindAnte{},
		TableQuit{},
	} {
		register(p)
	}
}

// Lookup returns the ordered field schema for a packet type name.
func Lookup(name string) ([]Field, error) {
	schema, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPacketNotFound, name)
	}
	return schema, nil
}
