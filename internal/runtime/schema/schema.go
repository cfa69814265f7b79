// Package schema resolves configured protobuf message names into decode
// capabilities and adapts decoded messages to the field-path navigator.
//
// Resolution happens once, at extractor initialization. The returned
// DecodeFunc is the only thing the hot path touches.
package schema

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	errspkg "github.com/drblury/protostamp/internal/runtime/errors"
	"github.com/drblury/protostamp/internal/runtime/fieldpath"
)

// DecodeFunc turns a serialized payload into a navigable message tree.
type DecodeFunc func(payload []byte) (fieldpath.Node, error)

// Resolver maps configured message names to decode capabilities.
type Resolver interface {
	Resolve(messageName string) (DecodeFunc, error)
}

// TypeResolver finds a message type by its fully qualified protobuf name.
// Both *protoregistry.Types and protoregistry.GlobalTypes satisfy it.
type TypeResolver interface {
	FindMessageByName(name protoreflect.FullName) (protoreflect.MessageType, error)
}

// RegistryResolver resolves message names against a protobuf type registry.
type RegistryResolver struct {
	types TypeResolver
}

// NewRegistryResolver builds a resolver over the given type registry. A nil
// registry falls back to protoregistry.GlobalTypes, i.e. every message type
// linked into the binary.
func NewRegistryResolver(types TypeResolver) *RegistryResolver {
	if types == nil {
		types = protoregistry.GlobalTypes
	}
	return &RegistryResolver{types: types}
}

// Resolve looks the message name up once and returns a DecodeFunc bound to
// the resolved type. Resolution failures are configuration errors; per-payload
// failures inside the returned func are decode errors.
func (r *RegistryResolver) Resolve(messageName string) (DecodeFunc, error) {
	name := protoreflect.FullName(messageName)
	if !name.IsValid() {
		return nil, &errspkg.ConfigurationError{
			Reason: fmt.Sprintf("invalid protobuf message name %q", messageName),
		}
	}
	mt, err := r.types.FindMessageByName(name)
	if err != nil {
		return nil, &errspkg.ConfigurationError{
			Reason: fmt.Sprintf("message %q not registered", messageName),
			Err:    err,
		}
	}

	return func(payload []byte) (fieldpath.Node, error) {
		msg := mt.New().Interface()
		if err := proto.Unmarshal(payload, msg); err != nil {
			return nil, &errspkg.DecodeError{Op: string(name), Err: err}
		}
		return NewMessageNode(msg.ProtoReflect()), nil
	}, nil
}

// NewMessageNode adapts a decoded protoreflect message to the navigator's
// Node interface. Unset singular fields read as their protobuf default value;
// only fields absent from the descriptor are reported as not found.
func NewMessageNode(msg protoreflect.Message) fieldpath.Node {
	return messageNode{msg: msg}
}

type messageNode struct {
	msg protoreflect.Message
}

func (n messageNode) Sub(field string) (fieldpath.Node, error) {
	fd, err := n.lookup(field)
	if err != nil {
		return nil, err
	}
	if fd.IsList() || fd.IsMap() ||
		(fd.Kind() != protoreflect.MessageKind && fd.Kind() != protoreflect.GroupKind) {
		return nil, &errspkg.TypeMismatchError{Field: field, Kind: kindString(fd), Want: "message"}
	}
	return messageNode{msg: n.msg.Get(fd).Message()}, nil
}

func (n messageNode) Uint64(field string) (uint64, error) {
	fd, err := n.lookup(field)
	if err != nil {
		return 0, err
	}
	if fd.IsList() || fd.IsMap() {
		return 0, &errspkg.TypeMismatchError{Field: field, Kind: kindString(fd), Want: "uint64 scalar"}
	}
	switch fd.Kind() {
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind,
		protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return n.msg.Get(fd).Uint(), nil
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind,
		protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		v := n.msg.Get(fd).Int()
		if v < 0 {
			return 0, &errspkg.TypeMismatchError{
				Field: field, Kind: "negative " + kindString(fd), Want: "uint64 scalar",
			}
		}
		return uint64(v), nil
	}
	return 0, &errspkg.TypeMismatchError{Field: field, Kind: kindString(fd), Want: "uint64 scalar"}
}

func (n messageNode) lookup(field string) (protoreflect.FieldDescriptor, error) {
	fd := n.msg.Descriptor().Fields().ByName(protoreflect.Name(field))
	if fd == nil {
		return nil, &errspkg.FieldNotFoundError{
			Field:   field,
			Message: string(n.msg.Descriptor().FullName()),
		}
	}
	return fd, nil
}

func kindString(fd protoreflect.FieldDescriptor) string {
	switch {
	case fd.IsMap():
		return "map"
	case fd.IsList():
		return "repeated " + fd.Kind().String()
	}
	return fd.Kind().String()
}
