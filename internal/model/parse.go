package model

import (
	"errors"
	"fmt"

	"github.com/cienporcien/everest-core/internal/document"
)

// simpleKinds are the kinds allowed as members of a type list.
var simpleKinds = map[string]Type{
	"null":    NullType{},
	"boolean": BooleanType{},
	"integer": IntegerType{},
	"number":  NumberType{},
	"string":  StringType{},
}

// builder carries the context needed to report where a definition failed.
type builder struct {
	path string
	unit string
}

// NewType builds a Type from a single type definition. unit is the name of
// the enclosing type unit, used for local references; pass "" outside of
// type units.
func NewType(path, unit string, def *document.Mapping) (Type, error) {
	b := builder{path: path, unit: unit}
	return b.typeOf(def)
}

func (b builder) typeOf(def *document.Mapping) (Type, error) {
	if ref := def.String("$ref"); ref != "" {
		r, err := ParseReference(ref, b.unit)
		if err != nil {
			var syntaxErr *ReferenceSyntaxError
			if errors.As(err, &syntaxErr) {
				syntaxErr.Path = b.path
				syntaxErr.Line = def.KeyLine("$ref")
			}
			return nil, err
		}
		return r, nil
	}

	raw, ok := def.Get("type")
	if !ok || raw == nil {
		return nil, &UnknownTypeKindError{
			Path:   b.path,
			Line:   def.Line(),
			Reason: "type definition requires a type keyword if no $ref is used",
		}
	}

	switch kind := raw.(type) {
	case []any:
		return b.variantOf(def, kind)
	case string:
		return b.kindOf(def, kind)
	default:
		return nil, &UnknownTypeKindError{
			Path:   b.path,
			Line:   def.KeyLine("type"),
			Kind:   fmt.Sprint(raw),
			Reason: "type keyword must be a string or a list of strings",
		}
	}
}

func (b builder) kindOf(def *document.Mapping, kind string) (Type, error) {
	switch kind {
	case "null":
		return NullType{}, nil
	case "boolean":
		return BooleanType{}, nil
	case "integer":
		return IntegerType{Format: def.String("format")}, nil
	case "number":
		return NumberType{Format: def.String("format")}, nil
	case "string":
		enum := def.Strings("enum")
		return StringType{IsEnum: def.Has("enum"), Enum: enum}, nil
	case "array":
		items, ok := def.Mapping("items")
		if !ok {
			return nil, &UnknownTypeKindError{
				Path:   b.path,
				Line:   def.KeyLine("type"),
				Kind:   kind,
				Reason: "array type requires an items definition",
			}
		}
		itemType, err := b.typeOf(items)
		if err != nil {
			return nil, err
		}
		return &ArrayType{Items: itemType}, nil
	case "object":
		return b.objectOf(def)
	default:
		return nil, &UnknownTypeKindError{
			Path:   b.path,
			Line:   def.KeyLine("type"),
			Kind:   kind,
			Reason: "unknown type",
		}
	}
}

func (b builder) objectOf(def *document.Mapping) (Type, error) {
	required := make(map[string]bool)
	for _, name := range def.Strings("required") {
		required[name] = true
	}

	props, _ := def.Mapping("properties")
	obj := &ObjectType{Properties: make([]Property, 0, props.Len())}
	for _, name := range props.Keys() {
		propDef, ok := props.Mapping(name)
		if !ok {
			return nil, &UnknownTypeKindError{
				Path:   b.path,
				Line:   props.KeyLine(name),
				Reason: fmt.Sprintf("property %q must be a mapping", name),
			}
		}
		t, err := b.typeOf(propDef)
		if err != nil {
			return nil, err
		}
		obj.Properties = append(obj.Properties, Property{Name: name, Type: t, Required: required[name]})
	}
	return obj, nil
}

// variantOf builds a Variant from a list of simple kind names. A null member
// goes first; the rest keep their declared order.
func (b builder) variantOf(def *document.Mapping, kinds []any) (Type, error) {
	line := def.KeyLine("type")
	hasNull := false
	members := make([]Type, 0, len(kinds))

	for _, k := range kinds {
		name, ok := k.(string)
		if !ok {
			return nil, &UnknownTypeKindError{Path: b.path, Line: line, Kind: fmt.Sprint(k), Reason: "type list members must be strings"}
		}
		member, ok := simpleKinds[name]
		if !ok {
			return nil, &UnknownTypeKindError{Path: b.path, Line: line, Kind: name, Reason: "not supported as a variant member"}
		}
		if name == "null" {
			hasNull = true
			continue
		}
		members = append(members, member)
	}

	if hasNull {
		members = append([]Type{NullType{}}, members...)
	}
	return &VariantType{Members: members}, nil
}

// NewTypeUnit builds a TypeUnit from a type definition document.
func NewTypeUnit(doc *document.Document, name string) (*TypeUnit, error) {
	b := builder{path: doc.Path, unit: name}
	defs, _ := doc.Root.Mapping("types")

	unit := &TypeUnit{
		Name:        name,
		Description: doc.Root.String("description"),
		Names:       make([]string, 0, defs.Len()),
		Types:       make(map[string]Type, defs.Len()),
	}
	for _, typeName := range defs.Keys() {
		def, ok := defs.Mapping(typeName)
		if !ok {
			return nil, &UnknownTypeKindError{
				Path:   doc.Path,
				Line:   defs.KeyLine(typeName),
				Reason: fmt.Sprintf("type %q must be a mapping", typeName),
			}
		}
		t, err := b.typeOf(def)
		if err != nil {
			return nil, err
		}
		unit.Names = append(unit.Names, typeName)
		unit.Types[typeName] = t
	}
	return unit, nil
}

// NewInterface builds an Interface from an interface definition document.
func NewInterface(doc *document.Document, name string) (*Interface, error) {
	b := builder{path: doc.Path}
	root := doc.Root

	iface := &Interface{Name: name, Description: root.String("description")}

	cmds, _ := root.Mapping("cmds")
	for _, cmdName := range cmds.Keys() {
		cmdDef, _ := cmds.Mapping(cmdName)
		cmd := Command{Name: cmdName, Description: cmdDef.String("description")}

		args, _ := cmdDef.Mapping("arguments")
		for _, argName := range args.Keys() {
			argDef, _ := args.Mapping(argName)
			t, err := b.typeOf(argDef)
			if err != nil {
				return nil, fmt.Errorf("command %s argument %s: %w", cmdName, argName, err)
			}
			cmd.Arguments = append(cmd.Arguments, Argument{
				Name:        argName,
				Description: argDef.String("description"),
				Type:        t,
			})
		}

		if resultDef, ok := cmdDef.Mapping("result"); ok {
			t, err := b.typeOf(resultDef)
			if err != nil {
				return nil, fmt.Errorf("command %s result: %w", cmdName, err)
			}
			cmd.Result = t
		}
		iface.Commands = append(iface.Commands, cmd)
	}

	vars, _ := root.Mapping("vars")
	for _, varName := range vars.Keys() {
		varDef, _ := vars.Mapping(varName)
		t, err := b.typeOf(varDef)
		if err != nil {
			return nil, fmt.Errorf("var %s: %w", varName, err)
		}
		iface.Signals = append(iface.Signals, Signal{
			Name:        varName,
			Description: varDef.String("description"),
			Type:        t,
		})
	}

	return iface, nil
}

// NewModule builds a Module from a module manifest document. Requirement
// cardinality defaults to exactly one connection and the feature flags
// default to false.
func NewModule(doc *document.Document, name string) (*Module, error) {
	b := builder{path: doc.Path}
	root := doc.Root

	config, err := b.configItems(root)
	if err != nil {
		return nil, err
	}

	meta, _ := root.Mapping("metadata")
	mod := &Module{
		Name:        name,
		Description: root.String("description"),
		Config:      config,
		Metadata: Metadata{
			License: meta.String("license"),
			Authors: meta.Strings("authors"),
		},
		EnableExternalMQTT: root.Bool("enable_external_mqtt", false),
		EnableTelemetry:    root.Bool("enable_telemetry", false),
	}

	provides, _ := root.Mapping("provides")
	for _, implName := range provides.Keys() {
		implDef, _ := provides.Mapping(implName)
		implConfig, err := b.configItems(implDef)
		if err != nil {
			return nil, fmt.Errorf("implementation %s: %w", implName, err)
		}
		mod.Implementations = append(mod.Implementations, Implementation{
			Name:        implName,
			Description: implDef.String("description"),
			Interface:   implDef.String("interface"),
			Config:      implConfig,
		})
	}

	requires, _ := root.Mapping("requires")
	for _, reqName := range requires.Keys() {
		reqDef, _ := requires.Mapping(reqName)
		mod.Requirements = append(mod.Requirements, Requirement{
			Name:           reqName,
			Interface:      reqDef.String("interface"),
			MinConnections: reqDef.Int("min_connections", 1),
			MaxConnections: reqDef.Int("max_connections", 1),
		})
	}

	return mod, nil
}

func (b builder) configItems(parent *document.Mapping) ([]ConfigItem, error) {
	defs, _ := parent.Mapping("config")
	items := make([]ConfigItem, 0, defs.Len())
	for _, itemName := range defs.Keys() {
		def, _ := defs.Mapping(itemName)
		t, err := b.typeOf(def)
		if err != nil {
			return nil, fmt.Errorf("config item %s: %w", itemName, err)
		}
		dflt, _ := def.Get("default")
		items = append(items, ConfigItem{
			Name:        itemName,
			Description: def.String("description"),
			Type:        t,
			Default:     dflt,
		})
	}
	return items, nil
}
