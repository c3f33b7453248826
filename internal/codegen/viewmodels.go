package codegen

import (
	"fmt"
	"sort"
	"strings"

	oerrors "github.com/cienporcien/everest-core/internal/errors"
	"github.com/cienporcien/everest-core/internal/model"
	"github.com/cienporcien/everest-core/internal/typegraph"
)

// TypedItem is a named value with its C++ type.
type TypedItem struct {
	Name        string
	Description string
	JSONType    string
	CppType     string
	IsVariant   bool
	DummyValue  string
}

// ImplementationView describes one provided implementation slot.
type ImplementationView struct {
	ID              string
	Interface       string
	Description     string
	Config          []TypedItem
	ClassName       string
	ClassHeader     string
	CppFile         string
	BaseClass       string
	BaseClassHeader string
}

// RequirementView describes one required slot.
type RequirementView struct {
	ID             string
	Interface      string
	IsVector       bool
	MinConnections int
	MaxConnections int
	ClassName      string
	ExportsHeader  string
}

// ModuleView is the template data shared by all module artifacts.
type ModuleView struct {
	Name               string
	ClassName          string
	Description        string
	HppGuard           string
	Config             []TypedItem
	Provides           []ImplementationView
	Requires           []RequirementView
	EnableExternalMQTT bool
	EnableTelemetry    bool
	License            string
	Authors            []string

	// ProvidedHeaders and RequiredHeaders are deduplicated include paths.
	ProvidedHeaders []string
	RequiredHeaders []string
}

// CommandView describes one interface command.
type CommandView struct {
	Name        string
	Description string
	Args        []TypedItem
	Result      *TypedItem
}

// InterfaceView is the template data for interface artifacts.
type InterfaceView struct {
	Name            string
	Description     string
	Commands        []CommandView
	Vars            []TypedItem
	TypeHeaders     []string
	BaseClassHeader string
}

// FieldView is one member of a generated struct.
type FieldView struct {
	Name     string
	CppType  string
	Optional bool
}

// EnumValueView is one enumerator with its wire value.
type EnumValueView struct {
	Name  string
	Value string
}

// TypeDefView is one named type of a unit.
type TypeDefView struct {
	Name   string
	Kind   string // "struct", "enum" or "alias"
	Fields []FieldView
	Values []EnumValueView
	Alias  string
}

// TypeUnitView is the template data for a type unit header.
type TypeUnitView struct {
	Name        string
	Description string
	HppGuard    string
	Namespaces  []string
	Includes    []string
	Types       []TypeDefView
}

func newTypedItem(name, description string, t model.Type) TypedItem {
	_, isVariant := t.(*model.VariantType)
	return TypedItem{
		Name:        name,
		Description: description,
		JSONType:    jsonKind(t),
		CppType:     CppType(t),
		IsVariant:   isVariant,
		DummyValue:  dummyValue(t),
	}
}

func configItems(items []model.ConfigItem) []TypedItem {
	out := make([]TypedItem, len(items))
	for i, item := range items {
		out[i] = newTypedItem(item.Name, item.Description, item.Type)
	}
	return out
}

// ImplementationFiles returns the header and source paths of an
// implementation, relative to the module directory.
func ImplementationFiles(implName, iface string) (hpp, cpp string) {
	common := implName + "/" + iface
	return common + "Impl.hpp", common + "Impl.cpp"
}

func newImplementationView(impl model.Implementation) ImplementationView {
	hpp, cpp := ImplementationFiles(impl.Name, impl.Interface)
	return ImplementationView{
		ID:              impl.Name,
		Interface:       impl.Interface,
		Description:     impl.Description,
		Config:          configItems(impl.Config),
		ClassName:       impl.Interface + "Impl",
		ClassHeader:     hpp,
		CppFile:         cpp,
		BaseClass:       impl.Interface + "ImplBase",
		BaseClassHeader: "generated/interfaces/" + impl.Interface + "/Implementation.hpp",
	}
}

func newRequirementView(req model.Requirement) RequirementView {
	return RequirementView{
		ID:             req.Name,
		Interface:      req.Interface,
		IsVector:       req.IsCollection(),
		MinConnections: req.MinConnections,
		MaxConnections: req.MaxConnections,
		ClassName:      req.Interface + "Intf",
		ExportsHeader:  "generated/interfaces/" + req.Interface + "/Interface.hpp",
	}
}

// NewModuleView builds the module template data.
func NewModuleView(mod *model.Module) (*ModuleView, error) {
	guard, err := HeaderGuard("_HPP", mod.Name)
	if err != nil {
		return nil, err
	}

	view := &ModuleView{
		Name:               mod.Name,
		ClassName:          mod.Name,
		Description:        mod.Description,
		HppGuard:           guard,
		Config:             configItems(mod.Config),
		EnableExternalMQTT: mod.EnableExternalMQTT,
		EnableTelemetry:    mod.EnableTelemetry,
		License:            SPDXIdentifier(mod.Metadata.License),
		Authors:            mod.Metadata.Authors,
	}
	for _, impl := range mod.Implementations {
		iv := newImplementationView(impl)
		view.Provides = append(view.Provides, iv)
		view.ProvidedHeaders = appendUnique(view.ProvidedHeaders, iv.BaseClassHeader)
	}
	for _, req := range mod.Requirements {
		rv := newRequirementView(req)
		view.Requires = append(view.Requires, rv)
		view.RequiredHeaders = appendUnique(view.RequiredHeaders, rv.ExportsHeader)
	}
	return view, nil
}

// NewInterfaceView builds the interface template data.
func NewInterfaceView(iface *model.Interface) *InterfaceView {
	view := &InterfaceView{
		Name:            iface.Name,
		Description:     iface.Description,
		BaseClassHeader: "generated/interfaces/" + iface.Name + "/Implementation.hpp",
	}

	units := make(map[string]bool)
	collect := func(t model.Type) {
		for _, r := range typegraph.Dependencies(t) {
			units[r.Unit] = true
		}
	}

	for _, cmd := range iface.Commands {
		cv := CommandView{Name: cmd.Name, Description: cmd.Description}
		for _, arg := range cmd.Arguments {
			cv.Args = append(cv.Args, newTypedItem(arg.Name, arg.Description, arg.Type))
			collect(arg.Type)
		}
		if cmd.Result != nil {
			result := newTypedItem("result", "", cmd.Result)
			cv.Result = &result
			collect(cmd.Result)
		}
		view.Commands = append(view.Commands, cv)
	}
	for _, sig := range iface.Signals {
		view.Vars = append(view.Vars, newTypedItem(sig.Name, sig.Description, sig.Type))
		collect(sig.Type)
	}

	for unit := range units {
		view.TypeHeaders = append(view.TypeHeaders, TypeHeader(unit))
	}
	sort.Strings(view.TypeHeaders)
	return view
}

// NewTypeUnitView builds the type header data. order is the dependency
// order of the unit's types.
func NewTypeUnitView(unit *model.TypeUnit, order []string) (*TypeUnitView, error) {
	guard, err := HeaderGuard("_TYPES_HPP", "types_"+unit.Name)
	if err != nil {
		return nil, err
	}
	view := &TypeUnitView{
		Name:        unit.Name,
		Description: unit.Description,
		HppGuard:    guard,
		Namespaces:  model.Reference{Unit: unit.Name}.Namespaces(),
	}
	for _, ext := range typegraph.ExternalUnits(unit) {
		view.Includes = append(view.Includes, TypeHeader(ext))
	}

	for _, name := range order {
		def, err := newTypeDefView(name, unit.Types[name])
		if err != nil {
			return nil, fmt.Errorf("type unit %s: %w", unit.Name, err)
		}
		view.Types = append(view.Types, def)
	}
	return view, nil
}

func newTypeDefView(name string, t model.Type) (TypeDefView, error) {
	switch tt := t.(type) {
	case *model.ObjectType:
		def := TypeDefView{Name: name, Kind: "struct"}
		for _, p := range tt.Properties {
			def.Fields = append(def.Fields, FieldView{
				Name:     p.Name,
				CppType:  CppType(p.Type),
				Optional: !p.Required,
			})
		}
		return def, nil
	case model.StringType:
		if tt.IsEnum {
			def := TypeDefView{Name: name, Kind: "enum"}
			seen := make(map[string]string, len(tt.Enum))
			for _, v := range tt.Enum {
				constant := EnumConstant(v)
				if prev, ok := seen[constant]; ok {
					return TypeDefView{}, oerrors.NewValidationError(
						fmt.Sprintf("enum %s: values %q and %q both map to the C++ enumerator %s", name, prev, v, constant),
						"",
						"Rename one of the enum values",
					)
				}
				seen[constant] = v
				def.Values = append(def.Values, EnumValueView{Name: constant, Value: v})
			}
			return def, nil
		}
	}
	return TypeDefView{Name: name, Kind: "alias", Alias: CppType(t)}, nil
}

func appendUnique(list []string, item string) []string {
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}

// HeaderView carries the license header of generated sources.
type HeaderView struct {
	License string
	Authors []string
}

// Header returns the license header data for the module.
func (m *ModuleView) Header() HeaderView {
	return HeaderView{License: m.License, Authors: m.Authors}
}

// ConstructorParams lists the module class constructor parameters.
func (m *ModuleView) ConstructorParams() string {
	params := []string{"const ModuleInfo& info"}
	if m.EnableExternalMQTT {
		params = append(params, "Everest::MqttProvider& mqtt_provider")
	}
	if m.EnableTelemetry {
		params = append(params, "Everest::TelemetryProvider& telemetry")
	}
	for _, p := range m.Provides {
		params = append(params, fmt.Sprintf("std::unique_ptr<%s> p_%s", p.BaseClass, p.ID))
	}
	for _, r := range m.Requires {
		params = append(params, fmt.Sprintf("%s r_%s", r.MemberType(), r.ID))
	}
	params = append(params, "Conf& config")
	return strings.Join(params, ", ")
}

// ConstructorInits lists the member initializers of the module class.
func (m *ModuleView) ConstructorInits() string {
	inits := []string{"ModuleBase(info)"}
	if m.EnableExternalMQTT {
		inits = append(inits, "mqtt(mqtt_provider)")
	}
	if m.EnableTelemetry {
		inits = append(inits, "telemetry(telemetry)")
	}
	for _, p := range m.Provides {
		inits = append(inits, fmt.Sprintf("p_%[1]s(std::move(p_%[1]s))", p.ID))
	}
	for _, r := range m.Requires {
		inits = append(inits, fmt.Sprintf("r_%[1]s(std::move(r_%[1]s))", r.ID))
	}
	inits = append(inits, "config(config)")
	return strings.Join(inits, ", ")
}

// Members lists the member declarations of the module class.
func (m *ModuleView) Members() []string {
	var members []string
	if m.EnableExternalMQTT {
		members = append(members, "Everest::MqttProvider& mqtt;")
	}
	if m.EnableTelemetry {
		members = append(members, "Everest::TelemetryProvider& telemetry;")
	}
	for _, p := range m.Provides {
		members = append(members, fmt.Sprintf("const std::unique_ptr<%s> p_%s;", p.BaseClass, p.ID))
	}
	for _, r := range m.Requires {
		members = append(members, fmt.Sprintf("const %s r_%s;", r.MemberType(), r.ID))
	}
	return append(members, "const Conf& config;")
}

// MemberType is the C++ type holding the requirement's connection(s).
func (r RequirementView) MemberType() string {
	if r.IsVector {
		return fmt.Sprintf("std::vector<std::unique_ptr<%s>>", r.ClassName)
	}
	return fmt.Sprintf("std::unique_ptr<%s>", r.ClassName)
}

// ReturnType is the C++ return type of the command handler.
func (c CommandView) ReturnType() string {
	if c.Result == nil {
		return "void"
	}
	return c.Result.CppType
}

// Params lists the handler parameters, passed by reference.
func (c CommandView) Params() string {
	params := make([]string, len(c.Args))
	for i, a := range c.Args {
		params[i] = fmt.Sprintf("%s& %s", a.CppType, a.Name)
	}
	return strings.Join(params, ", ")
}

// ConstParams lists the call parameters, passed by const reference.
func (c CommandView) ConstParams() string {
	params := make([]string, len(c.Args))
	for i, a := range c.Args {
		params[i] = fmt.Sprintf("const %s& %s", a.CppType, a.Name)
	}
	return strings.Join(params, ", ")
}

// ArgNames lists the argument names in order.
func (c CommandView) ArgNames() []string {
	names := make([]string, len(c.Args))
	for i, a := range c.Args {
		names[i] = a.Name
	}
	return names
}

// ClosingNamespaces lists the unit namespaces innermost first.
func (u *TypeUnitView) ClosingNamespaces() []string {
	out := make([]string, len(u.Namespaces))
	for i, ns := range u.Namespaces {
		out[len(out)-1-i] = ns
	}
	return out
}
