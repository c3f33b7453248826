package codegen

import (
	"strconv"
	"strings"

	"github.com/cienporcien/everest-core/internal/model"
)

// cppTypeName maps a Type to the C++ type used for it.
type cppTypeName struct{}

func (cppTypeName) VisitNull(model.NullType) string       { return "std::nullptr_t" }
func (cppTypeName) VisitBoolean(model.BooleanType) string { return "bool" }

func (cppTypeName) VisitInteger(t model.IntegerType) string {
	switch t.Format {
	case "int64":
		return "int64_t"
	case "int32":
		return "int32_t"
	default:
		return "int"
	}
}

func (cppTypeName) VisitNumber(t model.NumberType) string {
	if t.Format == "float" {
		return "float"
	}
	return "double"
}

func (cppTypeName) VisitString(model.StringType) string { return "std::string" }

func (c cppTypeName) VisitArray(t *model.ArrayType) string {
	return "std::vector<" + model.Visit[string](t.Items, c) + ">"
}

func (cppTypeName) VisitObject(*model.ObjectType) string { return "json" }

func (c cppTypeName) VisitVariant(t *model.VariantType) string {
	members := make([]string, len(t.Members))
	for i, m := range t.Members {
		members[i] = model.Visit[string](m, c)
	}
	return "std::variant<" + strings.Join(members, ", ") + ">"
}

func (cppTypeName) VisitReference(r model.Reference) string {
	return QualifiedTypeName(r)
}

// CppType returns the C++ type name for t.
func CppType(t model.Type) string {
	if t == nil {
		return "void"
	}
	return model.Visit[string](t, cppTypeName{})
}

// QualifiedTypeName returns the namespaced C++ name of a referenced type.
func QualifiedTypeName(r model.Reference) string {
	return "types::" + strings.Join(append(r.Namespaces(), r.Name), "::")
}

// TypeHeader returns the include path of the generated header for a unit.
func TypeHeader(unit string) string {
	return "generated/types/" + unit + ".hpp"
}

// jsonKind names the JSON kind of t, "variant" for unions.
func jsonKind(t model.Type) string {
	if t == nil {
		return ""
	}
	return t.Kind().String()
}

// dummyValue returns a placeholder return value for a command handler.
func dummyValue(t model.Type) string {
	switch tt := t.(type) {
	case model.BooleanType:
		return "true"
	case model.IntegerType:
		return "42"
	case model.NumberType:
		return "3.14"
	case model.StringType:
		if tt.IsEnum && len(tt.Enum) > 0 {
			return strconv.Quote(tt.Enum[0])
		}
		return `"everest"`
	default:
		return "{}"
	}
}
