// Package templates provides the embedded C++ and CMake templates used by
// the generator and renders them.
package templates

import (
	"embed"
)

//go:embed cpp/*.tmpl
var cppFS embed.FS

// Name identifies one generated artifact template.
type Name string

const (
	ModuleHpp Name = "module.hpp"
	ModuleCpp Name = "module.cpp"
	ImplHpp   Name = "impl.hpp"
	ImplCpp   Name = "impl.cpp"
	CMakeList Name = "CMakeLists.txt"
	ModuleDoc Name = "doc.rst"
	DocIndex  Name = "index.rst"

	LoaderHpp Name = "ld-ev.hpp"
	LoaderCpp Name = "ld-ev.cpp"

	InterfaceImplementation Name = "interface-Implementation.hpp"
	InterfaceExports        Name = "interface-Interface.hpp"
	InterfaceTypes          Name = "interface-Types.hpp"

	TypeHeader Name = "types.hpp"
)

// Names returns all artifact templates.
func Names() []Name {
	return []Name{
		ModuleHpp, ModuleCpp, ImplHpp, ImplCpp, CMakeList, ModuleDoc, DocIndex,
		LoaderHpp, LoaderCpp,
		InterfaceImplementation, InterfaceExports, InterfaceTypes,
		TypeHeader,
	}
}

// IsValid reports whether name is a known template.
func (n Name) IsValid() bool {
	for _, known := range Names() {
		if n == known {
			return true
		}
	}
	return false
}

func (n Name) file() string {
	return string(n) + ".tmpl"
}
