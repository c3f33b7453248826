package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cienporcien/everest-core/internal/blocks"
)

func TestNames(t *testing.T) {
	names := Names()
	assert.Len(t, names, 13)
	assert.Contains(t, names, ModuleHpp)
	assert.Contains(t, names, TypeHeader)
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name Name
		want bool
	}{
		{ModuleHpp, true},
		{InterfaceExports, true},
		{"common", false},
		{"", false},
		{"MODULE.HPP", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.name.IsValid())
		})
	}
}

func TestAllTemplatesParse(t *testing.T) {
	tmpl, err := set()
	require.NoError(t, err)
	for _, name := range Names() {
		assert.NotNil(t, tmpl.Lookup(name.file()), "template %s", name)
	}
	assert.NotNil(t, tmpl.Lookup("spdx"))
}

func TestRenderUnknown(t *testing.T) {
	_, err := Render("nope.hpp", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}

type cmakeImpl struct{ CppFile string }

type cmakeModule struct{ Provides []cmakeImpl }

type cmakeData struct {
	TemplateVersion int
	Module          cmakeModule
	Blocks          map[string]blocks.Content
}

func TestRenderCMake(t *testing.T) {
	add := blocks.CMakeStyle.Tag("bcc62523-e22b-41d7-ba2f-825b493a3c97", "v1")
	other := blocks.CMakeStyle.Tag("c55432ab-152c-45a9-9d2e-7281d50c69c3", "v1")
	data := cmakeData{
		TemplateVersion: 3,
		Module: cmakeModule{Provides: []cmakeImpl{
			{CppFile: "main/evse_managerImpl.cpp"},
			{CppFile: "energy/energyImpl.cpp"},
		}},
		Blocks: map[string]blocks.Content{
			"add_general": {Tag: add, Text: "# general", FirstUse: true},
			"add_other":   {Tag: other, Text: "install(FILES x)"},
		},
	}

	out, err := Render(CMakeList, data)
	require.NoError(t, err)

	assert.Contains(t, out, "# template version 3\n")
	assert.Contains(t, out, "ev_setup_cpp_module()\n")
	assert.Contains(t, out, "    PRIVATE\n        \"main/evse_managerImpl.cpp\"\n        \"energy/energyImpl.cpp\"\n)\n")
	assert.Contains(t, out, add+"\n# general\n"+add+"\n")
	assert.Contains(t, out, other+"\ninstall(FILES x)\n"+other)
}

func TestRenderMissingBlock(t *testing.T) {
	data := cmakeData{Blocks: map[string]blocks.Content{}}
	_, err := Render(CMakeList, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executing template CMakeLists.txt")
}

func TestUnderline(t *testing.T) {
	assert.Equal(t, "*****", underline("*", "EvSla"))
	assert.Equal(t, "", underline("=", ""))
}
