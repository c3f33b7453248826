package codegen

import (
	"github.com/cienporcien/everest-core/internal/blocks"
)

// blockSet is the fixed block layout of one artifact kind.
type blockSet struct {
	style       blocks.Style
	version     string
	definitions blocks.Definitions
}

// Template versions printed in generated banners.
const (
	moduleHppTemplateVersion = 2
	implHppTemplateVersion   = 3
)

var moduleHppBlocks = blockSet{
	style:   blocks.CppStyle,
	version: "v1",
	definitions: blocks.Definitions{
		"add_headers":    {ID: "4bf81b14-a215-475c-a1d3-0a484ae48918", Default: "// insert your custom include headers here"},
		"public_defs":    {ID: "1fce4c5e-0ab8-41bb-90f7-14277703d2ac", Default: "// insert your public definitions here"},
		"protected_defs": {ID: "4714b2ab-a24f-4b95-ab81-36439e1478de", Default: "// insert your protected definitions here"},
		"private_defs":   {ID: "211cfdbe-f69a-4cd6-a4ec-f8aaa3d1b6c8", Default: "// insert your private definitions here"},
		"after_class":    {ID: "087e516b-124c-48df-94fb-109508c7cda9", Default: "// insert other definitions here"},
	},
}

var implHppBlocks = blockSet{
	style:   blocks.CppStyle,
	version: "v1",
	definitions: blocks.Definitions{
		"add_headers":    {ID: "75ac1216-19eb-4182-a85c-820f1fc2c091", Default: "// insert your custom include headers here"},
		"public_defs":    {ID: "8ea32d28-373f-4c90-ae5e-b4fcc74e2a61", Default: "// insert your public definitions here"},
		"protected_defs": {ID: "d2d1847a-7b88-41dd-ad07-92785f06f5c4", Default: "// insert your protected definitions here"},
		"private_defs":   {ID: "3370e4dd-95f4-47a9-aaec-ea76f34a66c9", Default: "// insert your private definitions here"},
		"after_class":    {ID: "3d7da0ad-02c2-493d-9920-0bbbd56b9876", Default: "// insert other definitions here"},
	},
}

var cmakeBlocks = blockSet{
	style:   blocks.CMakeStyle,
	version: "v1",
	definitions: blocks.Definitions{
		"add_general": {ID: "bcc62523-e22b-41d7-ba2f-825b493a3c97", Default: "# insert your custom targets and additional config variables here"},
		"add_other":   {ID: "c55432ab-152c-45a9-9d2e-7281d50c69c3", Default: "# insert other things like install cmds etc here"},
	},
}

// calculate returns the block content for a rendering of path.
func (s blockSet) calculate(path string, update bool) (map[string]blocks.Content, error) {
	return s.style.Calculate(s.definitions, s.version, path, update)
}

const cmakeTemplateVersion = 3
