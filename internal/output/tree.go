package output

import (
	"path"
	"sort"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// statusColumn aligns statuses in the tree.
	statusColumn = 40
)

type treeNode struct {
	name     string
	status   string
	isDir    bool
	children []*treeNode
}

// RenderFileTree renders generated files below root, each with its status.
// files maps slash-separated relative paths to a status word.
func RenderFileTree(root string, files map[string]string) string {
	if len(files) == 0 {
		return ""
	}

	top := &treeNode{name: root, isDir: true}
	for p, status := range files {
		parts := strings.Split(path.Clean(p), "/")
		current := top
		for i, part := range parts {
			leaf := i == len(parts)-1
			child := current.child(part)
			if child == nil {
				child = &treeNode{name: part, isDir: !leaf}
				current.children = append(current.children, child)
			}
			if leaf {
				child.status = status
			}
			current = child
		}
	}
	top.sort()

	var sb strings.Builder
	sb.WriteString(StyleSummary.Render(top.name+"/") + "\n")
	for i, c := range top.children {
		c.render(&sb, "", i == len(top.children)-1)
	}
	return sb.String()
}

func (n *treeNode) child(name string) *treeNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// sort orders directories first, then by name.
func (n *treeNode) sort() {
	sort.Slice(n.children, func(i, j int) bool {
		a, b := n.children[i], n.children[j]
		if a.isDir != b.isDir {
			return a.isDir
		}
		return a.name < b.name
	})
	for _, c := range n.children {
		c.sort()
	}
}

func (n *treeNode) render(sb *strings.Builder, prefix string, last bool) {
	connector, next := treeEdge, treeVert
	if last {
		connector, next = treeLast, treeSpace
	}

	name := n.name
	if n.isDir {
		name += "/"
	}
	line := prefix + connector + name
	if n.status != "" {
		padding := statusColumn - len([]rune(line))
		if padding < 2 {
			padding = 2
		}
		line += strings.Repeat(" ", padding) + statusStyle(n.status).Render(n.status)
	}
	sb.WriteString(line + "\n")

	for i, c := range n.children {
		c.render(sb, prefix+next, i == len(n.children)-1)
	}
}
