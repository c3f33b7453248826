package model

// Metadata is the manifest metadata block.
type Metadata struct {
	License string
	Authors []string
}

// ConfigItem is one configuration entry of a module or implementation.
type ConfigItem struct {
	Name        string
	Description string
	Type        Type
	Default     any
}

// Argument is a named command argument.
type Argument struct {
	Name        string
	Description string
	Type        Type
}

// Command is an interface command. Result is nil for commands without a
// result.
type Command struct {
	Name        string
	Description string
	Arguments   []Argument
	Result      Type
}

// Signal is a published interface variable.
type Signal struct {
	Name        string
	Description string
	Type        Type
}

// Interface is a service interface definition.
type Interface struct {
	Name        string
	Description string
	Commands    []Command
	Signals     []Signal
}

// Implementation binds a provided slot to an interface.
type Implementation struct {
	Name        string
	Description string
	Interface   string
	Config      []ConfigItem
}

// Requirement is a required slot with a connection cardinality.
type Requirement struct {
	Name           string
	Interface      string
	MinConnections int
	MaxConnections int
}

// IsCollection reports whether the slot accepts anything other than exactly
// one connection.
func (r Requirement) IsCollection() bool {
	return r.MinConnections != 1 || r.MaxConnections != 1
}

// Module is a module manifest.
type Module struct {
	Name               string
	Description        string
	Config             []ConfigItem
	Implementations    []Implementation
	Requirements       []Requirement
	Metadata           Metadata
	EnableExternalMQTT bool
	EnableTelemetry    bool
}

// Interfaces returns the distinct interface names the module implements or
// requires, in first-use order.
func (m *Module) Interfaces() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, impl := range m.Implementations {
		add(impl.Interface)
	}
	for _, req := range m.Requirements {
		add(req.Interface)
	}
	return names
}
