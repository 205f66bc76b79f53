package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/wateraccounting/wacollect/internal/output"
)

// SchemaCmd prints the command tree as JSON for scripts and wrappers
type SchemaCmd struct {
	Command string `arg:"" optional:"" help:"Command path to describe (e.g., 'key init')"`
	Hidden  bool   `help:"Include hidden flags and commands"`
}

// SchemaNode describes one command
type SchemaNode struct {
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Help     string         `json:"help,omitempty"`
	Aliases  []string       `json:"aliases,omitempty"`
	Flags    []*SchemaValue `json:"flags,omitempty"`
	Args     []*SchemaValue `json:"args,omitempty"`
	Children []*SchemaNode  `json:"commands,omitempty"`
}

// SchemaValue describes a flag or positional argument
type SchemaValue struct {
	Name      string   `json:"name"`
	Help      string   `json:"help,omitempty"`
	Type      string   `json:"type,omitempty"`
	Required  bool     `json:"required,omitempty"`
	Default   string   `json:"default,omitempty"`
	Enum      []string `json:"enum,omitempty"`
	Short     string   `json:"short,omitempty"`
	Env       []string `json:"env,omitempty"`
	Completes string   `json:"completes,omitempty"`
}

// Run executes the schema command
func (cmd *SchemaCmd) Run(ctx *kong.Context, streams *Streams) error {
	target := ctx.Model.Node
	if cmd.Command != "" {
		node, ok := findNodeByPath(target, cmd.Command)
		if !ok {
			return &output.CLIError{
				Message:  fmt.Sprintf("command not found: %s", cmd.Command),
				ExitCode: output.ExitNotFound,
				Hint:     "Run: wacollect schema",
			}
		}
		target = node
	}

	enc := json.NewEncoder(streams.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(buildSchemaNode(target, cmd.Hidden))
}

func buildSchemaNode(node *kong.Node, hidden bool) *SchemaNode {
	schema := &SchemaNode{
		Name:    node.Name,
		Type:    nodeTypeString(node.Type),
		Help:    node.Help,
		Aliases: node.Aliases,
	}

	for _, flag := range node.Flags {
		if flag.Name == "help" || (flag.Hidden && !hidden) {
			continue
		}
		v := schemaValue(flag.Value)
		v.Env = flag.Envs
		if flag.Short != 0 {
			v.Short = string(flag.Short)
		}
		schema.Flags = append(schema.Flags, v)
	}

	for _, arg := range node.Positional {
		schema.Args = append(schema.Args, schemaValue(arg))
	}

	for _, child := range node.Children {
		if child.Hidden && !hidden {
			continue
		}
		schema.Children = append(schema.Children, buildSchemaNode(child, hidden))
	}

	return schema
}

func schemaValue(v *kong.Value) *SchemaValue {
	out := &SchemaValue{
		Name:     v.Name,
		Help:     v.Help,
		Required: v.Required,
		Default:  v.Default,
	}
	if v.Target.IsValid() {
		out.Type = v.Target.Type().String()
	}
	if v.Enum != "" {
		out.Enum = strings.Split(v.Enum, ",")
	}
	if v.Tag != nil {
		out.Completes = v.Tag.Get("predictor")
	}
	return out
}

// findNodeByPath walks the node tree to find a specific command path
func findNodeByPath(root *kong.Node, path string) (*kong.Node, bool) {
	current := root
	for _, part := range strings.Fields(path) {
		var next *kong.Node
		for _, child := range current.Children {
			if child.Name == part {
				next = child
				break
			}
		}
		if next == nil {
			return nil, false
		}
		current = next
	}
	return current, true
}

func nodeTypeString(t kong.NodeType) string {
	switch t {
	case kong.ApplicationNode:
		return "application"
	case kong.CommandNode:
		return "command"
	case kong.ArgumentNode:
		return "argument"
	default:
		return "unknown"
	}
}
