// Package prompts provides MCP prompt templates loaded from embedded YAML.
package prompts

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var templateFS embed.FS

// ErrUnknownPrompt is returned when a prompt name is not in the catalog.
var ErrUnknownPrompt = fmt.Errorf("unknown prompt")

// promptFile mirrors the structure of templates/prompts.yaml.
type promptFile struct {
	Prompts []promptSpec `yaml:"prompts"`
}

type promptSpec struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Template    string       `yaml:"template"`
	Arguments   []argumentSpec `yaml:"arguments"`
}

type argumentSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
}

// Catalog holds the parsed prompt templates.
type Catalog struct {
	specs map[string]promptSpec
	order []string
}

// Load parses the embedded prompt templates.
func Load() (*Catalog, error) {
	data, err := templateFS.ReadFile("templates/prompts.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded prompts: %w", err)
	}

	var file promptFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing prompt templates: %w", err)
	}

	c := &Catalog{specs: make(map[string]promptSpec, len(file.Prompts))}
	for _, spec := range file.Prompts {
		if spec.Name == "" || spec.Template == "" {
			return nil, fmt.Errorf("prompt template missing name or template body")
		}
		c.specs[spec.Name] = spec
		c.order = append(c.order, spec.Name)
	}
	return c, nil
}

// Names returns the prompt names in file order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}

// Render expands a prompt template with the given arguments. Missing
// required arguments are an error; missing optional ones render empty.
func (c *Catalog) Render(name string, args map[string]string) (string, error) {
	spec, ok := c.specs[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPrompt, name)
	}

	for _, arg := range spec.Arguments {
		if arg.Required {
			if v, ok := args[arg.Name]; !ok || v == "" {
				return "", fmt.Errorf("prompt %s: missing required argument %q", name, arg.Name)
			}
		}
	}

	text := spec.Template
	for _, arg := range spec.Arguments {
		value := args[arg.Name]
		if value == "" && !arg.Required {
			value = defaultFor(arg.Name)
		}
		text = strings.ReplaceAll(text, "{{"+arg.Name+"}}", value)
	}
	return strings.TrimRight(text, "\n"), nil
}

func defaultFor(argName string) string {
	if argName == "name" {
		return "there"
	}
	return ""
}

// RegisterAll registers every catalog prompt on the server.
func RegisterAll(server *mcp.Server, catalog *Catalog) {
	for _, name := range catalog.Names() {
		spec := catalog.specs[name]

		prompt := &mcp.Prompt{
			Name:        spec.Name,
			Description: spec.Description,
		}
		for _, arg := range spec.Arguments {
			prompt.Arguments = append(prompt.Arguments, &mcp.PromptArgument{
				Name:        arg.Name,
				Description: arg.Description,
				Required:    arg.Required,
			})
		}

		promptName := spec.Name
		server.AddPrompt(prompt, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			var args map[string]string
			if req.Params != nil {
				args = req.Params.Arguments
			}
			text, err := catalog.Render(promptName, args)
			if err != nil {
				return nil, err
			}
			return &mcp.GetPromptResult{
				Description: spec.Description,
				Messages: []*mcp.PromptMessage{
					{
						Role:    "user",
						Content: &mcp.TextContent{Text: text},
					},
				},
			}, nil
		})
	}
}
