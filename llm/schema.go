package llm

import "github.com/sashabaranov/go-openai/jsonschema"

var actionSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"label": {
			Type:        jsonschema.String,
			Description: "Button text, e.g. 'Open .zshrc'.",
		},
		"type": {
			Type:        jsonschema.String,
			Enum:        []string{"command", "link"},
			Description: "'command' copies value to the clipboard, 'link' opens value as a URL.",
		},
		"value": {
			Type:        jsonschema.String,
			Description: "The command to copy or the URL to open.",
		},
		"group": {
			Type:        jsonschema.String,
			Description: "Optional group tag used to cluster related buttons.",
		},
	},
	Required: []string{"label", "type", "value"},
}

var osContentSchema = jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"explanation": {
			Type:        jsonschema.String,
			Description: "Checklist of tasks for this operating system.",
		},
		"details": {
			Type:        jsonschema.String,
			Description: "Extra detail for this operating system as an outline.",
		},
		"actions": {
			Type:  jsonschema.Array,
			Items: &actionSchema,
		},
	},
	Required: []string{"explanation", "details", "actions"},
}

// StepsSchema is the response contract: an array of guide steps.
var StepsSchema = jsonschema.Definition{
	Type: jsonschema.Array,
	Items: &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"title": {
				Type:        jsonschema.String,
				Description: "Short and simple step title, e.g. 'Step 1: Install the basic tools'.",
			},
			"explanation": {
				Type:        jsonschema.String,
				Description: "Beginner friendly explanation of what happens in this step and why.",
			},
			"command": {
				Type:        jsonschema.String,
				Description: "The exact terminal command to run. Empty string if there is none.",
			},
			"details": {
				Type:        jsonschema.String,
				Description: "Extra notes such as file paths or tips. Empty string if there are none.",
			},
			"actions": {
				Type:        jsonschema.Array,
				Description: "Optional buttons that copy commands or open links.",
				Items:       &actionSchema,
			},
			"isOsSpecific": {
				Type:        jsonschema.Boolean,
				Description: "true ONLY for the environment configuration step.",
			},
			"osInstructions": {
				Type:        jsonschema.Object,
				Description: "Used ONLY when isOsSpecific is true.",
				Properties: map[string]jsonschema.Definition{
					"macos_linux": osContentSchema,
					"windows":     osContentSchema,
				},
			},
		},
		Required: []string{"title", "explanation"},
	},
}
