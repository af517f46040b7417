package main

import "github.com/google/generative-ai-go/genai"

// convertSchema maps a JSON schema decoded from an MCP tool listing onto a Gemini schema
func convertSchema(schema any) *genai.Schema {
	schemaMap, ok := schema.(map[string]any)
	if !ok {
		return &genai.Schema{Type: genai.TypeObject}
	}

	result := &genai.Schema{Type: schemaType(schemaMap)}

	if desc, ok := schemaMap["description"].(string); ok {
		result.Description = desc
	}

	if required, ok := schemaMap["required"].([]any); ok {
		for _, req := range required {
			if reqStr, ok := req.(string); ok {
				result.Required = append(result.Required, reqStr)
			}
		}
	}

	if properties, ok := schemaMap["properties"].(map[string]any); ok {
		result.Properties = make(map[string]*genai.Schema, len(properties))
		for name, prop := range properties {
			result.Properties[name] = convertSchema(prop)
		}
	}

	if items, ok := schemaMap["items"]; ok {
		result.Items = convertSchema(items)
	}

	return result
}

// schemaType reads "type" as a string or as a list such as ["null", "string"]
func schemaType(schemaMap map[string]any) genai.Type {
	var name string
	switch v := schemaMap["type"].(type) {
	case string:
		name = v
	case []any:
		for _, t := range v {
			if s, ok := t.(string); ok && s != "null" {
				name = s
				break
			}
		}
	}

	switch name {
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeObject
	}
}
