package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	jsonschema "github.com/swaggest/jsonschema-go"
	"github.com/voyagent/voyagent/src/aisdk"
)

// GenericTool is a type-safe tool with an automatically generated parameter
// schema. Input validation is done with Go's type system plus a required-field
// check against the reflected schema.
type GenericTool[TInput any, TOutput any] struct {
	Type        string
	Name        string
	Description string
	InputType   reflect.Type
	OutputType  reflect.Type
	Schema      *jsonschema.Schema
	Handler     GenericToolHandler[TInput, TOutput]
}

// GenericToolHandler is a type-safe handler function
type GenericToolHandler[TInput any, TOutput any] func(ctx context.Context, input TInput) (TOutput, error)

// GetType returns the tool type (always "function" for now)
func (gt *GenericTool[TInput, TOutput]) GetType() string {
	return gt.Type
}

// GetName returns the tool's name
func (gt *GenericTool[TInput, TOutput]) GetName() string {
	return gt.Name
}

// GetDescription returns the tool's description
func (gt *GenericTool[TInput, TOutput]) GetDescription() string {
	return gt.Description
}

// GetParameters returns the JSON schema for the tool's parameters
func (gt *GenericTool[TInput, TOutput]) GetParameters() *jsonschema.Schema {
	return gt.Schema
}

// Execute runs the tool with the given parameters. Handler failures are
// reported through ToolResponse.IsError rather than as hard errors so the
// caller can pass them back to the model.
func (gt *GenericTool[TInput, TOutput]) Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	var input TInput
	if err := json.Unmarshal(call.Function.Arguments, &input); err != nil {
		return &aisdk.ToolResponse{
			Type:    "error",
			Content: []byte(fmt.Sprintf("failed to parse input: %v", err)),
			IsError: true,
		}, nil
	}

	if err := gt.validateRequired(input); err != nil {
		return &aisdk.ToolResponse{
			Type:    "error",
			Content: []byte(fmt.Sprintf("validation failed: %v", err)),
			IsError: true,
		}, nil
	}

	output, err := gt.Handler(ctx, input)
	if err != nil {
		return &aisdk.ToolResponse{
			Type:    "error",
			Content: []byte(err.Error()),
			IsError: true,
		}, nil
	}

	content, err := json.Marshal(output)
	if err != nil {
		return &aisdk.ToolResponse{
			Type:    "error",
			Content: []byte(fmt.Sprintf("failed to marshal result: %v", err)),
			IsError: true,
		}, nil
	}

	return &aisdk.ToolResponse{
		Type:    "success",
		Content: content,
		IsError: false,
	}, nil
}

// validateRequired checks that required fields are not empty
func (gt *GenericTool[TInput, TOutput]) validateRequired(input TInput) error {
	if gt.Schema == nil || gt.Schema.Required == nil {
		return nil
	}

	val := reflect.ValueOf(input)
	typ := val.Type()

	for _, requiredField := range gt.Schema.Required {
		found := false
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			jsonTag := field.Tag.Get("json")
			fieldName := strings.Split(jsonTag, ",")[0]

			if fieldName == requiredField {
				found = true
				fieldValue := val.Field(i)

				if fieldValue.IsZero() {
					return fmt.Errorf("required field '%s' is missing", requiredField)
				}
				break
			}
		}

		if !found {
			return fmt.Errorf("required field '%s' not found in struct", requiredField)
		}
	}

	return nil
}

// NewGenericTool creates a new generic tool with automatic schema generation
func NewGenericTool[TInput any, TOutput any](name, description string, handler GenericToolHandler[TInput, TOutput]) (Tool, error) {
	var input TInput
	inputType := reflect.TypeOf(input)

	if inputType.Kind() == reflect.Ptr {
		if inputType.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("tool input type must be a struct, got %s", inputType.Elem().Kind())
		}
	} else if inputType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tool input type must be a struct, got %s", inputType.Kind())
	}

	var output TOutput
	outputType := reflect.TypeOf(output)
	if outputType.Kind() == reflect.Ptr {
		if outputType.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("tool output type must be a struct, got %s", outputType.Elem().Kind())
		}
	} else if outputType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tool output type must be a struct, got %s", outputType.Kind())
	}

	reflector := jsonschema.Reflector{}
	schema, err := reflector.Reflect(input)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}

	return &GenericTool[TInput, TOutput]{
		Type:        "function",
		Name:        name,
		Description: description,
		InputType:   inputType,
		OutputType:  outputType,
		Schema:      &schema,
		Handler:     handler,
	}, nil
}

// MustNewGenericTool creates a new generic tool and panics on error
func MustNewGenericTool[TInput any, TOutput any](name, description string, handler GenericToolHandler[TInput, TOutput]) Tool {
	tool, err := NewGenericTool(name, description, handler)
	if err != nil {
		panic(fmt.Sprintf("failed to create generic tool: %v", err))
	}
	return tool
}

// Ensure GenericTool implements the Tool interface
var _ Tool = (*GenericTool[struct{}, struct{}])(nil)
