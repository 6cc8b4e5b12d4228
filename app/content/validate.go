package content

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	schemaOnce sync.Once
	schema     *validator.Validate
)

func getValidator() *validator.Validate {
	schemaOnce.Do(func() {
		v := validator.New()

		// Report fields under their front-matter names.
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		// A zero Date counts as missing.
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			date, ok := field.Interface().(Date)
			if !ok || date.IsZero() {
				return nil
			}
			return date.Time
		}, Date{})

		schema = v
	})
	return schema
}

func validateData(data interface{}) error {
	err := getValidator().Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		problems = append(problems, describeFieldError(fieldErr))
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(problems, "; "))
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fieldErr.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fieldErr.Field(), fieldErr.Tag())
	}
}

// checkScalarTypes rejects front-matter values whose YAML type does not match
// the target field, e.g. `draft: "yes"` or `title: 123`. Fields of other
// kinds, such as dates, are left to their own decoders.
func checkScalarTypes(node *yaml.Node, t reflect.Type) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode || t.Kind() != reflect.Struct {
		return nil
	}

	fields := make(map[string]reflect.Type, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("yaml"), ",", 2)[0]
		if name != "" && name != "-" {
			fields[name] = t.Field(i).Type
		}
	}

	var problems []string
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		if value.Kind == yaml.AliasNode && value.Alias != nil {
			value = value.Alias
		}
		fieldType, ok := fields[key]
		if !ok || value.Tag == "!!null" {
			continue
		}

		switch {
		case fieldType.Kind() == reflect.String:
			if value.Kind != yaml.ScalarNode || value.Tag != "!!str" {
				problems = append(problems, fmt.Sprintf("%s must be a string", key))
			}
		case fieldType.Kind() == reflect.Bool:
			if value.Kind != yaml.ScalarNode || value.Tag != "!!bool" {
				problems = append(problems, fmt.Sprintf("%s must be a boolean", key))
			}
		case fieldType.Kind() == reflect.Float64:
			if value.Kind != yaml.ScalarNode || (value.Tag != "!!int" && value.Tag != "!!float") {
				problems = append(problems, fmt.Sprintf("%s must be a number", key))
			}
		case fieldType.Kind() == reflect.Slice && fieldType.Elem().Kind() == reflect.String:
			if value.Kind != yaml.SequenceNode {
				problems = append(problems, fmt.Sprintf("%s must be a list of strings", key))
				continue
			}
			for _, item := range value.Content {
				if item.Kind == yaml.AliasNode && item.Alias != nil {
					item = item.Alias
				}
				if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
					problems = append(problems, fmt.Sprintf("%s must be a list of strings", key))
					break
				}
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("schema validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}
