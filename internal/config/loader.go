package config

import (
	"encoding"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Set assigns value to the field tagged with the variable env, converting it
// the way Load does. Command line flags override loaded values through it.
func (c *Config) Set(env, value string) error {
	field, ok := lookupVar(reflect.ValueOf(c).Elem(), env)
	if !ok {
		return fmt.Errorf("unknown configuration variable %s", env)
	}
	if err := setField(field, value); err != nil {
		return fmt.Errorf("invalid value for %s=%q: %w", env, value, err)
	}
	return nil
}

// Vars lists the variables read by Load, in field order.
func Vars() []string {
	var names []string
	walkVars(reflect.TypeOf(Config{}), func(field reflect.StructField) {
		names = append(names, field.Tag.Get("env"))
	})
	return names
}

func walkVars(t reflect.Type, fn func(reflect.StructField)) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Type.Kind() == reflect.Struct {
			walkVars(field.Type, fn)
			continue
		}
		if field.Tag.Get("env") != "" {
			fn(field)
		}
	}
}

// loadStruct recursively populates struct fields from environment variables.
// Values are trimmed; an unset or blank variable takes the default tag.
func loadStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" || !fieldVal.CanSet() {
			continue
		}

		value := strings.TrimSpace(os.Getenv(envName))
		if value == "" {
			value = field.Tag.Get("default")
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

func lookupVar(v reflect.Value, env string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Type.Kind() == reflect.Struct {
			if found, ok := lookupVar(v.Field(i), env); ok {
				return found, true
			}
			continue
		}
		if field.Tag.Get("env") == env {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// setField converts value to the type of field. Enum types such as
// output.Format and query.JoinStrategy parse themselves through
// encoding.TextUnmarshaler, so an unknown name fails here and names its
// variable.
func setField(field reflect.Value, value string) error {
	if u, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return u.UnmarshalText([]byte(value))
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Bool:
		if value == "" {
			field.SetBool(false)
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Type())
	}

	return nil
}
