package environment

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// ParseEnvTags fills a struct from environment variables using struct tags.
//
//	type Options struct {
//	    Port       string        `env:"PORT" default:":8080"`
//	    SigningKey string        `env:"JWT_SIGNING_KEY" required:"true"`
//	    Origins    []string      `env:"CORS_ORIGINS" separator:","`
//	    Timeout    time.Duration `env:"TIMEOUT" default:"5s"`
//	}
//
// Keys are namespaced with prefix, so with prefix "TASKER" the Port field is
// read from TASKER_PORT.
func ParseEnvTags(prefix string, cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return errors.New("cfg must be a pointer to a struct")
	}

	v = v.Elem()
	t := v.Type()

	for i := range v.NumField() {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		envKey := fieldType.Tag.Get("env")
		if envKey == "" {
			continue
		}

		ek := GetNamespaceEnvKey(prefix, envKey)

		value := os.Getenv(ek)
		if value == "" {
			if fieldType.Tag.Get("required") == "true" {
				return fmt.Errorf("required environment variable %s is not set", ek)
			}
			value = fieldType.Tag.Get("default")
		}

		if err := setFieldValue(field, value, fieldType.Tag.Get("separator")); err != nil {
			return fmt.Errorf("error setting field %s from %s: %w", fieldType.Name, ek, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value based on its type. Empty values leave
// the field at its zero value.
func setFieldValue(field reflect.Value, value, separator string) error {
	if value == "" {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			duration, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("cannot parse duration: %w", err)
			}
			field.SetInt(int64(duration))
			return nil
		}
		intVal, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse int: %w", err)
		}
		field.SetInt(intVal)

	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("cannot parse float: %w", err)
		}
		field.SetFloat(f)

	case reflect.Bool:
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cannot parse bool: %w", err)
		}
		field.SetBool(boolVal)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type())
		}
		if separator == "" {
			separator = ","
		}
		parts := strings.Split(value, separator)
		stringSlice := make([]string, 0, len(parts))
		for _, part := range parts {
			if p := strings.TrimSpace(part); p != "" {
				stringSlice = append(stringSlice, p)
			}
		}
		field.Set(reflect.ValueOf(stringSlice))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
