// Package config loads configuration structs from the environment, backed
// by viper. A loaded configuration struct is typically handed to the
// injector builder's WithMembers, so that every configuration field becomes
// a named binding.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fuwjin/wheatgrass/option"
	"github.com/fuwjin/wheatgrass/reflectutils"
	"github.com/fuwjin/wheatgrass/str"
	"github.com/spf13/viper"
)

type (
	Options struct {
		prefix string
	}

	// WithDefault lets a configuration struct fill in its zero fields
	// after unmarshalling.
	WithDefault interface {
		ApplyDefault()
	}
)

// WithEnvPrefix namespaces all environment lookups, e.g. a prefix of "app"
// maps the key "server.port" to APP_SERVER_PORT.
func WithEnvPrefix(prefix string) option.Option[Options] {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// Load unmarshals a configuration struct of type T from environment
// variables. Nested struct pointers are allocated, and structs implementing
// WithDefault get their defaults applied.
func Load[T any](opts ...option.Option[Options]) (*T, error) {
	options := option.Build(&Options{}, opts...)

	v := viper.New()
	v.SetEnvPrefix(options.prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg T
	bindEnvs(v, options.prefix, reflect.New(reflect.TypeOf(cfg)).Elem().Interface())

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// bindEnvs registers every leaf field with viper explicitly: AutomaticEnv
// alone does not surface env-only keys through Unmarshal.
func bindEnvs(v *viper.Viper, envPrefix string, structValue any, parts ...string) {
	ifv := reflect.ValueOf(structValue)
	ift := reflect.TypeOf(structValue)
	for i := 0; i < ift.NumField(); i++ {
		field := ift.Field(i)
		name, ok := field.Tag.Lookup("mapstructure")
		if !ok {
			name = field.Name
		}
		switch ifv.Field(i).Kind() {
		case reflect.Struct:
			bindEnvs(v, envPrefix, ifv.Field(i).Interface(), append(parts, name)...)
		case reflect.Pointer:
			if field.Type.Elem().Kind() == reflect.Struct {
				bindEnvs(v, envPrefix, reflect.Zero(field.Type.Elem()).Interface(), append(parts, name)...)
			}
		default:
			key := strings.Join(append(parts, name), ".")
			envKey := strings.Join(append(parts, str.ToScreamingSnakeCase(name)), ".")
			_ = v.BindEnv(key, mergeWithEnvPrefix(envPrefix, envKey))
		}
	}
}

func mergeWithEnvPrefix(envPrefix string, in string) string {
	if envPrefix != "" {
		return strings.ToUpper(envPrefix + "_" + in)
	}

	return strings.ToUpper(in)
}

func applyDefaults(cfg any) {
	withDefaultType := reflect.TypeOf((*WithDefault)(nil)).Elem()
	reflectutils.Walk(cfg, func(val reflect.Value, typ reflect.Type) {
		if typ.Kind() == reflect.Pointer && typ.Elem().Kind() == reflect.Struct && val.IsNil() && val.CanSet() {
			val.Set(reflect.New(typ.Elem()))
		}
		if typ.Implements(withDefaultType) && val.IsValid() {
			if typ.Kind() == reflect.Pointer && val.IsNil() {
				return
			}
			val.Interface().(WithDefault).ApplyDefault()
		}
	})
}
