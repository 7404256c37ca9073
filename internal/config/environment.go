package config

import "github.com/spf13/viper"

// LookupFunc returns the value of a named variable, or an empty string when it is unset.
type LookupFunc func(key string) string

// NewEnvironmentLookup returns a LookupFunc reading process environment variables on each call.
func NewEnvironmentLookup() LookupFunc {
	environment := viper.New()
	environment.AutomaticEnv()
	return environment.GetString
}

// MapLookup adapts a fixed map to a LookupFunc.
func MapLookup(values map[string]string) LookupFunc {
	return func(key string) string {
		return values[key]
	}
}
