package config

import (
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// bindEnvKeys registers every mapstructure key of config with viper so that
// AutomaticEnv can resolve keys that are absent from the config file.
func bindEnvKeys(v *viper.Viper, config interface{}) {
	t := reflect.TypeOf(config)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}
	walkKeys(t, "", func(key string) {
		_ = v.BindEnv(key)
	})
}

func walkKeys(t reflect.Type, prefix string, fn func(string)) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("mapstructure")
		if name == "" || name == "-" {
			continue
		}
		name = strings.Split(name, ",")[0]
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		ft := f.Type
		if ft.Kind() == reflect.Struct && ft.PkgPath() != "time" {
			walkKeys(ft, key, fn)
			continue
		}
		fn(key)
	}
}
