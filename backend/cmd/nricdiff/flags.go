package main

import (
	"github.com/spf13/pflag"
)

// bind ties a flag to a config key so flags override env and config file values.
func (a *app) bind(flag *pflag.Flag, key string) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(err) // unknown flag
	}
}
