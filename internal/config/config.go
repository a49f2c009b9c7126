package config

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
)

// FileName is the base name of the optional defaults file
// (videoshrink.yaml), looked up in the working directory and next to
// the executable.
const FileName = "videoshrink"

func ProjectRoot() (string, error) {
	ex, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(ex), nil
}

// Resolver builds a kong resolver that fills flags from the defaults file.
// Values given explicitly on the command line always win. A missing file
// yields an empty resolver, not an error.
func Resolver(searchPaths ...string) (kong.Resolver, error) {
	v := viper.New()
	v.SetConfigName(FileName)

	if len(searchPaths) == 0 {
		searchPaths = append(searchPaths, ".")
		if root, err := ProjectRoot(); err == nil {
			searchPaths = append(searchPaths, root)
		}
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return kong.ResolverFunc(
				func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (interface{}, error) {
					return nil, nil
				},
			), nil
		}
		return nil, err
	}

	return kong.ResolverFunc(
		func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (interface{}, error) {
			if !v.IsSet(flag.Name) {
				return nil, nil
			}
			return v.Get(flag.Name), nil
		},
	), nil
}
