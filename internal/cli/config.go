package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/hasbyte1/go-passhash/hashing"
)

const envPrefix = "PASSHASH"

// Configuration keys. Each can also be set through the environment as
// PASSHASH_<KEY>, e.g. PASSHASH_ITERATIONS.
const (
	keyAlgorithm  = "algorithm"
	keySaltLen    = "salt_len"
	keyKeyLen     = "key_len"
	keyIterations = "iterations"
)

// loadOptions builds hashing options from defaults, the optional config
// file and PASSHASH_* environment variables, in increasing precedence.
func loadOptions(configFile string) (hashing.Options, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	d := hashing.DefaultOptions()
	v.SetDefault(keyAlgorithm, string(d.Algorithm))
	v.SetDefault(keySaltLen, d.SaltLen)
	v.SetDefault(keyKeyLen, d.KeyLen)
	v.SetDefault(keyIterations, d.Iterations)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return hashing.Options{}, errors.Wrapf(err, "unable to read config file %q", configFile)
		}
	}

	return hashing.Options{
		Algorithm:  hashing.Algorithm(v.GetString(keyAlgorithm)),
		SaltLen:    v.GetUint32(keySaltLen),
		KeyLen:     v.GetUint32(keyKeyLen),
		Iterations: v.GetUint32(keyIterations),
	}, nil
}
