/*
 * Copyright 2022 Medicines Discovery Catapult
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *     http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lib

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFlag = "config"

// BaseConfig holds the keys every app shares. Embed it with
// `mapstructure:",squash"` so log_level stays a top level key.
type BaseConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

/**
	InitializeConfig reads the app config into targetStruct.

	The yml file lives at defaultPath unless the --config flag points somewhere else, e.g.
	a config map mounted at $(pwd)/config/legal-ner.yml.

	defaultConfig seeds every key viper knows about. Keys present in defaultConfig but missing
	from the yml keep their default. Env vars override a key when the uppercased env var name
	matches the key with "." replaced by "_" (RECOGNISER_BACKEND for recogniser.backend).
	An env var for a key that is in neither the defaults nor the yml is ignored.

	log_level is applied to zerolog before returning.
**/
func InitializeConfig(defaultPath string, defaultConfig map[string]interface{}, targetStruct interface{}) error {
	if pflag.Lookup(configFlag) == nil {
		pflag.String(configFlag, defaultPath, "The config file path.")
	}
	// flags owned by other packages (go test's -test.* for one) are not ours to reject
	pflag.CommandLine.ParseErrorsWhitelist.UnknownFlags = true
	pflag.Parse()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return err
	}

	configFile := viper.GetString(configFlag)
	if !filepath.IsAbs(configFile) {
		abs, err := filepath.Abs(configFile)
		if err != nil {
			return err
		}
		configFile = abs
	}

	for k, v := range defaultConfig {
		viper.SetDefault(k, v)
	}

	viper.SetConfigName(strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile)))
	viper.AddConfigPath(filepath.Dir(configFile))

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); errors.As(err, &notFound) {
		log.Warn().Err(err).Msg("default settings applied")
	} else if err != nil {
		return err
	}

	var bc BaseConfig
	if err := viper.Unmarshal(&bc); err != nil {
		return err
	}
	if bc.LogLevel != "" {
		lvl, err := zerolog.ParseLevel(bc.LogLevel)
		if err != nil {
			return err
		}
		zerolog.SetGlobalLevel(lvl)
	}

	return viper.Unmarshal(targetStruct)
}
