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

// regexer serves a pattern (or prose) recogniser over grpc, for legal-ner's grpc backend.
package main

import (
	"fmt"
	"net"

	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser"
	grpc_recogniser "gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser/grpc-recogniser"
	prose_recogniser "gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser/prose-recogniser"
	regex_recogniser "gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser/regex-recogniser"
	"google.golang.org/grpc"
)

type conf struct {
	lib.BaseConfig `mapstructure:",squash"`
	Server         struct {
		GrpcPort int `mapstructure:"grpc_port"`
	}
	Recogniser struct {
		Backend      string
		ModelPath    string `mapstructure:"model_path"`
		PatternsFile string `mapstructure:"patterns_file"`
	}
}

var config conf

func main() {
	err := lib.InitializeConfig("./config/regexer.yml", map[string]interface{}{
		"log_level": "info",
		"server": map[string]interface{}{
			"grpc_port": 50051,
		},
		"recogniser": map[string]interface{}{
			"backend":       recogniser.Regex,
			"model_path":    "",
			"patterns_file": "./config/patterns.yml",
		},
	}, &config)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	var client recogniser.Client
	switch config.Recogniser.Backend {
	case recogniser.Regex:
		client, err = regex_recogniser.Load(config.Recogniser.PatternsFile)
	case recogniser.Prose:
		client, err = prose_recogniser.New(config.Recogniser.ModelPath)
	default:
		err = fmt.Errorf("regexer cannot serve the %q backend", config.Recogniser.Backend)
	}
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", config.Server.GrpcPort))
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	grpcServer := grpc.NewServer()
	grpc_recogniser.RegisterRecogniserServer(grpcServer, grpc_recogniser.NewServer(client))

	go lib.HandleInterrupt(grpcServer.GracefulStop)

	log.Info().Int("port", config.Server.GrpcPort).Str("backend", config.Recogniser.Backend).Msg("serving...")
	if err := grpcServer.Serve(lis); err != nil {
		log.Fatal().Err(err).Send()
	}
}
