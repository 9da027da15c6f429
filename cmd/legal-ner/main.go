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

package main

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/highlight"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser"
	grpc_recogniser "gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser/grpc-recogniser"
	http_recogniser "gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser/http-recogniser"
	prose_recogniser "gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser/prose-recogniser"
	regex_recogniser "gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/recogniser/regex-recogniser"
)

//go:embed templates/*.tmpl
var templates embed.FS

//go:embed intro.md
var intro []byte

// config structure
type legalNERConfig struct {
	lib.BaseConfig `mapstructure:",squash"`
	Server         struct {
		HttpPort       int      `mapstructure:"http_port"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
		MaxUploadBytes int64    `mapstructure:"max_upload_bytes"`
	}
	PreviewLength int `mapstructure:"preview_length"`
	Recogniser    recogniserConfig
}

type recogniserConfig struct {
	Backend      string
	ModelPath    string `mapstructure:"model_path"`
	PatternsFile string `mapstructure:"patterns_file"`
	Http         struct {
		Url             string
		lib.HttpOptions `mapstructure:",squash"`
	}
	Grpc struct {
		Host     string
		GrpcPort int `mapstructure:"grpc_port"`
	}
}

var config legalNERConfig

var defaultConfig = map[string]interface{}{
	"log_level": "info",
	"server": map[string]interface{}{
		"http_port":        8080,
		"allowed_origins":  []string{},
		"max_upload_bytes": 32 << 20,
	},
	"preview_length": 1000,
	"recogniser": map[string]interface{}{
		"backend":       recogniser.Prose,
		"model_path":    "",
		"patterns_file": "./config/patterns.yml",
		"http": map[string]interface{}{
			"url": "http://localhost:8000/ner",
		},
		"grpc": map[string]interface{}{
			"host":      "localhost",
			"grpc_port": 50051,
		},
	},
}

func main() {
	if err := lib.InitializeConfig("./config/legal-ner.yml", defaultConfig, &config); err != nil {
		log.Fatal().Err(err).Send()
	}

	client, closeClient, err := newRecogniser(config.Recogniser)
	if err != nil {
		log.Fatal().Err(err).Str("backend", config.Recogniser.Backend).Msg("failed to load recogniser")
	}
	defer closeClient()

	introHTML, err := renderMarkdown(intro)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	s := server{
		controller:     newController(client, highlight.DefaultPalette(), config.PreviewLength),
		intro:          introHTML,
		maxUploadBytes: config.Server.MaxUploadBytes,
	}
	r, err := newRouter(s, config.Server.AllowedOrigins)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Server.HttpPort),
		Handler: r,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Str("backend", config.Recogniser.Backend).Msg("legal-ner listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Send()
		}
	}()

	lib.HandleInterrupt(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	})
}

// newRecogniser builds the configured backend. The returned func releases whatever the backend holds open.
func newRecogniser(cfg recogniserConfig) (recogniser.Client, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case recogniser.Prose, "":
		client, err := prose_recogniser.New(cfg.ModelPath)
		return client, noop, err
	case recogniser.Regex:
		client, err := regex_recogniser.Load(cfg.PatternsFile)
		return client, noop, err
	case recogniser.Http:
		if cfg.Http.Url == "" {
			return nil, noop, errors.New("recogniser.http.url must be set")
		}
		return http_recogniser.NewClient(cfg.Http.Url, lib.RecogniserOptions{
			Name:        recogniser.Http,
			HttpOptions: cfg.Http.HttpOptions,
		}), noop, nil
	case recogniser.Grpc:
		conn, err := grpc_recogniser.Dial(cfg.Grpc.Host, cfg.Grpc.GrpcPort)
		if err != nil {
			return nil, noop, err
		}
		return grpc_recogniser.NewClient(conn), func() {
			if err := conn.Close(); err != nil {
				log.Error().Err(err).Msg("closing grpc connection")
			}
		}, nil
	default:
		return nil, noop, fmt.Errorf("unknown recogniser backend %q", cfg.Backend)
	}
}

func newRouter(s server, allowedOrigins []string) (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templates, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(lib.JsonLogFormatter), gin.Recovery(), requestID)
	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: allowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{"Origin", "Content-Type", lib.RequestIDKey},
			MaxAge:       12 * time.Hour,
		}))
	}
	r.SetHTMLTemplate(tmpl)
	s.RegisterRoutes(r)
	return r, nil
}

func renderMarkdown(source []byte) (template.HTML, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
