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
	"errors"
	"fmt"
	"html/template"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib"
	"gitlab.mdcatapult.io/informatics/software-engineering/legal-entity-recognition/lib/analytics"
)

// HttpError carries the status code and the message shown to the user alongside the cause.
type HttpError struct {
	code    int
	message string
	error
}

func (e HttpError) Error() string {
	return e.error.Error()
}

func (e HttpError) Unwrap() error {
	return e.error
}

func NewHttpError(code int, message string, err error) HttpError {
	return HttpError{
		code:    code,
		message: message,
		error:   err,
	}
}

// page is the data of index.tmpl.
type page struct {
	Intro   template.HTML
	Mode    Mode
	Text    string
	Message string
	Result  *Result
}

type server struct {
	controller     controller
	intro          template.HTML
	maxUploadBytes int64
}

func (s server) RegisterRoutes(r *gin.Engine) {
	r.GET("/", s.Index)
	r.POST("/upload", s.Upload)
	r.POST("/text", s.Text)
	r.POST("/export.xlsx", s.Export)
}

func (s server) newPage(mode Mode) page {
	return page{Intro: s.intro, Mode: mode}
}

func (s server) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", s.newPage(parseMode(c.Query("mode"))))
}

func (s server) Upload(c *gin.Context) {
	p := s.newPage(ModeUpload)
	if s.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		handleError(c, p, NewHttpError(http.StatusUnprocessableEntity, msgExtraction, fmt.Errorf("read upload: %w", err)))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		handleError(c, p, NewHttpError(http.StatusUnprocessableEntity, msgExtraction, fmt.Errorf("open upload: %w", err)))
		return
	}
	defer closeUpload(fileHeader, file)

	result, err := s.controller.Process(c.Request.Context(), UploadInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		handleError(c, p, err)
		return
	}

	p.Result = result
	c.HTML(http.StatusOK, "index.tmpl", p)
}

func (s server) Text(c *gin.Context) {
	p := s.newPage(ModeText)
	p.Text = c.PostForm("text")

	result, err := s.controller.Process(c.Request.Context(), ManualInput{Text: p.Text})
	if err != nil {
		handleError(c, p, err)
		return
	}

	p.Result = result
	c.HTML(http.StatusOK, "index.tmpl", p)
}

func (s server) Export(c *gin.Context) {
	p := s.newPage(ModeText)
	p.Text = c.PostForm("text")

	b, err := s.controller.Export(c.Request.Context(), p.Text)
	if err != nil {
		handleError(c, p, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="entities.xlsx"`)
	c.Data(http.StatusOK, analytics.ContentType, b)
}

// requestID tags the request with the caller's X-Request-ID, or a new one.
func requestID(c *gin.Context) {
	id := c.GetHeader(lib.RequestIDKey)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(lib.RequestIDKey, id)
	c.Header(lib.RequestIDKey, id)
	c.Next()
}

func closeUpload(fileHeader *multipart.FileHeader, file multipart.File) {
	if err := file.Close(); err != nil {
		log.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("could not close upload")
	}
}

func handleError(c *gin.Context, p page, err error) {
	if err == nil {
		err = errors.New("abort called on nil error")
	}
	var httpErr HttpError
	if errors.As(err, &httpErr) {
		abort(c, p, httpErr.code, httpErr.message, err)
		return
	}
	abort(c, p, http.StatusInternalServerError, msgInternal, err)
}

func abort(c *gin.Context, p page, code int, message string, err error) {
	_ = c.Error(err)

	event := log.Warn()
	if code >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Int("status", code).Str("request_id", c.GetString(lib.RequestIDKey)).Str("path", c.Request.URL.Path).Msg("request failed")

	p.Message = message
	c.HTML(code, "index.tmpl", p)
	c.Abort()
}
