//
// See the file COPYRIGHT for copyright information.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package log has a human-friendly slog handler for server logs:
// timestamp, colorized level, message, then any attrs as JSON.
package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorGray    = "\033[37m"
	colorMagenta = "\033[35m"

	timeFormat = "15:04:05.000"
)

type Handler struct {
	handler          slog.Handler
	buf              *bytes.Buffer
	mutex            *sync.Mutex
	writer           io.Writer
	outputEmptyAttrs bool
}

type Option func(h *Handler)

// WithDestinationWriter sends output somewhere other than stdout.
func WithDestinationWriter(writer io.Writer) Option {
	return func(h *Handler) {
		h.writer = writer
	}
}

// WithOutputEmptyAttrs prints "{}" even when a record has no attrs.
func WithOutputEmptyAttrs() Option {
	return func(h *Handler) {
		h.outputEmptyAttrs = true
	}
}

func New(handlerOptions *slog.HandlerOptions, options ...Option) *Handler {
	if handlerOptions == nil {
		handlerOptions = &slog.HandlerOptions{}
	}
	buf := &bytes.Buffer{}
	h := &Handler{
		buf:    buf,
		mutex:  &sync.Mutex{},
		writer: os.Stdout,
		handler: slog.NewJSONHandler(buf, &slog.HandlerOptions{
			Level:       handlerOptions.Level,
			AddSource:   handlerOptions.AddSource,
			ReplaceAttr: suppressDefaults(handlerOptions.ReplaceAttr),
		}),
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		handler:          h.handler.WithAttrs(attrs),
		buf:              h.buf,
		mutex:            h.mutex,
		writer:           h.writer,
		outputEmptyAttrs: h.outputEmptyAttrs,
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		handler:          h.handler.WithGroup(name),
		buf:              h.buf,
		mutex:            h.mutex,
		writer:           h.writer,
		outputEmptyAttrs: h.outputEmptyAttrs,
	}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var level string
	switch {
	case r.Level <= slog.LevelDebug:
		level = colorize(colorGray, r.Level.String()+":")
	case r.Level <= slog.LevelInfo:
		level = colorize(colorBlue, r.Level.String()+":")
	case r.Level < slog.LevelError:
		level = colorize(colorYellow, r.Level.String()+":")
	default:
		level = colorize(colorRed, r.Level.String()+":")
	}

	attrs, err := h.computeAttrs(ctx, r)
	if err != nil {
		return err
	}
	attrStr := ""
	if h.outputEmptyAttrs || len(attrs) > 0 {
		marshalled, err := json.Marshal(attrs)
		if err != nil {
			return fmt.Errorf("error when marshaling attrs: %w", err)
		}
		attrStr = colorize(colorGray, string(marshalled))
	}

	_, err = fmt.Fprintf(
		h.writer,
		"%v %v %v %v\n",
		colorize(colorMagenta, r.Time.Format(timeFormat)),
		level,
		colorize(colorReset, r.Message),
		attrStr,
	)
	return err
}

// computeAttrs round-trips the record through the inner JSON handler
// to get ReplaceAttr and grouping behavior for free.
func (h *Handler) computeAttrs(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.mutex.Lock()
	defer func() {
		h.buf.Reset()
		h.mutex.Unlock()
	}()
	if err := h.handler.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("error when calling inner handler's Handle: %w", err)
	}

	var attrs map[string]any
	err := json.Unmarshal(h.buf.Bytes(), &attrs)
	if err != nil {
		return nil, fmt.Errorf("error when unmarshaling inner handler's Handle result: %w", err)
	}
	return attrs, nil
}

func suppressDefaults(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey || a.Key == slog.LevelKey || a.Key == slog.MessageKey {
			return slog.Attr{}
		}
		if next == nil {
			return a
		}
		return next(groups, a)
	}
}

func colorize(color string, text string) string {
	return color + text + colorReset
}
