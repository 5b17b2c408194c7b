// Copyright 2025 Bloop16
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


package ai

import (
	"net/url"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL of the Ollama server.
	// Example: "http://localhost:11434"
	Host string

	// EmbeddingModel is the model identifier used for text embeddings.
	// Example: "nomic-embed-text"
	EmbeddingModel string

	// ChatModel is the model identifier used for answer generation.
	// Example: "llama3.2"
	ChatModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the Ollama server base URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithChatModel sets the chat model identifier.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) {
		c.ChatModel = model
	}
}

// DefaultConfig returns a Config with sensible defaults for a local Ollama
// server.
func DefaultConfig() *Config {
	return &Config{
		Host:           "http://localhost:11434",
		EmbeddingModel: "nomic-embed-text",
		ChatModel:      "llama3.2",
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks that the configuration is usable.
// The chat model may be empty when only embeddings are needed.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return ErrEmptyHost
	}
	u, err := url.Parse(c.Host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidHost
	}
	if strings.TrimSpace(c.EmbeddingModel) == "" {
		return ErrEmptyEmbeddingModel
	}
	return nil
}
