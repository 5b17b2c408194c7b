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


package ollama

import (
	"github.com/bloop16/homestate/ai"
)

// Provider implements ai.Provider with Ollama-backed services.
type Provider struct {
	embedder *Embedder
	chat     *ChatModel
}

var _ ai.Provider = (*Provider)(nil)

// NewProvider creates a provider with an embedder and, when a chat model is
// configured, a chat service sharing the same host.
func NewProvider(config *ai.Config) (*Provider, error) {
	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	p := &Provider{embedder: embedder}

	if config.ChatModel != "" {
		chat, err := newChatModel(config)
		if err != nil {
			return nil, err
		}
		p.chat = chat
	}

	return p, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// ChatModel returns the answer generation service, or nil when no chat
// model was configured.
func (p *Provider) ChatModel() ai.ChatModel {
	if p.chat == nil {
		return nil
	}
	return p.chat
}

// Close releases resources held by the provider.
// The underlying HTTP clients hold no persistent connections to release.
func (p *Provider) Close() error {
	return nil
}
