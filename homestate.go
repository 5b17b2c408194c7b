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


package homestate

import (
	"log/slog"

	"github.com/bloop16/homestate/ai"
	"github.com/bloop16/homestate/ai/ollama"
	"github.com/bloop16/homestate/core"
	"github.com/bloop16/homestate/ingestion"
	"github.com/bloop16/homestate/retention"
	"github.com/bloop16/homestate/search"
	"github.com/bloop16/homestate/storage/badger"
	"github.com/bloop16/homestate/vectorstore"
)

// System wires the vector store, the AI provider, the write-suppression
// cache, and the datapoint registry into one handle. It is the
// entrypoint for embedding hosts and for the CLI.
type System struct {
	store    vectorstore.Store
	backend  *badger.Backend
	cache    *badger.WriteCache
	provider ai.Provider
	registry *core.Registry
	logger   *slog.Logger
}

// SystemOption configures a System.
type SystemOption func(*systemOptions)

type systemOptions struct {
	aiConfig   *ai.Config
	qdrantHost string
	qdrantPort int
	inMemory   bool
}

// WithAIConfig overrides the default Ollama configuration.
func WithAIConfig(config *ai.Config) SystemOption {
	return func(o *systemOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithQdrant points the system at a Qdrant instance.
// Default is localhost:6334.
func WithQdrant(host string, port int) SystemOption {
	return func(o *systemOptions) {
		o.qdrantHost = host
		o.qdrantPort = port
	}
}

// WithInMemoryCache keeps the write-suppression cache in memory instead
// of on disk. Suppression state is then lost on restart.
func WithInMemoryCache() SystemOption {
	return func(o *systemOptions) {
		o.inMemory = true
	}
}

// NewSystem opens all backing services. The cache path is a directory
// for the suppression database; pass WithInMemoryCache to skip it.
func NewSystem(cachePath string, opts ...SystemOption) (*System, error) {
	options := &systemOptions{
		aiConfig:   ai.DefaultConfig(),
		qdrantHost: "localhost",
		qdrantPort: 6334,
	}
	for _, opt := range opts {
		opt(options)
	}

	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	store, err := vectorstore.NewQdrant(options.qdrantHost, options.qdrantPort)
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(cachePath, options.inMemory)
	if err != nil {
		store.Close()
		return nil, err
	}

	cache, err := badger.NewWriteCache(backend)
	if err != nil {
		backend.Close()
		store.Close()
		return nil, err
	}

	provider, err := ollama.NewProvider(options.aiConfig)
	if err != nil {
		backend.Close()
		store.Close()
		return nil, err
	}

	return &System{
		store:    store,
		backend:  backend,
		cache:    cache,
		provider: provider,
		registry: core.NewRegistry(),
		logger:   slog.Default(),
	}, nil
}

func (s *System) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing suppression cache", "err", err)
		return err
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error("error closing vector store", "err", err)
		return err
	}
	return nil
}

// Registry returns the datapoint permission registry. The host updates
// it whenever datapoint configs change.
func (s *System) Registry() *core.Registry {
	return s.registry
}

// Store returns the vector store gateway.
func (s *System) Store() vectorstore.Store {
	return s.store
}

func (s *System) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	limiter, err := ingestion.NewLimiter(s.cache)
	if err != nil {
		return nil, err
	}
	return ingestion.NewPipeline(s.store, s.provider.Embedder(), limiter, opts...)
}

func (s *System) NewResolver(opts ...search.ResolverOption) (*search.Resolver, error) {
	return search.NewResolver(s.registry, s.provider.Embedder(), s.store, opts...)
}

func (s *System) NewSearcher(opts ...search.SearcherOption) (*search.Searcher, error) {
	return search.NewSearcher(s.store, s.provider.Embedder(), s.provider.ChatModel(), s.registry, opts...)
}

func (s *System) NewRetentionManager(opts ...retention.Option) (*retention.Manager, error) {
	return retention.NewManager(s.store, opts...)
}
