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


package control

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/bloop16/homestate/core"
	"github.com/bloop16/homestate/search"
)

// ReadResult is the answer to a resolved read.
type ReadResult struct {
	DatapointID string
	Value       any
	Timestamp   time.Time
	Formatted   string
}

// Service reads and writes datapoint states addressed by free text.
// Writes are double-gated: the resolved ID must be in the writable set
// and its config must permit automated changes.
type Service struct {
	resolver *search.Resolver
	states   StateStore
	registry *core.Registry
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewService creates a control service.
func NewService(
	resolver *search.Resolver,
	states StateStore,
	registry *core.Registry,
	opts ...Option,
) (*Service, error) {
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	if states == nil {
		return nil, ErrStateStoreRequired
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	s := &Service{
		resolver: resolver,
		states:   states,
		registry: registry,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Read resolves the reference and returns the datapoint's current state.
func (s *Service) Read(ctx context.Context, reference string) (ReadResult, error) {
	id, ok, err := s.resolver.Resolve(ctx, reference)
	if err != nil {
		return ReadResult{}, err
	}
	if !ok {
		return ReadResult{}, fmt.Errorf("%w: %q", ErrUnknownDatapoint, reference)
	}

	state, err := s.states.GetState(ctx, id)
	if err != nil {
		return ReadResult{}, err
	}

	result := ReadResult{
		DatapointID: id,
		Value:       state.Value,
		Timestamp:   state.Timestamp,
	}

	// A missing config only costs the pretty rendering.
	cfg, err := s.states.GetConfig(ctx, id)
	if err != nil {
		s.logger.Debug("config lookup failed, rendering raw value", "datapoint", id, "err", err)
		result.Formatted = core.FormatValue(state.Value)
		return result, nil
	}
	result.Formatted = core.FormatState(id, cfg, state.Value)
	return result, nil
}

// Write resolves the reference, checks write permission, coerces the
// value to the datapoint's type, and sets the state. Returns the
// resolved ID.
func (s *Service) Write(ctx context.Context, reference string, value any) (string, error) {
	id, ok, err := s.resolver.Resolve(ctx, reference)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDatapoint, reference)
	}

	if !s.registry.IsWritable(id) {
		return "", fmt.Errorf("%w: %s", ErrNotWritable, id)
	}

	cfg, err := s.states.GetConfig(ctx, id)
	if err != nil {
		return "", err
	}
	if !cfg.AllowAutoChange {
		return "", fmt.Errorf("%w: %s", ErrNotWritable, id)
	}

	coerced, err := coerceValue(cfg, value)
	if err != nil {
		return "", err
	}

	if err := s.states.SetState(ctx, id, coerced); err != nil {
		return "", err
	}

	s.logger.Info("state written", "datapoint", id, "value", coerced)
	return id, nil
}

// coerceValue converts a raw value to the shape the datapoint's type
// expects. Boolean datapoints accept the configured display labels in
// addition to the usual truthy spellings.
func coerceValue(cfg core.DatapointConfig, value any) (any, error) {
	switch cfg.DataType {
	case core.DataTypeBoolean:
		return coerceBoolean(cfg, value)
	case core.DataTypeNumber:
		return coerceNumber(value)
	default:
		return core.FormatValue(value), nil
	}
}

func coerceBoolean(cfg core.DatapointConfig, value any) (bool, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	if s, ok := value.(string); ok {
		trimmed := strings.TrimSpace(s)
		if cfg.BooleanTrueValue != "" && strings.EqualFold(trimmed, cfg.BooleanTrueValue) {
			return true, nil
		}
		if cfg.BooleanFalseValue != "" && strings.EqualFold(trimmed, cfg.BooleanFalseValue) {
			return false, nil
		}
		switch strings.ToLower(trimmed) {
		case "true", "1", "on", "an", "ein":
			return true, nil
		case "false", "0", "off", "aus":
			return false, nil
		}
		return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, s)
	}
	return core.Truthy(value), nil
}

func coerceNumber(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %T is not numeric", ErrInvalidValue, value)
	}
}
