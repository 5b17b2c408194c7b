// Package mock provides deterministic test doubles for the ai interfaces.
// The default embedder behavior hashes the input text into a normalized
// vector, so identical text always embeds identically without a model.
package mock
