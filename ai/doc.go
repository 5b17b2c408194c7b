// Package ai defines the interfaces for external AI services: text
// embedding and chat answer generation. Implementations live in
// subpackages; ai/ollama talks to an Ollama server, ai/mock provides
// deterministic test doubles.
package ai
