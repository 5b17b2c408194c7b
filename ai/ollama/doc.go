// Package ollama implements the ai interfaces against an Ollama server,
// using langchaingo for the wire protocol. Embedding and chat share one
// host but use independently configured models.
package ollama
