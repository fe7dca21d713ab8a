// Package draft turns working-tree changes into a draft journal entry
// via an LLM. It builds the prompt, sanitizes the model output, and
// parses the JSON entry record the model is asked to produce.
package draft
