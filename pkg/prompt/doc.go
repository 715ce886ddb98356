// Package prompt collects form values interactively with survey prompts.
package prompt
