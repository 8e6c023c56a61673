// Package ui implements the interactive prompts of the exporter using bubbletea's Elm architecture.
//
// [PromptModel] is a single-line [textinput] view used for the playlist ID and the pasted
// authorization code. [Ask] runs it as a program on a terminal; [LineAsker] is the fallback
// for piped or redirected input, where a plain line reader is used instead.
//
// Both satisfy the auth.Asker signature so the credential manager never knows which one it got.
package ui
