// Package auth obtains an authorized HTTP client for the YouTube Data API.
//
// A [Manager] loads the cached credential from a [Store], refreshes it when it has expired and a refresh token
// is available, and otherwise runs the OAuth2 authorization code flow once through a [Prompter]. The resulting
// token is saved back to the store after every refresh or authorization; a still valid token is used as is.
//
// Two prompters are provided:
//   - [ConsolePrompter] prints the consent URL and reads the code pasted by the operator (the default).
//   - [LoopbackPrompter] opens the browser and receives the code on a local /callback endpoint.
package auth
