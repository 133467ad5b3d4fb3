// Package cli is the interactive Couple Diaries client.
//
// The REPL mirrors the app's screens. Which commands are available depends
// on the screen group the navigation guard put the user in:
//
//   - public: sign up or sign in
//   - email verification: wait for the link to be clicked, resend it
//   - onboarding: the three-step "get started" wizard
//   - home: countdown, cards, partner chat, profile and settings
//
// The guard moves the REPL between groups whenever the session or the
// onboarding state changes, including changes noticed in the background.
package cli
