// Package services contains the client application services: the session
// manager, email verification polling, the onboarding wizard and the card
// service. Screens talk to the backend only through these.
package services
