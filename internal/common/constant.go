// Package common contains shared constants and sentinel errors used across
// the Couple Diaries client and server.
package common

import "time"

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// DefaultAnniversaryDate is used whenever a stored relationship date cannot
// be parsed.
const DefaultAnniversaryDate = "2023-06-15"

// VerificationResendCooldown is the minimum interval between two
// verification emails for the same user.
const VerificationResendCooldown = 60 * time.Second

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 6

// MaxAge bounds the age a profile may hold.
const MaxAge = 150

// DefaultCardMood is assigned to cards created without a mood.
const DefaultCardMood = "Curious"

// CardDateLayout formats the date label of a new card, e.g.
// "January 29, 2025 | Wednesday".
const CardDateLayout = "January 2, 2006 | Monday"
