// Package constants provides application-wide constant values for autopush.
//
// It centralizes the fixed presentation elements (the ASCII logo and the
// tagline shown by the -logo flag) so they stay separate from business
// logic and are easy to find.
package constants

// Logo is the ASCII art shown by the -logo flag.
const Logo = `
                _                          _
   __ _ _   _ _| |_ ___  _ __  _   _ ___ | |__
  / _' | | | |_  __/ _ \| '_ \| | | / __|| '_ \
 | (_| | |_| | | || (_) | |_) | |_| \__ \| | | |
  \__,_|\__,_| |__|\___/| .__/ \__,_|___/|_| |_|
                        |_|
`

// Tagline is the application's tagline/motto.
const Tagline = "commit it, push it, tell me about it"
