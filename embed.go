package atrium

import "embed"

// EmailFS holds the html/plaintext template pairs shipped with the binary.
// Each group under templates/emails is one logical email.
//
//go:embed templates/emails
var EmailFS embed.FS
