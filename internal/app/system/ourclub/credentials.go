// internal/app/system/ourclub/credentials.go
package ourclub

// Config keys that carry the credential bundle. They are reported back
// verbatim by Credentials.Missing so a startup failure names the exact
// setting an operator has to supply.
const (
	KeyAPIKey    = "ourclub_api_key"
	KeyClientKey = "ourclub_client_key"
	KeyClubID    = "club_id"
)

// Credentials is the opaque credential bundle used for every report fetch.
// The values are passed through to the API unchanged.
type Credentials struct {
	APIKey    string
	ClientKey string
	ClubID    string
}

// Missing returns the config keys whose values are empty, in a stable order.
func (c Credentials) Missing() []string {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, KeyAPIKey)
	}
	if c.ClientKey == "" {
		missing = append(missing, KeyClientKey)
	}
	if c.ClubID == "" {
		missing = append(missing, KeyClubID)
	}
	return missing
}
