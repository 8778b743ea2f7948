package deviceauthmodels

import "fmt"

// TokenResponse is what /auth/token returns once the user approved the device.
// ExpiresIn is informational, nothing enforces it.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Username    string `json:"username,omitempty"`
}

func (t TokenResponse) Validate() error {
	if t.AccessToken == "" {
		return fmt.Errorf("token response is missing access_token")
	}

	return nil
}

type TokenRequest struct {
	DeviceCode string `json:"device_code"`
}
