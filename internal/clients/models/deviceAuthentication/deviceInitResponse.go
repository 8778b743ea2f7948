package deviceauthmodels

import "fmt"

type DeviceInitResponse struct {
	DeviceCode      string `json:"device_code"`
	VerificationUri string `json:"verification_uri"`
}

func (d DeviceInitResponse) Validate() error {
	if d.DeviceCode == "" {
		return fmt.Errorf("device code response is missing device_code")
	}
	if d.VerificationUri == "" {
		return fmt.Errorf("device code response is missing verification_uri")
	}

	return nil
}
