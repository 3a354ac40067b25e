// SPDX-License-Identifier: MIT

package openapi_server

type RouteRequest struct {
	Origin      *Point `json:"origin"`
	Destination *Point `json:"destination"`
	// Treat origin and destination as walkable even if the map blocks them. The server default applies if omitted.
	AssumeEndpointsWalkable *bool `json:"assumeEndpointsWalkable,omitempty"`
}

// AssertRouteRequestRequired checks if the required fields are not zero-ed
func AssertRouteRequestRequired(obj RouteRequest) error {
	elements := map[string]interface{}{
		"origin":      obj.Origin,
		"destination": obj.Destination,
	}
	for name, el := range elements {
		if isZero := IsZeroValue(el); isZero {
			return &RequiredError{Field: name}
		}
	}

	if err := AssertPointRequired(*obj.Origin); err != nil {
		return err
	}
	if err := AssertPointRequired(*obj.Destination); err != nil {
		return err
	}
	return nil
}
